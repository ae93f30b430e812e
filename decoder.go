package hpack

// indexType classifies which literal representation produced a field,
// since that determines whether it gets added to the dynamic table and
// whether it is reported sensitive.
type indexType int

const (
	indexNone indexType = iota
	indexIncremental
	indexNever
)

// decodePhase is where the state machine is parked between Decode calls.
// phaseDirective means "at a directive boundary"; the skip phases carry a
// literal whose bytes are being discarded without materialization.
type decodePhase int

const (
	phaseDirective decodePhase = iota
	phaseSkipName
	phaseSkippedValueLen
	phaseSkipValue
)

// Decoder consumes an HPACK header block and reconstructs header fields,
// mirroring the peer's dynamic table and enforcing the receiver's own
// size limits. A Decoder is not safe for concurrent use; its state must
// be fed bytes in wire order.
//
// Decode takes a plain byte slice rather than an abstract reader: a
// slice is trivially "rewindable" by just not advancing past it, so
// resumption across short reads is implemented by retaining any
// undecoded suffix in buf and re-parsing the current directive from its
// start once more bytes arrive, rather than persisting a half-built
// integer across calls. The one exception is a literal already known to
// be dropped: its payload is consumed through the skip phases as it
// arrives, so an oversized literal never accumulates in buf.
type Decoder struct {
	dyn *DynamicTable

	maxHeaderBlockBytes uint32

	// receiverMaxTableSize is this decoder's own ceiling on the dynamic
	// table, set at construction and by SetMaxHeaderTableSize. A peer's
	// Dynamic Table Size Update may not exceed it.
	receiverMaxTableSize uint32
	// encoderMaxDynamicTableSize is what the peer currently believes the
	// cap is, from its point of view.
	encoderMaxDynamicTableSize uint32
	sizeUpdatePending          bool

	// headerSize is the running total of len(name)+len(value) delivered
	// in the current block. It is bumped to maxHeaderBlockBytes+1 as a
	// sentinel once the block has been truncated, which both short-
	// circuits further listener delivery and lets EndHeaderBlock report
	// the overflow with a single comparison.
	headerSize int

	phase      decodePhase
	skipRemain int

	buf []byte
}

// NewDecoder creates a Decoder. maxHeaderBlockBytes bounds the total
// decoded (name,value) byte length the listener will observe per block;
// maxTableSize is both the initial dynamic table capacity and this
// decoder's ceiling on any peer-requested table size.
func NewDecoder(maxHeaderBlockBytes, maxTableSize uint32) *Decoder {
	return &Decoder{
		dyn:                        NewDynamicTable(maxTableSize),
		maxHeaderBlockBytes:        maxHeaderBlockBytes,
		receiverMaxTableSize:       maxTableSize,
		encoderMaxDynamicTableSize: maxTableSize,
	}
}

// MaxHeaderTableSize returns the dynamic table's current capacity.
func (d *Decoder) MaxHeaderTableSize() uint32 {
	return uint32(d.dyn.Capacity())
}

// SetMaxHeaderTableSize lets the host lower (or raise) its own receiving
// cap. If the new value is smaller than what the peer currently
// believes the cap to be, the next header block MUST open with a
// Dynamic Table Size Update or decoding fails; the table is shrunk
// immediately regardless.
func (d *Decoder) SetMaxHeaderTableSize(n uint32) {
	if n < d.encoderMaxDynamicTableSize {
		d.sizeUpdatePending = true
	}
	d.receiverMaxTableSize = n
	if uint32(d.dyn.Capacity()) > n {
		d.dyn.SetCapacity(n)
	}
}

// EndHeaderBlock closes out the current header block, reporting whether
// it was truncated by maxHeaderBlockBytes. It resets the state machine
// and the per-block byte counter for the next block; it does not touch
// the dynamic table.
func (d *Decoder) EndHeaderBlock() bool {
	truncated := d.headerSize > int(d.maxHeaderBlockBytes)
	d.headerSize = 0
	d.phase = phaseDirective
	d.skipRemain = 0
	d.buf = nil
	return truncated
}

// Decode feeds in to the state machine, invoking listener.OnHeader for
// every field the block yields up to this point. It may consume less
// than all of in's logical content across multiple calls if a directive
// straddles a call boundary; any unconsumed bytes are retained until the
// next call.
func (d *Decoder) Decode(in []byte, listener Listener) error {
	d.buf = append(d.buf, in...)
	for len(d.buf) > 0 {
		consumed, needMore, err := d.decodeStep(d.buf, listener)
		if err != nil {
			return err
		}
		d.buf = d.buf[consumed:]
		if needMore {
			break
		}
	}
	return nil
}

// decodeStep advances the state machine by one unit of work: a whole
// directive when parked at a directive boundary, or as much of a skipped
// literal as data covers. needMore means data does not yet hold enough
// to make further progress.
func (d *Decoder) decodeStep(data []byte, listener Listener) (consumed int, needMore bool, err error) {
	switch d.phase {
	case phaseSkipName:
		return d.advanceSkip(data, phaseSkippedValueLen)
	case phaseSkippedValueLen:
		// The value of a field whose name was skipped is itself always
		// skipped; only its declared length needs parsing.
		_, length, next, needMore, err := d.readStringLen(data, 0)
		if needMore || err != nil {
			return 0, needMore, err
		}
		d.skipRemain = int(length)
		d.phase = phaseSkipValue
		return next, false, nil
	case phaseSkipValue:
		return d.advanceSkip(data, phaseDirective)
	}

	b0 := data[0]

	if d.sizeUpdatePending && b0&0xE0 != 0x20 {
		return 0, false, ErrDecompression
	}

	switch {
	case b0&0x80 != 0:
		return d.decodeIndexed(data, listener)
	case b0&0xC0 == 0x40:
		return d.decodeLiteral(data, listener, indexIncremental, 6)
	case b0&0xE0 == 0x20:
		return d.decodeSizeUpdate(data)
	case b0&0xF0 == 0x10:
		return d.decodeLiteral(data, listener, indexNever, 4)
	default:
		return d.decodeLiteral(data, listener, indexNone, 4)
	}
}

// advanceSkip discards up to skipRemain bytes of a dropped literal's
// payload, moving to next once the declared length is exhausted.
func (d *Decoder) advanceSkip(data []byte, next decodePhase) (int, bool, error) {
	n := d.skipRemain
	if n > len(data) {
		n = len(data)
	}
	d.skipRemain -= n
	if d.skipRemain > 0 {
		return n, true, nil
	}
	d.phase = next
	return n, false, nil
}

func (d *Decoder) decodeIndexed(data []byte, listener Listener) (int, bool, error) {
	prefixValue := uint64(data[0] & 0x7F)
	value, cont, err := decodeInt(data[1:], 7, prefixValue)
	if err == errNeedMore {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	if value == 0 {
		return 0, false, ErrDecompression
	}
	if err := d.emitIndexed(int(value), listener); err != nil {
		return 0, false, err
	}
	return 1 + cont, false, nil
}

// emitIndexed resolves a combined index to a static or dynamic entry and
// delivers it; indexed headers are never sensitive and never themselves
// added to the dynamic table.
func (d *Decoder) emitIndexed(i int, listener Listener) error {
	field, err := d.lookupCombined(i)
	if err != nil {
		return err
	}
	return d.deliver(listener, field.Name, field.Value, false, indexNone)
}

func (d *Decoder) lookupCombined(i int) (HeaderField, error) {
	if i <= staticLen {
		return staticEntry(i), nil
	}
	f, err := d.dyn.GetEntry(i - staticLen)
	if err != nil {
		return HeaderField{}, ErrDecompression
	}
	return f, nil
}

func (d *Decoder) decodeSizeUpdate(data []byte) (int, bool, error) {
	prefixValue := uint64(data[0] & 0x1F)
	value, cont, err := decodeInt(data[1:], 5, prefixValue)
	if err == errNeedMore {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	if value > uint64(d.receiverMaxTableSize) {
		return 0, false, ErrDecompression
	}
	d.dyn.SetCapacity(uint32(value))
	d.encoderMaxDynamicTableSize = uint32(value)
	d.sizeUpdatePending = false
	return 1 + cont, false, nil
}

// decodeLiteral handles all three literal representations; prefixBits
// selects the wire width of the name-index prefix (6 bits for
// incremental indexing, 4 bits for the other two).
func (d *Decoder) decodeLiteral(data []byte, listener Listener, idxType indexType, prefixBits uint8) (int, bool, error) {
	prefixValue := uint64(data[0]) & (1<<prefixBits - 1)
	pos := 1
	nameIdxVal, cont, err := decodeInt(data[pos:], prefixBits, prefixValue)
	if err == errNeedMore {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	pos += cont

	var name []byte
	if nameIdxVal == 0 {
		huff, length, next, needMore, err := d.readStringLen(data, pos)
		if needMore {
			return 0, true, nil
		}
		if err != nil {
			return 0, false, err
		}
		if d.exceedsBlockLimit(length) {
			if skip, clear := d.canSkip(idxType, length+fieldOverhead); skip {
				if clear {
					d.dyn.Clear()
				}
				d.skipRemain = int(length)
				d.phase = phaseSkipName
				return next, false, nil
			}
		}
		n, next2, needMore, err := d.readStringBody(data, next, huff, length)
		if needMore {
			return 0, true, nil
		}
		if err != nil {
			return 0, false, err
		}
		pos = next2
		name = n
	} else {
		f, err := d.lookupCombined(int(nameIdxVal))
		if err != nil {
			return 0, false, err
		}
		name = f.Name
	}

	huff, length, next, needMore, err := d.readStringLen(data, pos)
	if needMore {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	if d.exceedsBlockLimit(uint64(len(name)) + length) {
		entrySize := uint64(len(name)) + length + fieldOverhead
		if skip, clear := d.canSkip(idxType, entrySize); skip {
			if clear {
				d.dyn.Clear()
			}
			d.skipRemain = int(length)
			d.phase = phaseSkipValue
			return next, false, nil
		}
	}
	value, next2, needMore, err := d.readStringBody(data, next, huff, length)
	if needMore {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	pos = next2

	if err := d.deliver(listener, name, value, idxType == indexNever, idxType); err != nil {
		return 0, false, err
	}
	return pos, false, nil
}

// exceedsBlockLimit reports whether size more decoded bytes would push
// the current block past maxHeaderBlockBytes, marking the block
// truncated when it would.
func (d *Decoder) exceedsBlockLimit(size uint64) bool {
	if uint64(d.headerSize)+size <= uint64(d.maxHeaderBlockBytes) {
		return false
	}
	d.headerSize = int(d.maxHeaderBlockBytes) + 1
	return true
}

// canSkip decides whether an over-limit literal's payload may be
// discarded unread. Representations without table side effects always
// may; an incrementally indexed one only when the would-be entry could
// not fit in the table anyway, in which case the table must be cleared
// first — the same thing the peer's table does for an oversized insert,
// so the mirrors stay synchronized.
func (d *Decoder) canSkip(idxType indexType, entrySize uint64) (skip, clear bool) {
	if idxType != indexIncremental {
		return true, false
	}
	if entrySize > uint64(d.dyn.Capacity()) {
		return true, true
	}
	return false, false
}

// readStringLen parses a string literal's length prefix (and Huffman
// flag) only, without touching its body.
func (d *Decoder) readStringLen(data []byte, pos int) (huff bool, length uint64, next int, needMore bool, err error) {
	if pos >= len(data) {
		return false, 0, 0, true, nil
	}
	huff = data[pos]&0x80 != 0
	prefixValue := uint64(data[pos] & 0x7F)
	p := pos + 1
	length, cont, err := decodeInt(data[p:], 7, prefixValue)
	if err == errNeedMore {
		return false, 0, 0, true, nil
	}
	if err != nil {
		return false, 0, 0, false, err
	}
	p += cont
	return huff, length, p, false, nil
}

// readStringBody materializes length bytes of a string literal's body,
// Huffman-decoding when the length prefix carried the flag.
func (d *Decoder) readStringBody(data []byte, pos int, huff bool, length uint64) (value []byte, next int, needMore bool, err error) {
	if uint64(len(data)-pos) < length {
		return nil, 0, true, nil
	}
	raw := data[pos : pos+int(length)]
	p := pos + int(length)
	if huff {
		dec, err := huffmanDecode(raw)
		if err != nil {
			return nil, 0, false, err
		}
		return dec, p, false, nil
	}
	return append([]byte(nil), raw...), p, false, nil
}

// deliver applies the per-block size accounting and listener dispatch
// rule: within budget, the field is reported and counted; over budget,
// the block is marked truncated instead. Either way, an incrementally
// indexed field is still added to the dynamic table (DynamicTable.Add
// already clears the table itself if the entry alone cannot fit),
// preserving peer synchronization even for dropped fields.
func (d *Decoder) deliver(listener Listener, name, value []byte, sensitive bool, idxType indexType) error {
	if len(name) == 0 {
		return ErrDecompression
	}
	total := len(name) + len(value)
	if d.headerSize+total <= int(d.maxHeaderBlockBytes) {
		listener.OnHeader(name, value, sensitive)
		d.headerSize += total
	} else {
		d.headerSize = int(d.maxHeaderBlockBytes) + 1
	}
	if idxType == indexIncremental {
		d.dyn.Add(HeaderField{
			Name:  append([]byte(nil), name...),
			Value: append([]byte(nil), value...),
		})
	}
	return nil
}
