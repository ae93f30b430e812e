package hpack

// Encoder serializes header fields into an HPACK header block. It owns a
// DynamicTable mirror plus the auxiliary indexCache that lets it look up
// recently-emitted (name) and (name,value) pairs without scanning the
// table. An Encoder is not safe for concurrent use; a single encoder
// belongs to one writing peer and its state must evolve in wire order.
type Encoder struct {
	dyn   *DynamicTable
	cache indexCache

	// useIndexing gates whether EncodeHeader ever emits the incremental
	// indexing representation. Disabling it is a unit-test knob only:
	// running with indexing disabled can let the encoder's and decoder's
	// dynamic tables diverge, so production callers should never touch it.
	useIndexing bool

	// huffman overrides automatic Huffman-vs-literal selection for
	// string literals; zero value is "choose whichever is shorter".
	huffman huffmanMode
}

type huffmanMode int

const (
	huffmanAuto huffmanMode = iota
	huffmanAlways
	huffmanNever
)

// NewEncoder creates an Encoder whose dynamic table starts at the given
// capacity.
func NewEncoder(maxTableSize uint32) *Encoder {
	return &Encoder{
		dyn:         NewDynamicTable(maxTableSize),
		useIndexing: true,
	}
}

// MaxHeaderTableSize returns the dynamic table's current capacity.
func (e *Encoder) MaxHeaderTableSize() uint32 {
	return uint32(e.dyn.Capacity())
}

// SetMaxHeaderTableSize changes the dynamic table's capacity, writing the
// wire Dynamic Table Size Update directive to out and evicting entries
// (keeping the index cache in lockstep) as required to honor the new
// size.
func (e *Encoder) SetMaxHeaderTableSize(out ByteWriter, n uint32) error {
	if err := encodeInt(out, 0x20, 5, uint64(n)); err != nil {
		return err
	}
	for e.dyn.Size() > int(n) && e.dyn.Length() > 0 {
		e.evictOldest()
	}
	e.dyn.SetCapacity(n)
	return nil
}

// EncodeHeader writes one header field representation to out, choosing
// among Indexed, Literal-with-Incremental-Indexing, Literal-Without-
// Indexing and Literal-Never-Indexed per RFC 7541 §6. Sensitive fields
// are never indexed; with capacity 0, or for a field larger than the
// capacity, a static match is sent Indexed and anything else as a
// Literal Without Indexing; otherwise a dynamic or static match is sent
// Indexed and a miss as a Literal with Incremental Indexing.
func (e *Encoder) EncodeHeader(out ByteWriter, name, value []byte, sensitive bool) error {
	field := HeaderField{Name: name, Value: value}

	if sensitive {
		return e.writeLiteral(out, 0x10, 4, e.nameIndex(name), name, value)
	}

	capacity := e.dyn.Capacity()

	if capacity == 0 {
		if i := staticIndexByNameValue(name, value); i != -1 {
			return encodeInt(out, 0x80, 7, uint64(i))
		}
		return e.writeLiteral(out, 0x00, 4, staticIndexByName(name), name, value)
	}

	if field.SizeInTable() > capacity {
		return e.writeLiteral(out, 0x00, 4, e.nameIndex(name), name, value)
	}

	if node, ok := e.cache.findNameValue(name, value); ok {
		return encodeInt(out, 0x80, 7, uint64(staticLen+e.cache.dynamicIndex(node)))
	}

	if i := staticIndexByNameValue(name, value); i != -1 {
		return encodeInt(out, 0x80, 7, uint64(i))
	}

	nameIdx := e.nameIndex(name)
	if !e.useIndexing {
		return e.writeLiteral(out, 0x00, 4, nameIdx, name, value)
	}
	if err := e.writeLiteral(out, 0x40, 6, nameIdx, name, value); err != nil {
		return err
	}
	e.addDynamic(field)
	return nil
}

// nameIndex returns the combined index of the best name-only match: a
// static entry if one carries name, else the most recently inserted
// dynamic entry with that name, else -1.
func (e *Encoder) nameIndex(name []byte) int {
	if i := staticIndexByName(name); i != -1 {
		return i
	}
	if node, ok := e.cache.findName(name); ok {
		return staticLen + e.cache.dynamicIndex(node)
	}
	return -1
}

// writeLiteral writes a literal representation's prefix octet(s) (mask
// and prefixBits select which of the three literal representations) and
// its name/value string literals. nameIdx <= 0 means "literal name
// follows"; nameIdx > 0 references the combined table directly and the
// name string is omitted.
func (e *Encoder) writeLiteral(out ByteWriter, mask byte, prefixBits uint8, nameIdx int, name, value []byte) error {
	wireIdx := nameIdx
	if wireIdx < 0 {
		wireIdx = 0
	}
	if err := encodeInt(out, mask, prefixBits, uint64(wireIdx)); err != nil {
		return err
	}
	if wireIdx == 0 {
		if err := e.writeString(out, name); err != nil {
			return err
		}
	}
	return e.writeString(out, value)
}

// writeString writes one HPACK string literal: a length prefix with the
// Huffman flag in its high bit, followed by either the Huffman encoding
// of data or data itself.
func (e *Encoder) writeString(out ByteWriter, data []byte) error {
	if e.shouldHuffman(data) {
		if err := encodeInt(out, 0x80, 7, uint64(huffmanEncodedLen(data))); err != nil {
			return err
		}
		return huffmanEncode(out, data)
	}
	if err := encodeInt(out, 0x00, 7, uint64(len(data))); err != nil {
		return err
	}
	_, err := out.Write(data)
	return err
}

func (e *Encoder) shouldHuffman(data []byte) bool {
	switch e.huffman {
	case huffmanAlways:
		return true
	case huffmanNever:
		return false
	default:
		return huffmanEncodedLen(data) < len(data)
	}
}

// addDynamic evicts (in lockstep with the index cache) until field fits,
// then inserts it into both the FIFO and the cache. If field alone
// exceeds capacity, the whole table is cleared and nothing is stored,
// matching DynamicTable.Add's single-oversized-insert rule.
func (e *Encoder) addDynamic(field HeaderField) {
	sz := field.SizeInTable()
	capacity := e.dyn.Capacity()
	if sz > capacity {
		e.clearDynamic()
		return
	}
	for e.dyn.Size()+sz > capacity && e.dyn.Length() > 0 {
		e.evictOldest()
	}
	e.dyn.Add(field)
	e.cache.insert(field)
}

func (e *Encoder) evictOldest() {
	oldest, err := e.dyn.GetEntry(e.dyn.Length())
	if err != nil {
		return
	}
	e.dyn.Remove()
	e.cache.remove(oldest)
}

func (e *Encoder) clearDynamic() {
	for e.dyn.Length() > 0 {
		e.evictOldest()
	}
}
