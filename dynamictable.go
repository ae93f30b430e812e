package hpack

// DynamicTable is the per-peer, size-bounded FIFO of recently-seen header
// fields described by RFC 7541 §2.3.2. Index 1 is always the newest
// entry, index Length() the oldest. It is backed by a ring buffer sized
// to the largest number of entries the current capacity could ever hold
// (capacity/32 rounded up, since the smallest entry is 32 bytes), so
// setting a capacity never leaves stale slots to scan past.
//
// DynamicTable itself is the bare FIFO; Encoder layers an auxiliary hash
// index on top of it (see indexcache.go) rather than baking lookups into
// this type.
type DynamicTable struct {
	ring     []HeaderField
	start    int // ring index of the oldest live entry
	count    int
	size     int
	capacity int
}

// NewDynamicTable creates an empty table with the given initial capacity.
func NewDynamicTable(capacity uint32) *DynamicTable {
	t := &DynamicTable{capacity: int(capacity)}
	t.ring = make([]HeaderField, maxEntries(t.capacity))
	return t
}

// maxEntries is the largest number of entries a table of the given
// capacity could hold simultaneously (every entry costs at least
// fieldOverhead bytes).
func maxEntries(capacity int) int {
	return (capacity + fieldOverhead - 1) / fieldOverhead
}

// Length returns the current number of live entries.
func (t *DynamicTable) Length() int { return t.count }

// Size returns the sum of SizeInTable() over all live entries.
func (t *DynamicTable) Size() int { return t.size }

// Capacity returns the current maximum size.
func (t *DynamicTable) Capacity() int { return t.capacity }

// GetEntry returns the i'th entry, 1-based, newest first. i must be in
// [1, Length()].
func (t *DynamicTable) GetEntry(i int) (HeaderField, error) {
	if i < 1 || i > t.count {
		return HeaderField{}, ErrIndexOutOfRange
	}
	idx := (t.start + t.count - i) % len(t.ring)
	return t.ring[idx], nil
}

// Add appends entry as the newest, evicting from the oldest end until it
// fits. An entry whose own SizeInTable() exceeds capacity clears the
// table instead of being stored (RFC 7541 §4.4).
func (t *DynamicTable) Add(entry HeaderField) {
	sz := entry.SizeInTable()
	if sz > t.capacity {
		t.Clear()
		return
	}
	for t.size+sz > t.capacity && t.count > 0 {
		t.removeOldest()
	}
	idx := (t.start + t.count) % len(t.ring)
	t.ring[idx] = entry
	t.count++
	t.size += sz
}

// Remove drops the oldest entry, if any.
func (t *DynamicTable) Remove() {
	t.removeOldest()
}

func (t *DynamicTable) removeOldest() {
	if t.count == 0 {
		return
	}
	t.size -= t.ring[t.start].SizeInTable()
	t.ring[t.start] = HeaderField{}
	t.start = (t.start + 1) % len(t.ring)
	t.count--
}

// Clear drops every entry.
func (t *DynamicTable) Clear() {
	for i := 0; i < t.count; i++ {
		t.ring[(t.start+i)%len(t.ring)] = HeaderField{}
	}
	t.start, t.count, t.size = 0, 0, 0
}

// SetCapacity changes the maximum size, evicting from the oldest end
// until the new capacity is satisfied, then reallocating the backing
// ring if the entry-count bound changed.
func (t *DynamicTable) SetCapacity(c uint32) {
	newCap := int(c)
	if newCap == 0 {
		t.capacity = 0
		t.Clear()
		t.ring = nil
		return
	}
	for t.size > newCap && t.count > 0 {
		t.removeOldest()
	}
	t.capacity = newCap
	if want := maxEntries(newCap); want != len(t.ring) {
		ring := make([]HeaderField, want)
		for i := 0; i < t.count; i++ {
			ring[i] = t.ring[(t.start+i)%len(t.ring)]
		}
		t.ring = ring
		t.start = 0
	}
}
