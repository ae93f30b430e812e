package hpack

// numBuckets is the bucket count for the encoder's auxiliary name index.
// Any reasonable hash works here — the bucketing is never observable on
// the wire, only the combined index it helps compute is.
const numBuckets = 17

// indexEntry is one node of a hash-bucket chain mirroring a single live
// DynamicTable entry. It is kept separate from HeaderField (composition,
// not an "entry that is also a field") so the FIFO and the side-index
// can evolve independently.
type indexEntry struct {
	field   HeaderField
	hash    uint32
	counter int64 // assigned at insertion, strictly decreasing over time
	next    *indexEntry
}

// indexCache is the encoder's auxiliary name/name-value lookup over its
// DynamicTable mirror. It never owns the FIFO ordering itself — Encoder
// keeps it in lockstep by calling insert on every add and remove on every
// eviction, in the same order it touches the DynamicTable.
type indexCache struct {
	buckets     [numBuckets]*indexEntry
	nextCounter int64
	newest      int64 // counter assigned to the most recent insert
}

func hashName(name []byte) uint32 {
	var h uint32
	for _, b := range name {
		h = 31*h + uint32(b)
	}
	return h
}

// insert adds field to the index, chained at the head of its bucket so
// that a head-to-tail walk visits entries newest-first.
func (c *indexCache) insert(field HeaderField) {
	c.nextCounter--
	h := hashName(field.Name)
	b := h % numBuckets
	c.buckets[b] = &indexEntry{field: field, hash: h, counter: c.nextCounter, next: c.buckets[b]}
	c.newest = c.nextCounter
}

// remove unlinks the chain node matching field that sits furthest from
// the bucket head — i.e. the oldest surviving occurrence, which is the
// one a FIFO eviction of field actually removed.
func (c *indexCache) remove(field HeaderField) {
	h := hashName(field.Name)
	b := h % numBuckets
	var prev, bestPrev, best *indexEntry
	for e := c.buckets[b]; e != nil; e = e.next {
		if e.hash == h && e.field.Equal(field) {
			best, bestPrev = e, prev
		}
		prev = e
	}
	if best == nil {
		return
	}
	if bestPrev == nil {
		c.buckets[b] = best.next
	} else {
		bestPrev.next = best.next
	}
}

// findNameValue returns the most recently inserted node whose field
// equals (name, value).
func (c *indexCache) findNameValue(name, value []byte) (*indexEntry, bool) {
	h := hashName(name)
	for e := c.buckets[h%numBuckets]; e != nil; e = e.next {
		if e.hash == h && string(e.field.Name) == string(name) && string(e.field.Value) == string(value) {
			return e, true
		}
	}
	return nil, false
}

// findName returns the most recently inserted node carrying name,
// regardless of value.
func (c *indexCache) findName(name []byte) (*indexEntry, bool) {
	h := hashName(name)
	for e := c.buckets[h%numBuckets]; e != nil; e = e.next {
		if e.hash == h && string(e.field.Name) == string(name) {
			return e, true
		}
	}
	return nil, false
}

// dynamicIndex converts a node's insertionCounter to a 1-based dynamic
// index (newest = 1), stable across evictions without renumbering: it is
// simply the node's distance, in insertion order, from the most recently
// inserted entry.
func (c *indexCache) dynamicIndex(e *indexEntry) int {
	return int(e.counter-c.newest) + 1
}
