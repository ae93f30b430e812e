package hpack

import "testing"

func TestIndexCacheInsertAndLookup(t *testing.T) {
	var c indexCache
	c.insert(HeaderField{Name: []byte("a"), Value: []byte("1")})
	c.insert(HeaderField{Name: []byte("b"), Value: []byte("2")})
	c.insert(HeaderField{Name: []byte("a"), Value: []byte("3")})

	node, ok := c.findNameValue([]byte("a"), []byte("3"))
	if !ok {
		t.Fatalf("expected to find (a,3)")
	}
	if got := c.dynamicIndex(node); got != 1 {
		t.Fatalf("dynamicIndex(newest) = %d, want 1", got)
	}

	node, ok = c.findName([]byte("a"))
	if !ok || c.dynamicIndex(node) != 1 {
		t.Fatalf("findName(a) should return the most recent insert")
	}

	node, ok = c.findNameValue([]byte("a"), []byte("1"))
	if !ok {
		t.Fatalf("expected to find (a,1)")
	}
	if got := c.dynamicIndex(node); got != 3 {
		t.Fatalf("dynamicIndex(oldest a) = %d, want 3", got)
	}
}

func TestIndexCacheRemoveUnlinksOldest(t *testing.T) {
	var c indexCache
	f1 := HeaderField{Name: []byte("x"), Value: []byte("1")}
	f2 := HeaderField{Name: []byte("x"), Value: []byte("2")}
	c.insert(f1)
	c.insert(f2)
	c.remove(f1) // FIFO eviction always removes the oldest entry first.
	if _, ok := c.findNameValue([]byte("x"), []byte("1")); ok {
		t.Fatalf("removed entry should no longer be found")
	}
	node, ok := c.findNameValue([]byte("x"), []byte("2"))
	if !ok {
		t.Fatalf("surviving entry should still be found")
	}
	if got := c.dynamicIndex(node); got != 1 {
		t.Fatalf("dynamicIndex() after removal = %d, want 1", got)
	}
}

func TestIndexCacheMissReturnsFalse(t *testing.T) {
	var c indexCache
	if _, ok := c.findName([]byte("nope")); ok {
		t.Fatalf("expected no match on empty cache")
	}
	if _, ok := c.findNameValue([]byte("nope"), []byte("nope")); ok {
		t.Fatalf("expected no match on empty cache")
	}
}
