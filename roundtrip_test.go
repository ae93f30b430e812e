package hpack

import (
	"bytes"
	"testing"
)

type fieldTriple struct {
	name, value string
	sensitive   bool
}

func tableEntriesEqual(t *testing.T, a, b *DynamicTable) {
	t.Helper()
	if a.Length() != b.Length() {
		t.Fatalf("dynamic table lengths differ: %d vs %d", a.Length(), b.Length())
	}
	for i := 1; i <= a.Length(); i++ {
		ea, err := a.GetEntry(i)
		if err != nil {
			t.Fatal(err)
		}
		eb, err := b.GetEntry(i)
		if err != nil {
			t.Fatal(err)
		}
		if !ea.Equal(eb) {
			t.Fatalf("entry %d differs: %v vs %v", i, ea, eb)
		}
	}
}

func runRoundTrip(t *testing.T, maxTableSize uint32, triples []fieldTriple) {
	t.Helper()
	var buf bytes.Buffer
	enc := NewEncoder(maxTableSize)
	for _, tr := range triples {
		if err := enc.EncodeHeader(&buf, []byte(tr.name), []byte(tr.value), tr.sensitive); err != nil {
			t.Fatalf("EncodeHeader(%q,%q): %v", tr.name, tr.value, err)
		}
	}

	dec := NewDecoder(1<<30, maxTableSize)
	var l collectingListener
	if err := dec.Decode(buf.Bytes(), &l); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dec.EndHeaderBlock() {
		t.Fatalf("unexpected truncation")
	}
	if len(l.fields) != len(triples) {
		t.Fatalf("got %d fields, want %d", len(l.fields), len(triples))
	}
	for i, tr := range triples {
		if string(l.fields[i].Name) != tr.name || string(l.fields[i].Value) != tr.value {
			t.Fatalf("field %d = %s:%s, want %s:%s", i, l.fields[i].Name, l.fields[i].Value, tr.name, tr.value)
		}
		if l.sens[i] != tr.sensitive {
			t.Fatalf("field %d sensitive = %v, want %v", i, l.sens[i], tr.sensitive)
		}
	}
	tableEntriesEqual(t, enc.dyn, dec.dyn)
}

func TestRoundTripVariousTableSizes(t *testing.T) {
	triples := []fieldTriple{
		{":method", "GET", false},
		{":scheme", "https", false},
		{":path", "/index.html", false},
		{"x-request-id", "1234-5678", false},
		{"cookie", "session=abc; theme=dark", false},
		{"x-request-id", "1234-5678", false},
		{"authorization", "Bearer topsecret", true},
		{"x-request-id", "9999", false},
	}
	for _, size := range []uint32{0, 1, 32, 33, 64, 128, 4096} {
		t.Run("", func(t *testing.T) {
			runRoundTrip(t, size, triples)
		})
	}
}

func TestRoundTripForcesEviction(t *testing.T) {
	var triples []fieldTriple
	for i := 0; i < 50; i++ {
		triples = append(triples, fieldTriple{
			name:  "x-custom-header",
			value: string(bytes.Repeat([]byte{byte('a' + i%26)}, 20)),
		})
	}
	runRoundTrip(t, 256, triples)
}

func TestRoundTripAllStaticEntries(t *testing.T) {
	var triples []fieldTriple
	for i := 1; i <= staticLen; i++ {
		e := staticEntry(i)
		v := e.Value
		if v == nil {
			v = []byte("x")
		}
		triples = append(triples, fieldTriple{name: string(e.Name), value: string(v)})
	}
	runRoundTrip(t, 4096, triples)
}

func TestRoundTripLargeEvictingEntry(t *testing.T) {
	// Concrete scenario 4: an incremental entry whose own bytes exceed
	// capacity clears the table entirely without persisting itself.
	var buf bytes.Buffer
	enc := NewEncoder(4096)
	if err := enc.EncodeHeader(&buf, []byte("name"), []byte("value"), false); err != nil {
		t.Fatal(err)
	}
	bigValue := bytes.Repeat([]byte{'a'}, 4096)
	if err := enc.EncodeHeader(&buf, []byte(":authority"), bigValue, false); err != nil {
		t.Fatal(err)
	}
	if enc.dyn.Length() != 0 {
		t.Fatalf("oversized incremental entry must clear the table, length = %d", enc.dyn.Length())
	}

	dec := NewDecoder(1<<30, 4096)
	var l collectingListener
	if err := dec.Decode(buf.Bytes(), &l); err != nil {
		t.Fatal(err)
	}
	if len(l.fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(l.fields))
	}
	if dec.dyn.Length() != 0 {
		t.Fatalf("decoder dynamic table should also have cleared, length = %d", dec.dyn.Length())
	}

	// A subsequent incrementally-indexed entry becomes index 62 again.
	buf.Reset()
	if err := enc.EncodeHeader(&buf, []byte("next-name"), []byte("next-value"), false); err != nil {
		t.Fatal(err)
	}
	var l2 collectingListener
	if err := dec.Decode(buf.Bytes(), &l2); err != nil {
		t.Fatal(err)
	}
	if len(l2.fields) != 1 || string(l2.fields[0].Name) != "next-name" {
		t.Fatalf("got %+v", l2.fields)
	}
	e, err := dec.dyn.GetEntry(1)
	if err != nil || string(e.Name) != "next-name" {
		t.Fatalf("combined index 62 should resolve to next-name, got %+v, err %v", e, err)
	}
}
