// Package hpack implements HPACK, the header compression format used by
// HTTP/2 and defined in RFC 7541.
//
// # Overview
//
// HPACK serializes a sequence of (name, value) header fields into a
// compact octet stream by referencing two tables of previously-seen
// fields — a fixed 61-entry static table and a per-connection,
// size-bounded dynamic table — and by Huffman-coding string literals
// that aren't already indexed.
//
// # Scope
//
// This package is the codec only: an Encoder that turns header fields
// into a header block, and a Decoder that turns a header block back
// into fields via a listener callback. Framing headers onto HTTP/2
// frames, multiplexing streams, and validating header semantics (case,
// pseudo-header ordering, forbidden connection-specific fields) are the
// concern of a higher layer.
//
// # Basic Usage
//
//	var buf bytes.Buffer
//	enc := hpack.NewEncoder(4096)
//	enc.EncodeHeader(&buf, []byte(":method"), []byte("GET"), false)
//	enc.EncodeHeader(&buf, []byte("x-trace-id"), []byte("abc123"), false)
//
//	dec := hpack.NewDecoder(16384, 4096)
//	dec.Decode(buf.Bytes(), hpack.ListenerFunc(func(name, value []byte, sensitive bool) {
//	    fmt.Printf("%s: %s\n", name, value)
//	}))
//	truncated := dec.EndHeaderBlock()
//
// # Resumability
//
// Decode may be called with partial input, as header blocks arrive
// across multiple HTTP/2 frames; a directive split across calls is
// buffered internally and resumed on the next call rather than lost.
//
// # Size Limits
//
// The dynamic table's capacity bounds how much compression state a
// connection holds. maxHeaderBlockBytes on the Decoder separately bounds
// the cumulative decoded header size per block, silently dropping (not
// erroring on) oversized fields while keeping both peers' dynamic tables
// synchronized.
package hpack
