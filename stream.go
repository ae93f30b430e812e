package hpack

import "io"

// ByteWriter is the sink the Encoder appends an encoded header block to.
// *bytes.Buffer and any io.Writer wrapped with bufio.NewWriter satisfy it.
type ByteWriter interface {
	io.Writer
	io.ByteWriter
}

// Listener receives reconstructed header fields as the Decoder parses a
// header block. sensitive is true when the field arrived as a Literal
// Header Field Never Indexed (the producer marked it never-index).
type Listener interface {
	OnHeader(name, value []byte, sensitive bool)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(name, value []byte, sensitive bool)

// OnHeader calls f.
func (f ListenerFunc) OnHeader(name, value []byte, sensitive bool) { f(name, value, sensitive) }
