package hpack

import "errors"

// Sentinel errors for the codec's failure modes. I/O failures from the
// underlying byte stream are returned unchanged and are not wrapped in
// any of these.
var (
	// ErrInvalidArgument marks a precondition violation by the caller:
	// an integer-prefix width outside [0,8]. Table sizes are uint32, so
	// a negative capacity cannot be expressed.
	ErrInvalidArgument = errors.New("hpack: invalid argument")

	// ErrIndexOutOfRange marks an out-of-bounds dynamic-table index
	// requested directly by a caller of DynamicTable.
	ErrIndexOutOfRange = errors.New("hpack: index out of range")

	// ErrDecompression marks any wire-format violation: an indexed
	// header referencing index 0 or beyond the combined table, integer
	// overflow, an EOS symbol appearing in Huffman data, illegal
	// Huffman padding, a size update exceeding the negotiated maximum,
	// an omitted mandatory size update, or an empty header name.
	ErrDecompression = errors.New("hpack: decompression error")

	// errNeedMore is an internal sentinel signaling that the decoder
	// could not complete a sub-phase because the input was exhausted;
	// it is never returned to a caller of Decoder.Decode.
	errNeedMore = errors.New("hpack: need more input")
)
