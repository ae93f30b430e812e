package hpack

// huffmanEOS is the code point of HPACK's end-of-string symbol. It is
// never valid as decoded data; it exists only to pad the final octet of
// an encoded string.
const huffmanEOS = 256

// huffmanSymbols is the number of codeable symbols: the 256 byte values
// plus EOS.
const huffmanSymbols = 257

// huffmanCodeLen is the canonical code length, in bits, of each symbol
// 0..255 plus EOS at index 256, per RFC 7541 Appendix B. The bit
// patterns themselves are not hand-transcribed: huffmanCode derives them
// once at init via the standard canonical-Huffman-from-lengths
// construction (see DESIGN.md), which is fully determined by this table
// and symbol order alone. Checked against both RFC 7541 C.4 worked
// examples and Kraft-equality (the lengths sum to exactly one complete
// code) in addition to init's own validity panic.
var huffmanCodeLen = [...]uint8{
	13, 23, 28, 28, 28, 28, 28, 28, 28, 24, 30, 28, 28, 30, 28, 28,
	28, 28, 28, 28, 28, 28, 30, 28, 28, 28, 28, 28, 28, 28, 28, 28,
	6, 10, 10, 12, 13, 6, 8, 11, 10, 10, 8, 11, 8, 6, 6, 6,
	5, 5, 5, 6, 6, 6, 6, 6, 6, 6, 7, 8, 15, 6, 12, 10,
	13, 6, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7, 8, 7, 8, 13, 19, 13, 14, 6,
	15, 5, 6, 5, 6, 5, 6, 6, 6, 5, 7, 7, 6, 6, 6, 5,
	6, 7, 6, 5, 5, 6, 7, 7, 7, 7, 7, 15, 11, 14, 13, 28,
	20, 22, 20, 20, 22, 22, 22, 23, 22, 23, 23, 23, 23, 23, 24, 23,
	24, 24, 22, 23, 24, 23, 23, 23, 23, 21, 22, 23, 22, 23, 23, 24,
	22, 21, 20, 22, 22, 23, 23, 21, 23, 22, 22, 24, 21, 22, 23, 23,
	21, 21, 22, 21, 23, 22, 23, 23, 20, 22, 22, 22, 23, 22, 22, 23,
	26, 26, 20, 19, 22, 23, 22, 25, 26, 26, 26, 27, 27, 26, 24, 25,
	19, 21, 26, 27, 27, 26, 27, 24, 21, 21, 26, 26, 28, 27, 27, 27,
	20, 24, 20, 21, 22, 21, 21, 23, 22, 22, 25, 25, 24, 24, 26, 23,
	26, 27, 26, 26, 27, 27, 27, 27, 27, 28, 27, 27, 27, 27, 27, 26,
	30,
}

// huffmanCode holds the canonical code value of each symbol, built at
// init from huffmanCodeLen. Bit huffmanCodeLen[s]-1 is the MSB.
var huffmanCode [huffmanSymbols]uint32

func buildHuffmanCode() {
	if len(huffmanCodeLen) != huffmanSymbols {
		panic("hpack: huffman length table size mismatch")
	}
	const maxBits = 30
	var blCount [maxBits + 1]int
	for _, l := range huffmanCodeLen {
		blCount[l]++
	}
	var nextCode [maxBits + 1]uint32
	code := uint32(0)
	for bits := 1; bits <= maxBits; bits++ {
		code = (code + uint32(blCount[bits-1])) << 1
		nextCode[bits] = code
	}
	for sym, l := range huffmanCodeLen {
		huffmanCode[sym] = nextCode[l]
		nextCode[l]++
		if huffmanCode[sym] >= 1<<l {
			panic("hpack: huffman table is not a valid prefix code")
		}
	}
}
