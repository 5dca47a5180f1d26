package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Encoder maps each Symbol to its Huffman code.
type Encoder struct {
	codes    [NumSymbols]Code
	numCodes int
	minSize  byte
	maxSize  byte
}

// NewEncoder is a convenience function that builds the Tree for freqs and
// returns the Encoder derived from it.
func NewEncoder(freqs Frequencies) Encoder {
	var e Encoder
	e.Init(BuildTree(freqs))
	return e
}

// Init initializes this Encoder from the paths of the given Tree: a left
// edge is a 0 bit and a right edge is a 1 bit.
//
// The single leaf of a degenerate tree is assigned the code "0", because an
// empty code could not be told apart from the padding.
//
func (e *Encoder) Init(t Tree) {
	*e = Encoder{}

	t.walk(func(sym Symbol, hc Code) {
		if hc.Size == 0 {
			hc = hc.Append(0)
		}
		assert.Assertf(e.codes[sym].Size == 0, "symbol %d reached twice", sym)

		e.codes[sym] = hc
		if e.numCodes == 0 {
			e.minSize = hc.Size
			e.maxSize = hc.Size
		} else if e.minSize > hc.Size {
			e.minSize = hc.Size
		} else if e.maxSize < hc.Size {
			e.maxSize = hc.Size
		}
		e.numCodes++
	})
}

// Encode encodes a Symbol into a Huffman-coded bit string.  The Symbol must
// be one the Encoder was built for.
func (e Encoder) Encode(symbol Symbol) Code {
	hc, found := e.Lookup(symbol)
	assert.Assertf(found, "symbol %d has no code", symbol)
	return hc
}

// Lookup returns the code for a Symbol, or false if the Symbol has none.
func (e Encoder) Lookup(symbol Symbol) (Code, bool) {
	if !symbol.IsValid() {
		return Code{}, false
	}
	hc := e.codes[symbol]
	return hc, hc.Size != 0
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.maxSize
}

// NumCodes is the number of Symbols that have a code.
func (e Encoder) NumCodes() int {
	return e.numCodes
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet, or 0 for Symbols without a code.
func (e Encoder) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol := range e.codes {
		out[symbol] = e.codes[symbol].Size
	}
	return out
}

// EncodedSize returns the number of bits needed to encode data, not counting
// the padding header or the padding.
func (e Encoder) EncodedSize(data []byte) uint64 {
	var n uint64
	for _, ch := range data {
		n += uint64(e.Encode(Symbol(ch)).Size)
	}
	return n
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.  Symbols without a code are omitted.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	for symbol := range e.codes {
		hc := e.codes[symbol]
		if hc.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
