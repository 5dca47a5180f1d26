package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Decoder maps Huffman codes back to Symbols.  Besides the complete codes, it
// knows every proper prefix of a code, so that a decoder reading one bit at a
// time can tell "need more bits" apart from "no such code".
type Decoder struct {
	table    map[Code]prefixEntry
	numCodes int
	minSize  byte
	maxSize  byte
}

// NewDecoder is a convenience function that returns the Decoder for the
// codes of e.
func NewDecoder(e Encoder) Decoder {
	var d Decoder
	d.Init(e)
	return d
}

// Init initializes this Decoder as the inverse of the given Encoder.  The
// Encoder must come from the same Tree that the data was encoded with.
func (d *Decoder) Init(e Encoder) {
	if e.NumCodes() == 0 {
		*d = Decoder{}
		return
	}

	// len(table) is approximately n×log2(n) when filled.
	numCodes := uint32(e.NumCodes())
	numTableSlots := numCodes * log2uint32(numCodes)

	*d = Decoder{
		table:    make(map[Code]prefixEntry, numTableSlots),
		numCodes: e.NumCodes(),
		minSize:  e.MinSize(),
		maxSize:  e.MaxSize(),
	}

	for symbol := Symbol(0); symbol <= MaxSymbol; symbol++ {
		if hc, found := e.Lookup(symbol); found {
			fillTable(d.table, symbol, hc)
		}
	}
}

// Decode looks up the bits read so far.  A bit-by-bit reader appends each
// new bit to hc and calls Decode again, until one of three things happens:
//
//   - hc is a complete code: symbol is its Symbol and both sizes equal
//     hc.Size.  The reader emits symbol and starts over with an empty Code.
//   - hc is a proper prefix of some codes: symbol is InvalidSymbol and the
//     codes below hc are between minSize and maxSize bits long.
//   - hc leads to no code at all: symbol is InvalidSymbol and both sizes are
//     zero.  The input is corrupt.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	entry, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return entry.symbol, entry.minSize, entry.maxSize
}

// MinSize returns the length of the shortest code, in bits.
func (d Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize returns the length of the longest code, in bits.  Unpack reads at
// most this many bits before the candidate code resolves.
func (d Decoder) MaxSize() byte {
	return d.maxSize
}

// NumCodes is the number of Symbols that can be decoded.
func (d Decoder) NumCodes() int {
	return d.numCodes
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make([]Code, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	sort.Slice(keys, func(i, j int) bool { return codeLess(keys[i], keys[j]) })
	for _, hc := range keys {
		entry := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, entry.symbol, entry.minSize, entry.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// prefixEntry describes one node of the code tree as seen from its path: a
// leaf carries its Symbol, an inner node carries InvalidSymbol, and both
// carry the size range of the codes at or below the node.
type prefixEntry struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

// fillTable records the leaf for symbol at hc, then walks up through the
// parents of hc, widening each parent's size range to cover both of its
// children.  The walk stops at the first parent whose entry does not change.
func fillTable(table map[Code]prefixEntry, symbol Symbol, hc Code) {
	entry := prefixEntry{symbol, hc.Size, hc.Size}
	table[hc] = entry

	for hc.Size != 0 {
		parent := prefixEntry{InvalidSymbol, entry.minSize, entry.maxSize}
		if sibling, found := table[hc.Sibling()]; found {
			if parent.minSize > sibling.minSize {
				parent.minSize = sibling.minSize
			}
			if parent.maxSize < sibling.maxSize {
				parent.maxSize = sibling.maxSize
			}
		}

		hc = hc.Parent()
		if old, found := table[hc]; found && old == parent {
			break
		}
		table[hc] = parent
		entry = parent
	}
}

// codeLess orders codes by size, then by value.
func codeLess(a, b Code) bool {
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Bits < b.Bits
}
