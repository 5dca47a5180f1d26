package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// Frequencies counts the occurrences of each Symbol in some input.  A Symbol
// with a count of zero does not occur in the input.
type Frequencies [NumSymbols]uint64

// CountFrequencies tallies the bytes of data.
func CountFrequencies(data []byte) Frequencies {
	var freqs Frequencies
	freqs.Add(data)
	return freqs
}

// Add adds the bytes of data to the tally.
func (freqs *Frequencies) Add(data []byte) {
	for _, ch := range data {
		freqs[ch]++
	}
}

// Count returns the number of occurrences of sym.
func (freqs *Frequencies) Count(sym Symbol) uint64 {
	if !sym.IsValid() {
		return 0
	}
	return freqs[sym]
}

// Distinct returns the number of Symbols with a non-zero count.
func (freqs *Frequencies) Distinct() int {
	var n int
	for _, count := range freqs {
		if count != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts, i.e. the length of the input.
func (freqs *Frequencies) Total() uint64 {
	var sum uint64
	for _, count := range freqs {
		sum += count
	}
	return sum
}

// Symbols returns the Symbols with a non-zero count, in ascending order.
func (freqs *Frequencies) Symbols() []Symbol {
	out := make([]Symbol, 0, freqs.Distinct())
	for sym, count := range freqs {
		if count != 0 {
			out = append(out, Symbol(sym))
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the non-zero counts to
// the given writer.
func (freqs *Frequencies) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Frequencies{\n")
	for _, sym := range freqs.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%d) = %d\n", sym, freqs[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
