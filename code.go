package huffman

import (
	"fmt"
	"strconv"
)

// maxBitsPerCode is the longest code a Code can hold.
const maxBitsPerCode = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of
	// the Size low bits is the first bit; all higher bits are zero.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits & lowMask(size)}
}

// ParseCode constructs a Code from a string of '0' and '1' characters.
func ParseCode(str string) (Code, error) {
	if len(str) > maxBitsPerCode {
		return Code{}, fmt.Errorf("code %q is longer than %d bits", str, maxBitsPerCode)
	}
	var hc Code
	for _, ch := range str {
		switch ch {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("invalid character %q in code %q", ch, str)
		}
	}
	return hc, nil
}

// Append returns the Code with one more bit at the end.
func (hc Code) Append(bit uint) Code {
	return Code{Size: hc.Size + 1, Bits: (hc.Bits << 1) | uint64(bit&1)}
}

// Parent returns the Code with its last bit removed.  The parent of the empty
// Code is the empty Code.
func (hc Code) Parent() Code {
	if hc.Size == 0 {
		return hc
	}
	return Code{Size: hc.Size - 1, Bits: hc.Bits >> 1}
}

// Sibling returns the Code with its last bit inverted.
func (hc Code) Sibling() Code {
	if hc.Size == 0 {
		return hc
	}
	return Code{Size: hc.Size, Bits: hc.Bits ^ 1}
}

// HasPrefix returns true iff prefix is a (not necessarily proper) prefix of
// this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}

func lowMask(size byte) uint64 {
	if size >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << size) - 1
}
