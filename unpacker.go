package huffman

import (
	"bytes"
	"fmt"
	"io"

	bitstream "github.com/dgryski/go-bitstream"
)

// Unpack reverses Pack.  The Decoder must be derived from the same Tree as
// the Encoder that produced the artifact.
//
// The padding header must be in [1,8] and must not exceed the payload.  The
// payload bits are walked one at a time; every bit sequence must be a prefix
// of some code and the payload must end on a code boundary, otherwise a
// *CorruptedStreamError is returned.  The value of the padding bits is not
// checked.
//
func Unpack(artifact []byte, d Decoder) ([]byte, error) {
	if len(artifact) < headerSize {
		return nil, corrupted(-1, "missing padding header")
	}

	padding := artifact[0]
	if padding < 1 || padding > 8 {
		return nil, corrupted(-1, fmt.Sprintf("padding header %d is outside [1,8]", padding))
	}

	totalBits := int64(len(artifact)-headerSize) * 8
	if totalBits < int64(padding) {
		return nil, corrupted(-1, fmt.Sprintf("padding of %d bits exceeds payload of %d bits", padding, totalBits))
	}
	payloadBits := totalBits - int64(padding)
	log.Debugf("unpacking %d bits with %d bits of padding", payloadBits, padding)

	var out []byte
	if d.MaxSize() != 0 {
		out = make([]byte, 0, payloadBits/int64(d.MaxSize()))
	}

	br := bitstream.NewReader(bytes.NewReader(artifact[headerSize:]))
	var hc Code
	for offset := int64(0); offset < payloadBits; offset++ {
		bit, err := br.ReadBit()
		if err != nil {
			return nil, fmt.Errorf("read bit %d: %w", offset, err)
		}
		if bit == bitstream.One {
			hc = hc.Append(1)
		} else {
			hc = hc.Append(0)
		}

		symbol, minSize, _ := d.Decode(hc)
		if symbol != InvalidSymbol {
			out = append(out, byte(symbol))
			hc = Code{}
			continue
		}
		if minSize == 0 {
			return nil, corrupted(offset, fmt.Sprintf("bits %s are not a prefix of any code", hc))
		}
	}

	if hc.Size != 0 {
		return nil, corrupted(payloadBits, fmt.Sprintf("trailing bits %s do not form a complete code", hc))
	}
	return out, nil
}

// ReadPacked reads a raw artifact from r until EOF and unpacks it.
func ReadPacked(r io.Reader, d Decoder) ([]byte, error) {
	artifact, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return Unpack(artifact, d)
}
