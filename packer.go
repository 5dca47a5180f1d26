package huffman

import (
	"bytes"
	"fmt"
	"io"

	bitstream "github.com/dgryski/go-bitstream"
)

// headerSize is the size in bytes of the padding-count header.
const headerSize = 1

// PaddingFor returns the number of zero bits appended to an encoded bit
// string of length n.  The result is always in [1,8]: a payload that is
// already byte aligned gets a full byte of padding.
func PaddingFor(n uint64) byte {
	return byte(8 - n%8)
}

// PackedSize returns the size in bytes of the raw artifact for an encoded bit
// string of length n.
func PackedSize(n uint64) int64 {
	return headerSize + int64((n+uint64(PaddingFor(n)))/8)
}

// Pack encodes data with e and returns the raw artifact: one byte holding the
// padding count, then the codes of data in order, then the padding, packed
// most significant bit first.
func Pack(data []byte, e Encoder) []byte {
	var buf bytes.Buffer
	buf.Grow(int(PackedSize(e.EncodedSize(data))))
	if _, err := WritePacked(&buf, data, e); err != nil {
		panic(fmt.Errorf("BUG: bytes.Buffer.Write failed: %w", err))
	}
	return buf.Bytes()
}

// WritePacked writes the raw artifact for data to w.  It returns the number
// of bytes written.
func WritePacked(w io.Writer, data []byte, e Encoder) (int64, error) {
	n := e.EncodedSize(data)
	padding := PaddingFor(n)
	log.Debugf("packing %d symbols into %d bits with %d bits of padding", len(data), n, padding)

	bw := bitstream.NewWriter(w)
	if err := bw.WriteByte(padding); err != nil {
		return 0, fmt.Errorf("write padding header: %w", err)
	}
	for _, ch := range data {
		hc := e.Encode(Symbol(ch))
		if err := bw.WriteBits(hc.Bits, int(hc.Size)); err != nil {
			return 0, fmt.Errorf("write code %s: %w", hc, err)
		}
	}
	if err := bw.WriteBits(0, int(padding)); err != nil {
		return 0, fmt.Errorf("write padding: %w", err)
	}

	// The payload is byte aligned by now, so Flush writes nothing.
	if err := bw.Flush(bitstream.Zero); err != nil {
		return 0, fmt.Errorf("flush: %w", err)
	}
	return PackedSize(n), nil
}
