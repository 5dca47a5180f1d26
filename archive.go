package huffman

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// archiveMagic starts every archive.  The last byte is the format version.
const archiveMagic = "HUF\x01"

// Archive layout:
//
//     magic     "HUF\x01"
//     length    uvarint, original size in bytes
//     count     uvarint, number of distinct symbols
//     entries   count × { symbol byte, frequency uvarint }, ascending symbol
//     checksum  8 bytes, big-endian xxhash64 of the original bytes
//     artifact  raw artifact as written by WritePacked
//
// The tree builder is deterministic, so the frequency table is enough to
// rebuild the exact code that the artifact was packed with.

type archiveHeader struct {
	length   uint64
	freqs    Frequencies
	checksum uint64
}

// Compress returns the archive for data.
func Compress(data []byte) []byte {
	var buf bytes.Buffer
	if _, err := WriteArchive(&buf, data); err != nil {
		panic(fmt.Errorf("BUG: bytes.Buffer.Write failed: %w", err))
	}
	return buf.Bytes()
}

// Decompress reverses Compress.
func Decompress(archive []byte) ([]byte, error) {
	return ReadArchive(bytes.NewReader(archive))
}

// WriteArchive writes the archive for data to w.  It returns the number of
// bytes written.
func WriteArchive(w io.Writer, data []byte) (int64, error) {
	hdr := archiveHeader{
		length:   uint64(len(data)),
		freqs:    CountFrequencies(data),
		checksum: xxhash.Sum64(data),
	}

	raw := hdr.marshal()
	n, err := w.Write(raw)
	if err != nil {
		return int64(n), fmt.Errorf("write archive header: %w", err)
	}

	var e Encoder
	e.Init(BuildTree(hdr.freqs))
	m, err := WritePacked(w, data, e)
	if err != nil {
		return int64(n), err
	}
	log.Debugf("archived %d bytes as %d header bytes + %d packed bytes", len(data), n, m)
	return int64(n) + m, nil
}

// ReadArchive reads an archive from r until EOF and returns the original
// bytes.  Any inconsistency between the header and the payload, including a
// checksum mismatch, is reported as a *CorruptedStreamError.
func ReadArchive(r io.Reader) ([]byte, error) {
	hr := &headerReader{r: r}
	br := bufio.NewReader(hr)

	var hdr archiveHeader
	if err := hdr.unmarshal(br, hr); err != nil {
		return nil, err
	}

	tree := BuildTree(hdr.freqs)
	if depth := tree.Depth(); depth > maxBitsPerCode {
		return nil, corrupted(-1, fmt.Sprintf("frequency table yields codes of %d bits, longer than %d", depth, maxBitsPerCode))
	}

	var e Encoder
	e.Init(tree)
	var d Decoder
	d.Init(e)

	data, err := ReadPacked(br, d)
	if err != nil {
		return nil, err
	}

	if uint64(len(data)) != hdr.length {
		return nil, corrupted(-1, fmt.Sprintf("decoded %d bytes, header promised %d", len(data), hdr.length))
	}
	if sum := xxhash.Sum64(data); sum != hdr.checksum {
		return nil, corrupted(-1, fmt.Sprintf("checksum mismatch: got %016x, header has %016x", sum, hdr.checksum))
	}
	return data, nil
}

func (hdr *archiveHeader) marshal() []byte {
	symbols := hdr.freqs.Symbols()
	out := make([]byte, 0, len(archiveMagic)+2*binary.MaxVarintLen64+len(symbols)*4+8)
	out = append(out, archiveMagic...)
	out = binary.AppendUvarint(out, hdr.length)
	out = binary.AppendUvarint(out, uint64(len(symbols)))
	for _, sym := range symbols {
		out = append(out, byte(sym))
		out = binary.AppendUvarint(out, hdr.freqs[sym])
	}
	out = binary.BigEndian.AppendUint64(out, hdr.checksum)
	return out
}

func (hdr *archiveHeader) unmarshal(br *bufio.Reader, hr *headerReader) error {
	var magic [len(archiveMagic)]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return hr.headerError("magic", err)
	}
	if string(magic[:]) != archiveMagic {
		return corrupted(-1, fmt.Sprintf("bad magic %q", magic[:]))
	}

	length, err := binary.ReadUvarint(br)
	if err != nil {
		return hr.headerError("length", err)
	}

	count, err := binary.ReadUvarint(br)
	if err != nil {
		return hr.headerError("symbol count", err)
	}
	if count > NumSymbols {
		return corrupted(-1, fmt.Sprintf("symbol count %d exceeds %d", count, NumSymbols))
	}

	var freqs Frequencies
	var total uint64
	last := InvalidSymbol
	for i := uint64(0); i < count; i++ {
		ch, err := br.ReadByte()
		if err != nil {
			return hr.headerError("symbol", err)
		}
		sym := Symbol(ch)
		if sym <= last {
			return corrupted(-1, fmt.Sprintf("symbol %d follows symbol %d", sym, last))
		}
		last = sym

		freq, err := binary.ReadUvarint(br)
		if err != nil {
			return hr.headerError("frequency", err)
		}
		if freq == 0 {
			return corrupted(-1, fmt.Sprintf("symbol %d has frequency 0", sym))
		}
		if total+freq < total {
			return corrupted(-1, "frequency total overflows")
		}
		total += freq
		freqs[sym] = freq
	}
	if total != length {
		return corrupted(-1, fmt.Sprintf("frequencies sum to %d, header promised %d", total, length))
	}

	var sum [8]byte
	if _, err := io.ReadFull(br, sum[:]); err != nil {
		return hr.headerError("checksum", err)
	}

	*hdr = archiveHeader{
		length:   length,
		freqs:    freqs,
		checksum: binary.BigEndian.Uint64(sum[:]),
	}
	return nil
}

// headerReader remembers the last error returned by the underlying reader,
// so that malformed varints can be told apart from I/O failures.
type headerReader struct {
	r   io.Reader
	err error
}

func (hr *headerReader) Read(p []byte) (int, error) {
	n, err := hr.r.Read(p)
	if err != nil {
		hr.err = err
	}
	return n, err
}

func (hr *headerReader) headerError(field string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return corrupted(-1, "truncated archive header at "+field)
	}
	if hr.err == nil || !errors.Is(err, hr.err) {
		return corrupted(-1, fmt.Sprintf("invalid %s in archive header: %v", field, err))
	}
	return fmt.Errorf("read archive %s: %w", field, err)
}
