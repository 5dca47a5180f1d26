package huffman

import (
	"strconv"
)

// IOErrorHow describes which side of a file operation failed.
type IOErrorHow int

const (
	IOErrorUnknown IOErrorHow = iota
	SourceUnreadable
	DestinationUnwritable
)

// String returns the string representation of this IOErrorHow.
func (how IOErrorHow) String() string {
	switch how {
	case SourceUnreadable:
		return "source unreadable"
	case DestinationUnwritable:
		return "destination unwritable"
	default:
		return "I/O error"
	}
}

// IOError reports a file that could not be read or written.  Nothing is left
// at the destination path when an IOError is returned.
type IOError struct {
	How  IOErrorHow
	Path string
	Err  error
}

func (ioe *IOError) Error() string {
	str := ioe.How.String() + ": " + strconv.Quote(ioe.Path)
	if ioe.Err != nil {
		str += ": " + ioe.Err.Error()
	}
	return str
}

func (ioe *IOError) Unwrap() error {
	return ioe.Err
}

// CorruptedStreamError reports input that cannot be decoded: a bad padding
// header, bits that never resolve to a Symbol, or an archive whose metadata
// or checksum does not match its payload.
type CorruptedStreamError struct {
	// Offset is the bit offset into the payload where the problem was
	// found, or -1 if the problem is not tied to a position.
	Offset int64
	Reason string
}

func (cse *CorruptedStreamError) Error() string {
	str := "corrupted stream"
	if cse.Offset >= 0 {
		str += " at bit " + strconv.FormatInt(cse.Offset, 10)
	}
	return str + ": " + cse.Reason
}

func corrupted(offset int64, reason string) *CorruptedStreamError {
	return &CorruptedStreamError{Offset: offset, Reason: reason}
}
