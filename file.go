package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// CompressedExt replaces the extension of a compressed file.
	CompressedExt = ".bin"

	// DecompressedSuffix replaces the extension of a decompressed file.
	DecompressedSuffix = "_decompressed.txt"
)

// CompressedPath returns the default destination for compressing src: the
// same path with its extension replaced by ".bin".
func CompressedPath(src string) string {
	return trimExt(src) + CompressedExt
}

// DecompressedPath returns the default destination for decompressing src:
// the same path with its extension replaced by "_decompressed.txt".
func DecompressedPath(src string) string {
	return trimExt(src) + DecompressedSuffix
}

// CompressFile reads src and writes its archive to dst, or to
// CompressedPath(src) if dst is empty.  It returns the destination path.
//
// Failures to read src or to write dst are reported as *IOError; on failure
// nothing is left at dst.
//
func CompressFile(src, dst string) (string, error) {
	if dst == "" {
		dst = CompressedPath(src)
	}
	if err := checkDistinct(src, dst); err != nil {
		return "", err
	}

	data, err := readSource(src)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		log.Debugf("%s is empty", src)
	}

	err = writeDestination(dst, func(w io.Writer) error {
		_, err := WriteArchive(w, data)
		return err
	})
	if err != nil {
		return "", err
	}
	log.Debugf("compressed %s (%d bytes) to %s", src, len(data), dst)
	return dst, nil
}

// DecompressFile reads the archive src and writes the original bytes to dst,
// or to DecompressedPath(src) if dst is empty.  It returns the destination
// path.
//
// Failures to read src or to write dst are reported as *IOError, and a
// damaged archive as *CorruptedStreamError; on failure nothing is left at
// dst.
//
func DecompressFile(src, dst string) (string, error) {
	if dst == "" {
		dst = DecompressedPath(src)
	}
	if err := checkDistinct(src, dst); err != nil {
		return "", err
	}

	archive, err := readSource(src)
	if err != nil {
		return "", err
	}

	data, err := Decompress(archive)
	if err != nil {
		return "", fmt.Errorf("decompress %q: %w", src, err)
	}

	err = writeDestination(dst, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return "", err
	}
	log.Debugf("decompressed %s to %s (%d bytes)", src, dst, len(data))
	return dst, nil
}

// errSameFile is wrapped by the *IOError returned when the destination of an
// operation would replace its source.
var errSameFile = errors.New("destination is the source file")

// checkDistinct refuses a destination that names the same file as the
// source, either by path or, when both exist, by identity.
func checkDistinct(src, dst string) error {
	absSrc, srcErr := filepath.Abs(src)
	absDst, dstErr := filepath.Abs(dst)
	if srcErr == nil && dstErr == nil && absSrc == absDst {
		return &IOError{How: DestinationUnwritable, Path: dst, Err: errSameFile}
	}

	srcInfo, srcErr := os.Stat(src)
	dstInfo, dstErr := os.Stat(dst)
	if srcErr == nil && dstErr == nil && os.SameFile(srcInfo, dstInfo) {
		return &IOError{How: DestinationUnwritable, Path: dst, Err: errSameFile}
	}
	return nil
}

func readSource(src string) ([]byte, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, &IOError{How: SourceUnreadable, Path: src, Err: err}
	}
	return data, nil
}

// writeDestination runs fn against a temporary file next to dst and renames
// it into place once everything has been written.  The temporary file is
// removed if anything fails.
func writeDestination(dst string, fn func(io.Writer) error) (err error) {
	dir, base := filepath.Split(dst)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return &IOError{How: DestinationUnwritable, Path: dst, Err: err}
	}
	tmp := f.Name()

	defer func() {
		if err != nil {
			_ = f.Close()
			if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				log.Warningf("failed to remove %s: %v", tmp, rmErr)
			}
		}
	}()

	if err = f.Chmod(0o644); err != nil {
		return &IOError{How: DestinationUnwritable, Path: dst, Err: err}
	}

	bw := bufio.NewWriter(f)
	if err = fn(bw); err != nil {
		return &IOError{How: DestinationUnwritable, Path: dst, Err: err}
	}
	if err = bw.Flush(); err != nil {
		return &IOError{How: DestinationUnwritable, Path: dst, Err: err}
	}
	if err = f.Close(); err != nil {
		return &IOError{How: DestinationUnwritable, Path: dst, Err: err}
	}
	if err = os.Rename(tmp, dst); err != nil {
		return &IOError{How: DestinationUnwritable, Path: dst, Err: err}
	}
	return nil
}
