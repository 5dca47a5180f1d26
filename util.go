package huffman

import (
	mathbits "math/bits"
	"path/filepath"
)

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

// trimExt returns path without the extension of its final element.  A
// leading dot ("dir/.profile") is part of the name, not an extension.
func trimExt(path string) string {
	ext := filepath.Ext(path)
	if ext == "" || len(ext) == len(filepath.Base(path)) {
		return path
	}
	return path[:len(path)-len(ext)]
}
