package huffman

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireIOError(t *testing.T, err error, how IOErrorHow) {
	t.Helper()
	var ioe *IOError
	require.Error(t, err)
	require.True(t, errors.As(err, &ioe), "expected *IOError, got %T: %v", err, err)
	require.Equal(t, how, ioe.How)
}

func requireDirEntries(t *testing.T, dir string, expect ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	require.ElementsMatch(t, expect, names)
}

func TestDerivedPaths(t *testing.T) {
	type testRow struct {
		src          string
		compressed   string
		decompressed string
	}

	testData := [...]testRow{
		{src: "input.txt", compressed: "input.bin", decompressed: "input_decompressed.txt"},
		{src: filepath.Join("dir", "input.txt"), compressed: filepath.Join("dir", "input.bin"), decompressed: filepath.Join("dir", "input_decompressed.txt")},
		{src: "noext", compressed: "noext.bin", decompressed: "noext_decompressed.txt"},
		{src: filepath.Join("dir.d", "noext"), compressed: filepath.Join("dir.d", "noext.bin"), decompressed: filepath.Join("dir.d", "noext_decompressed.txt")},
		{src: ".profile", compressed: ".profile.bin", decompressed: ".profile_decompressed.txt"},
		{src: "archive.tar.gz", compressed: "archive.tar.bin", decompressed: "archive.tar_decompressed.txt"},
	}
	for _, row := range testData {
		t.Run(row.src, func(t *testing.T) {
			require.Equal(t, row.compressed, CompressedPath(row.src))
			require.Equal(t, row.decompressed, DecompressedPath(row.src))
		})
	}
}

func TestFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.txt")
	data := []byte("It was the best of times, it was the worst of times.\n\x00\xff")
	require.NoError(t, os.WriteFile(src, data, 0o644))

	archive, err := CompressFile(src, "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "input.bin"), archive)

	out, err := DecompressFile(archive, "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "input_decompressed.txt"), out)

	actual, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, data, actual)

	requireDirEntries(t, dir, "input.txt", "input.bin", "input_decompressed.txt")
}

func TestFile_ExplicitDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	archive, err := CompressFile(src, filepath.Join(dir, "empty.huf"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "empty.huf"), archive)

	out, err := DecompressFile(archive, filepath.Join(dir, "empty.out"))
	require.NoError(t, err)

	actual, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Empty(t, actual)
}

func TestFile_SourceUnreadable(t *testing.T) {
	dir := t.TempDir()

	_, err := CompressFile(filepath.Join(dir, "missing.txt"), "")
	requireIOError(t, err, SourceUnreadable)

	_, err = DecompressFile(filepath.Join(dir, "missing.bin"), "")
	requireIOError(t, err, SourceUnreadable)

	requireDirEntries(t, dir)
}

func TestFile_DestinationUnwritable(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(src, []byte("aaabb"), 0o644))

	_, err := CompressFile(src, filepath.Join(dir, "no", "such", "dir", "out.bin"))
	requireIOError(t, err, DestinationUnwritable)

	requireDirEntries(t, dir, "input.txt")
}

func TestFile_CorruptedArchive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.bin")
	require.NoError(t, os.WriteFile(src, []byte("HUF\x01garbage"), 0o644))

	_, err := DecompressFile(src, "")
	requireCorrupted(t, err)

	requireDirEntries(t, dir, "input.bin")
}

func TestFile_DestinationIsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.bin")
	data := []byte("plain bytes that merely end in .bin")
	require.NoError(t, os.WriteFile(src, data, 0o644))

	_, err := CompressFile(src, "")
	requireIOError(t, err, DestinationUnwritable)
	require.ErrorIs(t, err, errSameFile)

	_, err = CompressFile(src, filepath.Join(dir, ".", "data.bin"))
	requireIOError(t, err, DestinationUnwritable)

	_, err = DecompressFile(src, src)
	requireIOError(t, err, DestinationUnwritable)

	actual, err := os.ReadFile(src)
	require.NoError(t, err)
	require.Equal(t, data, actual)
	requireDirEntries(t, dir, "data.bin")
}
