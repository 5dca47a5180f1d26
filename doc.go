// Package huffman implements a lossless byte compressor built on Huffman
// codes.
//
// The raw format produced by Pack is a single padding-count byte followed by
// the MSB-first packed code bits.  It carries no code table, so Unpack needs
// the Decoder built from the same Tree.  The archive format produced by
// Compress adds the frequency table and an xxhash64 checksum in front of the
// raw artifact, which makes Decompress independent of the compressing run.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
