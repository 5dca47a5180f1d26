package huffman

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const randSeed = 0x5a025ca11825a5e7

func randomInput(rng *rand.Rand, size int, alphabet int) []byte {
	out := make([]byte, size)
	for i := range out {
		// Squaring skews the distribution so that code lengths vary.
		x := rng.Intn(alphabet)
		out[i] = byte((x * x) / alphabet)
	}
	return out
}

func TestBuildTree_WeightConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	for i := 0; i < 20; i++ {
		data := randomInput(rng, 1+rng.Intn(4096), 1+rng.Intn(NumSymbols))
		freqs := CountFrequencies(data)
		tree := BuildTree(freqs)

		require.Equal(t, freqs.Total(), tree.Weight())
		require.Equal(t, uint64(len(data)), tree.Weight())
		require.Equal(t, 2*freqs.Distinct()-1, tree.Len())

		var leafWeights uint64
		tree.walk(func(sym Symbol, _ Code) {
			leafWeights += freqs[sym]
		})
		require.Equal(t, tree.Weight(), leafWeights)
	}
}

func TestBuildTree_Degenerate(t *testing.T) {
	tree := BuildTree(CountFrequencies([]byte("xxx")))
	require.False(t, tree.IsEmpty())
	require.True(t, tree.IsDegenerate())
	require.Equal(t, 1, tree.Len())
	require.Equal(t, uint64(3), tree.Weight())
	require.Equal(t, 0, tree.Depth())

	var visited []Symbol
	tree.walk(func(sym Symbol, hc Code) {
		require.Equal(t, Code{}, hc)
		visited = append(visited, sym)
	})
	require.Equal(t, []Symbol{'x'}, visited)
}

func TestBuildTree_Empty(t *testing.T) {
	var freqs Frequencies
	tree := BuildTree(freqs)
	require.True(t, tree.IsEmpty())
	require.Equal(t, 0, tree.Len())
	require.Equal(t, uint64(0), tree.Weight())
	tree.walk(func(Symbol, Code) {
		t.Errorf("walk visited a leaf of an empty tree")
	})
}

func TestBuildTree_TieBreak(t *testing.T) {
	// b is lighter, so it is popped first and becomes the left child.
	e := NewEncoder(CountFrequencies([]byte("aaabb")))
	require.Equal(t, MakeCode(1, 1), e.Encode('a'))
	require.Equal(t, MakeCode(1, 0), e.Encode('b'))

	// Equal weights fall back to creation order, i.e. ascending symbol.
	e = NewEncoder(CountFrequencies([]byte("ba")))
	require.Equal(t, MakeCode(1, 0), e.Encode('a'))
	require.Equal(t, MakeCode(1, 1), e.Encode('b'))

	// A leaf and a merged node of equal weight: the leaf was created first.
	e = NewEncoder(CountFrequencies([]byte("aabc")))
	require.Equal(t, MakeCode(1, 0), e.Encode('a'))
	require.Equal(t, MakeCode(2, 2), e.Encode('b'))
	require.Equal(t, MakeCode(2, 3), e.Encode('c'))
}

func TestBuildTree_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	data := randomInput(rng, 10000, NumSymbols)
	freqs := CountFrequencies(data)
	require.Equal(t, BuildTree(freqs), BuildTree(freqs))
	require.Equal(t, NewEncoder(freqs), NewEncoder(freqs))
}

// fibonacciFrequencies gives symbols 0..n-1 the counts 1, 1, 2, 3, 5, ...,
// which makes every merge hang the tree one level deeper.
func fibonacciFrequencies(n int) Frequencies {
	var freqs Frequencies
	a, b := uint64(1), uint64(1)
	for sym := 0; sym < n; sym++ {
		freqs[sym] = a
		a, b = b, a+b
	}
	return freqs
}

func TestBuildTree_DepthMatchesMaxSize(t *testing.T) {
	freqs := fibonacciFrequencies(24)
	tree := BuildTree(freqs)
	var e Encoder
	e.Init(tree)
	require.Equal(t, tree.Depth(), int(e.MaxSize()))
	require.Equal(t, freqs.Total(), tree.Weight())
}

func TestBuildTree_DepthBeyondCodeLimit(t *testing.T) {
	tree := BuildTree(fibonacciFrequencies(70))
	require.Equal(t, 69, tree.Depth())
	require.Equal(t, 139, tree.Len())
}
