package codec

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitelabs/vitehnsw/graph"
)

func buildTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New([]float64{1, 2, 3, 4}, 5, 5, 10, 20)
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(42, 99))
	for i := 0; i < 40; i++ {
		v := []float64{r.Float64(), r.Float64(), r.Float64(), r.Float64()}
		require.NoError(t, g.Insert(v))
	}
	return g
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := buildTestGraph(t)
	path := filepath.Join(t.TempDir(), "t.vite")

	require.NoError(t, Save(g, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, g.Dimension, loaded.Dimension)
	require.Equal(t, g.ML, loaded.ML)
	require.Equal(t, g.MMax, loaded.MMax)
	require.Equal(t, g.MMax0, loaded.MMax0)
	require.Equal(t, g.EfConstruction, loaded.EfConstruction)
	require.Equal(t, g.LayerCount, loaded.LayerCount)
	require.Equal(t, g.Entrance, loaded.Entrance)
	require.Equal(t, len(g.Nodes), len(loaded.Nodes))

	for i := range g.Nodes {
		require.Equal(t, g.Nodes[i].Index, loaded.Nodes[i].Index)
		require.Equal(t, g.Nodes[i].MaxLevel, loaded.Nodes[i].MaxLevel)
		require.Equal(t, g.Nodes[i].Vector, loaded.Nodes[i].Vector)
		require.Equal(t, g.Nodes[i].Friends, loaded.Nodes[i].Friends)
	}
}

func TestRoundTripPreservesSearchResults(t *testing.T) {
	g := buildTestGraph(t)
	path := filepath.Join(t.TempDir(), "t.vite")
	require.NoError(t, Save(g, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	query := []float64{1, 2, 3, 4}
	want, err := g.KNNSearch(query, 5, 20)
	require.NoError(t, err)
	got, err := loaded.KNNSearch(query, 5, 20)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestResaveIsByteIdentical(t *testing.T) {
	g := buildTestGraph(t)
	dir := t.TempDir()
	path1 := filepath.Join(dir, "first.vite")
	path2 := filepath.Join(dir, "second.vite")

	require.NoError(t, Save(g, path1))
	loaded, err := Load(path1)
	require.NoError(t, err)
	require.NoError(t, Save(loaded, path2))

	b1, err := os.ReadFile(path1)
	require.NoError(t, err)
	b2, err := os.ReadFile(path2)
	require.NoError(t, err)
	require.Equal(t, b1, b2)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.vite")
	header := make([]byte, headerSize)
	copy(header, "vite format 1\x00")
	require.NoError(t, os.WriteFile(path, header, 0o644))

	_, err := Load(path)
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	require.True(t, errors.Is(err, ErrFormatError))
	require.Equal(t, int64(0), formatErr.Offset)
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	g := buildTestGraph(t)
	path := filepath.Join(t.TempDir(), "truncated.vite")
	require.NoError(t, Save(g, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-10], 0o644))

	_, err = Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFormatError))
}

func TestLoadRejectsNodeCountMismatch(t *testing.T) {
	g, err := graph.New([]float64{1, 2}, 5, 5, 10, 20)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "mismatch.vite")
	require.NoError(t, Save(g, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Corrupt the node_count header field to claim one extra node.
	data[29] = data[29] + 1
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFormatError))
}
