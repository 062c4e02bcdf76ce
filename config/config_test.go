package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteThenLoadRoundTripsAgentOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landmass.yml")

	want := Default(0.5)
	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want.toEngine(), got)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestDefaultDerivesNeighbourhoodFromAgentRadius(t *testing.T) {
	c := Default(2)
	require.Equal(t, float32(10), c.Neighbourhood)
}
