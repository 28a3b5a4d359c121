package project

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"clickshapes/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePolygons() [][]geometry.Point2D {
	return [][]geometry.Point2D{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		{{X: 20.25, Y: 20.5}, {X: 30.125, Y: 20}, {X: 30, Y: 31.75}, {X: 1e-7, Y: 123456.789}},
	}
}

func TestExport_Format(t *testing.T) {
	data, err := Export(samplePolygons()[:1])
	require.NoError(t, err)
	assert.Equal(t, `[[[0,0],[10,0],[10,10]]]`, string(data))
}

func TestExport_Empty(t *testing.T) {
	data, err := Export(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestRoundTrip(t *testing.T) {
	in := samplePolygons()

	data, err := Export(in)
	require.NoError(t, err)

	out, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		isBad bool
	}{
		{"not json", `hello`, false},
		{"wrong nesting", `[[1,2]]`, false},
		{"three values", `[[[1,2,3]]]`, true},
		{"one value", `[[[1]]]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import([]byte(tt.input))
			require.Error(t, err)
			if tt.isBad {
				assert.ErrorIs(t, err, ErrBadPair)
			}
		})
	}
}

func TestImport_EmptyPolygon(t *testing.T) {
	out, err := Import([]byte(`[[]]`))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0])
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName("", ""))
	require.NoError(t, WriteFile(path, samplePolygons()))

	out, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, samplePolygons(), out)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestWriteWKT(t *testing.T) {
	polys := append(samplePolygons(), []geometry.Point2D{{X: 1, Y: 1}})

	var buf bytes.Buffer
	skipped, err := WriteWKT(&buf, polys)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "POLYGON"))
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "polygons.txt", FileName("", ""))
	assert.Equal(t, "shapes.json", FileName("shapes", "json"))
	assert.Equal(t, "shapes.csv", FileName("shapes.csv", ".txt"))
}
