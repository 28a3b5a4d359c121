// Package project reads and writes the polygon coordinate files.
//
// The file format is a JSON array with one entry per polygon, each entry an
// array of [x, y] pairs in vertex order:
//
//	[[[0,0],[10,0],[10,10]],[[20,20],[30,20],[30,30]]]
package project

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"clickshapes/pkg/geometry"
)

const (
	// DefaultFileName is the base name suggested by the export dialog.
	DefaultFileName = "polygons"

	// DefaultExtension is appended when the chosen name has no extension.
	DefaultExtension = ".txt"
)

// ErrBadPair is returned by Import when a coordinate is not an [x, y] pair.
var ErrBadPair = errors.New("coordinate must be an [x, y] pair")

// Export serializes polygons as nested [x, y] coordinate lists.
func Export(polygons [][]geometry.Point2D) ([]byte, error) {
	data := make([][][2]float64, 0, len(polygons))
	for _, poly := range polygons {
		coords := make([][2]float64, 0, len(poly))
		for _, p := range poly {
			coords = append(coords, [2]float64{p.X, p.Y})
		}
		data = append(data, coords)
	}
	return json.Marshal(data)
}

// Import parses the format written by Export.
func Import(data []byte) ([][]geometry.Point2D, error) {
	var raw [][][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse polygons: %w", err)
	}

	polygons := make([][]geometry.Point2D, 0, len(raw))
	for i, poly := range raw {
		points := make([]geometry.Point2D, 0, len(poly))
		for j, coord := range poly {
			if len(coord) != 2 {
				return nil, fmt.Errorf("polygon %d vertex %d: %w (got %d values)", i, j, ErrBadPair, len(coord))
			}
			points = append(points, geometry.NewPoint2D(coord[0], coord[1]))
		}
		polygons = append(polygons, points)
	}
	return polygons, nil
}

// WriteFile exports polygons to path, replacing any existing file.
func WriteFile(path string, polygons [][]geometry.Point2D) error {
	data, err := Export(polygons)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile imports polygons from path.
func ReadFile(path string) ([][]geometry.Point2D, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Import(data)
}

// WriteWKT writes one WKT POLYGON per line. Polygons that cannot form a
// ring are skipped and counted.
func WriteWKT(w io.Writer, polygons [][]geometry.Point2D) (skipped int, err error) {
	bw := bufio.NewWriter(w)
	for _, poly := range polygons {
		wkt, err := geometry.WKT(poly)
		if err != nil {
			skipped++
			continue
		}
		if _, err := bw.WriteString(wkt + "\n"); err != nil {
			return skipped, err
		}
	}
	return skipped, bw.Flush()
}

// FileName joins base and ext unless base already carries an extension.
func FileName(base, ext string) string {
	if base == "" {
		base = DefaultFileName
	}
	if filepath.Ext(base) != "" {
		return base
	}
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return base + ext
}
