package world

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/Faultbox/roadgen/internal/conform"
	"github.com/Faultbox/roadgen/pkg/math"
)

// ErrNotSquare is returned for heightmap images whose sides differ.
var ErrNotSquare = errors.New("heightmap is not square")

// Heightmap image formats.
const (
	FormatPNG  = "png"
	FormatTIFF = "tiff"
)

// FormatForPath picks the heightmap format from a file extension. Anything
// that is not .tif or .tiff is PNG.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return FormatTIFF
	default:
		return FormatPNG
	}
}

// ReadHeightmap decodes a grayscale PNG or TIFF into a normalized [z][x]
// grid. Image row y becomes grid row z.
func ReadHeightmap(r io.Reader) ([][]float32, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode heightmap: %w", err)
	}
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%dx%d: %w", b.Dx(), b.Dy(), ErrNotSquare)
	}

	heights := make([][]float32, b.Dy())
	for z := range heights {
		heights[z] = make([]float32, b.Dx())
		for x := range heights[z] {
			g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+z)).(color.Gray16)
			heights[z][x] = float32(g.Y) / 0xffff
		}
	}
	return heights, nil
}

// WriteHeightmap encodes a [z][x] grid as a 16-bit grayscale image.
func WriteHeightmap(w io.Writer, heights [][]float32, format string) error {
	n := len(heights)
	img := image.NewGray16(image.Rect(0, 0, n, n))
	for z, row := range heights {
		if len(row) != n {
			return fmt.Errorf("row %d has %d samples, want %d: %w", z, len(row), n, ErrNotSquare)
		}
		for x, h := range row {
			img.SetGray16(x, z, color.Gray16{Y: uint16(math.Clamp01(h)*0xffff + 0.5)})
		}
	}

	switch format {
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatPNG, "":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported heightmap format %q", format)
	}
}

// LoadHeightmap reads a heightmap file.
func LoadHeightmap(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open heightmap: %w", err)
	}
	defer f.Close()
	return ReadHeightmap(f)
}

// SaveHeightmap writes heights to path in the format its extension names.
func SaveHeightmap(path string, heights [][]float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create heightmap: %w", err)
	}
	if err := WriteHeightmap(f, heights, FormatForPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadTerrain builds a terrain from a heightmap file.
func LoadTerrain(path string, id conform.TerrainID, origin, scale math.Vec3) (*Terrain, error) {
	heights, err := LoadHeightmap(path)
	if err != nil {
		return nil, err
	}
	t := NewTerrain(id, len(heights), origin, scale)
	t.Heights = heights
	return t, nil
}
