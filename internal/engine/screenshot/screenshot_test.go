package screenshot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixed(c *Capture) *Capture {
	c.now = func() time.Time { return time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC) }
	return c
}

func TestFilename(t *testing.T) {
	c := fixed(New("shots", "road"))
	want := filepath.Join("shots", "road_2024-05-01_13-04-05.png")
	if got := c.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestSavePixelsFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := fixed(New(dir, "road"))

	// Bottom row red, top row blue, as OpenGL returns them.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	path, err := c.SavePixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("SavePixels: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b != 0xffff {
		t.Errorf("top-left should be blue, got r=%d b=%d", r, b)
	}
	if r, _, b, _ := img.At(1, 1).RGBA(); r != 0xffff || b != 0 {
		t.Errorf("bottom-right should be red, got r=%d b=%d", r, b)
	}
}

func TestSavePixelsSizeMismatch(t *testing.T) {
	c := New(t.TempDir(), "road")
	if _, err := c.SavePixels(make([]byte, 7), 2, 1); err == nil {
		t.Error("expected size mismatch error")
	}
}
