package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{0, 0, 0, 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{255, 96, 48, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		format string
		encode func(*bytes.Buffer) error
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, checker()) }},
		{"bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, checker()) }},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}
			img, format, err := Decode(buf.Bytes())
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %q, want %q", format, tt.format)
			}
			rgba := ImageToRGBA(img)
			if got := rgba.RGBAAt(0, 0); got != (color.RGBA{255, 96, 48, 255}) {
				t.Errorf("pixel (0,0) = %v", got)
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, _, err := Decode([]byte("not an image")); err == nil {
		t.Error("Decode() accepted garbage")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "14.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, checker()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("width = %d, want 4", img.Bounds().Dx())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.png")); !os.IsNotExist(err) {
		t.Errorf("LoadFile(missing) error = %v, want not-exist", err)
	}
}

func TestImageToRGBAOffsetOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 12))
	src.SetRGBA(10, 10, color.RGBA{1, 2, 3, 4})
	out := ImageToRGBA(src)
	if out.Rect.Min != (image.Point{}) || out.RGBAAt(0, 0) != (color.RGBA{1, 2, 3, 4}) {
		t.Errorf("ImageToRGBA() rect %v pixel %v", out.Rect, out.RGBAAt(0, 0))
	}
	packed := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if ImageToRGBA(packed) != packed {
		t.Error("ImageToRGBA() copied an already packed image")
	}
}

func TestSoftDisc(t *testing.T) {
	img := SoftDisc(32)
	if c := img.RGBAAt(16, 16); c.A < 250 {
		t.Errorf("centre alpha = %d, want near 255", c.A)
	}
	if c := img.RGBAAt(0, 0); c.A != 0 {
		t.Errorf("corner alpha = %d, want 0", c.A)
	}
	if SoftDisc(0).Rect.Dx() != 2 {
		t.Error("SoftDisc(0) not raised to the minimum size")
	}
}

func TestSolid(t *testing.T) {
	c := color.RGBA{255, 255, 255, 255}
	if got := Solid(c).RGBAAt(0, 0); got != c {
		t.Errorf("Solid() pixel = %v", got)
	}
}
