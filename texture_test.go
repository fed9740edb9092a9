package glint

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/glint/backend"
)

func TestTextureDataFromImageRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(3, 1, color.RGBA{B: 255, A: 255})

	desc := TextureDataFromImage("test", img)
	if desc.Width != 4 || desc.Height != 2 {
		t.Fatalf("size = %dx%d, want 4x2", desc.Width, desc.Height)
	}
	if desc.Format != backend.PixelRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8", desc.Format)
	}
	if len(desc.Pixels) != 4*2*4 {
		t.Fatalf("pixel data = %d bytes, want %d", len(desc.Pixels), 4*2*4)
	}
	// Tight-stride RGBA is used without copying.
	if &desc.Pixels[0] != &img.Pix[0] {
		t.Error("tight-stride RGBA image was copied")
	}
	if desc.Pixels[0] != 255 {
		t.Errorf("pixel (0,0) red = %d, want 255", desc.Pixels[0])
	}
}

func TestTextureDataFromImageConverts(t *testing.T) {
	// Non-RGBA sources are converted to RGBA8.
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	img.SetGray(1, 1, color.Gray{Y: 128})

	desc := TextureDataFromImage("gray", img)
	if desc.Width != 3 || desc.Height != 3 {
		t.Fatalf("size = %dx%d, want 3x3", desc.Width, desc.Height)
	}
	if len(desc.Pixels) != 3*3*4 {
		t.Fatalf("pixel data = %d bytes, want %d", len(desc.Pixels), 3*3*4)
	}
	center := desc.Pixels[(1*3+1)*4]
	if center != 128 {
		t.Errorf("converted center red = %d, want 128", center)
	}
}

func TestTextureDataFromImageSubImage(t *testing.T) {
	// A non-zero-origin bounds rectangle still converts correctly.
	base := image.NewRGBA(image.Rect(0, 0, 8, 8))
	base.SetRGBA(5, 5, color.RGBA{G: 200, A: 255})
	sub := base.SubImage(image.Rect(4, 4, 8, 8)).(*image.RGBA)

	desc := TextureDataFromImage("sub", sub)
	if desc.Width != 4 || desc.Height != 4 {
		t.Fatalf("size = %dx%d, want 4x4", desc.Width, desc.Height)
	}
	// (5,5) in the base is (1,1) in the sub-image.
	if got := desc.Pixels[(1*4+1)*4+1]; got != 200 {
		t.Errorf("green at (1,1) = %d, want 200", got)
	}
}

func TestWhiteTextureDesc(t *testing.T) {
	desc := whiteTextureDesc()
	if desc.Width != 1 || desc.Height != 1 {
		t.Fatalf("size = %dx%d, want 1x1", desc.Width, desc.Height)
	}
	for i, b := range desc.Pixels {
		if b != 0xFF {
			t.Errorf("byte %d = %#x, want 0xFF", i, b)
		}
	}
}
