package glint

import (
	"image"
	"unsafe"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/glint/backend"
)

// TextureDataFromImage converts any image.Image into an RGBA8 texture
// descriptor. Non-RGBA sources are converted; an *image.RGBA with a
// tight stride is used as-is without copying.
func TextureDataFromImage(label string, img image.Image) backend.TextureDesc {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != w*4 {
		converted := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.Copy(converted, image.Point{}, img, b, xdraw.Src, nil)
		rgba = converted
	}

	return backend.TextureDesc{
		Label:  label,
		Width:  w,
		Height: h,
		Format: backend.PixelRGBA8Unorm,
		Pixels: rgba.Pix,
	}
}

// whiteTextureDesc is the 1x1 opaque white fallback occupying argument
// table slot 0. Untextured shapes sample it so the shader needs no
// textured/untextured branch.
func whiteTextureDesc() backend.TextureDesc {
	return backend.TextureDesc{
		Label:  "white fallback",
		Width:  1,
		Height: 1,
		Format: backend.PixelRGBA8Unorm,
		Pixels: []byte{0xFF, 0xFF, 0xFF, 0xFF},
	}
}

// floatBytes views a float32 slice as its raw bytes.
func floatBytes(v []float32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4) //nolint:gosec // fixed-size elements
}

// uint16Bytes views a uint16 slice as its raw bytes.
func uint16Bytes(v []uint16) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*2) //nolint:gosec // fixed-size elements
}
