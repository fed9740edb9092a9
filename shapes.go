package glint

import "github.com/chewxy/math32"

// Color is a straight-alpha RGBA color with float32 channels in [0,1].
// The shader premultiplies at the end of the fragment stage.
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{0, 0, 0, 0}
)

func (c Color) vec4() [4]float32 { return [4]float32{c.R, c.G, c.B, c.A} }

// DrawRect submits a filled axis-aligned rectangle. x, y is the top-left
// corner in pixels.
func (r *Renderer) DrawRect(x, y, w, h float32, c Color) {
	r.batch.Submit(Instance{
		Pos:   [2]float32{x + w/2, y + h/2},
		Scale: [2]float32{w / 2, h / 2},
		Kind:  ShapeRect,
		Color: c.vec4(),
		UVMax: [2]float32{1, 1},
	})
}

// DrawRoundedRect submits a filled rectangle with rounded corners.
// radius is clamped to half the smaller dimension.
func (r *Renderer) DrawRoundedRect(x, y, w, h, radius float32, c Color) {
	maxR := math32.Min(w, h) / 2
	r.batch.Submit(Instance{
		Pos:    [2]float32{x + w/2, y + h/2},
		Scale:  [2]float32{w / 2, h / 2},
		Kind:   ShapeRoundedRect,
		Color:  c.vec4(),
		Params: [4]float32{math32.Min(radius, maxR)},
		UVMax:  [2]float32{1, 1},
	})
}

// DrawCircle submits a filled circle centered at cx, cy.
func (r *Renderer) DrawCircle(cx, cy, radius float32, c Color) {
	r.batch.Submit(Instance{
		Pos:   [2]float32{cx, cy},
		Scale: [2]float32{radius, radius},
		Kind:  ShapeCircle,
		Color: c.vec4(),
		UVMax: [2]float32{1, 1},
	})
}

// DrawRing submits a circle outline of the given stroke width.
func (r *Renderer) DrawRing(cx, cy, radius, width float32, c Color) {
	r.batch.Submit(Instance{
		Pos:    [2]float32{cx, cy},
		Scale:  [2]float32{radius, radius},
		Kind:   ShapeRing,
		Color:  c.vec4(),
		Params: [4]float32{width},
		UVMax:  [2]float32{1, 1},
	})
}

// DrawLine submits a line segment of the given width, drawn as a
// rotated rectangle.
func (r *Renderer) DrawLine(x0, y0, x1, y1, width float32, c Color) {
	dx, dy := x1-x0, y1-y0
	length := math32.Hypot(dx, dy)
	if length == 0 {
		return
	}
	r.batch.Submit(Instance{
		Pos:   [2]float32{(x0 + x1) / 2, (y0 + y1) / 2},
		Scale: [2]float32{length / 2, width / 2},
		Rot:   math32.Atan2(dy, dx),
		Kind:  ShapeRect,
		Color: c.vec4(),
		UVMax: [2]float32{1, 1},
	})
}

// DrawSprite submits a textured rectangle. tex must have been registered
// with the batcher; slot is the index RegisterTexture returned. The
// color multiplies the texel, so White draws the texture unmodified.
func (r *Renderer) DrawSprite(x, y, w, h float32, slot uint32, c Color) {
	r.batch.Submit(Instance{
		Pos:      [2]float32{x + w/2, y + h/2},
		Scale:    [2]float32{w / 2, h / 2},
		Kind:     ShapeRect,
		TexIndex: slot,
		Color:    c.vec4(),
		UVMax:    [2]float32{1, 1},
	})
}

// DrawSpriteUV submits a textured rectangle sampling the sub-region
// [uvMin, uvMax] of the texture, for atlases.
func (r *Renderer) DrawSpriteUV(x, y, w, h float32, slot uint32, uvMin, uvMax [2]float32, c Color) {
	r.batch.Submit(Instance{
		Pos:      [2]float32{x + w/2, y + h/2},
		Scale:    [2]float32{w / 2, h / 2},
		Kind:     ShapeRect,
		TexIndex: slot,
		Color:    c.vec4(),
		UVMin:    uvMin,
		UVMax:    uvMax,
	})
}
