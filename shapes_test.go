package glint

import "testing"

// lastInstance returns the most recently submitted, not yet flushed
// instance.
func lastInstance(t *testing.T, r *Renderer) Instance {
	t.Helper()
	if r.batch.count == 0 {
		t.Fatal("no pending instances")
	}
	return r.batch.instances[r.batch.count-1]
}

func TestDrawRect(t *testing.T) {
	r, _ := newTestRenderer(t, nil)
	r.BeginFrame()

	r.DrawRect(10, 20, 100, 40, Black)
	inst := lastInstance(t, r)

	if inst.Pos != [2]float32{60, 40} {
		t.Errorf("Pos = %v, want center {60 40}", inst.Pos)
	}
	if inst.Scale != [2]float32{50, 20} {
		t.Errorf("Scale = %v, want half-extents {50 20}", inst.Scale)
	}
	if inst.Kind != ShapeRect {
		t.Errorf("Kind = %v, want ShapeRect", inst.Kind)
	}
	if inst.TexIndex != 0 {
		t.Errorf("TexIndex = %d, want 0 (fallback)", inst.TexIndex)
	}
	if inst.Color != [4]float32{0, 0, 0, 1} {
		t.Errorf("Color = %v, want opaque black", inst.Color)
	}
	if inst.UVMax != [2]float32{1, 1} {
		t.Errorf("UVMax = %v, want {1 1}", inst.UVMax)
	}
}

func TestDrawRoundedRectClampsRadius(t *testing.T) {
	r, _ := newTestRenderer(t, nil)
	r.BeginFrame()

	// Radius larger than half the short side is clamped.
	r.DrawRoundedRect(0, 0, 100, 20, 50, White)
	inst := lastInstance(t, r)
	if inst.Kind != ShapeRoundedRect {
		t.Errorf("Kind = %v, want ShapeRoundedRect", inst.Kind)
	}
	if got := inst.Params[0]; got != 10 {
		t.Errorf("radius param = %v, want 10 (clamped to h/2)", got)
	}
}

func TestDrawCircle(t *testing.T) {
	r, _ := newTestRenderer(t, nil)
	r.BeginFrame()

	r.DrawCircle(30, 40, 15, White)
	inst := lastInstance(t, r)
	if inst.Pos != [2]float32{30, 40} {
		t.Errorf("Pos = %v, want {30 40}", inst.Pos)
	}
	if inst.Scale != [2]float32{15, 15} {
		t.Errorf("Scale = %v, want {15 15}", inst.Scale)
	}
	if inst.Kind != ShapeCircle {
		t.Errorf("Kind = %v, want ShapeCircle", inst.Kind)
	}
}

func TestDrawRing(t *testing.T) {
	r, _ := newTestRenderer(t, nil)
	r.BeginFrame()

	r.DrawRing(10, 10, 8, 2, White)
	inst := lastInstance(t, r)
	if inst.Kind != ShapeRing {
		t.Errorf("Kind = %v, want ShapeRing", inst.Kind)
	}
	if got := inst.Params[0]; got != 2 {
		t.Errorf("width param = %v, want 2", got)
	}
}

func TestDrawLine(t *testing.T) {
	r, _ := newTestRenderer(t, nil)
	r.BeginFrame()

	r.DrawLine(0, 0, 30, 40, 4, White)
	inst := lastInstance(t, r)
	if inst.Pos != [2]float32{15, 20} {
		t.Errorf("Pos = %v, want midpoint {15 20}", inst.Pos)
	}
	// 3-4-5 triangle: the segment is 50 long.
	if inst.Scale != [2]float32{25, 2} {
		t.Errorf("Scale = %v, want {25 2}", inst.Scale)
	}
	if inst.Rot == 0 {
		t.Error("Rot = 0 for a diagonal line")
	}
}

func TestDrawLineZeroLength(t *testing.T) {
	r, _ := newTestRenderer(t, nil)
	r.BeginFrame()

	before := r.batch.Pending()
	r.DrawLine(5, 5, 5, 5, 1, White)
	if got := r.batch.Pending(); got != before {
		t.Errorf("zero-length line submitted an instance (%d -> %d)", before, got)
	}
}

func TestDrawSpriteUV(t *testing.T) {
	r, _ := newTestRenderer(t, nil)
	r.BeginFrame()

	r.DrawSpriteUV(0, 0, 16, 16, 1, [2]float32{0.25, 0.5}, [2]float32{0.75, 1}, White)
	inst := lastInstance(t, r)
	if inst.TexIndex != 1 {
		t.Errorf("TexIndex = %d, want 1", inst.TexIndex)
	}
	if inst.UVMin != [2]float32{0.25, 0.5} {
		t.Errorf("UVMin = %v, want {0.25 0.5}", inst.UVMin)
	}
	if inst.UVMax != [2]float32{0.75, 1} {
		t.Errorf("UVMax = %v, want {0.75 1}", inst.UVMax)
	}
}
