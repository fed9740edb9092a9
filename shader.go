package glint

import (
	"fmt"
	"strings"
)

// BatchShaderWGSL generates the WGSL shader used by the batch pipeline
// for an argument table with maxTextures slots. The texture array is
// expanded to one binding per slot with a switch in the fragment stage,
// which works on every backend without requiring a bindless or
// binding_array extension.
//
// Bind groups:
//
//	group(0) binding(0)              the batch sampler
//	group(0) binding(1..maxTextures) argument table texture slots
//	group(1) binding(0)              viewport size uniform (backend-owned)
//
// Vertex streams:
//
//	slot 0  per-vertex   unit quad corner in [-1,1]
//	slot 1  per-instance Instance, field for field
func BatchShaderWGSL(maxTextures int) string {
	if maxTextures < 1 {
		panic(fmt.Sprintf("glint: shader texture count must be positive, got %d", maxTextures))
	}

	var sb strings.Builder

	sb.WriteString(`struct InstanceIn {
    @location(1) pos: vec2<f32>,
    @location(2) scale: vec2<f32>,
    @location(3) rot: f32,
    @location(4) kind: u32,
    @location(5) tex_index: u32,
    @location(6) color: vec4<f32>,
    @location(7) params: vec4<f32>,
    @location(8) uv_min: vec2<f32>,
    @location(9) uv_max: vec2<f32>,
}

struct VertexOut {
    @builtin(position) clip_pos: vec4<f32>,
    @location(0) local: vec2<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) color: vec4<f32>,
    @location(3) params: vec4<f32>,
    @location(4) scale: vec2<f32>,
    @location(5) @interpolate(flat) kind: u32,
    @location(6) @interpolate(flat) tex_index: u32,
}

@group(1) @binding(0) var<uniform> viewport: vec2<f32>;

@vertex
fn vs_main(@location(0) corner: vec2<f32>, inst: InstanceIn) -> VertexOut {
    let c = cos(inst.rot);
    let s = sin(inst.rot);
    let p = corner * inst.scale;
    let world = inst.pos + vec2<f32>(p.x * c - p.y * s, p.x * s + p.y * c);
    let ndc = vec2<f32>(world.x / viewport.x * 2.0 - 1.0,
                        1.0 - world.y / viewport.y * 2.0);

    var out: VertexOut;
    out.clip_pos = vec4<f32>(ndc, 0.0, 1.0);
    out.local = corner;
    out.uv = mix(inst.uv_min, inst.uv_max, corner * 0.5 + vec2<f32>(0.5, 0.5));
    out.color = inst.color;
    out.params = inst.params;
    out.scale = inst.scale;
    out.kind = inst.kind;
    out.tex_index = inst.tex_index;
    return out;
}

@group(0) @binding(0) var samp: sampler;
`)

	for i := 0; i < maxTextures; i++ {
		fmt.Fprintf(&sb, "@group(0) @binding(%d) var tex%d: texture_2d<f32>;\n", i+1, i)
	}

	sb.WriteString(`
fn sample_slot(index: u32, uv: vec2<f32>) -> vec4<f32> {
    switch index {
`)
	for i := 0; i < maxTextures; i++ {
		fmt.Fprintf(&sb, "        case %du: { return textureSample(tex%d, samp, uv); }\n", i, i)
	}
	sb.WriteString(`        default: { return vec4<f32>(1.0, 1.0, 1.0, 1.0); }
    }
}

// Signed distance in pixels from the shape edge, negative inside.
fn shape_distance(kind: u32, local: vec2<f32>, scale: vec2<f32>, params: vec4<f32>) -> f32 {
    let p = local * scale;
    switch kind {
        // rect
        case 0u: {
            let d = abs(p) - scale;
            return length(max(d, vec2<f32>(0.0))) + min(max(d.x, d.y), 0.0);
        }
        // rounded rect, params.x = corner radius
        case 1u: {
            let r = params.x;
            let d = abs(p) - scale + vec2<f32>(r, r);
            return length(max(d, vec2<f32>(0.0))) + min(max(d.x, d.y), 0.0) - r;
        }
        // circle
        case 2u: {
            return length(p) - min(scale.x, scale.y);
        }
        // ring, params.x = stroke width
        case 3u: {
            let radius = min(scale.x, scale.y) - params.x * 0.5;
            return abs(length(p) - radius) - params.x * 0.5;
        }
        default: {
            return 1.0;
        }
    }
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    let d = shape_distance(in.kind, in.local, in.scale, in.params);
    let coverage = clamp(0.5 - d, 0.0, 1.0);
    let texel = sample_slot(in.tex_index, in.uv);
    let color = in.color * texel;
    // Premultiplied output.
    return vec4<f32>(color.rgb * color.a, color.a) * coverage;
}
`)

	return sb.String()
}
