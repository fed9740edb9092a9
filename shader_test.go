package glint

import (
	"fmt"
	"strings"
	"testing"
)

func TestBatchShaderWGSL(t *testing.T) {
	src := BatchShaderWGSL(4)

	for _, want := range []string{
		"fn vs_main(",
		"fn fs_main(",
		"@group(0) @binding(0) var samp: sampler;",
		"@group(1) @binding(0) var<uniform> viewport: vec2<f32>;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("shader missing %q", want)
		}
	}

	// One texture binding and one switch case per slot.
	for i := 0; i < 4; i++ {
		binding := fmt.Sprintf("@group(0) @binding(%d) var tex%d: texture_2d<f32>;", i+1, i)
		if !strings.Contains(src, binding) {
			t.Errorf("shader missing binding %q", binding)
		}
		caseArm := fmt.Sprintf("case %du:", i)
		if !strings.Contains(src, caseArm) {
			t.Errorf("shader missing switch arm %q", caseArm)
		}
	}
	if strings.Contains(src, "tex4") {
		t.Error("shader declares more texture slots than requested")
	}
}

func TestBatchShaderWGSLInvalidCount(t *testing.T) {
	mustPanic(t, "texture count must be positive", func() {
		BatchShaderWGSL(0)
	})
}
