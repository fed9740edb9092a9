package wgpu

import (
	"fmt"

	"github.com/gogpu/naga"
)

// compileWGSL compiles WGSL source to SPIR-V words. The Vulkan HAL
// consumes SPIR-V; compiling up front also surfaces shader errors at
// pipeline creation instead of first use.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("wgpu: SPIR-V output is %d bytes, not word-aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
