// Package wgpu implements the GPU backend on github.com/gogpu/wgpu's
// hardware abstraction layer (Vulkan). Importing the package registers
// it under the name "wgpu":
//
//	import _ "github.com/gogpu/glint/backend/wgpu"
//
// The backend renders into an offscreen color target sized to the
// window. WGSL shaders are compiled to SPIR-V through github.com/gogpu/naga
// at pipeline creation time.
//
// By default the backend opens its own GPU device. Host applications
// that already own a device (for example a gogpu.App) can share it by
// calling SetDeviceProvider with a gpucontext provider before the
// renderer is created.
package wgpu
