package wgpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/glint"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan HAL
)

// DeviceHandle provides GPU device access from a host application.
//
// A host that already owns a GPU device (for example a gogpu.App)
// implements gpucontext.DeviceProvider; passing it to SetDeviceProvider
// makes this backend reuse the shared device instead of opening its own.
// The provider must additionally expose the underlying HAL objects via
// HalDevice() any and HalQueue() any.
type DeviceHandle = gpucontext.DeviceProvider

var (
	sharedMu     sync.Mutex
	sharedDevice hal.Device
	sharedQueue  hal.Queue
)

// SetDeviceProvider configures backends created after this call to use a
// shared GPU device from the provider instead of opening their own.
// Returns an error when the provider does not expose HAL types.
func SetDeviceProvider(provider DeviceHandle) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}

	sharedMu.Lock()
	sharedDevice = device
	sharedQueue = queue
	sharedMu.Unlock()

	glint.Logger().Info("using shared GPU device")
	return nil
}

// openDevice returns the shared device if one was provided, otherwise
// opens the best available adapter on the Vulkan HAL.
func (b *Backend) openDevice() error {
	sharedMu.Lock()
	device, queue := sharedDevice, sharedQueue
	sharedMu.Unlock()
	if device != nil {
		b.device = device
		b.queue = queue
		b.externalDevice = true
		return nil
	}

	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		b.instance = nil
		return fmt.Errorf("wgpu: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		b.instance = nil
		return fmt.Errorf("wgpu: open device: %w", err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue

	glint.Logger().Info("GPU device opened", slog.String("adapter", selected.Info.Name))
	return nil
}

// closeDevice releases the device unless it is owned by the host.
func (b *Backend) closeDevice() {
	if !b.externalDevice && b.device != nil {
		b.device.Destroy()
	}
	b.device = nil
	b.queue = nil
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
}
