package compute

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// BytesPerPixel is the size of one pixel in the storage buffer:
// 4 channels of float32.
const BytesPerPixel = 16

// Config configures a compute dispatch.
type Config struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// WorkgroupSize is the kernel's local work-group edge length on the
	// X and Y axes. It must match the local_size declared by the kernel.
	// If 0, defaults to 32.
	WorkgroupSize int

	// KernelPath is the path of the precompiled SPIR-V kernel blob.
	KernelPath string

	// EnableValidation requests the Khronos validation layer and routes
	// its messages through the module logger. If the layer or the debug
	// report extension is unavailable, Render fails instead of silently
	// running without it.
	EnableValidation bool

	// AppName is reported to the driver. If empty, defaults to "mandel".
	AppName string
}

// withDefaults validates the config and fills zero fields.
func (c Config) withDefaults() (Config, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return c, fmt.Errorf("compute: invalid image size: %dx%d", c.Width, c.Height)
	}
	if c.WorkgroupSize == 0 {
		c.WorkgroupSize = 32
	}
	if c.WorkgroupSize < 0 {
		return c, fmt.Errorf("compute: invalid workgroup size: %d", c.WorkgroupSize)
	}
	if c.KernelPath == "" {
		return c, fmt.Errorf("compute: kernel path is required")
	}
	if c.AppName == "" {
		c.AppName = "mandel"
	}
	return c, nil
}

// bufferSize returns the byte size of the storage buffer the kernel
// renders into.
func (c Config) bufferSize() vk.DeviceSize {
	return vk.DeviceSize(c.Width) * vk.DeviceSize(c.Height) * BytesPerPixel
}
