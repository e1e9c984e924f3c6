package compute

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// hostPixelMemory are the property flags readback requires: the host
// must be able to map the memory, and device writes must become
// host-visible without an explicit flush once the fence has signaled.
const hostPixelMemory = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)

// deviceBuffer is a storage buffer together with the device memory
// backing it. The memory is bound at offset 0, once; re-binding is not
// supported.
type deviceBuffer struct {
	handle vk.Buffer
	memory vk.DeviceMemory
	size   vk.DeviceSize
}

// createStorageBuffer creates the buffer the kernel renders into and
// backs it with host-visible, host-coherent device memory.
func createStorageBuffer(ctx *Context, size vk.DeviceSize, cs *cleanupStack) (*deviceBuffer, error) {
	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit),
		SharingMode: vk.SharingModeExclusive,
	}

	var buffer vk.Buffer
	if err := vk.Error(vk.CreateBuffer(ctx.device, &bufferCreateInfo, nil, &buffer)); err != nil {
		return nil, fmt.Errorf("compute: create buffer: %w", err)
	}
	device := ctx.device
	cs.push(func() { vk.DestroyBuffer(device, buffer, nil) })

	var memReq vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(ctx.device, buffer, &memReq)
	memReq.Deref()

	typeIndex, ok := pickMemoryType(memReq.MemoryTypeBits, ctx.memoryTypes, hostPixelMemory)
	if !ok {
		return nil, ErrNoSuitableMemoryType
	}

	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReq.Size,
		MemoryTypeIndex: typeIndex,
	}
	var memory vk.DeviceMemory
	if err := vk.Error(vk.AllocateMemory(ctx.device, &allocInfo, nil, &memory)); err != nil {
		return nil, fmt.Errorf("compute: allocate %d bytes of device memory: %w", memReq.Size, err)
	}
	cs.push(func() { vk.FreeMemory(device, memory, nil) })

	if err := vk.Error(vk.BindBufferMemory(ctx.device, buffer, memory, 0)); err != nil {
		return nil, fmt.Errorf("compute: bind buffer memory: %w", err)
	}

	ctx.log.Debug("storage buffer ready", "size", uint64(size), "memoryType", typeIndex)
	return &deviceBuffer{handle: buffer, memory: memory, size: size}, nil
}

// pickMemoryType returns the lowest-indexed memory type that is both
// allowed by the buffer's required-type bitmask and carries all wanted
// property flags. A type satisfying only one of the two never wins.
func pickMemoryType(typeBits uint32, types []vk.MemoryPropertyFlags, want vk.MemoryPropertyFlags) (uint32, bool) {
	for i, flags := range types {
		if typeBits&(1<<uint(i)) != 0 && flags&want == want {
			return uint32(i), true
		}
	}
	return 0, false
}
