package compute

import (
	"fmt"
	"time"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// fenceTimeout bounds the wait for device completion: effectively
// "until done, but not forever".
const fenceTimeout = 100 * time.Second

// submitAndWait submits the recorded sequence to the compute queue
// together with a fresh fence, then blocks until the device signals it.
// After a nil return the buffer memory is safe to map; the memory is
// host-coherent, so no flush is needed in between.
func submitAndWait(ctx *Context, cmd *commandSequence) error {
	fenceCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	var fence vk.Fence
	if err := vk.Error(vk.CreateFence(ctx.device, &fenceCreateInfo, nil, &fence)); err != nil {
		return fmt.Errorf("compute: create fence: %w", err)
	}
	defer vk.DestroyFence(ctx.device, fence, nil)

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmd.buffer},
	}
	if err := vk.Error(vk.QueueSubmit(ctx.queue, 1, []vk.SubmitInfo{submitInfo}, fence)); err != nil {
		return fmt.Errorf("compute: submit command buffer: %w", err)
	}

	switch res := vk.WaitForFences(ctx.device, 1, []vk.Fence{fence}, vk.True, uint64(fenceTimeout.Nanoseconds())); res {
	case vk.Success:
		return nil
	case vk.Timeout:
		return ErrFenceTimeout
	default:
		return fmt.Errorf("compute: wait for fence: %w", vk.Error(res))
	}
}

// readPixels maps the buffer memory into host address space and copies
// the kernel's float pixels out. The mapping is only valid between the
// fence signal and the unmap; the copy guarantees nothing escapes that
// window.
func readPixels(ctx *Context, buf *deviceBuffer) ([]float32, error) {
	var mapped unsafe.Pointer
	if err := vk.Error(vk.MapMemory(ctx.device, buf.memory, 0, buf.size, 0, &mapped)); err != nil {
		return nil, fmt.Errorf("compute: map buffer memory: %w", err)
	}
	defer vk.UnmapMemory(ctx.device, buf.memory)

	pixels := make([]float32, int(buf.size)/4)
	copy(pixels, unsafe.Slice((*float32)(mapped), len(pixels)))
	return pixels, nil
}
