package compute

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// commandSequence is a one-shot recording of the dispatch. It is fully
// recorded before submission and never re-recorded; the command buffer
// carries the one-time-submit flag.
type commandSequence struct {
	pool    vk.CommandPool
	buffer  vk.CommandBuffer
	groupsX uint32
	groupsY uint32
}

// groupCount returns the smallest number of work-groups that covers
// extent invocations at groupSize invocations per group on one axis.
func groupCount(extent, groupSize int) uint32 {
	return uint32((extent + groupSize - 1) / groupSize)
}

// recordDispatch allocates one primary command buffer from a pool on
// the compute family and records the fixed sequence: bind pipeline,
// bind descriptor set, dispatch.
func recordDispatch(ctx *Context, pipe *computePipeline, bind *bindingSet, cfg Config, cs *cleanupStack) (*commandSequence, error) {
	poolCreateInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: ctx.queueFamilyIndex,
	}
	var pool vk.CommandPool
	if err := vk.Error(vk.CreateCommandPool(ctx.device, &poolCreateInfo, nil, &pool)); err != nil {
		return nil, fmt.Errorf("compute: create command pool: %w", err)
	}
	device := ctx.device
	cs.push(func() { vk.DestroyCommandPool(device, pool, nil) })

	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	buffers := make([]vk.CommandBuffer, 1)
	if err := vk.Error(vk.AllocateCommandBuffers(ctx.device, &allocInfo, buffers)); err != nil {
		return nil, fmt.Errorf("compute: allocate command buffer: %w", err)
	}
	cmd := buffers[0]

	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err := vk.Error(vk.BeginCommandBuffer(cmd, &beginInfo)); err != nil {
		return nil, fmt.Errorf("compute: begin command buffer: %w", err)
	}

	vk.CmdBindPipeline(cmd, vk.PipelineBindPointCompute, pipe.handle)
	vk.CmdBindDescriptorSets(cmd, vk.PipelineBindPointCompute, pipe.layout, 0, 1,
		[]vk.DescriptorSet{bind.set}, 0, nil)

	groupsX := groupCount(cfg.Width, cfg.WorkgroupSize)
	groupsY := groupCount(cfg.Height, cfg.WorkgroupSize)
	vk.CmdDispatch(cmd, groupsX, groupsY, 1)

	if err := vk.Error(vk.EndCommandBuffer(cmd)); err != nil {
		return nil, fmt.Errorf("compute: end command buffer: %w", err)
	}

	ctx.log.Debug("dispatch recorded", "groupsX", groupsX, "groupsY", groupsY)
	return &commandSequence{pool: pool, buffer: cmd, groupsX: groupsX, groupsY: groupsY}, nil
}
