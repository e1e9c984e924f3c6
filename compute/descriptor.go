package compute

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// pixelBufferBinding is the slot index the kernel declares for its
// storage buffer. The kernel source must declare a matching storage
// buffer at the same index; that contract is not checked at runtime.
const pixelBufferBinding = 0

// bindingSet wires the storage buffer to the kernel's binding slot:
// one layout with a single storage-buffer binding, one pool sized for
// exactly one set, one set written once to cover the buffer's full
// extent.
type bindingSet struct {
	layout vk.DescriptorSetLayout
	pool   vk.DescriptorPool
	set    vk.DescriptorSet
}

func createBindingSet(ctx *Context, buf *deviceBuffer, cs *cleanupStack) (*bindingSet, error) {
	layoutBinding := vk.DescriptorSetLayoutBinding{
		Binding:         pixelBufferBinding,
		DescriptorType:  vk.DescriptorTypeStorageBuffer,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageComputeBit),
	}
	layoutCreateInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: 1,
		PBindings:    []vk.DescriptorSetLayoutBinding{layoutBinding},
	}

	var layout vk.DescriptorSetLayout
	if err := vk.Error(vk.CreateDescriptorSetLayout(ctx.device, &layoutCreateInfo, nil, &layout)); err != nil {
		return nil, fmt.Errorf("compute: create descriptor set layout: %w", err)
	}
	device := ctx.device
	cs.push(func() { vk.DestroyDescriptorSetLayout(device, layout, nil) })

	poolSize := vk.DescriptorPoolSize{
		Type:            vk.DescriptorTypeStorageBuffer,
		DescriptorCount: 1,
	}
	poolCreateInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       1,
		PoolSizeCount: 1,
		PPoolSizes:    []vk.DescriptorPoolSize{poolSize},
	}

	var pool vk.DescriptorPool
	if err := vk.Error(vk.CreateDescriptorPool(ctx.device, &poolCreateInfo, nil, &pool)); err != nil {
		return nil, fmt.Errorf("compute: create descriptor pool: %w", err)
	}
	cs.push(func() { vk.DestroyDescriptorPool(device, pool, nil) })

	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout},
	}
	var set vk.DescriptorSet
	if err := vk.Error(vk.AllocateDescriptorSets(ctx.device, &allocInfo, &set)); err != nil {
		return nil, fmt.Errorf("compute: allocate descriptor set: %w", err)
	}

	bufferInfo := vk.DescriptorBufferInfo{
		Buffer: buf.handle,
		Offset: 0,
		Range:  buf.size,
	}
	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          set,
		DstBinding:      pixelBufferBinding,
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeStorageBuffer,
		PBufferInfo:     []vk.DescriptorBufferInfo{bufferInfo},
	}
	vk.UpdateDescriptorSets(ctx.device, 1, []vk.WriteDescriptorSet{write}, 0, nil)

	return &bindingSet{layout: layout, pool: pool, set: set}, nil
}
