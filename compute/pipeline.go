package compute

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// computePipeline is the immutable executable form of the kernel,
// built once from the blob and the binding layout. It is never rebuilt
// or mutated; a different kernel needs a fresh pipeline.
type computePipeline struct {
	shaderModule vk.ShaderModule
	layout       vk.PipelineLayout
	handle       vk.Pipeline
}

func createComputePipeline(ctx *Context, blob []byte, bind *bindingSet, cs *cleanupStack) (*computePipeline, error) {
	moduleCreateInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(blob)),
		PCode:    spirvWords(blob),
	}
	var module vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(ctx.device, &moduleCreateInfo, nil, &module)); err != nil {
		return nil, fmt.Errorf("compute: create shader module: %w", err)
	}
	device := ctx.device
	cs.push(func() { vk.DestroyShaderModule(device, module, nil) })

	layoutCreateInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 1,
		PSetLayouts:    []vk.DescriptorSetLayout{bind.layout},
	}
	var layout vk.PipelineLayout
	if err := vk.Error(vk.CreatePipelineLayout(ctx.device, &layoutCreateInfo, nil, &layout)); err != nil {
		return nil, fmt.Errorf("compute: create pipeline layout: %w", err)
	}
	cs.push(func() { vk.DestroyPipelineLayout(device, layout, nil) })

	pipelineCreateInfo := vk.ComputePipelineCreateInfo{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFlagBits(vk.ShaderStageComputeBit),
			Module: module,
			PName:  kernelEntryPoint,
		},
		Layout: layout,
	}
	pipelines := make([]vk.Pipeline, 1)
	if err := vk.Error(vk.CreateComputePipelines(ctx.device, vk.PipelineCache(vk.NullHandle), 1,
		[]vk.ComputePipelineCreateInfo{pipelineCreateInfo}, nil, pipelines)); err != nil {
		return nil, fmt.Errorf("compute: create compute pipeline: %w", err)
	}
	pipeline := pipelines[0]
	cs.push(func() { vk.DestroyPipeline(device, pipeline, nil) })

	return &computePipeline{shaderModule: module, layout: layout, handle: pipeline}, nil
}
