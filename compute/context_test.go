package compute

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestPickComputeQueueFamily(t *testing.T) {
	graphics := vk.QueueFlags(vk.QueueGraphicsBit)
	compute := vk.QueueFlags(vk.QueueComputeBit)
	transfer := vk.QueueFlags(vk.QueueTransferBit)

	tests := []struct {
		name      string
		families  []queueFamily
		wantIndex uint32
		wantOK    bool
	}{
		{
			name: "first compute family wins",
			families: []queueFamily{
				{flags: graphics, queues: 1},
				{flags: graphics | compute, queues: 1},
				{flags: compute, queues: 1},
			},
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name: "family without queues is skipped",
			families: []queueFamily{
				{flags: compute, queues: 0},
				{flags: compute, queues: 4},
			},
			wantIndex: 1,
			wantOK:    true,
		},
		{
			name: "no compute capability",
			families: []queueFamily{
				{flags: graphics, queues: 1},
				{flags: transfer, queues: 2},
			},
			wantOK: false,
		},
		{
			name:   "no families",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickComputeQueueFamily(tt.families)
			if ok != tt.wantOK {
				t.Fatalf("pickComputeQueueFamily() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.wantIndex {
				t.Errorf("pickComputeQueueFamily() = %d, want %d", got, tt.wantIndex)
			}
		})
	}
}

func TestPickComputeQueueFamilyDeterministic(t *testing.T) {
	families := []queueFamily{
		{flags: vk.QueueFlags(vk.QueueGraphicsBit), queues: 1},
		{flags: vk.QueueFlags(vk.QueueComputeBit), queues: 2},
		{flags: vk.QueueFlags(vk.QueueComputeBit), queues: 1},
	}
	first, okFirst := pickComputeQueueFamily(families)
	second, okSecond := pickComputeQueueFamily(families)
	if first != second || okFirst != okSecond {
		t.Errorf("pickComputeQueueFamily() not deterministic: (%d, %v) then (%d, %v)",
			first, okFirst, second, okSecond)
	}
}
