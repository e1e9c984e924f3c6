package compute

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestPickMemoryType(t *testing.T) {
	deviceLocal := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	host := hostPixelMemory

	tests := []struct {
		name      string
		typeBits  uint32
		types     []vk.MemoryPropertyFlags
		wantIndex uint32
		wantOK    bool
	}{
		{
			name:      "lowest index wins",
			typeBits:  0b111,
			types:     []vk.MemoryPropertyFlags{host, host, host},
			wantIndex: 0,
			wantOK:    true,
		},
		{
			name:      "bitmask excludes earlier candidates",
			typeBits:  0b100,
			types:     []vk.MemoryPropertyFlags{host, host, host},
			wantIndex: 2,
			wantOK:    true,
		},
		{
			name:      "extra flags on the type are fine",
			typeBits:  0b1,
			types:     []vk.MemoryPropertyFlags{host | deviceLocal},
			wantIndex: 0,
			wantOK:    true,
		},
		{
			name:     "flags alone do not qualify",
			typeBits: 0b01,
			types:    []vk.MemoryPropertyFlags{deviceLocal, host},
			wantOK:   false,
		},
		{
			name:     "partial flags do not qualify",
			typeBits: 0b1,
			types:    []vk.MemoryPropertyFlags{vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)},
			wantOK:   false,
		},
		{
			name:     "no types",
			typeBits: 0b1,
			types:    nil,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickMemoryType(tt.typeBits, tt.types, host)
			if ok != tt.wantOK {
				t.Fatalf("pickMemoryType() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.wantIndex {
				t.Errorf("pickMemoryType() = %d, want %d", got, tt.wantIndex)
			}
		})
	}
}
