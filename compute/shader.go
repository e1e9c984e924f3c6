package compute

import (
	"fmt"
	"os"
	"unsafe"
)

// kernelEntryPoint is the symbol the pipeline executes. Fixed contract
// with the kernel.
const kernelEntryPoint = "main\x00"

// LoadKernel reads a precompiled SPIR-V blob from disk and zero-pads
// it to a 4-byte boundary, which the shader-module interface requires.
// The content is otherwise opaque to the harness.
func LoadKernel(path string) ([]byte, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compute: read kernel: %w", err)
	}
	if len(blob) == 0 {
		return nil, ErrEmptyKernel
	}
	return padSPIRV(blob), nil
}

// padSPIRV zero-pads a blob so its length is a multiple of 4.
func padSPIRV(blob []byte) []byte {
	if rem := len(blob) % 4; rem != 0 {
		blob = append(blob, make([]byte, 4-rem)...)
	}
	return blob
}

// spirvWords reinterprets a padded blob as the uint32 code words the
// shader-module interface takes. The length must be a multiple of 4.
func spirvWords(blob []byte) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(&blob[0])), len(blob)/4)
}
