package compute

import "errors"

// Package errors for the dispatch harness. All of them are fatal for
// the run: the harness never retries.
var (
	// ErrNoDevice is returned when no physical device supports Vulkan.
	ErrNoDevice = errors.New("compute: no device with Vulkan support")

	// ErrNoComputeQueue is returned when no queue family advertises
	// compute capability.
	ErrNoComputeQueue = errors.New("compute: no compute-capable queue family")

	// ErrValidationUnavailable is returned when validation was requested
	// but the validation layer is not installed. Requested-but-missing
	// validation is a configuration error, not a condition to degrade
	// around.
	ErrValidationUnavailable = errors.New("compute: validation layer not supported")

	// ErrDebugReportUnavailable is returned when validation was requested
	// but the debug report extension is missing.
	ErrDebugReportUnavailable = errors.New("compute: debug report extension not supported")

	// ErrNoSuitableMemoryType is returned when no memory type is both
	// compatible with the buffer and host-visible + host-coherent.
	ErrNoSuitableMemoryType = errors.New("compute: no compatible host-visible coherent memory type")

	// ErrFenceTimeout is returned when the device does not signal the
	// submission fence before the wait deadline.
	ErrFenceTimeout = errors.New("compute: fence wait timed out")

	// ErrEmptyKernel is returned when the kernel blob is empty.
	ErrEmptyKernel = errors.New("compute: kernel blob is empty")
)
