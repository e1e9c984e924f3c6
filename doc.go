// Package mandel renders the Mandelbrot set with a Vulkan compute shader.
//
// # Overview
//
// mandel is a bounded batch job, not a render loop: it selects a
// compute-capable device, allocates one host-visible storage buffer,
// dispatches a precompiled kernel once, waits on a fence, reads the
// pixels back and encodes them to an image file. The GPU harness lives
// in the compute subpackage; this package holds the host-side pixel
// buffer and image encoding.
//
// # Quick Start
//
//	pixels, err := compute.Render(compute.Config{
//	    Width:      3200,
//	    Height:     2400,
//	    KernelPath: "shaders/mandelbrot.spv",
//	})
//	if err != nil {
//	    // no usable device, allocation failure, fence timeout ...
//	}
//	pm, _ := mandel.NewPixmapFromFloats(3200, 2400, pixels)
//	pm.Save("mandelbrot.png")
//
// # Architecture
//
// The module is organized into:
//   - Root package: Pixmap (RGBA8 buffer, float conversion, PNG/BMP
//     encoding) and the shared logger.
//   - compute: the Vulkan dispatch harness (context, allocator, bindings,
//     pipeline, command recording, submission and teardown).
//   - cmd/mandel: the batch binary with its fixed compile-time
//     configuration.
package mandel
