// Command mandel renders the Mandelbrot set with a Vulkan compute
// shader and writes the result to a PNG file.
//
// The job is a single bounded batch: setup, one dispatch, fence wait,
// readback, encode, teardown. There are no flags; the configuration
// below is fixed at compile time. Build with -tags vkdebug to request
// the validation layer.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/compute"
)

const (
	imageWidth    = 3200
	imageHeight   = 2400
	workgroupSize = 32

	kernelPath = "shaders/mandelbrot.spv"
	outputPath = "mandelbrot.png"
)

func main() {
	// The process contract reports errors on stdout.
	mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	pixels, err := compute.Render(compute.Config{
		Width:            imageWidth,
		Height:           imageHeight,
		WorkgroupSize:    workgroupSize,
		KernelPath:       kernelPath,
		EnableValidation: enableValidation,
	})
	if err != nil {
		return err
	}

	pm, err := mandel.NewPixmapFromFloats(imageWidth, imageHeight, pixels)
	if err != nil {
		return err
	}

	if err := pm.Save(outputPath); err != nil {
		// The dispatch already completed; only persistence failed.
		// Report it without failing the run.
		mandel.Logger().Warn("image encode failed", "path", outputPath, "error", err)
		return nil
	}

	mandel.Logger().Info("image written", "path", outputPath, "width", imageWidth, "height", imageHeight)
	return nil
}
