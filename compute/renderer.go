package compute

// Render executes one full compute dispatch and returns the kernel's
// output as raw float pixels: 4 float32 channels per pixel, row major,
// Width*Height pixels.
//
// The run is strictly sequential and single-threaded on the host; the
// only concurrency is the device working asynchronously between submit
// and the fence wait. Every resource created along the way is released
// in reverse creation order before Render returns, on success and on
// every failure path alike. There are no retries: the first error ends
// the run.
func Render(cfg Config) ([]float32, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	blob, err := LoadKernel(cfg.KernelPath)
	if err != nil {
		return nil, err
	}

	var cleanup cleanupStack
	defer cleanup.run()

	ctx, err := newContext(cfg, &cleanup)
	if err != nil {
		return nil, err
	}

	buf, err := createStorageBuffer(ctx, cfg.bufferSize(), &cleanup)
	if err != nil {
		return nil, err
	}

	bind, err := createBindingSet(ctx, buf, &cleanup)
	if err != nil {
		return nil, err
	}

	pipe, err := createComputePipeline(ctx, blob, bind, &cleanup)
	if err != nil {
		return nil, err
	}

	cmd, err := recordDispatch(ctx, pipe, bind, cfg, &cleanup)
	if err != nil {
		return nil, err
	}

	if err := submitAndWait(ctx, cmd); err != nil {
		return nil, err
	}

	pixels, err := readPixels(ctx, buf)
	if err != nil {
		return nil, err
	}

	ctx.log.Info("dispatch complete",
		"width", cfg.Width, "height", cfg.Height,
		"groupsX", cmd.groupsX, "groupsY", cmd.groupsY)
	return pixels, nil
}
