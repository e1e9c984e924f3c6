package compute

// cleanupStack records release functions in acquisition order and runs
// them in reverse, so resources are always destroyed before anything
// they depend on. A function is pushed only after its resource was
// created successfully, which keeps a mid-setup failure unwindable:
// exactly the resources that exist get released.
type cleanupStack struct {
	fns []func()
}

// push appends a release function. It will run before every function
// pushed earlier.
func (s *cleanupStack) push(fn func()) {
	s.fns = append(s.fns, fn)
}

// run releases everything in reverse push order. Subsequent calls are
// no-ops, so run can sit in a defer while an explicit early call stays
// safe.
func (s *cleanupStack) run() {
	for i := len(s.fns) - 1; i >= 0; i-- {
		s.fns[i]()
	}
	s.fns = nil
}
