// Package compute implements the Vulkan dispatch harness for the
// fractal kernel.
//
// The harness is strictly sequential: each stage is invoked once, in
// dependency order, and [Render] drives all of them:
//
//	Context -> Buffer -> Bindings -> Pipeline -> Commands -> Submit -> Readback
//
// # Resource lifetime
//
// Every Vulkan object is pushed onto a teardown stack at the moment it
// is created, and the stack is unwound in reverse order on every exit
// path. A failure halfway through setup therefore releases exactly the
// resources that exist, and nothing is ever destroyed while an object
// depending on it is still alive.
//
// # Synchronization
//
// The only concurrency in a run is host/device overlap. One fence per
// submission is the sole correctness guard: the host blocks on it (with
// a bounded timeout) before mapping the buffer, so readback never
// observes memory the device is still writing. The buffer memory is
// host-visible and host-coherent, so no explicit cache flush is needed
// between the fence signal and the map.
//
// # External contracts
//
// The kernel blob is consumed as an opaque SPIR-V byte sequence; its
// declared local work-group size must match [Config.WorkgroupSize] and
// its binding 0 must be a storage buffer of vec4 pixels. Neither is
// checked at runtime - a mismatch silently produces wrong coverage or
// garbage pixels, which is a property of the device, not of this
// package.
package compute
