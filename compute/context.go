package compute

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/mandel"
)

const (
	validationLayerName      = "VK_LAYER_KHRONOS_validation\x00"
	debugReportExtensionName = "VK_EXT_debug_report\x00"
)

// Context is the connection to the GPU driver: one instance, one
// physical device, one logical device with a single compute queue.
// It transitively owns every other resource of a run and is destroyed
// last, via the teardown stack it was created on.
type Context struct {
	instance         vk.Instance
	debugCallback    vk.DebugReportCallback
	physicalDevice   vk.PhysicalDevice
	device           vk.Device
	queue            vk.Queue
	queueFamilyIndex uint32

	// memoryTypes is a snapshot of the device's memory type property
	// flags, indexed by memory type.
	memoryTypes []vk.MemoryPropertyFlags

	log *slog.Logger
}

var (
	loaderOnce sync.Once
	loaderErr  error
)

// initLoader binds the Vulkan loader. Process-wide, done once.
func initLoader() error {
	loaderOnce.Do(func() {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			loaderErr = fmt.Errorf("compute: bind Vulkan loader: %w", err)
			return
		}
		if err := vk.Init(); err != nil {
			loaderErr = fmt.Errorf("compute: initialize Vulkan: %w", err)
		}
	})
	return loaderErr
}

// newContext initializes the driver connection and selects a device
// and queue. Each created handle is pushed onto cs so a failure at any
// later stage still unwinds cleanly.
func newContext(cfg Config, cs *cleanupStack) (*Context, error) {
	if err := initLoader(); err != nil {
		return nil, err
	}

	ctx := &Context{log: mandel.Logger()}

	var layers, extensions []string
	if cfg.EnableValidation {
		ok, err := instanceLayerSupported(validationLayerName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrValidationUnavailable
		}
		ok, err = instanceExtensionSupported(debugReportExtensionName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDebugReportUnavailable
		}
		layers = []string{validationLayerName}
		extensions = []string{debugReportExtensionName}
	}

	if err := ctx.createInstance(cfg, layers, extensions, cs); err != nil {
		return nil, err
	}
	if cfg.EnableValidation {
		if err := ctx.installDebugCallback(cs); err != nil {
			return nil, err
		}
	}
	if err := ctx.pickPhysicalDevice(); err != nil {
		return nil, err
	}
	if err := ctx.createDevice(layers, cs); err != nil {
		return nil, err
	}
	ctx.memoryTypes = ctx.memoryTypeFlags()

	return ctx, nil
}

func (c *Context) createInstance(cfg Config, layers, extensions []string, cs *cleanupStack) error {
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   cfg.AppName + "\x00",
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PEngineName:        "mandel\x00",
		EngineVersion:      vk.MakeVersion(1, 0, 0),
		ApiVersion:         vk.ApiVersion10,
	}
	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance)); err != nil {
		return fmt.Errorf("compute: create instance: %w", err)
	}
	c.instance = instance
	cs.push(func() { vk.DestroyInstance(instance, nil) })
	return nil
}

// installDebugCallback registers the validation message hook. The
// callback only logs; it never alters control flow, and it holds the
// logger it was created with instead of reaching for package state.
func (c *Context) installDebugCallback(cs *cleanupStack) error {
	log := c.log
	createInfo := vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit |
			vk.DebugReportWarningBit |
			vk.DebugReportPerformanceWarningBit),
		PfnCallback: func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
			object uint64, location uint, messageCode int32,
			layerPrefix string, message string, userData unsafe.Pointer) vk.Bool32 {
			log.Warn("validation message", "layer", layerPrefix, "code", messageCode, "message", message)
			return vk.False
		},
	}

	var callback vk.DebugReportCallback
	if err := vk.Error(vk.CreateDebugReportCallback(c.instance, &createInfo, nil, &callback)); err != nil {
		return fmt.Errorf("compute: create debug callback: %w", err)
	}
	c.debugCallback = callback
	instance := c.instance
	cs.push(func() { vk.DestroyDebugReportCallback(instance, callback, nil) })
	return nil
}

// pickPhysicalDevice selects the first enumerated device. No scoring:
// the workload is small enough for any device that can run compute at
// all, and the queue check happens when the logical device is created.
func (c *Context) pickPhysicalDevice() error {
	var count uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(c.instance, &count, nil)); err != nil {
		return fmt.Errorf("compute: enumerate physical devices: %w", err)
	}
	if count == 0 {
		return ErrNoDevice
	}

	devices := make([]vk.PhysicalDevice, count)
	if err := vk.Error(vk.EnumeratePhysicalDevices(c.instance, &count, devices)); err != nil {
		return fmt.Errorf("compute: enumerate physical devices: %w", err)
	}
	c.physicalDevice = devices[0]

	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(c.physicalDevice, &props)
	props.Deref()
	c.log.Info("device selected", "name", vk.ToString(props.DeviceName[:]))
	return nil
}

// queueFamily is a plain snapshot of the capability bits the harness
// cares about for one queue family.
type queueFamily struct {
	flags  vk.QueueFlags
	queues uint32
}

// pickComputeQueueFamily returns the index of the first family that has
// at least one queue and advertises compute capability.
func pickComputeQueueFamily(families []queueFamily) (uint32, bool) {
	for i, f := range families {
		if f.queues > 0 && f.flags&vk.QueueFlags(vk.QueueComputeBit) != 0 {
			return uint32(i), true
		}
	}
	return 0, false
}

func (c *Context) queueFamilies() []queueFamily {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(c.physicalDevice, &count, nil)

	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(c.physicalDevice, &count, props)

	families := make([]queueFamily, count)
	for i := range props {
		props[i].Deref()
		families[i] = queueFamily{flags: props[i].QueueFlags, queues: props[i].QueueCount}
	}
	return families
}

// createDevice creates the logical device with exactly one queue from
// the first compute-capable family.
func (c *Context) createDevice(layers []string, cs *cleanupStack) error {
	index, ok := pickComputeQueueFamily(c.queueFamilies())
	if !ok {
		return ErrNoComputeQueue
	}
	c.queueFamilyIndex = index

	queueCreateInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: index,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}
	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    []vk.DeviceQueueCreateInfo{queueCreateInfo},
		EnabledLayerCount:    uint32(len(layers)),
		PpEnabledLayerNames:  layers,
	}

	var device vk.Device
	if err := vk.Error(vk.CreateDevice(c.physicalDevice, &deviceCreateInfo, nil, &device)); err != nil {
		return fmt.Errorf("compute: create device: %w", err)
	}
	c.device = device
	cs.push(func() { vk.DestroyDevice(device, nil) })

	var queue vk.Queue
	vk.GetDeviceQueue(device, index, 0, &queue)
	c.queue = queue

	c.log.Debug("compute queue ready", "queueFamily", index)
	return nil
}

func (c *Context) memoryTypeFlags() []vk.MemoryPropertyFlags {
	var props vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(c.physicalDevice, &props)
	props.Deref()

	flags := make([]vk.MemoryPropertyFlags, props.MemoryTypeCount)
	for i := range flags {
		props.MemoryTypes[i].Deref()
		flags[i] = props.MemoryTypes[i].PropertyFlags
	}
	return flags
}

// instanceLayerSupported reports whether the instance advertises the
// given null-terminated layer name.
func instanceLayerSupported(name string) (bool, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return false, fmt.Errorf("compute: enumerate instance layers: %w", err)
	}
	if count == 0 {
		return false, nil
	}
	props := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, props)); err != nil {
		return false, fmt.Errorf("compute: enumerate instance layers: %w", err)
	}
	for i := range props {
		props[i].Deref()
		if vk.ToString(props[i].LayerName[:])+"\x00" == name {
			return true, nil
		}
	}
	return false, nil
}

// instanceExtensionSupported reports whether the instance advertises
// the given null-terminated extension name.
func instanceExtensionSupported(name string) (bool, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return false, fmt.Errorf("compute: enumerate instance extensions: %w", err)
	}
	if count == 0 {
		return false, nil
	}
	props := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return false, fmt.Errorf("compute: enumerate instance extensions: %w", err)
	}
	for i := range props {
		props[i].Deref()
		if vk.ToString(props[i].ExtensionName[:])+"\x00" == name {
			return true, nil
		}
	}
	return false, nil
}
