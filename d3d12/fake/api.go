// Package fake is an in-memory d3d12.API. It counts live objects, records the
// commands written to command lists and lets tests inject failures by method
// name. The simulated GPU finishes work the moment it is submitted unless
// DeferFences is set.
package fake

import (
	"bytes"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

var WARPDesc = d3d12.AdapterDesc{
	Description:        "Microsoft Basic Render Driver",
	VendorID:           0x1414,
	DeviceID:           0x8c,
	SharedSystemMemory: 8 << 30,
	Flags:              d3d12.AdapterFlagSoftware,
}

type AdapterConfig struct {
	Desc d3d12.AdapterDesc
	// Unsupported adapters fail both the device probe and device creation.
	Unsupported bool
}

// API implements d3d12.API. The zero value has no adapters; use New for a
// machine with one hardware GPU.
type API struct {
	Adapters []AdapterConfig
	NoWARP   bool
	// DeferFences keeps signaled fence values pending until an event armed on
	// them is waited on.
	DeferFences bool
	// Present results are consumed in order, one per Present call.
	PresentResults []error

	mu            sync.Mutex
	failures      map[string]error
	live          map[*object]struct{}
	doubleRelease []string
	debugLayer    bool
	gpuValidation bool
	nextHeapBase  uintptr
	nextGPUAddr   uint64
	compiles      []string
	trace         []string
}

func New() *API {
	return &API{
		Adapters: []AdapterConfig{{
			Desc: d3d12.AdapterDesc{
				Description:          "Fake Hardware GPU",
				VendorID:             0x10de,
				DeviceID:             0x2204,
				DedicatedVideoMemory: 10 << 30,
			},
		}},
	}
}

// FailOn makes every later call of the named method return err.
func (a *API) FailOn(method string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failures == nil {
		a.failures = make(map[string]error)
	}
	a.failures[method] = err
}

func (a *API) ClearFailures() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures = nil
}

func (a *API) fail(method string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err, ok := a.failures[method]; ok {
		return errors.Wrap(err, method)
	}
	return nil
}

// Live returns the number of unreleased objects per kind.
func (a *API) Live() map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]int)
	for o := range a.live {
		out[o.kind]++
	}
	return out
}

func (a *API) LiveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// LiveKinds lists the kinds of unreleased objects, sorted, for failure messages.
func (a *API) LiveKinds() []string {
	var kinds []string
	for k, n := range a.Live() {
		for i := 0; i < n; i++ {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// DoubleReleases lists the kinds of objects released more than once.
func (a *API) DoubleReleases() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.doubleRelease...)
}

func (a *API) DebugLayerEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.debugLayer
}

func (a *API) GPUValidationEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gpuValidation
}

// Compiles lists "entry/target" for every successful Compile call.
func (a *API) Compiles() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := append([]string(nil), a.compiles...)
	sort.Strings(out)
	return out
}

type object struct {
	api      *API
	kind     string
	released bool
}

func (a *API) track(kind string) object {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.live == nil {
		a.live = make(map[*object]struct{})
	}
	return object{api: a, kind: kind}
}

// register must be called on the object's final address.
func (o *object) register() {
	o.api.mu.Lock()
	defer o.api.mu.Unlock()
	o.api.live[o] = struct{}{}
}

func (o *object) Release() {
	o.api.mu.Lock()
	defer o.api.mu.Unlock()
	if o.released {
		o.api.doubleRelease = append(o.api.doubleRelease, o.kind)
		return
	}
	o.released = true
	delete(o.api.live, o)
}

func (o *object) Released() bool {
	o.api.mu.Lock()
	defer o.api.mu.Unlock()
	return o.released
}

func (a *API) CreateFactory(flags d3d12.FactoryFlags) (d3d12.Factory, error) {
	if err := a.fail("CreateFactory"); err != nil {
		return nil, err
	}
	f := &Factory{object: a.track("Factory"), Flags: flags}
	f.register()
	return f, nil
}

func (a *API) adapterConfig(adapter d3d12.Adapter) (AdapterConfig, error) {
	if adapter == nil {
		for _, c := range a.Adapters {
			if c.Desc.Flags&d3d12.AdapterFlagSoftware == 0 {
				return c, nil
			}
		}
		return AdapterConfig{}, d3d12.HResultError{Code: d3d12.DXGIErrorNotFound}
	}
	ad, ok := adapter.(*Adapter)
	if !ok {
		return AdapterConfig{}, errors.Newf("fake: foreign adapter %T", adapter)
	}
	return ad.Config, nil
}

func (a *API) ProbeDevice(adapter d3d12.Adapter, level d3d12.FeatureLevel) error {
	if err := a.fail("ProbeDevice"); err != nil {
		return err
	}
	c, err := a.adapterConfig(adapter)
	if err != nil {
		return err
	}
	if c.Unsupported {
		return d3d12.HResultError{Code: d3d12.ErrorFail}
	}
	return nil
}

func (a *API) CreateDevice(adapter d3d12.Adapter, level d3d12.FeatureLevel) (d3d12.Device, error) {
	if err := a.fail("CreateDevice"); err != nil {
		return nil, err
	}
	c, err := a.adapterConfig(adapter)
	if err != nil {
		return nil, err
	}
	if c.Unsupported {
		return nil, d3d12.HResultError{Code: d3d12.ErrorFail}
	}
	d := &Device{object: a.track("Device"), Adapter: c.Desc, FeatureLevel: level}
	d.register()
	return d, nil
}

func (a *API) EnableDebugLayer() error {
	if err := a.fail("EnableDebugLayer"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.debugLayer = true
	return nil
}

// EnableGPUBasedValidation fails unless EnableDebugLayer succeeded first.
func (a *API) EnableGPUBasedValidation() error {
	if err := a.fail("EnableGPUBasedValidation"); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.debugLayer {
		return d3d12.HResultError{Code: d3d12.ErrorFail}
	}
	a.gpuValidation = true
	return nil
}

func (a *API) SerializeRootSignature(desc d3d12.RootSignatureDesc, version d3d12.RootSignatureVersion) ([]byte, error) {
	if err := a.fail("SerializeRootSignature"); err != nil {
		return nil, err
	}
	return []byte{byte(version), byte(desc.Flags), byte(desc.Flags >> 8), 0}, nil
}

// Compile succeeds when the source defines a function named entryPoint.
func (a *API) Compile(source []byte, sourceName, entryPoint, target string, flags d3d12.CompileFlags) ([]byte, error) {
	if err := a.fail("Compile"); err != nil {
		return nil, err
	}
	if !bytes.Contains(source, []byte(" "+entryPoint+"(")) {
		return nil, errors.WithStack(&d3d12.CompileError{
			Code:    d3d12.ErrorFail,
			Message: sourceName + ": error X3501: '" + entryPoint + "': entrypoint not found",
		})
	}
	a.mu.Lock()
	a.compiles = append(a.compiles, entryPoint+"/"+target)
	a.mu.Unlock()
	return []byte(strings.Join([]string{"DXBC", target, entryPoint}, ":")), nil
}

func (a *API) CreateEvent() (d3d12.Event, error) {
	if err := a.fail("CreateEvent"); err != nil {
		return nil, err
	}
	e := &Event{api: a}
	return e, nil
}

func (a *API) heapBase() uintptr {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextHeapBase += 0x10000
	return a.nextHeapBase
}

func (a *API) gpuAddress(size uint64) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.nextGPUAddr == 0 {
		a.nextGPUAddr = 0x100000
	}
	addr := a.nextGPUAddr
	a.nextGPUAddr += (size + 0xffff) &^ 0xffff
	return addr
}

func (a *API) nextPresentResult() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.PresentResults) == 0 {
		return nil
	}
	err := a.PresentResults[0]
	a.PresentResults = a.PresentResults[1:]
	return err
}

func (a *API) log(op string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.trace = append(a.trace, op)
}

// Trace returns the GPU-visible operations in submission order: command list
// commands, queue submissions and signals, allocator resets, presents and
// event waits.
func (a *API) Trace() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.trace...)
}

func (a *API) ResetTrace() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.trace = nil
}

var (
	_ d3d12.API                 = (*API)(nil)
	_ d3d12.Factory             = (*Factory)(nil)
	_ d3d12.Adapter             = (*Adapter)(nil)
	_ d3d12.Device              = (*Device)(nil)
	_ d3d12.CommandQueue        = (*CommandQueue)(nil)
	_ d3d12.CommandAllocator    = (*CommandAllocator)(nil)
	_ d3d12.GraphicsCommandList = (*CommandList)(nil)
	_ d3d12.SwapChain           = (*SwapChain)(nil)
	_ d3d12.DescriptorHeap      = (*DescriptorHeap)(nil)
	_ d3d12.Resource            = (*Resource)(nil)
	_ d3d12.RootSignature       = (*RootSignature)(nil)
	_ d3d12.PipelineState       = (*PipelineState)(nil)
	_ d3d12.Fence               = (*Fence)(nil)
	_ d3d12.Event               = (*Event)(nil)
)
