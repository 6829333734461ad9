package fake

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

type Factory struct {
	object
	Flags      d3d12.FactoryFlags
	Associated map[uintptr]d3d12.WindowAssociationFlags
}

func (f *Factory) EnumAdapters1(index uint32) (d3d12.Adapter, error) {
	if err := f.api.fail("EnumAdapters1"); err != nil {
		return nil, err
	}
	if int(index) >= len(f.api.Adapters) {
		return nil, d3d12.HResultError{Code: d3d12.DXGIErrorNotFound}
	}
	ad := &Adapter{object: f.api.track("Adapter"), Config: f.api.Adapters[index]}
	ad.register()
	return ad, nil
}

func (f *Factory) EnumWarpAdapter() (d3d12.Adapter, error) {
	if err := f.api.fail("EnumWarpAdapter"); err != nil {
		return nil, err
	}
	if f.api.NoWARP {
		return nil, d3d12.HResultError{Code: d3d12.DXGIErrorNotFound}
	}
	ad := &Adapter{object: f.api.track("Adapter"), Config: AdapterConfig{Desc: WARPDesc}}
	ad.register()
	return ad, nil
}

func (f *Factory) CreateSwapChainForHwnd(queue d3d12.CommandQueue, hwnd uintptr, desc d3d12.SwapChainDesc1) (d3d12.SwapChain, error) {
	if err := f.api.fail("CreateSwapChainForHwnd"); err != nil {
		return nil, err
	}
	if hwnd == 0 {
		return nil, d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	if desc.BufferCount < 2 && desc.SwapEffect == d3d12.SwapEffectFlipDiscard {
		return nil, d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	q, ok := queue.(*CommandQueue)
	if !ok || q.Released() {
		return nil, errors.New("fake: swap chain needs a live command queue")
	}
	sc := &SwapChain{object: f.api.track("SwapChain"), desc: desc, Queue: q, HWND: hwnd}
	sc.register()
	return sc, nil
}

func (f *Factory) MakeWindowAssociation(hwnd uintptr, flags d3d12.WindowAssociationFlags) error {
	if err := f.api.fail("MakeWindowAssociation"); err != nil {
		return err
	}
	if f.Associated == nil {
		f.Associated = make(map[uintptr]d3d12.WindowAssociationFlags)
	}
	f.Associated[hwnd] = flags
	return nil
}

type Adapter struct {
	object
	Config AdapterConfig
}

func (a *Adapter) Desc1() (d3d12.AdapterDesc, error) {
	if err := a.api.fail("Desc1"); err != nil {
		return d3d12.AdapterDesc{}, err
	}
	return a.Config.Desc, nil
}

// IncrementSizes are the descriptor sizes the fake device reports.
var IncrementSizes = map[d3d12.DescriptorHeapType]uint32{
	d3d12.DescriptorHeapTypeCBVSRVUAV: 32,
	d3d12.DescriptorHeapTypeSampler:   32,
	d3d12.DescriptorHeapTypeRTV:       48,
	d3d12.DescriptorHeapTypeDSV:       8,
}

type Device struct {
	object
	Adapter      d3d12.AdapterDesc
	FeatureLevel d3d12.FeatureLevel
	// RTVs maps descriptor addresses to the resources viewed there.
	RTVs map[uintptr]d3d12.Resource
	// Pipelines holds the desc of every pipeline state created.
	Pipelines []d3d12.GraphicsPipelineStateDesc
}

func (d *Device) CreateCommandQueue(desc d3d12.CommandQueueDesc) (d3d12.CommandQueue, error) {
	if err := d.api.fail("CreateCommandQueue"); err != nil {
		return nil, err
	}
	q := &CommandQueue{object: d.api.track("CommandQueue"), Desc: desc}
	q.register()
	return q, nil
}

func (d *Device) CreateCommandAllocator(typ d3d12.CommandListType) (d3d12.CommandAllocator, error) {
	if err := d.api.fail("CreateCommandAllocator"); err != nil {
		return nil, err
	}
	a := &CommandAllocator{object: d.api.track("CommandAllocator"), Type: typ}
	a.register()
	return a, nil
}

func (d *Device) CreateCommandList(nodeMask uint32, typ d3d12.CommandListType, allocator d3d12.CommandAllocator, initial d3d12.PipelineState) (d3d12.GraphicsCommandList, error) {
	if err := d.api.fail("CreateCommandList"); err != nil {
		return nil, err
	}
	a, ok := allocator.(*CommandAllocator)
	if !ok || a.Released() {
		return nil, d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	if a.Type != typ {
		return nil, d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	l := &CommandList{object: d.api.track("CommandList"), Type: typ, open: true, allocator: a}
	l.register()
	return l, nil
}

func (d *Device) CreateDescriptorHeap(desc d3d12.DescriptorHeapDesc) (d3d12.DescriptorHeap, error) {
	if err := d.api.fail("CreateDescriptorHeap"); err != nil {
		return nil, err
	}
	if desc.NumDescriptors == 0 {
		return nil, d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	h := &DescriptorHeap{object: d.api.track("DescriptorHeap"), desc: desc, base: d.api.heapBase()}
	h.register()
	return h, nil
}

func (d *Device) DescriptorHandleIncrementSize(typ d3d12.DescriptorHeapType) uint32 {
	return IncrementSizes[typ]
}

func (d *Device) CreateRootSignature(nodeMask uint32, blob []byte) (d3d12.RootSignature, error) {
	if err := d.api.fail("CreateRootSignature"); err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	rs := &RootSignature{object: d.api.track("RootSignature"), Blob: append([]byte(nil), blob...)}
	rs.register()
	return rs, nil
}

func (d *Device) CreateGraphicsPipelineState(desc *d3d12.GraphicsPipelineStateDesc) (d3d12.PipelineState, error) {
	if err := d.api.fail("CreateGraphicsPipelineState"); err != nil {
		return nil, err
	}
	if desc.RootSignature == nil || len(desc.VS) == 0 || len(desc.PS) == 0 {
		return nil, d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	d.Pipelines = append(d.Pipelines, *desc)
	p := &PipelineState{object: d.api.track("PipelineState"), Desc: *desc}
	p.register()
	return p, nil
}

func (d *Device) CreateRenderTargetView(res d3d12.Resource, dest d3d12.CPUDescriptorHandle) {
	if d.RTVs == nil {
		d.RTVs = make(map[uintptr]d3d12.Resource)
	}
	d.RTVs[dest.Ptr] = res
}

func (d *Device) CreateCommittedResource(heap d3d12.HeapProperties, flags d3d12.HeapFlags, desc d3d12.ResourceDesc, initialState d3d12.ResourceStates) (d3d12.Resource, error) {
	if err := d.api.fail("CreateCommittedResource"); err != nil {
		return nil, err
	}
	if desc.Width == 0 {
		return nil, d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	r := &Resource{
		object:     d.api.track("Resource"),
		Heap:       heap,
		Desc:       desc,
		State:      initialState,
		BackBuffer: -1,
		address:    d.api.gpuAddress(desc.Width),
	}
	if heap.Type == d3d12.HeapTypeUpload || heap.Type == d3d12.HeapTypeReadback {
		r.Data = make([]byte, desc.Width)
	}
	r.register()
	return r, nil
}

func (d *Device) CreateFence(initialValue uint64, flags d3d12.FenceFlags) (d3d12.Fence, error) {
	if err := d.api.fail("CreateFence"); err != nil {
		return nil, err
	}
	f := &Fence{object: d.api.track("Fence"), completed: initialValue}
	f.register()
	return f, nil
}

type CommandQueue struct {
	object
	Desc     d3d12.CommandQueueDesc
	Name     string
	Executed []*CommandList
	Signals  []uint64
}

func (q *CommandQueue) SetName(name string) error {
	if err := q.api.fail("SetName"); err != nil {
		return err
	}
	q.Name = name
	return nil
}

func (q *CommandQueue) ExecuteCommandLists(lists ...d3d12.GraphicsCommandList) {
	for _, l := range lists {
		if cl, ok := l.(*CommandList); ok {
			if cl.open {
				q.api.log("ExecuteCommandLists(open list)")
			} else {
				q.api.log("ExecuteCommandLists")
			}
			q.Executed = append(q.Executed, cl)
		}
	}
}

func (q *CommandQueue) Signal(fence d3d12.Fence, value uint64) error {
	if err := q.api.fail("Signal"); err != nil {
		return err
	}
	f, ok := fence.(*Fence)
	if !ok {
		return d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	q.api.log("Signal")
	q.Signals = append(q.Signals, value)
	f.pending = value
	if !q.api.DeferFences {
		f.completed = value
	}
	return nil
}

type CommandAllocator struct {
	object
	Type   d3d12.CommandListType
	Resets int
}

func (a *CommandAllocator) Reset() error {
	if err := a.api.fail("CommandAllocator.Reset"); err != nil {
		return err
	}
	a.api.log("CommandAllocator.Reset")
	a.Resets++
	return nil
}

type SwapChain struct {
	object
	desc     d3d12.SwapChainDesc1
	Queue    *CommandQueue
	HWND     uintptr
	index    uint32
	Presents []uint32
}

func (s *SwapChain) GetBuffer(index uint32) (d3d12.Resource, error) {
	if err := s.api.fail("GetBuffer"); err != nil {
		return nil, err
	}
	if index >= s.desc.BufferCount {
		return nil, d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	r := &Resource{
		object: s.api.track("Resource"),
		Desc: d3d12.ResourceDesc{
			Dimension:        d3d12.ResourceDimensionTexture2D,
			Width:            uint64(s.desc.Width),
			Height:           s.desc.Height,
			DepthOrArraySize: 1,
			MipLevels:        1,
			Format:           s.desc.Format,
			SampleDesc:       s.desc.SampleDesc,
		},
		State:      d3d12.ResourceStatePresent,
		BackBuffer: int(index),
	}
	r.register()
	return r, nil
}

func (s *SwapChain) Present(syncInterval uint32, flags d3d12.PresentFlags) error {
	if err := s.api.fail("Present"); err != nil {
		return err
	}
	s.api.log("Present")
	s.Presents = append(s.Presents, syncInterval)
	if err := s.api.nextPresentResult(); err != nil {
		return err
	}
	s.index = (s.index + 1) % s.desc.BufferCount
	return nil
}

func (s *SwapChain) CurrentBackBufferIndex() uint32 {
	return s.index
}

func (s *SwapChain) Desc1() (d3d12.SwapChainDesc1, error) {
	if err := s.api.fail("SwapChain.Desc1"); err != nil {
		return d3d12.SwapChainDesc1{}, err
	}
	return s.desc, nil
}

type DescriptorHeap struct {
	object
	desc d3d12.DescriptorHeapDesc
	base uintptr
}

func (h *DescriptorHeap) Desc() d3d12.DescriptorHeapDesc {
	return h.desc
}

func (h *DescriptorHeap) CPUDescriptorHandleForHeapStart() d3d12.CPUDescriptorHandle {
	return d3d12.CPUDescriptorHandle{Ptr: h.base}
}

type Resource struct {
	object
	Heap  d3d12.HeapProperties
	Desc  d3d12.ResourceDesc
	State d3d12.ResourceStates
	// Data is the CPU-visible backing store of upload and readback buffers.
	Data []byte
	// BackBuffer is the swap chain buffer index, -1 for committed resources.
	BackBuffer int
	Mapped     bool
	address    uint64
}

func (r *Resource) Map(subresource uint32, readRange *d3d12.Range) ([]byte, error) {
	if err := r.api.fail("Map"); err != nil {
		return nil, err
	}
	if r.Data == nil {
		return nil, d3d12.ErrNotMappable
	}
	r.Mapped = true
	return r.Data, nil
}

func (r *Resource) Unmap(subresource uint32, writtenRange *d3d12.Range) {
	r.Mapped = false
}

func (r *Resource) GPUVirtualAddress() uint64 {
	return r.address
}

type RootSignature struct {
	object
	Blob []byte
}

type PipelineState struct {
	object
	Desc d3d12.GraphicsPipelineStateDesc
}

type Fence struct {
	object
	completed uint64
	pending   uint64
	armed     uint64
}

func (f *Fence) CompletedValue() uint64 {
	return f.completed
}

func (f *Fence) SetEventOnCompletion(value uint64, ev d3d12.Event) error {
	if err := f.api.fail("SetEventOnCompletion"); err != nil {
		return err
	}
	e, ok := ev.(*Event)
	if !ok {
		return d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	e.fence = f
	e.value = value
	return nil
}

// Complete lets the simulated GPU catch up to every signaled value.
func (f *Fence) Complete() {
	f.completed = f.pending
}

type Event struct {
	api    *API
	fence  *Fence
	value  uint64
	Waits  int
	closed bool
}

// Wait finishes the GPU work the event was armed on. Waiting on a value that
// was never signaled would block forever on real hardware and is an error here.
func (e *Event) Wait() error {
	if e.closed {
		return errors.New("fake: wait on closed event")
	}
	e.Waits++
	e.api.log("Wait")
	if e.fence == nil {
		return errors.New("fake: wait on an event that was never armed")
	}
	if e.fence.pending < e.value {
		return errors.Newf("fake: deadlock, waiting for %d but only %d was signaled", e.value, e.fence.pending)
	}
	e.fence.completed = e.fence.pending
	e.fence = nil
	return nil
}

func (e *Event) Close() error {
	e.closed = true
	return nil
}

func (e *Event) Closed() bool {
	return e.closed
}
