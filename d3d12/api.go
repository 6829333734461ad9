// Package d3d12 is the slice of DXGI, Direct3D 12 and the D3D shader compiler that
// the triangle renderer calls. Every native object is exposed as an interface so
// the owning wrappers in dx12 can be driven by the Windows implementation or by
// the in-memory one in d3d12/fake.
package d3d12

// Releaser is implemented by every native object. Release drops the caller's
// reference; the object must not be used afterwards.
type Releaser interface {
	Release()
}

// API holds the free functions of d3d12.dll, dxgi.dll and d3dcompiler_47.dll.
type API interface {
	CreateFactory(flags FactoryFlags) (Factory, error)
	// ProbeDevice reports whether a device could be created on adapter without
	// creating one.
	ProbeDevice(adapter Adapter, level FeatureLevel) error
	// CreateDevice creates a device on adapter, or on the default adapter when
	// adapter is nil.
	CreateDevice(adapter Adapter, level FeatureLevel) (Device, error)
	EnableDebugLayer() error
	// EnableGPUBasedValidation turns on GPU-based validation in the debug
	// layer. Like EnableDebugLayer it only affects devices created afterwards.
	EnableGPUBasedValidation() error
	SerializeRootSignature(desc RootSignatureDesc, version RootSignatureVersion) ([]byte, error)
	Compile(source []byte, sourceName, entryPoint, target string, flags CompileFlags) ([]byte, error)
	CreateEvent() (Event, error)
}

type Factory interface {
	Releaser
	// EnumAdapters1 returns ErrNotFound once index is past the last adapter.
	EnumAdapters1(index uint32) (Adapter, error)
	EnumWarpAdapter() (Adapter, error)
	CreateSwapChainForHwnd(queue CommandQueue, hwnd uintptr, desc SwapChainDesc1) (SwapChain, error)
	MakeWindowAssociation(hwnd uintptr, flags WindowAssociationFlags) error
}

type Adapter interface {
	Releaser
	Desc1() (AdapterDesc, error)
}

type Device interface {
	Releaser
	CreateCommandQueue(desc CommandQueueDesc) (CommandQueue, error)
	CreateCommandAllocator(typ CommandListType) (CommandAllocator, error)
	CreateCommandList(nodeMask uint32, typ CommandListType, allocator CommandAllocator, initial PipelineState) (GraphicsCommandList, error)
	CreateDescriptorHeap(desc DescriptorHeapDesc) (DescriptorHeap, error)
	DescriptorHandleIncrementSize(typ DescriptorHeapType) uint32
	CreateRootSignature(nodeMask uint32, blob []byte) (RootSignature, error)
	CreateGraphicsPipelineState(desc *GraphicsPipelineStateDesc) (PipelineState, error)
	CreateRenderTargetView(resource Resource, dest CPUDescriptorHandle)
	CreateCommittedResource(heap HeapProperties, flags HeapFlags, desc ResourceDesc, initialState ResourceStates) (Resource, error)
	CreateFence(initialValue uint64, flags FenceFlags) (Fence, error)
}

type CommandQueue interface {
	Releaser
	SetName(name string) error
	ExecuteCommandLists(lists ...GraphicsCommandList)
	Signal(fence Fence, value uint64) error
}

type CommandAllocator interface {
	Releaser
	Reset() error
}

type GraphicsCommandList interface {
	Releaser
	Close() error
	Reset(allocator CommandAllocator, initial PipelineState) error
	ResourceBarrier(barriers ...ResourceBarrier)
	SetGraphicsRootSignature(rootSignature RootSignature)
	SetPipelineState(pipelineState PipelineState)
	RSSetViewports(viewports ...Viewport)
	RSSetScissorRects(rects ...Rect)
	OMSetRenderTargets(rtvs []CPUDescriptorHandle, dsv *CPUDescriptorHandle)
	ClearRenderTargetView(rtv CPUDescriptorHandle, color [4]float32, rects ...Rect)
	IASetPrimitiveTopology(topology PrimitiveTopology)
	IASetVertexBuffers(startSlot uint32, views ...VertexBufferView)
	DrawInstanced(vertexCountPerInstance, instanceCount, startVertexLocation, startInstanceLocation uint32)
}

type SwapChain interface {
	Releaser
	GetBuffer(index uint32) (Resource, error)
	// Present returns an HResultError for status codes as well as failures, so
	// callers can tell DXGI_STATUS_OCCLUDED apart.
	Present(syncInterval uint32, flags PresentFlags) error
	CurrentBackBufferIndex() uint32
	Desc1() (SwapChainDesc1, error)
}

type DescriptorHeap interface {
	Releaser
	Desc() DescriptorHeapDesc
	CPUDescriptorHandleForHeapStart() CPUDescriptorHandle
}

type Resource interface {
	Releaser
	// Map returns the CPU view of subresource. The slice is only valid until
	// Unmap.
	Map(subresource uint32, readRange *Range) ([]byte, error)
	Unmap(subresource uint32, writtenRange *Range)
	GPUVirtualAddress() uint64
}

type RootSignature interface {
	Releaser
}

type PipelineState interface {
	Releaser
}

type Fence interface {
	Releaser
	CompletedValue() uint64
	SetEventOnCompletion(value uint64, event Event) error
}

// Event is a Win32 auto-reset event used to block on fence completion.
type Event interface {
	// Wait blocks until the event is signaled. There is no timeout.
	Wait() error
	Close() error
}
