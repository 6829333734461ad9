//go:build windows

package d3d12

import (
	"runtime"
	"syscall"
	"unsafe"

	"github.com/cockroachdb/errors"
)

type iD3D12ObjectVtbl struct {
	iUnknownVtbl

	GetPrivateData          uintptr
	SetPrivateData          uintptr
	SetPrivateDataInterface uintptr
	SetName                 uintptr
}

type iD3D12DeviceChildVtbl struct {
	iD3D12ObjectVtbl

	GetDevice uintptr
}

type iD3D12Device struct {
	vtbl *struct {
		iD3D12ObjectVtbl

		GetNodeCount                     uintptr
		CreateCommandQueue               uintptr
		CreateCommandAllocator           uintptr
		CreateGraphicsPipelineState      uintptr
		CreateComputePipelineState       uintptr
		CreateCommandList                uintptr
		CheckFeatureSupport              uintptr
		CreateDescriptorHeap             uintptr
		GetDescriptorHandleIncrementSize uintptr
		CreateRootSignature              uintptr
		CreateConstantBufferView         uintptr
		CreateShaderResourceView         uintptr
		CreateUnorderedAccessView        uintptr
		CreateRenderTargetView           uintptr
		CreateDepthStencilView           uintptr
		CreateSampler                    uintptr
		CopyDescriptors                  uintptr
		CopyDescriptorsSimple            uintptr
		GetResourceAllocationInfo        uintptr
		GetCustomHeapProperties          uintptr
		CreateCommittedResource          uintptr
		CreateHeap                       uintptr
		CreatePlacedResource             uintptr
		CreateReservedResource           uintptr
		CreateSharedHandle               uintptr
		OpenSharedHandle                 uintptr
		OpenSharedHandleByName           uintptr
		MakeResident                     uintptr
		Evict                            uintptr
		CreateFence                      uintptr
		GetDeviceRemovedReason           uintptr
		GetCopyableFootprints            uintptr
		CreateQueryHeap                  uintptr
		SetStablePowerState              uintptr
		CreateCommandSignature           uintptr
		GetResourceTiling                uintptr
		GetAdapterLuid                   uintptr
	}
}

func (d *iD3D12Device) Release() {
	comRelease(unsafe.Pointer(d))
}

func (d *iD3D12Device) CreateCommandQueue(desc CommandQueueDesc) (CommandQueue, error) {
	var q *iD3D12CommandQueue
	r, _, _ := syscall.SyscallN(d.vtbl.CreateCommandQueue,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(&desc)),
		uintptr(unsafe.Pointer(&IIDD3D12CommandQueue)),
		uintptr(unsafe.Pointer(&q)),
	)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "ID3D12Device::CreateCommandQueue")
	}
	return q, nil
}

func (d *iD3D12Device) CreateCommandAllocator(typ CommandListType) (CommandAllocator, error) {
	var a *iD3D12CommandAllocator
	r, _, _ := syscall.SyscallN(d.vtbl.CreateCommandAllocator,
		uintptr(unsafe.Pointer(d)),
		uintptr(typ),
		uintptr(unsafe.Pointer(&IIDD3D12CommandAllocator)),
		uintptr(unsafe.Pointer(&a)),
	)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "ID3D12Device::CreateCommandAllocator")
	}
	return a, nil
}

func (d *iD3D12Device) CreateCommandList(nodeMask uint32, typ CommandListType, allocator CommandAllocator, initial PipelineState) (GraphicsCommandList, error) {
	a, ok := allocator.(*iD3D12CommandAllocator)
	if !ok || a == nil {
		return nil, errors.New("ID3D12Device::CreateCommandList: allocator is not a native command allocator")
	}
	var l *iD3D12GraphicsCommandList
	r, _, _ := syscall.SyscallN(d.vtbl.CreateCommandList,
		uintptr(unsafe.Pointer(d)),
		uintptr(nodeMask),
		uintptr(typ),
		uintptr(unsafe.Pointer(a)),
		pipelineStatePointer(initial),
		uintptr(unsafe.Pointer(&IIDD3D12GraphicsCommandList)),
		uintptr(unsafe.Pointer(&l)),
	)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "ID3D12Device::CreateCommandList")
	}
	return l, nil
}

func (d *iD3D12Device) CreateDescriptorHeap(desc DescriptorHeapDesc) (DescriptorHeap, error) {
	var h *iD3D12DescriptorHeap
	r, _, _ := syscall.SyscallN(d.vtbl.CreateDescriptorHeap,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(&desc)),
		uintptr(unsafe.Pointer(&IIDD3D12DescriptorHeap)),
		uintptr(unsafe.Pointer(&h)),
	)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "ID3D12Device::CreateDescriptorHeap")
	}
	return h, nil
}

func (d *iD3D12Device) DescriptorHandleIncrementSize(typ DescriptorHeapType) uint32 {
	r, _, _ := syscall.SyscallN(d.vtbl.GetDescriptorHandleIncrementSize,
		uintptr(unsafe.Pointer(d)),
		uintptr(typ),
	)
	return uint32(r)
}

func (d *iD3D12Device) CreateRootSignature(nodeMask uint32, blob []byte) (RootSignature, error) {
	if len(blob) == 0 {
		return nil, errors.New("ID3D12Device::CreateRootSignature: empty blob")
	}
	var rs *iD3D12RootSignature
	r, _, _ := syscall.SyscallN(d.vtbl.CreateRootSignature,
		uintptr(unsafe.Pointer(d)),
		uintptr(nodeMask),
		uintptr(unsafe.Pointer(&blob[0])),
		uintptr(len(blob)),
		uintptr(unsafe.Pointer(&IIDD3D12RootSignature)),
		uintptr(unsafe.Pointer(&rs)),
	)
	runtime.KeepAlive(blob)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "ID3D12Device::CreateRootSignature")
	}
	return rs, nil
}

type shaderBytecode struct {
	pShaderBytecode uintptr
	BytecodeLength  uintptr
}

func bytecodeOf(b []byte) shaderBytecode {
	if len(b) == 0 {
		return shaderBytecode{}
	}
	return shaderBytecode{
		pShaderBytecode: uintptr(unsafe.Pointer(&b[0])),
		BytecodeLength:  uintptr(len(b)),
	}
}

type streamOutputDesc struct {
	pSODeclaration   uintptr
	NumEntries       uint32
	pBufferStrides   uintptr
	NumStrides       uint32
	RasterizedStream uint32
}

type inputElementDesc struct {
	SemanticName         *byte
	SemanticIndex        uint32
	Format               Format
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       InputClassification
	InstanceDataStepRate uint32
}

type inputLayoutDesc struct {
	pInputElementDescs *inputElementDesc
	NumElements        uint32
}

type cachedPipelineState struct {
	pCachedBlob           uintptr
	CachedBlobSizeInBytes uintptr
}

type graphicsPipelineStateDesc struct {
	pRootSignature        uintptr
	VS                    shaderBytecode
	PS                    shaderBytecode
	DS                    shaderBytecode
	HS                    shaderBytecode
	GS                    shaderBytecode
	StreamOutput          streamOutputDesc
	BlendState            BlendDesc
	SampleMask            uint32
	RasterizerState       RasterizerDesc
	DepthStencilState     DepthStencilDesc
	InputLayout           inputLayoutDesc
	IBStripCutValue       int32
	PrimitiveTopologyType PrimitiveTopologyType
	NumRenderTargets      uint32
	RTVFormats            [8]Format
	DSVFormat             Format
	SampleDesc            SampleDesc
	NodeMask              uint32
	CachedPSO             cachedPipelineState
	Flags                 uint32
}

func (d *iD3D12Device) CreateGraphicsPipelineState(desc *GraphicsPipelineStateDesc) (PipelineState, error) {
	if len(desc.RTVFormats) > 8 {
		return nil, errors.Newf("ID3D12Device::CreateGraphicsPipelineState: %d render targets", len(desc.RTVFormats))
	}
	rs, ok := desc.RootSignature.(*iD3D12RootSignature)
	if !ok || rs == nil {
		return nil, errors.New("ID3D12Device::CreateGraphicsPipelineState: root signature is not native")
	}

	names := make([][]byte, len(desc.InputLayout))
	elements := make([]inputElementDesc, len(desc.InputLayout))
	for i, e := range desc.InputLayout {
		names[i] = cString(e.SemanticName)
		elements[i] = inputElementDesc{
			SemanticName:         &names[i][0],
			SemanticIndex:        e.SemanticIndex,
			Format:               e.Format,
			InputSlot:            e.InputSlot,
			AlignedByteOffset:    e.AlignedByteOffset,
			InputSlotClass:       e.InputSlotClass,
			InstanceDataStepRate: e.InstanceDataStepRate,
		}
	}

	native := graphicsPipelineStateDesc{
		pRootSignature:        uintptr(unsafe.Pointer(rs)),
		VS:                    bytecodeOf(desc.VS),
		PS:                    bytecodeOf(desc.PS),
		BlendState:            desc.BlendState,
		SampleMask:            desc.SampleMask,
		RasterizerState:       desc.RasterizerState,
		DepthStencilState:     desc.DepthStencilState,
		PrimitiveTopologyType: desc.PrimitiveTopologyType,
		NumRenderTargets:      uint32(len(desc.RTVFormats)),
		DSVFormat:             desc.DSVFormat,
		SampleDesc:            desc.SampleDesc,
		NodeMask:              desc.NodeMask,
	}
	if len(elements) > 0 {
		native.InputLayout = inputLayoutDesc{
			pInputElementDescs: &elements[0],
			NumElements:        uint32(len(elements)),
		}
	}
	copy(native.RTVFormats[:], desc.RTVFormats)

	var pso *iD3D12PipelineState
	r, _, _ := syscall.SyscallN(d.vtbl.CreateGraphicsPipelineState,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(&native)),
		uintptr(unsafe.Pointer(&IIDD3D12PipelineState)),
		uintptr(unsafe.Pointer(&pso)),
	)
	runtime.KeepAlive(names)
	runtime.KeepAlive(elements)
	runtime.KeepAlive(desc)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "ID3D12Device::CreateGraphicsPipelineState")
	}
	return pso, nil
}

func (d *iD3D12Device) CreateRenderTargetView(res Resource, dest CPUDescriptorHandle) {
	_, _, _ = syscall.SyscallN(d.vtbl.CreateRenderTargetView,
		uintptr(unsafe.Pointer(d)),
		resourcePointer(res),
		0, // pDesc
		dest.Ptr,
	)
}

func (d *iD3D12Device) CreateCommittedResource(heap HeapProperties, flags HeapFlags, desc ResourceDesc, initialState ResourceStates) (Resource, error) {
	var res *iD3D12Resource
	r, _, _ := syscall.SyscallN(d.vtbl.CreateCommittedResource,
		uintptr(unsafe.Pointer(d)),
		uintptr(unsafe.Pointer(&heap)),
		uintptr(flags),
		uintptr(unsafe.Pointer(&desc)),
		uintptr(initialState),
		0, // pOptimizedClearValue
		uintptr(unsafe.Pointer(&IIDD3D12Resource)),
		uintptr(unsafe.Pointer(&res)),
	)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "ID3D12Device::CreateCommittedResource")
	}
	out := &resource{ptr: res}
	if heap.Type == HeapTypeUpload || heap.Type == HeapTypeReadback {
		out.size = desc.Width
	}
	return out, nil
}

func (d *iD3D12Device) CreateFence(initialValue uint64, flags FenceFlags) (Fence, error) {
	var f *iD3D12Fence
	r, _, _ := syscall.SyscallN(d.vtbl.CreateFence,
		uintptr(unsafe.Pointer(d)),
		uintptr(initialValue),
		uintptr(flags),
		uintptr(unsafe.Pointer(&IIDD3D12Fence)),
		uintptr(unsafe.Pointer(&f)),
	)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "ID3D12Device::CreateFence")
	}
	return f, nil
}
