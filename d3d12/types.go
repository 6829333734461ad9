package d3d12

import "strconv"

type FeatureLevel uint32

const (
	FeatureLevel11_0 FeatureLevel = 0xb000
	FeatureLevel11_1 FeatureLevel = 0xb100
	FeatureLevel12_0 FeatureLevel = 0xc000
)

// Bool is the four-byte Win32 BOOL.
type Bool int32

const (
	False Bool = 0
	True  Bool = 1
)

func BoolOf(b bool) Bool {
	if b {
		return True
	}
	return False
}

type Format uint32

const (
	FormatUnknown           Format = 0
	FormatR32G32B32A32Float Format = 2
	FormatR32G32B32Float    Format = 6
	FormatR8G8B8A8UNorm     Format = 28
)

func (f Format) String() string {
	switch f {
	case FormatUnknown:
		return "UNKNOWN"
	case FormatR32G32B32A32Float:
		return "R32G32B32A32_FLOAT"
	case FormatR32G32B32Float:
		return "R32G32B32_FLOAT"
	case FormatR8G8B8A8UNorm:
		return "R8G8B8A8_UNORM"
	}
	return "FORMAT(" + itoa(uint64(f)) + ")"
}

type CommandListType int32

const (
	CommandListTypeDirect  CommandListType = 0
	CommandListTypeBundle  CommandListType = 1
	CommandListTypeCompute CommandListType = 2
	CommandListTypeCopy    CommandListType = 3
)

func (t CommandListType) String() string {
	switch t {
	case CommandListTypeDirect:
		return "DIRECT"
	case CommandListTypeBundle:
		return "BUNDLE"
	case CommandListTypeCompute:
		return "COMPUTE"
	case CommandListTypeCopy:
		return "COPY"
	}
	return "COMMAND_LIST_TYPE(" + itoa(uint64(t)) + ")"
}

type CommandQueuePriority int32

const (
	CommandQueuePriorityNormal CommandQueuePriority = 0
	CommandQueuePriorityHigh   CommandQueuePriority = 100
)

type CommandQueueFlags uint32

const CommandQueueFlagNone CommandQueueFlags = 0

type CommandQueueDesc struct {
	Type     CommandListType
	Priority CommandQueuePriority
	Flags    CommandQueueFlags
	NodeMask uint32
}

type DescriptorHeapType int32

const (
	DescriptorHeapTypeCBVSRVUAV DescriptorHeapType = 0
	DescriptorHeapTypeSampler   DescriptorHeapType = 1
	DescriptorHeapTypeRTV       DescriptorHeapType = 2
	DescriptorHeapTypeDSV       DescriptorHeapType = 3
)

func (t DescriptorHeapType) String() string {
	switch t {
	case DescriptorHeapTypeCBVSRVUAV:
		return "CBV_SRV_UAV"
	case DescriptorHeapTypeSampler:
		return "SAMPLER"
	case DescriptorHeapTypeRTV:
		return "RTV"
	case DescriptorHeapTypeDSV:
		return "DSV"
	}
	return "DESCRIPTOR_HEAP_TYPE(" + itoa(uint64(t)) + ")"
}

type DescriptorHeapFlags uint32

const (
	DescriptorHeapFlagNone          DescriptorHeapFlags = 0
	DescriptorHeapFlagShaderVisible DescriptorHeapFlags = 1
)

type DescriptorHeapDesc struct {
	Type           DescriptorHeapType
	NumDescriptors uint32
	Flags          DescriptorHeapFlags
	NodeMask       uint32
}

type CPUDescriptorHandle struct {
	Ptr uintptr
}

// Offset returns the handle index descriptors past h.
func (h CPUDescriptorHandle) Offset(index int, incrementSize uint32) CPUDescriptorHandle {
	return CPUDescriptorHandle{Ptr: h.Ptr + uintptr(index)*uintptr(incrementSize)}
}

type HeapType int32

const (
	HeapTypeDefault  HeapType = 1
	HeapTypeUpload   HeapType = 2
	HeapTypeReadback HeapType = 3
	HeapTypeCustom   HeapType = 4
)

type CPUPageProperty int32

const CPUPagePropertyUnknown CPUPageProperty = 0

type MemoryPool int32

const MemoryPoolUnknown MemoryPool = 0

type HeapProperties struct {
	Type                 HeapType
	CPUPageProperty      CPUPageProperty
	MemoryPoolPreference MemoryPool
	CreationNodeMask     uint32
	VisibleNodeMask      uint32
}

type HeapFlags uint32

const HeapFlagNone HeapFlags = 0

type ResourceDimension int32

const (
	ResourceDimensionUnknown   ResourceDimension = 0
	ResourceDimensionBuffer    ResourceDimension = 1
	ResourceDimensionTexture2D ResourceDimension = 3
)

type TextureLayout int32

const (
	TextureLayoutUnknown  TextureLayout = 0
	TextureLayoutRowMajor TextureLayout = 1
)

type ResourceFlags uint32

const ResourceFlagNone ResourceFlags = 0

type SampleDesc struct {
	Count   uint32
	Quality uint32
}

type ResourceDesc struct {
	Dimension        ResourceDimension
	Alignment        uint64
	Width            uint64
	Height           uint32
	DepthOrArraySize uint16
	MipLevels        uint16
	Format           Format
	SampleDesc       SampleDesc
	Layout           TextureLayout
	Flags            ResourceFlags
}

// BufferDesc describes a plain buffer of size bytes.
func BufferDesc(size uint64) ResourceDesc {
	return ResourceDesc{
		Dimension:        ResourceDimensionBuffer,
		Width:            size,
		Height:           1,
		DepthOrArraySize: 1,
		MipLevels:        1,
		Format:           FormatUnknown,
		SampleDesc:       SampleDesc{Count: 1},
		Layout:           TextureLayoutRowMajor,
		Flags:            ResourceFlagNone,
	}
}

type ResourceStates uint32

const (
	ResourceStateCommon                  ResourceStates = 0
	ResourceStatePresent                 ResourceStates = 0
	ResourceStateVertexAndConstantBuffer ResourceStates = 0x1
	ResourceStateIndexBuffer             ResourceStates = 0x2
	ResourceStateRenderTarget            ResourceStates = 0x4
	ResourceStateNonPixelShaderResource  ResourceStates = 0x40
	ResourceStatePixelShaderResource     ResourceStates = 0x80
	ResourceStateIndirectArgument        ResourceStates = 0x200
	ResourceStateCopySource              ResourceStates = 0x800
	ResourceStateGenericRead             ResourceStates = ResourceStateVertexAndConstantBuffer |
		ResourceStateIndexBuffer |
		ResourceStateNonPixelShaderResource |
		ResourceStatePixelShaderResource |
		ResourceStateIndirectArgument |
		ResourceStateCopySource
)

type ResourceBarrierType int32

const ResourceBarrierTypeTransition ResourceBarrierType = 0

type ResourceBarrierFlags uint32

const ResourceBarrierFlagNone ResourceBarrierFlags = 0

const ResourceBarrierAllSubresources uint32 = 0xffffffff

type ResourceTransitionBarrier struct {
	Resource    Resource
	Subresource uint32
	StateBefore ResourceStates
	StateAfter  ResourceStates
}

type ResourceBarrier struct {
	Type       ResourceBarrierType
	Flags      ResourceBarrierFlags
	Transition ResourceTransitionBarrier
}

// TransitionBarrier moves every subresource of r from before to after.
func TransitionBarrier(r Resource, before, after ResourceStates) ResourceBarrier {
	return ResourceBarrier{
		Type:  ResourceBarrierTypeTransition,
		Flags: ResourceBarrierFlagNone,
		Transition: ResourceTransitionBarrier{
			Resource:    r,
			Subresource: ResourceBarrierAllSubresources,
			StateBefore: before,
			StateAfter:  after,
		},
	}
}

type Range struct {
	Begin uintptr
	End   uintptr
}

type VertexBufferView struct {
	BufferLocation uint64
	SizeInBytes    uint32
	StrideInBytes  uint32
}

type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type PrimitiveTopology int32

const PrimitiveTopologyTriangleList PrimitiveTopology = 4

type PrimitiveTopologyType int32

const PrimitiveTopologyTypeTriangle PrimitiveTopologyType = 3

type FenceFlags uint32

const FenceFlagNone FenceFlags = 0

type InputClassification int32

const InputClassificationPerVertexData InputClassification = 0

const AppendAlignedElement uint32 = 0xffffffff

type InputElementDesc struct {
	SemanticName         string
	SemanticIndex        uint32
	Format               Format
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       InputClassification
	InstanceDataStepRate uint32
}

type FillMode int32

const (
	FillModeWireframe FillMode = 2
	FillModeSolid     FillMode = 3
)

type CullMode int32

const (
	CullModeNone  CullMode = 1
	CullModeFront CullMode = 2
	CullModeBack  CullMode = 3
)

type ConservativeRasterizationMode int32

const ConservativeRasterizationModeOff ConservativeRasterizationMode = 0

type RasterizerDesc struct {
	FillMode              FillMode
	CullMode              CullMode
	FrontCounterClockwise Bool
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       Bool
	MultisampleEnable     Bool
	AntialiasedLineEnable Bool
	ForcedSampleCount     uint32
	ConservativeRaster    ConservativeRasterizationMode
}

// DefaultRasterizerDesc matches CD3DX12_RASTERIZER_DESC(D3D12_DEFAULT).
func DefaultRasterizerDesc() RasterizerDesc {
	return RasterizerDesc{
		FillMode:           FillModeSolid,
		CullMode:           CullModeBack,
		DepthClipEnable:    True,
		ConservativeRaster: ConservativeRasterizationModeOff,
	}
}

type Blend int32

const (
	BlendZero Blend = 1
	BlendOne  Blend = 2
)

type BlendOp int32

const BlendOpAdd BlendOp = 1

type LogicOp int32

const LogicOpNoop LogicOp = 4

type ColorWriteEnable uint8

const ColorWriteEnableAll ColorWriteEnable = 0xf

type RenderTargetBlendDesc struct {
	BlendEnable           Bool
	LogicOpEnable         Bool
	SrcBlend              Blend
	DestBlend             Blend
	BlendOp               BlendOp
	SrcBlendAlpha         Blend
	DestBlendAlpha        Blend
	BlendOpAlpha          BlendOp
	LogicOp               LogicOp
	RenderTargetWriteMask ColorWriteEnable
}

type BlendDesc struct {
	AlphaToCoverageEnable  Bool
	IndependentBlendEnable Bool
	RenderTarget           [8]RenderTargetBlendDesc
}

// DefaultBlendDesc matches CD3DX12_BLEND_DESC(D3D12_DEFAULT).
func DefaultBlendDesc() BlendDesc {
	var desc BlendDesc
	for i := range desc.RenderTarget {
		desc.RenderTarget[i] = RenderTargetBlendDesc{
			SrcBlend:              BlendOne,
			DestBlend:             BlendZero,
			BlendOp:               BlendOpAdd,
			SrcBlendAlpha:         BlendOne,
			DestBlendAlpha:        BlendZero,
			BlendOpAlpha:          BlendOpAdd,
			LogicOp:               LogicOpNoop,
			RenderTargetWriteMask: ColorWriteEnableAll,
		}
	}
	return desc
}

type DepthWriteMask int32

const (
	DepthWriteMaskZero DepthWriteMask = 0
	DepthWriteMaskAll  DepthWriteMask = 1
)

type ComparisonFunc int32

const (
	ComparisonFuncLess   ComparisonFunc = 2
	ComparisonFuncAlways ComparisonFunc = 8
)

type StencilOp int32

const StencilOpKeep StencilOp = 1

type DepthStencilOpDesc struct {
	StencilFailOp      StencilOp
	StencilDepthFailOp StencilOp
	StencilPassOp      StencilOp
	StencilFunc        ComparisonFunc
}

type DepthStencilDesc struct {
	DepthEnable      Bool
	DepthWriteMask   DepthWriteMask
	DepthFunc        ComparisonFunc
	StencilEnable    Bool
	StencilReadMask  uint8
	StencilWriteMask uint8
	FrontFace        DepthStencilOpDesc
	BackFace         DepthStencilOpDesc
}

type GraphicsPipelineStateDesc struct {
	RootSignature         RootSignature
	VS                    []byte
	PS                    []byte
	BlendState            BlendDesc
	SampleMask            uint32
	RasterizerState       RasterizerDesc
	DepthStencilState     DepthStencilDesc
	InputLayout           []InputElementDesc
	PrimitiveTopologyType PrimitiveTopologyType
	RTVFormats            []Format
	DSVFormat             Format
	SampleDesc            SampleDesc
	NodeMask              uint32
}

type RootSignatureVersion int32

const RootSignatureVersion1_0 RootSignatureVersion = 0x1

type RootSignatureFlags uint32

const (
	RootSignatureFlagNone                           RootSignatureFlags = 0
	RootSignatureFlagAllowInputAssemblerInputLayout RootSignatureFlags = 0x1
)

// RootSignatureDesc only carries flags; the triangle binds no root parameters.
type RootSignatureDesc struct {
	Flags RootSignatureFlags
}

type CompileFlags uint32

const (
	CompileDebug            CompileFlags = 1 << 0
	CompileSkipOptimization CompileFlags = 1 << 2
)

type FactoryFlags uint32

const FactoryFlagDebug FactoryFlags = 0x1

type AdapterFlags uint32

const (
	AdapterFlagNone     AdapterFlags = 0
	AdapterFlagRemote   AdapterFlags = 1
	AdapterFlagSoftware AdapterFlags = 2
)

type AdapterDesc struct {
	Description           string
	VendorID              uint32
	DeviceID              uint32
	SubSysID              uint32
	Revision              uint32
	DedicatedVideoMemory  uint64
	DedicatedSystemMemory uint64
	SharedSystemMemory    uint64
	Flags                 AdapterFlags
}

type Usage uint32

const UsageRenderTargetOutput Usage = 0x20

type Scaling int32

const ScalingStretch Scaling = 0

type SwapEffect int32

const (
	SwapEffectDiscard        SwapEffect = 0
	SwapEffectFlipSequential SwapEffect = 3
	SwapEffectFlipDiscard    SwapEffect = 4
)

type AlphaMode int32

const AlphaModeUnspecified AlphaMode = 0

type SwapChainDesc1 struct {
	Width       uint32
	Height      uint32
	Format      Format
	Stereo      Bool
	SampleDesc  SampleDesc
	BufferUsage Usage
	BufferCount uint32
	Scaling     Scaling
	SwapEffect  SwapEffect
	AlphaMode   AlphaMode
	Flags       uint32
}

type PresentFlags uint32

const PresentFlagNone PresentFlags = 0

type WindowAssociationFlags uint32

const (
	WindowAssociationNoWindowChanges WindowAssociationFlags = 1 << 0
	WindowAssociationNoAltEnter      WindowAssociationFlags = 1 << 1
)

func itoa(v uint64) string {
	return strconv.FormatUint(v, 10)
}
