package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

// InputLayout matches Vertex: a float3 POSITION followed by a float4 COLOR.
var InputLayout = []d3d12.InputElementDesc{
	{
		SemanticName:      "POSITION",
		Format:            d3d12.FormatR32G32B32Float,
		AlignedByteOffset: 0,
		InputSlotClass:    d3d12.InputClassificationPerVertexData,
	},
	{
		SemanticName:      "COLOR",
		Format:            d3d12.FormatR32G32B32A32Float,
		AlignedByteOffset: 12,
		InputSlotClass:    d3d12.InputClassificationPerVertexData,
	},
}

type PipelineStateObject struct {
	pipelineState d3d12.PipelineState
}

// PipelineDesc is the fixed-function state of the triangle pipeline: default
// rasterizer and blend, no depth or stencil, one R8G8B8A8 target, no MSAA.
func PipelineDesc(shader *Shader, rootSignature *RootSignature) d3d12.GraphicsPipelineStateDesc {
	return d3d12.GraphicsPipelineStateDesc{
		RootSignature:   rootSignature.Get(),
		VS:              shader.VertexShader(),
		PS:              shader.PixelShader(),
		BlendState:      d3d12.DefaultBlendDesc(),
		SampleMask:      0xffffffff,
		RasterizerState: d3d12.DefaultRasterizerDesc(),
		DepthStencilState: d3d12.DepthStencilDesc{
			DepthEnable:   d3d12.False,
			StencilEnable: d3d12.False,
		},
		InputLayout:           InputLayout,
		PrimitiveTopologyType: d3d12.PrimitiveTopologyTypeTriangle,
		RTVFormats:            []d3d12.Format{BackBufferFormat},
		DSVFormat:             d3d12.FormatUnknown,
		SampleDesc:            d3d12.SampleDesc{Count: 1},
	}
}

func (p *PipelineStateObject) Create(device *Device, shader *Shader, rootSignature *RootSignature) error {
	p.Destroy()

	desc := PipelineDesc(shader, rootSignature)
	pipelineState, err := device.Get().CreateGraphicsPipelineState(&desc)
	if err != nil {
		return errors.Wrap(err, "create graphics pipeline state")
	}
	p.pipelineState = pipelineState
	Logger().Debug("pipeline state created")
	return nil
}

func (p *PipelineStateObject) Get() d3d12.PipelineState {
	mustBeCreated(p.pipelineState != nil, "pipeline state")
	return p.pipelineState
}

func (p *PipelineStateObject) Destroy() {
	if p.pipelineState != nil {
		p.pipelineState.Release()
		p.pipelineState = nil
	}
}
