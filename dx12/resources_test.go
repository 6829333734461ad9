package dx12

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dx12bootstrap/examples/d3d12"
	"github.com/dx12bootstrap/examples/d3d12/fake"
)

func TestShader_CompilesBothStages(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	var shader Shader
	assert.NoError(shader.Create(api, []byte(testShader), "shader.hlsl"))
	assert.Equal([]byte("DXBC:vs_5_0:vs"), shader.VertexShader())
	assert.Equal([]byte("DXBC:ps_5_0:ps"), shader.PixelShader())
	assert.Equal([]string{"ps/ps_5_0", "vs/vs_5_0"}, api.Compiles())

	shader.Destroy()
	assertNotCreated(t, "Shader.VertexShader", func() { shader.VertexShader() })
}

func TestShader_CompileErrors(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	var shader Shader

	err := shader.Create(api, []byte("float4 vs(float3 p : POSITION) : SV_POSITION { return float4(p, 1); }"), "novs.hlsl")
	assert.True(errors.Is(err, ErrShaderCompile))
	assert.Contains(err.Error(), "compile ps ps_5_0")
	var compileErr *d3d12.CompileError
	if assert.True(errors.As(err, &compileErr)) {
		assert.Contains(compileErr.Message, "X3501")
	}
	assertNotCreated(t, "Shader.PixelShader", func() { shader.PixelShader() })

	assert.True(errors.Is(shader.Create(api, nil, "empty.hlsl"), ErrInvalidArgument))
}

func TestShader_CreateFromFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.hlsl")
	require.NoError(t, os.WriteFile(path, []byte(testShader), 0o644))

	api := fake.New()
	var shader Shader
	assert.NoError(shader.CreateFromFile(api, path))
	assert.NotEmpty(shader.VertexShader())

	err := shader.CreateFromFile(api, filepath.Join(dir, "missing.hlsl"))
	assert.ErrorIs(err, os.ErrNotExist)
	assertNotCreated(t, "Shader.VertexShader", func() { shader.VertexShader() })
}

func TestPipelineState_Desc(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()

	desc := r.pipeline.Get().(*fake.PipelineState).Desc
	assert.Same(r.rootSignature.Get(), desc.RootSignature)
	assert.Equal(r.shader.VertexShader(), desc.VS)
	assert.Equal(r.shader.PixelShader(), desc.PS)
	assert.Equal(uint32(0xffffffff), desc.SampleMask)
	assert.Equal(d3d12.DefaultBlendDesc(), desc.BlendState)
	assert.Equal(d3d12.DefaultRasterizerDesc(), desc.RasterizerState)
	assert.Equal(d3d12.False, desc.DepthStencilState.DepthEnable)
	assert.Equal(d3d12.False, desc.DepthStencilState.StencilEnable)
	assert.Equal(d3d12.PrimitiveTopologyTypeTriangle, desc.PrimitiveTopologyType)
	assert.Equal([]d3d12.Format{d3d12.FormatR8G8B8A8UNorm}, desc.RTVFormats)
	assert.Equal(uint32(1), desc.SampleDesc.Count)

	if assert.Len(desc.InputLayout, 2) {
		assert.Equal("POSITION", desc.InputLayout[0].SemanticName)
		assert.Equal(d3d12.FormatR32G32B32Float, desc.InputLayout[0].Format)
		assert.Equal(uint32(0), desc.InputLayout[0].AlignedByteOffset)
		assert.Equal("COLOR", desc.InputLayout[1].SemanticName)
		assert.Equal(d3d12.FormatR32G32B32A32Float, desc.InputLayout[1].Format)
		assert.Equal(uint32(12), desc.InputLayout[1].AlignedByteOffset)
	}
}

func TestPipelineState_NeedsShaderAndRootSignature(t *testing.T) {
	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()

	var shader Shader
	var pipeline PipelineStateObject
	assertNotCreated(t, "PipelineStateObject.Create", func() {
		_ = pipeline.Create(&r.device, &shader, &r.rootSignature)
	})
}

func TestVertexBuffer_Triangle(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(VertexSize, binary.Size(Vertex{}))

	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()

	view := r.vertexBuffer.View()
	assert.Equal(uint32(84), view.SizeInBytes)
	assert.Equal(uint32(VertexSize), view.StrideInBytes)
	assert.Equal(uint32(3), r.vertexBuffer.VertexCount())

	res := r.vertexBuffer.Resource().(*fake.Resource)
	assert.Equal(res.GPUVirtualAddress(), view.BufferLocation)
	assert.Equal(d3d12.HeapTypeUpload, res.Heap.Type)
	assert.Equal(d3d12.ResourceStateGenericRead, res.State)
	assert.Equal(d3d12.BufferDesc(84), res.Desc)
	assert.False(res.Mapped, "buffer must be unmapped after upload")

	var want bytes.Buffer
	require.NoError(t, binary.Write(&want, binary.LittleEndian, Triangle()))
	assert.Equal(want.Bytes(), res.Data)

	// First vertex: top, red.
	assert.Equal(float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(res.Data[4:])))
	assert.Equal(float32(1), math.Float32frombits(binary.LittleEndian.Uint32(res.Data[12:])))
}

func TestVertexBuffer_Sizes(t *testing.T) {
	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()

	for _, tc := range []struct {
		count, stride uint32
	}{
		{1, 4},
		{3, 28},
		{4, 16},
		{1024, 32},
	} {
		var vb VertexBuffer
		data := make([]byte, tc.count*tc.stride)
		for i := range data {
			data[i] = byte(i)
		}
		if !assert.NoError(t, vb.Create(&r.device, data, tc.count, tc.stride), "%d x %d", tc.count, tc.stride) {
			continue
		}
		view := vb.View()
		assert.Equal(t, tc.count*tc.stride, view.SizeInBytes)
		assert.Equal(t, tc.stride, view.StrideInBytes)
		assert.Equal(t, data, vb.Resource().(*fake.Resource).Data)
		vb.Destroy()
	}
}

func TestVertexBuffer_InvalidArguments(t *testing.T) {
	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()

	resources := api.Live()["Resource"]
	for name, tc := range map[string]struct {
		data          any
		count, stride uint32
	}{
		"nil data":       {nil, 3, VertexSize},
		"zero count":     {Triangle(), 0, VertexSize},
		"zero stride":    {Triangle(), 3, 0},
		"short data":     {Triangle()[:2], 3, VertexSize},
		"short bytes":    {make([]byte, 10), 1, 12},
		"unsized data":   {[]any{1, 2}, 2, 8},
		"too large view": {make([]byte, 1), math.MaxUint32, 2},
	} {
		var vb VertexBuffer
		err := vb.Create(&r.device, tc.data, tc.count, tc.stride)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "%s: %v", name, err)
		assertNotCreated(t, name, func() { vb.View() })
	}
	assert.Equal(t, resources, api.Live()["Resource"])
}

func TestVertexBuffer_MapFailureReleases(t *testing.T) {
	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()

	api.FailOn("Map", d3d12.HResultError{Code: d3d12.ErrorOutOfMemory})
	resources := api.Live()["Resource"]

	var vb VertexBuffer
	err := vb.Create(&r.device, Triangle(), 3, VertexSize)
	assert.ErrorContains(t, err, "map vertex buffer")
	code, ok := d3d12.Code(err)
	assert.True(t, ok)
	assert.Equal(t, d3d12.ErrorOutOfMemory, code)
	assert.Equal(t, resources, api.Live()["Resource"])
}

func TestFence_SignalAndWait(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()

	assert.Zero(r.fence.CompletedValue())
	for want := uint64(1); want <= 3; want++ {
		value, err := r.queue.Signal(&r.fence)
		assert.NoError(err)
		assert.Equal(want, value)
		assert.Equal(want, r.fence.LastSignaled())
	}
	assert.Equal([]uint64{1, 2, 3}, r.queue.Get().(*fake.CommandQueue).Signals)

	// Already complete: no event wait.
	api.ResetTrace()
	assert.NoError(r.fence.Wait(3))
	assert.Empty(api.Trace())
}

func TestFence_WaitBlocksUntilComplete(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	api.DeferFences = true
	r := newRenderer(t, api)
	defer r.destroy()

	value, err := r.fence.Signal(&r.queue)
	require.NoError(t, err)
	assert.Zero(r.fence.CompletedValue())

	api.ResetTrace()
	assert.NoError(r.fence.Wait(value))
	assert.Equal([]string{"Wait"}, api.Trace())
	assert.Equal(value, r.fence.CompletedValue())

	// Waiting past the last signal would never return on a real GPU.
	assert.Error(r.fence.Wait(value + 1))
}

func TestFence_SignalDeviceLost(t *testing.T) {
	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()

	api.FailOn("Signal", d3d12.HResultError{Code: d3d12.DXGIErrorDeviceRemoved})
	_, err := r.fence.Signal(&r.queue)
	assert.True(t, errors.Is(err, ErrDeviceLost))
	assert.Zero(t, r.fence.LastSignaled())
}

func TestFence_DestroyClosesEvent(t *testing.T) {
	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()

	event := r.fence.event.(*fake.Event)
	r.fence.Destroy()
	assert.True(t, event.Closed())
	assert.Zero(t, api.Live()["Fence"])
}
