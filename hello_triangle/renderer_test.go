package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dx12bootstrap/examples/config"
	"github.com/dx12bootstrap/examples/d3d12"
	"github.com/dx12bootstrap/examples/d3d12/fake"
	"github.com/dx12bootstrap/examples/dx12"
)

type testWindow uintptr

func (w testWindow) HWND() (uintptr, error) {
	return uintptr(w), nil
}

func TestRenderer_Frames(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	cfg := config.Default()
	var r renderer
	require.NoError(t, r.create(api, testWindow(0x1234), cfg, embeddedShader, "shader.hlsl"))

	for i := 0; i < 4; i++ {
		require.NoError(t, r.render(cfg.Width, cfg.Height))
	}
	sc := r.swapChain.Get().(*fake.SwapChain)
	assert.Equal([]uint32{1, 1, 1, 1}, sc.Presents)
	assert.Equal(uint64(4), r.fence.LastSignaled())
	assert.Empty(r.list.Get().(*fake.CommandList).Errors)
	assert.False(r.device.IsSoftware())
	assert.False(api.DebugLayerEnabled())
	assert.False(api.GPUValidationEnabled())

	r.destroy()
	assert.Zero(api.LiveCount(), "leaked: %v", api.LiveKinds())
	assert.Empty(api.DoubleReleases())
}

func TestRenderer_Options(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	cfg := config.Default()
	cfg.WARP = true
	cfg.Debug = true
	cfg.FrameSync = false
	cfg.SyncInterval = 0

	var r renderer
	require.NoError(t, r.create(api, testWindow(0x1234), cfg, embeddedShader, "shader.hlsl"))
	defer r.destroy()

	assert.True(r.device.IsSoftware())
	assert.True(api.DebugLayerEnabled())
	assert.True(api.GPUValidationEnabled())
	assert.Equal(d3d12.FactoryFlagDebug, r.dxgi.Factory().(*fake.Factory).Flags)
	assert.Nil(r.frame.Fence)

	require.NoError(t, r.render(cfg.Width, cfg.Height))
	assert.Equal([]uint32{0}, r.swapChain.Get().(*fake.SwapChain).Presents)
	assert.NotContains(api.Trace(), "Signal")
}

func TestRenderer_GPUValidationUnavailable(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	api.FailOn("EnableGPUBasedValidation", d3d12.HResultError{Code: d3d12.ErrorNoInterface})
	cfg := config.Default()
	cfg.Debug = true

	var r renderer
	require.NoError(t, r.create(api, testWindow(0x1234), cfg, embeddedShader, "shader.hlsl"))
	defer r.destroy()

	assert.True(api.DebugLayerEnabled())
	assert.False(api.GPUValidationEnabled())
	require.NoError(t, r.render(cfg.Width, cfg.Height))
}

func TestRenderer_DebugLayerUnavailable(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	api.FailOn("EnableDebugLayer", d3d12.HResultError{Code: d3d12.ErrorFail})
	cfg := config.Default()
	cfg.Debug = true

	var r renderer
	require.NoError(t, r.create(api, testWindow(0x1234), cfg, embeddedShader, "shader.hlsl"))
	defer r.destroy()

	assert.False(api.DebugLayerEnabled())
	assert.False(api.GPUValidationEnabled())
}

func TestRenderer_NoHardwareAdapter(t *testing.T) {
	api := &fake.API{}
	var r renderer
	require.NoError(t, r.create(api, testWindow(1), config.Default(), embeddedShader, "shader.hlsl"))
	defer r.destroy()
	assert.True(t, r.device.IsSoftware())
}

func TestRenderer_CreateFailureReleases(t *testing.T) {
	for _, method := range []string{
		"CreateCommandQueue",
		"CreateSwapChainForHwnd",
		"GetBuffer",
		"SerializeRootSignature",
		"Compile",
		"CreateGraphicsPipelineState",
		"CreateCommittedResource",
		"CreateFence",
	} {
		api := fake.New()
		api.FailOn(method, d3d12.HResultError{Code: d3d12.ErrorFail})

		var r renderer
		err := r.create(api, testWindow(1), config.Default(), embeddedShader, "shader.hlsl")
		assert.Error(t, err, method)
		assert.Zero(t, api.LiveCount(), "%s leaked: %v", method, api.LiveKinds())
	}
}

func TestRenderer_ShaderCompileError(t *testing.T) {
	api := fake.New()
	var r renderer
	err := r.create(api, testWindow(1), config.Default(), []byte("float4 main() : SV_TARGET { return 0; }"), "broken.hlsl")
	assert.True(t, errors.Is(err, dx12.ErrShaderCompile))
	assert.Zero(t, api.LiveCount())
}

func TestLoadShader(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.hlsl")
	require.NoError(t, os.WriteFile(path, []byte("custom"), 0o644))

	source, name, err := loadShader(path, embeddedShader)
	assert.NoError(err)
	assert.Equal([]byte("custom"), source)
	assert.Equal("custom.hlsl", name)

	source, name, err = loadShader(filepath.Join(dir, "missing.hlsl"), embeddedShader)
	assert.NoError(err)
	assert.Equal(embeddedShader, source)
	assert.Equal("embedded/shader.hlsl", name)

	_, _, err = loadShader(dir, embeddedShader)
	assert.Error(err, "reading a directory fails")
}

func TestEmbeddedShaderEntryPoints(t *testing.T) {
	api := fake.New()
	var shader dx12.Shader
	require.NoError(t, shader.Create(api, embeddedShader, "shader.hlsl"))
	assert.Equal(t, []string{"ps/ps_5_0", "vs/vs_5_0"}, api.Compiles())
}
