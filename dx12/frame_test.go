package dx12

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dx12bootstrap/examples/d3d12"
	"github.com/dx12bootstrap/examples/d3d12/fake"
)

var frameTrace = []string{
	"CommandAllocator.Reset",
	"CommandList.Reset",
	"ResourceBarrier",
	"SetGraphicsRootSignature",
	"SetPipelineState",
	"RSSetViewports",
	"RSSetScissorRects",
	"OMSetRenderTargets",
	"ClearRenderTargetView",
	"IASetPrimitiveTopology",
	"IASetVertexBuffers",
	"DrawInstanced",
	"ResourceBarrier",
	"CommandList.Close",
	"ExecuteCommandLists",
	"Present",
}

func TestFrame_CommandOrder(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()
	f := r.frame(false)

	api.ResetTrace()
	require.NoError(t, f.Render(1280, 720))
	assert.Equal(frameTrace, api.Trace())

	l := r.list.Get().(*fake.CommandList)
	assert.Empty(l.Errors)
	assert.False(l.Open())
}

func TestFrame_CommandArguments(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()
	f := r.frame(false)
	f.ClearColor = [4]float32{0.25, 0.5, 0.75, 1}

	require.NoError(t, f.Record(800, 600))
	l := r.list.Get().(*fake.CommandList)
	backBuffer := r.renderTarget.Get(0)
	rtv := r.renderTarget.DescriptorHandle(&r.device, &r.rtvHeap, 0)

	barrier := l.Commands[0]
	assert.Equal(d3d12.TransitionBarrier(backBuffer, d3d12.ResourceStatePresent, d3d12.ResourceStateRenderTarget), barrier.Args[0])

	if c, ok := l.Find("SetGraphicsRootSignature"); assert.True(ok) {
		assert.Same(r.rootSignature.Get(), c.Args[0])
	}
	if c, ok := l.Find("SetPipelineState"); assert.True(ok) {
		assert.Same(r.pipeline.Get(), c.Args[0])
	}
	if c, ok := l.Find("RSSetViewports"); assert.True(ok) {
		assert.Equal(d3d12.Viewport{Width: 800, Height: 600, MaxDepth: 1}, c.Args[0])
	}
	if c, ok := l.Find("RSSetScissorRects"); assert.True(ok) {
		assert.Equal(d3d12.Rect{Right: 800, Bottom: 600}, c.Args[0])
	}
	if c, ok := l.Find("OMSetRenderTargets"); assert.True(ok) {
		assert.Equal([]any{rtv}, c.Args)
	}
	if c, ok := l.Find("ClearRenderTargetView"); assert.True(ok) {
		assert.Equal([]any{rtv, [4]float32{0.25, 0.5, 0.75, 1}}, c.Args)
	}
	if c, ok := l.Find("IASetPrimitiveTopology"); assert.True(ok) {
		assert.Equal(d3d12.PrimitiveTopologyTriangleList, c.Args[0])
	}
	if c, ok := l.Find("IASetVertexBuffers"); assert.True(ok) {
		assert.Equal([]any{uint32(0), r.vertexBuffer.View()}, c.Args)
	}
	if c, ok := l.Find("DrawInstanced"); assert.True(ok) {
		assert.Equal([]any{uint32(3), uint32(1), uint32(0), uint32(0)}, c.Args)
	}

	last := l.Commands[len(l.Commands)-1]
	assert.Equal(d3d12.TransitionBarrier(backBuffer, d3d12.ResourceStateRenderTarget, d3d12.ResourceStatePresent), last.Args[0])
	assert.Equal(d3d12.ResourceStatePresent, backBuffer.(*fake.Resource).State)

	require.NoError(t, f.Submit())
	assert.Equal([]uint32{1}, r.swapChain.Get().(*fake.SwapChain).Presents)
}

func TestFrame_AlternatesBackBuffers(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()
	f := r.frame(true)

	rtvs := map[uint32]d3d12.CPUDescriptorHandle{}
	for i := 0; i < 6; i++ {
		require.NoError(t, f.Render(1280, 720))
		want := uint32(i % 2)
		assert.Equal(want, f.BackBufferIndex(), "frame %d", i)

		c, ok := r.list.Get().(*fake.CommandList).Find("OMSetRenderTargets")
		require.True(t, ok)
		rtvs[want] = c.Args[0].(d3d12.CPUDescriptorHandle)
	}
	assert.Len(rtvs, 2)
	assert.NotEqual(rtvs[0], rtvs[1])
	assert.Equal(6, r.allocator.Get().(*fake.CommandAllocator).Resets)
	assert.Empty(r.list.Get().(*fake.CommandList).Errors)
}

func TestFrame_SignalsBeforePresent(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()
	f := r.frame(true)

	api.ResetTrace()
	require.NoError(t, f.Render(1280, 720))
	want := append([]string(nil), frameTrace[:len(frameTrace)-1]...)
	want = append(want, "Signal", "Present")
	assert.Equal(want, api.Trace())
	assert.Equal(uint64(1), r.fence.LastSignaled())

	// The GPU already caught up, so the next frame does not wait.
	api.ResetTrace()
	require.NoError(t, f.Render(1280, 720))
	assert.Equal("CommandAllocator.Reset", api.Trace()[0])
	assert.NoError(f.Flush())
}

func TestFrame_WaitsBeforeAllocatorReset(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	api.DeferFences = true
	r := newRenderer(t, api)
	defer r.destroy()
	f := r.frame(true)

	require.NoError(t, f.Render(1280, 720))
	assert.Zero(r.fence.CompletedValue())

	api.ResetTrace()
	require.NoError(t, f.Render(1280, 720))
	trace := api.Trace()
	require.NotEmpty(t, trace)
	assert.Equal("Wait", trace[0])
	assert.Equal("CommandAllocator.Reset", trace[1])
	assert.Equal(uint64(1), r.fence.CompletedValue())

	api.ResetTrace()
	assert.NoError(f.Flush())
	assert.Equal([]string{"Wait"}, api.Trace())
	assert.Equal(uint64(2), r.fence.CompletedValue())
}

func TestFrame_WithoutFenceNeverWaits(t *testing.T) {
	api := fake.New()
	api.DeferFences = true
	r := newRenderer(t, api)
	defer r.destroy()
	f := r.frame(false)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.Render(1280, 720))
	}
	assert.NotContains(t, api.Trace(), "Wait")
	assert.NotContains(t, api.Trace(), "Signal")
	assert.NoError(t, f.Flush())
}

func TestFrame_PresentResults(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	api.DeferFences = true
	r := newRenderer(t, api)
	defer r.destroy()
	f := r.frame(true)

	api.PresentResults = []error{d3d12.ErrOccluded}
	assert.NoError(f.Render(1280, 720))

	api.PresentResults = []error{d3d12.HResultError{Code: d3d12.DXGIErrorDeviceRemoved}}
	err := f.Render(1280, 720)
	assert.True(errors.Is(err, ErrDeviceLost), "%v", err)
	assert.Contains(err.Error(), "submit frame")

	// The executed work was fenced even though Present failed.
	assert.Equal(uint64(2), r.fence.LastSignaled())
	assert.Equal(uint64(1), r.fence.CompletedValue())
	api.ResetTrace()
	assert.NoError(f.Flush())
	assert.Equal([]string{"Wait"}, api.Trace())
	assert.Equal(uint64(2), r.fence.CompletedValue())
}

func TestFrame_RecordSubmitPairing(t *testing.T) {
	assert := assert.New(t)

	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()
	f := r.frame(false)

	assert.Error(f.Submit(), "nothing recorded")
	require.NoError(t, f.Record(1280, 720))
	assert.Error(f.Record(1280, 720), "previous frame pending")
	assert.NoError(f.Submit())
	assert.Error(f.Submit())
}

func TestFrame_AllocatorResetFailure(t *testing.T) {
	api := fake.New()
	r := newRenderer(t, api)
	defer r.destroy()
	f := r.frame(false)

	api.FailOn("CommandAllocator.Reset", d3d12.HResultError{Code: d3d12.DXGIErrorDeviceHung})
	api.ResetTrace()
	err := f.Render(1280, 720)
	assert.True(t, errors.Is(err, ErrDeviceLost))
	assert.Empty(t, api.Trace())
}

func TestFrameStats_Tick(t *testing.T) {
	assert := assert.New(t)

	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	defer SetLogger(nil)

	var clock time.Duration
	stats := newFrameStats(time.Second, func() time.Duration { return clock })

	for i := 0; i < 59; i++ {
		clock += 16 * time.Millisecond
		assert.False(stats.Tick())
	}
	clock = time.Second
	assert.True(stats.Tick())
	assert.Contains(logs.String(), "frame stats")
	assert.Contains(logs.String(), "frames=60")

	assert.Equal(uint64(60), stats.Frames())
	assert.Equal(time.Second/60, stats.Average())

	clock += 500 * time.Millisecond
	assert.False(stats.Tick())
}

func TestFrameStats_NoIntervalNeverLogs(t *testing.T) {
	var clock time.Duration
	stats := newFrameStats(0, func() time.Duration { return clock })
	assert.Zero(t, stats.Average())
	for i := 0; i < 10; i++ {
		clock += time.Hour
		assert.False(t, stats.Tick())
	}
	assert.Equal(t, uint64(10), stats.Frames())
}

func TestLogger_DefaultDiscards(t *testing.T) {
	SetLogger(nil)
	assert.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))

	var logs bytes.Buffer
	l := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(l)
	defer SetLogger(nil)
	assert.Same(t, l, Logger())

	api := fake.New()
	var dxgi DXGI
	require.NoError(t, dxgi.Create(api, false))
	defer dxgi.Destroy()
	require.NoError(t, dxgi.SetDisplayAdapter())
	assert.Contains(t, logs.String(), `msg="display adapter selected"`)
	assert.Contains(t, logs.String(), `name="Fake Hardware GPU"`)
}
