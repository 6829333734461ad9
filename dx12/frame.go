package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

// DefaultClearColor is the dark blue the back buffer is cleared to.
var DefaultClearColor = [4]float32{0.1, 0.1, 0.3, 1.0}

// Frame records and submits the single command list that draws the triangle
// into the current back buffer.
//
// With Fence set, Submit signals it right after executing the list and before
// presenting, so a failed Present still leaves a value for Flush. The next
// Record waits for that value before the allocator is reset, so the allocator
// is never reset while the GPU still reads it. With Fence nil nothing throttles
// the CPU and back-buffer reuse relies on the swap chain's own queueing.
type Frame struct {
	Device        *Device
	Queue         *CommandQueue
	Allocator     *CommandAllocator
	List          *CommandList
	SwapChain     *SwapChain
	RTVHeap       *DescriptorHeap
	RenderTarget  *RenderTarget
	RootSignature *RootSignature
	Pipeline      *PipelineStateObject
	VertexBuffer  *VertexBuffer
	Fence         *Fence

	ClearColor   [4]float32
	SyncInterval uint32

	backBuffer uint32
	inFlight   uint64
	recording  bool
}

// Record resets the allocator and list and records one frame for a target of
// width by height pixels. The list is closed on return.
func (f *Frame) Record(width, height uint32) error {
	if f.recording {
		return errors.New("record frame: previous frame was not submitted")
	}
	if f.Fence != nil && f.inFlight > 0 {
		if err := f.Fence.Wait(f.inFlight); err != nil {
			return errors.Wrap(err, "record frame")
		}
	}

	if err := f.Allocator.Reset(); err != nil {
		return errors.Wrap(err, "record frame")
	}
	if err := f.List.Reset(f.Allocator); err != nil {
		return errors.Wrap(err, "record frame")
	}

	f.backBuffer = f.SwapChain.CurrentBackBufferIndex()
	backBuffer := f.RenderTarget.Get(f.backBuffer)
	cl := f.List.Get()

	cl.ResourceBarrier(d3d12.TransitionBarrier(backBuffer, d3d12.ResourceStatePresent, d3d12.ResourceStateRenderTarget))

	cl.SetGraphicsRootSignature(f.RootSignature.Get())
	cl.SetPipelineState(f.Pipeline.Get())

	cl.RSSetViewports(d3d12.Viewport{
		TopLeftX: 0,
		TopLeftY: 0,
		Width:    float32(width),
		Height:   float32(height),
		MinDepth: 0,
		MaxDepth: 1,
	})
	cl.RSSetScissorRects(d3d12.Rect{Left: 0, Top: 0, Right: int32(width), Bottom: int32(height)})

	rtv := f.RenderTarget.DescriptorHandle(f.Device, f.RTVHeap, f.backBuffer)
	cl.OMSetRenderTargets([]d3d12.CPUDescriptorHandle{rtv}, nil)
	cl.ClearRenderTargetView(rtv, f.ClearColor)

	cl.IASetPrimitiveTopology(d3d12.PrimitiveTopologyTriangleList)
	cl.IASetVertexBuffers(0, f.VertexBuffer.View())
	cl.DrawInstanced(f.VertexBuffer.VertexCount(), 1, 0, 0)

	cl.ResourceBarrier(d3d12.TransitionBarrier(backBuffer, d3d12.ResourceStateRenderTarget, d3d12.ResourceStatePresent))

	if err := f.List.Close(); err != nil {
		return errors.Wrap(err, "record frame")
	}
	f.recording = true
	return nil
}

// Submit executes the recorded list and presents the back buffer.
func (f *Frame) Submit() error {
	if !f.recording {
		return errors.New("submit frame: nothing recorded")
	}
	f.recording = false

	f.Queue.Execute(f.List)
	if f.Fence != nil {
		value, err := f.Fence.Signal(f.Queue)
		if err != nil {
			return errors.Wrap(err, "submit frame")
		}
		f.inFlight = value
	}
	return errors.Wrap(f.SwapChain.Present(f.SyncInterval), "submit frame")
}

// Render records and submits one frame.
func (f *Frame) Render(width, height uint32) error {
	if err := f.Record(width, height); err != nil {
		return err
	}
	return f.Submit()
}

// Flush blocks until the GPU has finished every submitted frame. It is a no-op
// without a fence.
func (f *Frame) Flush() error {
	if f.Fence == nil || f.inFlight == 0 {
		return nil
	}
	return errors.Wrap(f.Fence.Wait(f.inFlight), "flush frames")
}

// BackBufferIndex is the back buffer the last recorded frame drew into.
func (f *Frame) BackBufferIndex() uint32 {
	return f.backBuffer
}
