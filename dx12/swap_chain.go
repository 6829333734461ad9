package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

const (
	BackBufferCount  = 2
	BackBufferFormat = d3d12.FormatR8G8B8A8UNorm
)

// Window is the native surface a swap chain presents to.
type Window interface {
	HWND() (uintptr, error)
}

type SwapChain struct {
	swapChain d3d12.SwapChain
	desc      d3d12.SwapChainDesc1
}

// Create makes a flip-discard swap chain of BackBufferCount buffers for window.
// Alt+Enter fullscreen switching is disabled since resizing is not handled.
func (s *SwapChain) Create(dxgi *DXGI, window Window, queue *CommandQueue, width, height uint32) error {
	s.Destroy()

	if width == 0 || height == 0 {
		return errors.Wrapf(ErrInvalidArgument, "create swap chain: size %dx%d", width, height)
	}
	hwnd, err := window.HWND()
	if err != nil {
		return errors.Wrap(err, "create swap chain")
	}

	desc := d3d12.SwapChainDesc1{
		Width:       width,
		Height:      height,
		Format:      BackBufferFormat,
		SampleDesc:  d3d12.SampleDesc{Count: 1},
		BufferUsage: d3d12.UsageRenderTargetOutput,
		BufferCount: BackBufferCount,
		Scaling:     d3d12.ScalingStretch,
		SwapEffect:  d3d12.SwapEffectFlipDiscard,
		AlphaMode:   d3d12.AlphaModeUnspecified,
	}
	swapChain, err := dxgi.Factory().CreateSwapChainForHwnd(queue.Get(), hwnd, desc)
	if err != nil {
		return errors.Wrap(err, "create swap chain")
	}
	if actual, err := swapChain.Desc1(); err == nil {
		desc = actual
	}
	if err := dxgi.Factory().MakeWindowAssociation(hwnd, d3d12.WindowAssociationNoAltEnter); err != nil {
		Logger().Warn("alt+enter not disabled", "err", err)
	}

	s.swapChain = swapChain
	s.desc = desc
	Logger().Debug("swap chain created",
		"width", desc.Width,
		"height", desc.Height,
		"buffers", desc.BufferCount,
		"format", desc.Format,
	)
	return nil
}

func (s *SwapChain) Get() d3d12.SwapChain {
	mustBeCreated(s.swapChain != nil, "swap chain")
	return s.swapChain
}

// Desc returns the description the swap chain was created with.
func (s *SwapChain) Desc() d3d12.SwapChainDesc1 {
	mustBeCreated(s.swapChain != nil, "swap chain")
	return s.desc
}

func (s *SwapChain) CurrentBackBufferIndex() uint32 {
	mustBeCreated(s.swapChain != nil, "swap chain")
	return s.swapChain.CurrentBackBufferIndex()
}

// Present queues the current back buffer for display. An occluded window is
// not an error. A removed or reset device is reported as ErrDeviceLost.
func (s *SwapChain) Present(syncInterval uint32) error {
	mustBeCreated(s.swapChain != nil, "swap chain")

	err := s.swapChain.Present(syncInterval, d3d12.PresentFlagNone)
	if err == nil {
		return nil
	}
	if code, ok := d3d12.Code(err); ok && !code.Failed() {
		if code == d3d12.DXGIStatusOccluded {
			Logger().Debug("present: window occluded")
		} else {
			Logger().Warn("present returned status", "status", code)
		}
		return nil
	}
	return errors.Wrap(deviceLost(err), "present")
}

func (s *SwapChain) Destroy() {
	if s.swapChain != nil {
		s.swapChain.Release()
		s.swapChain = nil
	}
	s.desc = d3d12.SwapChainDesc1{}
}
