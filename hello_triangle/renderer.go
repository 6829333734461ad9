package main

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/config"
	"github.com/dx12bootstrap/examples/d3d12"
	"github.com/dx12bootstrap/examples/dx12"
)

// renderer is every D3D12 object the triangle needs, created in dependency
// order and destroyed in reverse.
type renderer struct {
	dxgi          dx12.DXGI
	device        dx12.Device
	queue         dx12.CommandQueue
	allocator     dx12.CommandAllocator
	list          dx12.CommandList
	swapChain     dx12.SwapChain
	rtvHeap       dx12.DescriptorHeap
	renderTarget  dx12.RenderTarget
	rootSignature dx12.RootSignature
	shader        dx12.Shader
	pipeline      dx12.PipelineStateObject
	vertexBuffer  dx12.VertexBuffer
	fence         dx12.Fence

	frame dx12.Frame
}

// loadShader reads the HLSL source at path, falling back to fallback when the
// file does not exist.
func loadShader(path string, fallback []byte) ([]byte, string, error) {
	source, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		dx12.Logger().Debug("shader file not found, using embedded source", "path", path)
		return fallback, "embedded/shader.hlsl", nil
	}
	if err != nil {
		return nil, "", errors.Wrap(err, "read shader")
	}
	return source, filepath.Base(path), nil
}

func (r *renderer) create(api d3d12.API, window dx12.Window, cfg config.Config, shaderSource []byte, shaderName string) (err error) {
	defer func() {
		if err != nil {
			r.destroy()
		}
	}()

	if cfg.Debug {
		if err := api.EnableDebugLayer(); err != nil {
			dx12.Logger().Warn("debug layer not enabled", "err", err)
		} else if err := api.EnableGPUBasedValidation(); err != nil {
			dx12.Logger().Debug("GPU-based validation not available", "err", err)
		}
	}

	if err := r.dxgi.Create(api, cfg.Debug); err != nil {
		return err
	}
	if err := r.dxgi.SetDisplayAdapter(); err != nil && !errors.Is(err, dx12.ErrNoAdapter) {
		return err
	}
	if cfg.WARP {
		err = r.device.CreateWARP(&r.dxgi)
	} else {
		err = r.device.Create(&r.dxgi)
	}
	if err != nil {
		return err
	}

	if err := r.queue.Create(&r.device); err != nil {
		return err
	}
	if err := r.allocator.Create(&r.device, d3d12.CommandListTypeDirect); err != nil {
		return err
	}
	if err := r.list.Create(&r.device, &r.allocator); err != nil {
		return err
	}

	if err := r.swapChain.Create(&r.dxgi, window, &r.queue, cfg.Width, cfg.Height); err != nil {
		return err
	}
	if err := r.rtvHeap.Create(&r.device, d3d12.DescriptorHeapTypeRTV, dx12.BackBufferCount, false); err != nil {
		return err
	}
	if err := r.renderTarget.CreateBackBuffer(&r.device, &r.swapChain, &r.rtvHeap); err != nil {
		return err
	}

	if err := r.rootSignature.Create(&r.device); err != nil {
		return err
	}
	if err := r.shader.Create(api, shaderSource, shaderName); err != nil {
		return err
	}
	if err := r.pipeline.Create(&r.device, &r.shader, &r.rootSignature); err != nil {
		return err
	}

	triangle := dx12.Triangle()
	if err := r.vertexBuffer.Create(&r.device, triangle, uint32(len(triangle)), dx12.VertexSize); err != nil {
		return err
	}

	r.frame = dx12.Frame{
		Device:        &r.device,
		Queue:         &r.queue,
		Allocator:     &r.allocator,
		List:          &r.list,
		SwapChain:     &r.swapChain,
		RTVHeap:       &r.rtvHeap,
		RenderTarget:  &r.renderTarget,
		RootSignature: &r.rootSignature,
		Pipeline:      &r.pipeline,
		VertexBuffer:  &r.vertexBuffer,
		ClearColor:    cfg.ClearColor,
		SyncInterval:  cfg.SyncInterval,
	}
	if cfg.FrameSync {
		if err := r.fence.Create(&r.device); err != nil {
			return err
		}
		r.frame.Fence = &r.fence
	}
	return nil
}

func (r *renderer) render(width, height uint32) error {
	return r.frame.Render(width, height)
}

// destroy waits for the GPU when frames are fenced, then releases everything.
func (r *renderer) destroy() {
	if err := r.frame.Flush(); err != nil {
		dx12.Logger().Warn("flush before destroy", "err", err)
	}
	r.frame = dx12.Frame{}

	r.fence.Destroy()
	r.vertexBuffer.Destroy()
	r.pipeline.Destroy()
	r.shader.Destroy()
	r.rootSignature.Destroy()
	r.renderTarget.Destroy()
	r.rtvHeap.Destroy()
	r.swapChain.Destroy()
	r.list.Destroy()
	r.allocator.Destroy()
	r.queue.Destroy()
	r.device.Destroy()
	r.dxgi.Destroy()
}
