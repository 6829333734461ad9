package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

// RenderTarget owns the swap chain's back buffers and the RTVs written for
// them. Buffer i always uses RTV slot i of the heap it was created with.
type RenderTarget struct {
	buffers []d3d12.Resource
}

func (rt *RenderTarget) CreateBackBuffer(device *Device, swapChain *SwapChain, heap *DescriptorHeap) error {
	rt.Destroy()

	if heap.Type() != d3d12.DescriptorHeapTypeRTV {
		return errors.Wrapf(ErrWrongHeapType, "create back buffers: %s heap", heap.Type())
	}
	count := swapChain.Desc().BufferCount
	if heap.NumDescriptors() < count {
		return errors.Wrapf(ErrInvalidArgument, "create back buffers: heap holds %d descriptors, need %d", heap.NumDescriptors(), count)
	}

	buffers := make([]d3d12.Resource, 0, count)
	for i := uint32(0); i < count; i++ {
		buffer, err := swapChain.Get().GetBuffer(i)
		if err != nil {
			for _, b := range buffers {
				b.Release()
			}
			return errors.Wrapf(err, "get back buffer %d", i)
		}
		handle, err := heap.Handle(i)
		if err != nil {
			buffer.Release()
			for _, b := range buffers {
				b.Release()
			}
			return err
		}
		device.Get().CreateRenderTargetView(buffer, handle)
		buffers = append(buffers, buffer)
	}
	rt.buffers = buffers
	Logger().Debug("back buffers created", "count", count)
	return nil
}

// Get returns back buffer index.
func (rt *RenderTarget) Get(index uint32) d3d12.Resource {
	mustBeCreated(len(rt.buffers) > 0, "render target")
	if index >= uint32(len(rt.buffers)) {
		panic(errors.Wrapf(ErrIndexOutOfRange, "back buffer %d of %d", index, len(rt.buffers)))
	}
	return rt.buffers[index]
}

// DescriptorHandle returns the RTV of back buffer index: the heap start plus
// index times the device's RTV increment.
func (rt *RenderTarget) DescriptorHandle(device *Device, heap *DescriptorHeap, index uint32) d3d12.CPUDescriptorHandle {
	mustBeCreated(len(rt.buffers) > 0, "render target")
	if index >= uint32(len(rt.buffers)) {
		panic(errors.Wrapf(ErrIndexOutOfRange, "back buffer %d of %d", index, len(rt.buffers)))
	}
	if heap.Type() != d3d12.DescriptorHeapTypeRTV {
		panic(errors.Wrapf(ErrWrongHeapType, "render target view in %s heap", heap.Type()))
	}
	increment := device.Get().DescriptorHandleIncrementSize(d3d12.DescriptorHeapTypeRTV)
	return heap.Get().CPUDescriptorHandleForHeapStart().Offset(int(index), increment)
}

func (rt *RenderTarget) Count() int {
	return len(rt.buffers)
}

func (rt *RenderTarget) Destroy() {
	for _, b := range rt.buffers {
		b.Release()
	}
	rt.buffers = nil
}
