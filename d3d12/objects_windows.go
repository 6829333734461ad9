//go:build windows

package d3d12

import (
	"runtime"
	"syscall"
	"unsafe"

	"github.com/cockroachdb/errors"
)

type iD3D12DescriptorHeap struct {
	vtbl *struct {
		iD3D12DeviceChildVtbl

		GetDesc                            uintptr
		GetCPUDescriptorHandleForHeapStart uintptr
		GetGPUDescriptorHandleForHeapStart uintptr
	}
}

func (h *iD3D12DescriptorHeap) Release() {
	comRelease(unsafe.Pointer(h))
}

// Struct returns go through a hidden pointer placed right after this.
func (h *iD3D12DescriptorHeap) Desc() DescriptorHeapDesc {
	var d DescriptorHeapDesc
	_, _, _ = syscall.SyscallN(h.vtbl.GetDesc,
		uintptr(unsafe.Pointer(h)),
		uintptr(unsafe.Pointer(&d)),
	)
	return d
}

func (h *iD3D12DescriptorHeap) CPUDescriptorHandleForHeapStart() CPUDescriptorHandle {
	var handle CPUDescriptorHandle
	_, _, _ = syscall.SyscallN(h.vtbl.GetCPUDescriptorHandleForHeapStart,
		uintptr(unsafe.Pointer(h)),
		uintptr(unsafe.Pointer(&handle)),
	)
	return handle
}

type iD3D12Resource struct {
	vtbl *struct {
		iD3D12DeviceChildVtbl

		Map                  uintptr
		Unmap                uintptr
		GetDesc              uintptr
		GetGPUVirtualAddress uintptr
		WriteToSubresource   uintptr
		ReadFromSubresource  uintptr
		GetHeapDesc          uintptr
	}
}

// resource pairs the COM pointer with the byte size of a CPU-visible buffer.
// size is zero for resources that cannot be mapped.
type resource struct {
	ptr  *iD3D12Resource
	size uint64
}

func (r *resource) Release() {
	if r.ptr != nil {
		comRelease(unsafe.Pointer(r.ptr))
		r.ptr = nil
	}
}

func (r *resource) Map(subresource uint32, readRange *Range) ([]byte, error) {
	if r.size == 0 {
		return nil, ErrNotMappable
	}
	var data uintptr
	ret, _, _ := syscall.SyscallN(r.ptr.vtbl.Map,
		uintptr(unsafe.Pointer(r.ptr)),
		uintptr(subresource),
		uintptr(unsafe.Pointer(readRange)),
		uintptr(unsafe.Pointer(&data)),
	)
	runtime.KeepAlive(readRange)
	if err := hresult(ret); err != nil {
		return nil, errors.Wrap(err, "ID3D12Resource::Map")
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(data)), r.size), nil
}

func (r *resource) Unmap(subresource uint32, writtenRange *Range) {
	_, _, _ = syscall.SyscallN(r.ptr.vtbl.Unmap,
		uintptr(unsafe.Pointer(r.ptr)),
		uintptr(subresource),
		uintptr(unsafe.Pointer(writtenRange)),
	)
	runtime.KeepAlive(writtenRange)
}

func (r *resource) GPUVirtualAddress() uint64 {
	ret, _, _ := syscall.SyscallN(r.ptr.vtbl.GetGPUVirtualAddress, uintptr(unsafe.Pointer(r.ptr)))
	return uint64(ret)
}

func resourcePointer(res Resource) uintptr {
	if r, ok := res.(*resource); ok && r != nil {
		return uintptr(unsafe.Pointer(r.ptr))
	}
	return 0
}

type iD3D12RootSignature struct {
	vtbl *iD3D12DeviceChildVtbl
}

func (r *iD3D12RootSignature) Release() {
	comRelease(unsafe.Pointer(r))
}

type iD3D12PipelineState struct {
	vtbl *struct {
		iD3D12DeviceChildVtbl

		GetCachedBlob uintptr
	}
}

func (p *iD3D12PipelineState) Release() {
	comRelease(unsafe.Pointer(p))
}

func pipelineStatePointer(ps PipelineState) uintptr {
	if p, ok := ps.(*iD3D12PipelineState); ok && p != nil {
		return uintptr(unsafe.Pointer(p))
	}
	return 0
}

type iD3D12Fence struct {
	vtbl *struct {
		iD3D12DeviceChildVtbl

		GetCompletedValue    uintptr
		SetEventOnCompletion uintptr
		Signal               uintptr
	}
}

func (f *iD3D12Fence) Release() {
	comRelease(unsafe.Pointer(f))
}

func (f *iD3D12Fence) CompletedValue() uint64 {
	r, _, _ := syscall.SyscallN(f.vtbl.GetCompletedValue, uintptr(unsafe.Pointer(f)))
	return uint64(r)
}

func (f *iD3D12Fence) SetEventOnCompletion(value uint64, ev Event) error {
	e, ok := ev.(*event)
	if !ok || e == nil {
		return errors.New("ID3D12Fence::SetEventOnCompletion: event is not native")
	}
	r, _, _ := syscall.SyscallN(f.vtbl.SetEventOnCompletion,
		uintptr(unsafe.Pointer(f)),
		uintptr(value),
		uintptr(e.handle),
	)
	return errors.Wrap(hresult(r), "ID3D12Fence::SetEventOnCompletion")
}

var (
	_ API                 = nativeAPI{}
	_ Factory             = (*iDXGIFactory4)(nil)
	_ Adapter             = (*iDXGIAdapter1)(nil)
	_ Device              = (*iD3D12Device)(nil)
	_ CommandQueue        = (*iD3D12CommandQueue)(nil)
	_ CommandAllocator    = (*iD3D12CommandAllocator)(nil)
	_ GraphicsCommandList = (*iD3D12GraphicsCommandList)(nil)
	_ SwapChain           = (*iDXGISwapChain3)(nil)
	_ DescriptorHeap      = (*iD3D12DescriptorHeap)(nil)
	_ Resource            = (*resource)(nil)
	_ RootSignature       = (*iD3D12RootSignature)(nil)
	_ PipelineState       = (*iD3D12PipelineState)(nil)
	_ Fence               = (*iD3D12Fence)(nil)
	_ Event               = (*event)(nil)
)
