//go:build windows

package d3d12

import (
	"runtime"
	"syscall"
	"unsafe"

	"github.com/cockroachdb/errors"
)

type iD3D12CommandQueue struct {
	vtbl *struct {
		iD3D12DeviceChildVtbl

		UpdateTileMappings    uintptr
		CopyTileMappings      uintptr
		ExecuteCommandLists   uintptr
		SetMarker             uintptr
		BeginEvent            uintptr
		EndEvent              uintptr
		Signal                uintptr
		Wait                  uintptr
		GetTimestampFrequency uintptr
		GetClockCalibration   uintptr
		GetDesc               uintptr
	}
}

func (q *iD3D12CommandQueue) Release() {
	comRelease(unsafe.Pointer(q))
}

func (q *iD3D12CommandQueue) SetName(name string) error {
	w, err := wideString(name)
	if err != nil {
		return errors.WithStack(err)
	}
	r, _, _ := syscall.SyscallN(q.vtbl.SetName,
		uintptr(unsafe.Pointer(q)),
		uintptr(unsafe.Pointer(w)),
	)
	runtime.KeepAlive(w)
	return errors.Wrap(hresult(r), "ID3D12Object::SetName")
}

func (q *iD3D12CommandQueue) ExecuteCommandLists(lists ...GraphicsCommandList) {
	if len(lists) == 0 {
		return
	}
	ptrs := make([]*iD3D12GraphicsCommandList, 0, len(lists))
	for _, l := range lists {
		if n, ok := l.(*iD3D12GraphicsCommandList); ok && n != nil {
			ptrs = append(ptrs, n)
		}
	}
	if len(ptrs) == 0 {
		return
	}
	_, _, _ = syscall.SyscallN(q.vtbl.ExecuteCommandLists,
		uintptr(unsafe.Pointer(q)),
		uintptr(len(ptrs)),
		uintptr(unsafe.Pointer(&ptrs[0])),
	)
	runtime.KeepAlive(ptrs)
}

func (q *iD3D12CommandQueue) Signal(fence Fence, value uint64) error {
	f, ok := fence.(*iD3D12Fence)
	if !ok || f == nil {
		return errors.New("ID3D12CommandQueue::Signal: fence is not native")
	}
	r, _, _ := syscall.SyscallN(q.vtbl.Signal,
		uintptr(unsafe.Pointer(q)),
		uintptr(unsafe.Pointer(f)),
		uintptr(value),
	)
	return errors.Wrap(hresult(r), "ID3D12CommandQueue::Signal")
}

type iD3D12CommandAllocator struct {
	vtbl *struct {
		iD3D12DeviceChildVtbl

		Reset uintptr
	}
}

func (a *iD3D12CommandAllocator) Release() {
	comRelease(unsafe.Pointer(a))
}

func (a *iD3D12CommandAllocator) Reset() error {
	r, _, _ := syscall.SyscallN(a.vtbl.Reset, uintptr(unsafe.Pointer(a)))
	return errors.Wrap(hresult(r), "ID3D12CommandAllocator::Reset")
}

type iD3D12GraphicsCommandList struct {
	vtbl *struct {
		iD3D12DeviceChildVtbl

		// ID3D12CommandList
		GetType uintptr

		// ID3D12GraphicsCommandList
		Close                              uintptr
		Reset                              uintptr
		ClearState                         uintptr
		DrawInstanced                      uintptr
		DrawIndexedInstanced               uintptr
		Dispatch                           uintptr
		CopyBufferRegion                   uintptr
		CopyTextureRegion                  uintptr
		CopyResource                       uintptr
		CopyTiles                          uintptr
		ResolveSubresource                 uintptr
		IASetPrimitiveTopology             uintptr
		RSSetViewports                     uintptr
		RSSetScissorRects                  uintptr
		OMSetBlendFactor                   uintptr
		OMSetStencilRef                    uintptr
		SetPipelineState                   uintptr
		ResourceBarrier                    uintptr
		ExecuteBundle                      uintptr
		SetDescriptorHeaps                 uintptr
		SetComputeRootSignature            uintptr
		SetGraphicsRootSignature           uintptr
		SetComputeRootDescriptorTable      uintptr
		SetGraphicsRootDescriptorTable     uintptr
		SetComputeRoot32BitConstant        uintptr
		SetGraphicsRoot32BitConstant       uintptr
		SetComputeRoot32BitConstants       uintptr
		SetGraphicsRoot32BitConstants      uintptr
		SetComputeRootConstantBufferView   uintptr
		SetGraphicsRootConstantBufferView  uintptr
		SetComputeRootShaderResourceView   uintptr
		SetGraphicsRootShaderResourceView  uintptr
		SetComputeRootUnorderedAccessView  uintptr
		SetGraphicsRootUnorderedAccessView uintptr
		IASetIndexBuffer                   uintptr
		IASetVertexBuffers                 uintptr
		SOSetTargets                       uintptr
		OMSetRenderTargets                 uintptr
		ClearDepthStencilView              uintptr
		ClearRenderTargetView              uintptr
	}
}

func (l *iD3D12GraphicsCommandList) Release() {
	comRelease(unsafe.Pointer(l))
}

func (l *iD3D12GraphicsCommandList) Close() error {
	r, _, _ := syscall.SyscallN(l.vtbl.Close, uintptr(unsafe.Pointer(l)))
	return errors.Wrap(hresult(r), "ID3D12GraphicsCommandList::Close")
}

func (l *iD3D12GraphicsCommandList) Reset(allocator CommandAllocator, initial PipelineState) error {
	a, ok := allocator.(*iD3D12CommandAllocator)
	if !ok || a == nil {
		return errors.New("ID3D12GraphicsCommandList::Reset: allocator is not native")
	}
	r, _, _ := syscall.SyscallN(l.vtbl.Reset,
		uintptr(unsafe.Pointer(l)),
		uintptr(unsafe.Pointer(a)),
		pipelineStatePointer(initial),
	)
	return errors.Wrap(hresult(r), "ID3D12GraphicsCommandList::Reset")
}

type resourceBarrier struct {
	Type        ResourceBarrierType
	Flags       ResourceBarrierFlags
	pResource   uintptr
	Subresource uint32
	StateBefore ResourceStates
	StateAfter  ResourceStates
}

func (l *iD3D12GraphicsCommandList) ResourceBarrier(barriers ...ResourceBarrier) {
	if len(barriers) == 0 {
		return
	}
	native := make([]resourceBarrier, len(barriers))
	for i, b := range barriers {
		native[i] = resourceBarrier{
			Type:        b.Type,
			Flags:       b.Flags,
			pResource:   resourcePointer(b.Transition.Resource),
			Subresource: b.Transition.Subresource,
			StateBefore: b.Transition.StateBefore,
			StateAfter:  b.Transition.StateAfter,
		}
	}
	_, _, _ = syscall.SyscallN(l.vtbl.ResourceBarrier,
		uintptr(unsafe.Pointer(l)),
		uintptr(len(native)),
		uintptr(unsafe.Pointer(&native[0])),
	)
	runtime.KeepAlive(native)
	runtime.KeepAlive(barriers)
}

func (l *iD3D12GraphicsCommandList) SetGraphicsRootSignature(rootSignature RootSignature) {
	var p uintptr
	if rs, ok := rootSignature.(*iD3D12RootSignature); ok {
		p = uintptr(unsafe.Pointer(rs))
	}
	_, _, _ = syscall.SyscallN(l.vtbl.SetGraphicsRootSignature, uintptr(unsafe.Pointer(l)), p)
}

func (l *iD3D12GraphicsCommandList) SetPipelineState(pipelineState PipelineState) {
	_, _, _ = syscall.SyscallN(l.vtbl.SetPipelineState,
		uintptr(unsafe.Pointer(l)),
		pipelineStatePointer(pipelineState),
	)
}

func (l *iD3D12GraphicsCommandList) RSSetViewports(viewports ...Viewport) {
	if len(viewports) == 0 {
		return
	}
	_, _, _ = syscall.SyscallN(l.vtbl.RSSetViewports,
		uintptr(unsafe.Pointer(l)),
		uintptr(len(viewports)),
		uintptr(unsafe.Pointer(&viewports[0])),
	)
	runtime.KeepAlive(viewports)
}

func (l *iD3D12GraphicsCommandList) RSSetScissorRects(rects ...Rect) {
	if len(rects) == 0 {
		return
	}
	_, _, _ = syscall.SyscallN(l.vtbl.RSSetScissorRects,
		uintptr(unsafe.Pointer(l)),
		uintptr(len(rects)),
		uintptr(unsafe.Pointer(&rects[0])),
	)
	runtime.KeepAlive(rects)
}

func (l *iD3D12GraphicsCommandList) OMSetRenderTargets(rtvs []CPUDescriptorHandle, dsv *CPUDescriptorHandle) {
	var prtv uintptr
	if len(rtvs) > 0 {
		prtv = uintptr(unsafe.Pointer(&rtvs[0]))
	}
	_, _, _ = syscall.SyscallN(l.vtbl.OMSetRenderTargets,
		uintptr(unsafe.Pointer(l)),
		uintptr(len(rtvs)),
		prtv,
		uintptr(False),
		uintptr(unsafe.Pointer(dsv)),
	)
	runtime.KeepAlive(rtvs)
	runtime.KeepAlive(dsv)
}

func (l *iD3D12GraphicsCommandList) ClearRenderTargetView(rtv CPUDescriptorHandle, color [4]float32, rects ...Rect) {
	var prects uintptr
	if len(rects) > 0 {
		prects = uintptr(unsafe.Pointer(&rects[0]))
	}
	_, _, _ = syscall.SyscallN(l.vtbl.ClearRenderTargetView,
		uintptr(unsafe.Pointer(l)),
		rtv.Ptr,
		uintptr(unsafe.Pointer(&color[0])),
		uintptr(len(rects)),
		prects,
	)
	runtime.KeepAlive(rects)
}

func (l *iD3D12GraphicsCommandList) IASetPrimitiveTopology(topology PrimitiveTopology) {
	_, _, _ = syscall.SyscallN(l.vtbl.IASetPrimitiveTopology,
		uintptr(unsafe.Pointer(l)),
		uintptr(topology),
	)
}

func (l *iD3D12GraphicsCommandList) IASetVertexBuffers(startSlot uint32, views ...VertexBufferView) {
	var pviews uintptr
	if len(views) > 0 {
		pviews = uintptr(unsafe.Pointer(&views[0]))
	}
	_, _, _ = syscall.SyscallN(l.vtbl.IASetVertexBuffers,
		uintptr(unsafe.Pointer(l)),
		uintptr(startSlot),
		uintptr(len(views)),
		pviews,
	)
	runtime.KeepAlive(views)
}

func (l *iD3D12GraphicsCommandList) DrawInstanced(vertexCountPerInstance, instanceCount, startVertexLocation, startInstanceLocation uint32) {
	_, _, _ = syscall.SyscallN(l.vtbl.DrawInstanced,
		uintptr(unsafe.Pointer(l)),
		uintptr(vertexCountPerInstance),
		uintptr(instanceCount),
		uintptr(startVertexLocation),
		uintptr(startInstanceLocation),
	)
}
