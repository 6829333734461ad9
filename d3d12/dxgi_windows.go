//go:build windows

package d3d12

import (
	"syscall"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

var IIDDXGIAdapter1 = MustParseGUID("29038f61-3839-4626-91fd-086879011a05")

type iDXGIObjectVtbl struct {
	iUnknownVtbl

	SetPrivateData          uintptr
	SetPrivateDataInterface uintptr
	GetPrivateData          uintptr
	GetParent               uintptr
}

type iDXGIFactory4 struct {
	vtbl *struct {
		iDXGIObjectVtbl

		// IDXGIFactory
		EnumAdapters          uintptr
		MakeWindowAssociation uintptr
		GetWindowAssociation  uintptr
		CreateSwapChain       uintptr
		CreateSoftwareAdapter uintptr

		// IDXGIFactory1
		EnumAdapters1 uintptr
		IsCurrent     uintptr

		// IDXGIFactory2
		IsWindowedStereoEnabled       uintptr
		CreateSwapChainForHwnd        uintptr
		CreateSwapChainForCoreWindow  uintptr
		GetSharedResourceAdapterLuid  uintptr
		RegisterStereoStatusWindow    uintptr
		RegisterStereoStatusEvent     uintptr
		UnregisterStereoStatus        uintptr
		RegisterOcclusionStatusWindow uintptr
		RegisterOcclusionStatusEvent  uintptr
		UnregisterOcclusionStatus     uintptr
		CreateSwapChainForComposition uintptr

		// IDXGIFactory3
		GetCreationFlags uintptr

		// IDXGIFactory4
		EnumAdapterByLuid uintptr
		EnumWarpAdapter   uintptr
	}
}

func (f *iDXGIFactory4) Release() {
	comRelease(unsafe.Pointer(f))
}

func (f *iDXGIFactory4) EnumAdapters1(index uint32) (Adapter, error) {
	var a *iDXGIAdapter1
	r, _, _ := syscall.SyscallN(f.vtbl.EnumAdapters1,
		uintptr(unsafe.Pointer(f)),
		uintptr(index),
		uintptr(unsafe.Pointer(&a)),
	)
	if err := hresult(r); err != nil {
		return nil, err
	}
	return a, nil
}

func (f *iDXGIFactory4) EnumWarpAdapter() (Adapter, error) {
	var a *iDXGIAdapter1
	r, _, _ := syscall.SyscallN(f.vtbl.EnumWarpAdapter,
		uintptr(unsafe.Pointer(f)),
		uintptr(unsafe.Pointer(&IIDDXGIAdapter1)),
		uintptr(unsafe.Pointer(&a)),
	)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "IDXGIFactory4::EnumWarpAdapter")
	}
	return a, nil
}

func (f *iDXGIFactory4) CreateSwapChainForHwnd(queue CommandQueue, hwnd uintptr, desc SwapChainDesc1) (SwapChain, error) {
	q, ok := queue.(*iD3D12CommandQueue)
	if !ok || q == nil {
		return nil, errors.New("CreateSwapChainForHwnd: queue is not a native command queue")
	}
	var sc1 unsafe.Pointer
	r, _, _ := syscall.SyscallN(f.vtbl.CreateSwapChainForHwnd,
		uintptr(unsafe.Pointer(f)),
		uintptr(unsafe.Pointer(q)),
		hwnd,
		uintptr(unsafe.Pointer(&desc)),
		0, // pFullscreenDesc
		0, // pRestrictToOutput
		uintptr(unsafe.Pointer(&sc1)),
	)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "IDXGIFactory2::CreateSwapChainForHwnd")
	}
	defer comRelease(sc1)
	sc3, err := comQueryInterface(sc1, &IIDDXGISwapChain3)
	if err != nil {
		return nil, errors.Wrap(err, "QueryInterface IDXGISwapChain3")
	}
	return (*iDXGISwapChain3)(sc3), nil
}

func (f *iDXGIFactory4) MakeWindowAssociation(hwnd uintptr, flags WindowAssociationFlags) error {
	r, _, _ := syscall.SyscallN(f.vtbl.MakeWindowAssociation,
		uintptr(unsafe.Pointer(f)),
		hwnd,
		uintptr(flags),
	)
	return errors.Wrap(hresult(r), "IDXGIFactory::MakeWindowAssociation")
}

type iDXGIAdapter1 struct {
	vtbl *struct {
		iDXGIObjectVtbl

		EnumOutputs           uintptr
		GetDesc               uintptr
		CheckInterfaceSupport uintptr
		GetDesc1              uintptr
	}
}

type dxgiAdapterDesc1 struct {
	Description           [128]uint16
	VendorID              uint32
	DeviceID              uint32
	SubSysID              uint32
	Revision              uint32
	DedicatedVideoMemory  uintptr
	DedicatedSystemMemory uintptr
	SharedSystemMemory    uintptr
	AdapterLuid           windows.LUID
	Flags                 uint32
}

func (a *iDXGIAdapter1) Release() {
	comRelease(unsafe.Pointer(a))
}

func (a *iDXGIAdapter1) Desc1() (AdapterDesc, error) {
	var d dxgiAdapterDesc1
	r, _, _ := syscall.SyscallN(a.vtbl.GetDesc1,
		uintptr(unsafe.Pointer(a)),
		uintptr(unsafe.Pointer(&d)),
	)
	if err := hresult(r); err != nil {
		return AdapterDesc{}, errors.Wrap(err, "IDXGIAdapter1::GetDesc1")
	}
	return AdapterDesc{
		Description:           windows.UTF16ToString(d.Description[:]),
		VendorID:              d.VendorID,
		DeviceID:              d.DeviceID,
		SubSysID:              d.SubSysID,
		Revision:              d.Revision,
		DedicatedVideoMemory:  uint64(d.DedicatedVideoMemory),
		DedicatedSystemMemory: uint64(d.DedicatedSystemMemory),
		SharedSystemMemory:    uint64(d.SharedSystemMemory),
		Flags:                 AdapterFlags(d.Flags),
	}, nil
}

type iDXGISwapChain3 struct {
	vtbl *struct {
		iDXGIObjectVtbl

		// IDXGIDeviceSubObject
		GetDevice uintptr

		// IDXGISwapChain
		Present             uintptr
		GetBuffer           uintptr
		SetFullscreenState  uintptr
		GetFullscreenState  uintptr
		GetDesc             uintptr
		ResizeBuffers       uintptr
		ResizeTarget        uintptr
		GetContainingOutput uintptr
		GetFrameStatistics  uintptr
		GetLastPresentCount uintptr

		// IDXGISwapChain1
		GetDesc1                 uintptr
		GetFullscreenDesc        uintptr
		GetHwnd                  uintptr
		GetCoreWindow            uintptr
		Present1                 uintptr
		IsTemporaryMonoSupported uintptr
		GetRestrictToOutput      uintptr
		SetBackgroundColor       uintptr
		GetBackgroundColor       uintptr
		SetRotation              uintptr
		GetRotation              uintptr

		// IDXGISwapChain2
		SetSourceSize                 uintptr
		GetSourceSize                 uintptr
		SetMaximumFrameLatency        uintptr
		GetMaximumFrameLatency        uintptr
		GetFrameLatencyWaitableObject uintptr
		SetMatrixTransform            uintptr
		GetMatrixTransform            uintptr

		// IDXGISwapChain3
		GetCurrentBackBufferIndex uintptr
		CheckColorSpaceSupport    uintptr
		SetColorSpace1            uintptr
		ResizeBuffers1            uintptr
	}
}

func (s *iDXGISwapChain3) Release() {
	comRelease(unsafe.Pointer(s))
}

func (s *iDXGISwapChain3) GetBuffer(index uint32) (Resource, error) {
	var res *iD3D12Resource
	r, _, _ := syscall.SyscallN(s.vtbl.GetBuffer,
		uintptr(unsafe.Pointer(s)),
		uintptr(index),
		uintptr(unsafe.Pointer(&IIDD3D12Resource)),
		uintptr(unsafe.Pointer(&res)),
	)
	if err := hresult(r); err != nil {
		return nil, errors.Wrapf(err, "IDXGISwapChain::GetBuffer(%d)", index)
	}
	return &resource{ptr: res}, nil
}

func (s *iDXGISwapChain3) Present(syncInterval uint32, flags PresentFlags) error {
	r, _, _ := syscall.SyscallN(s.vtbl.Present,
		uintptr(unsafe.Pointer(s)),
		uintptr(syncInterval),
		uintptr(flags),
	)
	return hresult(r)
}

func (s *iDXGISwapChain3) CurrentBackBufferIndex() uint32 {
	r, _, _ := syscall.SyscallN(s.vtbl.GetCurrentBackBufferIndex, uintptr(unsafe.Pointer(s)))
	return uint32(r)
}

func (s *iDXGISwapChain3) Desc1() (SwapChainDesc1, error) {
	var d SwapChainDesc1
	r, _, _ := syscall.SyscallN(s.vtbl.GetDesc1,
		uintptr(unsafe.Pointer(s)),
		uintptr(unsafe.Pointer(&d)),
	)
	if err := hresult(r); err != nil {
		return SwapChainDesc1{}, errors.Wrap(err, "IDXGISwapChain1::GetDesc1")
	}
	return d, nil
}
