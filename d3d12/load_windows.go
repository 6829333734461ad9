//go:build windows

package d3d12

import (
	"runtime"
	"syscall"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

var (
	d3d12DLL       = windows.NewLazySystemDLL("d3d12.dll")
	dxgiDLL        = windows.NewLazySystemDLL("dxgi.dll")
	d3dcompilerDLL = windows.NewLazySystemDLL("d3dcompiler_47.dll")

	procD3D12CreateDevice           = d3d12DLL.NewProc("D3D12CreateDevice")
	procD3D12GetDebugInterface      = d3d12DLL.NewProc("D3D12GetDebugInterface")
	procD3D12SerializeRootSignature = d3d12DLL.NewProc("D3D12SerializeRootSignature")
	procCreateDXGIFactory2          = dxgiDLL.NewProc("CreateDXGIFactory2")
	procD3DCompile                  = d3dcompilerDLL.NewProc("D3DCompile")
)

const is64bit = uint64(^uintptr(0)) == ^uint64(0)

type nativeAPI struct{}

// Load resolves the system DLLs. Struct layouts and 64-bit arguments are only
// handled for 64-bit processes.
func Load() (API, error) {
	if !is64bit {
		return nil, errors.Wrap(ErrUnsupported, "32-bit process")
	}
	for _, p := range []*windows.LazyProc{
		procD3D12CreateDevice,
		procD3D12GetDebugInterface,
		procD3D12SerializeRootSignature,
		procCreateDXGIFactory2,
		procD3DCompile,
	} {
		if err := p.Find(); err != nil {
			return nil, errors.Wrapf(ErrUnsupported, "%v", err)
		}
	}
	return nativeAPI{}, nil
}

func (nativeAPI) CreateFactory(flags FactoryFlags) (Factory, error) {
	var f *iDXGIFactory4
	r, _, _ := procCreateDXGIFactory2.Call(
		uintptr(flags),
		uintptr(unsafe.Pointer(&IIDDXGIFactory4)),
		uintptr(unsafe.Pointer(&f)),
	)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "CreateDXGIFactory2")
	}
	return f, nil
}

func adapterPointer(adapter Adapter) uintptr {
	if a, ok := adapter.(*iDXGIAdapter1); ok && a != nil {
		return uintptr(unsafe.Pointer(a))
	}
	return 0
}

func (nativeAPI) ProbeDevice(adapter Adapter, level FeatureLevel) error {
	r, _, _ := procD3D12CreateDevice.Call(
		adapterPointer(adapter),
		uintptr(level),
		uintptr(unsafe.Pointer(&IIDD3D12Device)),
		0,
	)
	// A nil output pointer makes a successful probe return S_FALSE.
	if hr := HResult(uint32(r)); !hr.Failed() {
		return nil
	}
	return errors.Wrap(hresult(r), "D3D12CreateDevice")
}

func (nativeAPI) CreateDevice(adapter Adapter, level FeatureLevel) (Device, error) {
	var d *iD3D12Device
	r, _, _ := procD3D12CreateDevice.Call(
		adapterPointer(adapter),
		uintptr(level),
		uintptr(unsafe.Pointer(&IIDD3D12Device)),
		uintptr(unsafe.Pointer(&d)),
	)
	runtime.KeepAlive(adapter)
	if err := hresult(r); err != nil {
		return nil, errors.Wrap(err, "D3D12CreateDevice")
	}
	return d, nil
}

type iD3D12Debug struct {
	vtbl *struct {
		iUnknownVtbl
		EnableDebugLayer uintptr
	}
}

func (nativeAPI) EnableDebugLayer() error {
	var d *iD3D12Debug
	r, _, _ := procD3D12GetDebugInterface.Call(
		uintptr(unsafe.Pointer(&IIDD3D12Debug)),
		uintptr(unsafe.Pointer(&d)),
	)
	if err := hresult(r); err != nil {
		return errors.Wrap(err, "D3D12GetDebugInterface")
	}
	_, _, _ = syscall.SyscallN(d.vtbl.EnableDebugLayer, uintptr(unsafe.Pointer(d)))
	comRelease(unsafe.Pointer(d))
	return nil
}

type iD3D12Debug1 struct {
	vtbl *struct {
		iUnknownVtbl
		EnableDebugLayer                            uintptr
		SetEnableGPUBasedValidation                 uintptr
		SetEnableSynchronizedCommandQueueValidation uintptr
	}
}

func (nativeAPI) EnableGPUBasedValidation() error {
	var d *iD3D12Debug
	r, _, _ := procD3D12GetDebugInterface.Call(
		uintptr(unsafe.Pointer(&IIDD3D12Debug)),
		uintptr(unsafe.Pointer(&d)),
	)
	if err := hresult(r); err != nil {
		return errors.Wrap(err, "D3D12GetDebugInterface")
	}
	defer comRelease(unsafe.Pointer(d))

	p, err := comQueryInterface(unsafe.Pointer(d), &IIDD3D12Debug1)
	if err != nil {
		return errors.Wrap(err, "query ID3D12Debug1")
	}
	d1 := (*iD3D12Debug1)(p)
	_, _, _ = syscall.SyscallN(d1.vtbl.SetEnableGPUBasedValidation, uintptr(unsafe.Pointer(d1)), 1)
	comRelease(p)
	return nil
}

type event struct {
	handle windows.Handle
}

func (nativeAPI) CreateEvent() (Event, error) {
	h, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return nil, errors.Wrap(err, "CreateEvent")
	}
	return &event{handle: h}, nil
}

func (e *event) Wait() error {
	ev, err := windows.WaitForSingleObject(e.handle, windows.INFINITE)
	if err != nil {
		return errors.Wrap(err, "WaitForSingleObject")
	}
	if ev != windows.WAIT_OBJECT_0 {
		return errors.Newf("WaitForSingleObject: unexpected result %#x", ev)
	}
	return nil
}

func (e *event) Close() error {
	if e.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(e.handle)
	e.handle = 0
	return err
}
