//go:build windows

package d3d12

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

type iUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

// iUnknown is the common head of every COM object: a pointer to its vtable.
type iUnknown struct {
	vtbl *iUnknownVtbl
}

func comRelease(obj unsafe.Pointer) {
	if obj == nil {
		return
	}
	u := (*iUnknown)(obj)
	_, _, _ = syscall.SyscallN(u.vtbl.Release, uintptr(obj))
}

func comQueryInterface(obj unsafe.Pointer, iid *GUID) (unsafe.Pointer, error) {
	var out unsafe.Pointer
	u := (*iUnknown)(obj)
	r, _, _ := syscall.SyscallN(u.vtbl.QueryInterface,
		uintptr(obj),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&out)),
	)
	if err := hresult(r); err != nil {
		return nil, err
	}
	return out, nil
}

// hresult turns a raw HRESULT into nil or an HResultError. Status codes other
// than S_OK are reported too; callers that accept them check with Code.
func hresult(r uintptr) error {
	hr := HResult(uint32(r))
	if hr == StatusOK {
		return nil
	}
	return HResultError{Code: hr}
}

type iD3DBlob struct {
	vtbl *struct {
		iUnknownVtbl
		GetBufferPointer uintptr
		GetBufferSize    uintptr
	}
}

// bytes copies the blob's contents into Go memory.
func (b *iD3DBlob) bytes() []byte {
	ptr, _, _ := syscall.SyscallN(b.vtbl.GetBufferPointer, uintptr(unsafe.Pointer(b)))
	size, _, _ := syscall.SyscallN(b.vtbl.GetBufferSize, uintptr(unsafe.Pointer(b)))
	if ptr == 0 || size == 0 {
		return nil
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size))
	return out
}

func (b *iD3DBlob) release() {
	if b != nil {
		comRelease(unsafe.Pointer(b))
	}
}

func cString(s string) []byte {
	return append([]byte(s), 0)
}

func wideString(s string) (*uint16, error) {
	return windows.UTF16PtrFromString(s)
}
