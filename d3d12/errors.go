package d3d12

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type HResult uint32

const (
	StatusOK               HResult = 0
	StatusFalse            HResult = 1
	ErrorNoInterface       HResult = 0x80004002
	ErrorFail              HResult = 0x80004005
	ErrorInvalidArg        HResult = 0x80070057
	ErrorOutOfMemory       HResult = 0x8007000e
	DXGIStatusOccluded     HResult = 0x087a0001
	DXGIErrorNotFound      HResult = 0x887a0002
	DXGIErrorDeviceRemoved HResult = 0x887a0005
	DXGIErrorDeviceHung    HResult = 0x887a0006
	DXGIErrorDeviceReset   HResult = 0x887a0007
	D3DDDIErrDeviceRemoved HResult = 0x88760870
)

// Failed reports whether hr is an error code rather than a status code.
func (hr HResult) Failed() bool {
	return int32(hr) < 0
}

func (hr HResult) String() string {
	switch hr {
	case StatusOK:
		return "S_OK"
	case StatusFalse:
		return "S_FALSE"
	case ErrorNoInterface:
		return "E_NOINTERFACE"
	case ErrorFail:
		return "E_FAIL"
	case ErrorInvalidArg:
		return "E_INVALIDARG"
	case ErrorOutOfMemory:
		return "E_OUTOFMEMORY"
	case DXGIStatusOccluded:
		return "DXGI_STATUS_OCCLUDED"
	case DXGIErrorNotFound:
		return "DXGI_ERROR_NOT_FOUND"
	case DXGIErrorDeviceRemoved:
		return "DXGI_ERROR_DEVICE_REMOVED"
	case DXGIErrorDeviceHung:
		return "DXGI_ERROR_DEVICE_HUNG"
	case DXGIErrorDeviceReset:
		return "DXGI_ERROR_DEVICE_RESET"
	case D3DDDIErrDeviceRemoved:
		return "D3DDDIERR_DEVICEREMOVED"
	}
	return fmt.Sprintf("HRESULT(%#08x)", uint32(hr))
}

// HResultError is a non-zero HRESULT returned by a native call.
type HResultError struct {
	Code HResult
}

func (e HResultError) Error() string {
	return "d3d12: " + e.Code.String()
}

var (
	ErrNotFound    error = HResultError{Code: DXGIErrorNotFound}
	ErrOccluded    error = HResultError{Code: DXGIStatusOccluded}
	ErrUnsupported error = errors.New("d3d12: Direct3D 12 is not available on this platform")
	ErrNotMappable error = errors.New("d3d12: resource is not CPU mappable")
)

// Code extracts the HRESULT carried by err, if any.
func Code(err error) (HResult, bool) {
	var hr HResultError
	if errors.As(err, &hr) {
		return hr.Code, true
	}
	return 0, false
}

// IsDeviceLost reports whether err means the device was removed, hung or reset.
func IsDeviceLost(err error) bool {
	code, ok := Code(err)
	if !ok {
		return false
	}
	switch code {
	case DXGIErrorDeviceRemoved, DXGIErrorDeviceHung, DXGIErrorDeviceReset, D3DDDIErrDeviceRemoved:
		return true
	}
	return false
}

// CompileError carries the compiler's diagnostic text.
type CompileError struct {
	Code    HResult
	Message string
}

func (e *CompileError) Error() string {
	if e.Message == "" {
		return "D3DCompile: " + e.Code.String()
	}
	return "D3DCompile: " + e.Code.String() + ": " + e.Message
}
