//go:build windows

package d3d12

import (
	"runtime"
	"strings"
	"unsafe"

	"github.com/cockroachdb/errors"
)

type rootSignatureDesc struct {
	NumParameters     uint32
	pParameters       uintptr
	NumStaticSamplers uint32
	pStaticSamplers   uintptr
	Flags             RootSignatureFlags
}

func (nativeAPI) SerializeRootSignature(desc RootSignatureDesc, version RootSignatureVersion) ([]byte, error) {
	native := rootSignatureDesc{Flags: desc.Flags}
	var blob, errBlob *iD3DBlob
	r, _, _ := procD3D12SerializeRootSignature.Call(
		uintptr(unsafe.Pointer(&native)),
		uintptr(version),
		uintptr(unsafe.Pointer(&blob)),
		uintptr(unsafe.Pointer(&errBlob)),
	)
	var msg string
	if errBlob != nil {
		msg = blobMessage(errBlob)
		errBlob.release()
	}
	if err := hresult(r); err != nil {
		if msg != "" {
			return nil, errors.Wrapf(err, "D3D12SerializeRootSignature: %s", msg)
		}
		return nil, errors.Wrap(err, "D3D12SerializeRootSignature")
	}
	defer blob.release()
	return blob.bytes(), nil
}

func (nativeAPI) Compile(source []byte, sourceName, entryPoint, target string, flags CompileFlags) ([]byte, error) {
	if len(source) == 0 {
		return nil, errors.New("D3DCompile: empty source")
	}
	var code, errBlob *iD3DBlob
	name0 := cString(sourceName)
	entry0 := cString(entryPoint)
	target0 := cString(target)
	r, _, _ := procD3DCompile.Call(
		uintptr(unsafe.Pointer(&source[0])),
		uintptr(len(source)),
		uintptr(unsafe.Pointer(&name0[0])),
		0, // pDefines
		0, // pInclude
		uintptr(unsafe.Pointer(&entry0[0])),
		uintptr(unsafe.Pointer(&target0[0])),
		uintptr(flags),
		0, // Flags2
		uintptr(unsafe.Pointer(&code)),
		uintptr(unsafe.Pointer(&errBlob)),
	)
	runtime.KeepAlive(source)
	runtime.KeepAlive(name0)
	runtime.KeepAlive(entry0)
	runtime.KeepAlive(target0)
	var msg string
	if errBlob != nil {
		msg = blobMessage(errBlob)
		errBlob.release()
	}
	if hr := HResult(uint32(r)); hr.Failed() {
		return nil, errors.WithStack(&CompileError{Code: hr, Message: msg})
	}
	defer code.release()
	return code.bytes(), nil
}

func blobMessage(b *iD3DBlob) string {
	return strings.TrimRight(string(b.bytes()), "\x00\r\n ")
}
