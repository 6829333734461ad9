package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

// RootSignature is an empty root signature. The triangle binds no constants,
// descriptors or samplers, only the input assembler layout.
type RootSignature struct {
	rootSignature d3d12.RootSignature
}

func (r *RootSignature) Create(device *Device) error {
	r.Destroy()

	blob, err := device.API().SerializeRootSignature(d3d12.RootSignatureDesc{
		Flags: d3d12.RootSignatureFlagAllowInputAssemblerInputLayout,
	}, d3d12.RootSignatureVersion1_0)
	if err != nil {
		return errors.Wrap(err, "serialize root signature")
	}
	rootSignature, err := device.Get().CreateRootSignature(0, blob)
	if err != nil {
		return errors.Wrap(err, "create root signature")
	}
	r.rootSignature = rootSignature
	Logger().Debug("root signature created", "bytes", len(blob))
	return nil
}

func (r *RootSignature) Get() d3d12.RootSignature {
	mustBeCreated(r.rootSignature != nil, "root signature")
	return r.rootSignature
}

func (r *RootSignature) Destroy() {
	if r.rootSignature != nil {
		r.rootSignature.Release()
		r.rootSignature = nil
	}
}
