package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

type DescriptorHeap struct {
	heap          d3d12.DescriptorHeap
	desc          d3d12.DescriptorHeapDesc
	incrementSize uint32
}

func (h *DescriptorHeap) Create(device *Device, typ d3d12.DescriptorHeapType, numDescriptors uint32, shaderVisible bool) error {
	h.Destroy()

	if numDescriptors == 0 {
		return errors.Wrap(ErrInvalidArgument, "create descriptor heap: zero descriptors")
	}
	desc := d3d12.DescriptorHeapDesc{
		Type:           typ,
		NumDescriptors: numDescriptors,
		Flags:          d3d12.DescriptorHeapFlagNone,
	}
	if shaderVisible {
		desc.Flags = d3d12.DescriptorHeapFlagShaderVisible
	}
	heap, err := device.Get().CreateDescriptorHeap(desc)
	if err != nil {
		return errors.Wrapf(err, "create %s descriptor heap", typ)
	}
	h.heap = heap
	h.desc = desc
	h.incrementSize = device.Get().DescriptorHandleIncrementSize(typ)
	Logger().Debug("descriptor heap created",
		"type", typ,
		"descriptors", numDescriptors,
		"increment", h.incrementSize,
	)
	return nil
}

func (h *DescriptorHeap) Get() d3d12.DescriptorHeap {
	mustBeCreated(h.heap != nil, "descriptor heap")
	return h.heap
}

func (h *DescriptorHeap) Type() d3d12.DescriptorHeapType {
	mustBeCreated(h.heap != nil, "descriptor heap")
	return h.desc.Type
}

func (h *DescriptorHeap) NumDescriptors() uint32 {
	mustBeCreated(h.heap != nil, "descriptor heap")
	return h.desc.NumDescriptors
}

// IncrementSize is the device's stride between descriptors of this heap's type.
func (h *DescriptorHeap) IncrementSize() uint32 {
	mustBeCreated(h.heap != nil, "descriptor heap")
	return h.incrementSize
}

// Handle returns the CPU handle of descriptor index.
func (h *DescriptorHeap) Handle(index uint32) (d3d12.CPUDescriptorHandle, error) {
	mustBeCreated(h.heap != nil, "descriptor heap")
	if index >= h.desc.NumDescriptors {
		return d3d12.CPUDescriptorHandle{}, errors.Wrapf(ErrIndexOutOfRange, "descriptor %d of %d", index, h.desc.NumDescriptors)
	}
	return h.heap.CPUDescriptorHandleForHeapStart().Offset(int(index), h.incrementSize), nil
}

func (h *DescriptorHeap) Destroy() {
	if h.heap != nil {
		h.heap.Release()
		h.heap = nil
	}
	h.desc = d3d12.DescriptorHeapDesc{}
	h.incrementSize = 0
}
