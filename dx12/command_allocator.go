package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

type CommandAllocator struct {
	allocator d3d12.CommandAllocator
	typ       d3d12.CommandListType
}

func (a *CommandAllocator) Create(device *Device, typ d3d12.CommandListType) error {
	a.Destroy()

	allocator, err := device.Get().CreateCommandAllocator(typ)
	if err != nil {
		return errors.Wrapf(err, "create %s command allocator", typ)
	}
	a.allocator = allocator
	a.typ = typ
	Logger().Debug("command allocator created", "type", typ)
	return nil
}

// Reset reclaims the memory of every command recorded through the allocator.
// The GPU must have finished with those commands.
func (a *CommandAllocator) Reset() error {
	mustBeCreated(a.allocator != nil, "command allocator")
	return errors.Wrap(deviceLost(a.allocator.Reset()), "reset command allocator")
}

func (a *CommandAllocator) Get() d3d12.CommandAllocator {
	mustBeCreated(a.allocator != nil, "command allocator")
	return a.allocator
}

func (a *CommandAllocator) Type() d3d12.CommandListType {
	mustBeCreated(a.allocator != nil, "command allocator")
	return a.typ
}

func (a *CommandAllocator) Destroy() {
	if a.allocator != nil {
		a.allocator.Release()
		a.allocator = nil
	}
	a.typ = 0
}
