package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

type CommandList struct {
	list d3d12.GraphicsCommandList
}

// Create makes a graphics command list of the allocator's type. The list is
// closed right away so every frame can start with Reset.
func (l *CommandList) Create(device *Device, allocator *CommandAllocator) error {
	l.Destroy()

	list, err := device.Get().CreateCommandList(0, allocator.Type(), allocator.Get(), nil)
	if err != nil {
		return errors.Wrap(err, "create command list")
	}
	if err := list.Close(); err != nil {
		list.Release()
		return errors.Wrap(err, "close new command list")
	}
	l.list = list
	Logger().Debug("command list created", "type", allocator.Type())
	return nil
}

// Reset reopens the list for recording on allocator with no initial pipeline
// state.
func (l *CommandList) Reset(allocator *CommandAllocator) error {
	mustBeCreated(l.list != nil, "command list")
	return errors.Wrap(l.list.Reset(allocator.Get(), nil), "reset command list")
}

func (l *CommandList) Close() error {
	mustBeCreated(l.list != nil, "command list")
	return errors.Wrap(l.list.Close(), "close command list")
}

func (l *CommandList) Get() d3d12.GraphicsCommandList {
	mustBeCreated(l.list != nil, "command list")
	return l.list
}

func (l *CommandList) Destroy() {
	if l.list != nil {
		l.list.Release()
		l.list = nil
	}
}
