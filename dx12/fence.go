package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

// Fence pairs a D3D12 fence with the event used to block on it.
type Fence struct {
	fence d3d12.Fence
	event d3d12.Event
	next  uint64
}

func (f *Fence) Create(device *Device) error {
	f.Destroy()

	fence, err := device.Get().CreateFence(0, d3d12.FenceFlagNone)
	if err != nil {
		return errors.Wrap(err, "create fence")
	}
	event, err := device.API().CreateEvent()
	if err != nil {
		fence.Release()
		return errors.Wrap(err, "create fence event")
	}
	f.fence = fence
	f.event = event
	Logger().Debug("fence created")
	return nil
}

// Signal has queue set the fence to a new, larger value once every command
// submitted before it has finished. It returns that value.
func (f *Fence) Signal(queue *CommandQueue) (uint64, error) {
	mustBeCreated(f.fence != nil, "fence")
	value := f.next + 1
	if err := queue.Get().Signal(f.fence, value); err != nil {
		return 0, errors.Wrap(deviceLost(err), "signal fence")
	}
	f.next = value
	return value, nil
}

// Wait blocks until the fence reaches value. It returns at once if the GPU is
// already there. There is no timeout.
func (f *Fence) Wait(value uint64) error {
	mustBeCreated(f.fence != nil, "fence")
	if f.fence.CompletedValue() >= value {
		return nil
	}
	if err := f.fence.SetEventOnCompletion(value, f.event); err != nil {
		return errors.Wrap(deviceLost(err), "arm fence event")
	}
	return errors.Wrapf(f.event.Wait(), "wait for fence value %d", value)
}

func (f *Fence) CompletedValue() uint64 {
	mustBeCreated(f.fence != nil, "fence")
	return f.fence.CompletedValue()
}

// LastSignaled is the value passed to the most recent successful Signal.
func (f *Fence) LastSignaled() uint64 {
	mustBeCreated(f.fence != nil, "fence")
	return f.next
}

func (f *Fence) Get() d3d12.Fence {
	mustBeCreated(f.fence != nil, "fence")
	return f.fence
}

func (f *Fence) Destroy() {
	if f.event != nil {
		if err := f.event.Close(); err != nil {
			Logger().Warn("close fence event", "err", err)
		}
		f.event = nil
	}
	if f.fence != nil {
		f.fence.Release()
		f.fence = nil
	}
	f.next = 0
}
