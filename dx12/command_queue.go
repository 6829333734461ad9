package dx12

import (
	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/d3d12"
)

const commandQueueName = "Main Command Queue"

// CommandQueue owns the single direct queue that executes the frame's command
// list and presents.
type CommandQueue struct {
	queue d3d12.CommandQueue
}

func (q *CommandQueue) Create(device *Device) error {
	q.Destroy()

	queue, err := device.Get().CreateCommandQueue(d3d12.CommandQueueDesc{
		Type:     d3d12.CommandListTypeDirect,
		Priority: d3d12.CommandQueuePriorityNormal,
		Flags:    d3d12.CommandQueueFlagNone,
		NodeMask: 0,
	})
	if err != nil {
		return errors.Wrap(err, "create command queue")
	}
	// The name only shows up in debuggers.
	if err := queue.SetName(commandQueueName); err != nil {
		Logger().Debug("command queue name not set", "err", err)
	}
	q.queue = queue
	Logger().Debug("command queue created", "name", commandQueueName)
	return nil
}

func (q *CommandQueue) Get() d3d12.CommandQueue {
	mustBeCreated(q.queue != nil, "command queue")
	return q.queue
}

// Execute submits closed command lists in order.
func (q *CommandQueue) Execute(lists ...*CommandList) {
	mustBeCreated(q.queue != nil, "command queue")
	native := make([]d3d12.GraphicsCommandList, len(lists))
	for i, l := range lists {
		native[i] = l.Get()
	}
	q.queue.ExecuteCommandLists(native...)
}

// Signal asks the queue to set fence to its next value once all submitted work
// completes, and returns that value.
func (q *CommandQueue) Signal(fence *Fence) (uint64, error) {
	return fence.Signal(q)
}

func (q *CommandQueue) Destroy() {
	if q.queue != nil {
		q.queue.Release()
		q.queue = nil
	}
}
