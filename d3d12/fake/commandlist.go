package fake

import (
	"github.com/dx12bootstrap/examples/d3d12"
)

// Command is one call recorded on a CommandList. Args holds the call's
// arguments as the matching d3d12 value types.
type Command struct {
	Op   string
	Args []any
}

// CommandList records every command between Reset and Close. It enforces the
// open/closed state machine of a real graphics command list.
type CommandList struct {
	object
	Type      d3d12.CommandListType
	Commands  []Command
	Resets    int
	Errors    []string
	open      bool
	allocator *CommandAllocator
}

func (l *CommandList) Open() bool {
	return l.open
}

func (l *CommandList) record(op string, args ...any) {
	if !l.open {
		l.Errors = append(l.Errors, op+" on closed command list")
	}
	l.Commands = append(l.Commands, Command{Op: op, Args: args})
	l.api.log(op)
}

// Ops returns the names of the recorded commands in order.
func (l *CommandList) Ops() []string {
	ops := make([]string, len(l.Commands))
	for i, c := range l.Commands {
		ops[i] = c.Op
	}
	return ops
}

// Find returns the first recorded command named op.
func (l *CommandList) Find(op string) (Command, bool) {
	for _, c := range l.Commands {
		if c.Op == op {
			return c, true
		}
	}
	return Command{}, false
}

func (l *CommandList) Close() error {
	if err := l.api.fail("CommandList.Close"); err != nil {
		return err
	}
	if !l.open {
		return d3d12.HResultError{Code: d3d12.ErrorFail}
	}
	l.open = false
	l.api.log("CommandList.Close")
	return nil
}

func (l *CommandList) Reset(allocator d3d12.CommandAllocator, initial d3d12.PipelineState) error {
	if err := l.api.fail("CommandList.Reset"); err != nil {
		return err
	}
	if l.open {
		return d3d12.HResultError{Code: d3d12.ErrorFail}
	}
	a, ok := allocator.(*CommandAllocator)
	if !ok || a.Released() {
		return d3d12.HResultError{Code: d3d12.ErrorInvalidArg}
	}
	l.open = true
	l.allocator = a
	l.Resets++
	l.Commands = l.Commands[:0]
	l.api.log("CommandList.Reset")
	return nil
}

func (l *CommandList) ResourceBarrier(barriers ...d3d12.ResourceBarrier) {
	args := make([]any, len(barriers))
	for i, b := range barriers {
		args[i] = b
		if r, ok := b.Transition.Resource.(*Resource); ok {
			if r.State != b.Transition.StateBefore {
				l.Errors = append(l.Errors, "barrier before-state does not match resource state")
			}
			r.State = b.Transition.StateAfter
		}
	}
	l.record("ResourceBarrier", args...)
}

func (l *CommandList) SetGraphicsRootSignature(rootSignature d3d12.RootSignature) {
	l.record("SetGraphicsRootSignature", rootSignature)
}

func (l *CommandList) SetPipelineState(pipelineState d3d12.PipelineState) {
	l.record("SetPipelineState", pipelineState)
}

func (l *CommandList) RSSetViewports(viewports ...d3d12.Viewport) {
	args := make([]any, len(viewports))
	for i, v := range viewports {
		args[i] = v
	}
	l.record("RSSetViewports", args...)
}

func (l *CommandList) RSSetScissorRects(rects ...d3d12.Rect) {
	args := make([]any, len(rects))
	for i, r := range rects {
		args[i] = r
	}
	l.record("RSSetScissorRects", args...)
}

func (l *CommandList) OMSetRenderTargets(rtvs []d3d12.CPUDescriptorHandle, dsv *d3d12.CPUDescriptorHandle) {
	args := make([]any, len(rtvs))
	for i, h := range rtvs {
		args[i] = h
	}
	l.record("OMSetRenderTargets", args...)
}

func (l *CommandList) ClearRenderTargetView(rtv d3d12.CPUDescriptorHandle, color [4]float32, rects ...d3d12.Rect) {
	l.record("ClearRenderTargetView", rtv, color)
}

func (l *CommandList) IASetPrimitiveTopology(topology d3d12.PrimitiveTopology) {
	l.record("IASetPrimitiveTopology", topology)
}

func (l *CommandList) IASetVertexBuffers(startSlot uint32, views ...d3d12.VertexBufferView) {
	args := make([]any, 0, len(views)+1)
	args = append(args, startSlot)
	for _, v := range views {
		args = append(args, v)
	}
	l.record("IASetVertexBuffers", args...)
}

func (l *CommandList) DrawInstanced(vertexCountPerInstance, instanceCount, startVertexLocation, startInstanceLocation uint32) {
	l.record("DrawInstanced", vertexCountPerInstance, instanceCount, startVertexLocation, startInstanceLocation)
}
