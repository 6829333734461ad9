package dx12

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dx12bootstrap/examples/d3d12"
)

// Vertex is the layout InputLayout describes: 12 bytes of position then 16
// bytes of RGBA color.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

// VertexSize is the stride of Vertex in a vertex buffer.
const VertexSize = 28

// Triangle returns the three vertices of the demo triangle in clip space, each
// corner a primary color.
func Triangle() []Vertex {
	return []Vertex{
		{Position: mgl32.Vec3{0.0, 0.5, 0.0}, Color: mgl32.Vec4{1, 0, 0, 1}},
		{Position: mgl32.Vec3{0.5, -0.5, 0.0}, Color: mgl32.Vec4{0, 1, 0, 1}},
		{Position: mgl32.Vec3{-0.5, -0.5, 0.0}, Color: mgl32.Vec4{0, 0, 1, 1}},
	}
}

// VertexBuffer is an upload-heap buffer written once at creation and read by
// the input assembler every frame.
type VertexBuffer struct {
	resource    d3d12.Resource
	view        d3d12.VertexBufferView
	vertexCount uint32
}

// Create uploads vertexData, any fixed-size value or slice encoding/binary can
// write, as vertexCount vertices of strideBytes each.
func (v *VertexBuffer) Create(device *Device, vertexData any, vertexCount, strideBytes uint32) error {
	v.Destroy()

	data, err := encodeVertices(vertexData, vertexCount, strideBytes)
	if err != nil {
		return errors.Wrap(err, "create vertex buffer")
	}
	size := uint64(len(data))

	resource, err := device.Get().CreateCommittedResource(
		d3d12.HeapProperties{
			Type:             d3d12.HeapTypeUpload,
			CreationNodeMask: 1,
			VisibleNodeMask:  1,
		},
		d3d12.HeapFlagNone,
		d3d12.BufferDesc(size),
		d3d12.ResourceStateGenericRead,
	)
	if err != nil {
		return errors.Wrap(err, "create vertex buffer")
	}

	// The CPU never reads the buffer back.
	mapped, err := resource.Map(0, &d3d12.Range{})
	if err != nil {
		resource.Release()
		return errors.Wrap(err, "map vertex buffer")
	}
	copy(mapped, data)
	resource.Unmap(0, nil)

	v.resource = resource
	v.vertexCount = vertexCount
	v.view = d3d12.VertexBufferView{
		BufferLocation: resource.GPUVirtualAddress(),
		SizeInBytes:    uint32(size),
		StrideInBytes:  strideBytes,
	}
	Logger().Debug("vertex buffer created", "vertices", vertexCount, "stride", strideBytes, "bytes", size)
	return nil
}

func encodeVertices(vertexData any, vertexCount, strideBytes uint32) ([]byte, error) {
	if vertexData == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil vertex data")
	}
	if vertexCount == 0 || strideBytes == 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d vertices of %d bytes", vertexCount, strideBytes)
	}
	want := uint64(vertexCount) * uint64(strideBytes)
	if want > math.MaxUint32 {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d bytes exceeds a vertex buffer view", want)
	}
	if raw, ok := vertexData.([]byte); ok {
		if uint64(len(raw)) != want {
			return nil, errors.Wrapf(ErrInvalidArgument, "%d bytes of data for %d vertices of %d bytes", len(raw), vertexCount, strideBytes)
		}
		return raw, nil
	}
	n := binary.Size(vertexData)
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "vertex data of type %T has no fixed size", vertexData)
	}
	if uint64(n) != want {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d bytes of data for %d vertices of %d bytes", n, vertexCount, strideBytes)
	}
	buf := bytes.NewBuffer(make([]byte, 0, n))
	if err := binary.Write(buf, binary.LittleEndian, vertexData); err != nil {
		return nil, errors.Wrap(err, "encode vertex data")
	}
	return buf.Bytes(), nil
}

// View describes the whole buffer to IASetVertexBuffers.
func (v *VertexBuffer) View() d3d12.VertexBufferView {
	mustBeCreated(v.resource != nil, "vertex buffer")
	return v.view
}

func (v *VertexBuffer) VertexCount() uint32 {
	mustBeCreated(v.resource != nil, "vertex buffer")
	return v.vertexCount
}

func (v *VertexBuffer) Resource() d3d12.Resource {
	mustBeCreated(v.resource != nil, "vertex buffer")
	return v.resource
}

func (v *VertexBuffer) Destroy() {
	if v.resource != nil {
		v.resource.Release()
		v.resource = nil
	}
	v.view = d3d12.VertexBufferView{}
	v.vertexCount = 0
}
