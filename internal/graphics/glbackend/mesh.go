package glbackend

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"shadeview/internal/scene"
)

// VertexStride is the number of floats per vertex: position, normal, uv.
const VertexStride = 8

var ErrEmptyMesh = errors.New("glbackend: mesh has no geometry")

// Mesh is an indexed triangle list in one VAO. Parts carries the local
// bounding sphere of each sub-mesh for culling.
type Mesh struct {
	vao, vbo, ibo uint32
	indexCount    int32
	parts         []scene.BoundingSphere
}

// NewMesh uploads interleaved vertices (VertexStride floats each) and indices.
func NewMesh(vertices []float32, indices []uint32, parts []scene.BoundingSphere) (*Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(vertices)%VertexStride != 0 {
		return nil, fmt.Errorf("glbackend: vertex data length %d is not a multiple of %d", len(vertices), VertexStride)
	}

	m := &Mesh{indexCount: int32(len(indices)), parts: append([]scene.BoundingSphere(nil), parts...)}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ibo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := CheckError("mesh upload"); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

// Parts implements scene.Mesh.
func (m *Mesh) Parts() []scene.BoundingSphere { return m.parts }

// Draw implements scene.Mesh with whatever program is current.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// Release deletes the GL buffers.
func (m *Mesh) Release() {
	gl.DeleteBuffers(1, &m.ibo)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	m.vao, m.vbo, m.ibo = 0, 0, 0
}
