package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/robostage/internal/engine/model"
	"github.com/Faultbox/robostage/internal/engine/scene"
)

const vertexStride = 8 * 4 // position, normal, texcoord

// gpuMesh is an uploaded indexed mesh.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

func uploadMesh(m *model.Mesh) *gpuMesh {
	g := &gpuMesh{count: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexStride, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	bindVertexLayout()

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return g
}

// bindVertexLayout describes model.Vertex for the bound VAO and VBO.
func bindVertexLayout() {
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (g *gpuMesh) delete() {
	if g == nil {
		return
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	*g = gpuMesh{}
}

// createParticleVAO shares the box mesh buffers and adds a per-instance
// buffer holding a model matrix (locations 2-5) and a color (location 6).
func (r *Renderer) createParticleVAO() {
	gl.GenVertexArrays(1, &r.particleVAO)
	gl.BindVertexArray(r.particleVAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.particleBox.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.particleBox.ebo)
	bindVertexLayout()

	gl.GenBuffers(1, &r.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	stride := int32(scene.ParticleFloats * 4)
	for col := uint32(0); col < 4; col++ {
		loc := 2 + col
		gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, stride, uintptr(col*4*4))
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}
	gl.VertexAttribPointerWithOffset(6, 3, gl.FLOAT, false, stride, 16*4)
	gl.EnableVertexAttribArray(6)
	gl.VertexAttribDivisor(6, 1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}
