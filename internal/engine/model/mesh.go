package model

import (
	gomath "math"
)

// Box returns a unit cube centered on the origin (extent 1 on each axis)
// with flat per-face normals.
func Box() *Mesh {
	faces := [6]struct {
		normal, u, v [3]float32
	}{
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	m := &Mesh{Bounds: emptyBounds()}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range corners {
			var p [3]float32
			for i := 0; i < 3; i++ {
				p[i] = 0.5 * (f.normal[i] + c[0]*f.u[i] + c[1]*f.v[i])
			}
			m.add(Vertex{
				Position: p,
				Normal:   f.normal,
				TexCoord: [2]float32{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Sphere returns a unit-radius UV sphere.
func Sphere(rings, segments int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	m := &Mesh{Bounds: emptyBounds()}
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		sinT, cosT := sincos(float64(v) * gomath.Pi)
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			sinP, cosP := sincos(float64(u) * 2 * gomath.Pi)
			n := [3]float32{sinT * sinP, cosT, sinT * cosP}
			m.add(Vertex{Position: n, Normal: n, TexCoord: [2]float32{u, v}})
		}
	}

	stride := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}

// Cylinder returns a capped cylinder of radius 1 and height 1, centered on
// the origin along Y.
func Cylinder(segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Bounds: emptyBounds()}

	// Side wall
	for s := 0; s <= segments; s++ {
		u := float32(s) / float32(segments)
		sin, cos := sincos(float64(u) * 2 * gomath.Pi)
		n := [3]float32{sin, 0, cos}
		m.add(Vertex{Position: [3]float32{sin, 0.5, cos}, Normal: n, TexCoord: [2]float32{u, 0}})
		m.add(Vertex{Position: [3]float32{sin, -0.5, cos}, Normal: n, TexCoord: [2]float32{u, 1}})
	}
	for s := 0; s < segments; s++ {
		top := uint32(2 * s)
		m.Indices = append(m.Indices, top, top+1, top+2, top+2, top+1, top+3)
	}

	// Caps
	for _, y := range [2]float32{0.5, -0.5} {
		n := [3]float32{0, 1, 0}
		if y < 0 {
			n[1] = -1
		}
		center := uint32(len(m.Vertices))
		m.add(Vertex{Position: [3]float32{0, y, 0}, Normal: n, TexCoord: [2]float32{0.5, 0.5}})
		for s := 0; s <= segments; s++ {
			sin, cos := sincos(float64(s) / float64(segments) * 2 * gomath.Pi)
			m.add(Vertex{
				Position: [3]float32{sin, y, cos},
				Normal:   n,
				TexCoord: [2]float32{0.5 + sin/2, 0.5 + cos/2},
			})
		}
		for s := uint32(0); s < uint32(segments); s++ {
			a, b := center+1+s, center+2+s
			if y > 0 {
				m.Indices = append(m.Indices, center, a, b)
			} else {
				m.Indices = append(m.Indices, center, b, a)
			}
		}
	}
	return m
}

// Plane returns a unit square in the XZ plane facing +Y.
func Plane() *Mesh {
	m := &Mesh{Bounds: emptyBounds()}
	up := [3]float32{0, 1, 0}
	for _, c := range [4][2]float32{{-0.5, 0.5}, {0.5, 0.5}, {0.5, -0.5}, {-0.5, -0.5}} {
		m.add(Vertex{Position: [3]float32{c[0], 0, c[1]}, Normal: up, TexCoord: [2]float32{c[0] + 0.5, c[1] + 0.5}})
	}
	m.Indices = []uint32{0, 1, 2, 0, 2, 3}
	return m
}

func (m *Mesh) add(v Vertex) {
	m.Vertices = append(m.Vertices, v)
	m.Bounds.extend(v.Position)
}

// FaceNormal returns the normalized normal of triangle i, following the
// counter-clockwise winding.
func (m *Mesh) FaceNormal(i int) [3]float32 {
	a := m.Vertices[m.Indices[3*i]].Position
	b := m.Vertices[m.Indices[3*i+1]].Position
	c := m.Vertices[m.Indices[3*i+2]].Position
	e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	return Normalize(Cross(e1, e2))
}
