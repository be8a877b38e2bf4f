package ui

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivier-w/wavescape/internal/scene"
	"github.com/olivier-w/wavescape/internal/spatial"
)

// renderScene projects every visible primitive of g onto a canvas of
// cols×rows cells.
func renderScene(g *scene.Graph, cam scene.Camera, cols, rows int) *canvas {
	c := newCanvas(cols, rows)
	w, h := c.dotSize()
	aspect := float64(w) / float64(h)

	toScreen := cam.Projector(w, h, aspect)
	eye := cam.Eye()
	project := func(m mgl64.Mat4, p mgl64.Vec3) (x, y, depth float64, ok bool) {
		world := m.Mul4x1(p.Vec4(1)).Vec3()
		x, y, ok = toScreen(world)
		return x, y, world.Sub(eye).Len(), ok
	}
	segment := func(m mgl64.Mat4, a, b mgl64.Vec3, col spatial.Color) {
		x0, y0, d0, ok0 := project(m, a)
		x1, y1, d1, ok1 := project(m, b)
		if !ok0 || !ok1 {
			return
		}
		c.line(x0, y0, d0, x1, y1, d1, col)
	}

	g.Each(func(_ scene.Handle, p *scene.Primitive) {
		if !p.Visible {
			return
		}
		m := p.Transform.Matrix()
		switch p.Kind {
		case scene.KindLine:
			for i := 1; i < len(p.Points); i++ {
				segment(m, p.Points[i-1], p.Points[i], p.ColorAt(i))
			}
		case scene.KindPoints:
			for i, pt := range p.Points {
				if x, y, d, ok := project(m, pt); ok {
					c.dot(x, y, d, p.ColorAt(i))
				}
			}
		case scene.KindBox:
			// bars read best as a single upright stroke
			base := mgl64.Vec3{0, p.Min.Y(), 0}
			top := mgl64.Vec3{0, p.Max.Y(), 0}
			segment(m, base, top, p.ColorAt(0))
		case scene.KindSurface:
			// uncoloured surfaces are pick regions only
			if len(p.Colors) == 0 {
				return
			}
			for _, e := range boxEdges(p.Min, p.Max) {
				segment(m, e[0], e[1], p.ColorAt(0))
			}
		}
	})
	return c
}

// boxEdges returns the twelve edges of the box [lo, hi].
func boxEdges(lo, hi mgl64.Vec3) [][2]mgl64.Vec3 {
	corner := func(i int) mgl64.Vec3 {
		v := lo
		if i&1 != 0 {
			v[0] = hi[0]
		}
		if i&2 != 0 {
			v[1] = hi[1]
		}
		if i&4 != 0 {
			v[2] = hi[2]
		}
		return v
	}
	var edges [][2]mgl64.Vec3
	for i := range 8 {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, [2]mgl64.Vec3{corner(i), corner(i | bit)})
			}
		}
	}
	return edges
}
