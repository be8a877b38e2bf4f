package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/olivier-w/wavescape/internal/spatial"
)

// Graph is an in-memory Scene. Front ends read it back with Each to draw.
type Graph struct {
	nodes map[Handle]*Primitive
	next  Handle
}

// NewGraph returns an empty scene.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[Handle]*Primitive)}
}

// Add stores p and returns its handle. A zero scale becomes unit scale.
func (g *Graph) Add(p Primitive) Handle {
	g.next++
	if p.Transform.Scale == (mgl64.Vec3{}) {
		p.Transform.Scale = mgl64.Vec3{1, 1, 1}
	}
	g.nodes[g.next] = &p
	return g.next
}

// Remove drops h. Unknown handles are ignored.
func (g *Graph) Remove(h Handle) {
	delete(g.nodes, h)
}

// SetTransform places h in the world.
func (g *Graph) SetTransform(h Handle, t Transform) {
	if n, ok := g.nodes[h]; ok {
		n.Transform = t
	}
}

// SetPoints replaces the local-space points of h.
func (g *Graph) SetPoints(h Handle, pts []mgl64.Vec3) {
	if n, ok := g.nodes[h]; ok {
		n.Points = pts
	}
}

// SetColors replaces the colours of h.
func (g *Graph) SetColors(h Handle, colors []spatial.Color) {
	if n, ok := g.nodes[h]; ok {
		n.Colors = colors
	}
}

// SetVisible shows or hides h. Hidden primitives are neither drawn nor picked.
func (g *Graph) SetVisible(h Handle, visible bool) {
	if n, ok := g.nodes[h]; ok {
		n.Visible = visible
	}
}

// Get returns the primitive for h.
func (g *Graph) Get(h Handle) (Primitive, bool) {
	n, ok := g.nodes[h]
	if !ok {
		return Primitive{}, false
	}
	return *n, true
}

// Len returns the number of live primitives.
func (g *Graph) Len() int { return len(g.nodes) }

// Each visits primitives in creation order.
func (g *Graph) Each(fn func(h Handle, p *Primitive)) {
	handles := make([]Handle, 0, len(g.nodes))
	for h := range g.nodes {
		handles = append(handles, h)
	}
	slices.Sort(handles)
	for _, h := range handles {
		fn(h, g.nodes[h])
	}
}

// Pick returns the nearest hit on a visible surface primitive named surface.
func (g *Graph) Pick(ray Ray, surface string) (mgl64.Vec3, bool) {
	var (
		best  mgl64.Vec3
		bestT float64
		hit   bool
	)
	for _, n := range g.nodes {
		if n.Surface != surface || !n.Visible {
			continue
		}
		if n.Kind != KindBox && n.Kind != KindSurface {
			continue
		}
		m := n.Transform.Matrix()
		local := ray.Transform(m.Inv())
		t, ok := local.IntersectBox(n.Min, n.Max)
		if !ok {
			continue
		}
		if !hit || t < bestT {
			best = m.Mul4x1(local.At(t).Vec4(1)).Vec3()
			bestT = t
			hit = true
		}
	}
	return best, hit
}
