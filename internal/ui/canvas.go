package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/wavescape/internal/spatial"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

const (
	dotsX = 2
	dotsY = 4
)

// canvas is a grid of braille cells addressed in dot coordinates. Each
// cell keeps the colour of the nearest dot drawn into it.
type canvas struct {
	cols, rows int
	bits       []uint8
	colors     []spatial.Color
	depth      []float64
}

func newCanvas(cols, rows int) *canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	n := cols * rows
	c := &canvas{
		cols:   cols,
		rows:   rows,
		bits:   make([]uint8, n),
		colors: make([]spatial.Color, n),
		depth:  make([]float64, n),
	}
	for i := range c.depth {
		c.depth[i] = math.Inf(1)
	}
	return c
}

// dotSize returns the canvas size in dots.
func (c *canvas) dotSize() (w, h int) { return c.cols * dotsX, c.rows * dotsY }

func (c *canvas) set(x, y int, depth float64, col spatial.Color) {
	w, h := c.dotSize()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	cell := (y/dotsY)*c.cols + x/dotsX
	c.bits[cell] |= 1 << brailleBits[x%dotsX][y%dotsY]
	if depth <= c.depth[cell] {
		c.depth[cell] = depth
		c.colors[cell] = col
	}
}

// line draws from (x0, y0) to (x1, y1) in dot space, interpolating depth.
func (c *canvas) line(x0, y0, d0, x1, y1, d1 float64, col spatial.Color) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		c.set(int(x0), int(y0), d0, col)
		return
	}
	// cap runaway segments from points far outside the viewport
	w, h := c.dotSize()
	steps = min(steps, 4*(w+h))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(int(x0+(x1-x0)*t), int(y0+(y1-y0)*t), d0+(d1-d0)*t, col)
	}
}

// dot draws a 2x2 blob centred on (x, y).
func (c *canvas) dot(x, y, depth float64, col spatial.Color) {
	for dx := range 2 {
		for dy := range 2 {
			c.set(int(x)+dx, int(y)+dy, depth, col)
		}
	}
}

func colorHex(col spatial.Color) string {
	r, g, b := col.RGB8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// String renders the canvas, grouping runs of equal colour into one style.
func (c *canvas) String() string {
	var out strings.Builder
	for row := range c.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				out.WriteString(run.String())
			} else {
				out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for col := range c.cols {
			i := row*c.cols + col
			hex := ""
			if c.bits[i] != 0 {
				hex = colorHex(c.colors[i])
			}
			if hex != runColor {
				flush()
				runColor = hex
			}
			run.WriteRune(rune(0x2800 + int(c.bits[i])))
		}
		flush()
	}
	return out.String()
}
