package spatial

import "math"

// Color is a linear RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerpColor(a, b Color, t float64) Color {
	t = clamp01(t)
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

var (
	heatDeep  = Color{R: 16.0 / 255, G: 25.0 / 255, B: 70.0 / 255}
	heatBlue  = Color{R: 0, G: 174.0 / 255, B: 1}
	heatGreen = Color{R: 20.0 / 255, G: 1, B: 161.0 / 255}
	heatAmber = Color{R: 1, G: 230.0 / 255, B: 92.0 / 255}
	heatRed   = Color{R: 1, G: 80.0 / 255, B: 60.0 / 255}
)

// HeatColor maps a weight in [0, 1] onto a deep-blue to red ramp.
func HeatColor(t float64) Color {
	t = clamp01(t)
	switch {
	case t < 0.25:
		return lerpColor(heatDeep, heatBlue, t/0.25)
	case t < 0.5:
		return lerpColor(heatBlue, heatGreen, (t-0.25)/0.25)
	case t < 0.75:
		return lerpColor(heatGreen, heatAmber, (t-0.5)/0.25)
	default:
		return lerpColor(heatAmber, heatRed, (t-0.75)/0.25)
	}
}

// HSV converts hue, saturation and value (all in [0, 1]) to RGB.
func HSV(h, s, v float64) Color {
	h = math.Mod(h, 1)
	if h < 0 {
		h += 1
	}
	s = clamp01(s)
	v = clamp01(v)

	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	switch i % 6 {
	case 0:
		return Color{v, t, p}
	case 1:
		return Color{q, v, p}
	case 2:
		return Color{p, v, t}
	case 3:
		return Color{p, q, v}
	case 4:
		return Color{t, p, v}
	default:
		return Color{v, p, q}
	}
}

// RGB8 returns the colour as 8-bit components.
func (c Color) RGB8() (r, g, b uint8) {
	return uint8(clamp01(c.R) * 255), uint8(clamp01(c.G) * 255), uint8(clamp01(c.B) * 255)
}
