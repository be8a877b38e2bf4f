// Package settings holds the view configuration shared by every layer and
// notifies dependents about the fields that changed.
package settings

import (
	"github.com/olivier-w/wavescape/internal/scene"
)

const (
	MinBarCount = 16
	MaxBarCount = 128
)

// ViewSettings is the single mutable view configuration.
type ViewSettings struct {
	Mode Mode

	ShowBars     bool // spectrum bars
	ShowScope    bool // time-domain overlay
	ShowMarker   bool // progress marker on the waveform
	LabShowModel bool // waveform model inside the decomposition lab
	SmoothBars   bool

	FFTSize    int
	BarCount   int
	Radius     float64 // ring radius of realtime bars
	Spread     float64
	Projection scene.Projection
}

// Field is a bit set of ViewSettings fields.
type Field uint32

const (
	FieldMode Field = 1 << iota
	FieldShowBars
	FieldShowScope
	FieldShowMarker
	FieldLabShowModel
	FieldSmoothBars
	FieldFFTSize
	FieldBarCount
	FieldRadius
	FieldSpread
	FieldProjection

	FieldToggles = FieldShowBars | FieldShowScope | FieldShowMarker | FieldLabShowModel | FieldSmoothBars
	FieldAll     = FieldMode | FieldToggles | FieldFFTSize | FieldBarCount | FieldRadius | FieldSpread | FieldProjection
)

// Has reports whether any bit of other is set in f.
func (f Field) Has(other Field) bool { return f&other != 0 }

// Diff returns the fields that differ between a and b.
func Diff(a, b ViewSettings) Field {
	var f Field
	if a.Mode != b.Mode {
		f |= FieldMode
	}
	if a.ShowBars != b.ShowBars {
		f |= FieldShowBars
	}
	if a.ShowScope != b.ShowScope {
		f |= FieldShowScope
	}
	if a.ShowMarker != b.ShowMarker {
		f |= FieldShowMarker
	}
	if a.LabShowModel != b.LabShowModel {
		f |= FieldLabShowModel
	}
	if a.SmoothBars != b.SmoothBars {
		f |= FieldSmoothBars
	}
	if a.FFTSize != b.FFTSize {
		f |= FieldFFTSize
	}
	if a.BarCount != b.BarCount {
		f |= FieldBarCount
	}
	if a.Radius != b.Radius {
		f |= FieldRadius
	}
	if a.Spread != b.Spread {
		f |= FieldSpread
	}
	if a.Projection != b.Projection {
		f |= FieldProjection
	}
	return f
}

// Defaults returns the settings used before any configuration is applied.
func Defaults() ViewSettings {
	return ViewSettings{
		Mode:         ModeRealtime,
		ShowBars:     true,
		ShowScope:    true,
		ShowMarker:   true,
		LabShowModel: true,
		SmoothBars:   true,
		FFTSize:      2048,
		BarCount:     64,
		Radius:       18,
		Spread:       1,
		Projection:   scene.Perspective,
	}
}
