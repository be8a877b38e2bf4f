package spatial

import "github.com/go-gl/mathgl/mgl64"

// LabLayout positions the decomposition lab: a time plane the scan head
// sweeps across, and a row of fixed spectral stations. The time plane is
// its own frame, offset from the waveform and with its own length.
type LabLayout struct {
	Origin         mgl64.Vec3 // centre of the time plane
	Length         float64
	StationOrigin  mgl64.Vec3 // centre of the station row
	StationSpacing float64
	Stations       int
}

// DefaultLabLayout returns the lab arrangement for the given station count.
func DefaultLabLayout(stations int) LabLayout {
	return LabLayout{
		Origin:         mgl64.Vec3{0, 0, -24},
		Length:         80,
		StationOrigin:  mgl64.Vec3{0, 0, 16},
		StationSpacing: 1.5,
		Stations:       stations,
	}
}

// ScanPosition returns the scan head position for progress.
func (l LabLayout) ScanPosition(progress float64) mgl64.Vec3 {
	progress = clamp01(progress)
	return l.Origin.Add(mgl64.Vec3{XFor(progress, l.Length), 0, 0})
}

// ProgressForScan maps a world point on the time plane back to progress.
func (l LabLayout) ProgressForScan(p mgl64.Vec3) float64 {
	local := p.Sub(l.Origin)
	return ProgressAlong(local.X(), l.Length)
}

// StationForScan returns the index of the station the scan head at p
// feeds, or -1 when there are no stations.
func (l LabLayout) StationForScan(p mgl64.Vec3) int {
	if l.Stations <= 0 {
		return -1
	}
	idx := int(l.ProgressForScan(p) * float64(l.Stations))
	if idx >= l.Stations {
		idx = l.Stations - 1
	}
	return idx
}

// StationPosition returns the base of station i, centred on StationOrigin.
func (l LabLayout) StationPosition(i int) mgl64.Vec3 {
	offset := (float64(i) - float64(l.Stations-1)/2) * l.StationSpacing
	return l.StationOrigin.Add(mgl64.Vec3{offset, 0, 0})
}

// Bounds returns the time-plane hit surface extent in world space.
func (l LabLayout) Bounds(height, depth float64) (lo, hi mgl64.Vec3) {
	half := mgl64.Vec3{l.Length / 2, height / 2, depth / 2}
	return l.Origin.Sub(half), l.Origin.Add(half)
}
