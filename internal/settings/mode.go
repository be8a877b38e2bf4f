package settings

import (
	"fmt"
	"strings"
)

// Mode is the visualization mode.
type Mode int

const (
	ModeRealtime Mode = iota
	ModeStaticModel
	ModeDecompositionLab

	// ModeCount is the number of modes. Tables indexed by Mode are sized
	// with it so a new mode cannot be added without a handler.
	ModeCount
)

// Next cycles realtime → static model → decomposition lab → realtime.
func (m Mode) Next() Mode {
	return (m + 1) % ModeCount
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= 0 && m < ModeCount
}

func (m Mode) String() string {
	switch m {
	case ModeRealtime:
		return "realtime"
	case ModeStaticModel:
		return "static model"
	case ModeDecompositionLab:
		return "decomposition lab"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts the names printed by String, or their first word.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "realtime", "live":
		return ModeRealtime, nil
	case "static", "static model", "static-model", "model":
		return ModeStaticModel, nil
	case "lab", "decomposition", "decomposition lab", "decomposition-lab":
		return ModeDecompositionLab, nil
	}
	return ModeRealtime, fmt.Errorf("unknown mode %q", s)
}
