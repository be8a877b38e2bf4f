package track

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptyTrack        = errors.New("track has no samples")
)
