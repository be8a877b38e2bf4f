package track

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies an audio container/codec.
type Format string

const (
	FormatUnknown Format = ""
	FormatMP3     Format = "mp3"
	FormatWAV     Format = "wav"
	FormatAIFF    Format = "aiff"
	FormatOGG     Format = "ogg"
	FormatFLAC    Format = "flac"
)

var extFormats = map[string]Format{
	".mp3":  FormatMP3,
	".wav":  FormatWAV,
	".wave": FormatWAV,
	".aif":  FormatAIFF,
	".aiff": FormatAIFF,
	".ogg":  FormatOGG,
	".oga":  FormatOGG,
	".flac": FormatFLAC,
}

// IsSupportedExt returns true if the extension is a decodable audio format.
func IsSupportedExt(ext string) bool {
	_, ok := extFormats[strings.ToLower(ext)]
	return ok
}

// SupportedExtsList returns a human-readable list of supported formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .aiff, .ogg, .flac"
}

// DetectFormat sniffs the leading bytes first and falls back to the file
// extension of name.
func DetectFormat(name string, data []byte) Format {
	if f := sniff(data); f != FormatUnknown {
		return f
	}
	return extFormats[strings.ToLower(filepath.Ext(name))]
}

func sniff(data []byte) Format {
	switch {
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("FORM")) &&
		(bytes.Equal(data[8:12], []byte("AIFF")) || bytes.Equal(data[8:12], []byte("AIFC"))):
		return FormatAIFF
	case bytes.HasPrefix(data, []byte("OggS")):
		return FormatOGG
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC
	case bytes.HasPrefix(data, []byte("ID3")):
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// MPEG frame sync
		return FormatMP3
	}
	return FormatUnknown
}
