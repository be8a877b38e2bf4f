package track

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata holds song information.
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// ReadMetadata reads ID3v2 tags from the file contents, falling back to
// the file name.
func ReadMetadata(name string, data []byte) Metadata {
	if bytes.HasPrefix(data, []byte("ID3")) {
		tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
		if err == nil {
			defer tag.Close()
			m := Metadata{
				Title:  strings.TrimSpace(tag.Title()),
				Artist: strings.TrimSpace(tag.Artist()),
				Album:  strings.TrimSpace(tag.Album()),
			}
			if m.Title != "" {
				return m
			}
		}
	}

	base := filepath.Base(name)
	return Metadata{Title: strings.TrimSuffix(base, filepath.Ext(base))}
}
