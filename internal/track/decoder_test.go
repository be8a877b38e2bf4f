package track

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeTestWAV(t *testing.T, sampleRate, channels, frames int) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	data := make([]int, frames*channels)
	for i := range frames {
		v := int(math.Round(16000 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate))))
		for c := range channels {
			data[i*channels+c] = v
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	f.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return raw
}

func TestRegistryDecodesWAV(t *testing.T) {
	raw := writeTestWAV(t, 8000, 2, 4000)

	tr, err := DefaultRegistry().Decode(context.Background(), "tone.wav", raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if tr.SampleRate != 8000 {
		t.Fatalf("expected sample rate 8000, got %d", tr.SampleRate)
	}
	if tr.ChannelCount() != 2 {
		t.Fatalf("expected 2 channels, got %d", tr.ChannelCount())
	}
	if tr.SampleCount() != 4000 {
		t.Fatalf("expected 4000 frames, got %d", tr.SampleCount())
	}
	want := float32(16000*math.Sin(2*math.Pi*440*5/8000.0)) / 32768
	if got := tr.Channels[0][5]; math.Abs(float64(got-want)) > 1e-4 {
		t.Fatalf("expected sample %v, got %v", want, got)
	}
	if tr.Title() != "tone" {
		t.Fatalf("expected title from file name, got %q", tr.Title())
	}
}

func TestRegistryRejectsUnknownFormat(t *testing.T) {
	_, err := DefaultRegistry().Decode(context.Background(), "notes.txt", []byte("hello"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRegistryStopsOnCancelledContext(t *testing.T) {
	raw := writeTestWAV(t, 8000, 1, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := DefaultRegistry().Decode(ctx, "tone.wav", raw); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRegistryReportsCorruptData(t *testing.T) {
	raw := []byte("RIFF\x10\x00\x00\x00WAVEjunk")
	if _, err := DefaultRegistry().Decode(context.Background(), "broken.wav", raw); err == nil {
		t.Fatal("expected error for corrupt WAV")
	}
}
