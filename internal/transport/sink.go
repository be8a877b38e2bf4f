package transport

import (
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Sink consumes rendered PCM. *oto.Player satisfies it.
type Sink interface {
	Play()
	Pause()
	SetVolume(v float64)
	BufferedSize() int
}

// SinkFunc creates a sink pulling from r.
type SinkFunc func(r io.Reader) Sink

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   outputRate,
			ChannelCount: outputChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// OtoSink returns a SinkFunc backed by the shared audio device.
func OtoSink() (SinkFunc, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, err
	}
	return func(r io.Reader) Sink { return ctx.NewPlayer(r) }, nil
}

const clockTick = 20 * time.Millisecond

// clockSink drains its reader at real-time pace without producing sound.
// It keeps the visualization running on machines without an audio device.
type clockSink struct {
	r    io.Reader
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// ClockSink is a SinkFunc for silent playback.
func ClockSink(r io.Reader) Sink {
	return &clockSink{r: r}
}

func (c *clockSink) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(c.stop, c.done)
}

func (c *clockSink) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(clockTick)
	defer ticker.Stop()

	buf := make([]byte, int(clockTick.Seconds()*outputRate)*frameBytes)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, err := io.ReadFull(c.r, buf); err != nil {
				return
			}
		}
	}
}

// Pause stops the pump and waits for it to exit.
func (c *clockSink) Pause() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (c *clockSink) SetVolume(float64) {}
func (c *clockSink) BufferedSize() int { return 0 }
