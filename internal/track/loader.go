package track

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the outcome of one Load call.
type Result struct {
	ID    uuid.UUID
	Name  string
	Track *Track
	Err   error
}

// Loader decodes files in the background. Only the most recent Load is
// current; results of superseded loads are dropped.
type Loader struct {
	registry *Registry
	log      *zap.Logger
	results  chan Result

	mu      sync.Mutex
	current uuid.UUID
	cancel  context.CancelFunc
	pending bool
}

// NewLoader creates a Loader using reg for decoding.
func NewLoader(reg *Registry, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		registry: reg,
		log:      log,
		results:  make(chan Result, 8),
	}
}

// Load starts decoding data in the background and cancels any load still
// in flight. It returns the task id of the new load.
func (l *Loader) Load(name string, data []byte) uuid.UUID {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.log.Debug("superseding pending decode", zap.Stringer("task", l.current))
	}
	l.current = id
	l.cancel = cancel
	l.pending = true
	l.mu.Unlock()

	l.log.Info("decode started", zap.Stringer("task", id), zap.String("name", name), zap.Int("bytes", len(data)))

	go func() {
		t, err := l.registry.Decode(ctx, name, data)
		res := Result{ID: id, Name: name, Track: t, Err: err}
		select {
		case l.results <- res:
		case <-ctx.Done():
		}
	}()
	return id
}

// Cancel abandons the current load, if any.
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.current = uuid.Nil
	l.pending = false
}

// Pending reports whether the current load has not produced a result yet.
func (l *Loader) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Poll returns the result of the current load without blocking. Stale
// results found on the way are discarded.
func (l *Loader) Poll() (Result, bool) {
	for {
		select {
		case res := <-l.results:
			if l.accept(res) {
				return res, true
			}
		default:
			return Result{}, false
		}
	}
}

// Next blocks until the current load finishes or ctx is done.
func (l *Loader) Next(ctx context.Context) (Result, error) {
	for {
		select {
		case res := <-l.results:
			if l.accept(res) {
				return res, nil
			}
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
}

func (l *Loader) accept(res Result) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if res.ID != l.current {
		l.log.Debug("discarding stale decode", zap.Stringer("task", res.ID))
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.pending = false
	return true
}
