package main

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/wavescape/internal/config"
	"github.com/olivier-w/wavescape/internal/logging"
	"github.com/olivier-w/wavescape/internal/scene"
	"github.com/olivier-w/wavescape/internal/settings"
	"github.com/olivier-w/wavescape/internal/spectral"
	"github.com/olivier-w/wavescape/internal/track"
	"github.com/olivier-w/wavescape/internal/transport"
	"github.com/olivier-w/wavescape/internal/ui"
	"github.com/olivier-w/wavescape/internal/viz"
	"github.com/olivier-w/wavescape/internal/watch"
	"go.uber.org/zap"
)

// run wires the components together and blocks until the TUI exits.
func run(cfg *config.Config, path string) error {
	log, err := logging.New(logging.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer log.Sync()
	log.Info("starting wavescape",
		zap.String("path", path),
		zap.Bool("env_loaded", cfg.EnvLoaded),
		zap.Bool("watch", cfg.Watch))

	coord := settings.NewCoordinator(settings.Defaults(), log)
	cfg.Apply(coord, log)

	tap := spectral.NewTap(spectral.MaxFFTSize)
	sampler := spectral.NewSampler(spectral.NewAnalyser(tap), log)

	player := transport.NewPlayer(newSink(cfg.Silent, log), tap, log)
	defer player.Close()

	cam := scene.DefaultCamera()
	graph := scene.NewGraph()
	engine := viz.New(viz.Deps{
		Scene:     graph,
		Camera:    &cam,
		Settings:  coord,
		Sampler:   sampler,
		Loader:    track.NewLoader(track.DefaultRegistry(), log),
		Transport: player,
		Status:    func(msg string) { log.Debug("status", zap.String("status", msg)) },
		Log:       log,
	})

	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	model := ui.New(engine, graph, player, ui.Options{Path: path, Dir: dir, Log: log})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if cfg.Watch && path != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := watch.File(ctx, path, watch.DefaultSettle, log, func(p string) {
				program.Send(ui.FileChangedMsg{Path: p})
			})
			if err != nil {
				log.Warn("file watch stopped", zap.Error(err))
			}
		}()
	}

	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// newSink opens the audio device, falling back to a silent clock when
// there is none or silent playback was asked for.
func newSink(silent bool, log *zap.Logger) transport.SinkFunc {
	if silent {
		return transport.ClockSink
	}
	sink, err := transport.OtoSink()
	if err != nil {
		log.Warn("audio device unavailable, playing silently", zap.Error(err))
		return transport.ClockSink
	}
	return sink
}
