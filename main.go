package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/wavescape/internal/config"
	"github.com/olivier-w/wavescape/internal/track"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "wavescape [file]",
	Short: "wavescape is a terminal audio visualizer with a scrubbable 3D scene.",
	Long: "wavescape plays an audio file and draws its spectrum and waveform as a 3D scene\n" +
		"in the terminal. Click and drag on the waveform to scrub. Without a file it\n" +
		"opens a file browser.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		if envFile != "" {
			cfg = config.Load(envFile)
		} else {
			cfg = config.Load()
		}
		if err := applyFlags(cmd, cfg); err != nil {
			return err
		}

		var path string
		if len(args) == 1 {
			p, err := checkPath(args[0])
			if err != nil {
				return err
			}
			path = p
		}
		return run(cfg, path)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&envFile, "env", "", "load settings from this .env file instead of ./.env")
	f.Int("fft", 0, "FFT size, a power of two between 32 and 32768")
	f.Int("bars", 0, "number of spectrum bars (16-128)")
	f.Float64("spread", 0, "horizontal spread of the waveform in scene units")
	f.Float64("radius", 0, "ring radius in realtime mode")
	f.String("mode", "", "start mode: realtime, static or lab")
	f.String("projection", "", "camera projection: perspective or orthographic")
	f.String("log-file", "", "write JSON logs to this file")
	f.String("log-level", "", "log level: debug, info, warn or error")
	f.Bool("watch", false, "reload the file when it changes on disk")
	f.Bool("silent", false, "play without opening an audio device")
}

// applyFlags overrides config values with the flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err != nil || !f.Changed(name) {
			return
		}
		if e := apply(); e != nil {
			err = fmt.Errorf("--%s: %w", name, e)
		}
	}
	set("fft", func() (e error) { cfg.FFTSize, e = f.GetInt("fft"); return })
	set("bars", func() (e error) { cfg.BarCount, e = f.GetInt("bars"); return })
	set("spread", func() (e error) { cfg.Spread, e = f.GetFloat64("spread"); return })
	set("radius", func() (e error) { cfg.Radius, e = f.GetFloat64("radius"); return })
	set("mode", func() (e error) { cfg.Mode, e = f.GetString("mode"); return })
	set("projection", func() (e error) { cfg.Projection, e = f.GetString("projection"); return })
	set("log-file", func() (e error) { cfg.LogFile, e = f.GetString("log-file"); return })
	set("log-level", func() (e error) { cfg.LogLevel, e = f.GetString("log-level"); return })
	set("watch", func() (e error) { cfg.Watch, e = f.GetBool("watch"); return })
	set("silent", func() (e error) { cfg.Silent, e = f.GetBool("silent"); return })
	return err
}

// checkPath rejects missing files, directories and unsupported formats
// before the terminal is taken over.
func checkPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !track.IsSupportedExt(ext) {
		return "", fmt.Errorf("unsupported format %s (supported: %s)", ext, track.SupportedExtsList())
	}
	return path, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
