package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/lisheld/matrixslide/internal/adapters/matrix/window"
	"github.com/lisheld/matrixslide/internal/cliconfig"
	"github.com/lisheld/matrixslide/pkg/log"
	"github.com/lisheld/matrixslide/pkg/slideshow"
)

const longHelp = `Cycle BMP photos from the web on a 64x64 LED matrix.

matrixslide joins the network, then shows each image URL in turn, holding
it for the cycle time. Images that fail to download or decode are skipped.
On a desktop the matrix is emulated in a window; --display headless keeps
frames in memory only.

Settings are read from settings.toml (./settings.toml, then
~/.matrixslide/settings.toml), then WIFI_SSID / WIFI_PASSWORD and
MATRIXSLIDE_* environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  matrixslide --wifi-ssid home --wifi-password secret
  matrixslide --config ./settings.toml --display headless --cycle-time 30s
  matrixslide convert photos/ bmp/ --dither
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

type logFlags struct {
	level string
	json  bool
}

func (f logFlags) logger() zerolog.Logger {
	return log.NewConsoleLogger(os.Stderr, f.level, f.json)
}

func main() {
	var lf logFlags
	if err := newApp(&lf).Execute(); err != nil {
		l := lf.logger()
		l.Error().Err(err).Msg("matrixslide")
		os.Exit(1)
	}
}

func newApp(lf *logFlags) *cobra.Command {
	root := newRootCmd(lf)
	root.PersistentFlags().StringVar(&lf.level, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&lf.json, "log-json", false, "write logs as JSON")
	root.AddCommand(newConvertCmd(lf))
	return root
}

func newRootCmd(lf *logFlags) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "matrixslide",
		Short:         "Cycle BMP photos from the web on an LED matrix",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := lf.logger()

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
				logger.Debug().Str("path", cfgFile).Msg("loaded settings")
			} else if cfgPath != "" {
				return fmt.Errorf("config file %s not found", cfgPath)
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cliconfig.ApplyURLFile(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger.Info().Interface("config", cfg.Masked()).Msg("configuration")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, logger)
		},
	}

	f := root.Flags()
	f.StringVar(&cfgPath, "config", "", "path to settings file (default: ./settings.toml or $HOME/.matrixslide/settings.toml)")
	f.StringVar(&cfg.WiFiSSID, "wifi-ssid", cfg.WiFiSSID, "WiFi network name")
	f.StringVar(&cfg.WiFiPassword, "wifi-password", cfg.WiFiPassword, "WiFi password")
	f.StringSliceVar(&cfg.ImageURLs, "image-url", cfg.ImageURLs, "image URL (repeatable, shown in order)")
	f.StringVar(&cfg.URLFile, "url-file", cfg.URLFile, "file with one image URL per line")
	f.DurationVar(&cfg.CycleTime, "cycle-time", cfg.CycleTime, "time each image stays on screen")
	f.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout per image")
	f.DurationVar(&cfg.SplashDuration, "splash", cfg.SplashDuration, "how long to show the loading screen (0 disables)")
	f.BoolVar(&cfg.GCAfterCycle, "gc", cfg.GCAfterCycle, "run the garbage collector after each image")

	f.StringVar(&cfg.Display, "display", cfg.Display, "display backend: window or headless")
	f.IntVar(&cfg.Width, "width", cfg.Width, "matrix width in LEDs")
	f.IntVar(&cfg.Height, "height", cfg.Height, "matrix height in LEDs")
	f.IntVar(&cfg.BitDepth, "bit-depth", cfg.BitDepth, "colour bits per channel (1-8)")
	f.IntVar(&cfg.Scale, "scale", cfg.Scale, "screen pixels per LED in the window")

	f.StringVar(&cfg.ProbeAddr, "probe-addr", cfg.ProbeAddr, "host:port that must answer before the slideshow starts (default: first image host)")
	f.IntVar(&cfg.JoinAttempts, "join-attempts", cfg.JoinAttempts, "network join attempts before giving up")
	f.DurationVar(&cfg.JoinBackoff, "join-backoff", cfg.JoinBackoff, "initial delay between join attempts")
	if err := f.MarkHidden("probe-addr"); err != nil {
		panic(err)
	}

	return root
}

// frontend is a display that owns the main goroutine while it is open.
type frontend interface {
	slideshow.Display
	Run(ctx context.Context) error
}

// openDisplay builds the configured backend. A window requested from a
// build without cgo falls back to headless.
func openDisplay(cfg cliconfig.Config, logger zerolog.Logger) (slideshow.Display, frontend) {
	if cfg.Display == cliconfig.DisplayWindow {
		if window.Available {
			w := window.New(cfg.Width, cfg.Height, cfg.BitDepth, cfg.Scale, "matrixslide")
			return w, w
		}
		logger.Warn().Err(window.ErrUnavailable).Msg("falling back to headless display")
	}
	return slideshow.NewHeadlessDisplay(cfg.Width, cfg.Height, cfg.BitDepth), nil
}

func libConfig(cfg cliconfig.Config) slideshow.Config {
	return slideshow.Config{
		WiFiSSID:       cfg.WiFiSSID,
		WiFiPassword:   cfg.WiFiPassword,
		ImageURLs:      cfg.ImageURLs,
		CycleTime:      cfg.CycleTime,
		HTTPTimeout:    cfg.HTTPTimeout,
		SplashDuration: cfg.SplashDuration,
		GCAfterCycle:   cfg.GCAfterCycle,
		Width:          cfg.Width,
		Height:         cfg.Height,
		BitDepth:       cfg.BitDepth,
		ProbeAddr:      cfg.ProbeAddr,
		JoinAttempts:   cfg.JoinAttempts,
		JoinBackoff:    cfg.JoinBackoff,
	}
}

func run(ctx context.Context, cfg cliconfig.Config, logger zerolog.Logger) error {
	display, fe := openDisplay(cfg, logger)
	return serve(ctx, cfg, logger, display, fe)
}

// serve runs the slideshow on display until ctx is done, the frontend
// closes or the slideshow crashes. fe may be nil.
func serve(ctx context.Context, cfg cliconfig.Config, logger zerolog.Logger, display slideshow.Display, fe frontend) error {
	s, err := slideshow.New(libConfig(cfg),
		slideshow.WithLogger(log.NewZerologAdapterWithLogger(logger)),
		slideshow.WithDisplay(display),
	)
	if err != nil {
		return fmt.Errorf("create slideshow: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.Start(ctx); err != nil {
		return fmt.Errorf("start slideshow: %w", err)
	}

	var frontErr error
	if fe != nil {
		// A crash closes the window so Run returns.
		go func() {
			select {
			case <-s.Done():
				_ = fe.Close()
			case <-ctx.Done():
			}
		}()
		if err := fe.Run(ctx); err != nil {
			frontErr = fmt.Errorf("window: %w", err)
		} else {
			logger.Info().Msg("window closed, stopping...")
		}
	} else {
		select {
		case <-ctx.Done():
			logger.Info().Msg("received signal, stopping...")
		case <-s.Done():
		}
	}

	if s.Status() == slideshow.StateCrashed {
		_ = display.Close()
		return s.Err()
	}
	if err := s.Close(); err != nil {
		return errors.Join(frontErr, fmt.Errorf("stop slideshow: %w", err))
	}
	if frontErr != nil {
		return frontErr
	}
	logger.Info().Msg("stopped")
	return nil
}
