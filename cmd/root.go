package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	errUtils "github.com/cloudposse/stopwatch/errors"
	"github.com/cloudposse/stopwatch/internal/tui"
	"github.com/cloudposse/stopwatch/pkg/config"
	"github.com/cloudposse/stopwatch/pkg/logger"
)

// Execute is the main entry point for the cobra commands.
// The context is cancelled on SIGINT or SIGTERM.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return fang.Execute(ctx, NewRootCmd(viper.New()),
		fang.WithVersion(Version),
		fang.WithCommit(GitCommit),
		fang.WithErrorHandler(printError),
	)
}

// printError renders errors through the shared formatter so hints survive fang's output.
func printError(w io.Writer, _ fang.Styles, err error) {
	cfg := errUtils.DefaultFormatterConfig()
	cfg.Verbose = logger.GetLevel() <= log.DebugLevel
	fmt.Fprintln(w, errUtils.Format(err, cfg))
}

// NewRootCmd builds the command tree. Settings resolve through v with
// flag > env > config file > default precedence.
func NewRootCmd(v *viper.Viper) *cobra.Command {
	var configFile string
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "stopwatch",
		Short: "A terminal stopwatch that keeps time from the clock, not from ticks",
		Long: `Stopwatch measures elapsed wall-clock time with start, stop and reset.

The display refreshes on a timer, but the elapsed value is always read from the
clock, so a slow terminal or a suspended laptop never makes it drift.

On a terminal it opens an interactive view. Otherwise, or with --headless, it
starts immediately, logs the elapsed time on every refresh and prints the final
HH:MM:SS when interrupted or when --duration has passed.`,
		Example: `  # Interactive stopwatch
  stopwatch

  # Start timing as soon as the view opens
  stopwatch --autostart

  # Time a fixed window without a UI
  stopwatch --headless --duration 90s

  # Format an elapsed time
  stopwatch format 9300`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadConfig(v, configFile, cmd)
			if err != nil {
				return err
			}
			*cfg = loaded

			setupLogging(cmd.ErrOrStderr(), loaded)
			if used := v.ConfigFileUsed(); used != "" {
				logger.Debug("Using config file", "file", used)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStopwatch(cmd, *cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file path (default: .stopwatch.yaml)")
	pf.String("log-level", "info", "Log level: trace, debug, info, warn, error, fatal")
	pf.Bool("no-color", false, "Disable color output")

	addRunFlags(rootCmd.Flags())

	rootCmd.AddCommand(newRunCmd(cfg))
	rootCmd.AddCommand(newFormatCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func loadConfig(v *viper.Viper, configFile string, cmd *cobra.Command) (config.Config, error) {
	if err := config.Init(v, configFile); err != nil {
		return config.Config{}, err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return config.Config{}, err
	}
	return config.Load(v)
}

// setupLogging installs a global logger writing to w. The level was validated by config.Load.
func setupLogging(w io.Writer, cfg config.Config) {
	l := logger.New(w)
	level, _ := logger.ParseLevel(cfg.Log.Level)
	l.SetLevel(level)
	logger.SetDefault(l)

	profile := tui.ConfigureColors(cfg.NoColor)
	logger.SetColorProfile(profile)
	logger.Debug("Color profile configured", "profile", tui.ProfileName(profile))
}
