package cmd

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"

	errUtils "github.com/cloudposse/stopwatch/errors"
	"github.com/cloudposse/stopwatch/internal/headless"
	"github.com/cloudposse/stopwatch/internal/tui"
	"github.com/cloudposse/stopwatch/pkg/config"
	"github.com/cloudposse/stopwatch/pkg/logger"
	"github.com/cloudposse/stopwatch/pkg/scheduler"
	"github.com/cloudposse/stopwatch/pkg/stopwatch"
)

func newRunCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the stopwatch (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStopwatch(cmd, *cfg)
		},
	}
	addRunFlags(cmd.Flags())
	return cmd
}

func runStopwatch(cmd *cobra.Command, cfg config.Config) error {
	out := cmd.OutOrStdout()

	if cfg.Headless || !isTerminal(out) {
		logger.Debug("Running headless", "forced", cfg.Headless)
		_, err := headless.Run(cmd.Context(), headless.Options{
			TickInterval: cfg.TickInterval,
			Duration:     cfg.Duration,
			Out:          out,
		})
		return err
	}

	if cfg.Duration > 0 {
		logger.Warn("--duration only applies to headless runs", "duration", cfg.Duration)
	}

	return runInteractive(cmd.Context(), cmd.InOrStdin(), out, cfg)
}

func runInteractive(ctx context.Context, in io.Reader, out io.Writer, cfg config.Config) error {
	clk := clock.RealClock{}
	sched := scheduler.NewTickerScheduler(clk)
	defer sched.Close()

	updates := make(chan stopwatch.Snapshot, 1)
	tracker, err := stopwatch.New(clk,
		stopwatch.WithScheduler(sched),
		stopwatch.WithTickInterval(cfg.TickInterval),
		stopwatch.WithRefresh(tui.Notifier(updates)),
	)
	if err != nil {
		return err
	}

	if cfg.Autostart {
		tracker.Start()
	}

	p := tea.NewProgram(tui.NewModel(tracker, updates),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	_, runErr := p.Run()
	tracker.Stop()

	if runErr != nil {
		if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
			return errUtils.Build(errUtils.ErrInterrupted).
				WithContext("elapsed", tracker.String()).
				WithExitCode(errUtils.ExitCodeInterrupted).
				Err()
		}
		return errUtils.Build(errUtils.ErrUIFailed).
			WithExplanation(runErr.Error()).
			WithHint("Use --headless when no interactive terminal is available").
			Err()
	}

	logger.Debug("Stopwatch closed", "elapsed", tracker.String())
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
