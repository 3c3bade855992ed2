package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	errUtils "github.com/cloudposse/stopwatch/errors"
	"github.com/cloudposse/stopwatch/pkg/stopwatch"
)

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <milliseconds|duration>",
		Short: "Print an elapsed time as HH:MM:SS",
		Long: `Format prints an elapsed time the way the stopwatch displays it.

The argument is either integer milliseconds or a Go duration. Fractions of a
second are truncated and hours are not capped.`,
		Example: `  stopwatch format 9300
  stopwatch format 1h2m3s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errUtils.Build(errUtils.ErrMissingArgument).
					WithExplanationf("format takes exactly one argument, got %d", len(args)).
					WithHint("Pass milliseconds such as 9300 or a duration such as 1h2m3s").
					WithExitCode(errUtils.ExitCodeUsage).
					Err()
			}

			ms, err := stopwatch.ParseMilliseconds(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), stopwatch.FormatMilliseconds(ms))
			return err
		},
	}
}
