package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cloudposse/stopwatch/pkg/config"
)

// flagKeys maps CLI flag names to their config keys, sorted by flag name.
var flagKeys = []struct {
	flag string
	key  string
}{
	{"autostart", config.KeyAutostart},
	{"duration", config.KeyDuration},
	{"headless", config.KeyHeadless},
	{"log-level", config.KeyLogLevel},
	{"no-color", config.KeyNoColor},
	{"tick-interval", config.KeyTickInterval},
}

// addRunFlags registers the stopwatch flags shared by the root and run commands.
func addRunFlags(flags *pflag.FlagSet) {
	flags.Duration("tick-interval", config.DefaultTickInterval, "How often the display refreshes while running")
	flags.Bool("headless", false, "Log the elapsed time instead of opening the interactive view")
	flags.Duration("duration", 0, "Stop a headless run after this long (0 runs until interrupted)")
	flags.Bool("autostart", false, "Start timing as soon as the interactive view opens")
}

// bindFlags binds every known flag present in flags to its config key.
// Unchanged flags fall through to env, config file and defaults.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		flag := flags.Lookup(fk.flag)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(fk.key, flag); err != nil {
			return errors.Wrapf(err, "bind flag --%s", fk.flag)
		}
	}
	return nil
}
