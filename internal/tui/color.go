package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ConfigureColors picks the lipgloss color profile. noColor or a non-empty NO_COLOR forces plain ASCII.
func ConfigureColors(noColor bool) termenv.Profile {
	profile := lipgloss.ColorProfile()
	if noColor || os.Getenv("NO_COLOR") != "" {
		profile = termenv.Ascii
	}

	lipgloss.SetColorProfile(profile)
	return profile
}

// ProfileName returns a human-readable name for the color profile.
func ProfileName(profile termenv.Profile) string {
	switch profile {
	case termenv.Ascii:
		return "ASCII (no color)"
	case termenv.ANSI:
		return "ANSI (16 colors)"
	case termenv.ANSI256:
		return "ANSI256 (256 colors)"
	case termenv.TrueColor:
		return "TrueColor (16M colors)"
	default:
		return "Unknown"
	}
}
