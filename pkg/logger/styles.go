package logger

import (
	"github.com/charmbracelet/lipgloss"
	log "github.com/charmbracelet/log"
)

// Styles returns solid-background level badges with dimmed keys.
func Styles() *log.Styles {
	styles := log.DefaultStyles()

	badge := func(label, background, foreground string) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(label).
			Background(lipgloss.Color(background)).
			Foreground(lipgloss.Color(foreground)).
			Padding(0, 1)
	}

	styles.Levels = map[log.Level]lipgloss.Style{
		TraceLevel:     badge("TRACE", "#607D8B", "#000000"),
		log.DebugLevel: badge("DEBUG", "#3F51B5", "#000000"),
		log.InfoLevel:  badge("INFO", "#4CAF50", "#000000"),
		log.WarnLevel:  badge("WARN", "#FF9800", "#000000"),
		log.ErrorLevel: badge("ERROR", "#F44336", "#000000"),
		log.FatalLevel: badge("FATAL", "#F44336", "#FFFFFF"),
	}
	styles.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Bold(true)
	styles.Value = lipgloss.NewStyle()
	styles.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))

	return styles
}
