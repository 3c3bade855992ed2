package errors

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

// DefaultMaxLineLength is the wrap width for long error messages.
const DefaultMaxLineLength = 80

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	hintPrefix = "    💡 "
)

// FormatterConfig controls error formatting.
type FormatterConfig struct {
	// Verbose adds the context table and the full error chain.
	Verbose bool

	// Color is one of "auto", "always" or "never".
	Color string

	MaxLineLength int
}

// DefaultFormatterConfig returns the formatter settings used by main.
func DefaultFormatterConfig() FormatterConfig {
	return FormatterConfig{
		Color:         ColorAuto,
		MaxLineLength: DefaultMaxLineLength,
	}
}

// Format renders err with its hints for display on stderr.
func Format(err error, config FormatterConfig) string {
	if err == nil {
		return ""
	}

	useColor := shouldUseColor(config.Color)
	errorStyle := lipgloss.NewStyle()
	hintStyle := lipgloss.NewStyle()
	if useColor {
		errorStyle = errorStyle.Foreground(lipgloss.Color("#FF0000")).Bold(true)
		hintStyle = hintStyle.Foreground(lipgloss.Color("#808080"))
	}

	var out strings.Builder

	msg := err.Error()
	if !config.Verbose && len(msg) > config.MaxLineLength {
		msg = wrapText(msg, config.MaxLineLength)
	}
	out.WriteString(errorStyle.Render(msg))

	// Explanations attached with ErrorBuilder.WithExplanation.
	for _, detail := range errors.GetAllDetails(err) {
		if !config.Verbose && len(detail) > config.MaxLineLength {
			detail = wrapText(detail, config.MaxLineLength)
		}
		out.WriteString("\n\n")
		out.WriteString(detail)
	}

	if hints := errors.GetAllHints(err); len(hints) > 0 {
		out.WriteString("\n")
		for _, hint := range hints {
			out.WriteString(hintStyle.Render(hintPrefix + hint))
			out.WriteString("\n")
		}
	}

	if config.Verbose {
		if ctx := formatContextTable(err, useColor); ctx != "" {
			out.WriteString(ctx)
			out.WriteString("\n")
		}
		out.WriteString("\n")
		out.WriteString(fmt.Sprintf("%+v", err))
	}

	return out.String()
}

// formatContextTable renders the "key=value" safe details attached by ErrorBuilder.WithContext.
func formatContextTable(err error, useColor bool) string {
	var rows [][]string
	for _, payload := range errors.GetAllSafeDetails(err) {
		for _, detail := range payload.SafeDetails {
			for _, pair := range strings.Fields(detail) {
				if k, v, ok := strings.Cut(pair, "="); ok {
					rows = append(rows, []string{k, v})
				}
			}
		}
	}
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Context", "Value").
		Rows(rows...)
	if useColor {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true).Foreground(lipgloss.Color("#00AA00"))
			}
			return style
		})
	}

	return "\n" + t.String()
}

func shouldUseColor(mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

func wrapText(text string, width int) string {
	if width <= 0 {
		width = DefaultMaxLineLength
	}

	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}
