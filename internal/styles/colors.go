package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Monokai Pro color palette
const (
	Red     = "#FF6188" // Errors
	Orange  = "#FC9867" // Warnings
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success
	Cyan    = "#78DCE8" // Info
	Magenta = "#FF6188" // Titles

	Comment = "#727072" // Dim text
	Border  = "#5B595C" // Borders
)

var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	InfoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border)).
			Padding(0, 1)
)

// Check marks a passed item.
func Check(text string) string {
	return SuccessStyle.Render("✅ " + text)
}

// Cross marks a failed item.
func Cross(text string) string {
	return ErrorStyle.Render("❌ " + text)
}

// Warn marks an advisory.
func Warn(text string) string {
	return WarningStyle.Render("⚠️  " + text)
}

// Banner renders a boxed heading.
func Banner(title string) string {
	return BoxStyle.Render(TitleStyle.Render(title))
}

// Stats renders a labelled count line.
func Stats(label string, n int, style lipgloss.Style) string {
	return fmt.Sprintf("%s %s", DimStyle.Render(label+":"), style.Render(fmt.Sprint(n)))
}
