// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mlsantos/pitaka/internal/engine"
	"github.com/mlsantos/pitaka/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#F4A259")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats errors or failure messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// RenderSummary formats a pipeline summary for terminal display.
func RenderSummary(s *engine.Summary) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Import summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Documents imported: %s\n", SuccessStyle.Render(fmt.Sprintf("%d", s.DocumentsImported)))
	if s.DocumentsSkipped > 0 {
		fmt.Fprintf(&b, "  Skipped duplicates: %s\n", SubtleStyle.Render(fmt.Sprintf("%d", s.DocumentsSkipped)))
	}
	if s.DocumentsFailed > 0 {
		fmt.Fprintf(&b, "  Failed documents:   %s\n", ErrorStyle.Render(fmt.Sprintf("%d", s.DocumentsFailed)))
	}
	fmt.Fprintf(&b, "  Transactions:       %d extracted, %d stored\n", s.Transactions, s.TransactionsStored)
	if s.Uncategorized > 0 {
		fmt.Fprintf(&b, "  Uncategorized:      %s\n", WarningStyle.Render(fmt.Sprintf("%d", s.Uncategorized)))
	}
	fmt.Fprintf(&b, "  Duplicate matches:  %d (%d groups, %d auto-resolved)\n",
		s.DuplicateMatches, s.DuplicateGroups, s.AutoResolved)
	fmt.Fprintf(&b, "  Average quality:    %s\n", renderQuality(s.AverageQuality))

	for _, e := range s.Errors {
		fmt.Fprintf(&b, "  %s %s: %s\n", ErrorStyle.Render("✗"), e.Path, e.Error)
	}
	return b.String()
}

// RenderDuplicateGroup formats one duplicate cluster for review.
func RenderDuplicateGroup(index int, group []model.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", TitleStyle.Render(fmt.Sprintf("Group %d (%d transactions)", index+1, len(group))))
	for _, t := range group {
		fmt.Fprintf(&b, "  %s  %10s  %-40s  %s\n",
			t.Date.Format("2006-01-02"),
			t.Amount.StringFixed(2),
			t.Description,
			SubtleStyle.Render(string(t.Source)))
	}
	return b.String()
}

func renderQuality(q float64) string {
	text := fmt.Sprintf("%.2f", q)
	switch {
	case q >= 0.9:
		return SuccessStyle.Render(text)
	case q >= 0.7:
		return WarningStyle.Render(text)
	default:
		return ErrorStyle.Render(text)
	}
}
