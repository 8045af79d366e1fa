package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	favorableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	neutralStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	unfavorableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	progressStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	boxStyle         = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

const barCells = 20

func tierStyle(t Tier) lipgloss.Style {
	switch t {
	case TierFavorable:
		return favorableStyle
	case TierUnfavorable:
		return unfavorableStyle
	default:
		return neutralStyle
	}
}

func indicatorStyle(i Indicator) lipgloss.Style {
	switch i.Kind {
	case IndicatorPositive:
		return favorableStyle
	case IndicatorInProgress:
		return progressStyle
	default:
		return unfavorableStyle
	}
}

func bar(pct float64) string {
	filled := int(BarWidth(pct) / 100 * barCells)
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

// RenderTerminal formats the view for a terminal. A nil view yields "".
func RenderTerminal(v *View) string {
	if v == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render("Design Evaluation Results"))
	b.WriteString("  ")
	b.WriteString(indicatorStyle(v.Status).Render("[" + v.Status.Label + "]"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %s at %s", v.FileName, FormatDate(v.UploadDate), FormatTime(v.UploadDate))))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("Score %s/%s (%s)",
		FormatScore(v.TotalScore), FormatScore(v.MaxPossibleScore), FormatPercent(v.Percentage))))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render("Overall Feedback\n" + v.OverallFeedback))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Detailed Criteria"))
	b.WriteString("\n")

	for _, c := range v.Cards {
		style := tierStyle(c.Tier)
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(c.Name))
		b.WriteString("  ")
		b.WriteString(style.Render(FormatScore(c.Score) + "/" + FormatScore(c.MaxScore)))
		b.WriteString("\n")
		if c.Description != "" {
			b.WriteString(mutedStyle.Render(c.Description))
			b.WriteString("\n")
		}
		b.WriteString(style.Render(bar(c.Percentage)))
		b.WriteString(" ")
		b.WriteString(FormatPercent(c.Percentage))
		b.WriteString("\n")
		b.WriteString(c.Feedback)
		b.WriteString("\n")
	}
	return b.String()
}
