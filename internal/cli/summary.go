package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/arkas/internal/budget"
)

// RenderSummary draws the allocation table followed by the headline metrics.
// Lines outside their range are colored.
func RenderSummary(a budget.Analysis) string {
	rows := a.SummaryRows()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(budget.SummaryHeader...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			style := TableCellStyle
			if row >= 0 && row < len(rows) && col == len(budget.SummaryHeader)-1 {
				switch {
				case rows[row].Exceeding:
					style = style.Foreground(ErrorColor)
				case rows[row].Under:
					style = style.Foreground(WarningColor)
				}
			}
			return style
		})

	for _, r := range rows {
		t.Row(r.Values()...)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(RenderMetrics(a.Metrics()))
	return b.String()
}

// RenderMetrics lays the metrics out side by side.
func RenderMetrics(metrics []budget.Metric) string {
	boxes := make([]string, 0, len(metrics))
	for _, m := range metrics {
		lines := []string{SubtleStyle.Render(m.Label), BoldStyle.Render(m.Value)}
		if m.Delta != "" {
			style := SuccessStyle
			if m.Bad {
				style = ErrorStyle
			}
			lines = append(lines, style.Render(m.Delta))
		}
		boxes = append(boxes, lipgloss.NewStyle().PaddingRight(4).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// RenderFlags lists categories outside their range, or "" when none are.
func RenderFlags(a budget.Analysis) string {
	var b strings.Builder
	for _, f := range a.Exceeding {
		fmt.Fprintf(&b, "%s\n", ErrorStyle.Render(fmt.Sprintf("▲ %s: %s%% (batas atas %d%%)",
			f.Category.Name, budget.FormatPercent(f.Percent), f.Limit)))
	}
	for _, f := range a.UnderAllocated {
		fmt.Fprintf(&b, "%s\n", WarningStyle.Render(fmt.Sprintf("▼ %s: %s%% (batas bawah %d%%)",
			f.Category.Name, budget.FormatPercent(f.Percent), f.Limit)))
	}
	return b.String()
}
