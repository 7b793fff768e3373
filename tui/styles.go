package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Wicoco/sitemap/result"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	successStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle         = lipgloss.NewStyle().Faint(true)
	urlStyle         = lipgloss.NewStyle()
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// renderLimit caps how many rows each detail table shows.
const renderLimit = 15

// RenderSummary produces a Lip Gloss styled summary of a completed run.
func RenderSummary(rs *result.ResultSet, rep result.Report) string {
	if rs == nil {
		return errorStyle.Render("No results available.") + "\n"
	}

	var builder strings.Builder

	builder.WriteString(titleStyle.Render(fmt.Sprintf(
		"Checked %d URLs in %s (%.1f/s)",
		rep.Total,
		rep.Duration.Round(time.Millisecond),
		rep.Throughput,
	)))
	builder.WriteString("\n\n")

	builder.WriteString(fmt.Sprintf("  %s  %d (%.1f%%)\n",
		successStyle.Render("Working: "), rep.Working.Count, rep.Working.Percent))
	builder.WriteString(fmt.Sprintf("  %s  %d (%.1f%%)\n",
		warningStyle.Render("Warnings:"), rep.Warnings.Count, rep.Warnings.Percent))
	builder.WriteString(fmt.Sprintf("  %s  %d (%.1f%%)\n",
		errorStyle.Render("Errors:  "), rep.Errors.Count, rep.Errors.Percent))
	builder.WriteString(fmt.Sprintf("  %s  %d (%.1f%%)\n",
		errorStyle.Render("Timeouts:"), rep.Timeouts.Count, rep.Timeouts.Percent))

	if rep.Working.Count > 0 {
		builder.WriteString(dimStyle.Render(fmt.Sprintf(
			"  mean response %s, %d slow",
			rep.MeanResponse.Round(time.Millisecond), rep.SlowCount)))
		builder.WriteString("\n")
	}
	builder.WriteString("\n")

	if len(rs.Errors) > 0 {
		builder.WriteString(renderBucketTable("Errors", rs.Errors, errorRow))
	}
	if len(rs.Timeouts) > 0 {
		builder.WriteString(renderBucketTable("Timeouts", rs.Timeouts, timeoutRow))
	}
	if len(rs.Warnings) > 0 {
		builder.WriteString(renderBucketTable("Redirects", rs.Warnings, redirectRow))
	}

	if rep.Success {
		builder.WriteString(successStyle.Render("Result: PASS"))
	} else {
		builder.WriteString(errorStyle.Render("Result: FAIL"))
	}
	builder.WriteString("\n")

	return builder.String()
}

func errorRow(r result.AugmentedResult) []string {
	status := fmt.Sprintf("%d %s", r.Status, r.StatusText)
	if r.Err != "" {
		status = r.Err
	}
	return []string{r.URL, status}
}

func timeoutRow(r result.AugmentedResult) []string {
	return []string{r.URL, r.StatusText}
}

func redirectRow(r result.AugmentedResult) []string {
	return []string{r.URL, fmt.Sprintf("%d -> %s", r.Status, r.FinalURL)}
}

func renderBucketTable(title string, results []result.AugmentedResult, row func(result.AugmentedResult) []string) string {
	var builder strings.Builder

	builder.WriteString(headerStyle.Render(fmt.Sprintf("## %s (%d)", title, len(results))))
	builder.WriteString("\n")

	shown := results
	if len(shown) > renderLimit {
		shown = shown[:renderLimit]
	}
	rows := make([][]string, 0, len(shown))
	for _, r := range shown {
		rows = append(rows, row(r))
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("URL", "Status").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return statusErrorStyle
			}
			return urlStyle
		}).
		Rows(rows...)

	builder.WriteString(tbl.Render())
	builder.WriteString("\n")
	if rest := len(results) - len(shown); rest > 0 {
		builder.WriteString(dimStyle.Render(fmt.Sprintf("  ...and %d more", rest)))
		builder.WriteString("\n")
	}
	builder.WriteString("\n")

	return builder.String()
}
