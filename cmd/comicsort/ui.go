package main

import (
	"fmt"
	"io"
	"path/filepath"

	"comicsort/internal/organize"
	"comicsort/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Palette for CLI output.
const (
	colorTitle   = "#7B61FF"
	colorSuccess = "#73F59F"
	colorWarning = "#F5C26B"
	colorError   = "#FF5F5F"
	colorMuted   = "#666666"
)

// style returns a lipgloss style bound to w, so colour is only emitted when
// w is a terminal.
func style(w io.Writer, color string) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color(color))
}

func titleStyle(w io.Writer) lipgloss.Style   { return style(w, colorTitle).Bold(true) }
func successStyle(w io.Writer) lipgloss.Style { return style(w, colorSuccess) }
func warningStyle(w io.Writer) lipgloss.Style { return style(w, colorWarning) }
func errorStyle(w io.Writer) lipgloss.Style   { return style(w, colorError).Bold(true) }
func mutedStyle(w io.Writer) lipgloss.Style   { return style(w, colorMuted) }

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// resultStatus renders the outcome of one file for the summary table.
func resultStatus(w io.Writer, r types.OrganizeResult, dryRun bool) string {
	switch {
	case r.Error != nil:
		return errorStyle(w).Render("failed: " + r.Error.Error())
	case r.Skipped:
		return warningStyle(w).Render("skipped")
	case dryRun && r.Copy:
		return mutedStyle(w).Render("would copy")
	case dryRun:
		return mutedStyle(w).Render("would move")
	case r.Copy:
		return successStyle(w).Render("copied")
	default:
		return successStyle(w).Render("moved")
	}
}

// printResults writes the per-file table and a one-line summary.
func printResults(w io.Writer, results []types.OrganizeResult, dryRun bool) organize.Summary {
	summary := organize.Summarize(results)
	if len(results) == 0 {
		fmt.Fprintln(w, mutedStyle(w).Render("Nothing to sort."))
		return summary
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		dest := "-"
		if r.DestinationPath != "" {
			dest = r.DestinationPath
		}
		rows = append(rows, []string{
			filepath.Base(r.SourcePath),
			r.Mapping,
			dest,
			resultStatus(w, r, dryRun),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"File", "Mapping", "Destination", "Status"}, rows, nil))
	fmt.Fprintln(w, summaryLine(w, summary, dryRun))
	return summary
}

func summaryLine(w io.Writer, s organize.Summary, dryRun bool) string {
	line := fmt.Sprintf("Sorted %d files: %d moved, %d skipped, %d failed", s.Matched, s.Moved, s.Skipped, s.Failed)
	if dryRun {
		line = fmt.Sprintf("Dry run, %d files planned: %d skipped, %d failed", s.Matched, s.Skipped, s.Failed)
	}
	if s.Failed > 0 {
		return errorStyle(w).Render(line)
	}
	return titleStyle(w).Render(line)
}
