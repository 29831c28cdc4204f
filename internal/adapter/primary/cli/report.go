package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"duty-validator/internal/adapter/primary/web"
	"duty-validator/internal/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func renderReport(w io.Writer, format string, ws domain.Worksheet, res domain.ValidationResult, policy domain.LegalPolicy) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(web.NewResultView(res, policy))
	case formatTable, "":
		renderTable(w, ws, res, policy)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatTable, formatJSON)
	}
}

func renderTable(w io.Writer, ws domain.Worksheet, res domain.ValidationResult, policy domain.LegalPolicy) {
	status := "Invalid"
	if res.Valid {
		status = "Valid"
	}

	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.SetStyle(table.StyleLight)
	summary.AppendRow(table.Row{"Status", status})
	summary.AppendRow(table.Row{"Duty", domain.FormatClock(ws.Duty.Start) + " - " + domain.FormatClock(ws.Duty.End)})
	if res.DutyDurationMinutes > 0 {
		summary.AppendRow(table.Row{"Total Duty Duration", domain.FormatDuration(res.DutyDurationMinutes)})
	}
	summary.AppendRow(table.Row{"Legal Policy", string(policy)})
	summary.Render()

	if len(ws.Breaks) > 0 {
		breaks := table.NewWriter()
		breaks.SetOutputMirror(w)
		breaks.SetStyle(table.StyleLight)
		breaks.AppendHeader(table.Row{"#", "ID", "Start", "End", "Duration"})
		for i, b := range ws.Breaks {
			breaks.AppendRow(table.Row{
				i + 1,
				b.ID,
				domain.FormatClock(b.Start),
				domain.FormatClock(b.End),
				durationCell(res, i+1),
			})
		}
		breaks.Render()
	}

	printList(w, "Validation Issues", res.Issues)
	printList(w, "Legal Requirement Violations", res.LegalIssues)
	if res.Valid {
		fmt.Fprintln(w, "All Validations Passed")
	}
}

// durationCell formats the recorded duration of break n; non-positive durations render as "-".
func durationCell(res domain.ValidationResult, n int) string {
	for _, bd := range res.BreakDurations {
		if bd.BreakNumber != n {
			continue
		}
		if bd.Duration <= 0 {
			return "-"
		}
		return domain.FormatDuration(bd.Duration)
	}
	return "-"
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}
