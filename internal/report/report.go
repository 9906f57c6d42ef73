// Package report writes harness reports as a text table, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/coercekit/internal/errors"
	"github.com/mcncl/coercekit/internal/harness"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted format names.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// maxValueWidth caps the value column of the text table.
const maxValueWidth = 48

// ParseFormat resolves a format name to one of Formats. An empty name means
// text and "yml" means yaml.
func ParseFormat(name string) (string, bool) {
	switch f := strings.ToLower(strings.TrimSpace(name)); f {
	case "":
		return FormatText, true
	case "yml":
		return FormatYAML, true
	case FormatText, FormatJSON, FormatYAML:
		return f, true
	}
	return "", false
}

// Render writes rep to w in the named format. An empty format means text.
func Render(w io.Writer, rep *harness.Report, format string) error {
	f, _ := ParseFormat(format)
	switch f {
	case FormatText:
		return renderText(w, rep)
	case FormatJSON:
		return renderJSON(w, rep)
	case FormatYAML:
		return renderYAML(w, rep)
	}
	return errors.NewOutputError(
		fmt.Sprintf("unknown format %q (expected one of %s)", format, strings.Join(Formats, ", ")),
		errors.ErrNoSuchFormat,
	)
}

func renderText(w io.Writer, rep *harness.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\t#\tGIVEN\tPROBE\tEXPECTED\tOBSERVED\tOK\tVALUE")
	for _, r := range rep.Results {
		value := r.Value
		if r.Error != "" {
			value = "error: " + r.Error
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Category, r.Index, r.Given, r.Probe, r.Expected, r.Observed, mark(r.Passed), truncate(value, maxValueWidth))
	}
	if err := tw.Flush(); err != nil {
		return errors.NewOutputError("failed to write report", err)
	}

	fmt.Fprintf(w, "\nrun %s\n", rep.RunID)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROBE\tTOTAL\tAGREED\tDEVIATED")
	for _, s := range rep.Summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.Probe, s.Total, s.Agreed, s.Deviated)
	}
	if err := tw.Flush(); err != nil {
		return errors.NewOutputError("failed to write report summary", err)
	}
	return nil
}

func renderJSON(w io.Writer, rep *harness.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rep); err != nil {
		return errors.NewOutputError("failed to encode report as JSON", err)
	}
	return nil
}

func renderYAML(w io.Writer, rep *harness.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return errors.NewOutputError("failed to encode report as YAML", err)
	}
	if err := enc.Close(); err != nil {
		return errors.NewOutputError("failed to encode report as YAML", err)
	}
	return nil
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "NO"
}

// truncate shortens s to at most n runes and keeps it on one line.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
