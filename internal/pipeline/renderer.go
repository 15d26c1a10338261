package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// Renderer writes filter reports to disk and the terminal.
type Renderer struct {
	verbose bool
}

// NewRenderer creates a renderer.
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// RenderJSON writes one or more results to a JSON file.
func (r *Renderer) RenderJSON(results []*Result, path string) error {
	reports := make([]any, 0, len(results))
	for _, res := range results {
		reports = append(reports, res.Report)
	}

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal reports: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	return nil
}

// RenderSummary prints a per-document summary to stdout. With verbose on it
// also prints the per-stage removal counts and the retained mentions.
func (r *Renderer) RenderSummary(res *Result) {
	report := res.Report
	fmt.Printf("%s: %d candidates -> %d mentions\n", report.Document, report.Extracted, report.Retained)

	if !r.verbose {
		return
	}
	for _, stage := range report.Stages {
		if stage.Removed == 0 {
			continue
		}
		fmt.Printf("  %-14s removed %d (%d -> %d)\n", stage.Name, stage.Removed, stage.In, stage.Out)
	}
	for _, m := range res.Mentions {
		if m.IsDummy {
			continue
		}
		fmt.Printf("  %s %-5s %q\n", m.Span, m.Type, m.Text())
	}
}
