package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArtifactWriter writes run artifacts into an output directory.
type ArtifactWriter struct {
	outputDir string
}

// NewArtifactWriter creates a new artifact writer.
func NewArtifactWriter(outputDir string) *ArtifactWriter {
	return &ArtifactWriter{outputDir: outputDir}
}

// WriteAll writes all artifact formats.
func (w *ArtifactWriter) WriteAll(summary *RunSummary) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := w.WriteRunJSON(summary); err != nil {
		return fmt.Errorf("failed to write run JSON: %w", err)
	}

	if err := w.WriteSummaryMarkdown(summary); err != nil {
		return fmt.Errorf("failed to write summary markdown: %w", err)
	}

	return nil
}

// WriteRunJSON writes the full run summary as JSON.
func (w *ArtifactWriter) WriteRunJSON(summary *RunSummary) error {
	path := filepath.Join(w.outputDir, "run.json")

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	if writeErr := os.WriteFile(path, data, 0600); writeErr != nil {
		return fmt.Errorf("failed to write run JSON: %w", writeErr)
	}

	return nil
}

// WriteSummaryMarkdown writes a human-readable markdown summary.
func (w *ArtifactWriter) WriteSummaryMarkdown(summary *RunSummary) error {
	path := filepath.Join(w.outputDir, "summary.md")

	var md strings.Builder

	md.WriteString("# Course Run Summary\n\n")
	md.WriteString(fmt.Sprintf("**Course:** %s\n\n", summary.CourseURL))
	md.WriteString(fmt.Sprintf("**Status:** %s\n\n", summary.Status))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", summary.StartTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Completed:** %s\n\n", summary.EndTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", summary.Duration))

	if summary.Error != "" {
		md.WriteString(fmt.Sprintf("❌ **Error:** %s\n\n", summary.Error))
	}

	ended, skipped, other := summary.Counts()
	md.WriteString("## Lessons\n\n")
	md.WriteString(fmt.Sprintf("%d visited: %d ended, %d skipped, %d other\n\n", len(summary.Lessons), ended, skipped, other))

	for i, l := range summary.Lessons {
		status := "✅"
		if l.Skipped {
			status = "⏭️"
		} else if l.Outcome != "ended" {
			status = "⚠️"
		}
		title := l.Title
		if title == "" {
			title = l.ID
		}
		md.WriteString(fmt.Sprintf("%d. %s **%s**", i+1, status, title))
		if l.Skipped {
			md.WriteString(" (skipped)")
		} else {
			md.WriteString(fmt.Sprintf(" (%s, %s)", l.Outcome, l.Duration.Round(time.Second)))
		}
		md.WriteString("\n")
	}
	md.WriteString("\n")

	if writeErr := os.WriteFile(path, []byte(md.String()), 0600); writeErr != nil {
		return fmt.Errorf("failed to write summary markdown: %w", writeErr)
	}

	return nil
}
