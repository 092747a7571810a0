package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *RunSummary {
	s := NewRunSummary("https://www.skool.com/g/classroom/c")
	s.AddLesson(LessonResult{ID: "a", Title: "Intro", Outcome: "ended", Duration: 2 * time.Minute})
	s.AddLesson(LessonResult{ID: "b", Title: "Bonus Recap", Skipped: true})
	s.AddLesson(LessonResult{ID: "c", Outcome: "no-video"})
	s.Finish(StatusCompleted, nil)
	return s
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	w := NewArtifactWriter(dir)

	require.NoError(t, w.WriteAll(sampleSummary()))

	data, err := os.ReadFile(filepath.Join(dir, "run.json"))
	require.NoError(t, err)

	var got RunSummary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, StatusCompleted, got.Status)
	require.Len(t, got.Lessons, 3)
	assert.Equal(t, "Intro", got.Lessons[0].Title)
	assert.True(t, got.Lessons[1].Skipped)

	md, err := os.ReadFile(filepath.Join(dir, "summary.md"))
	require.NoError(t, err)
	text := string(md)
	assert.Contains(t, text, "# Course Run Summary")
	assert.Contains(t, text, "**Status:** completed")
	assert.Contains(t, text, "3 visited: 1 ended, 1 skipped, 1 other")
	assert.Contains(t, text, "**Bonus Recap** (skipped)")
	// a lesson without a title falls back to its id
	assert.Contains(t, text, "**c** (no-video")
}

func TestWriteSummaryMarkdownWithError(t *testing.T) {
	dir := t.TempDir()
	s := NewRunSummary("u")
	s.Finish(StatusFailed, assert.AnError)

	require.NoError(t, NewArtifactWriter(dir).WriteSummaryMarkdown(s))

	md, err := os.ReadFile(filepath.Join(dir, "summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "**Error:** "+assert.AnError.Error())
}
