package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunSummaryLifecycle(t *testing.T) {
	s := NewRunSummary("https://www.skool.com/g/classroom/c")

	assert.Equal(t, StatusRunning, s.Status)
	assert.False(t, s.StartTime.IsZero())

	s.AddLesson(LessonResult{ID: "a", Outcome: "ended", Duration: 90 * time.Second})
	s.AddLesson(LessonResult{ID: "b", Skipped: true})
	s.AddLesson(LessonResult{ID: "c", Outcome: "no-video"})

	s.Finish(StatusCompleted, nil)

	assert.Equal(t, StatusCompleted, s.Status)
	assert.Empty(t, s.Error)
	assert.False(t, s.EndTime.IsZero())
	assert.Equal(t, s.EndTime.Sub(s.StartTime), s.Duration)

	ended, skipped, other := s.Counts()
	assert.Equal(t, 1, ended)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, other)
}

func TestFinishRecordsError(t *testing.T) {
	s := NewRunSummary("u")
	s.Finish(StatusFailed, assert.AnError)

	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, assert.AnError.Error(), s.Error)
}

func TestFinishLastWriterWins(t *testing.T) {
	s := NewRunSummary("u")
	s.Finish(StatusCompleted, nil)
	s.Finish(StatusFailed, assert.AnError)

	assert.Equal(t, StatusFailed, s.Status)
}
