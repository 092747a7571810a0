// Package report records the outcome of one course-walk run and writes it
// out as durable artifacts (JSON for machines, Markdown for humans).
package report

import (
	"time"
)

// Run status values.
const (
	StatusRunning         = "running"
	StatusCompleted       = "completed"
	StatusAlreadyComplete = "already-complete"
	StatusNoLessons       = "no-lessons"
	StatusCancelled       = "cancelled"
	StatusFailed          = "failed"
)

// LessonResult records the media step of one visited lesson.
type LessonResult struct {
	ID       string            `json:"id"`
	Title    string            `json:"title,omitempty"`
	Outcome  string            `json:"outcome,omitempty"`
	Skipped  bool              `json:"skipped,omitempty"`
	Duration time.Duration     `json:"duration"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RunSummary accumulates one run's results. It is not safe for concurrent
// use; the run model is a single cooperative control flow.
type RunSummary struct {
	CourseURL string         `json:"course_url"`
	Status    string         `json:"status"`
	Error     string         `json:"error,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	Duration  time.Duration  `json:"duration"`
	Lessons   []LessonResult `json:"lessons"`
}

// NewRunSummary creates a summary for a run starting now.
func NewRunSummary(courseURL string) *RunSummary {
	return &RunSummary{
		CourseURL: courseURL,
		Status:    StatusRunning,
		StartTime: time.Now(),
	}
}

// AddLesson appends one lesson result.
func (s *RunSummary) AddLesson(r LessonResult) {
	s.Lessons = append(s.Lessons, r)
}

// Finish stamps the terminal status. Calling it again overwrites the status;
// the last writer wins, which lets a caller downgrade "completed" to
// "failed" when artifact writing uncovers a broken page.
func (s *RunSummary) Finish(status string, err error) {
	s.Status = status
	if err != nil {
		s.Error = err.Error()
	}
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// Counts tallies lessons by how their media step ended.
func (s *RunSummary) Counts() (ended, skipped, other int) {
	for _, l := range s.Lessons {
		switch {
		case l.Skipped:
			skipped++
		case l.Outcome == "ended":
			ended++
		default:
			other++
		}
	}
	return ended, skipped, other
}
