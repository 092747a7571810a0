package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/coursepilot/pkg/autoplay"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected autoplay.Status
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: autoplay.StatusFound,
		},
		{
			name:     "timeout error",
			err:      errors.New("TimeoutError: Timeout 5000ms exceeded"),
			expected: autoplay.StatusTimedOut,
		},
		{
			name:     "lowercase timeout",
			err:      errors.New("waiting for function failed: timeout"),
			expected: autoplay.StatusTimedOut,
		},
		{
			name:     "other driver error",
			err:      errors.New("element is not attached to the DOM"),
			expected: autoplay.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusFromError(tt.err))
		})
	}
}
