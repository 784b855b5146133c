package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/offloadr/connect-api/internal/domain"
)

func tasks(completed ...bool) []domain.Task {
	out := make([]domain.Task, 0, len(completed))
	for _, done := range completed {
		out = append(out, domain.Task{Completed: done})
	}
	return out
}

func TestDisplayed(t *testing.T) {
	tests := []struct {
		name   string
		tasks  []domain.Task
		stored int
		want   int
	}{
		{name: "no tasks falls back to stored", tasks: nil, stored: 42, want: 42},
		{name: "no tasks stored clamped low", tasks: nil, stored: -5, want: 0},
		{name: "no tasks stored clamped high", tasks: nil, stored: 140, want: 100},
		{name: "zero of one", tasks: tasks(false), stored: 90, want: 0},
		{name: "one of one", tasks: tasks(true), stored: 0, want: 100},
		{name: "one of three rounds", tasks: tasks(true, false, false), stored: 0, want: 33},
		{name: "two of three rounds up", tasks: tasks(true, true, false), stored: 0, want: 67},
		{name: "one of two", tasks: tasks(true, false), stored: 0, want: 50},
		{name: "tasks override stored", tasks: tasks(true, true, true, false), stored: 10, want: 75},
		{name: "half of six", tasks: tasks(true, true, true, false, false, false), stored: 0, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Displayed(tt.tasks, tt.stored))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-1))
	assert.Equal(t, 0, Clamp(0))
	assert.Equal(t, 55, Clamp(55))
	assert.Equal(t, 100, Clamp(100))
	assert.Equal(t, 100, Clamp(101))
}

func TestIsMilestone(t *testing.T) {
	for _, m := range Milestones {
		assert.True(t, IsMilestone(m), "%d should be a milestone", m)
	}
	for _, v := range []int{0, 1, 24, 26, 49, 51, 74, 76, 99} {
		assert.False(t, IsMilestone(v), "%d should not be a milestone", v)
	}
}
