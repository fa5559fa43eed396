package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskIDs_Positional(t *testing.T) {
	r := &Roadmap{
		ActionableTaskChecklist: []ChecklistItem{
			{Task: "Register GST"},
			{Task: "Open current account"},
			{Task: "File FSSAI application"},
		},
	}

	assert.Equal(t, []string{"task-0", "task-1", "task-2"}, TaskIDs(r))
}

func TestToggleTask_DoubleToggleRestoresSet(t *testing.T) {
	original := []string{"task-0", "task-2"}

	once := ToggleTask(original, "task-1")
	assert.ElementsMatch(t, []string{"task-0", "task-1", "task-2"}, once)

	twice := ToggleTask(once, "task-1")
	assert.ElementsMatch(t, original, twice)

	// Input slice is never mutated.
	assert.Equal(t, []string{"task-0", "task-2"}, original)
}

func TestToggleTask_RemovesExisting(t *testing.T) {
	got := ToggleTask([]string{"task-0"}, "task-0")
	assert.Empty(t, got)
}
