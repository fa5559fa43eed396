package roadmap

import "fmt"

// TaskID returns the positional identifier for checklist position i.
// Identifiers are stable only as long as the checklist order is: reordering
// between generations invalidates previously stored ids.
func TaskID(i int) string {
	return fmt.Sprintf("task-%d", i)
}

// TaskIDs returns the full identifier set for a roadmap's checklist,
// in checklist order.
func TaskIDs(r *Roadmap) []string {
	ids := make([]string, len(r.ActionableTaskChecklist))
	for i := range r.ActionableTaskChecklist {
		ids[i] = TaskID(i)
	}
	return ids
}

// ToggleTask returns a new completed-set with id added if absent or removed
// if present. The input slice is not modified.
func ToggleTask(completed []string, id string) []string {
	out := make([]string, 0, len(completed)+1)
	found := false
	for _, c := range completed {
		if c == id {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
