// Package views holds the visible task list and renders the widget page.
package views

import "todo-widget/app/models"

// Entry is one visible task.
type Entry struct {
	ID        string
	Value     string
	Completed bool
}

// Registry is the ordered list of visible task entries. It does not check for
// duplicate ids or values; callers validate first.
type Registry struct {
	entries []Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Render appends an entry.
func (r *Registry) Render(id, value string, completed bool) {
	r.entries = append(r.entries, Entry{ID: id, Value: value, Completed: completed})
}

// RemoveEntry removes the entry with the given id. The per-entry mutators
// serve callers that patch the view in place instead of calling Reset.
func (r *Registry) RemoveEntry(id string) {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// ToggleCompleted flips the completed marker of the entry with the given id.
func (r *Registry) ToggleCompleted(id string) {
	if e := r.find(id); e != nil {
		e.Completed = !e.Completed
	}
}

// SetText replaces the text of the entry with the given id.
func (r *Registry) SetText(id, value string) {
	if e := r.find(id); e != nil {
		e.Value = value
	}
}

// Count is the number of visible entries.
func (r *Registry) Count() int {
	return len(r.entries)
}

// Find returns the entry with the given id.
func (r *Registry) Find(id string) (Entry, bool) {
	if e := r.find(id); e != nil {
		return *e, true
	}
	return Entry{}, false
}

// Entries returns a copy of the visible entries in order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Reset rebuilds the list from stored tasks, keeping their order.
func (r *Registry) Reset(tasks []models.Task) {
	r.entries = make([]Entry, 0, len(tasks))
	for _, t := range tasks {
		r.Render(t.ID, t.Value, t.Completed)
	}
}

// Clear removes every entry.
func (r *Registry) Clear() {
	r.entries = nil
}

// ContainerVisible reports whether the list container is shown.
func (r *Registry) ContainerVisible() bool {
	return r.Count() > 0
}

// ClearVisible reports whether the "clear all" control is shown.
func (r *Registry) ClearVisible() bool {
	return r.Count() > 0
}

func (r *Registry) find(id string) *Entry {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return &r.entries[i]
		}
	}
	return nil
}
