// Package tasks implements the ordered mission checklist. Every operation
// returns a fresh List and never modifies its receiver, so callers can keep
// the previous value as a snapshot.
package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dori/habitpet/internal/model"
)

var (
	ErrEmptyText = errors.New("task text is required")
	ErrNotFound  = errors.New("task not found")
	ErrIndex     = errors.New("task index out of range")
)

// List is an ordered task list
type List []model.Task

// Initial returns the list a fresh install starts with
func Initial() List {
	return List{{ID: 1, Text: "Drink water"}}
}

// Clone returns a copy that shares nothing with l
func (l List) Clone() List {
	if l == nil {
		return List{}
	}
	return append(List(nil), l...)
}

// Find returns the index of the task with the given id, or -1
func (l List) Find(id int64) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Completed returns how many tasks are done
func (l List) Completed() int {
	n := 0
	for _, t := range l {
		if t.Completed {
			n++
		}
	}
	return n
}

// NextID derives an id from the creation time, bumped past the current
// maximum when the clock has not moved (or went backwards).
func (l List) NextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range l {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// Add appends a new task. Whitespace-only text is rejected.
func (l List) Add(text string, now time.Time) (List, model.Task, error) {
	if strings.TrimSpace(text) == "" {
		return l, model.Task{}, ErrEmptyText
	}
	task := model.Task{ID: l.NextID(now), Text: text}
	out := append(l.Clone(), task)
	return out, task, nil
}

// Toggle flips completion and returns the task's new state
func (l List) Toggle(id int64) (List, model.Task, error) {
	i := l.Find(id)
	if i < 0 {
		return l, model.Task{}, fmt.Errorf("toggle %d: %w", id, ErrNotFound)
	}
	out := l.Clone()
	out[i].Completed = !out[i].Completed
	return out, out[i], nil
}

// Remove deletes a task
func (l List) Remove(id int64) (List, error) {
	i := l.Find(id)
	if i < 0 {
		return l, fmt.Errorf("remove %d: %w", id, ErrNotFound)
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, nil
}

// ClearCompleted drops every completed task and reports how many went away.
// XP already earned is kept.
func (l List) ClearCompleted() (List, int) {
	out := make(List, 0, len(l))
	for _, t := range l {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out, len(l) - len(out)
}

// Reorder moves the task at from to position to, shifting the rest.
// Dropping an item onto its own slot is a no-op.
func (l List) Reorder(from, to int) (List, error) {
	if from < 0 || from >= len(l) || to < 0 || to >= len(l) {
		return l, fmt.Errorf("reorder %d -> %d: %w", from, to, ErrIndex)
	}
	if from == to {
		return l, nil
	}
	out := l.Clone()
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}
