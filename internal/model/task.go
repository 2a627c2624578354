package model

// Task represents a mission on the checklist
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// StatusMark returns the checkbox used when printing a task
func (t Task) StatusMark() string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}
