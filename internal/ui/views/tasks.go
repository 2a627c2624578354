package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/habitpet/internal/app"
	"github.com/dori/habitpet/internal/ui/theme"
)

// TaskMode represents the current input mode of the task list
type TaskMode int

const (
	TaskModeNormal TaskMode = iota
	TaskModeAdd
	TaskModeConfirmClear
)

// TaskView displays the mission checklist
type TaskView struct {
	app    *app.App
	width  int
	height int

	cursor       int
	scrollOffset int

	mode  TaskMode
	input textinput.Model
}

// NewTaskView creates a new task list
func NewTaskView(application *app.App) TaskView {
	ti := textinput.New()
	ti.Placeholder = "New mission..."
	ti.CharLimit = 256

	return TaskView{
		app:   application,
		input: ti,
	}
}

// Init initializes the task view
func (v TaskView) Init() tea.Cmd {
	return nil
}

// IsInputMode returns true when the view is capturing keys for itself
func (v TaskView) IsInputMode() bool {
	return v.mode != TaskModeNormal
}

// SetSize updates the view dimensions
func (v TaskView) SetSize(width, height int) TaskView {
	v.width = width
	v.height = height
	v.input.Width = width - 6
	return v
}

func (v TaskView) visibleCount() int {
	return max(1, v.height-3)
}

func (v *TaskView) clampCursor() {
	n := len(v.app.State().Tasks)
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}

	visible := v.visibleCount()
	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// Update handles messages for the task view
func (v TaskView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch v.mode {
		case TaskModeAdd:
			return v.handleAddMode(msg)
		case TaskModeConfirmClear:
			return v.handleClearConfirm(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	if v.mode == TaskModeAdd {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleNormalMode handles keypresses in normal mode
func (v TaskView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := v.app.State().Tasks

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(list)-1 {
			v.cursor++
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = len(list) - 1

	case "a":
		v.mode = TaskModeAdd
		v.input.SetValue("")
		cmd := v.input.Focus()
		return v, cmd

	case " ", "tab", "enter":
		if len(list) == 0 {
			return v, nil
		}
		_, r, err := v.app.ToggleTask(list[v.cursor].ID)
		if err != nil {
			return v, fail(err)
		}
		return v, react(r)

	case "d", "delete":
		if len(list) == 0 {
			return v, nil
		}
		if err := v.app.RemoveTask(list[v.cursor].ID); err != nil {
			return v, fail(err)
		}

	case "K", "shift+up":
		if v.cursor > 0 {
			if err := v.app.ReorderTask(v.cursor, v.cursor-1); err != nil {
				return v, fail(err)
			}
			v.cursor--
		}
	case "J", "shift+down":
		if v.cursor < len(list)-1 {
			if err := v.app.ReorderTask(v.cursor, v.cursor+1); err != nil {
				return v, fail(err)
			}
			v.cursor++
		}

	case "c":
		_, err := v.app.ClearCompleted(false)
		if errors.Is(err, app.ErrConfirmationRequired) {
			v.mode = TaskModeConfirmClear
			return v, nil
		}
		if err != nil {
			return v, fail(err)
		}
		return v, status("Nothing to clear")
	}

	v.clampCursor()
	return v, nil
}

// handleAddMode handles keypresses while typing a new task
func (v TaskView) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(v.input.Value())
		v.mode = TaskModeNormal
		v.input.Blur()
		if text == "" {
			return v, nil
		}
		if _, err := v.app.AddTask(text); err != nil {
			return v, fail(err)
		}
		v.cursor = len(v.app.State().Tasks) - 1
		v.clampCursor()
		return v, nil
	case "esc":
		v.mode = TaskModeNormal
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleClearConfirm handles the y/n prompt for clearing completed tasks
func (v TaskView) handleClearConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = TaskModeNormal
		n, err := v.app.ClearCompleted(true)
		if err != nil {
			return v, fail(err)
		}
		v.clampCursor()
		return v, status(fmt.Sprintf("Cleared %d completed mission(s), XP kept", n))
	case "n", "N", "esc":
		v.mode = TaskModeNormal
	}
	return v, nil
}

// View renders the task list
func (v TaskView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme
	list := v.app.State().Tasks

	var b strings.Builder

	title := styles.PanelTitle.Render("Missions")
	count := styles.Label.Render(fmt.Sprintf("%d/%d", list.Completed(), len(list)))
	b.WriteString(title + " " + count)
	b.WriteString("\n")

	if v.mode == TaskModeAdd {
		b.WriteString(styles.InputFocused.Render(v.input.View()))
		b.WriteString("\n")
	}

	if v.mode == TaskModeConfirmClear {
		b.WriteString(styles.Confirm.Render(fmt.Sprintf("Clear %d completed mission(s)? XP is kept. (y/n)", list.Completed())))
		b.WriteString("\n")
	}

	if len(list) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.Subtle).Italic(true)
		b.WriteString(empty.Render("No missions yet. Press a to add one."))
		return b.String()
	}

	end := min(len(list), v.scrollOffset+v.visibleCount())
	for i := v.scrollOffset; i < end; i++ {
		task := list[i]
		style := styles.TaskNormal
		if task.Completed {
			style = styles.TaskDone
		}
		if i == v.cursor && v.mode == TaskModeNormal {
			style = style.Background(t.Highlight)
		}

		mark := lipgloss.NewStyle().Foreground(t.Subtle).Render(task.StatusMark())
		if task.Completed {
			mark = lipgloss.NewStyle().Foreground(t.Success).Render(task.StatusMark())
		}

		text := task.Text
		if w := v.width - 8; w > 3 && lipgloss.Width(text) > w {
			text = truncate(text, w)
		}
		b.WriteString(mark + style.Render(text))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// truncate shortens s to width cells, ending with an ellipsis
func truncate(s string, width int) string {
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
