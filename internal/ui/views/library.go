package views

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/habitpet/internal/app"
	"github.com/dori/habitpet/internal/model"
	"github.com/dori/habitpet/internal/pets"
	"github.com/dori/habitpet/internal/ui/theme"
)

// LibraryMode represents the current input mode of the pet library
type LibraryMode int

const (
	LibraryModeNormal LibraryMode = iota
	LibraryModeConfirmDelete
	LibraryModeRename
	LibraryModeArtwork
	LibraryModeImport
	LibraryModeExport
	LibraryModeLines
)

// prompt returns the label shown above a text input
func (m LibraryMode) prompt() string {
	switch m {
	case LibraryModeRename:
		return "Name"
	case LibraryModeArtwork:
		return "Artwork: <level> <image path> (level alone clears it)"
	case LibraryModeImport:
		return "Import pet file"
	case LibraryModeExport:
		return "Export to"
	default:
		return ""
	}
}

// LibraryView lists every pet and edits the active one
type LibraryView struct {
	app    *app.App
	width  int
	height int

	cursor int
	mode   LibraryMode
	input  textinput.Model
	lines  textarea.Model
	mood   model.Mood

	deleteID string
}

// NewLibraryView creates the pet library
func NewLibraryView(application *app.App) LibraryView {
	ti := textinput.New()
	ti.CharLimit = 1024

	ta := textarea.New()
	ta.Placeholder = "One line per row"
	ta.ShowLineNumbers = false

	return LibraryView{
		app:   application,
		input: ti,
		lines: ta,
		mood:  model.MoodNormal,
	}
}

// Init initializes the library view
func (v LibraryView) Init() tea.Cmd {
	return nil
}

// Focus puts the cursor on the active pet
func (v LibraryView) Focus() LibraryView {
	roster := v.app.State().Roster
	if i := roster.Find(roster.ActiveID); i >= 0 {
		v.cursor = i
	}
	v.mode = LibraryModeNormal
	return v
}

// IsInputMode returns true when the view is capturing keys for itself
func (v LibraryView) IsInputMode() bool {
	return v.mode != LibraryModeNormal
}

// SetSize updates the view dimensions
func (v LibraryView) SetSize(width, height int) LibraryView {
	v.width = width
	v.height = height
	v.input.Width = width - 6
	v.lines.SetWidth(width - 4)
	v.lines.SetHeight(max(3, min(8, height-10)))
	return v
}

// Update handles messages for the library view
func (v LibraryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch v.mode {
		case LibraryModeConfirmDelete:
			return v.handleDeleteConfirm(msg)
		case LibraryModeRename, LibraryModeArtwork, LibraryModeImport, LibraryModeExport:
			return v.handlePrompt(msg)
		case LibraryModeLines:
			return v.handleLines(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	var cmd tea.Cmd
	switch v.mode {
	case LibraryModeRename, LibraryModeArtwork, LibraryModeImport, LibraryModeExport:
		v.input, cmd = v.input.Update(msg)
	case LibraryModeLines:
		v.lines, cmd = v.lines.Update(msg)
	}
	return v, cmd
}

func (v LibraryView) startPrompt(mode LibraryMode, value string) (LibraryView, tea.Cmd) {
	v.mode = mode
	v.input.SetValue(value)
	v.input.CursorEnd()
	cmd := v.input.Focus()
	return v, cmd
}

// handleNormalMode handles keypresses in normal mode
func (v LibraryView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	roster := v.app.State().Roster
	active := v.app.ActivePet()
	if v.cursor >= len(roster.Pets) {
		v.cursor = len(roster.Pets) - 1
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(roster.Pets)-1 {
			v.cursor++
		}

	case "esc", "l":
		return v, func() tea.Msg { return BackMsg{} }

	case "enter", "s":
		id := roster.Pets[v.cursor].ID
		if id == roster.ActiveID {
			return v, nil
		}
		_, r, err := v.app.SwitchPet(id)
		if err != nil {
			return v, fail(err)
		}
		return v, react(r)

	case "a":
		pet, r := v.app.AdoptPet()
		v.cursor = len(v.app.State().Roster.Pets) - 1
		return v, tea.Batch(react(r), status("Welcome, "+pet.Name+"!"))

	case "d", "delete":
		id := roster.Pets[v.cursor].ID
		err := v.app.DeletePet(id, false)
		if errors.Is(err, app.ErrConfirmationRequired) {
			v.deleteID = id
			v.mode = LibraryModeConfirmDelete
			return v, nil
		}
		if err != nil {
			return v, fail(err)
		}

	case "t":
		next := nextTheme(active.ThemeID)
		if err := v.app.SetTheme(next); err != nil {
			return v, fail(err)
		}
		return v, status("Theme: " + string(next))

	case "n":
		return v.startPrompt(LibraryModeRename, active.Name)
	case "i":
		return v.startPrompt(LibraryModeArtwork, fmt.Sprintf("%d ", active.Level))
	case "I":
		return v.startPrompt(LibraryModeImport, "")
	case "e":
		return v.startPrompt(LibraryModeExport, exportName(active))

	case "m":
		v.mode = LibraryModeLines
		v.mood = model.MoodNormal
		v.lines.SetValue(strings.Join(active.Dialogues.Lines(v.mood), "\n"))
		cmd := v.lines.Focus()
		return v, cmd
	}
	return v, nil
}

// handleDeleteConfirm handles the y/n prompt for deleting a pet
func (v LibraryView) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = LibraryModeNormal
		err := v.app.DeletePet(v.deleteID, true)
		v.deleteID = ""
		if err != nil {
			return v, fail(err)
		}
		if n := len(v.app.State().Roster.Pets); v.cursor >= n {
			v.cursor = n - 1
		}
		return v, status("Said goodbye")
	case "n", "N", "esc":
		v.mode = LibraryModeNormal
		v.deleteID = ""
	}
	return v, nil
}

// handlePrompt handles the single-line inputs
func (v LibraryView) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = LibraryModeNormal
		v.input.Blur()
		return v, nil
	case "enter":
		value := strings.TrimSpace(v.input.Value())
		mode := v.mode
		v.mode = LibraryModeNormal
		v.input.Blur()
		if value == "" {
			return v, nil
		}
		return v.submit(mode, value)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v LibraryView) submit(mode LibraryMode, value string) (tea.Model, tea.Cmd) {
	switch mode {
	case LibraryModeRename:
		if err := v.app.SetName(value); err != nil {
			return v, fail(err)
		}
		return v, status("Renamed to " + value)

	case LibraryModeArtwork:
		levelText, path, _ := strings.Cut(value, " ")
		level, err := strconv.Atoi(levelText)
		if err != nil {
			return v, fail(pets.ErrInvalidLevel)
		}
		path = expandHome(strings.TrimSpace(path))
		if path == "" {
			if err := v.app.ClearArtwork(level); err != nil {
				return v, fail(err)
			}
			return v, status(fmt.Sprintf("Cleared Lv.%d artwork", level))
		}
		if err := v.app.SetArtworkFromFile(level, path); err != nil {
			return v, fail(err)
		}
		return v, status(fmt.Sprintf("Lv.%d artwork set", level))

	case LibraryModeImport:
		pet, err := v.app.ImportPetFile(expandHome(value))
		if err != nil {
			return v, fail(err)
		}
		v.cursor = len(v.app.State().Roster.Pets) - 1
		return v, status(pet.Name + " joined the family")

	case LibraryModeExport:
		path := expandHome(value)
		if err := v.app.ExportPetFile("", path); err != nil {
			return v, fail(err)
		}
		return v, status("Exported to " + path)
	}
	return v, nil
}

// handleLines edits one mood's dialogue; tab moves to the next mood
func (v LibraryView) handleLines(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = LibraryModeNormal
		v.lines.Blur()
		return v, nil
	case "ctrl+s":
		if err := v.app.SetDialogueText(v.mood, v.lines.Value()); err != nil {
			return v, fail(err)
		}
		return v, status(fmt.Sprintf("Saved %s lines", v.mood))
	case "tab":
		v.mood = nextMood(v.mood)
		v.lines.SetValue(strings.Join(v.app.ActivePet().Dialogues.Lines(v.mood), "\n"))
		return v, nil
	}

	var cmd tea.Cmd
	v.lines, cmd = v.lines.Update(msg)
	return v, cmd
}

// View renders the library
func (v LibraryView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme
	roster := v.app.State().Roster

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("Pet library"))
	b.WriteString(styles.Label.Render(fmt.Sprintf(" %d pet(s)", len(roster.Pets))))
	b.WriteString("\n\n")

	for i, pet := range roster.Pets {
		swatch := lipgloss.NewStyle().Foreground(theme.ForPet(pet.ThemeID).Primary).Render("●")
		level := fmt.Sprintf("Lv.%d", pet.Level)
		if pet.IsMaxLevel() {
			level = "MAX"
		}
		line := fmt.Sprintf("%s %-20s %-6s", swatch, pet.Name, level)
		if pet.ID == roster.ActiveID {
			line += lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(" raising")
		}
		style := styles.TaskNormal
		if i == v.cursor {
			style = styles.TaskSelected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	active := v.app.ActivePet()
	b.WriteString("\n")
	b.WriteString(styles.Label.Render(fmt.Sprintf("theme %s · artwork %s", active.ThemeID, artworkSlots(active))))
	b.WriteString("\n")

	switch v.mode {
	case LibraryModeConfirmDelete:
		name := v.deleteID
		if p, err := roster.Get(v.deleteID); err == nil {
			name = p.Name
		}
		b.WriteString("\n")
		b.WriteString(styles.Confirm.Render(fmt.Sprintf("Say goodbye to %s for good? This cannot be undone. (y/n)", name)))
	case LibraryModeRename, LibraryModeArtwork, LibraryModeImport, LibraryModeExport:
		b.WriteString("\n")
		b.WriteString(styles.Label.Render(v.mode.prompt()))
		b.WriteString("\n")
		b.WriteString(styles.InputFocused.Render(v.input.View()))
	case LibraryModeLines:
		b.WriteString("\n")
		b.WriteString(styles.Label.Render(fmt.Sprintf("%s lines · tab next mood · ctrl+s save · esc close", v.mood)))
		b.WriteString("\n")
		b.WriteString(v.lines.View())
	}

	return b.String()
}

// artworkSlots lists the populated levels, e.g. "1,4,7"
func artworkSlots(p model.Pet) string {
	levels := p.Images.Levels()
	if len(levels) == 0 {
		return "none"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}

func nextTheme(current model.ThemeID) model.ThemeID {
	ids := model.ThemeIDs()
	for i, id := range ids {
		if id == current {
			return ids[(i+1)%len(ids)]
		}
	}
	return model.DefaultTheme
}

func nextMood(current model.Mood) model.Mood {
	moods := model.Moods()
	for i, m := range moods {
		if m == current {
			return moods[(i+1)%len(moods)]
		}
	}
	return model.MoodNormal
}

func exportName(p model.Pet) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, p.Name)
	return name + ".json"
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
