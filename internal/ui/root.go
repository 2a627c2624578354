package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/habitpet/internal/app"
	"github.com/dori/habitpet/internal/model"
	"github.com/dori/habitpet/internal/progress"
	"github.com/dori/habitpet/internal/ui/theme"
	"github.com/dori/habitpet/internal/ui/views"
	"github.com/dori/habitpet/internal/update"
)

// cardWidth keeps the widget narrow like a desktop gadget
const cardWidth = 48

// RootModel is the main application model that manages screens
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	screen      Screen
	petView     views.PetView
	taskView    views.TaskView
	libraryView views.LibraryView

	// notice is the pending update notice, nil when there is none
	notice *update.Notice

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	m := RootModel{
		app:         application,
		keys:        DefaultKeyMap(),
		help:        h,
		screen:      ScreenHome,
		petView:     views.NewPetView(application),
		taskView:    views.NewTaskView(application),
		libraryView: views.NewLibraryView(application),
	}
	m.syncTheme()
	return m
}

// Init starts the one-shot update check
func (m RootModel) Init() tea.Cmd {
	if !m.app.Config.CheckUpdates {
		return nil
	}
	return m.fetchUpdate
}

// fetchUpdate runs off the UI goroutine and only touches the network
func (m RootModel) fetchUpdate() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), m.app.Config.UpdateTimeout)
	defer cancel()
	desc, err := m.app.Updates.Fetch(ctx)
	return UpdateFetchedMsg{Descriptor: desc, Err: err}
}

// isInputMode reports whether the current screen owns the keyboard
func (m RootModel) isInputMode() bool {
	switch m.screen {
	case ScreenHome:
		return m.taskView.IsInputMode()
	case ScreenLibrary:
		return m.libraryView.IsInputMode()
	}
	return false
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	root := next.(RootModel)
	root.syncTheme()
	return root, cmd
}

func (m RootModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		inner := min(cardWidth, m.width) - 6
		m.petView = m.petView.SetSize(inner)
		m.taskView = m.taskView.SetSize(inner, max(3, m.height-24))
		m.libraryView = m.libraryView.SetSize(inner, m.height-6)
		return m, nil

	case UpdateFetchedMsg:
		if msg.Err != nil {
			m.app.Log.Printf("update check: %v", msg.Err)
			return m, nil
		}
		if n, ok := m.app.Updates.Evaluate(msg.Descriptor); ok {
			m.notice = &n
		}
		return m, nil

	case views.ReactionMsg:
		var cmd tea.Cmd
		m.petView, cmd = m.petView.React(msg.Reaction)
		return m, cmd

	case views.StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case views.ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case views.BackMsg:
		m.screen = ScreenHome
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Ticks for the pet panel arrive whatever the screen
	var cmds []tea.Cmd
	pv, cmd := m.petView.Update(msg)
	m.petView = pv.(views.PetView)
	cmds = append(cmds, cmd)

	switch m.screen {
	case ScreenHome:
		tv, cmd := m.taskView.Update(msg)
		m.taskView = tv.(views.TaskView)
		cmds = append(cmds, cmd)
	case ScreenLibrary:
		lv, cmd := m.libraryView.Update(msg)
		m.libraryView = lv.(views.LibraryView)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear status/error on any keypress
	m.statusMsg = ""
	m.errorMsg = ""

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The level-up banner swallows the first key
	if m.petView.HasBanner() {
		m.petView = m.petView.DismissBanner()
		return m, nil
	}

	inputMode := m.isInputMode()

	if !inputMode {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			if m.screen == ScreenHelp {
				m.screen = ScreenHome
			} else {
				m.screen = ScreenHelp
			}
			m.help.ShowAll = m.screen == ScreenHelp
			return m, nil

		case key.Matches(msg, m.keys.ThemeCycle):
			return m, m.cycleTheme()

		case m.notice != nil && key.Matches(msg, m.keys.OpenUpdate):
			version := m.notice.Version
			m.notice = nil
			if err := m.app.OpenDistribution(version); err != nil {
				m.errorMsg = err.Error()
			}
			return m, nil

		case m.notice != nil && key.Matches(msg, m.keys.DismissUpdate):
			version := m.notice.Version
			m.notice = nil
			if err := m.app.AcknowledgeUpdate(version); err != nil {
				m.errorMsg = err.Error()
			}
			return m, nil
		}
	}

	switch m.screen {
	case ScreenHelp:
		if key.Matches(msg, m.keys.Back) {
			m.screen = ScreenHome
			m.help.ShowAll = false
		}
		return m, nil

	case ScreenLibrary:
		lv, cmd := m.libraryView.Update(msg)
		m.libraryView = lv.(views.LibraryView)
		return m, cmd
	}

	if !inputMode {
		switch {
		case key.Matches(msg, m.keys.Poke):
			var cmd tea.Cmd
			m.petView, cmd = m.petView.React(m.app.Poke())
			return m, cmd

		case key.Matches(msg, m.keys.Library):
			m.screen = ScreenLibrary
			m.libraryView = m.libraryView.Focus()
			return m, nil
		}
	}

	tv, cmd := m.taskView.Update(msg)
	m.taskView = tv.(views.TaskView)
	return m, cmd
}

// cycleTheme moves the active pet to the next palette
func (m *RootModel) cycleTheme() tea.Cmd {
	ids := model.ThemeIDs()
	current := m.app.ActivePet().ThemeID
	next := ids[0]
	for i, id := range ids {
		if id == current {
			next = ids[(i+1)%len(ids)]
		}
	}
	if err := m.app.SetTheme(next); err != nil {
		m.errorMsg = err.Error()
		return nil
	}
	m.statusMsg = fmt.Sprintf("Theme: %s", next)
	return nil
}

// syncTheme follows the active pet's palette unless config pins one
func (m RootModel) syncTheme() {
	id := m.app.ActivePet().ThemeID
	if m.app.Config.Theme != "" {
		id = model.ThemeID(m.app.Config.Theme)
	}
	theme.SetTheme(theme.ForPet(id))
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	styles := theme.Current.Styles
	width := min(cardWidth, m.width)

	var sections []string
	sections = append(sections, m.renderHeader(width))

	if m.notice != nil {
		sections = append(sections, m.renderNotice(width))
	}

	var content string
	switch m.screen {
	case ScreenLibrary:
		content = m.libraryView.View()
	case ScreenHelp:
		content = m.renderHelp()
	default:
		content = m.petView.View() + "\n\n" + m.taskView.View()
	}
	sections = append(sections, styles.Panel.Width(width-2).Render(content))

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader(width int) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("habitpet")
	right := lipgloss.NewStyle().Foreground(t.Subtle).Padding(0, 1).Render(t.Name)
	if m.screen != ScreenHome {
		title += lipgloss.NewStyle().Foreground(t.Subtle).Render(fmt.Sprintf("[%s]", m.screen))
	}

	gap := max(0, width-lipgloss.Width(title)-lipgloss.Width(right))
	return title + strings.Repeat(" ", gap) + right
}

// renderNotice renders the update banner
func (m RootModel) renderNotice(width int) string {
	styles := theme.Current.Styles
	body := fmt.Sprintf("Version %s is out!", m.notice.Version)
	if m.notice.Message != "" {
		body += "\n" + m.notice.Message
	}
	body += "\n" + styles.HelpKey.Render("o") + styles.HelpDesc.Render(" download  ") +
		styles.HelpKey.Render("x") + styles.HelpDesc.Render(" dismiss")
	return styles.Notice.Width(width - 2).Render(body)
}

// renderFooter renders the status line and key hints
func (m RootModel) renderFooter() string {
	t := theme.Current.Theme

	var lines []string
	if m.errorMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg))
	} else if m.statusMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg))
	}

	switch {
	case m.isInputMode():
		styles := theme.Current.Styles
		lines = append(lines, styles.HelpKey.Render("enter")+styles.HelpDesc.Render(" confirm  ")+
			styles.HelpKey.Render("esc")+styles.HelpDesc.Render(" cancel"))
	case m.screen == ScreenLibrary:
		lines = append(lines, m.libraryHints())
	case m.screen == ScreenHome:
		lines = append(lines, m.help.View(m.keys))
	}

	return strings.Join(lines, "\n")
}

func (m RootModel) libraryHints() string {
	styles := theme.Current.Styles
	hint := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")
	return hint("enter", "raise") + sep + hint("a", "adopt") + sep + hint("d", "goodbye") + sep + hint("n", "name") + "\n" +
		hint("t", "theme") + sep + hint("i", "art") + sep + hint("m", "lines") + sep + hint("I/e", "import/export") + sep + hint("esc", "back")
}

// renderHelp renders the help screen
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles
	var b strings.Builder
	b.WriteString(styles.Title.Render("habitpet help"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(styles.Label.Render(fmt.Sprintf("Each finished mission gives %s %d XP.", m.app.ActivePet().Name, progress.TaskPoints)))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render("Press ? or esc to close"))
	return b.String()
}
