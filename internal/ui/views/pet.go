package views

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	xpbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/habitpet/internal/app"
	"github.com/dori/habitpet/internal/model"
	"github.com/dori/habitpet/internal/progress"
	"github.com/dori/habitpet/internal/ui/theme"
)

const (
	SpeechDuration = 3 * time.Second
	BounceDuration = 600 * time.Millisecond
)

// Each tick carries the generation it was scheduled for; a newer reaction
// bumps the generation and the stale tick is ignored.
type speechDoneMsg struct{ gen int }
type bounceDoneMsg struct{ gen int }

// stage glyphs stand in for artwork the terminal cannot draw
var stages = []struct {
	from  int
	glyph string
}{
	{1, "(•ᴗ•)"},
	{4, "ʕ•ᴥ•ʔ"},
	{7, "(=^･ω･^=)"},
	{model.MaxLevel, "♛(^▽^)♛"},
}

func glyph(level int) string {
	g := stages[0].glyph
	for _, s := range stages {
		if level >= s.from {
			g = s.glyph
		}
	}
	return g
}

// PetView draws the active pet: artwork, speech bubble and XP bar
type PetView struct {
	app   *app.App
	width int
	bar   xpbar.Model

	line      string
	speechGen int
	bouncing  bool
	bounceGen int

	// levelUp is the level shown in the banner, 0 when hidden
	levelUp int
}

// NewPetView creates the pet panel
func NewPetView(application *app.App) PetView {
	return PetView{
		app: application,
		bar: xpbar.New(xpbar.WithSolidFill(string(theme.Current.Theme.XPFill)), xpbar.WithoutPercentage()),
	}
}

// Init initializes the pet view
func (v PetView) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions
func (v PetView) SetSize(width int) PetView {
	v.width = width
	v.bar.Width = max(10, width-12)
	return v
}

// React shows a reaction and schedules its revert
func (v PetView) React(r app.Reaction) (PetView, tea.Cmd) {
	var cmds []tea.Cmd
	if r.Line != "" {
		v.line = r.Line
		v.speechGen++
		gen := v.speechGen
		cmds = append(cmds, tea.Tick(SpeechDuration, func(time.Time) tea.Msg { return speechDoneMsg{gen: gen} }))
	}
	if r.Bounce {
		v.bouncing = true
		v.bounceGen++
		gen := v.bounceGen
		cmds = append(cmds, tea.Tick(BounceDuration, func(time.Time) tea.Msg { return bounceDoneMsg{gen: gen} }))
	}
	if r.LevelUp > 0 {
		v.levelUp = r.LevelUp
	}
	return v, tea.Batch(cmds...)
}

// Update handles the revert ticks
func (v PetView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case speechDoneMsg:
		if msg.gen == v.speechGen {
			v.line = ""
		}
	case bounceDoneMsg:
		if msg.gen == v.bounceGen {
			v.bouncing = false
		}
	}
	return v, nil
}

// HasBanner reports whether the level-up banner is showing
func (v PetView) HasBanner() bool {
	return v.levelUp > 0
}

// DismissBanner hides the level-up banner
func (v PetView) DismissBanner() PetView {
	v.levelUp = 0
	return v
}

// Speech returns the line currently in the bubble
func (v PetView) Speech() string {
	return v.line
}

// Bouncing reports whether the bounce animation is playing
func (v PetView) Bouncing() bool {
	return v.bouncing
}

// View renders the pet panel
func (v PetView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme
	pet := v.app.ActivePet()

	var b strings.Builder

	// Header: name and level badge
	badge := fmt.Sprintf("Lv.%d", pet.Level)
	if pet.IsMaxLevel() {
		badge = "MAX"
	}
	b.WriteString(styles.Title.Render(pet.Name))
	b.WriteString(" ")
	b.WriteString(styles.Level.Render(badge))
	b.WriteString("\n")

	// Speech bubble keeps its line even when empty so the pet does not jump
	if v.line != "" {
		b.WriteString(styles.Bubble.Render(v.line))
	} else {
		b.WriteString("\n\n")
	}
	b.WriteString("\n")

	// Bouncing lifts the pet by one line
	art := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	if v.bouncing {
		b.WriteString(art.Render(glyph(pet.Level)))
		b.WriteString("\n\n")
	} else {
		b.WriteString("\n")
		b.WriteString(art.Render(glyph(pet.Level)))
		b.WriteString("\n")
	}

	b.WriteString(styles.Label.Render(artworkLabel(pet)))
	b.WriteString("\n\n")

	// XP bar
	pct := progress.Percent(pet.Level, pet.CurrentXP)
	bar := v.bar
	bar.FullColor = string(t.XPFill)
	bar.EmptyColor = string(t.XPEmpty)
	xp := fmt.Sprintf("%d/%d XP", pet.CurrentXP, progress.LevelCap(pet.Level))
	b.WriteString(bar.ViewAs(float64(pct) / 100))
	b.WriteString(" ")
	b.WriteString(styles.Label.Render(fmt.Sprintf("%3d%%", pct)))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render(xp))

	if v.levelUp > 0 {
		msg := fmt.Sprintf("Level up! %s grew to level %d", pet.Name, v.levelUp)
		if v.levelUp >= model.MaxLevel {
			msg = fmt.Sprintf("Max level! Congratulations, %s!", pet.Name)
		}
		b.WriteString("\n\n")
		b.WriteString(styles.Banner.Render(msg + "\n" + styles.Label.Render("press any key")))
	}

	return b.String()
}

// artworkLabel describes the image a graphical client would show
func artworkLabel(pet model.Pet) string {
	level, image, ok := pet.EffectiveImage()
	if !ok {
		if pet.MissingBaseline() {
			return "no artwork yet (library: i)"
		}
		return ""
	}
	if strings.HasPrefix(image, "data:") {
		mime, _, _ := strings.Cut(strings.TrimPrefix(image, "data:"), ";")
		return fmt.Sprintf("artwork Lv.%d (%s)", level, mime)
	}
	return fmt.Sprintf("artwork Lv.%d (%s)", level, filepath.Base(image))
}
