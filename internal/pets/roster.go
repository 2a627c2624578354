// Package pets manages the pet roster: adoption, deletion, switching, import
// and export, plus the per-pet setters. A Roster is a value; every method
// returns an updated copy and leaves the receiver untouched.
package pets

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dori/habitpet/internal/model"
)

var (
	ErrNotFound     = errors.New("pet not found")
	ErrLastPet      = errors.New("at least one pet has to stay")
	ErrInvalidLevel = fmt.Errorf("artwork level must be between 1 and %d", model.MaxLevel)
	ErrInvalidTheme = errors.New("unknown theme")
	ErrEmptyArtwork = errors.New("artwork is empty")
	ErrNotAnImage   = errors.New("file is not an image")
)

const (
	// GreetingLine is said by a freshly adopted pet.
	GreetingLine = "Hi! Please take good care of me!"
	// ArrivalLine is said by a pet that was switched in.
	ArrivalLine = "I'm here!"
)

// Roster is the pet collection plus the active pointer
type Roster struct {
	Pets     []model.Pet
	ActiveID string
}

// Initial returns the roster a fresh install starts with
func Initial() Roster {
	return Roster{
		Pets: []model.Pet{{
			ID:        "1",
			Name:      "Mochi",
			ThemeID:   model.DefaultTheme,
			Level:     1,
			CurrentXP: 0,
			Images:    model.Images{},
			Dialogues: model.DefaultDialogues(),
		}},
		ActiveID: "1",
	}
}

// Clone copies the pet slice; pets themselves are copied on write
func (r Roster) Clone() Roster {
	r.Pets = append([]model.Pet(nil), r.Pets...)
	return r
}

// Find returns the index of a pet, or -1
func (r Roster) Find(id string) int {
	for i, p := range r.Pets {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the pet with the given id
func (r Roster) Get(id string) (model.Pet, error) {
	i := r.Find(id)
	if i < 0 {
		return model.Pet{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return r.Pets[i].Clone(), nil
}

// Active returns the active pet. A dangling pointer resolves to the first pet.
func (r Roster) Active() model.Pet {
	if i := r.Find(r.ActiveID); i >= 0 {
		return r.Pets[i].Clone()
	}
	if len(r.Pets) == 0 {
		return Initial().Pets[0]
	}
	return r.Pets[0].Clone()
}

// Resolve repairs the roster invariants: never empty, active id points at a
// member.
func (r Roster) Resolve() Roster {
	if len(r.Pets) == 0 {
		return Initial()
	}
	if r.Find(r.ActiveID) < 0 {
		r.ActiveID = r.Pets[0].ID
	}
	return r
}

// DefaultName returns the first "New Friend N" not already taken,
// starting from the roster size.
func (r Roster) DefaultName() string {
	taken := make(map[string]bool, len(r.Pets))
	for _, p := range r.Pets {
		taken[p.Name] = true
	}
	for n := len(r.Pets) + 1; ; n++ {
		name := fmt.Sprintf("New Friend %d", n)
		if !taken[name] {
			return name
		}
	}
}

// Create adopts a new pet and makes it active
func (r Roster) Create() (Roster, model.Pet) {
	pet := model.Pet{
		ID:        uuid.New().String(),
		Name:      r.DefaultName(),
		ThemeID:   model.DefaultTheme,
		Level:     1,
		CurrentXP: 0,
		Images:    model.Images{},
		Dialogues: model.DefaultDialogues(),
	}
	out := r.Clone()
	out.Pets = append(out.Pets, pet)
	out.ActiveID = pet.ID
	return out, pet.Clone()
}

// Delete removes a pet. The sole remaining pet cannot be deleted. When the
// active pet goes, the first remaining pet becomes active.
func (r Roster) Delete(id string) (Roster, error) {
	i := r.Find(id)
	if i < 0 {
		return r, fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	if len(r.Pets) <= 1 {
		return r, ErrLastPet
	}
	out := Roster{ActiveID: r.ActiveID, Pets: make([]model.Pet, 0, len(r.Pets)-1)}
	out.Pets = append(out.Pets, r.Pets[:i]...)
	out.Pets = append(out.Pets, r.Pets[i+1:]...)
	if out.ActiveID == id {
		out.ActiveID = out.Pets[0].ID
	}
	return out, nil
}

// Switch makes another pet active
func (r Roster) Switch(id string) (Roster, error) {
	if r.Find(id) < 0 {
		return r, fmt.Errorf("switch %s: %w", id, ErrNotFound)
	}
	r.ActiveID = id
	return r, nil
}

// update applies fn to a copy of one pet
func (r Roster) update(id string, fn func(p *model.Pet) error) (Roster, error) {
	i := r.Find(id)
	if i < 0 {
		return r, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	out := r.Clone()
	pet := out.Pets[i].Clone()
	if err := fn(&pet); err != nil {
		return r, err
	}
	out.Pets[i] = pet
	return out, nil
}

// SetProgress stores the result of a progression step
func (r Roster) SetProgress(id string, level, xp int) (Roster, error) {
	return r.update(id, func(p *model.Pet) error {
		p.Level = level
		p.CurrentXP = xp
		return nil
	})
}

// SetArtwork replaces the artwork of exactly one level slot. An empty image
// clears the slot.
func (r Roster) SetArtwork(id string, level int, image string) (Roster, error) {
	if level < 1 || level > model.MaxLevel {
		return r, ErrInvalidLevel
	}
	return r.update(id, func(p *model.Pet) error {
		if p.Images == nil {
			p.Images = model.Images{}
		}
		if image == "" {
			delete(p.Images, level)
			return nil
		}
		p.Images[level] = image
		return nil
	})
}

// ClearArtwork empties one level slot
func (r Roster) ClearArtwork(id string, level int) (Roster, error) {
	return r.SetArtwork(id, level, "")
}

// SetTheme switches the pet's palette
func (r Roster) SetTheme(id string, theme model.ThemeID) (Roster, error) {
	if !theme.IsValid() {
		return r, fmt.Errorf("%q: %w", theme, ErrInvalidTheme)
	}
	return r.update(id, func(p *model.Pet) error {
		p.ThemeID = theme
		return nil
	})
}

// SetName renames the pet
func (r Roster) SetName(id, name string) (Roster, error) {
	return r.update(id, func(p *model.Pet) error {
		p.Name = name
		return nil
	})
}

// SetDialogueLines replaces the lines for one mood
func (r Roster) SetDialogueLines(id string, mood model.Mood, lines []string) (Roster, error) {
	if _, err := model.ParseMood(string(mood)); err != nil {
		return r, err
	}
	return r.update(id, func(p *model.Pet) error {
		p.Dialogues = p.Dialogues.With(mood, lines)
		return nil
	})
}
