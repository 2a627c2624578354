package app

import (
	"context"
	"fmt"
	"os"

	"github.com/dori/habitpet/internal/dialogue"
	"github.com/dori/habitpet/internal/model"
	"github.com/dori/habitpet/internal/pets"
	"github.com/dori/habitpet/internal/progress"
	"github.com/dori/habitpet/internal/update"
)

// Reaction is the pet's visible response to an action. The UI shows Line in
// a speech bubble and plays a bounce when Bounce is set.
type Reaction struct {
	Event progress.Event
	Mood  model.Mood
	Line  string
	// Bounce requests the short squash animation.
	Bounce bool
	// LevelUp is the level just reached, or 0.
	LevelUp int
}

// ActivePet returns a copy of the pet currently being raised
func (a *App) ActivePet() model.Pet {
	return a.state.Roster.Active()
}

func (a *App) say(pet model.Pet, mood model.Mood) string {
	line, _ := a.speech.Pick(pet.Dialogues, mood)
	return line
}

// Poke plays a normal line, as when the pet itself is clicked
func (a *App) Poke() Reaction {
	pet := a.ActivePet()
	return Reaction{Event: progress.EventNone, Mood: model.MoodNormal, Line: a.say(pet, model.MoodNormal), Bounce: true}
}

// AddPoints feeds (or takes from) the active pet and reports the reaction
func (a *App) AddPoints(amount int) (Reaction, error) {
	pet := a.ActivePet()
	res := progress.ApplyDelta(pet.Level, pet.CurrentXP, amount)

	roster, err := a.state.Roster.SetProgress(pet.ID, res.Level, res.XP)
	if err != nil {
		return Reaction{}, err
	}
	a.commit(Snapshot{Roster: roster, Tasks: a.state.Tasks})

	return a.react(pet, res), nil
}

func (a *App) react(pet model.Pet, res progress.Result) Reaction {
	r := Reaction{Event: res.Event}
	switch res.Event {
	case progress.EventCapped:
		r.Mood = model.MoodHappy
		r.Bounce = true
	case progress.EventGain:
		r.Mood = model.MoodHappy
	case progress.EventPenalty:
		r.Mood = model.MoodSad
	case progress.EventLevelUp:
		r.Mood = model.MoodLevelUp
		r.Bounce = true
		r.LevelUp = res.NewLevel
		if err := a.Notifier.SendLevelUp(pet.Name, res.NewLevel, res.NewLevel >= model.MaxLevel); err != nil {
			a.Log.Printf("notify level up: %v", err)
		}
	default:
		return r
	}
	r.Line = a.say(pet, r.Mood)
	return r
}

// AddTask appends a task to the checklist
func (a *App) AddTask(text string) (model.Task, error) {
	list, task, err := a.state.Tasks.Add(text, a.now())
	if err != nil {
		return model.Task{}, err
	}
	a.commit(Snapshot{Roster: a.state.Roster, Tasks: list})
	return task, nil
}

// ToggleTask flips a task and feeds the active pet: completing earns
// progress.TaskPoints, undoing takes them back.
func (a *App) ToggleTask(id int64) (model.Task, Reaction, error) {
	list, task, err := a.state.Tasks.Toggle(id)
	if err != nil {
		return model.Task{}, Reaction{}, err
	}

	amount := progress.TaskPoints
	if !task.Completed {
		amount = -progress.TaskPoints
	}

	pet := a.ActivePet()
	res := progress.ApplyDelta(pet.Level, pet.CurrentXP, amount)
	roster, err := a.state.Roster.SetProgress(pet.ID, res.Level, res.XP)
	if err != nil {
		return model.Task{}, Reaction{}, err
	}

	a.commit(Snapshot{Roster: roster, Tasks: list})
	return task, a.react(pet, res), nil
}

// RemoveTask deletes one task. Earned XP is kept.
func (a *App) RemoveTask(id int64) error {
	list, err := a.state.Tasks.Remove(id)
	if err != nil {
		return err
	}
	a.commit(Snapshot{Roster: a.state.Roster, Tasks: list})
	return nil
}

// ClearCompleted drops every completed task. With nothing to clear it is a
// no-op and needs no confirmation.
func (a *App) ClearCompleted(confirmed bool) (int, error) {
	if a.state.Tasks.Completed() == 0 {
		return 0, nil
	}
	if !confirmed {
		return 0, ErrConfirmationRequired
	}
	list, n := a.state.Tasks.ClearCompleted()
	a.commit(Snapshot{Roster: a.state.Roster, Tasks: list})
	return n, nil
}

// ReorderTask moves a task between two list positions
func (a *App) ReorderTask(from, to int) error {
	list, err := a.state.Tasks.Reorder(from, to)
	if err != nil {
		return err
	}
	if from != to {
		a.commit(Snapshot{Roster: a.state.Roster, Tasks: list})
	}
	return nil
}

// AdoptPet creates a pet, makes it active and lets it greet the user
func (a *App) AdoptPet() (model.Pet, Reaction) {
	roster, pet := a.state.Roster.Create()
	a.commit(Snapshot{Roster: roster, Tasks: a.state.Tasks})
	return pet, Reaction{Event: progress.EventNone, Mood: model.MoodHappy, Line: pets.GreetingLine, Bounce: true}
}

// DeletePet removes a pet for good. The last pet can never be removed.
func (a *App) DeletePet(id string, confirmed bool) error {
	if a.state.Roster.Find(id) < 0 {
		return fmt.Errorf("delete %s: %w", id, pets.ErrNotFound)
	}
	if len(a.state.Roster.Pets) <= 1 {
		return pets.ErrLastPet
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	roster, err := a.state.Roster.Delete(id)
	if err != nil {
		return err
	}
	a.commit(Snapshot{Roster: roster, Tasks: a.state.Tasks})
	return nil
}

// SwitchPet makes another pet active
func (a *App) SwitchPet(id string) (model.Pet, Reaction, error) {
	roster, err := a.state.Roster.Switch(id)
	if err != nil {
		return model.Pet{}, Reaction{}, err
	}
	a.commit(Snapshot{Roster: roster, Tasks: a.state.Tasks})
	return a.ActivePet(), Reaction{Event: progress.EventNone, Mood: model.MoodNormal, Line: pets.ArrivalLine}, nil
}

// ImportPet adds a pet from an exported file's contents. A rejected file
// leaves the roster untouched.
func (a *App) ImportPet(data []byte) (model.Pet, error) {
	roster, pet, err := a.state.Roster.Import(data)
	if err != nil {
		return model.Pet{}, err
	}
	a.commit(Snapshot{Roster: roster, Tasks: a.state.Tasks})
	return pet, nil
}

// ImportPetFile reads path and imports it
func (a *App) ImportPetFile(path string) (model.Pet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Pet{}, fmt.Errorf("import: %w", err)
	}
	return a.ImportPet(data)
}

// ExportPet renders a pet as portable JSON. An empty id exports the active pet.
func (a *App) ExportPet(id string) ([]byte, error) {
	if id == "" {
		id = a.ActivePet().ID
	}
	return a.state.Roster.Export(id)
}

// ExportPetFile writes the export of id to path
func (a *App) ExportPetFile(id, path string) error {
	data, err := a.ExportPet(id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func (a *App) updateActive(fn func(r pets.Roster, id string) (pets.Roster, error)) error {
	roster, err := fn(a.state.Roster, a.ActivePet().ID)
	if err != nil {
		return err
	}
	a.commit(Snapshot{Roster: roster, Tasks: a.state.Tasks})
	return nil
}

// SetArtwork stores the active pet's artwork for one level
func (a *App) SetArtwork(level int, image string) error {
	return a.updateActive(func(r pets.Roster, id string) (pets.Roster, error) {
		return r.SetArtwork(id, level, image)
	})
}

// SetArtworkFromFile encodes an image file for one level of the active pet
func (a *App) SetArtworkFromFile(level int, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("artwork: %w", err)
	}
	image, err := pets.ArtworkFromBytes(data)
	if err != nil {
		return err
	}
	return a.SetArtwork(level, image)
}

// ClearArtwork empties one artwork slot of the active pet
func (a *App) ClearArtwork(level int) error {
	return a.updateActive(func(r pets.Roster, id string) (pets.Roster, error) {
		return r.ClearArtwork(id, level)
	})
}

// SetTheme changes the active pet's palette
func (a *App) SetTheme(theme model.ThemeID) error {
	return a.updateActive(func(r pets.Roster, id string) (pets.Roster, error) {
		return r.SetTheme(id, theme)
	})
}

// SetName renames the active pet
func (a *App) SetName(name string) error {
	return a.updateActive(func(r pets.Roster, id string) (pets.Roster, error) {
		return r.SetName(id, name)
	})
}

// SetDialogueLines replaces the active pet's lines for one mood
func (a *App) SetDialogueLines(mood model.Mood, lines []string) error {
	return a.updateActive(func(r pets.Roster, id string) (pets.Roster, error) {
		return r.SetDialogueLines(id, mood, lines)
	})
}

// SetDialogueText splits an edited text block into one line per row
func (a *App) SetDialogueText(mood model.Mood, text string) error {
	return a.SetDialogueLines(mood, dialogue.SplitLines(text))
}

// CheckForUpdate runs the one-shot version check
func (a *App) CheckForUpdate(ctx context.Context) (update.Notice, bool) {
	if !a.Config.CheckUpdates {
		return update.Notice{}, false
	}
	return a.Updates.Check(ctx)
}

// AcknowledgeUpdate silences the notice for version
func (a *App) AcknowledgeUpdate(version string) error {
	return a.Updates.Acknowledge(version)
}

// OpenDistribution opens the download page and acknowledges version. A
// browser that fails to start does not stop the acknowledgement.
func (a *App) OpenDistribution(version string) error {
	if err := a.Notifier.OpenURL(a.Config.DistributionURL); err != nil {
		a.Log.Printf("open distribution page: %v", err)
	}
	return a.AcknowledgeUpdate(version)
}
