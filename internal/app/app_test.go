package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/habitpet/internal/config"
	"github.com/dori/habitpet/internal/dialogue"
	"github.com/dori/habitpet/internal/model"
	"github.com/dori/habitpet/internal/pets"
	"github.com/dori/habitpet/internal/progress"
	"github.com/dori/habitpet/internal/store"
	"github.com/dori/habitpet/internal/tasks"
)

type call struct {
	name string
	args []string
}

func newTestApp(t *testing.T) (*App, *store.MemoryKV, *[]call) {
	t.Helper()
	kv := store.NewMemoryKV()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	require.NoError(t, cfg.Complete())

	a := NewSession(kv, cfg, "1.0.0", nil).WithSelector(dialogue.NewSeeded(1))
	var calls []call
	a.Notifier.WithRunner(func(name string, args ...string) error {
		calls = append(calls, call{name, args})
		return nil
	})
	return a, kv, &calls
}

func TestToggleRoundTripRestoresProgress(t *testing.T) {
	a, _, _ := newTestApp(t)
	before := a.ActivePet()

	task, r, err := a.ToggleTask(1)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.Equal(t, progress.EventGain, r.Event)
	assert.Equal(t, model.MoodHappy, r.Mood)
	assert.NotEmpty(t, r.Line)
	assert.Equal(t, before.CurrentXP+progress.TaskPoints, a.ActivePet().CurrentXP)

	task, r, err = a.ToggleTask(1)
	require.NoError(t, err)
	assert.False(t, task.Completed)
	assert.Equal(t, progress.EventPenalty, r.Event)
	assert.Equal(t, model.MoodSad, r.Mood)
	assert.Equal(t, before.Level, a.ActivePet().Level)
	assert.Equal(t, before.CurrentXP, a.ActivePet().CurrentXP)
}

func TestToggleLevelsUpAndNotifies(t *testing.T) {
	a, _, calls := newTestApp(t)
	require.NoError(t, a.updateActive(func(r pets.Roster, id string) (pets.Roster, error) {
		return r.SetProgress(id, 1, 90)
	}))

	_, r, err := a.ToggleTask(1)
	require.NoError(t, err)
	assert.Equal(t, progress.EventLevelUp, r.Event)
	assert.Equal(t, 2, r.LevelUp)
	assert.True(t, r.Bounce)

	pet := a.ActivePet()
	assert.Equal(t, 2, pet.Level)
	assert.Equal(t, 10, pet.CurrentXP)

	require.Len(t, *calls, 1)
	assert.Equal(t, "notify-send", (*calls)[0].name)
}

func TestToggleAtMaxLevelIsCapped(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.NoError(t, a.updateActive(func(r pets.Roster, id string) (pets.Roster, error) {
		return r.SetProgress(id, model.MaxLevel, progress.LevelCap(model.MaxLevel))
	}))

	_, r, err := a.ToggleTask(1)
	require.NoError(t, err)
	assert.Equal(t, progress.EventCapped, r.Event)
	assert.True(t, r.Bounce)
	assert.Zero(t, r.LevelUp)
	assert.Equal(t, model.MaxLevel, a.ActivePet().Level)
}

func TestMutationsArePersisted(t *testing.T) {
	a, kv, _ := newTestApp(t)

	_, err := a.AddTask("Stretch")
	require.NoError(t, err)
	_, _, err = a.ToggleTask(1)
	require.NoError(t, err)
	pet, _ := a.AdoptPet()

	reloaded := store.New(kv, nil)
	assert.Equal(t, a.State().Tasks, reloaded.LoadTasks())
	roster := reloaded.LoadRoster()
	assert.Equal(t, pet.ID, roster.ActiveID)
	require.Len(t, roster.Pets, 2)
	assert.Equal(t, progress.TaskPoints, roster.Pets[0].CurrentXP)
}

func TestSubscribersSeePrevAndNext(t *testing.T) {
	a, _, _ := newTestApp(t)
	var seen []int
	a.Subscribe(func(prev, next Snapshot) {
		seen = append(seen, len(prev.Tasks), len(next.Tasks))
	})

	_, err := a.AddTask("Read")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestAddTaskRejectsEmptyText(t *testing.T) {
	a, _, _ := newTestApp(t)
	_, err := a.AddTask("   ")
	assert.ErrorIs(t, err, tasks.ErrEmptyText)
	assert.Len(t, a.State().Tasks, 1)
}

func TestClearCompletedNeedsConfirmation(t *testing.T) {
	a, _, _ := newTestApp(t)

	n, err := a.ClearCompleted(false)
	require.NoError(t, err, "nothing to clear is a no-op")
	assert.Zero(t, n)

	_, _, err = a.ToggleTask(1)
	require.NoError(t, err)
	xp := a.ActivePet().CurrentXP

	_, err = a.ClearCompleted(false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Len(t, a.State().Tasks, 1)

	n, err = a.ClearCompleted(true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, a.State().Tasks)
	assert.Equal(t, xp, a.ActivePet().CurrentXP, "earned XP is kept")
}

func TestDeletePet(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.DeletePet("1", true)
	assert.ErrorIs(t, err, pets.ErrLastPet)

	pet, _ := a.AdoptPet()
	assert.ErrorIs(t, a.DeletePet(pet.ID, false), ErrConfirmationRequired)
	assert.Len(t, a.State().Roster.Pets, 2)

	require.NoError(t, a.DeletePet(pet.ID, true))
	assert.Equal(t, "1", a.ActivePet().ID)

	assert.ErrorIs(t, a.DeletePet("nope", true), pets.ErrNotFound)
}

func TestAdoptAndSwitchLines(t *testing.T) {
	a, _, _ := newTestApp(t)

	pet, r := a.AdoptPet()
	assert.Equal(t, pets.GreetingLine, r.Line)
	assert.Equal(t, "New Friend 2", pet.Name)
	assert.Equal(t, pet.ID, a.ActivePet().ID)

	back, r, err := a.SwitchPet("1")
	require.NoError(t, err)
	assert.Equal(t, "Mochi", back.Name)
	assert.Equal(t, pets.ArrivalLine, r.Line)

	_, _, err = a.SwitchPet("missing")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestExportImportFiles(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.NoError(t, a.SetName("Pudding"))
	require.NoError(t, a.SetTheme(model.ThemeMint))
	require.NoError(t, a.SetDialogueText(model.MoodHappy, "yay\nwoo\n"))

	path := filepath.Join(t.TempDir(), "pudding.json")
	require.NoError(t, a.ExportPetFile("", path))

	imported, err := a.ImportPetFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Pudding", imported.Name)
	assert.Equal(t, model.ThemeMint, imported.ThemeID)
	assert.Equal(t, []string{"yay", "woo"}, imported.Dialogues.Happy)
	assert.Equal(t, imported.ID, a.ActivePet().ID)

	_, err = a.ImportPet([]byte(`{"name":"x"}`))
	assert.ErrorIs(t, err, pets.ErrMalformedImport)
	assert.Len(t, a.State().Roster.Pets, 2)
}

func TestSetArtworkFromFile(t *testing.T) {
	a, _, _ := newTestApp(t)
	dir := t.TempDir()

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	pngPath := filepath.Join(dir, "pet.png")
	require.NoError(t, os.WriteFile(pngPath, png, 0644))
	require.NoError(t, a.SetArtworkFromFile(1, pngPath))
	assert.Contains(t, a.ActivePet().Images[1], "data:image/png;base64,")

	txtPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("hello"), 0644))
	assert.ErrorIs(t, a.SetArtworkFromFile(2, txtPath), pets.ErrNotAnImage)

	assert.ErrorIs(t, a.SetArtwork(11, "x.png"), pets.ErrInvalidLevel)

	require.NoError(t, a.ClearArtwork(1))
	assert.True(t, a.ActivePet().MissingBaseline())
}

func TestReorderAndRemove(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.WithClock(func() time.Time { return time.UnixMilli(1000) })
	_, err := a.AddTask("second")
	require.NoError(t, err)

	require.NoError(t, a.ReorderTask(1, 0))
	assert.Equal(t, "second", a.State().Tasks[0].Text)

	assert.ErrorIs(t, a.ReorderTask(0, 5), tasks.ErrIndex)
	require.NoError(t, a.RemoveTask(1000))
	assert.ErrorIs(t, a.RemoveTask(1000), tasks.ErrNotFound)
}

func TestResetNeedsConfirmation(t *testing.T) {
	a, kv, _ := newTestApp(t)
	_, err := a.AddTask("temp")
	require.NoError(t, err)

	assert.ErrorIs(t, a.Reset(false), ErrConfirmationRequired)
	require.NoError(t, a.Reset(true))
	assert.Equal(t, tasks.Initial(), a.State().Tasks)
	assert.Equal(t, tasks.Initial(), store.New(kv, nil).LoadTasks())
}

func TestUpdateNoticeAndOpenDistribution(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"latestVersion": "1.1.0", "message": "fresh"})
	}))
	defer srv.Close()

	a, kv, calls := newTestApp(t)
	a.Config.DistributionURL = "https://example.com/download"
	a.Updates.URL = srv.URL

	n, ok := a.CheckForUpdate(context.Background())
	require.True(t, ok)
	assert.Equal(t, "1.1.0", n.Version)

	require.NoError(t, a.OpenDistribution(n.Version))
	require.NotEmpty(t, *calls)
	last := (*calls)[len(*calls)-1]
	assert.Contains(t, last.args, "https://example.com/download")

	seen, err := kv.Get("habit_last_seen_version")
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", seen)

	_, ok = a.CheckForUpdate(context.Background())
	assert.False(t, ok)
}

func TestUpdateCheckDisabled(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.Config.CheckUpdates = false
	_, ok := a.CheckForUpdate(context.Background())
	assert.False(t, ok)
}

func TestNewFallsBackToMemoryStore(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DataDir = dir
	// A directory where the database file should be makes sqlite fail.
	cfg.DBPath = filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(cfg.DBPath, 0755))
	cfg.Notifications = false

	a, err := New(cfg, "1.0.0")
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	_, err = a.AddTask("still works")
	require.NoError(t, err)
}

func TestSecondInstanceIsLockedOut(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	require.NoError(t, cfg.Complete())

	first, err := New(cfg, "1.0.0")
	require.NoError(t, err)
	defer first.Close()

	_, err = New(cfg, "1.0.0")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfirmationRequired))
}
