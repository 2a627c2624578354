// Package store persists the roster, the active pet pointer and the task list
// to a string-keyed durable store. Each entry is loaded and saved on its own.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/dori/habitpet/internal/model"
	"github.com/dori/habitpet/internal/pets"
	"github.com/dori/habitpet/internal/progress"
	"github.com/dori/habitpet/internal/tasks"
)

// Keys used in the backing store
const (
	KeyPets     = "habit_pets"
	KeyActiveID = "habit_active_id"
	KeyTasks    = "habit_todos"
)

// ErrMissing is returned by KV.Get when a key has never been written
var ErrMissing = errors.New("key not found")

// KV is the get/set string contract the core needs from durable storage
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Store reads and writes application state through a KV
type Store struct {
	kv  KV
	log *log.Logger
}

// New wraps kv. A nil logger discards messages.
func New(kv KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{kv: kv, log: logger}
}

// KV exposes the backing store for other entries (e.g. the update notifier)
func (s *Store) KV() KV {
	return s.kv
}

// petRecord is the stored pet shape. Older saves carry a single image field
// instead of the per-level map.
type petRecord struct {
	model.Pet
	Image *string `json:"image,omitempty"`
}

// LoadRoster returns the stored roster, or the initial one when nothing is
// stored or the entry cannot be read.
func (s *Store) LoadRoster() pets.Roster {
	roster := pets.Initial()

	raw, err := s.kv.Get(KeyPets)
	switch {
	case errors.Is(err, ErrMissing):
	case err != nil:
		s.log.Printf("load pets: %v", err)
	default:
		loaded, err := s.decodePets(raw)
		if err != nil {
			s.log.Printf("decode pets: %v", err)
		} else if len(loaded) > 0 {
			roster.Pets = loaded
		}
	}

	activeID, err := s.kv.Get(KeyActiveID)
	switch {
	case errors.Is(err, ErrMissing):
	case err != nil:
		s.log.Printf("load active pet: %v", err)
	default:
		roster.ActiveID = activeID
	}

	return roster.Resolve()
}

// decodePets reads the entry one pet at a time; a malformed pet is logged
// and skipped so the rest of the roster survives.
func (s *Store) decodePets(raw string) ([]model.Pet, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	out := make([]model.Pet, 0, len(entries))
	for i, entry := range entries {
		var rec petRecord
		if err := json.Unmarshal(entry, &rec); err != nil {
			s.log.Printf("decode pet %d: %v", i, err)
			continue
		}
		if rec.ID == "" {
			s.log.Printf("decode pet %d: missing id", i)
			continue
		}
		p := rec.Pet
		if p.Images == nil {
			p.Images = model.Images{}
		}
		if rec.Image != nil && *rec.Image != "" && p.Images[1] == "" {
			p.Images[1] = *rec.Image
		}
		if !p.ThemeID.IsValid() {
			p.ThemeID = model.DefaultTheme
		}
		p.Level, p.CurrentXP = progress.Normalize(p.Level, p.CurrentXP)
		out = append(out, p)
	}
	return out, nil
}

// LoadTasks returns the stored task list, or the initial one
func (s *Store) LoadTasks() tasks.List {
	raw, err := s.kv.Get(KeyTasks)
	if err != nil {
		if !errors.Is(err, ErrMissing) {
			s.log.Printf("load tasks: %v", err)
		}
		return tasks.Initial()
	}
	var list tasks.List
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.log.Printf("decode tasks: %v", err)
		return tasks.Initial()
	}
	if list == nil {
		list = tasks.List{}
	}
	return list
}

// SavePets writes the roster entry
func (s *Store) SavePets(list []model.Pet) error {
	if list == nil {
		list = []model.Pet{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode pets: %w", err)
	}
	if err := s.kv.Set(KeyPets, string(data)); err != nil {
		return fmt.Errorf("save pets: %w", err)
	}
	return nil
}

// SaveActiveID writes the active pet pointer
func (s *Store) SaveActiveID(id string) error {
	if err := s.kv.Set(KeyActiveID, id); err != nil {
		return fmt.Errorf("save active pet: %w", err)
	}
	return nil
}

// SaveTasks writes the task list entry
func (s *Store) SaveTasks(list tasks.List) error {
	if list == nil {
		list = tasks.List{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(KeyTasks, string(data)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
