package pets

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dori/habitpet/internal/model"
)

// ErrMalformedImport is matched with errors.Is on every rejected import
var ErrMalformedImport = errors.New("malformed pet file")

// ImportError explains why a pet file was rejected
type ImportError struct {
	Reason string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedImport, e.Reason)
}

func (e *ImportError) Unwrap() error {
	return ErrMalformedImport
}

// Record is the portable pet file. It mirrors model.Pet minus the id, which
// is always reassigned on import.
type Record struct {
	Name      string          `json:"name"`
	ThemeID   model.ThemeID   `json:"themeId"`
	Level     int             `json:"level"`
	CurrentXP int             `json:"currentXP"`
	Images    model.Images    `json:"images"`
	Dialogues model.Dialogues `json:"dialogues"`
	// Image is the single artwork field of older files.
	Image *string `json:"image,omitempty"`
}

// Export renders one pet as a portable JSON document
func (r Roster) Export(id string) ([]byte, error) {
	pet, err := r.Get(id)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	rec := Record{
		Name:      pet.Name,
		ThemeID:   pet.ThemeID,
		Level:     pet.Level,
		CurrentXP: pet.CurrentXP,
		Images:    pet.Images,
		Dialogues: pet.Dialogues,
	}
	if rec.Images == nil {
		rec.Images = model.Images{}
	}
	return json.MarshalIndent(rec, "", "  ")
}

// ParseRecord validates a pet file. name and dialogues must be present;
// everything else falls back to defaults.
func ParseRecord(data []byte) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &fields); err != nil {
		return Record{}, &ImportError{Reason: "not a JSON object"}
	}
	for _, key := range []string{"name", "dialogues"} {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			return Record{}, &ImportError{Reason: fmt.Sprintf("missing %q", key)}
		}
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, &ImportError{Reason: err.Error()}
	}
	if rec.Images == nil {
		rec.Images = model.Images{}
	}
	if rec.Image != nil && *rec.Image != "" && rec.Images[1] == "" {
		rec.Images[1] = *rec.Image
	}
	rec.Image = nil
	if !rec.ThemeID.IsValid() {
		rec.ThemeID = model.DefaultTheme
	}
	return rec, nil
}

// Import adds a pet from a portable file and makes it active. Progression
// always starts over at level 1.
func (r Roster) Import(data []byte) (Roster, model.Pet, error) {
	rec, err := ParseRecord(data)
	if err != nil {
		return r, model.Pet{}, err
	}
	pet := model.Pet{
		ID:        uuid.New().String(),
		Name:      rec.Name,
		ThemeID:   rec.ThemeID,
		Level:     1,
		CurrentXP: 0,
		Images:    rec.Images,
		Dialogues: rec.Dialogues,
	}
	out := r.Clone()
	out.Pets = append(out.Pets, pet)
	out.ActiveID = pet.ID
	return out, pet.Clone(), nil
}

// ArtworkFromBytes encodes an uploaded image as a data URI
func ArtworkFromBytes(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyArtwork
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s: %w", mime, ErrNotAnImage)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
