package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// MaxLevel is the highest level a pet can reach
const MaxLevel = 10

// ThemeID identifies one of the pastel palettes
type ThemeID string

const (
	ThemeCream    ThemeID = "cream"
	ThemeSky      ThemeID = "sky"
	ThemeLavender ThemeID = "lavender"
	ThemeMint     ThemeID = "mint"
	ThemePink     ThemeID = "pink"
)

// DefaultTheme is used for new pets and unknown theme ids
const DefaultTheme = ThemeCream

// ThemeIDs returns every theme id in display order
func ThemeIDs() []ThemeID {
	return []ThemeID{ThemeCream, ThemeSky, ThemeLavender, ThemeMint, ThemePink}
}

// IsValid reports whether t names a known palette
func (t ThemeID) IsValid() bool {
	switch t {
	case ThemeCream, ThemeSky, ThemeLavender, ThemeMint, ThemePink:
		return true
	default:
		return false
	}
}

// Mood is a category of dialogue line
type Mood string

const (
	MoodNormal  Mood = "normal"
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodLevelUp Mood = "levelup"
)

// Moods returns every mood in display order
func Moods() []Mood {
	return []Mood{MoodNormal, MoodHappy, MoodSad, MoodLevelUp}
}

// ParseMood converts user input into a Mood
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	switch m {
	case MoodNormal, MoodHappy, MoodSad, MoodLevelUp:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mood %q (normal, happy, sad, levelup)", s)
	}
}

// Dialogues holds one line list per mood. The struct is total over Mood:
// a missing list is simply empty.
type Dialogues struct {
	Normal  []string `json:"normal"`
	Happy   []string `json:"happy"`
	Sad     []string `json:"sad"`
	LevelUp []string `json:"levelup"`
}

// Lines returns the list for a mood
func (d Dialogues) Lines(m Mood) []string {
	switch m {
	case MoodHappy:
		return d.Happy
	case MoodSad:
		return d.Sad
	case MoodLevelUp:
		return d.LevelUp
	default:
		return d.Normal
	}
}

// With returns a copy of d with the list for m replaced
func (d Dialogues) With(m Mood, lines []string) Dialogues {
	out := d.Clone()
	cp := append([]string(nil), lines...)
	switch m {
	case MoodHappy:
		out.Happy = cp
	case MoodSad:
		out.Sad = cp
	case MoodLevelUp:
		out.LevelUp = cp
	default:
		out.Normal = cp
	}
	return out
}

// Clone returns a deep copy
func (d Dialogues) Clone() Dialogues {
	return Dialogues{
		Normal:  append([]string(nil), d.Normal...),
		Happy:   append([]string(nil), d.Happy...),
		Sad:     append([]string(nil), d.Sad...),
		LevelUp: append([]string(nil), d.LevelUp...),
	}
}

// DefaultDialogues returns the line set given to new pets
func DefaultDialogues() Dialogues {
	return Dialogues{
		Normal:  []string{"Let's do our best today!", "I'm bored, play with me~", "Cheering for you from this side of the screen!", "Growing a little every day!"},
		Happy:   []string{"You did it! Amazing!", "You're the best!", "Pat my head!", "Feeling great!"},
		Sad:     []string{"Aww, we have to redo it?", "That was a mistake, right?", "Sulking...", "You'll fill it back up, right?"},
		LevelUp: []string{"I evolved!", "I feel so much stronger!", "All thanks to you!", "Let's go all the way to max level!"},
	}
}

// Images maps a level slot to its artwork (a data URI or a path reference).
// Keys are encoded as JSON object keys ("1", "2", ...).
type Images map[int]string

// Clone returns a copy of the map
func (im Images) Clone() Images {
	out := make(Images, len(im))
	for k, v := range im {
		out[k] = v
	}
	return out
}

// Levels returns the populated slots in ascending order
func (im Images) Levels() []int {
	levels := make([]int, 0, len(im))
	for l, v := range im {
		if v != "" {
			levels = append(levels, l)
		}
	}
	sort.Ints(levels)
	return levels
}

// UnmarshalJSON accepts string keys and skips slots that are not levels
func (im *Images) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Images, len(raw))
	for k, v := range raw {
		level, err := strconv.Atoi(k)
		if err != nil || level < 1 || level > MaxLevel || v == nil || *v == "" {
			continue
		}
		out[level] = *v
	}
	*im = out
	return nil
}

// Pet is a single pet profile
type Pet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ThemeID   ThemeID   `json:"themeId"`
	Level     int       `json:"level"`
	CurrentXP int       `json:"currentXP"`
	Images    Images    `json:"images"`
	Dialogues Dialogues `json:"dialogues"`
}

// Clone returns a deep copy so snapshots never share maps or slices
func (p Pet) Clone() Pet {
	p.Images = p.Images.Clone()
	p.Dialogues = p.Dialogues.Clone()
	return p
}

// IsMaxLevel returns true when the pet cannot level up any further
func (p Pet) IsMaxLevel() bool {
	return p.Level >= MaxLevel
}

// EffectiveImage returns the artwork shown at the pet's current level: the
// highest populated slot at or below it.
func (p Pet) EffectiveImage() (level int, image string, ok bool) {
	return p.ImageAt(p.Level)
}

// ImageAt resolves the fallback artwork for an arbitrary level
func (p Pet) ImageAt(level int) (int, string, bool) {
	if level > MaxLevel {
		level = MaxLevel
	}
	for l := level; l >= 1; l-- {
		if img, found := p.Images[l]; found && img != "" {
			return l, img, true
		}
	}
	return 0, "", false
}

// MissingBaseline reports whether level-1 artwork is absent
func (p Pet) MissingBaseline() bool {
	return p.Images[1] == ""
}
