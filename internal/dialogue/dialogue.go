// Package dialogue picks the line a pet says in reaction to an event.
package dialogue

import (
	"math/rand/v2"
	"strings"

	"github.com/dori/habitpet/internal/model"
)

// Selector draws lines from a mood-keyed set
type Selector struct {
	intn func(n int) int
}

// NewSelector returns a selector backed by the global random source
func NewSelector() *Selector {
	return &Selector{intn: rand.IntN}
}

// NewSeeded returns a reproducible selector, used by tests
func NewSeeded(seed uint64) *Selector {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &Selector{intn: r.IntN}
}

// Pick returns a uniformly random line for mood, falling back to the normal
// lines when that mood has none. ok is false when there is nothing to say.
func (s *Selector) Pick(d model.Dialogues, mood model.Mood) (line string, ok bool) {
	lines := usable(d.Lines(mood))
	if len(lines) == 0 {
		lines = usable(d.Normal)
	}
	if len(lines) == 0 {
		return "", false
	}
	return lines[s.intn(len(lines))], true
}

// usable drops blank entries left behind by line-per-row editing
func usable(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// SplitLines turns an edited block of text into one line per row
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
