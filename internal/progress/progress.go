// Package progress converts point deltas into level and XP changes.
package progress

import "github.com/dori/habitpet/internal/model"

const (
	// XPPerLevel scales the cap: completing level L takes L * XPPerLevel points.
	XPPerLevel = 100

	// TaskPoints is the delta applied when a task is completed (and removed on undo).
	TaskPoints = 20
)

// Event describes what a delta did to the pet
type Event string

const (
	EventNone    Event = "none"
	EventGain    Event = "gain"
	EventLevelUp Event = "level-up"
	EventCapped  Event = "capped"
	EventPenalty Event = "penalty"
)

// Result is the outcome of ApplyDelta
type Result struct {
	Level int
	XP    int
	Event Event
	// NewLevel is set only for EventLevelUp.
	NewLevel int
}

// LevelCap returns the points needed to complete the given level.
func LevelCap(level int) int {
	if level < 1 {
		level = 1
	}
	return level * XPPerLevel
}

// ApplyDelta is a pure transition: the same (level, xp, amount) always yields
// the same Result.
//
// At most one level-up happens per call. Carryover beyond the next level's
// cap is held just below that cap so currentXP < LevelCap(level) holds.
func ApplyDelta(level, xp, amount int) Result {
	level, xp = Normalize(level, xp)

	switch {
	case amount == 0:
		return Result{Level: level, XP: xp, Event: EventNone}

	case amount < 0:
		if level >= model.MaxLevel {
			// XP stays pinned at the full bar once maxed.
			return Result{Level: level, XP: xp, Event: EventPenalty}
		}
		xp += amount
		if xp < 0 {
			xp = 0
		}
		return Result{Level: level, XP: xp, Event: EventPenalty}

	case level >= model.MaxLevel:
		return Result{Level: level, XP: xp, Event: EventCapped}
	}

	xp += amount
	limit := LevelCap(level)
	if xp < limit {
		return Result{Level: level, XP: xp, Event: EventGain}
	}

	xp -= limit
	level++
	if level >= model.MaxLevel {
		level = model.MaxLevel
		xp = LevelCap(model.MaxLevel)
	} else if next := LevelCap(level); xp >= next {
		// A plain carryover (xp - cap) can overshoot the next cap on a large
		// delta. Only one level is gained per delta, so the surplus is
		// clamped to keep xp below the cap.
		xp = next - 1
	}
	return Result{Level: level, XP: xp, Event: EventLevelUp, NewLevel: level}
}

// Normalize clamps a stored (level, xp) pair back into the valid range.
// Loaded data is untrusted, so everything entering the engine goes through here.
func Normalize(level, xp int) (int, int) {
	if level < 1 {
		level = 1
	}
	if level >= model.MaxLevel {
		return model.MaxLevel, LevelCap(model.MaxLevel)
	}
	if xp < 0 {
		xp = 0
	}
	if limit := LevelCap(level); xp >= limit {
		xp = limit - 1
	}
	return level, xp
}

// Percent returns the XP bar fill, 0..100. A maxed pet is always 100.
func Percent(level, xp int) int {
	if level >= model.MaxLevel {
		return 100
	}
	if xp <= 0 {
		return 0
	}
	return xp * 100 / LevelCap(level)
}
