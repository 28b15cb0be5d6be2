package model

import (
	"errors"
	"time"
)

// ErrBadDraw marks a remote draw record that failed structural validation.
// Such records are dropped at the parse boundary, never persisted.
var ErrBadDraw = errors.New("invalid draw record")

// Draw represents a single lottery result event.
type Draw struct {
	Date    time.Time
	Numbers []int // main numbers in drawn order
	Bonus   int   // bonus / grand number, 0 when absent
	Prize   string
}

// Year returns the calendar year of the draw.
func (d Draw) Year() int { return d.Date.Year() }

// GameConfig holds the immutable per-lottery parameters.
type GameConfig struct {
	MainCount  int
	MainMin    int
	MainMax    int
	BonusCount int
	BonusMin   int
	BonusMax   int
}

// MainPoolSize returns the number of values in the main range.
func (c GameConfig) MainPoolSize() int { return c.MainMax - c.MainMin + 1 }
