// Package priority computes a task's priority score from its attributes.
//
// The score is a pure function of impact, urgency, effort, and due date:
// it rises with impact and urgency, falls with effort (a quick win beats
// a long slog of equal weight), and is boosted as the due date approaches
// or passes. A task with no due date has no deadline pressure.
package priority

import (
	"math"
	"time"

	"github.com/taskdeck/taskdeck/internal/date"
	"github.com/taskdeck/taskdeck/internal/task"
)

// Weights parameterize the scoring formula.
type Weights struct {
	// Impact and Urgency scale the two user-supplied scores.
	Impact  float64 `yaml:"impact_weight"`
	Urgency float64 `yaml:"urgency_weight"`

	// DueHorizonDays controls how early deadline pressure ramps up.
	// A task due within the horizon gets a boost between 1.5x and 2x;
	// overdue and due-today tasks get the full 2x.
	DueHorizonDays int `yaml:"due_horizon_days"`

	// MinEffort floors the effort divisor so zero or negative effort
	// (accepted, not validated) still yields a finite score.
	MinEffort float64 `yaml:"min_effort"`
}

// DefaultWeights returns the stock weighting: impact counts ~1.5x urgency,
// deadline pressure ramps over a week.
func DefaultWeights() Weights {
	return Weights{
		Impact:         6,
		Urgency:        4,
		DueHorizonDays: 7,
		MinEffort:      0.1,
	}
}

// Engine derives priority scores. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	w Weights
}

// New creates an Engine with the given weights. Zero-valued fields fall
// back to the defaults so a partially configured weights block still works.
func New(w Weights) *Engine {
	def := DefaultWeights()
	if w.Impact <= 0 {
		w.Impact = def.Impact
	}
	if w.Urgency <= 0 {
		w.Urgency = def.Urgency
	}
	if w.DueHorizonDays <= 0 {
		w.DueHorizonDays = def.DueHorizonDays
	}
	if w.MinEffort <= 0 {
		w.MinEffort = def.MinEffort
	}
	return &Engine{w: w}
}

// Calculate returns the priority score for a task's current attributes,
// evaluated against now. It never fails: any input combination produces
// a finite, non-negative score.
func (e *Engine) Calculate(t *task.Task, now time.Time) float64 {
	base := e.w.Impact*float64(t.ImpactScore) + e.w.Urgency*float64(t.UrgencyScore)
	if base < 0 {
		base = 0
	}

	effort := t.EffortHours
	if effort < e.w.MinEffort {
		effort = e.w.MinEffort
	}

	score := base / math.Sqrt(effort) * e.dueFactor(t.DueDate, now)

	// Two decimal places; scores are shown to the user and stored.
	return math.Round(score*100) / 100
}

// dueFactor maps the due date to a multiplier in [1, 2]. No due date is
// neutral (1). Overdue or due today is the full boost (2). In between the
// boost decays with distance: 1 + H/(H+days) for horizon H.
func (e *Engine) dueFactor(due *date.Date, now time.Time) float64 {
	if due == nil {
		return 1
	}
	days := due.DaysUntil(now)
	if days <= 0 {
		return 2
	}
	h := float64(e.w.DueHorizonDays)
	return 1 + h/(h+float64(days))
}
