// Package srs implements the SM-2 spaced repetition recurrence used to
// schedule problem reviews. Everything here is pure: state in, state out.
package srs

import (
	"math"
	"time"

	"prepagent/internal/models"
)

// Default settings for a problem never reviewed before
const (
	InitialEaseFactor = 2.5
	InitialInterval   = 1
	MinEaseFactor     = 1.3
)

// State is the scheduling triple carried on every attempt.
type State struct {
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
}

// DefaultState is the prior for a problem never reviewed before.
func DefaultState() State {
	return State{
		EaseFactor:   InitialEaseFactor,
		IntervalDays: InitialInterval,
		Repetitions:  0,
	}
}

// Quality maps a verdict onto the SM-2 quality score.
// An out-of-domain verdict is a contract violation upstream; it grades
// as a blackout rather than failing, since the recurrence itself is total.
func Quality(verdict models.Verdict) int {
	switch verdict {
	case models.VerdictCorrect:
		return 5
	case models.VerdictPartiallyCorrect:
		return 3
	default:
		return 0
	}
}

// Review applies one SM-2 step:
//
//	EF' = EF + (0.1 - (5-q) * (0.08 + (5-q)*0.02)), floored at 1.3
//	q < 3    -> repetitions reset, interval back to 1 day
//	q >= 3   -> interval 1, then 6, then round(interval * EF')
//
// The next review is scheduled interval' days after reviewedAt, so the
// due date only ever moves forward from the review that produced it.
func Review(prior State, verdict models.Verdict, reviewedAt time.Time) (State, time.Time) {
	q := float64(Quality(verdict))

	ease := prior.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ease < MinEaseFactor {
		ease = MinEaseFactor
	}

	next := State{EaseFactor: ease}
	if q < 3 {
		next.Repetitions = 0
		next.IntervalDays = 1
	} else {
		next.Repetitions = prior.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(prior.IntervalDays) * ease))
		}
	}

	return next, reviewedAt.AddDate(0, 0, next.IntervalDays)
}
