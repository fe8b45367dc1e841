// Package refund implements the time-tiered cancellation refund policy.
package refund

import "time"

// Result holds the refund decision for a cancellation.
type Result struct {
	Percent float64
	Amount  float64
}

// Compute derives the refund for a booking being cancelled at evaluation
// time. When overridePercent is non-nil it wins over the tier schedule;
// either way the percentage is clamped to [0,100].
//
// Tier schedule by hours until the flight, ties resolving to the higher tier:
//
//	hours >= 48 -> 100%
//	hours >= 24 -> 50%
//	hours >= 0  -> 25%
//	otherwise   -> 0% (flight already departed)
func Compute(flightDate, evaluationTime time.Time, cost float64, overridePercent *float64) Result {
	var percent float64
	if overridePercent != nil {
		percent = *overridePercent
	} else {
		hours := flightDate.Sub(evaluationTime).Hours()
		switch {
		case hours >= 48:
			percent = 100
		case hours >= 24:
			percent = 50
		case hours >= 0:
			percent = 25
		default:
			percent = 0
		}
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return Result{Percent: percent, Amount: percent / 100 * cost}
}
