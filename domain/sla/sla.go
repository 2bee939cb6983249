package sla

import (
	"math"

	"github.com/fundwit/go-commons/types"
)

// NowFunc is the clock for every lifecycle timestamp; tests freeze it.
var NowFunc = types.CurrentTimestamp

// HoursBetween returns the elapsed hours from one instant to another,
// rounded to two decimal places. Negative raw differences (inconsistent
// clocks) clamp to zero instead of surfacing as errors.
func HoursBetween(from, to types.Timestamp) float64 {
	h := to.Time().Sub(from.Time()).Hours()
	if h < 0 {
		return 0
	}
	return Round2(h)
}

// ResponseHours is the delay from opening until maintenance work began.
// Persisted once, the first time the order enters maintenance.
func ResponseHours(openedAt, respondedAt types.Timestamp) float64 {
	return HoursBetween(openedAt, respondedAt)
}

// PendingResponseHours reports the running response delay of an order
// nobody has responded to yet. Never persisted.
func PendingResponseHours(openedAt types.Timestamp) float64 {
	return HoursBetween(openedAt, NowFunc())
}

// DowntimeHours is the total wall time from open to close, evaluated at
// the instant of completion and never updated afterward.
func DowntimeHours(openedAt, resolvedAt types.Timestamp) float64 {
	return HoursBetween(openedAt, resolvedAt)
}

// RepairHours is downtime minus the portion already counted as response
// delay, floored at zero. Note this is deliberately not
// resolvedAt - respondedAt.
func RepairHours(downtimeHours, responseHours float64) float64 {
	h := downtimeHours - responseHours
	if h < 0 {
		return 0
	}
	return Round2(h)
}

func Round2(h float64) float64 {
	return math.Round(h*100) / 100
}
