package core

import (
	"math"

	"github.com/akoval/bdtrack/internal/store"
)

// ValidationMetrics aggregates a hypothesis' call observations. Rates are
// whole percentages; First*Call are 1-based positions in chronological call
// order, nil when the signal never appeared.
type ValidationMetrics struct {
	TotalCalls    int `json:"total_calls"`
	PainConfirmed int `json:"pain_confirmed"`
	Interest      int `json:"interest"`
	FollowUp      int `json:"follow_up"`

	PainRate     int `json:"pain_rate"`
	InterestRate int `json:"interest_rate"`
	FollowRate   int `json:"follow_rate"`

	FirstPainCall   *int `json:"first_pain_call"`
	FirstFollowCall *int `json:"first_follow_call"`
}

// ComputeValidationMetrics derives validation metrics from calls. Calls must
// be in chronological order.
func ComputeValidationMetrics(calls []store.Call) ValidationMetrics {
	m := ValidationMetrics{TotalCalls: len(calls)}

	for i, c := range calls {
		if c.PainConfirmed {
			m.PainConfirmed++
			if m.FirstPainCall == nil {
				pos := i + 1
				m.FirstPainCall = &pos
			}
		}
		if c.Interest {
			m.Interest++
		}
		if c.FollowUp {
			m.FollowUp++
			if m.FirstFollowCall == nil {
				pos := i + 1
				m.FirstFollowCall = &pos
			}
		}
	}

	m.PainRate = pct(m.PainConfirmed, m.TotalCalls)
	m.InterestRate = pct(m.Interest, m.TotalCalls)
	m.FollowRate = pct(m.FollowUp, m.TotalCalls)
	return m
}

func pct(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
