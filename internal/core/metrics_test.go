package core

import (
	"testing"

	"github.com/akoval/bdtrack/internal/store"
)

func TestComputeValidationMetrics_Empty(t *testing.T) {
	m := ComputeValidationMetrics(nil)
	if m.TotalCalls != 0 || m.PainRate != 0 || m.InterestRate != 0 || m.FollowRate != 0 {
		t.Errorf("expected zero metrics, got %+v", m)
	}
	if m.FirstPainCall != nil || m.FirstFollowCall != nil {
		t.Error("first-call markers must be nil with no calls")
	}
}

func TestComputeValidationMetrics_Counts(t *testing.T) {
	calls := []store.Call{
		{},
		{PainConfirmed: true, Interest: true},
		{PainConfirmed: true, FollowUp: true},
		{Interest: true},
	}
	m := ComputeValidationMetrics(calls)

	if m.TotalCalls != 4 {
		t.Errorf("TotalCalls = %d, want 4", m.TotalCalls)
	}
	if m.PainConfirmed != 2 || m.Interest != 2 || m.FollowUp != 1 {
		t.Errorf("counts = %+v", m)
	}
	if m.PainRate != 50 || m.InterestRate != 50 || m.FollowRate != 25 {
		t.Errorf("rates = pain %d interest %d follow %d", m.PainRate, m.InterestRate, m.FollowRate)
	}
	if m.FirstPainCall == nil || *m.FirstPainCall != 2 {
		t.Errorf("FirstPainCall = %v, want 2", m.FirstPainCall)
	}
	if m.FirstFollowCall == nil || *m.FirstFollowCall != 3 {
		t.Errorf("FirstFollowCall = %v, want 3", m.FirstFollowCall)
	}
}

func TestComputeValidationMetrics_Rounding(t *testing.T) {
	calls := []store.Call{
		{PainConfirmed: true}, {PainConfirmed: true}, {},
	}
	m := ComputeValidationMetrics(calls)
	// 2/3 rounds to 67, not truncated to 66.
	if m.PainRate != 67 {
		t.Errorf("PainRate = %d, want 67", m.PainRate)
	}
}
