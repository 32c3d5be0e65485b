package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
	}{
		{"", nil},
		{"  ", nil},
		{"not-a-date", nil},
		{"2026-03-15", timePtr(2026, time.March, 15)},
		{" 2026-03-15 ", timePtr(2026, time.March, 15)},
	}
	for _, tt := range tests {
		got := parseDate(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("parseDate(%q) = %v, want nil", tt.in, got)
		case tt.want != nil && (got == nil || !got.Equal(*tt.want)):
			t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func timePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
