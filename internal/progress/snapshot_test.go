package progress

import (
	"testing"
	"time"
)

func TestAggregate_Empty(t *testing.T) {
	snap := Aggregate(nil)
	if snap.Total != 0 {
		t.Errorf("Total = %d, want 0", snap.Total)
	}
	if snap.Percentage != 0.0 {
		t.Errorf("Percentage = %v, want 0.0", snap.Percentage)
	}
}

func TestAggregate_RoundsToOneDecimal(t *testing.T) {
	records := []Record{
		{Status: StatusDone},
		{Status: StatusDone},
		{Status: StatusPending},
	}
	snap := Aggregate(records)
	if snap.Percentage != 66.7 {
		t.Errorf("Percentage = %v, want 66.7", snap.Percentage)
	}
}

func TestAggregate_AllDone(t *testing.T) {
	records := []Record{{Status: StatusDone}, {Status: StatusDone}}
	snap := Aggregate(records)
	if snap.Percentage != 100.0 {
		t.Errorf("Percentage = %v, want 100.0", snap.Percentage)
	}
	if snap.Completed != 2 || snap.Pending != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestEstimateRemaining(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	history := []Sample{
		{At: t0, Completed: 0},
		{At: t0.Add(2 * time.Hour), Completed: 4}, // 30 minutes per task
	}

	d, ok := EstimateRemaining(history, 6)
	if !ok {
		t.Fatal("estimate unavailable")
	}
	if d != 3*time.Hour {
		t.Errorf("estimate = %v, want 3h", d)
	}
}

func TestEstimateRemaining_NoEstimateWhenStalled(t *testing.T) {
	t0 := time.Now()

	tests := []struct {
		name    string
		history []Sample
	}{
		{"no samples", nil},
		{"single sample", []Sample{{At: t0, Completed: 3}}},
		{"zero velocity", []Sample{{At: t0, Completed: 3}, {At: t0.Add(time.Hour), Completed: 3}}},
		{"regression", []Sample{{At: t0, Completed: 5}, {At: t0.Add(time.Hour), Completed: 2}}},
		{"non-positive span", []Sample{{At: t0, Completed: 0}, {At: t0, Completed: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := EstimateRemaining(tt.history, 10); ok {
				t.Error("got an estimate, want none")
			}
		})
	}
}

func TestEstimateRemaining_NothingLeft(t *testing.T) {
	d, ok := EstimateRemaining(nil, 0)
	if !ok || d != 0 {
		t.Errorf("got (%v, %v), want (0, true)", d, ok)
	}
}
