package progress

import (
	"math"
	"time"
)

// Snapshot is the aggregate view of a set of task records. Computed on
// demand and never written to disk.
type Snapshot struct {
	Total      int
	Completed  int
	InProgress int
	Blocked    int
	Pending    int
	Percentage float64 // completed/total*100 rounded to one decimal, 0.0 when empty
}

// Aggregate partitions records by status and computes the completion
// percentage. The zero-total case is the 0.0 branch, not a division.
func Aggregate(records []Record) Snapshot {
	s := Snapshot{Total: len(records)}

	for _, r := range records {
		switch r.Status {
		case StatusDone:
			s.Completed++
		case StatusInProgress:
			s.InProgress++
		case StatusBlocked:
			s.Blocked++
		default:
			s.Pending++
		}
	}

	if s.Total > 0 {
		s.Percentage = math.Round(1000.0*float64(s.Completed)/float64(s.Total)) / 10.0
	}
	return s
}

// Sample is one observation of cumulative completed-task count at a
// point in time, used for velocity estimation.
type Sample struct {
	At        time.Time
	Completed int
}

// EstimateRemaining projects how long the remaining tasks will take at
// the velocity observed between the first and last samples. It returns
// ok=false when no sensible estimate exists: fewer than two samples, a
// non-positive time span, or zero/negative velocity (a stalled project
// gets no ETA rather than an infinite or negative one).
func EstimateRemaining(history []Sample, remaining int) (time.Duration, bool) {
	if remaining <= 0 {
		return 0, true
	}
	if len(history) < 2 {
		return 0, false
	}

	first, last := history[0], history[len(history)-1]
	span := last.At.Sub(first.At)
	done := last.Completed - first.Completed
	if span <= 0 || done <= 0 {
		return 0, false
	}

	perTask := span / time.Duration(done)
	return perTask * time.Duration(remaining), true
}
