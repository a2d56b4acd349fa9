package domain

import "time"

// ExistingCommitment is a booked time window for a worker, used as a
// read-only constraint input to slot search. The interval is half-open:
// [Start, End).
type ExistingCommitment struct {
	ID            int64     `json:"id,string"`
	JobID         int64     `json:"job_id,string"`
	WorkerID      int64     `json:"worker_id,string"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	RequiredTools []string  `json:"required_tools,omitempty"`
}

// Overlaps reports whether [start,end) intersects this commitment's window.
// Half-open comparison so back-to-back bookings at exact boundaries never
// count as a conflict.
func (c ExistingCommitment) Overlaps(start, end time.Time) bool {
	return !(end.Compare(c.Start) <= 0 || start.Compare(c.End) >= 0)
}

// ScheduleSlot is a scored candidate time window.
type ScheduleSlot struct {
	Start     time.Time    `json:"start"`
	End       time.Time    `json:"end"`
	Score     float64      `json:"score"` // 0-10
	Weather   *ForecastDay `json:"weather,omitempty"`
	Reasoning []string     `json:"reasoning"`
}

// ScheduleResult is the outcome of a slot search. A search that finds no
// feasible day reports Success=false with a human-readable reason; it is a
// normal business outcome, not an error.
type ScheduleResult struct {
	Success      bool           `json:"success"`
	Scheduled    *ScheduleSlot  `json:"scheduled,omitempty"`
	Alternatives []ScheduleSlot `json:"alternatives,omitempty"`
	Reason       string         `json:"reason,omitempty"`
}
