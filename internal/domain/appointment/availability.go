package appointment

import (
	"iter"
	"time"
)

const DefaultSlotMinutes = 30

type SlotRequest struct {
	BarberID           uint
	Date               time.Time
	GranularityMin     int
	Hours              DayHours
	ServiceDurationMin int
}

type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Time      string    `json:"time"`
	Available bool      `json:"available"`
}

// ComputeSlots yields every slot start in [open, close) stepping by the granularity.
// A slot is available when the requested service fits before closing and outside
// lunch, does not overlap any active busy appointment, and starts after now.
// The sequence can be ranged over any number of times.
func ComputeSlots(req SlotRequest, busy []Appointment, now time.Time) iter.Seq[TimeSlot] {
	return func(yield func(TimeSlot) bool) {
		if req.Hours.Closed || req.ServiceDurationMin <= 0 {
			return
		}

		granularity := req.GranularityMin
		if granularity <= 0 {
			granularity = DefaultSlotMinutes
		}
		step := time.Duration(granularity) * time.Minute
		duration := time.Duration(req.ServiceDurationMin) * time.Minute

		for cur := req.Hours.Open; cur.Before(req.Hours.Close); cur = cur.Add(step) {
			end := cur.Add(duration)

			available := cur.After(now) &&
				req.Hours.Contains(cur, end) &&
				FindConflict(busy, cur, end, 0) == nil

			slot := TimeSlot{
				Start:     cur,
				End:       end,
				Time:      cur.Format(hmLayout),
				Available: available,
			}
			if !yield(slot) {
				return
			}
		}
	}
}
