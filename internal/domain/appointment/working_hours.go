package appointment

import (
	"fmt"
	"time"
)

const hmLayout = "15:04"

// DayHours is the concrete business window of one calendar day.
type DayHours struct {
	Closed bool

	Open  time.Time
	Close time.Time

	// zero when there is no lunch break
	LunchStart time.Time
	LunchEnd   time.Time
}

func (h DayHours) HasLunch() bool {
	return !h.LunchStart.IsZero() && !h.LunchEnd.IsZero() && h.LunchEnd.After(h.LunchStart)
}

// Contains valida se [start, end) cabe no expediente, fora da pausa de almoço.
func (h DayHours) Contains(start, end time.Time) bool {
	if h.Closed {
		return false
	}
	if start.Before(h.Open) || end.After(h.Close) {
		return false
	}
	if h.HasLunch() && start.Before(h.LunchEnd) && end.After(h.LunchStart) {
		return false
	}
	return true
}

// WeekdayHours is a weekly template expressed as "HH:MM" strings.
type WeekdayHours struct {
	Closed     bool   `json:"closed"`
	Open       string `json:"open"`
	Close      string `json:"close"`
	LunchStart string `json:"lunch_start,omitempty"`
	LunchEnd   string `json:"lunch_end,omitempty"`
}

// DefaultWeeklyHours is the shop schedule used when a barber has no own working hours.
var DefaultWeeklyHours = map[time.Weekday]WeekdayHours{
	time.Monday:    {Open: "09:00", Close: "18:00"},
	time.Tuesday:   {Open: "09:00", Close: "18:00"},
	time.Wednesday: {Open: "09:00", Close: "18:00"},
	time.Thursday:  {Open: "09:00", Close: "18:00"},
	time.Friday:    {Open: "09:00", Close: "18:00"},
	time.Saturday:  {Open: "09:00", Close: "16:00"},
	time.Sunday:    {Open: "09:00", Close: "14:00"},
}

// On materializes the template on the calendar day of date, in date's location.
func (w WeekdayHours) On(date time.Time) (DayHours, error) {
	if w.Closed || w.Open == "" || w.Close == "" {
		return DayHours{Closed: true}, nil
	}

	parseHM := func(hm string) (time.Time, error) {
		t, err := time.Parse(hmLayout, hm)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q: %w", hm, err)
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			date.Location(),
		), nil
	}

	var (
		h   DayHours
		err error
	)
	if h.Open, err = parseHM(w.Open); err != nil {
		return DayHours{}, err
	}
	if h.Close, err = parseHM(w.Close); err != nil {
		return DayHours{}, err
	}
	if !h.Close.After(h.Open) {
		return DayHours{}, fmt.Errorf("close %s must be after open %s", w.Close, w.Open)
	}

	if w.LunchStart != "" && w.LunchEnd != "" {
		if h.LunchStart, err = parseHM(w.LunchStart); err != nil {
			return DayHours{}, err
		}
		if h.LunchEnd, err = parseHM(w.LunchEnd); err != nil {
			return DayHours{}, err
		}
	}

	return h, nil
}

// DayStart truncates t to midnight of its calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
