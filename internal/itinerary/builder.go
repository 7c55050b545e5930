// Package itinerary spreads selected places across the days of a trip and
// computes arrival and departure times for each visit.
package itinerary

import (
	"fmt"
	"math"
	"time"
)

// MaxMinutes is the longest visit or buffer, in minutes, that fits in a
// time.Duration.
const MaxMinutes = int(math.MaxInt64 / int64(time.Minute))

// Build distributes req.Visits over the days of the trip window and
// schedules each day sequentially from req.DailyStart.
//
// Visit i goes to day i mod N, where N is the number of calendar days in the
// window. Within a day, visits keep their input order and are separated by
// req.BufferMinutes. Every day of the window is present in the result, even
// when no visit was assigned to it.
func Build(req Request) (*Schedule, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	start := dateOf(req.Start)
	days := TripDays(start, req.End)

	buckets := make([][]Visit, days)
	for i, v := range req.Visits {
		buckets[i%days] = append(buckets[i%days], v)
	}

	s := &Schedule{
		Days:          make([]Day, days),
		DailyStart:    req.DailyStart,
		BufferMinutes: req.BufferMinutes,
	}
	for d := range buckets {
		s.Days[d] = s.pack(start.AddDate(0, 0, d), buckets[d])
	}
	return s, nil
}

// pack lays visits out back to back on date, starting at the daily start time.
func (s *Schedule) pack(date time.Time, visits []Visit) Day {
	day := Day{Date: date, Entries: make([]Entry, 0, len(visits))}
	clock := s.DailyStart.On(date)
	buffer := time.Duration(s.BufferMinutes) * time.Minute
	for _, v := range visits {
		depart := clock.Add(time.Duration(v.Minutes) * time.Minute)
		day.Entries = append(day.Entries, Entry{
			Place:   v.Place,
			Minutes: v.Minutes,
			Arrive:  clock,
			Depart:  depart,
		})
		clock = depart.Add(buffer)
	}
	return day
}

func validate(req Request) error {
	if TripDays(req.Start, req.End) < 1 {
		return &InvalidRangeError{Start: req.Start, End: req.End}
	}
	if req.BufferMinutes < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeBuffer, req.BufferMinutes)
	}
	if req.BufferMinutes > MaxMinutes {
		return fmt.Errorf("%w: %d", ErrBufferTooLarge, req.BufferMinutes)
	}
	if !req.DailyStart.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidClock, req.DailyStart)
	}
	seen := make(map[string]struct{}, len(req.Visits))
	for _, v := range req.Visits {
		if err := checkMinutes(v.Place.Name, v.Minutes); err != nil {
			return err
		}
		if _, dup := seen[v.Place.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicatePlace, v.Place.Name)
		}
		seen[v.Place.Name] = struct{}{}
	}
	return nil
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// checkMinutes rejects durations that are not positive or that would
// overflow the clock arithmetic.
func checkMinutes(place string, minutes int) error {
	switch {
	case minutes <= 0:
		return &InvalidDurationError{Place: place, Minutes: minutes}
	case minutes > MaxMinutes:
		return &InvalidDurationError{Place: place, Minutes: minutes, Min: 1, Max: MaxMinutes}
	}
	return nil
}

// TripDays counts calendar days from start to end inclusive. Both dates are
// read in start's location. The difference is taken on Unix seconds of UTC
// midnights, so neither DST nor the range of time.Duration skews it.
func TripDays(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.In(start.Location()).Date()
	from := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC).Unix()
	to := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC).Unix()
	return int((to-from)/(24*60*60)) + 1
}
