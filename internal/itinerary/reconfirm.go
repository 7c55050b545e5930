package itinerary

import "fmt"

// Reconfirm returns a copy of s with the durations of the named places
// replaced by minutes. Places keep the day they were assigned to by Build;
// only arrival and departure times within each day are recomputed.
func (s *Schedule) Reconfirm(minutes map[string]int) (*Schedule, error) {
	known := make(map[string]struct{}, s.Len())
	for _, day := range s.Days {
		for _, e := range day.Entries {
			known[e.Place.Name] = struct{}{}
		}
	}
	for name, m := range minutes {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlace, name)
		}
		if err := checkMinutes(name, m); err != nil {
			return nil, err
		}
	}

	out := &Schedule{
		Days:          make([]Day, len(s.Days)),
		DailyStart:    s.DailyStart,
		BufferMinutes: s.BufferMinutes,
	}
	for i, day := range s.Days {
		visits := make([]Visit, len(day.Entries))
		for j, e := range day.Entries {
			visits[j] = Visit{Place: e.Place, Minutes: e.Minutes}
			if m, ok := minutes[e.Place.Name]; ok {
				visits[j].Minutes = m
			}
		}
		out.Days[i] = out.pack(day.Date, visits)
	}
	return out, nil
}
