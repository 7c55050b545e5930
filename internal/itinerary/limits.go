package itinerary

import "fmt"

// Limits are the bounds the planning form enforces before calling Build.
type Limits struct {
	MinMinutes int
	MaxMinutes int
	MinPlaces  int
	MaxPlaces  int
}

// DefaultLimits matches the form: 15 to 300 minutes per stop, 1 to 5 stops.
var DefaultLimits = Limits{MinMinutes: 15, MaxMinutes: 300, MinPlaces: 1, MaxPlaces: 5}

// Check validates the number of visits and each visit's duration.
func (l Limits) Check(visits []Visit) error {
	if len(visits) < l.MinPlaces || (l.MaxPlaces > 0 && len(visits) > l.MaxPlaces) {
		return fmt.Errorf("%w: got %d, want %d to %d", ErrPlaceCount, len(visits), l.MinPlaces, l.MaxPlaces)
	}
	for _, v := range visits {
		if err := l.CheckMinutes(v.Place.Name, v.Minutes); err != nil {
			return err
		}
	}
	return nil
}

// CheckMinutes validates a single duration against the bounds.
func (l Limits) CheckMinutes(place string, minutes int) error {
	if minutes < l.MinMinutes || (l.MaxMinutes > 0 && minutes > l.MaxMinutes) || minutes <= 0 {
		return &InvalidDurationError{Place: place, Minutes: minutes, Min: l.MinMinutes, Max: l.MaxMinutes}
	}
	return nil
}
