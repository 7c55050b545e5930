package itinerary

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange    = errors.New("invalid trip range")
	ErrInvalidDuration = errors.New("invalid visit duration")
	ErrNegativeBuffer  = errors.New("buffer minutes must not be negative")
	ErrBufferTooLarge  = errors.New("buffer minutes too large")
	ErrInvalidClock    = errors.New("daily start time out of range")
	ErrDuplicatePlace  = errors.New("place selected more than once")
	ErrUnknownPlace    = errors.New("place is not part of the schedule")
	ErrPlaceCount      = errors.New("number of places out of range")
)

// InvalidRangeError reports a trip window whose end precedes its start.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("trip end %s is before start %s", e.End.In(e.Start.Location()).Format(time.DateOnly), e.Start.Format(time.DateOnly))
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

// InvalidDurationError reports a visit duration that is non-positive or
// outside the accepted bounds.
type InvalidDurationError struct {
	Place   string
	Minutes int
	Min     int
	Max     int
}

func (e *InvalidDurationError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("duration %d min for %q must be between %d and %d", e.Minutes, e.Place, e.Min, e.Max)
	}
	return fmt.Sprintf("duration %d min for %q must be positive", e.Minutes, e.Place)
}

func (e *InvalidDurationError) Is(target error) bool { return target == ErrInvalidDuration }
