package itinerary

import (
	"fmt"
	"time"
)

// DefaultBufferMinutes is the travel time reserved between two visits on the same day.
const DefaultBufferMinutes = 15

// Place is a named stop. Description is informational only.
type Place struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Visit pairs a place with the number of minutes to spend there.
type Visit struct {
	Place   Place `json:"place"`
	Minutes int   `json:"minutes"`
}

// Clock is a time of day applied to every day of a trip.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) valid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60
}

// On returns the instant at this clock time on the given date.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Entry is a single scheduled visit.
type Entry struct {
	Place   Place     `json:"place"`
	Minutes int       `json:"minutes"`
	Arrive  time.Time `json:"arrive"`
	Depart  time.Time `json:"depart"`
}

// Day holds the entries scheduled on one calendar date, in arrival order.
type Day struct {
	Date    time.Time `json:"date"`
	Entries []Entry   `json:"entries"`
}

// Request is the input to Build.
type Request struct {
	Visits        []Visit
	Start         time.Time
	End           time.Time
	DailyStart    Clock
	BufferMinutes int
}

// Schedule is the result of Build. Days are in ascending date order and
// cover every date of the trip window, including days with no entries.
type Schedule struct {
	Days          []Day `json:"days"`
	DailyStart    Clock `json:"-"`
	BufferMinutes int   `json:"buffer_minutes"`
}

// Day returns the bucket for the given calendar date.
func (s *Schedule) Day(date time.Time) (Day, bool) {
	y, m, d := date.Date()
	for _, day := range s.Days {
		dy, dm, dd := day.Date.Date()
		if dy == y && dm == m && dd == d {
			return day, true
		}
	}
	return Day{}, false
}

// Len returns the total number of entries across all days.
func (s *Schedule) Len() int {
	n := 0
	for _, day := range s.Days {
		n += len(day.Entries)
	}
	return n
}
