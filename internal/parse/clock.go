package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tour-planner-backend/internal/itinerary"
)

var (
	clockRe   = regexp.MustCompile(`(?i)^(\d{1,2}):?(\d{2})\s*(am|pm|a\.m\.|p\.m\.)?$`)
	hourOnly  = regexp.MustCompile(`(?i)^(\d{1,2})\s*(am|pm|a\.m\.|p\.m\.)$`)
	minutesRe = regexp.MustCompile(`(?i)^(\d+)\s*(?:m|min|mins|minutes)?$`)
	hoursRe   = regexp.MustCompile(`(?i)^(\d+)(?:\.(\d+))?\s*(?:h|hr|hrs|hours)$`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// Date parses a YYYY-MM-DD date at midnight in loc.
func Date(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

// Clock parses a time of day such as "9:00", "09:00", "0900", "9:00 AM" or "9pm".
func Clock(s string) (itinerary.Clock, error) {
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))

	var hour, minute int
	var suffix string
	if m := clockRe.FindStringSubmatch(s); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		suffix = m[3]
	} else if m := hourOnly.FindStringSubmatch(s); m != nil {
		hour, _ = strconv.Atoi(m[1])
		suffix = m[2]
	} else {
		return itinerary.Clock{}, fmt.Errorf("unable to parse time of day: %q", s)
	}

	switch strings.ToLower(strings.ReplaceAll(suffix, ".", "")) {
	case "am":
		if hour < 1 || hour > 12 {
			return itinerary.Clock{}, fmt.Errorf("hour out of range in %q", s)
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return itinerary.Clock{}, fmt.Errorf("hour out of range in %q", s)
		}
		if hour != 12 {
			hour += 12
		}
	}

	if hour > 23 || minute > 59 {
		return itinerary.Clock{}, fmt.Errorf("time of day out of range: %q", s)
	}
	return itinerary.Clock{Hour: hour, Minute: minute}, nil
}

// Minutes parses a visit length such as "90", "90m", "90 min", "1h30m" or "1.5h".
func Minutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if m := minutesRe.FindStringSubmatch(s); m != nil {
		return strconv.Atoi(m[1])
	}
	if m := hoursRe.FindStringSubmatch(s); m != nil {
		n, ok := hoursToMinutes(m[1], m[2])
		if !ok {
			return 0, fmt.Errorf("unable to parse duration: %q", s)
		}
		return n, nil
	}
	// Go duration syntax covers "1h30m", "2h", "45m0s".
	d, err := time.ParseDuration(strings.ReplaceAll(s, " ", ""))
	if err != nil || d%time.Minute != 0 {
		return 0, fmt.Errorf("unable to parse duration: %q", s)
	}
	return int(d / time.Minute), nil
}

// hoursToMinutes converts a decimal hour count to minutes. Fractions that do
// not come to a whole number of minutes are rejected.
func hoursToMinutes(whole, frac string) (int, bool) {
	h, err := strconv.Atoi(whole)
	if err != nil || h > itinerary.MaxMinutes/60 {
		return 0, false
	}
	frac = strings.TrimRight(frac, "0")
	// Past two significant decimals no fraction is a whole minute.
	if len(frac) > 2 {
		return 0, false
	}
	var extra int
	if frac != "" {
		f, _ := strconv.Atoi(frac)
		scale := 10
		if len(frac) == 2 {
			scale = 100
		}
		if f*60%scale != 0 {
			return 0, false
		}
		extra = f * 60 / scale
	}
	return h*60 + extra, true
}
