package itinerary

import (
	"net/url"
	"strings"
)

const mapsDirectionsURL = "https://www.google.com/maps/dir/"

// RouteURL builds a Google Maps directions link through the given places,
// in order. Each waypoint is "<name>, <locality>" in form encoding.
func RouteURL(names []string, locality string) string {
	parts := make([]string, len(names))
	for i, name := range names {
		q := name
		if locality != "" {
			q += ", " + locality
		}
		parts[i] = url.QueryEscape(q)
	}
	return mapsDirectionsURL + strings.Join(parts, "/")
}

// Names returns the place names of visits in order.
func Names(visits []Visit) []string {
	names := make([]string, len(visits))
	for i, v := range visits {
		names[i] = v.Place.Name
	}
	return names
}
