package store

import (
	"tour-planner-backend/internal/itinerary"
	"tour-planner-backend/internal/model"
)

// PlaceItem is a point of interest as returned by an upstream catalog.
type PlaceItem struct {
	ExternalID  string
	Name        string
	Description string
	Category    string
	Source      string
	Address     string
	Rating      *float64
	PriceLevel  *int
	Lat         float64
	Lon         float64
}

// Filter narrows ListPlaces. Zero values match everything.
type Filter struct {
	City     string
	Category string
	Source   string
	MaxPrice *int
}

// AsPlace converts a stored place into the itinerary's view of it.
func AsPlace(p model.Place) itinerary.Place {
	return itinerary.Place{Name: p.Name, Description: p.Description}
}

// AsPlaces converts a slice of stored places, keeping order.
func AsPlaces(ps []model.Place) []itinerary.Place {
	out := make([]itinerary.Place, len(ps))
	for i, p := range ps {
		out[i] = AsPlace(p)
	}
	return out
}
