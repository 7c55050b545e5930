package store

import "tour-planner-backend/internal/itinerary"

// DefaultCity is the city the seeded attractions belong to.
const DefaultCity = "Ras Al Khaimah"

// DefaultAttractions are the places every catalog starts with.
func DefaultAttractions() []itinerary.Place {
	return []itinerary.Place{
		{Name: "Jebel Jais", Description: "Famous for its mountain views and zipline adventure."},
		{Name: "Al Hamra Mall", Description: "Great for budget shopping and quick meals."},
		{Name: "RAK National Museum", Description: "Explore history on a budget."},
		{Name: "Al Marjan Island", Description: "Scenic beaches perfect for relaxing."},
		{Name: "Dhayah Fort", Description: "A historic fort with a panoramic view."},
	}
}
