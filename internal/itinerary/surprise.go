package itinerary

import "fmt"

// SurpriseDurations are the durations a surprise pick can be given.
var SurpriseDurations = []int{30, 60, 90, 120}

// Rand is the random source used by Surprise. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Surprise picks count distinct places from catalog and gives each a
// duration drawn from choices. A nil or empty choices uses SurpriseDurations.
// The catalog slice is not modified.
func Surprise(rng Rand, catalog []Place, count int, choices []int) ([]Visit, error) {
	if count < 0 || count > len(catalog) {
		return nil, fmt.Errorf("%w: cannot pick %d from %d places", ErrPlaceCount, count, len(catalog))
	}
	if len(choices) == 0 {
		choices = SurpriseDurations
	}

	// Partial Fisher-Yates over a copy.
	pool := append([]Place(nil), catalog...)
	visits := make([]Visit, 0, count)
	for i := 0; i < count; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		visits = append(visits, Visit{
			Place:   pool[i],
			Minutes: choices[rng.IntN(len(choices))],
		})
	}
	return visits, nil
}
