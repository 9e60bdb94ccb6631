package ui

import (
	"time"

	"github.com/five82/kulku/internal/digitransit"
)

// Layout constants for the itinerary view.
const (
	// itineraryHeight is the rows taken by one itinerary box: two border rows
	// plus the three lines of a leg block.
	itineraryHeight = 5

	// minLegDuration hides short legs (transfers, a few steps on foot) from the
	// visual breakdown. They stay in the data.
	minLegDuration = 60 * time.Second

	headerHeight = 1
	footerHeight = 1
)

// legSpan is a leg with its column width inside an itinerary box.
type legSpan struct {
	Leg   digitransit.Leg
	Width int
}

// legSpans sizes each leg by its share of the itinerary's duration. Legs at or
// below minLegDuration are dropped, as are legs too short to get a column.
func legSpans(it digitransit.Itinerary, width int) []legSpan {
	if width <= 0 {
		return nil
	}

	var visible []digitransit.Leg
	var sum time.Duration
	for _, leg := range it.Legs {
		if leg.Duration <= minLegDuration {
			continue
		}
		visible = append(visible, leg)
		sum += leg.Duration
	}
	if len(visible) == 0 {
		return nil
	}

	total := it.Duration
	if total < sum {
		total = sum
	}

	spans := make([]legSpan, 0, len(visible))
	for _, leg := range visible {
		w := int(int64(width) * int64(leg.Duration) / int64(total))
		if w <= 0 {
			continue
		}
		spans = append(spans, legSpan{Leg: leg, Width: w})
	}
	return spans
}

// visibleItineraries returns how many itinerary boxes fit in height rows.
func visibleItineraries(height, count int) int {
	avail := height - headerHeight - footerHeight
	if avail <= 0 || count <= 0 {
		return 0
	}
	return min(avail/itineraryHeight, count)
}
