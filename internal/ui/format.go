package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/kulku/internal/digitransit"
)

// formatDuration renders d as "1h 2m 3s", leaving out zero components.
func formatDuration(d time.Duration) string {
	secs := int64(d.Round(time.Second) / time.Second)
	if secs <= 0 {
		return "0s"
	}
	h, m, s := secs/3600, (secs%3600)/60, secs%60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	return strings.Join(parts, " ")
}

// itineraryTitle is the border title of an itinerary box.
func itineraryTitle(it digitransit.Itinerary) string {
	return fmt.Sprintf("[ %s - %s | %s ]",
		it.StartTime.Format("15:04"),
		it.EndTime.Format("15:04"),
		formatDuration(it.Duration))
}

func modeIcon(mode digitransit.Mode) string {
	switch mode.Normalize() {
	case digitransit.ModeWalk:
		return "🚶"
	case digitransit.ModeBus:
		return "🚌"
	case digitransit.ModeTram:
		return "🚋"
	case digitransit.ModeRail:
		return "🚆"
	case digitransit.ModeSubway:
		return "🚇"
	case digitransit.ModeFerry:
		return "⛴"
	case digitransit.ModeBicycle:
		return "🚲"
	default:
		return "?"
	}
}

// legSummary is the middle line of a leg block.
func legSummary(leg digitransit.Leg) string {
	icon := modeIcon(leg.Mode)
	route := strings.TrimSpace(leg.RouteShortName)
	if leg.Mode.IsWalk() || route == "" {
		return fmt.Sprintf("%s %s", icon, formatDuration(leg.Duration))
	}
	return fmt.Sprintf("%s (%s) %s", icon, route, formatDuration(leg.Duration))
}
