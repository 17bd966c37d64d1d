// Package season maps calendar dates onto Zimbabwe's farming calendar.
package season

import "time"

// Info describes where a date falls in the farming calendar.
type Info struct {
	Month    string `json:"month"`
	Season   string `json:"season"`
	Activity string `json:"activity"`
}

const (
	WetSeason      = "wet season (rainy season)"
	EarlyDrySeason = "early dry season (harvest time)"
	DrySeason      = "dry season"

	ActivityMainPlanting = "main planting season for summer crops"
	ActivityGrowing      = "crop growing and management season"
	ActivityHarvesting   = "harvesting and post-harvest activities"
	ActivityLandPrep     = "land preparation and winter crop planting"
)

// For returns the season info for t. Wet season runs November to March,
// early dry season April to June and dry season July to October.
func For(t time.Time) Info {
	m := t.Month()
	info := Info{Month: m.String()}

	switch {
	case m >= time.November || m <= time.March:
		info.Season = WetSeason
		if m == time.November || m == time.December {
			info.Activity = ActivityMainPlanting
		} else {
			info.Activity = ActivityGrowing
		}
	case m <= time.June:
		info.Season = EarlyDrySeason
		info.Activity = ActivityHarvesting
	default:
		info.Season = DrySeason
		info.Activity = ActivityLandPrep
	}

	return info
}
