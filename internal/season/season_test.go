package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	tests := []struct {
		month    time.Month
		season   string
		activity string
	}{
		{time.January, WetSeason, ActivityGrowing},
		{time.February, WetSeason, ActivityGrowing},
		{time.March, WetSeason, ActivityGrowing},
		{time.April, EarlyDrySeason, ActivityHarvesting},
		{time.May, EarlyDrySeason, ActivityHarvesting},
		{time.June, EarlyDrySeason, ActivityHarvesting},
		{time.July, DrySeason, ActivityLandPrep},
		{time.August, DrySeason, ActivityLandPrep},
		{time.September, DrySeason, ActivityLandPrep},
		{time.October, DrySeason, ActivityLandPrep},
		{time.November, WetSeason, ActivityMainPlanting},
		{time.December, WetSeason, ActivityMainPlanting},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			got := For(time.Date(2025, tt.month, 15, 9, 0, 0, 0, time.UTC))
			assert.Equal(t, tt.month.String(), got.Month)
			assert.Equal(t, tt.season, got.Season)
			assert.Equal(t, tt.activity, got.Activity)
		})
	}
}

func TestFor_SameDateSameInfo(t *testing.T) {
	d := time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, For(d), For(d))
}
