package scheduling

import (
	"fmt"
	"time"
)

// The booking grid is a fixed, public contract: 33 half-hour slots from
// 05:00:00 to 21:00:00 inclusive. Changing it changes booking behavior for
// every doctor, so it must be versioned deliberately.
const (
	gridStartMinute = 5 * 60
	gridEndMinute   = 21 * 60
	slotMinutes     = 30
)

// TimeGrid is the ascending list of bookable HH:MM:SS times of day.
var TimeGrid = buildGrid()

func buildGrid() []string {
	grid := make([]string, 0, (gridEndMinute-gridStartMinute)/slotMinutes+1)
	for m := gridStartMinute; m <= gridEndMinute; m += slotMinutes {
		grid = append(grid, fmt.Sprintf("%02d:%02d:00", m/60, m%60))
	}
	return grid
}

// MinuteOfDay parses an HH:MM:SS time of day into minutes since midnight.
func MinuteOfDay(timeOfDay string) (int, error) {
	t, err := time.Parse("15:04:05", timeOfDay)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", timeOfDay, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
