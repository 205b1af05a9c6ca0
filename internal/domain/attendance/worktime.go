package attendance

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04:05", "15:04"}

func parseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// WorkHours returns the time between two wall-clock readings as "H:MM", with
// both parts floored. A checkout earlier than the check-in is taken to fall on
// the next day.
func WorkHours(checkIn, checkOut string) (string, error) {
	in, err := parseClock(checkIn)
	if err != nil {
		return "", err
	}
	out, err := parseClock(checkOut)
	if err != nil {
		return "", err
	}

	diff := out - in
	if diff < 0 {
		diff += 24 * time.Hour
	}

	hours := int(diff / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)
	return fmt.Sprintf("%d:%02d", hours, minutes), nil
}

// ClockString formats t the way check-in and check-out cells are written.
func ClockString(t time.Time) string {
	return t.Format("15:04:05")
}
