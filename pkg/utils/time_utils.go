package utils

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// Korea Standard Time (+09:00). Trip dates are calendar dates in Seoul.
var kstLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*3600)
}()

func NowUnixSeconds() int64 { return time.Now().Unix() }

// ParseTripDate parses a YYYY-MM-DD calendar date in KST.
func ParseTripDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, kstLoc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// TripDays is ceil(|end-start| in days) + 1, so a same-day trip is one day.
func TripDays(start, end time.Time) int {
	diff := math.Abs(end.Sub(start).Hours())
	return int(math.Ceil(diff/24)) + 1
}

// DayMonthToken renders a YYYY-MM-DD date as DDMM, e.g. 2025-03-01 -> 0103.
func DayMonthToken(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, date)
	}
	return t.Format("0201"), nil
}

func FormatDisplayKST(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return time.Unix(unix, 0).In(kstLoc).Format("2006-01-02 15:04:05 -0700 MST")
}
