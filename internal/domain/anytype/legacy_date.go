package anytype

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

var legacyDateEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// LegacyTimestamp reports whether v is a number whose integer part prints with
// exactly ten characters, the shape of legacy day-count timestamps.
func LegacyTimestamp(v any) (int64, bool) {
	var n int64
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		n = int64(t)
	case int:
		n = int64(t)
	case int64:
		n = t
	default:
		return 0, false
	}
	return n, len(strconv.FormatInt(n, 10)) == 10
}

// DecodeLegacyDate turns a legacy timestamp into a calendar day: whole days since
// 2001-01-01, shifted back 31 years and one day. A shift that lands on Feb 29 of a
// non-leap year is an error.
func DecodeLegacyDate(n int64) (string, error) {
	days := n / 86400
	if n%86400 != 0 && n < 0 {
		days--
	}
	date := legacyDateEpoch.AddDate(0, 0, int(days))
	year := date.Year() - 31
	if date.Month() == time.February && date.Day() == 29 && !isLeapYear(year) {
		return "", fmt.Errorf("day is out of range for month: %d-02-29", year)
	}
	shifted := time.Date(year, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return shifted.Format("2006-01-02"), nil
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
