// Package tradingdate normalizes trading dates to the Asia/Kolkata calendar day.
//
// Every stored tradingDate and every range bound goes through this package, so stored values
// and query bounds are directly comparable as strings.
package tradingdate

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"trading_journal/internal/feature/charts/domain"
)

// Layout is the canonical serialization of a normalized instant (UTC, millisecond precision).
const Layout = "2006-01-02T15:04:05.000Z"

const dateOnly = "2006-01-02"

// Zone-less datetimes are read as Kolkata wall time. Fractional seconds are accepted by time.Parse.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var kolkata = loadKolkata()

func loadKolkata() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// IST has had no DST since 1945.
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// Location returns the trading timezone.
func Location() *time.Location {
	return kolkata
}

// StartOfDay returns 00:00:00.000 Kolkata time on the calendar day named by s, in UTC.
func StartOfDay(s string) (time.Time, error) {
	y, m, d, err := calendarDay(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(y, m, d, 0, 0, 0, 0, kolkata).UTC(), nil
}

// EndOfDay returns 23:59:59.999 Kolkata time on the calendar day named by s, in UTC.
func EndOfDay(s string) (time.Time, error) {
	y, m, d, err := calendarDay(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), kolkata).UTC(), nil
}

// Normalize returns the canonical string for the start of the Kolkata day named by s.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) (string, error) {
	t, err := StartOfDay(s)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}

// Format serializes t in the canonical layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse reads a string produced by Format.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return t, nil
}

func calendarDay(s string) (int, time.Month, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, 0, fmt.Errorf("%w: empty", domain.ErrInvalidDate)
	}

	if t, err := time.ParseInLocation(dateOnly, s, kolkata); err == nil {
		y, m, d := t.Date()
		return y, m, d, nil
	}

	// Offset-bearing instants pick their calendar day in Kolkata.
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		y, m, d := t.In(kolkata).Date()
		return y, m, d, nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, kolkata); err == nil {
			y, m, d := t.Date()
			return y, m, d, nil
		}
	}

	return 0, 0, 0, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
}
