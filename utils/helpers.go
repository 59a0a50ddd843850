package utils

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ISOMillis is the timestamp layout used everywhere dates cross the API
// boundary: UTC with millisecond precision.
const ISOMillis = "2006-01-02T15:04:05.000Z"

// EnvOrDefault returns the env value or a fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// SubtractDates returns the signed whole-day difference d1 - d2. Inputs are
// ISO strings; anything past the date part is ignored.
func SubtractDates(d1, d2 string) (int, error) {
	t1, err := parseDay(d1)
	if err != nil {
		return 0, err
	}
	t2, err := parseDay(d2)
	if err != nil {
		return 0, err
	}
	return int(t1.Sub(t2).Hours() / 24), nil
}

func parseDay(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}

// TodayOptions selects which edge of today's window GetToday returns.
type TodayOptions struct {
	End bool
}

// GetToday returns today's day-start as an ISO timestamp, or day-end when
// End is set. Both edges share the same calendar-date prefix.
func GetToday(opts ...TodayOptions) string {
	now := time.Now().UTC()
	t := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if len(opts) > 0 && opts[0].End {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return t.Format(ISOMillis)
}

// ParseISO parses a timestamp produced by GetToday or an RFC3339 string.
func ParseISO(s string) (time.Time, error) {
	if t, err := time.Parse(ISOMillis, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount like "$5,000.00": grouped, two decimal
// digits, with the sign ahead of the symbol ("-$500.00").
func FormatCurrency(value float64) string {
	sign := ""
	if value < 0 || (value == 0 && math.Signbit(value)) {
		sign = "-"
		value = -value
	}
	return sign + "$" + currencyPrinter.Sprintf("%.2f", value)
}

// FormatDistanceFromNow humanizes the distance between now and an ISO
// timestamp: "3 days ago", "In 2 months".
func FormatDistanceFromNow(iso string) string {
	t, err := ParseISO(iso)
	if err != nil {
		return iso
	}
	d := time.Until(t)
	past := d < 0
	if past {
		d = -d
	}

	var phrase string
	switch {
	case d < time.Minute:
		phrase = "less than a minute"
	case d < time.Hour:
		phrase = pluralize(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		phrase = pluralize(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		phrase = pluralize(int(d.Hours()/24), "day")
	case d < 365*24*time.Hour:
		phrase = pluralize(int(d.Hours()/24/30), "month")
	default:
		phrase = pluralize(int(d.Hours()/24/365), "year")
	}

	if past {
		return phrase + " ago"
	}
	return "In " + phrase
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
