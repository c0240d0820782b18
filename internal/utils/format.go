// Package utils provides shared utility functions
package utils

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Placeholder is shown instead of an empty timestamp
const Placeholder = "-"

// InvalidDate is shown for timestamps the parser cannot read
const InvalidDate = "Invalid Date"

// DefaultLocale is the locale used when none (or an unknown one) is configured
const DefaultLocale = "zh-CN"

// hourToken stands for the 24-hour clock without padding, which Go layouts lack
const hourToken = "H"

// localeLayouts mirror the browser's toLocaleString output for each locale
var localeLayouts = map[string]string{
	"zh-CN": "2006/1/2 15:04:05",
	"ja-JP": "2006/1/2 H:04:05",
	"en-US": "1/2/2006, 3:04:05 PM",
	"en-GB": "02/01/2006, 15:04:05",
	"de-DE": "2.1.2006, 15:04:05",
}

// localLayouts are parsed in the formatter's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"20060102_150405",
}

// DateFormatter renders timestamps in a fixed locale and time zone
type DateFormatter struct {
	layout   string
	location *time.Location
}

// NewDateFormatter creates a formatter for locale. Unknown locales fall back to
// DefaultLocale and a nil location means time.Local.
func NewDateFormatter(locale string, location *time.Location) DateFormatter {
	layout, ok := localeLayouts[locale]
	if !ok {
		layout = localeLayouts[DefaultLocale]
	}
	if location == nil {
		location = time.Local
	}
	return DateFormatter{layout: layout, location: location}
}

// SupportedLocale reports whether locale has a dedicated layout
func SupportedLocale(locale string) bool {
	_, ok := localeLayouts[locale]
	return ok
}

// Format converts a timestamp string to a display string (e.g. "2024/3/5 14:07:09").
// Empty input yields Placeholder; unparseable input yields InvalidDate.
func (f DateFormatter) Format(ts string) string {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return Placeholder
	}
	t, ok := f.parse(ts)
	if !ok {
		return InvalidDate
	}
	return f.FormatTime(t)
}

// FormatTime formats an already parsed time. The zero time yields Placeholder.
func (f DateFormatter) FormatTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	loc := f.location
	if loc == nil {
		loc = time.Local
	}
	layout := f.layout
	if layout == "" {
		layout = localeLayouts[DefaultLocale]
	}
	t = t.In(loc)
	out := t.Format(layout)
	if strings.Contains(layout, hourToken) {
		out = strings.Replace(out, hourToken, strconv.Itoa(t.Hour()), 1)
	}
	return out
}

func (f DateFormatter) parse(ts string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t, true
	}
	loc := f.location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, ts, loc); err == nil {
			return t, true
		}
	}
	// A bare date is UTC midnight, as in the JavaScript Date parser.
	if t, err := time.Parse(time.DateOnly, ts); err == nil {
		return t, true
	}
	return time.Time{}, false
}

var defaultDateFormatter = NewDateFormatter(DefaultLocale, nil)

// FormatDateTime formats ts with the default locale in local time
func FormatDateTime(ts string) string {
	return defaultDateFormatter.Format(ts)
}

// FormatRelative returns a relative description such as "3 minutes ago"
func FormatRelative(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return humanize.Time(t)
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize converts bytes to a human-readable string (e.g. "1.5 KB").
// Values past the largest unit stay in GB.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	const k = 1024
	i := 0
	if bytes > 0 {
		i = int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
		// log rounding can land one step off at exact powers of 1024
		if i+1 < len(sizeUnits) && float64(bytes) >= math.Pow(k, float64(i+1)) {
			i++
		} else if i > 0 && float64(bytes) < math.Pow(k, float64(i)) {
			i--
		}
	}
	i = max(0, min(i, len(sizeUnits)-1))

	value := math.Round(float64(bytes)/math.Pow(k, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}
