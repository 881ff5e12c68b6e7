package xmlutil

import (
	"strconv"
	"time"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// FormatDuration renders milliseconds as an ISO 8601 duration limited to
// hours, minutes and seconds: PThhHmmMss[.mmm]S. Hours may exceed two digits.
func FormatDuration(milliseconds int64) string {
	b := make([]byte, 0, 24)
	ms := milliseconds
	if ms < 0 {
		b = append(b, '-')
		ms = -ms
	}
	b = append(b, 'P', 'T')

	hours := ms / msPerHour
	ms -= hours * msPerHour
	minutes := ms / msPerMinute
	ms -= minutes * msPerMinute
	seconds := ms / msPerSecond
	ms -= seconds * msPerSecond

	b = appendPadded(b, hours, 2)
	b = append(b, 'H')
	b = appendPadded(b, minutes, 2)
	b = append(b, 'M')
	b = appendPadded(b, seconds, 2)
	if ms > 0 {
		b = append(b, '.')
		b = appendPadded(b, ms, 3)
	}
	b = append(b, 'S')
	return string(b)
}

func appendPadded(b []byte, v int64, width int) []byte {
	for limit := int64(10); width > 1; width-- {
		if v < limit {
			b = append(b, '0')
		}
		limit *= 10
	}
	return strconv.AppendInt(b, v, 10)
}

// FormatFloat renders v as office:value, shortest representation without
// exponent.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DateLayout is used for office:date-value.
const DateLayout = "2006-01-02T15:04:05.000"

// FormatDate renders t as office:date-value in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatBool renders office:boolean-value.
func FormatBool(v bool) string {
	return strconv.FormatBool(v)
}
