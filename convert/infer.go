package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"odsw/table"
)

// integers above this cannot be kept exactly by spreadsheet numbers
const maxExactInt = 1 << 53

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// setValue stores source value v into cell c. Strings are examined for
// numbers, booleans, percentages, dates and durations when infer is set.
func setValue(c *table.Cell, v any, infer bool) error {
	switch v := v.(type) {
	case nil:
		return nil
	case int64:
		if v > maxExactInt || v < -maxExactInt {
			return c.SetString(strconv.FormatInt(v, 10))
		}
		return c.SetInt(v)
	case float64:
		return c.SetFloat(v)
	case bool:
		return c.SetBool(v)
	case blob:
		return c.SetString(v.String())
	case string:
		if infer {
			return inferValue(c, v)
		}
		if v == "" {
			return nil
		}
		return c.SetString(v)
	default:
		return c.SetString(fmt.Sprint(v))
	}
}

// blob stands for binary value which is not copied into document.
type blob int

func (b blob) String() string {
	return fmt.Sprintf("BLOB(%d)", int(b))
}

func inferValue(c *table.Cell, s string) error {
	t := strings.TrimSpace(s)
	if t == "" {
		if s == "" {
			return nil
		}
		return c.SetString(s)
	}

	switch {
	case strings.EqualFold(t, "true"):
		return c.SetBool(true)
	case strings.EqualFold(t, "false"):
		return c.SetBool(false)
	}

	if looksNumeric(t) && !hasLeadingZero(t) {
		if p, ok := strings.CutSuffix(t, "%"); ok {
			if f, err := strconv.ParseFloat(p, 64); err == nil {
				return c.SetPercentage(f / 100)
			}
		} else if i, err := strconv.ParseInt(t, 10, 64); err == nil {
			if i <= maxExactInt && i >= -maxExactInt {
				return c.SetInt(i)
			}
			return c.SetString(s)
		} else if f, err := strconv.ParseFloat(t, 64); err == nil {
			return c.SetFloat(f)
		}
	}
	if d, ok := parseDuration(t); ok {
		return c.SetTime(d)
	}
	if tm, ok := parseDate(t); ok {
		return c.SetDate(tm)
	}
	return c.SetString(s)
}

// looksNumeric rejects everything strconv would accept but people do not
// write in tables: "Inf", "NaN", hex floats, underscores.
func looksNumeric(s string) bool {
	digits := false
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch >= '0' && ch <= '9':
			digits = true
		case ch == '+', ch == '-', ch == '.', ch == 'e', ch == 'E':
		case ch == '%' && i == len(s)-1:
		default:
			return false
		}
	}
	return digits
}

// hasLeadingZero detects codes like "007" which must stay text.
func hasLeadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}

// parseDuration accepts H:MM and H:MM:SS[.fff].
func parseDuration(s string) (time.Duration, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	h, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, false
	}
	m, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || m > 59 || len(parts[1]) != 2 {
		return 0, false
	}
	d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
	if len(parts) == 3 {
		sec, frac, _ := strings.Cut(parts[2], ".")
		v, err := strconv.ParseUint(sec, 10, 8)
		if err != nil || v > 59 || len(sec) != 2 {
			return 0, false
		}
		d += time.Duration(v) * time.Second
		if frac != "" {
			f, err := strconv.ParseFloat("0."+frac, 64)
			if err != nil || strings.ContainsAny(frac, "+-eE") {
				return 0, false
			}
			d += time.Duration(f * float64(time.Second))
		}
	}
	return d, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
