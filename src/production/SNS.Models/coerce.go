package snsmodels

import (
	"strconv"
	"strings"
)

// NumberFromString parses s as a float. Absent or unparsable values
// coerce to 0 rather than failing; embedded clients send all manner of
// garbage and ingestion must never reject a sample over it.
func NumberFromString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}

// NumberFromValue coerces a decoded JSON value to a float with the same
// policy as NumberFromString. Numbers pass through, numeric strings are
// parsed, everything else is 0.
func NumberFromValue(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		return NumberFromString(value)
	case int:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return 0
	}
}

// FormatNumber renders a float the way clients sent it, without
// exponent notation or trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
