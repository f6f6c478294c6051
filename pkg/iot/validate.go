package iot

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

// requireKey checks an identifier that will become a path segment.
func requireKey(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return common.NewValidationError(fmt.Sprintf("%s is required", field), []string{field})
	}
	if err := rtdb.ValidateKey(value); err != nil {
		return common.NewValidationError(fmt.Sprintf("%s contains illegal characters", field), []string{field})
	}
	return nil
}

func missingFields(fields map[string]string, order ...string) []string {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

func parseDateTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// ParseShiftTime accepts unix millis (number or digit string) or a date string
// and returns unix millis.
func ParseShiftTime(v any, loc *time.Location) (int64, error) {
	switch t := v.(type) {
	case nil:
		return 0, fmt.Errorf("missing time")
	case float64:
		if t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, fmt.Errorf("invalid time %v", t)
		}
		return int64(t), nil
	case int64:
		if t <= 0 {
			return 0, fmt.Errorf("invalid time %d", t)
		}
		return t, nil
	case int:
		return ParseShiftTime(int64(t), loc)
	case json.Number:
		return ParseShiftTime(string(t), loc)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, fmt.Errorf("missing time")
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ParseShiftTime(ms, loc)
		}
		parsed, err := parseDateTime(s, loc)
		if err != nil {
			return 0, err
		}
		return parsed.UnixMilli(), nil
	default:
		return 0, fmt.Errorf("unsupported time value %v", v)
	}
}

// dayBounds returns the first and last unix second of the calendar days named
// by start and end in loc.
func dayBounds(start, end string, loc *time.Location) (int64, int64, error) {
	s, err := parseDateTime(strings.TrimSpace(start), loc)
	if err != nil {
		return 0, 0, err
	}
	e, err := parseDateTime(strings.TrimSpace(end), loc)
	if err != nil {
		return 0, 0, err
	}
	s = s.In(loc)
	e = e.In(loc)
	from := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc)
	to := time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, 999_000_000, loc)
	return from.Unix(), to.Unix(), nil
}
