package cli

import (
	"fmt"
	"strings"
	"time"
)

// parseTimeArg parses an absolute or relative instant. Relative values
// ("90m", "2h", "1d", "2w") count back from now. Dates without a zone are
// read in loc.
func parseTimeArg(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return time.Time{}, fmt.Errorf("empty time")
	case "now":
		return now, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}

	// Relative days and weeks ("1d", "2w")
	if len(s) > 1 {
		unit := s[len(s)-1]
		value := s[:len(s)-1]
		var days int
		if _, err := fmt.Sscanf(value, "%d", &days); err == nil && fmt.Sprint(days) == value {
			switch unit {
			case 'd':
				return now.AddDate(0, 0, -days), nil
			case 'w':
				return now.AddDate(0, 0, -7*days), nil
			}
		}
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	layouts := []string{
		"2006-01-02",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse time %q", s)
}

// parseRange parses an optional --from/--to pair. Both or neither must be
// given.
func parseRange(from, to string, now time.Time, loc *time.Location) (*time.Time, *time.Time, error) {
	if from == "" && to == "" {
		return nil, nil, nil
	}
	if from == "" || to == "" {
		return nil, nil, ErrInvalidInput("--from and --to must be given together", nil)
	}

	start, err := parseTimeArg(from, now, loc)
	if err != nil {
		return nil, nil, ErrInvalidInput("invalid --from", err)
	}
	end, err := parseTimeArg(to, now, loc)
	if err != nil {
		return nil, nil, ErrInvalidInput("invalid --to", err)
	}
	if end.Before(start) {
		return nil, nil, ErrInvalidInput("--to is before --from", nil)
	}
	return &start, &end, nil
}
