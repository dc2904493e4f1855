package core

import (
	"fmt"
	"strings"
	"time"
)

// datetimeLayouts are the ISO shapes the NLU provider emits for
// start_datetime values, tried in order.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDateTime parses an ISO datetime string. Naive values (no offset) are
// interpreted in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("core: empty datetime")
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range datetimeLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("core: unparseable datetime %q", s)
}

// ParseDate parses a YYYY-MM-DD date string at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("core: unparseable date %q", s)
	}
	return t, nil
}

// timezoneAliases maps the recognized abbreviation and region tokens to
// IANA zone names.
var timezoneAliases = map[string]string{
	"EST":      "America/New_York",
	"EDT":      "America/New_York",
	"CST":      "America/Chicago",
	"CDT":      "America/Chicago",
	"MST":      "America/Denver",
	"MDT":      "America/Denver",
	"PST":      "America/Los_Angeles",
	"PDT":      "America/Los_Angeles",
	"UTC":      "UTC",
	"GMT":      "GMT",
	"EASTERN":  "America/New_York",
	"CENTRAL":  "America/Chicago",
	"MOUNTAIN": "America/Denver",
	"PACIFIC":  "America/Los_Angeles",
}

// LookupTimezone resolves a timezone abbreviation or region word
// (case-insensitive) to a location. ok is false for unknown tokens.
func LookupTimezone(token string) (*time.Location, bool) {
	name, found := timezoneAliases[strings.ToUpper(strings.TrimSpace(token))]
	if !found {
		return nil, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	return loc, true
}

// FindTimezoneToken scans free-text values for the first recognized
// timezone token, matching whole words only.
func FindTimezoneToken(values []string) (string, bool) {
	for _, v := range values {
		for _, word := range strings.Fields(strings.ToUpper(v)) {
			word = strings.Trim(word, ".,!?()")
			if _, ok := timezoneAliases[word]; ok {
				return word, true
			}
		}
	}
	return "", false
}
