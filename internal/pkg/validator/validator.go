package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// ParseCalendarDate accepts both "DD/MM/YYYY" and "YYYY-MM-DD" and returns the
// day at UTC midnight. Single-digit day and month are accepted in the slash form.
func ParseCalendarDate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return time.Time{}, fmt.Errorf("date %q must be in DD/MM/YYYY format", dateStr)
		}
		day, errD := strconv.Atoi(parts[0])
		month, errM := strconv.Atoi(parts[1])
		year, errY := strconv.Atoi(parts[2])
		if errD != nil || errM != nil || errY != nil || len(parts[2]) != 4 {
			return time.Time{}, fmt.Errorf("date %q must be in DD/MM/YYYY format", dateStr)
		}
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes 31/02 into March; reject instead.
		if t.Day() != day || int(t.Month()) != month {
			return time.Time{}, fmt.Errorf("date %q does not exist", dateStr)
		}
		return t, nil
	}

	t, ok := IsValidDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("date %q must be in DD/MM/YYYY or YYYY-MM-DD format", dateStr)
	}
	return t, nil
}

var clockRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])(?::([0-5][0-9]))?$`)

// ParseClock parses "HH:MM" or "HH:MM:SS" and returns seconds since midnight.
func ParseClock(s string) (int, error) {
	m := clockRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("time %q must be in HH:MM or HH:MM:SS format", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	return h*3600 + min*60 + sec, nil
}

// IsValidClock reports whether s is an "HH:MM" or "HH:MM:SS" time of day.
func IsValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// IsValidPeriod checks a month/year pair used for monthly queries.
func IsValidPeriod(month, year int) bool {
	return month >= 1 && month <= 12 && year >= 2000 && year <= 2100
}
