package dbtime

import (
	"strings"
	"time"
)

// Tod is a time of day (HH:MM:SS) without date or zone.
type Tod struct{ time.Time }

// Parse accepts "HH:MM" or "HH:MM:SS".
func Parse(s string) (Tod, error) {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return Tod{}, err
	}
	return Tod{Time: tt}, nil
}

// SinceMidnight is the offset of the time of day from 00:00:00.
func (t Tod) SinceMidnight() time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}
