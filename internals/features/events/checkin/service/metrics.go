package service

import (
	"errors"
	"log"
	"math"
	"strings"
	"time"

	model "zionhub_backend/internals/features/events/checkin/model"
	"zionhub_backend/internals/helpers/dbtime"
)

const EarlyArrivalThreshold = 15 * time.Minute

type AttendanceReport struct {
	TotalExpected   int `json:"total_expected"`
	TotalCheckedIn  int `json:"total_checked_in"`
	TotalCheckedOut int `json:"total_checked_out"`
	AttendanceRate  int `json:"attendance_rate"`
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

var errMixedInputs = errors.New("cannot compare a time of day with a full timestamp")

// parseInstant accepts RFC 3339 style timestamps or a bare HH:MM[:SS].
// The second result reports whether s was a bare time of day.
func parseInstant(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, false, nil
		}
	}
	tod, err := dbtime.Parse(s)
	if err != nil {
		return time.Time{}, false, err
	}
	return tod.Time, true, nil
}

func parsePair(a, b string) (time.Time, time.Time, error) {
	ta, todA, err := parseInstant(a)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	tb, todB, err := parseInstant(b)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if todA != todB {
		return time.Time{}, time.Time{}, errMixedInputs
	}
	return ta, tb, nil
}

// roundHalfUp rounds .5 toward +inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// DurationMinutes is the rounded number of minutes between in and out.
func DurationMinutes(in, out time.Time) int {
	return roundHalfUp(float64(out.Sub(in).Milliseconds()) / 60000)
}

// CalculateDuration returns 0 on malformed input.
func CalculateDuration(checkIn, checkOut string) int {
	in, out, err := parsePair(checkIn, checkOut)
	if err != nil {
		log.Printf("[WARN] duration: %q -> %q: %v", checkIn, checkOut, err)
		return 0
	}
	return DurationMinutes(in, out)
}

// ArrivedEarly reports whether checkIn precedes eventStart by at least 15 minutes.
func ArrivedEarly(eventStart, checkIn time.Time) bool {
	return eventStart.Sub(checkIn) >= EarlyArrivalThreshold
}

// IsEarlyArrival returns false on malformed input.
func IsEarlyArrival(eventStart, checkIn string) bool {
	start, in, err := parsePair(eventStart, checkIn)
	if err != nil {
		log.Printf("[WARN] early arrival: %q / %q: %v", eventStart, checkIn, err)
		return false
	}
	return ArrivedEarly(start, in)
}

func GenerateAttendanceReport(records []model.EventAssignmentModel) AttendanceReport {
	r := AttendanceReport{TotalExpected: len(records)}
	for _, rec := range records {
		if rec.CheckInTime != nil {
			r.TotalCheckedIn++
		}
		if rec.CheckOutTime != nil {
			r.TotalCheckedOut++
		}
	}
	if r.TotalExpected > 0 {
		r.AttendanceRate = roundHalfUp(100 * float64(r.TotalCheckedIn) / float64(r.TotalExpected))
	}
	return r
}

// recordDuration is nil unless both timestamps are present.
func recordDuration(rec model.EventAssignmentModel) *int {
	if rec.CheckInTime == nil || rec.CheckOutTime == nil {
		return nil
	}
	d := DurationMinutes(*rec.CheckInTime, *rec.CheckOutTime)
	return &d
}
