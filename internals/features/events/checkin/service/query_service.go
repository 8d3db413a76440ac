package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	model "zionhub_backend/internals/features/events/checkin/model"
	"zionhub_backend/internals/helpers/dbtime"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100

	UnknownUserName = "Unknown"
)

// AttendanceReader is the read-only store surface behind roster and history views.
type AttendanceReader interface {
	ListEventAssignments(ctx context.Context, eventID uuid.UUID) ([]model.EventAssignmentModel, error)
	ListUserCheckins(ctx context.Context, userID uuid.UUID, limit int) ([]model.EventAssignmentModel, error)
	FindEvent(ctx context.Context, eventID uuid.UUID) (*model.EventRow, error)
	FindEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.EventRow, error)
	FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]model.UserRow, error)
}

type RosterEntry struct {
	ID              uuid.UUID              `json:"id"`
	EventID         uuid.UUID              `json:"event_id"`
	UserID          uuid.UUID              `json:"user_id"`
	FullName        string                 `json:"full_name"`
	Email           string                 `json:"email"`
	Status          model.AttendanceStatus `json:"status"`
	CheckInTime     *time.Time             `json:"check_in_time"`
	CheckOutTime    *time.Time             `json:"check_out_time"`
	Notes           *string                `json:"notes"`
	DurationMinutes *int                   `json:"duration_minutes"`
}

type HistoryEntry struct {
	ID              uuid.UUID              `json:"id"`
	EventID         uuid.UUID              `json:"event_id"`
	EventName       string                 `json:"event_name"`
	EventDate       string                 `json:"event_date,omitempty"`
	EventStartTime  string                 `json:"event_start_time,omitempty"`
	Status          model.AttendanceStatus `json:"status"`
	CheckInTime     *time.Time             `json:"check_in_time"`
	CheckOutTime    *time.Time             `json:"check_out_time"`
	DurationMinutes *int                   `json:"duration_minutes"`
}

type EventAttendance struct {
	EventID   uuid.UUID `json:"event_id"`
	EventName string    `json:"event_name"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time,omitempty"`
	AttendanceReport
	EarlyArrivals int           `json:"early_arrivals"`
	Attendees     []RosterEntry `json:"attendees"`
}

type AttendanceQueryService struct {
	store AttendanceReader
	loc   *time.Location
}

// NewAttendanceQueryService uses loc to place event start times; nil means UTC.
func NewAttendanceQueryService(store AttendanceReader, loc *time.Location) *AttendanceQueryService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceQueryService{store: store, loc: loc}
}

func (q *AttendanceQueryService) GetEvent(ctx context.Context, eventID uuid.UUID) (*model.EventRow, error) {
	ev, err := q.store.FindEvent(ctx, eventID)
	if err != nil {
		return nil, storageErr("find event", err)
	}
	if ev == nil {
		return nil, &NotFoundError{Reason: "event not found"}
	}
	return ev, nil
}

// GetEventRoster orders by check-in time, pending attendees last.
func (q *AttendanceQueryService) GetEventRoster(ctx context.Context, eventID uuid.UUID) ([]RosterEntry, error) {
	_, roster, err := q.loadRoster(ctx, eventID)
	return roster, err
}

func (q *AttendanceQueryService) loadRoster(ctx context.Context, eventID uuid.UUID) ([]model.EventAssignmentModel, []RosterEntry, error) {
	rows, err := q.store.ListEventAssignments(ctx, eventID)
	if err != nil {
		return nil, nil, storageErr("list assignments", err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	users, err := q.store.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, nil, storageErr("find users", err)
	}
	byID := make(map[uuid.UUID]model.UserRow, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]RosterEntry, 0, len(rows))
	for _, r := range rows {
		entry := RosterEntry{
			ID:              r.ID,
			EventID:         r.EventID,
			UserID:          r.UserID,
			FullName:        UnknownUserName,
			Status:          r.Status,
			CheckInTime:     r.CheckInTime,
			CheckOutTime:    r.CheckOutTime,
			Notes:           r.Notes,
			DurationMinutes: recordDuration(r),
		}
		if u, ok := byID[r.UserID]; ok {
			if u.FullName != nil && *u.FullName != "" {
				entry.FullName = *u.FullName
			}
			if u.Email != nil {
				entry.Email = *u.Email
			}
		}
		out = append(out, entry)
	}
	return rows, out, nil
}

// NormalizeHistoryLimit maps non-positive limits to the default and caps the rest.
func NormalizeHistoryLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

// GetUserHistory lists checked-in records, most recent first.
func (q *AttendanceQueryService) GetUserHistory(ctx context.Context, userID uuid.UUID, limit int) ([]HistoryEntry, error) {
	rows, err := q.store.ListUserCheckins(ctx, userID, NormalizeHistoryLimit(limit))
	if err != nil {
		return nil, storageErr("list checkins", err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.EventID)
	}
	events, err := q.store.FindEventsByIDs(ctx, ids)
	if err != nil {
		return nil, storageErr("find events", err)
	}
	byID := make(map[uuid.UUID]model.EventRow, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}

	out := make([]HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entry := HistoryEntry{
			ID:              r.ID,
			EventID:         r.EventID,
			Status:          r.Status,
			CheckInTime:     r.CheckInTime,
			CheckOutTime:    r.CheckOutTime,
			DurationMinutes: recordDuration(r),
		}
		if ev, ok := byID[r.EventID]; ok {
			entry.EventName = ev.Name
			entry.EventDate = ev.DateString()
			if ev.StartTime != nil {
				entry.EventStartTime = ev.StartTime.String()
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// GetEventAttendance combines the event header, roster and report.
func (q *AttendanceQueryService) GetEventAttendance(ctx context.Context, eventID uuid.UUID) (*EventAttendance, error) {
	ev, err := q.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	rows, roster, err := q.loadRoster(ctx, eventID)
	if err != nil {
		return nil, err
	}

	out := &EventAttendance{
		EventID:          ev.ID,
		EventName:        ev.Name,
		Date:             ev.DateString(),
		AttendanceReport: GenerateAttendanceReport(rows),
		Attendees:        roster,
	}
	if offset, ok := ev.StartOffset(); ok {
		out.StartTime = ev.StartTime.String()
		start := dbtime.EventStart(time.Time(ev.Date), offset, q.loc)
		for _, r := range rows {
			if r.CheckInTime != nil && ArrivedEarly(start, *r.CheckInTime) {
				out.EarlyArrivals++
			}
		}
	}
	return out, nil
}
