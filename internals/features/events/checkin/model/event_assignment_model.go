package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	StatusPending    AttendanceStatus = "pending"
	StatusCheckedIn  AttendanceStatus = "checked_in"
	StatusCheckedOut AttendanceStatus = "checked_out"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCheckedIn, StatusCheckedOut:
		return true
	}
	return false
}

// EventAssignmentModel is one attendance record, unique per (event_id, user_id).
// CheckOutTime is never set while CheckInTime is nil.
type EventAssignmentModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	EventID      uuid.UUID        `gorm:"type:uuid;not null;column:event_id;uniqueIndex:uq_event_assignments_event_user,priority:1" json:"event_id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;column:user_id;uniqueIndex:uq_event_assignments_event_user,priority:2;index:idx_event_assignments_user_checkin,priority:1" json:"user_id"`
	Status       AttendanceStatus `gorm:"type:varchar(20);not null;default:'pending';column:status" json:"status"`
	CheckInTime  *time.Time       `gorm:"type:timestamptz;column:check_in_time;index:idx_event_assignments_user_checkin,priority:2" json:"check_in_time"`
	CheckOutTime *time.Time       `gorm:"type:timestamptz;column:check_out_time" json:"check_out_time"`
	Notes        *string          `gorm:"type:text;column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EventAssignmentModel) TableName() string { return "event_assignments" }

// Clone returns a copy that shares no pointers with m.
func (m EventAssignmentModel) Clone() EventAssignmentModel {
	out := m
	if m.CheckInTime != nil {
		t := *m.CheckInTime
		out.CheckInTime = &t
	}
	if m.CheckOutTime != nil {
		t := *m.CheckOutTime
		out.CheckOutTime = &t
	}
	if m.Notes != nil {
		n := *m.Notes
		out.Notes = &n
	}
	return out
}
