package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventRow is the read-only projection of the events table owned by the events service.
type EventRow struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ChurchID  uuid.UUID       `gorm:"type:uuid;column:church_id" json:"church_id"`
	Name      string          `gorm:"column:name" json:"name"`
	Date      datatypes.Date  `gorm:"column:date" json:"date"`
	StartTime *datatypes.Time `gorm:"column:start_time" json:"start_time"`
}

func (EventRow) TableName() string { return "events" }

// DateString renders the event date as YYYY-MM-DD.
func (e EventRow) DateString() string {
	return time.Time(e.Date).Format("2006-01-02")
}

// StartOffset is the start time of day, false when the event has none.
func (e EventRow) StartOffset() (time.Duration, bool) {
	if e.StartTime == nil {
		return 0, false
	}
	return time.Duration(*e.StartTime), true
}

// UserRow is the read-only projection of the users table.
type UserRow struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ChurchID uuid.UUID `gorm:"type:uuid;column:church_id" json:"church_id"`
	FullName *string   `gorm:"column:full_name" json:"full_name"`
	Email    *string   `gorm:"column:email" json:"email"`
}

func (UserRow) TableName() string { return "users" }
