package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	model "zionhub_backend/internals/features/events/checkin/model"
	"zionhub_backend/internals/helpers/dbtime"
)

// AssignmentStore is the read-by-key / create / update surface the engine needs.
// FindAssignment returns nil, nil when the pair has no row.
type AssignmentStore interface {
	FindAssignment(ctx context.Context, eventID, userID uuid.UUID) (*model.EventAssignmentModel, error)
	CreateAssignment(ctx context.Context, m *model.EventAssignmentModel) error
	UpdateAssignment(ctx context.Context, m *model.EventAssignmentModel) error
}

type CheckInInput struct {
	EventID uuid.UUID
	UserID  uuid.UUID
	Token   *string // optional; blank counts as absent
	Notes   *string // nil keeps the stored notes
}

type CheckOutInput struct {
	EventID uuid.UUID
	UserID  uuid.UUID
	Notes   *string
}

// CheckinService runs the attendance state machine:
// pending -> checked_in -> checked_out, with reset back to pending.
type CheckinService struct {
	store AssignmentStore
	codec *TokenCodec
	clock dbtime.Clock
}

func NewCheckinService(store AssignmentStore, codec *TokenCodec, clock dbtime.Clock) *CheckinService {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	if codec == nil {
		codec = NewTokenCodec(clock)
	}
	return &CheckinService{store: store, codec: codec, clock: clock}
}

func (s *CheckinService) IssueToken(eventID uuid.UUID) IssuedToken {
	return s.codec.Issue(eventID.String())
}

func (s *CheckinService) ValidateToken(token string) TokenValidation {
	return s.codec.Validate(token)
}

// CheckIn creates the record when absent; otherwise the latest scan overwrites
// check_in_time and starts a new cycle (check_out_time cleared).
func (s *CheckinService) CheckIn(ctx context.Context, in CheckInInput) (*model.EventAssignmentModel, error) {
	if in.Token != nil && strings.TrimSpace(*in.Token) != "" {
		if err := s.verifyToken(strings.TrimSpace(*in.Token), in.EventID); err != nil {
			return nil, err
		}
	}

	rec, err := s.store.FindAssignment(ctx, in.EventID, in.UserID)
	if err != nil {
		return nil, storageErr("find assignment", err)
	}

	now := s.clock.Now()

	if rec == nil {
		rec = &model.EventAssignmentModel{
			EventID:     in.EventID,
			UserID:      in.UserID,
			Status:      model.StatusCheckedIn,
			CheckInTime: &now,
			Notes:       in.Notes,
		}
		if err := s.store.CreateAssignment(ctx, rec); err != nil {
			return nil, storageErr("create assignment", err)
		}
		log.Printf("[CHECKIN] created event=%s user=%s", in.EventID, in.UserID)
		return rec, nil
	}

	rec.Status = model.StatusCheckedIn
	rec.CheckInTime = &now
	rec.CheckOutTime = nil
	if in.Notes != nil {
		rec.Notes = in.Notes
	}
	if err := s.store.UpdateAssignment(ctx, rec); err != nil {
		return nil, storageErr("update assignment", err)
	}
	log.Printf("[CHECKIN] checked in event=%s user=%s", in.EventID, in.UserID)
	return rec, nil
}

// CheckOut requires a prior check-in; nothing is written when it fails.
func (s *CheckinService) CheckOut(ctx context.Context, in CheckOutInput) (*model.EventAssignmentModel, error) {
	rec, err := s.store.FindAssignment(ctx, in.EventID, in.UserID)
	if err != nil {
		return nil, storageErr("find assignment", err)
	}
	if rec == nil || rec.CheckInTime == nil {
		return nil, &NotFoundError{Reason: "no check-in found for this user at this event"}
	}

	now := s.clock.Now()
	if now.Before(*rec.CheckInTime) {
		return nil, &ValidationError{Reason: "check-out time precedes check-in time"}
	}

	rec.Status = model.StatusCheckedOut
	rec.CheckOutTime = &now
	if in.Notes != nil {
		rec.Notes = in.Notes
	}
	if err := s.store.UpdateAssignment(ctx, rec); err != nil {
		return nil, storageErr("update assignment", err)
	}
	log.Printf("[CHECKIN] checked out event=%s user=%s duration=%dmin",
		in.EventID, in.UserID, DurationMinutes(*rec.CheckInTime, now))
	return rec, nil
}

// Reset puts the record back to pending. Absent or already pending records are a no-op.
func (s *CheckinService) Reset(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	rec, err := s.store.FindAssignment(ctx, eventID, userID)
	if err != nil {
		return false, storageErr("find assignment", err)
	}
	if rec == nil {
		return true, nil
	}
	if rec.Status == model.StatusPending && rec.CheckInTime == nil && rec.CheckOutTime == nil {
		return true, nil
	}

	rec.Status = model.StatusPending
	rec.CheckInTime = nil
	rec.CheckOutTime = nil
	if err := s.store.UpdateAssignment(ctx, rec); err != nil {
		return false, storageErr("reset assignment", err)
	}
	log.Printf("[CHECKIN] reset event=%s user=%s", eventID, userID)
	return true, nil
}

func (s *CheckinService) verifyToken(token string, eventID uuid.UUID) error {
	v := s.codec.Validate(token)
	if !v.Valid {
		return &ValidationError{Reason: "invalid or expired check-in token"}
	}
	tokenEvent, err := uuid.Parse(v.EventID)
	if err != nil || tokenEvent != eventID {
		return &ValidationError{Reason: "check-in token belongs to a different event"}
	}
	return nil
}
