package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "zionhub_backend/internals/features/events/checkin/model"
)

var errAssignmentVanished = errors.New("assignment row vanished between read and write")

// GormStore persists attendance records in event_assignments and reads the
// events/users tables owned by other services.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// FindAssignment returns nil, nil when no row exists for the pair.
func (s *GormStore) FindAssignment(ctx context.Context, eventID, userID uuid.UUID) (*model.EventAssignmentModel, error) {
	var m model.EventAssignmentModel
	err := s.DB.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "find assignment event=%s user=%s", eventID, userID)
	}
	return &m, nil
}

// CreateAssignment inserts m; a concurrent insert for the same pair is
// resolved as an update of the existing row.
func (s *GormStore) CreateAssignment(ctx context.Context, m *model.EventAssignmentModel) error {
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "check_in_time", "check_out_time", "notes", "updated_at",
			}),
		}).
		Create(m).Error
	if err != nil {
		return pkgerrors.Wrapf(err, "upsert assignment event=%s user=%s", m.EventID, m.UserID)
	}

	// re-read so the caller sees the stored row (id / created_at of the winner)
	var stored model.EventAssignmentModel
	if err := s.DB.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", m.EventID, m.UserID).
		Take(&stored).Error; err != nil {
		return pkgerrors.Wrapf(err, "reload assignment event=%s user=%s", m.EventID, m.UserID)
	}
	*m = stored
	return nil
}

// UpdateAssignment writes the attendance columns of m, nulls included, and
// refreshes m with the stored id / created_at / updated_at.
func (s *GormStore) UpdateAssignment(ctx context.Context, m *model.EventAssignmentModel) error {
	var stored model.EventAssignmentModel
	res := s.DB.WithContext(ctx).
		Model(&stored).
		Clauses(clause.Returning{}).
		Where("event_id = ? AND user_id = ?", m.EventID, m.UserID).
		Updates(map[string]any{
			"status":         m.Status,
			"check_in_time":  m.CheckInTime,
			"check_out_time": m.CheckOutTime,
			"notes":          m.Notes,
			"updated_at":     gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return pkgerrors.Wrapf(res.Error, "update assignment event=%s user=%s", m.EventID, m.UserID)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.Wrapf(errAssignmentVanished, "update assignment event=%s user=%s", m.EventID, m.UserID)
	}
	m.ID = stored.ID
	m.CreatedAt = stored.CreatedAt
	m.UpdatedAt = stored.UpdatedAt
	return nil
}

// ListEventAssignments orders by check_in_time ascending, pending rows last.
func (s *GormStore) ListEventAssignments(ctx context.Context, eventID uuid.UUID) ([]model.EventAssignmentModel, error) {
	rows := make([]model.EventAssignmentModel, 0)
	if err := s.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("check_in_time ASC NULLS LAST").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrapf(err, "list assignments event=%s", eventID)
	}
	return rows, nil
}

// ListUserCheckins returns rows with a check-in, most recent first.
func (s *GormStore) ListUserCheckins(ctx context.Context, userID uuid.UUID, limit int) ([]model.EventAssignmentModel, error) {
	rows := make([]model.EventAssignmentModel, 0)
	if err := s.DB.WithContext(ctx).
		Where("user_id = ? AND check_in_time IS NOT NULL", userID).
		Order("check_in_time DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrapf(err, "list checkins user=%s", userID)
	}
	return rows, nil
}

func (s *GormStore) FindEvent(ctx context.Context, eventID uuid.UUID) (*model.EventRow, error) {
	var ev model.EventRow
	err := s.DB.WithContext(ctx).Where("id = ?", eventID).Take(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "find event %s", eventID)
	}
	return &ev, nil
}

func (s *GormStore) FindEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.EventRow, error) {
	out := make([]model.EventRow, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if err := s.DB.WithContext(ctx).
		Where("id = ANY(?::uuid[])", pq.Array(uuidStrings(ids))).
		Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "find events by ids")
	}
	return out, nil
}

func (s *GormStore) FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]model.UserRow, error) {
	out := make([]model.UserRow, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if err := s.DB.WithContext(ctx).
		Where("id = ANY(?::uuid[])", pq.Array(uuidStrings(ids))).
		Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "find users by ids")
	}
	return out, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	set := uuidSet(ids)
	out := make([]string, 0, len(set))
	for _, id := range set {
		out = append(out, id.String())
	}
	return out
}
