package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	model "zionhub_backend/internals/features/events/checkin/model"
	"zionhub_backend/internals/helpers/dbtime"
)

type assignmentKey struct {
	eventID uuid.UUID
	userID  uuid.UUID
}

// MemoryStore keeps attendance in process memory. It backs local runs with
// STORE_DRIVER=memory and the package tests.
type MemoryStore struct {
	mu          sync.RWMutex
	assignments map[assignmentKey]model.EventAssignmentModel
	events      map[uuid.UUID]model.EventRow
	users       map[uuid.UUID]model.UserRow
	clock       dbtime.Clock

	// FailWith, when set, is returned by every call.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(dbtime.SystemClock{})
}

// NewMemoryStoreWithClock stamps created_at / updated_at from clock.
func NewMemoryStoreWithClock(clock dbtime.Clock) *MemoryStore {
	return &MemoryStore{
		assignments: make(map[assignmentKey]model.EventAssignmentModel),
		events:      make(map[uuid.UUID]model.EventRow),
		users:       make(map[uuid.UUID]model.UserRow),
		clock:       clock,
	}
}

func (s *MemoryStore) PutEvent(ev model.EventRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[ev.ID] = ev
}

func (s *MemoryStore) PutUser(u model.UserRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Count reports the number of stored attendance rows.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assignments)
}

func (s *MemoryStore) FindAssignment(ctx context.Context, eventID, userID uuid.UUID) (*model.EventAssignmentModel, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.assignments[assignmentKey{eventID, userID}]
	if !ok {
		return nil, nil
	}
	out := m.Clone()
	return &out, nil
}

func (s *MemoryStore) CreateAssignment(ctx context.Context, m *model.EventAssignmentModel) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().UTC()
	key := assignmentKey{m.EventID, m.UserID}
	if existing, ok := s.assignments[key]; ok {
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
	} else {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.CreatedAt = now
	}
	if m.Status == "" {
		m.Status = model.StatusPending
	}
	m.UpdatedAt = now
	s.assignments[key] = m.Clone()
	return nil
}

func (s *MemoryStore) UpdateAssignment(ctx context.Context, m *model.EventAssignmentModel) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := assignmentKey{m.EventID, m.UserID}
	existing, ok := s.assignments[key]
	if !ok {
		return errors.Wrapf(errAssignmentVanished, "update assignment event=%s user=%s", m.EventID, m.UserID)
	}
	existing.Status = m.Status
	existing.CheckInTime = m.CheckInTime
	existing.CheckOutTime = m.CheckOutTime
	existing.Notes = m.Notes
	existing.UpdatedAt = s.clock.Now().UTC()
	s.assignments[key] = existing.Clone()

	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = existing.UpdatedAt
	return nil
}

func (s *MemoryStore) ListEventAssignments(ctx context.Context, eventID uuid.UUID) ([]model.EventAssignmentModel, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]model.EventAssignmentModel, 0)
	for k, m := range s.assignments {
		if k.eventID == eventID {
			out = append(out, m.Clone())
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CheckInTime, out[j].CheckInTime
		switch {
		case a == nil && b == nil:
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		default:
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
	})
	return out, nil
}

func (s *MemoryStore) ListUserCheckins(ctx context.Context, userID uuid.UUID, limit int) ([]model.EventAssignmentModel, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]model.EventAssignmentModel, 0)
	for k, m := range s.assignments {
		if k.userID == userID && m.CheckInTime != nil {
			out = append(out, m.Clone())
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckInTime.After(*out[j].CheckInTime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) FindEvent(ctx context.Context, eventID uuid.UUID) (*model.EventRow, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[eventID]
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

func (s *MemoryStore) FindEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.EventRow, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.EventRow, 0, len(ids))
	for _, id := range uuidSet(ids) {
		if ev, ok := s.events[id]; ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]model.UserRow, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.UserRow, 0, len(ids))
	for _, id := range uuidSet(ids) {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *MemoryStore) check(ctx context.Context) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	return ctx.Err()
}

func uuidSet(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
