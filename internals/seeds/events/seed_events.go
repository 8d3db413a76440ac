package events

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"

	model "zionhub_backend/internals/features/events/checkin/model"
	"zionhub_backend/internals/helpers/dbtime"
)

// Sink receives seeded rows. MemoryStore satisfies it.
type Sink interface {
	PutEvent(model.EventRow)
	PutUser(model.UserRow)
}

type EventSeed struct {
	ID        string `json:"id"`
	ChurchID  string `json:"church_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
}

type UserSeed struct {
	ID       string `json:"id"`
	ChurchID string `json:"church_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type SeedFile struct {
	Events []EventSeed `json:"events"`
	Users  []UserSeed  `json:"users"`
}

// SeedEventsFromJSON loads events and users from filePath into sink.
// Malformed entries are skipped with a log line; an unreadable file is an error.
func SeedEventsFromJSON(sink Sink, filePath string) (events, users int, err error) {
	log.Println("📥 Reading seed file:", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return 0, 0, errors.Wrap(err, "read seed file")
	}
	var in SeedFile
	if err := sonic.Unmarshal(raw, &in); err != nil {
		return 0, 0, errors.Wrap(err, "decode seed file")
	}

	for _, s := range in.Events {
		ev, err := s.toRow()
		if err != nil {
			log.Printf("❌ event %q skipped: %v", s.Name, err)
			continue
		}
		sink.PutEvent(ev)
		events++
	}
	for _, s := range in.Users {
		u, err := s.toRow()
		if err != nil {
			log.Printf("❌ user %q skipped: %v", s.Email, err)
			continue
		}
		sink.PutUser(u)
		users++
	}

	log.Printf("✅ Seeded %d events, %d users", events, users)
	return events, users, nil
}

func (s EventSeed) toRow() (model.EventRow, error) {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return model.EventRow{}, errors.Wrap(err, "id")
	}
	church, err := uuid.Parse(s.ChurchID)
	if err != nil {
		return model.EventRow{}, errors.Wrap(err, "church_id")
	}
	date, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return model.EventRow{}, errors.Wrap(err, "date")
	}

	row := model.EventRow{ID: id, ChurchID: church, Name: s.Name, Date: datatypes.Date(date)}
	if st := strings.TrimSpace(s.StartTime); st != "" {
		tod, err := dbtime.Parse(st)
		if err != nil {
			return model.EventRow{}, errors.Wrap(err, "start_time")
		}
		t := datatypes.Time(tod.SinceMidnight())
		row.StartTime = &t
	}
	return row, nil
}

func (s UserSeed) toRow() (model.UserRow, error) {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return model.UserRow{}, errors.Wrap(err, "id")
	}
	church, err := uuid.Parse(s.ChurchID)
	if err != nil {
		return model.UserRow{}, errors.Wrap(err, "church_id")
	}
	row := model.UserRow{ID: id, ChurchID: church}
	if v := strings.TrimSpace(s.FullName); v != "" {
		row.FullName = &v
	}
	if v := strings.TrimSpace(s.Email); v != "" {
		row.Email = &v
	}
	return row, nil
}
