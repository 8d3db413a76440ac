package dto

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "zionhub_backend/internals/features/events/checkin/model"
	service "zionhub_backend/internals/features/events/checkin/service"
	"zionhub_backend/internals/helpers/dbtime"
)

/* =========================================================
   Requests
   ========================================================= */

type CheckInRequest struct {
	// defaults to the caller when omitted
	UserID     *string `json:"user_id" validate:"omitempty,uuid"`
	QRCodeData *string `json:"qrcode_data" validate:"omitempty,max=256"`
	Notes      *string `json:"notes" validate:"omitempty,max=1000"`
}

type CheckOutRequest struct {
	UserID *string `json:"user_id" validate:"omitempty,uuid"`
	Notes  *string `json:"notes" validate:"omitempty,max=1000"`
}

type ValidateTokenRequest struct {
	QRCodeData string `json:"qrcode_data" validate:"required,max=256"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// resolveUser picks the body user_id when present, else the caller.
func resolveUser(raw *string, caller uuid.UUID) (uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return caller, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("user_id is not a valid UUID")
	}
	return id, nil
}

func (r CheckInRequest) ToInput(eventID, caller uuid.UUID) (service.CheckInInput, error) {
	userID, err := resolveUser(r.UserID, caller)
	if err != nil {
		return service.CheckInInput{}, err
	}
	return service.CheckInInput{
		EventID: eventID,
		UserID:  userID,
		Token:   trimPtr(r.QRCodeData),
		Notes:   trimPtr(r.Notes),
	}, nil
}

func (r CheckOutRequest) ToInput(eventID, caller uuid.UUID) (service.CheckOutInput, error) {
	userID, err := resolveUser(r.UserID, caller)
	if err != nil {
		return service.CheckOutInput{}, err
	}
	return service.CheckOutInput{
		EventID: eventID,
		UserID:  userID,
		Notes:   trimPtr(r.Notes),
	}, nil
}

/* =========================================================
   Responses
   ========================================================= */

type QRCodeResponse struct {
	EventID     string    `json:"event_id"`
	QRCodeData  string    `json:"qrcode_data"`
	CheckinURL  string    `json:"checkin_url"`
	GeneratedAt time.Time `json:"generated_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CheckinURL is the web client deep link carrying the token.
func CheckinURL(frontendURL, eventID, token string) string {
	return fmt.Sprintf("%s/eventos/%s/checkin?qr=%s",
		strings.TrimRight(frontendURL, "/"), url.PathEscape(eventID), url.QueryEscape(token))
}

func NewQRCodeResponse(issued service.IssuedToken, frontendURL string) QRCodeResponse {
	return QRCodeResponse{
		EventID:     issued.EventID,
		QRCodeData:  issued.Token,
		CheckinURL:  CheckinURL(frontendURL, issued.EventID, issued.Token),
		GeneratedAt: issued.IssuedAt,
		ExpiresAt:   issued.ExpiresAt,
	}
}

type ValidateTokenResponse struct {
	Valid     bool       `json:"valid"`
	EventID   *string    `json:"event_id,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func NewValidateTokenResponse(v service.TokenValidation) ValidateTokenResponse {
	if !v.Valid {
		return ValidateTokenResponse{Valid: false}
	}
	eventID := v.EventID
	issued := v.IssuedAt
	expires := v.IssuedAt.Add(service.TokenValidity)
	return ValidateTokenResponse{
		Valid:     true,
		EventID:   &eventID,
		IssuedAt:  &issued,
		ExpiresAt: &expires,
	}
}

type AttendanceRecordResponse struct {
	ID              uuid.UUID              `json:"id"`
	EventID         uuid.UUID              `json:"event_id"`
	UserID          uuid.UUID              `json:"user_id"`
	Status          model.AttendanceStatus `json:"status"`
	CheckInTime     *time.Time             `json:"check_in_time"`
	CheckOutTime    *time.Time             `json:"check_out_time"`
	Notes           *string                `json:"notes"`
	DurationMinutes *int                   `json:"duration_minutes"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func FromModel(m *model.EventAssignmentModel) AttendanceRecordResponse {
	out := AttendanceRecordResponse{
		ID:           m.ID,
		EventID:      m.EventID,
		UserID:       m.UserID,
		Status:       m.Status,
		CheckInTime:  m.CheckInTime,
		CheckOutTime: m.CheckOutTime,
		Notes:        m.Notes,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.CheckInTime != nil && m.CheckOutTime != nil {
		d := service.DurationMinutes(*m.CheckInTime, *m.CheckOutTime)
		out.DurationMinutes = &d
	}
	return out
}

// Localize renders the attendance instants in the church timezone.
func (r AttendanceRecordResponse) Localize(c *fiber.Ctx) AttendanceRecordResponse {
	r.CheckInTime = dbtime.ToChurchTimePtr(c, r.CheckInTime)
	r.CheckOutTime = dbtime.ToChurchTimePtr(c, r.CheckOutTime)
	return r
}

// LocalizeRoster renders roster instants in the church timezone, in place.
func LocalizeRoster(c *fiber.Ctx, entries []service.RosterEntry) []service.RosterEntry {
	for i := range entries {
		entries[i].CheckInTime = dbtime.ToChurchTimePtr(c, entries[i].CheckInTime)
		entries[i].CheckOutTime = dbtime.ToChurchTimePtr(c, entries[i].CheckOutTime)
	}
	return entries
}

// LocalizeHistory renders history instants in the church timezone, in place.
func LocalizeHistory(c *fiber.Ctx, entries []service.HistoryEntry) []service.HistoryEntry {
	for i := range entries {
		entries[i].CheckInTime = dbtime.ToChurchTimePtr(c, entries[i].CheckInTime)
		entries[i].CheckOutTime = dbtime.ToChurchTimePtr(c, entries[i].CheckOutTime)
	}
	return entries
}

type ResetResponse struct {
	EventID uuid.UUID `json:"event_id"`
	UserID  uuid.UUID `json:"user_id"`
	Reset   bool      `json:"reset"`
}
