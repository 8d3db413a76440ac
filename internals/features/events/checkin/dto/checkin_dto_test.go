package dto

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "zionhub_backend/internals/features/events/checkin/model"
	service "zionhub_backend/internals/features/events/checkin/service"
	"zionhub_backend/internals/helpers/dbtime"
)

func ptr(s string) *string { return &s }

func TestCheckInRequestToInput(t *testing.T) {
	ev, caller, other := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name     string
		req      CheckInRequest
		wantUser uuid.UUID
		wantErr  bool
	}{
		{"defaults to caller", CheckInRequest{}, caller, false},
		{"blank user_id", CheckInRequest{UserID: ptr("  ")}, caller, false},
		{"explicit user", CheckInRequest{UserID: ptr(other.String())}, other, false},
		{"bad user", CheckInRequest{UserID: ptr("nope")}, uuid.Nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.req.ToInput(ev, caller)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ev, in.EventID)
			assert.Equal(t, tt.wantUser, in.UserID)
		})
	}
}

func TestCheckInRequestTrims(t *testing.T) {
	in, err := CheckInRequest{QRCodeData: ptr(" ZIONHUB:EVENT:x:1 "), Notes: ptr(" hi ")}.ToInput(uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "ZIONHUB:EVENT:x:1", *in.Token)
	assert.Equal(t, "hi", *in.Notes)
}

func TestRequestValidation(t *testing.T) {
	v := validator.New()
	assert.NoError(t, v.Struct(CheckInRequest{}))
	assert.Error(t, v.Struct(CheckInRequest{UserID: ptr("not-a-uuid")}))
	assert.Error(t, v.Struct(ValidateTokenRequest{}))
	assert.NoError(t, v.Struct(ValidateTokenRequest{QRCodeData: "ZIONHUB:EVENT:x:1"}))
}

func TestCheckinURL(t *testing.T) {
	got := CheckinURL("https://app.zionhub.com/", "e1", "ZIONHUB:EVENT:e1:1700000000000")
	assert.Equal(t, "https://app.zionhub.com/eventos/e1/checkin?qr=ZIONHUB%3AEVENT%3Ae1%3A1700000000000", got)
}

func TestNewValidateTokenResponse(t *testing.T) {
	assert.Equal(t, ValidateTokenResponse{}, NewValidateTokenResponse(service.TokenValidation{}))

	issued := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	resp := NewValidateTokenResponse(service.TokenValidation{Valid: true, EventID: "e1", IssuedAt: issued})
	assert.True(t, resp.Valid)
	assert.Equal(t, "e1", *resp.EventID)
	assert.Equal(t, issued.Add(24*time.Hour), *resp.ExpiresAt)
}

func TestFromModelDuration(t *testing.T) {
	in := time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)
	out := in.Add(150 * time.Minute)

	resp := FromModel(&model.EventAssignmentModel{Status: model.StatusCheckedOut, CheckInTime: &in, CheckOutTime: &out})
	require.NotNil(t, resp.DurationMinutes)
	assert.Equal(t, 150, *resp.DurationMinutes)

	resp = FromModel(&model.EventAssignmentModel{Status: model.StatusCheckedIn, CheckInTime: &in})
	assert.Nil(t, resp.DurationMinutes)
}

func TestLocalizeUsesChurchZone(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)

	var got AttendanceRecordResponse
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(dbtime.LocChurchLoc, saoPaulo)
		got = FromModel(&model.EventAssignmentModel{Status: model.StatusCheckedIn, CheckInTime: &in}).Localize(c)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	require.NotNil(t, got.CheckInTime)
	assert.True(t, in.Equal(*got.CheckInTime))
	assert.Equal(t, 19, got.CheckInTime.Hour())
	assert.Nil(t, got.CheckOutTime)
}
