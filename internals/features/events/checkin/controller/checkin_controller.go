package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dto "zionhub_backend/internals/features/events/checkin/dto"
	service "zionhub_backend/internals/features/events/checkin/service"
	helper "zionhub_backend/internals/helpers"
	helperAuth "zionhub_backend/internals/helpers/auth"
)

/* =========================
   Controller
   ========================= */

type CheckinController struct {
	Checkin     *service.CheckinService
	Query       *service.AttendanceQueryService
	Validator   *validator.Validate
	FrontendURL string
}

func NewCheckinController(checkin *service.CheckinService, query *service.AttendanceQueryService, frontendURL string) *CheckinController {
	return &CheckinController{
		Checkin:     checkin,
		Query:       query,
		Validator:   validator.New(),
		FrontendURL: frontendURL,
	}
}

/* =========================
   Small helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" is not a valid UUID")
	}
	return id, nil
}

// writeServiceError maps the service error kinds onto HTTP responses.
func writeServiceError(c *fiber.Ctx, err error) error {
	var (
		ve *service.ValidationError
		ne *service.NotFoundError
		fe *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return helper.JsonError(c, fiber.StatusBadRequest, ve.Reason)
	case errors.As(err, &ne):
		return helper.JsonError(c, fiber.StatusNotFound, ne.Reason)
	case errors.As(err, &fe):
		return helper.JsonError(c, fe.Code, fe.Message)
	default:
		log.Printf("[ERROR] checkin %s %s: %+v", c.Method(), c.OriginalURL(), err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
}

// resolveEvent parses :id and checks the event belongs to the caller's church.
func (ctl *CheckinController) resolveEvent(c *fiber.Ctx) (uuid.UUID, error) {
	eventID, err := parseUUIDParam(c, "id")
	if err != nil {
		return uuid.Nil, err
	}
	churchID, err := helperAuth.GetChurchIDFromToken(c)
	if err != nil {
		return uuid.Nil, err
	}
	ev, err := ctl.Query.GetEvent(c.UserContext(), eventID)
	if err != nil {
		return uuid.Nil, err
	}
	if ev.ChurchID != churchID {
		return uuid.Nil, &service.NotFoundError{Reason: "event not found"}
	}
	return eventID, nil
}

/* =========================
   Handlers
   ========================= */

// GET /api/checkin/:id/qrcode
func (ctl *CheckinController) GenerateQRCode(c *fiber.Ctx) error {
	eventID, err := ctl.resolveEvent(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	issued := ctl.Checkin.IssueToken(eventID)
	return helper.JsonOK(c, "QR code generated", dto.NewQRCodeResponse(issued, ctl.FrontendURL))
}

// POST /api/checkin/validate
func (ctl *CheckinController) ValidateQRCode(c *fiber.Ctx) error {
	var req dto.ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	res := ctl.Checkin.ValidateToken(strings.TrimSpace(req.QRCodeData))
	return helper.JsonOK(c, "", dto.NewValidateTokenResponse(res))
}

// POST /api/checkin/:id/checkin
func (ctl *CheckinController) CheckIn(c *fiber.Ctx) error {
	caller, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	eventID, err := ctl.resolveEvent(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	var req dto.CheckInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid JSON body")
		}
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	in, err := req.ToInput(eventID, caller)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rec, err := ctl.Checkin.CheckIn(c.UserContext(), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "Check-in recorded", dto.FromModel(rec).Localize(c))
}

// POST /api/checkin/:id/checkout
func (ctl *CheckinController) CheckOut(c *fiber.Ctx) error {
	caller, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	eventID, err := ctl.resolveEvent(c)
	if err != nil {
		return writeServiceError(c, err)
	}

	var req dto.CheckOutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid JSON body")
		}
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	in, err := req.ToInput(eventID, caller)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	rec, err := ctl.Checkin.CheckOut(c.UserContext(), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "Check-out recorded", dto.FromModel(rec).Localize(c))
}

// DELETE /api/checkin/:id/attendance/:user_id
func (ctl *CheckinController) Reset(c *fiber.Ctx) error {
	eventID, err := ctl.resolveEvent(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return writeServiceError(c, err)
	}

	ok, err := ctl.Checkin.Reset(c.UserContext(), eventID, userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "Attendance reset", dto.ResetResponse{EventID: eventID, UserID: userID, Reset: ok})
}

// GET /api/checkin/:id/attendance
func (ctl *CheckinController) GetEventAttendance(c *fiber.Ctx) error {
	eventID, err := ctl.resolveEvent(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	view, err := ctl.Query.GetEventAttendance(c.UserContext(), eventID)
	if err != nil {
		return writeServiceError(c, err)
	}
	view.Attendees = dto.LocalizeRoster(c, view.Attendees)
	return helper.JsonOK(c, "", view)
}

// GET /api/checkin/:id/roster
func (ctl *CheckinController) GetEventRoster(c *fiber.Ctx) error {
	eventID, err := ctl.resolveEvent(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	roster, err := ctl.Query.GetEventRoster(c.UserContext(), eventID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonList(c, "", dto.LocalizeRoster(c, roster), len(roster))
}

// GET /api/checkin/history/me?limit=
func (ctl *CheckinController) GetMyHistory(c *fiber.Ctx) error {
	caller, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	limit := helper.ResolveLimit(c, service.DefaultHistoryLimit, service.MaxHistoryLimit)

	hist, err := ctl.Query.GetUserHistory(c.UserContext(), caller, limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonList(c, "", dto.LocalizeHistory(c, hist), limit)
}
