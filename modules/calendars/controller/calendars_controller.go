package controller

import (
	"scheduling-gateway/core/acuity"
	core "scheduling-gateway/core/controller"
	"scheduling-gateway/modules/calendars/dto"
	"scheduling-gateway/modules/calendars/service"

	"github.com/labstack/echo/v4"
)

type CalendarsController struct {
	base    core.BaseController
	service service.CalendarsService
}

func NewCalendarsController(svc service.CalendarsService) *CalendarsController {
	return &CalendarsController{
		base:    core.NewBaseController(),
		service: svc,
	}
}

// ListCalendars returns the cached calendar listing for an account
// GET /api/v1/calendars?account=main|parents&refresh=true
func (c *CalendarsController) ListCalendars(ctx echo.Context) error {
	account := acuity.ParseAccount(ctx.QueryParam("account"))
	force := ctx.QueryParam("refresh") == "true"

	calendars, err := c.service.ListCalendars(ctx.Request().Context(), account, force)
	if err != nil {
		return c.base.Error(ctx, err)
	}

	out := make([]dto.CalendarResponse, 0, len(calendars))
	for _, cal := range calendars {
		out = append(out, dto.CalendarResponse{ID: cal.ID, Name: cal.Name})
	}
	return c.base.Success(ctx, dto.CalendarListResponse{
		Envelope:  core.OK(ctx),
		Account:   string(account),
		Calendars: out,
	})
}

// ListAppointmentTypes passes the provider's type listing through
// GET /api/v1/appointment-types?account=main|parents
func (c *CalendarsController) ListAppointmentTypes(ctx echo.Context) error {
	account := acuity.ParseAccount(ctx.QueryParam("account"))

	types, err := c.service.ListAppointmentTypes(ctx.Request().Context(), account)
	if err != nil {
		return c.base.Error(ctx, err)
	}

	out := make([]dto.AppointmentTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.AppointmentTypeResponse{
			ID:          t.ID,
			Name:        t.Name,
			Duration:    t.Duration,
			CalendarIDs: t.CalendarIDs,
		})
	}
	return c.base.Success(ctx, dto.AppointmentTypeListResponse{
		Envelope: core.OK(ctx),
		Account:  string(account),
		Types:    out,
	})
}

// Resolve exposes the routing decision for a location or ZIP
// GET /api/v1/locations/resolve?location=&account=&appointmentTypeId=
func (c *CalendarsController) Resolve(ctx echo.Context) error {
	location := ctx.QueryParam("location")
	if location == "" {
		return c.base.BadRequest(ctx, "location is required")
	}

	target, resolution, err := c.service.ResolveForLocation(
		ctx.Request().Context(),
		location,
		ctx.QueryParam("account"),
		ctx.QueryParam("appointmentTypeId"),
	)
	if err != nil {
		return c.base.Error(ctx, err)
	}

	return c.base.Success(ctx, dto.ResolveResponse{
		Envelope:              core.OK(ctx),
		Location:              target.LocationKey,
		Account:               string(target.Account),
		AppointmentTypeID:     target.AppointmentTypeID,
		AppointmentTypeSource: target.AppointmentTypeSource,
		CalendarIDs:           resolution.IDs,
		UnresolvedNames:       resolution.UnresolvedNames,
		CalendarSource:        resolution.Source,
	})
}
