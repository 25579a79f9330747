package controller

import (
	"strconv"

	core "scheduling-gateway/core/controller"
	"scheduling-gateway/modules/availability/service"

	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	base    core.BaseController
	service service.AvailabilityService
}

func NewAvailabilityController(svc service.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{
		base:    core.NewBaseController(),
		service: svc,
	}
}

// GetTimes returns merged per-day availability for a location
// GET /api/v1/availability/times?location=&account=&appointmentTypeId=&date=&days=
func (c *AvailabilityController) GetTimes(ctx echo.Context) error {
	days, _ := strconv.Atoi(ctx.QueryParam("days"))

	result, err := c.service.GetTimes(ctx.Request().Context(), service.TimesQuery{
		Location:          ctx.QueryParam("location"),
		Account:           ctx.QueryParam("account"),
		AppointmentTypeID: ctx.QueryParam("appointmentTypeId"),
		Date:              ctx.QueryParam("date"),
		Days:              days,
	})
	if err != nil {
		return c.base.Error(ctx, err)
	}

	result.Envelope = core.OK(ctx)
	return c.base.Success(ctx, result)
}

// GetMonth returns per-date slot counts for a whole month
// GET /api/v1/availability/month?location=&month=YYYY-MM&account=&appointmentTypeId=
func (c *AvailabilityController) GetMonth(ctx echo.Context) error {
	result, err := c.service.GetMonth(ctx.Request().Context(), service.MonthQuery{
		Location:          ctx.QueryParam("location"),
		Account:           ctx.QueryParam("account"),
		AppointmentTypeID: ctx.QueryParam("appointmentTypeId"),
		Month:             ctx.QueryParam("month"),
	})
	if err != nil {
		return c.base.Error(ctx, err)
	}

	result.Envelope = core.OK(ctx)
	return c.base.Success(ctx, result)
}
