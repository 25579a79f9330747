package router

import (
	"scheduling-gateway/core/middleware"
	"scheduling-gateway/modules/calendars/controller"

	"github.com/labstack/echo/v4"
)

type CalendarsRouter struct {
	controller *controller.CalendarsController
}

func NewCalendarsRouter(controller *controller.CalendarsController) *CalendarsRouter {
	return &CalendarsRouter{
		controller: controller,
	}
}

func (r *CalendarsRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/calendars", r.controller.ListCalendars)
	v1.GET("/appointment-types", r.controller.ListAppointmentTypes)
	v1.GET("/locations/resolve", r.controller.Resolve)
}
