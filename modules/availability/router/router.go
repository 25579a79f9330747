package router

import (
	"scheduling-gateway/core/middleware"
	"scheduling-gateway/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	controller *controller.AvailabilityController
}

func NewAvailabilityRouter(controller *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{
		controller: controller,
	}
}

func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/availability/times", r.controller.GetTimes)
	v1.GET("/availability/month", r.controller.GetMonth)
}
