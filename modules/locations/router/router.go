package router

import (
	"scheduling-gateway/core/middleware"
	"scheduling-gateway/modules/locations/controller"

	"github.com/labstack/echo/v4"
)

type LocationsRouter struct {
	controller *controller.LocationsController
}

func NewLocationsRouter(controller *controller.LocationsController) *LocationsRouter {
	return &LocationsRouter{
		controller: controller,
	}
}

func (r *LocationsRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/locations", r.controller.List)

	admin := v1.Group("/admin")
	admin.Use(mw.AdminAuth())
	admin.POST("/reload", r.controller.Reload)
}
