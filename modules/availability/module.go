package availability

import (
	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/middleware"
	"scheduling-gateway/modules/availability/controller"
	"scheduling-gateway/modules/availability/router"
	"scheduling-gateway/modules/availability/service"
	calService "scheduling-gateway/modules/calendars/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, mw *middleware.Middleware, api acuity.API, calendars calService.CalendarsService) {
	// Initialize layers
	aggregator := service.NewAggregator(api)
	availabilityService := service.NewAvailabilityService(calendars, aggregator)
	availabilityController := controller.NewAvailabilityController(availabilityService)

	// Setup routes
	router.NewAvailabilityRouter(availabilityController).Setup(e, mw)
}
