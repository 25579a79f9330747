package calendars

import (
	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/cache"
	"scheduling-gateway/core/middleware"
	"scheduling-gateway/modules/calendars/controller"
	"scheduling-gateway/modules/calendars/router"
	"scheduling-gateway/modules/calendars/service"
	locService "scheduling-gateway/modules/locations/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, mw *middleware.Middleware, api acuity.API, c cache.Cache, store *locService.ConfigStore) service.CalendarsService {
	// Initialize layers
	listings := service.NewListingCache(api, c)
	locationsService := locService.NewLocationsService(store)
	calendarsService := service.NewCalendarsService(locationsService, store, listings)
	calendarsController := controller.NewCalendarsController(calendarsService)

	// Setup routes
	router.NewCalendarsRouter(calendarsController).Setup(e, mw)
	return calendarsService
}
