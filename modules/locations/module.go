package locations

import (
	"scheduling-gateway/core/middleware"
	"scheduling-gateway/modules/locations/controller"
	"scheduling-gateway/modules/locations/router"
	"scheduling-gateway/modules/locations/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, mw *middleware.Middleware, store *service.ConfigStore) {
	// Initialize layers
	locationsService := service.NewLocationsService(store)
	locationsController := controller.NewLocationsController(locationsService)

	// Setup routes
	router.NewLocationsRouter(locationsController).Setup(e, mw)
}
