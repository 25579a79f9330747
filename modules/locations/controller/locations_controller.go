package controller

import (
	core "scheduling-gateway/core/controller"
	"scheduling-gateway/modules/locations/dto"
	"scheduling-gateway/modules/locations/service"

	"github.com/labstack/echo/v4"
)

type LocationsController struct {
	base    core.BaseController
	service service.LocationsService
}

func NewLocationsController(svc service.LocationsService) *LocationsController {
	return &LocationsController{
		base:    core.NewBaseController(),
		service: svc,
	}
}

// List returns the configured service locations
// GET /api/v1/locations
func (c *LocationsController) List(ctx echo.Context) error {
	locations, err := c.service.List(ctx.Request().Context())
	if err != nil {
		return c.base.Error(ctx, err)
	}
	return c.base.Success(ctx, dto.LocationListResponse{
		Envelope:  core.OK(ctx),
		Locations: locations,
	})
}

// Reload re-reads the static configuration documents
// POST /api/v1/admin/reload
func (c *LocationsController) Reload(ctx echo.Context) error {
	if err := c.service.Reload(ctx.Request().Context()); err != nil {
		return c.base.Error(ctx, err)
	}
	return c.base.Success(ctx, dto.ReloadResponse{
		Envelope: core.OK(ctx),
		Reloaded: true,
	})
}
