package controller

import (
	"net/http"

	"scheduling-gateway/core/errors"
	"scheduling-gateway/core/logger"

	"github.com/labstack/echo/v4"
)

// RequestIDKey is where the request-id middleware stores the correlation id.
const RequestIDKey = "request_id"

// Response types
type (
	// Envelope carries the stable fields every success body starts with.
	// Endpoint payload types embed it so `ok` and `requestId` sit at the
	// top level of the JSON document.
	Envelope struct {
		OK        bool   `json:"ok"`
		RequestID string `json:"requestId"`
	}

	ErrorBody struct {
		Code    errors.ErrorCode `json:"code"`
		Message string           `json:"message"`
	}

	ErrorResponse struct {
		OK        bool      `json:"ok"`
		RequestID string    `json:"requestId"`
		Error     ErrorBody `json:"error"`
	}
)

// BaseController maps service errors onto HTTP responses.
type BaseController interface {
	Success(c echo.Context, payload any) error
	Error(c echo.Context, err error) error
	BadRequest(c echo.Context, message string) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

// RequestID returns the correlation id attached by the middleware.
func RequestID(c echo.Context) string {
	if id, ok := c.Get(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// OK builds the envelope for a payload about to be serialized.
func OK(c echo.Context) Envelope {
	return Envelope{OK: true, RequestID: RequestID(c)}
}

func (h *responseHandler) Success(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func (h *responseHandler) BadRequest(c echo.Context, message string) error {
	return h.Error(c, errors.NewAppError(errors.ErrInvalidInput, message, nil))
}

func (h *responseHandler) Error(c echo.Context, err error) error {
	ae := errors.AsAppError(err)
	httpStatus := statusFor(ae)

	logger.Error("BaseController:ErrorResponse",
		"request_id", RequestID(c),
		"status", httpStatus,
		"code", ae.Code,
		"message", ae.Message,
	)
	return c.JSON(httpStatus, ErrorResponse{
		OK:        false,
		RequestID: RequestID(c),
		Error:     ErrorBody{Code: ae.Code, Message: ae.Message},
	})
}

func statusFor(ae *errors.AppError) int {
	switch ae.Code {
	case errors.ErrInvalidInput:
		return http.StatusBadRequest
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrUpstreamAuth, errors.ErrConfigMissing:
		return http.StatusBadGateway
	case errors.ErrUpstream:
		// Propagate the provider's own status where it makes sense.
		if ae.UpstreamStatus >= 400 && ae.UpstreamStatus < 600 {
			return ae.UpstreamStatus
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
