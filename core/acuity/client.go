package acuity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"scheduling-gateway/core/config"
	"scheduling-gateway/core/constants"
	"scheduling-gateway/core/errors"
	"scheduling-gateway/core/logger"
)

// API is the slice of the provider surface this gateway consumes.
type API interface {
	GetCalendars(ctx context.Context, account Account) ([]Calendar, error)
	GetAppointmentTypes(ctx context.Context, account Account) ([]AppointmentType, error)
	GetAvailabilityTimes(ctx context.Context, account Account, appointmentTypeID, calendarID int64, date string) ([]TimeSlot, error)
}

type Client struct {
	baseURL    string
	main       config.Credentials
	parents    config.Credentials
	httpClient *http.Client
}

func NewClient(cfg config.AcuityConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = constants.AcuityAPIBase
	}
	return &Client{
		baseURL:    baseURL,
		main:       cfg.Main,
		parents:    cfg.Parents,
		httpClient: &http.Client{Timeout: constants.UpstreamTimeout},
	}
}

// credentials fails before any network traffic when an account's pair is
// missing; a request with empty Basic auth is never sent.
func (c *Client) credentials(account Account) (config.Credentials, error) {
	creds := c.main
	if account == AccountParents {
		creds = c.parents
	}
	if creds.UserID == "" || creds.APIKey == "" {
		return config.Credentials{}, errors.NewAppError(errors.ErrUpstreamAuth,
			fmt.Sprintf("No credentials configured for account %q", account), nil)
	}
	return creds, nil
}

func (c *Client) GetCalendars(ctx context.Context, account Account) ([]Calendar, error) {
	var calendars []Calendar
	if err := c.get(ctx, account, "/calendars", nil, &calendars); err != nil {
		return nil, err
	}
	return calendars, nil
}

func (c *Client) GetAppointmentTypes(ctx context.Context, account Account) ([]AppointmentType, error) {
	var types []AppointmentType
	if err := c.get(ctx, account, "/appointment-types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// GetAvailabilityTimes fetches the bookable times for one calendar on one
// date (YYYY-MM-DD).
func (c *Client) GetAvailabilityTimes(ctx context.Context, account Account, appointmentTypeID, calendarID int64, date string) ([]TimeSlot, error) {
	query := url.Values{}
	query.Set("appointmentTypeID", strconv.FormatInt(appointmentTypeID, 10))
	query.Set("calendarID", strconv.FormatInt(calendarID, 10))
	query.Set("date", date)

	var slots []TimeSlot
	if err := c.get(ctx, account, "/availability/times", query, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// upstreamError mirrors the provider's error body shape.
type upstreamError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	ErrorName  string `json:"error"`
}

func (c *Client) get(ctx context.Context, account Account, path string, query url.Values, out any) error {
	creds, err := c.credentials(account)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to build upstream request", err)
	}
	req.SetBasicAuth(creds.UserID, creds.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewUpstreamError("Upstream request failed", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewUpstreamError("Failed to read upstream response", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ue upstreamError
		message := fmt.Sprintf("Upstream returned status %d", resp.StatusCode)
		if json.Unmarshal(body, &ue) == nil && ue.Message != "" {
			message = ue.Message
		}
		logger.Warn("AcuityClient:UpstreamError",
			"account", account,
			"path", path,
			"status", resp.StatusCode,
			"message", message)
		return errors.NewUpstreamError(message, resp.StatusCode, nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewUpstreamError("Unparsable upstream payload", resp.StatusCode, err)
	}
	return nil
}
