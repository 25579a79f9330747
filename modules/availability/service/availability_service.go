package service

import (
	"context"
	"time"

	"scheduling-gateway/core/constants"
	"scheduling-gateway/core/errors"
	"scheduling-gateway/modules/availability/dto"
	calsvc "scheduling-gateway/modules/calendars/service"
)

const dateLayout = "2006-01-02"

type TimesQuery struct {
	Location          string
	Account           string
	AppointmentTypeID string
	Date              string
	Days              int
}

type MonthQuery struct {
	Location          string
	Account           string
	AppointmentTypeID string
	Month             string // YYYY-MM
}

type AvailabilityService interface {
	GetTimes(ctx context.Context, q TimesQuery) (*dto.TimesResponse, error)
	GetMonth(ctx context.Context, q MonthQuery) (*dto.MonthResponse, error)
}

type availabilityService struct {
	calendars  calsvc.CalendarsService
	aggregator *Aggregator
}

func NewAvailabilityService(calendars calsvc.CalendarsService, aggregator *Aggregator) AvailabilityService {
	return &availabilityService{
		calendars:  calendars,
		aggregator: aggregator,
	}
}

func (s *availabilityService) GetTimes(ctx context.Context, q TimesQuery) (*dto.TimesResponse, error) {
	if q.Location == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "location is required", nil)
	}
	start, err := time.Parse(dateLayout, q.Date)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date must be YYYY-MM-DD", err)
	}

	days := q.Days
	if days < 1 {
		days = 1
	}
	if days > constants.MaxAvailabilityDays {
		days = constants.MaxAvailabilityDays
	}

	target, resolution, err := s.calendars.ResolveForLocation(ctx, q.Location, q.Account, q.AppointmentTypeID)
	if err != nil {
		return nil, err
	}
	if target.AppointmentTypeID == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			"No appointment type for location "+target.LocationKey+"; pass appointmentTypeId", nil)
	}

	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(dateLayout))
	}

	merged, aggErrs := s.aggregator.Aggregate(ctx, target.Account, target.AppointmentTypeID, resolution.IDs, dates)

	return &dto.TimesResponse{
		Location:              target.LocationKey,
		Account:               string(target.Account),
		AppointmentTypeID:     target.AppointmentTypeID,
		AppointmentTypeSource: target.AppointmentTypeSource,
		CalendarIDs:           resolution.IDs,
		CalendarSource:        resolution.Source,
		Days:                  merged,
		Errors:                emptyIfNil(aggErrs),
	}, nil
}

func (s *availabilityService) GetMonth(ctx context.Context, q MonthQuery) (*dto.MonthResponse, error) {
	if q.Location == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "location is required", nil)
	}
	firstDay, err := time.Parse("2006-01", q.Month)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "month must be YYYY-MM", err)
	}

	target, resolution, err := s.calendars.ResolveForLocation(ctx, q.Location, q.Account, q.AppointmentTypeID)
	if err != nil {
		return nil, err
	}
	if target.AppointmentTypeID == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			"No appointment type for location "+target.LocationKey+"; pass appointmentTypeId", nil)
	}

	daysInMonth := firstDay.AddDate(0, 1, -1).Day()
	dates := make([]string, 0, daysInMonth)
	for i := 0; i < daysInMonth; i++ {
		dates = append(dates, firstDay.AddDate(0, 0, i).Format(dateLayout))
	}

	merged, aggErrs := s.aggregator.Aggregate(ctx, target.Account, target.AppointmentTypeID, resolution.IDs, dates)

	days := make([]dto.MonthDay, 0, len(merged))
	for _, day := range merged {
		days = append(days, dto.MonthDay{Date: day.Date, Slots: day.TotalSlots})
	}

	return &dto.MonthResponse{
		Location:          target.LocationKey,
		Account:           string(target.Account),
		AppointmentTypeID: target.AppointmentTypeID,
		Month:             q.Month,
		CalendarIDs:       resolution.IDs,
		CalendarSource:    resolution.Source,
		Days:              days,
		Errors:            emptyIfNil(aggErrs),
	}, nil
}

func emptyIfNil(errs []dto.AggregateError) []dto.AggregateError {
	if errs == nil {
		return []dto.AggregateError{}
	}
	return errs
}
