package dto

import (
	"scheduling-gateway/core/controller"
)

// ========== Calendar DTOs ==========

type CalendarResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CalendarListResponse struct {
	controller.Envelope
	Account   string             `json:"account"`
	Calendars []CalendarResponse `json:"calendars"`
}

// ========== Appointment Type DTOs ==========

type AppointmentTypeResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Duration    int     `json:"duration"`
	CalendarIDs []int64 `json:"calendarIds,omitempty"`
}

type AppointmentTypeListResponse struct {
	controller.Envelope
	Account string                    `json:"account"`
	Types   []AppointmentTypeResponse `json:"appointmentTypes"`
}

// ========== Resolution DTOs ==========

// ResolveResponse exposes the full routing decision for a location,
// including the provenance of the appointment type and of the winning
// calendar tier.
type ResolveResponse struct {
	controller.Envelope
	Location              string   `json:"location"`
	Account               string   `json:"account"`
	AppointmentTypeID     int64    `json:"appointmentTypeId,omitempty"`
	AppointmentTypeSource string   `json:"appointmentTypeSource,omitempty"`
	CalendarIDs           []int64  `json:"calendarIds"`
	UnresolvedNames       []string `json:"unresolvedNames,omitempty"`
	CalendarSource        string   `json:"calendarSource"`
}
