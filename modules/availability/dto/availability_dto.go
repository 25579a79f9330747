package dto

import (
	"scheduling-gateway/core/controller"
)

// ========== Availability DTOs ==========

// Slot is one bookable time on one calendar. Multiple calendars may offer
// the same time; callers see every offer, never a cross-calendar dedup.
type Slot struct {
	Time       string `json:"time"`
	CalendarID int64  `json:"calendarId"`
	Slots      int    `json:"slots"`
}

// DaySlots merges the slot lists of every resolved calendar for one date.
type DaySlots struct {
	Date       string `json:"date"`
	Slots      []Slot `json:"slots"`
	TotalSlots int    `json:"totalSlots"`
}

// AggregateError records one failed per-calendar/per-day fetch. These ride
// along in a success response instead of failing it.
type AggregateError struct {
	CalendarID int64  `json:"calendarId"`
	Date       string `json:"date"`
	Error      string `json:"error"`
}

type TimesResponse struct {
	controller.Envelope
	Location              string           `json:"location"`
	Account               string           `json:"account"`
	AppointmentTypeID     int64            `json:"appointmentTypeId"`
	AppointmentTypeSource string           `json:"appointmentTypeSource,omitempty"`
	CalendarIDs           []int64          `json:"calendarIds"`
	CalendarSource        string           `json:"calendarSource"`
	Days                  []DaySlots       `json:"days"`
	Errors                []AggregateError `json:"errors"`
}

// MonthDay is the calendar-picker view: how many slots a date has at all.
type MonthDay struct {
	Date  string `json:"date"`
	Slots int    `json:"slots"`
}

type MonthResponse struct {
	controller.Envelope
	Location          string           `json:"location"`
	Account           string           `json:"account"`
	AppointmentTypeID int64            `json:"appointmentTypeId"`
	Month             string           `json:"month"`
	CalendarIDs       []int64          `json:"calendarIds"`
	CalendarSource    string           `json:"calendarSource"`
	Days              []MonthDay       `json:"days"`
	Errors            []AggregateError `json:"errors"`
}
