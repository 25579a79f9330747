package dto

import (
	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/controller"
)

// Target is the canonical routing decision for one location input: which
// account owns it and which appointment type applies, with the provenance
// of the type ("query" vs "city-types", empty when undetermined).
type Target struct {
	LocationKey           string
	Account               acuity.Account
	AppointmentTypeID     int64
	AppointmentTypeSource string
}

// ========== Location DTOs ==========

type LocationResponse struct {
	Key               string   `json:"key"`
	Name              string   `json:"name"`
	Account           string   `json:"account"`
	AppointmentTypeID int64    `json:"appointmentTypeId,omitempty"`
	Zips              []string `json:"zips,omitempty"`
}

type LocationListResponse struct {
	controller.Envelope
	Locations []LocationResponse `json:"locations"`
}

type ReloadResponse struct {
	controller.Envelope
	Reloaded bool `json:"reloaded"`
}
