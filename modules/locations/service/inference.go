package service

import (
	"strings"

	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/errors"
)

// Appointment-type provenance values carried into responses.
const (
	TypeSourceQuery     = "query"
	TypeSourceCityTypes = "city-types"
)

// TypeResolution is an appointment-type id with its provenance. ID 0 with an
// empty Source means no type could be determined.
type TypeResolution struct {
	ID     int64
	Source string
}

// InferAccount decides which of the two provider accounts owns a location.
// An explicit value wins (closed two-way choice via ParseAccount). Otherwise
// membership of any key form under the parents branch of the city-types
// table means parents, then main, then main by default. Every endpoint that
// needs an account goes through here so a location is never routed against
// one account's credentials and the other's calendar namespace.
func InferAccount(explicit, location string, cityTypes CityTypes) acuity.Account {
	if explicit != "" {
		return acuity.ParseAccount(explicit)
	}
	forms := KeyForms(location)
	if branchHasKey(cityTypes[string(acuity.AccountParents)], forms) {
		return acuity.AccountParents
	}
	if branchHasKey(cityTypes[string(acuity.AccountMain)], forms) {
		return acuity.AccountMain
	}
	return acuity.AccountMain
}

// ResolveAppointmentType picks the appointment-type id for a location under
// an account. An explicit value wins unconditionally, so a malformed one is
// an input error rather than a silent fall-through to the table. Otherwise
// the city-types table is consulted with each key form. The zero
// TypeResolution means none.
func ResolveAppointmentType(cityTypes CityTypes, account acuity.Account, location, explicit string) (TypeResolution, error) {
	if strings.TrimSpace(explicit) != "" {
		id := ParseIdentifier(explicit)
		if id.Kind != IdentifierNumeric {
			return TypeResolution{}, errors.NewAppError(errors.ErrInvalidInput,
				"appointmentTypeId must be numeric", nil)
		}
		return TypeResolution{ID: id.Numeric, Source: TypeSourceQuery}, nil
	}

	branch := cityTypes[string(account)]
	for _, form := range KeyForms(location) {
		raw, ok := branch[form]
		if !ok {
			continue
		}
		if id := ParseIdentifier(raw); id.Kind == IdentifierNumeric {
			return TypeResolution{ID: id.Numeric, Source: TypeSourceCityTypes}, nil
		}
	}
	return TypeResolution{}, nil
}

func branchHasKey(branch map[string]any, forms []string) bool {
	for _, form := range forms {
		if _, ok := branch[form]; ok {
			return true
		}
	}
	return false
}
