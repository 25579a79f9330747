package acuity

import "strings"

// Account names one of the two provider tenants. Every calendar and
// appointment type lives in exactly one of them; they are never mixed.
type Account string

const (
	AccountMain    Account = "main"
	AccountParents Account = "parents"
)

// ParseAccount maps free text onto the closed two-way account choice:
// anything case-insensitively equal to "parents" is parents, everything
// else is main.
func ParseAccount(s string) Account {
	if strings.EqualFold(strings.TrimSpace(s), string(AccountParents)) {
		return AccountParents
	}
	return AccountMain
}

// Calendar is a provider-side bookable resource.
type Calendar struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AppointmentType is a provider-defined bookable service. CalendarIDs, when
// present, enumerates which calendars can fulfill it.
type AppointmentType struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Duration    int     `json:"duration"`
	Private     bool    `json:"private"`
	CalendarIDs []int64 `json:"calendarIDs"`
}

// TimeSlot is one bookable time on one calendar for one date.
// SlotsAvailable is nil when the provider omits the count; an explicit zero
// is preserved, not a default.
type TimeSlot struct {
	Time           string `json:"time"`
	SlotsAvailable *int   `json:"slotsAvailable"`
}
