package service

// fallbackPools names the calendars historically associated with each
// service area, keyed by compact location key. Consulted only after the
// configured candidates and the appointment-type listing both come up
// empty; labels are resolved against the live listing like any other
// candidate.
var fallbackPools = map[string][]any{
	"scottsdale":   {"Scottsdale"},
	"northphoenix": {"North Phoenix", "Phoenix"},
	"gilbert":      {"Gilbert"},
	"glendale":     {"Glendale"},
	"oldtown":      {"Old Town", "Scottsdale"},
	"tucson":       {"Tucson"},
}

// fallbackPool returns the hardcoded candidate pool for a location, if any.
func fallbackPool(compactKey string) []any {
	return fallbackPools[compactKey]
}
