package service

import (
	"context"

	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/errors"
	"scheduling-gateway/core/logger"
	locdto "scheduling-gateway/modules/locations/dto"
	locsvc "scheduling-gateway/modules/locations/service"
)

// Candidate tier names as they surface in response provenance.
const (
	SourceConfig          = "config"
	SourceAppointmentType = "appointment-type"
	SourceFallbackPool    = "fallback-pool"
)

type CalendarsService interface {
	// ListCalendars returns the (cached) calendar listing for an account.
	ListCalendars(ctx context.Context, account acuity.Account, force bool) ([]acuity.Calendar, error)
	// ListAppointmentTypes passes the provider's type listing through.
	ListAppointmentTypes(ctx context.Context, account acuity.Account) ([]acuity.AppointmentType, error)
	// ResolveForTarget resolves the calendar set for an already-inferred
	// target, trying config > appointment-type > fallback pool > all.
	ResolveForTarget(ctx context.Context, target locdto.Target) (Resolution, error)
	// ResolveForLocation combines target inference with calendar
	// resolution; the diagnostic resolve endpoint and the availability
	// aggregator both go through here.
	ResolveForLocation(ctx context.Context, location, explicitAccount, explicitType string) (locdto.Target, Resolution, error)
	Listings() *ListingCache
}

type calendarsService struct {
	locations locsvc.LocationsService
	store     *locsvc.ConfigStore
	listings  *ListingCache
	resolver  *Resolver
}

func NewCalendarsService(locations locsvc.LocationsService, store *locsvc.ConfigStore, listings *ListingCache) CalendarsService {
	return &calendarsService{
		locations: locations,
		store:     store,
		listings:  listings,
		resolver:  NewResolver(listings),
	}
}

func (s *calendarsService) ListCalendars(ctx context.Context, account acuity.Account, force bool) ([]acuity.Calendar, error) {
	return s.listings.GetCalendars(ctx, account, force)
}

func (s *calendarsService) ListAppointmentTypes(ctx context.Context, account acuity.Account) ([]acuity.AppointmentType, error) {
	return s.listings.GetAppointmentTypes(ctx, account, false)
}

func (s *calendarsService) Listings() *ListingCache {
	return s.listings
}

func (s *calendarsService) ResolveForLocation(ctx context.Context, location, explicitAccount, explicitType string) (locdto.Target, Resolution, error) {
	target, err := s.locations.ResolveTarget(ctx, location, explicitAccount, explicitType)
	if err != nil {
		return locdto.Target{}, Resolution{}, err
	}

	resolution, err := s.ResolveForTarget(ctx, target)
	if err != nil {
		return target, Resolution{}, err
	}
	return target, resolution, nil
}

func (s *calendarsService) ResolveForTarget(ctx context.Context, target locdto.Target) (Resolution, error) {
	tiers := s.buildTiers(ctx, target)

	resolution, err := s.resolver.Resolve(ctx, target.Account, tiers)
	if err != nil {
		return Resolution{}, err
	}
	if len(resolution.IDs) == 0 {
		return Resolution{}, errors.NewAppError(errors.ErrNotFound,
			"No calendars resolvable for location "+target.LocationKey, nil)
	}

	logger.Info("CalendarsService:Resolved",
		"location", target.LocationKey,
		"account", target.Account,
		"source", resolution.Source,
		"calendars", len(resolution.IDs),
		"unresolved", len(resolution.UnresolvedNames))
	return resolution, nil
}

// buildTiers assembles the ordered candidate sources for a target. The
// appointment-type tier fetches lazily so it costs nothing when the config
// tier wins.
func (s *calendarsService) buildTiers(ctx context.Context, target locdto.Target) []Tier {
	var tiers []Tier

	if entry, _, ok, err := s.store.LookupLocation(ctx, target.LocationKey); err == nil && ok && len(entry.Calendars) > 0 {
		tiers = append(tiers, Tier{SourceName: SourceConfig, Values: entry.Calendars})
	}

	if target.AppointmentTypeID != 0 {
		typeID := target.AppointmentTypeID
		account := target.Account
		tiers = append(tiers, Tier{
			SourceName: SourceAppointmentType,
			Fetch: func(ctx context.Context) ([]any, error) {
				types, err := s.listings.GetAppointmentTypes(ctx, account, false)
				if err != nil {
					return nil, err
				}
				for _, t := range types {
					if t.ID == typeID {
						values := make([]any, 0, len(t.CalendarIDs))
						for _, id := range t.CalendarIDs {
							values = append(values, id)
						}
						return values, nil
					}
				}
				return nil, nil
			},
		})
	}

	if pool := fallbackPool(locsvc.CompactKey(target.LocationKey)); len(pool) > 0 {
		tiers = append(tiers, Tier{SourceName: SourceFallbackPool, Values: pool})
	}

	return tiers
}
