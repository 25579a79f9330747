package service

import (
	"context"
	"sort"

	"scheduling-gateway/core/errors"
	"scheduling-gateway/core/logger"
	"scheduling-gateway/modules/locations/dto"
)

type LocationsService interface {
	List(ctx context.Context) ([]dto.LocationResponse, error)
	// ResolveTarget canonicalizes a location (or ZIP) plus optional explicit
	// overrides into the account and appointment type every downstream call
	// uses.
	ResolveTarget(ctx context.Context, location, explicitAccount, explicitType string) (dto.Target, error)
	Reload(ctx context.Context) error
}

type locationsService struct {
	store *ConfigStore
}

func NewLocationsService(store *ConfigStore) LocationsService {
	return &locationsService{store: store}
}

func (s *locationsService) List(ctx context.Context) ([]dto.LocationResponse, error) {
	locations, err := s.store.Locations(ctx)
	if err != nil {
		return nil, err
	}
	cityTypes, err := s.store.CityTypes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LocationResponse, 0, len(locations))
	for key, entry := range locations {
		account := InferAccount(entry.Account, key, cityTypes)
		resolution, _ := ResolveAppointmentType(cityTypes, account, key, "")
		if id := ParseIdentifier(entry.AppointmentTypeID); id.Kind == IdentifierNumeric && resolution.ID == 0 {
			resolution = TypeResolution{ID: id.Numeric, Source: TypeSourceCityTypes}
		}
		out = append(out, dto.LocationResponse{
			Key:               key,
			Name:              entry.Name,
			Account:           string(account),
			AppointmentTypeID: resolution.ID,
			Zips:              entry.Zips,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *locationsService) ResolveTarget(ctx context.Context, location, explicitAccount, explicitType string) (dto.Target, error) {
	key := NormalizeLocationKey(location)

	// ZIP inputs map to a location key through the metadata document first.
	if IsZip(key) {
		mapped, ok, err := s.store.LocationForZip(ctx, key)
		if err != nil {
			return dto.Target{}, err
		}
		if !ok {
			return dto.Target{}, errors.NewAppError(errors.ErrNotFound,
				"No service location configured for ZIP "+key, nil)
		}
		key = mapped
	}

	cityTypes, err := s.store.CityTypes(ctx)
	if err != nil {
		return dto.Target{}, err
	}

	account := InferAccount(explicitAccount, key, cityTypes)
	resolution, err := ResolveAppointmentType(cityTypes, account, key, explicitType)
	if err != nil {
		return dto.Target{}, err
	}

	// The metadata document may carry a type the city-types table lacks.
	if resolution.ID == 0 {
		if entry, _, ok, lookupErr := s.store.LookupLocation(ctx, key); lookupErr == nil && ok {
			if id := ParseIdentifier(entry.AppointmentTypeID); id.Kind == IdentifierNumeric {
				resolution = TypeResolution{ID: id.Numeric, Source: TypeSourceCityTypes}
			}
		}
	}

	logger.Debug("LocationsService:ResolveTarget",
		"location", key,
		"account", account,
		"appointment_type_id", resolution.ID,
		"type_source", resolution.Source)

	return dto.Target{
		LocationKey:           key,
		Account:               account,
		AppointmentTypeID:     resolution.ID,
		AppointmentTypeSource: resolution.Source,
	}, nil
}

func (s *locationsService) Reload(ctx context.Context) error {
	return s.store.Reload(ctx)
}
