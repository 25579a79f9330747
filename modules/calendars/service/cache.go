package service

import (
	"context"
	"encoding/json"

	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/cache"
	"scheduling-gateway/core/constants"
	"scheduling-gateway/core/errors"
	"scheduling-gateway/core/logger"
)

const (
	calendarsKeyPrefix = "acuity:calendars:"
	typesKeyPrefix     = "acuity:appointment-types:"
)

// ListingCache serves provider listings from the shared cache with a
// 5-minute TTL. A fetch failure leaves any existing entry untouched and is
// surfaced to the caller; stale entries are never served automatically,
// expiry always means refetch.
type ListingCache struct {
	api   acuity.API
	cache cache.Cache
}

func NewListingCache(api acuity.API, c cache.Cache) *ListingCache {
	return &ListingCache{api: api, cache: c}
}

// GetCalendars returns the account's calendar listing, fetching upstream on
// a miss, an expired entry, or force.
func (lc *ListingCache) GetCalendars(ctx context.Context, account acuity.Account, force bool) ([]acuity.Calendar, error) {
	key := calendarsKeyPrefix + string(account)

	if !force {
		if cached, err := lc.cache.Get(ctx, key); err == nil && cached != nil {
			var calendars []acuity.Calendar
			if json.Unmarshal(cached, &calendars) == nil {
				return calendars, nil
			}
			// Corrupt entry; fall through to a live fetch.
		} else if err != nil {
			logger.Warn("ListingCache:GetCalendars:CacheReadError", "account", account, "error", err)
		}
	}

	calendars, err := lc.api.GetCalendars(ctx, account)
	if err != nil {
		return nil, err
	}
	lc.store(ctx, key, calendars)
	return calendars, nil
}

// GetAppointmentTypes returns the account's appointment-type listing under
// the same TTL policy.
func (lc *ListingCache) GetAppointmentTypes(ctx context.Context, account acuity.Account, force bool) ([]acuity.AppointmentType, error) {
	key := typesKeyPrefix + string(account)

	if !force {
		if cached, err := lc.cache.Get(ctx, key); err == nil && cached != nil {
			var types []acuity.AppointmentType
			if json.Unmarshal(cached, &types) == nil {
				return types, nil
			}
		} else if err != nil {
			logger.Warn("ListingCache:GetAppointmentTypes:CacheReadError", "account", account, "error", err)
		}
	}

	types, err := lc.api.GetAppointmentTypes(ctx, account)
	if err != nil {
		return nil, err
	}
	lc.store(ctx, key, types)
	return types, nil
}

func (lc *ListingCache) store(ctx context.Context, key string, listing any) {
	payload, err := json.Marshal(listing)
	if err != nil {
		logger.Error("ListingCache:Store:MarshalError", "key", key, "error", err)
		return
	}
	if err := lc.cache.Set(ctx, key, payload, constants.CalendarCacheTTL); err != nil {
		// A write failure only costs the next reader a refetch.
		logger.Warn("ListingCache:Store:CacheWriteError", "key", key, "error", err)
	}
}

// Invalidate drops both listings for an account.
func (lc *ListingCache) Invalidate(ctx context.Context, account acuity.Account) error {
	if err := lc.cache.Delete(ctx, calendarsKeyPrefix+string(account)); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to invalidate calendar listing", err)
	}
	return lc.cache.Delete(ctx, typesKeyPrefix+string(account))
}
