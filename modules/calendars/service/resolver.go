package service

import (
	"context"
	"strings"

	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/logger"
	locsvc "scheduling-gateway/modules/locations/service"
)

// SourceAll marks a resolution that fell through every tier to the full
// account listing.
const SourceAll = "all"

// Tier is one candidate source of calendar identifiers. Values holds the
// raw candidates; Fetch, when set, supplies them lazily so a tier that is
// never reached costs no upstream call.
type Tier struct {
	SourceName string
	Values     []any
	Fetch      func(ctx context.Context) ([]any, error)
}

// Resolution is the outcome of resolving candidate tiers against an
// account's calendar namespace. IDs is deduplicated and ordered by first
// occurrence; UnresolvedNames lists labels that matched nothing; Source
// names the tier that won.
type Resolution struct {
	IDs             []int64
	UnresolvedNames []string
	Source          string
}

// Resolver turns candidate tiers into concrete calendar IDs, consulting the
// cached account listing for label candidates. Tiers are tried in priority
// order and resolution short-circuits at the first tier producing at least
// one numeric ID; configuration drift therefore degrades to broader tiers
// instead of returning zero availability.
type Resolver struct {
	listings *ListingCache
}

func NewResolver(listings *ListingCache) *Resolver {
	return &Resolver{listings: listings}
}

func (r *Resolver) Resolve(ctx context.Context, account acuity.Account, tiers []Tier) (Resolution, error) {
	var partial *Resolution
	var listing []acuity.Calendar
	listingLoaded := false
	listingRefreshed := false

	loadListing := func(force bool) error {
		if listingLoaded && !force {
			return nil
		}
		calendars, err := r.listings.GetCalendars(ctx, account, force)
		if err != nil {
			return err
		}
		listing = calendars
		listingLoaded = true
		if force {
			listingRefreshed = true
		}
		return nil
	}

	for _, tier := range tiers {
		values := tier.Values
		if values == nil && tier.Fetch != nil {
			fetched, err := tier.Fetch(ctx)
			if err != nil {
				// A tier that cannot produce candidates is skipped, not
				// fatal; broader tiers still get their chance.
				logger.Warn("Resolver:TierFetchError",
					"account", account,
					"tier", tier.SourceName,
					"error", err)
				continue
			}
			values = fetched
		}

		ids, names := partitionCandidates(values)

		if len(names) == 0 {
			if len(ids) > 0 {
				return Resolution{IDs: dedupeIDs(ids), Source: tier.SourceName}, nil
			}
			continue
		}

		// Label candidates need the live listing.
		if err := loadListing(false); err != nil {
			return Resolution{}, err
		}

		matched, unresolved := matchNames(names, listing)

		// A label miss forces one listing refresh for the whole resolve.
		if len(unresolved) > 0 && !listingRefreshed {
			if err := loadListing(true); err != nil {
				return Resolution{}, err
			}
			var still []string
			var more []int64
			more, still = matchNames(unresolved, listing)
			matched = append(matched, more...)
			unresolved = still
		}

		merged := dedupeIDs(append(append([]int64{}, ids...), matched...))
		if len(merged) > 0 {
			return Resolution{IDs: merged, UnresolvedNames: unresolved, Source: tier.SourceName}, nil
		}

		if partial == nil {
			partial = &Resolution{UnresolvedNames: unresolved, Source: tier.SourceName}
		}
	}

	// Last resort: every calendar the account has.
	if err := loadListing(false); err != nil {
		return Resolution{}, err
	}
	all := make([]int64, 0, len(listing))
	for _, cal := range listing {
		all = append(all, cal.ID)
	}

	result := Resolution{IDs: dedupeIDs(all), Source: SourceAll}
	if partial != nil {
		result.UnresolvedNames = partial.UnresolvedNames
	}
	logger.Info("Resolver:FellThrough",
		"account", account,
		"calendars", len(result.IDs),
		"unresolved", result.UnresolvedNames)
	return result, nil
}

// partitionCandidates splits raw candidate values into numeric IDs and
// label names via the identifier normalizer. Unparseable values drop out.
func partitionCandidates(values []any) ([]int64, []string) {
	var ids []int64
	var names []string
	for _, v := range values {
		switch id := locsvc.ParseIdentifier(v); id.Kind {
		case locsvc.IdentifierNumeric:
			ids = append(ids, id.Numeric)
		case locsvc.IdentifierLabel:
			names = append(names, id.Label)
		}
	}
	return ids, names
}

// matchNames resolves labels against a listing: exact case-insensitive
// match first, then the first calendar whose name contains the target, then
// the first whose name the target contains. First positive match wins per
// name.
func matchNames(names []string, listing []acuity.Calendar) ([]int64, []string) {
	var matched []int64
	var unresolved []string
	for _, name := range names {
		if id, ok := matchName(name, listing); ok {
			matched = append(matched, id)
		} else {
			unresolved = append(unresolved, name)
		}
	}
	return matched, unresolved
}

func matchName(name string, listing []acuity.Calendar) (int64, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return 0, false
	}
	for _, cal := range listing {
		if strings.ToLower(strings.TrimSpace(cal.Name)) == target {
			return cal.ID, true
		}
	}
	for _, cal := range listing {
		if strings.Contains(strings.ToLower(cal.Name), target) {
			return cal.ID, true
		}
	}
	for _, cal := range listing {
		calName := strings.ToLower(strings.TrimSpace(cal.Name))
		if calName != "" && strings.Contains(target, calName) {
			return cal.ID, true
		}
	}
	return 0, false
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
