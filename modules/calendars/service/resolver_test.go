package service

import (
	"context"
	"sync"
	"testing"

	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/cache"
	"scheduling-gateway/core/errors"
)

// fakeAPI serves canned listings and counts upstream calls. listings is a
// queue: each GetCalendars call pops the next set, the last one repeating.
type fakeAPI struct {
	mu            sync.Mutex
	listings      [][]acuity.Calendar
	types         []acuity.AppointmentType
	calendarCalls int
	typeCalls     int
	calendarErr   error
	typeErr       error
}

func (f *fakeAPI) GetCalendars(ctx context.Context, account acuity.Account) ([]acuity.Calendar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calendarCalls++
	if f.calendarErr != nil {
		return nil, f.calendarErr
	}
	if len(f.listings) == 0 {
		return nil, nil
	}
	listing := f.listings[0]
	if len(f.listings) > 1 {
		f.listings = f.listings[1:]
	}
	return listing, nil
}

func (f *fakeAPI) GetAppointmentTypes(ctx context.Context, account acuity.Account) ([]acuity.AppointmentType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typeCalls++
	if f.typeErr != nil {
		return nil, f.typeErr
	}
	return f.types, nil
}

func (f *fakeAPI) GetAvailabilityTimes(ctx context.Context, account acuity.Account, appointmentTypeID, calendarID int64, date string) ([]acuity.TimeSlot, error) {
	return nil, nil
}

func (f *fakeAPI) countCalendarCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calendarCalls
}

func newTestResolver(api *fakeAPI) *Resolver {
	return NewResolver(NewListingCache(api, cache.NewMemoryCache()))
}

func TestResolve_NumericTierWinsWithoutFetch(t *testing.T) {
	api := &fakeAPI{listings: [][]acuity.Calendar{{{ID: 1, Name: "anything"}}}}
	resolver := newTestResolver(api)

	res, err := resolver.Resolve(context.Background(), acuity.AccountMain, []Tier{
		{SourceName: SourceConfig, Values: []any{"101", 102, "101"}},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Source != SourceConfig {
		t.Fatalf("expected config source, got %q", res.Source)
	}
	if len(res.IDs) != 2 || res.IDs[0] != 101 || res.IDs[1] != 102 {
		t.Fatalf("expected deduplicated [101 102], got %v", res.IDs)
	}
	if calls := api.countCalendarCalls(); calls != 0 {
		t.Fatalf("numeric tier win must not fetch the listing, saw %d calls", calls)
	}
}

func TestResolve_NameMatching(t *testing.T) {
	listing := []acuity.Calendar{
		{ID: 77, Name: "old town"},
		{ID: 78, Name: "Scottsdale AM"},
	}
	api := &fakeAPI{listings: [][]acuity.Calendar{listing}}
	resolver := newTestResolver(api)

	// "Old Town Calendar" has no exact or contains match, but it contains
	// the listed name "old town".
	res, err := resolver.Resolve(context.Background(), acuity.AccountMain, []Tier{
		{SourceName: SourceConfig, Values: []any{"Old Town Calendar"}},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.IDs) != 1 || res.IDs[0] != 77 {
		t.Fatalf("expected [77], got %v", res.IDs)
	}
	if len(res.UnresolvedNames) != 0 {
		t.Fatalf("expected no unresolved names, got %v", res.UnresolvedNames)
	}
	if res.Source != SourceConfig {
		t.Fatalf("expected config source, got %q", res.Source)
	}
}

func TestResolve_ExactMatchBeatsContains(t *testing.T) {
	listing := []acuity.Calendar{
		{ID: 10, Name: "Gilbert East"},
		{ID: 11, Name: "gilbert"},
	}
	api := &fakeAPI{listings: [][]acuity.Calendar{listing}}
	resolver := newTestResolver(api)

	res, err := resolver.Resolve(context.Background(), acuity.AccountMain, []Tier{
		{SourceName: SourceConfig, Values: []any{"Gilbert"}},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.IDs) != 1 || res.IDs[0] != 11 {
		t.Fatalf("exact case-insensitive match should win, got %v", res.IDs)
	}
}

func TestResolve_ForceRefreshOnLabelMiss(t *testing.T) {
	stale := []acuity.Calendar{{ID: 1, Name: "Glendale"}}
	fresh := []acuity.Calendar{{ID: 1, Name: "Glendale"}, {ID: 2, Name: "Surprise"}}
	api := &fakeAPI{listings: [][]acuity.Calendar{stale, fresh}}
	resolver := newTestResolver(api)

	res, err := resolver.Resolve(context.Background(), acuity.AccountMain, []Tier{
		{SourceName: SourceConfig, Values: []any{"Surprise"}},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.IDs) != 1 || res.IDs[0] != 2 {
		t.Fatalf("expected refreshed listing to resolve Surprise to [2], got %v", res.IDs)
	}
	if calls := api.countCalendarCalls(); calls != 2 {
		t.Fatalf("expected exactly one forced refresh (2 fetches), saw %d", calls)
	}
}

func TestResolve_FallsThroughToAll(t *testing.T) {
	listing := []acuity.Calendar{{ID: 5, Name: "A"}, {ID: 6, Name: "B"}}
	api := &fakeAPI{listings: [][]acuity.Calendar{listing}}
	resolver := newTestResolver(api)

	res, err := resolver.Resolve(context.Background(), acuity.AccountMain, []Tier{
		{SourceName: SourceConfig, Values: []any{"No Such Calendar"}},
		{SourceName: SourceFallbackPool, Values: []any{"Also Missing"}},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Source != SourceAll {
		t.Fatalf("expected all source, got %q", res.Source)
	}
	if len(res.IDs) != 2 || res.IDs[0] != 5 || res.IDs[1] != 6 {
		t.Fatalf("expected every listed id, got %v", res.IDs)
	}
	// The first partial tier's misses ride along for observability.
	if len(res.UnresolvedNames) != 1 || res.UnresolvedNames[0] != "No Such Calendar" {
		t.Fatalf("expected unresolved names from first partial tier, got %v", res.UnresolvedNames)
	}
}

func TestResolve_LazyTierSkippedWhenEarlierWins(t *testing.T) {
	api := &fakeAPI{}
	resolver := newTestResolver(api)

	fetched := false
	res, err := resolver.Resolve(context.Background(), acuity.AccountMain, []Tier{
		{SourceName: SourceConfig, Values: []any{301}},
		{SourceName: SourceAppointmentType, Fetch: func(ctx context.Context) ([]any, error) {
			fetched = true
			return []any{999}, nil
		}},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if fetched {
		t.Fatal("later lazy tier must not be evaluated when an earlier tier wins")
	}
	if res.Source != SourceConfig || len(res.IDs) != 1 || res.IDs[0] != 301 {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	listing := []acuity.Calendar{{ID: 9, Name: "Tucson"}}
	api := &fakeAPI{listings: [][]acuity.Calendar{listing}}
	resolver := newTestResolver(api)
	tiers := []Tier{{SourceName: SourceConfig, Values: []any{"Tucson", "9"}}}

	first, err := resolver.Resolve(context.Background(), acuity.AccountMain, tiers)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := resolver.Resolve(context.Background(), acuity.AccountMain, tiers)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if len(first.IDs) != len(second.IDs) {
		t.Fatalf("resolution not idempotent: %v vs %v", first.IDs, second.IDs)
	}
	for i := range first.IDs {
		if first.IDs[i] != second.IDs[i] {
			t.Fatalf("resolution not idempotent: %v vs %v", first.IDs, second.IDs)
		}
	}
}

func TestResolve_ListingFailurePropagates(t *testing.T) {
	api := &fakeAPI{calendarErr: errors.NewUpstreamError("listing down", 503, nil)}
	resolver := newTestResolver(api)

	_, err := resolver.Resolve(context.Background(), acuity.AccountMain, []Tier{
		{SourceName: SourceConfig, Values: []any{"Some Name"}},
	})
	if err == nil {
		t.Fatal("expected listing failure to propagate")
	}
	if ae := errors.AsAppError(err); ae.Code != errors.ErrUpstream {
		t.Fatalf("expected upstream error, got %q", ae.Code)
	}
}
