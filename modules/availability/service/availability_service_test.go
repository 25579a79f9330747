package service

import (
	"context"
	"testing"

	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/errors"
	calsvc "scheduling-gateway/modules/calendars/service"
	locdto "scheduling-gateway/modules/locations/dto"
)

// fakeCalendars returns a fixed target and resolution for any location.
type fakeCalendars struct {
	target     locdto.Target
	resolution calsvc.Resolution
	err        error
}

func (f *fakeCalendars) ListCalendars(ctx context.Context, account acuity.Account, force bool) ([]acuity.Calendar, error) {
	return nil, nil
}

func (f *fakeCalendars) ListAppointmentTypes(ctx context.Context, account acuity.Account) ([]acuity.AppointmentType, error) {
	return nil, nil
}

func (f *fakeCalendars) ResolveForTarget(ctx context.Context, target locdto.Target) (calsvc.Resolution, error) {
	return f.resolution, f.err
}

func (f *fakeCalendars) ResolveForLocation(ctx context.Context, location, explicitAccount, explicitType string) (locdto.Target, calsvc.Resolution, error) {
	if f.err != nil {
		return locdto.Target{}, calsvc.Resolution{}, f.err
	}
	return f.target, f.resolution, nil
}

func (f *fakeCalendars) Listings() *calsvc.ListingCache {
	return nil
}

func scottsdaleCalendars() *fakeCalendars {
	return &fakeCalendars{
		target: locdto.Target{
			LocationKey:           "scottsdale",
			Account:               acuity.AccountMain,
			AppointmentTypeID:     12345,
			AppointmentTypeSource: "city-types",
		},
		resolution: calsvc.Resolution{IDs: []int64{9001}, Source: calsvc.SourceConfig},
	}
}

func TestGetTimes_ValidatesInput(t *testing.T) {
	svc := NewAvailabilityService(scottsdaleCalendars(), NewAggregator(&availAPI{}))

	cases := []struct {
		name string
		q    TimesQuery
	}{
		{"missing location", TimesQuery{Date: "2026-09-01"}},
		{"missing date", TimesQuery{Location: "Scottsdale"}},
		{"bad date", TimesQuery{Location: "Scottsdale", Date: "09/01/2026"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.GetTimes(context.Background(), tc.q)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if ae := errors.AsAppError(err); ae.Code != errors.ErrInvalidInput {
				t.Fatalf("expected invalid-input, got %q", ae.Code)
			}
		})
	}
}

func TestGetTimes_ClampsDays(t *testing.T) {
	api := &availAPI{}
	svc := NewAvailabilityService(scottsdaleCalendars(), NewAggregator(api))

	res, err := svc.GetTimes(context.Background(), TimesQuery{
		Location: "Scottsdale",
		Date:     "2026-09-01",
		Days:     30,
	})
	if err != nil {
		t.Fatalf("GetTimes: %v", err)
	}
	if len(res.Days) != 7 {
		t.Fatalf("expected window clamped to 7 days, got %d", len(res.Days))
	}
	if res.Days[0].Date != "2026-09-01" || res.Days[6].Date != "2026-09-07" {
		t.Fatalf("unexpected date window: %s .. %s", res.Days[0].Date, res.Days[6].Date)
	}
	// One calendar, seven dates.
	if api.callCount() != 7 {
		t.Fatalf("expected 7 upstream fetches, saw %d", api.callCount())
	}
}

func TestGetTimes_DefaultsToOneDay(t *testing.T) {
	api := &availAPI{}
	svc := NewAvailabilityService(scottsdaleCalendars(), NewAggregator(api))

	res, err := svc.GetTimes(context.Background(), TimesQuery{
		Location: "Scottsdale",
		Date:     "2026-09-01",
	})
	if err != nil {
		t.Fatalf("GetTimes: %v", err)
	}
	if len(res.Days) != 1 {
		t.Fatalf("expected a single day, got %d", len(res.Days))
	}
}

func TestGetTimes_PropagatesResolution(t *testing.T) {
	api := &availAPI{slots: map[string][]acuity.TimeSlot{
		pairKey(9001, "2026-09-01"): {{Time: "2026-09-01T10:00:00-0700", SlotsAvailable: intp(2)}},
	}}
	svc := NewAvailabilityService(scottsdaleCalendars(), NewAggregator(api))

	res, err := svc.GetTimes(context.Background(), TimesQuery{
		Location: "Scottsdale",
		Date:     "2026-09-01",
		Days:     1,
	})
	if err != nil {
		t.Fatalf("GetTimes: %v", err)
	}
	if res.Location != "scottsdale" || res.Account != "main" {
		t.Fatalf("unexpected target echo: %+v", res)
	}
	if res.AppointmentTypeID != 12345 || res.AppointmentTypeSource != "city-types" {
		t.Fatalf("unexpected type provenance: %+v", res)
	}
	if len(res.CalendarIDs) != 1 || res.CalendarIDs[0] != 9001 || res.CalendarSource != calsvc.SourceConfig {
		t.Fatalf("unexpected calendar provenance: %+v", res)
	}
	if res.Days[0].TotalSlots != 2 {
		t.Fatalf("expected 2 slots, got %+v", res.Days[0])
	}
	if res.Errors == nil || len(res.Errors) != 0 {
		t.Fatalf("errors must serialize as an empty array, got %#v", res.Errors)
	}
}

func TestGetTimes_RequiresResolvedType(t *testing.T) {
	cal := scottsdaleCalendars()
	cal.target.AppointmentTypeID = 0
	svc := NewAvailabilityService(cal, NewAggregator(&availAPI{}))

	_, err := svc.GetTimes(context.Background(), TimesQuery{
		Location: "Scottsdale",
		Date:     "2026-09-01",
	})
	if err == nil {
		t.Fatal("expected error when no appointment type resolves")
	}
	if ae := errors.AsAppError(err); ae.Code != errors.ErrInvalidInput {
		t.Fatalf("expected invalid-input, got %q", ae.Code)
	}
}

func TestGetTimes_ResolutionErrorPassesThrough(t *testing.T) {
	cal := &fakeCalendars{err: errors.NewAppError(errors.ErrNotFound, "Unknown location", nil)}
	svc := NewAvailabilityService(cal, NewAggregator(&availAPI{}))

	_, err := svc.GetTimes(context.Background(), TimesQuery{
		Location: "nowhere",
		Date:     "2026-09-01",
	})
	if ae := errors.AsAppError(err); ae == nil || ae.Code != errors.ErrNotFound {
		t.Fatalf("expected not-found passthrough, got %v", err)
	}
}

func TestGetMonth_IteratesWholeMonth(t *testing.T) {
	api := &availAPI{slots: map[string][]acuity.TimeSlot{
		pairKey(9001, "2026-02-14"): {{Time: "2026-02-14T10:00:00-0700", SlotsAvailable: intp(3)}},
	}}
	svc := NewAvailabilityService(scottsdaleCalendars(), NewAggregator(api))

	res, err := svc.GetMonth(context.Background(), MonthQuery{
		Location: "Scottsdale",
		Month:    "2026-02",
	})
	if err != nil {
		t.Fatalf("GetMonth: %v", err)
	}
	if len(res.Days) != 28 {
		t.Fatalf("expected 28 days for 2026-02, got %d", len(res.Days))
	}
	if res.Days[0].Date != "2026-02-01" || res.Days[27].Date != "2026-02-28" {
		t.Fatalf("unexpected month window: %s .. %s", res.Days[0].Date, res.Days[27].Date)
	}
	for _, day := range res.Days {
		want := 0
		if day.Date == "2026-02-14" {
			want = 3
		}
		if day.Slots != want {
			t.Fatalf("day %s: expected %d slots, got %d", day.Date, want, day.Slots)
		}
	}
}

func TestGetMonth_RejectsBadMonth(t *testing.T) {
	svc := NewAvailabilityService(scottsdaleCalendars(), NewAggregator(&availAPI{}))

	_, err := svc.GetMonth(context.Background(), MonthQuery{Location: "Scottsdale", Month: "Feb 2026"})
	if err == nil {
		t.Fatal("expected invalid month to fail")
	}
	if ae := errors.AsAppError(err); ae.Code != errors.ErrInvalidInput {
		t.Fatalf("expected invalid-input, got %q", ae.Code)
	}
}
