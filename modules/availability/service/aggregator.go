package service

import (
	"context"
	"sort"
	"sync"

	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/constants"
	"scheduling-gateway/core/logger"
	"scheduling-gateway/modules/availability/dto"

	"golang.org/x/sync/semaphore"
)

// Aggregator fans per-calendar/per-day availability fetches out against the
// provider and merges the results by date. Individual fetch failures are
// collected, not raised; a single bad calendar or day never empties the
// whole response.
type Aggregator struct {
	api acuity.API
}

func NewAggregator(api acuity.API) *Aggregator {
	return &Aggregator{api: api}
}

type fetchResult struct {
	calendarID int64
	date       string
	slots      []acuity.TimeSlot
	err        error
}

// Aggregate fetches every (calendar, date) pair concurrently under the
// global in-flight bound and merges slot lists per date. Slots from
// different calendars for the same time are concatenated, each tagged with
// its calendar; counts default to 1 when the provider omits them.
func (a *Aggregator) Aggregate(ctx context.Context, account acuity.Account, appointmentTypeID int64, calendarIDs []int64, dates []string) ([]dto.DaySlots, []dto.AggregateError) {
	sem := semaphore.NewWeighted(constants.MaxConcurrentUpstreamCalls)
	results := make([]fetchResult, 0, len(calendarIDs)*len(dates))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, date := range dates {
		for _, calendarID := range calendarIDs {
			if err := sem.Acquire(ctx, 1); err != nil {
				// Context gone; record the abort for the remaining pairs.
				mu.Lock()
				results = append(results, fetchResult{calendarID: calendarID, date: date, err: err})
				mu.Unlock()
				continue
			}
			wg.Add(1)
			go func(calendarID int64, date string) {
				defer wg.Done()
				defer sem.Release(1)
				slots, err := a.api.GetAvailabilityTimes(ctx, account, appointmentTypeID, calendarID, date)
				mu.Lock()
				results = append(results, fetchResult{calendarID: calendarID, date: date, slots: slots, err: err})
				mu.Unlock()
			}(calendarID, date)
		}
	}
	wg.Wait()

	byDate := make(map[string][]dto.Slot, len(dates))
	var errs []dto.AggregateError
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, dto.AggregateError{
				CalendarID: res.calendarID,
				Date:       res.date,
				Error:      res.err.Error(),
			})
			continue
		}
		for _, slot := range res.slots {
			// An omitted count means one bookable opening; an explicit
			// zero stays zero.
			count := 1
			if slot.SlotsAvailable != nil {
				count = *slot.SlotsAvailable
				if count < 0 {
					count = 0
				}
			}
			byDate[res.date] = append(byDate[res.date], dto.Slot{
				Time:       slot.Time,
				CalendarID: res.calendarID,
				Slots:      count,
			})
		}
	}

	days := make([]dto.DaySlots, 0, len(dates))
	for _, date := range dates {
		slots := byDate[date]
		if slots == nil {
			slots = []dto.Slot{}
		}
		sort.SliceStable(slots, func(i, j int) bool {
			if slots[i].Time != slots[j].Time {
				return slots[i].Time < slots[j].Time
			}
			return slots[i].CalendarID < slots[j].CalendarID
		})
		total := 0
		for _, s := range slots {
			total += s.Slots
		}
		days = append(days, dto.DaySlots{Date: date, Slots: slots, TotalSlots: total})
	}

	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Date != errs[j].Date {
			return errs[i].Date < errs[j].Date
		}
		return errs[i].CalendarID < errs[j].CalendarID
	})

	if len(errs) > 0 {
		logger.Warn("Aggregator:PartialFailures",
			"account", account,
			"appointment_type_id", appointmentTypeID,
			"failed", len(errs),
			"fetched", len(results)-len(errs))
	}
	return days, errs
}
