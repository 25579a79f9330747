package worker

import (
	"context"
	"encoding/json"

	"scheduling-gateway/core/acuity"
	"scheduling-gateway/core/logger"
	calService "scheduling-gateway/modules/calendars/service"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskRefreshListings re-warms the per-account provider listings so that
// interactive requests rarely pay for a cold fetch. The API never depends
// on this worker having run; it only shortens tail latency.
const TaskRefreshListings = "calendars:refresh"

const refreshInterval = "@every 5m"

type refreshPayload struct {
	Accounts []string `json:"accounts"`
}

// Worker owns the asynq server and scheduler for background refreshes.
// Started only when redis is configured.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	listings  *calService.ListingCache
}

func New(redisOpt asynq.RedisClientOpt, listings *calService.ListingCache) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 1,
	})
	scheduler := asynq.NewScheduler(redisOpt, nil)
	return &Worker{server: server, scheduler: scheduler, listings: listings}
}

// Run registers the periodic refresh and blocks until Shutdown.
func (w *Worker) Run() error {
	payload, err := json.Marshal(refreshPayload{
		Accounts: []string{string(acuity.AccountMain), string(acuity.AccountParents)},
	})
	if err != nil {
		return err
	}

	if _, err := w.scheduler.Register(refreshInterval, asynq.NewTask(TaskRefreshListings, payload)); err != nil {
		return err
	}
	if err := w.scheduler.Start(); err != nil {
		return err
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskRefreshListings, w.handleRefresh)
	return w.server.Run(mux)
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func (w *Worker) handleRefresh(ctx context.Context, task *asynq.Task) error {
	runID := uuid.NewString()

	var payload refreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	for _, name := range payload.Accounts {
		account := acuity.ParseAccount(name)
		if _, err := w.listings.GetCalendars(ctx, account, true); err != nil {
			// Refresh failures are routine (credentials absent, provider
			// hiccup); the interactive path retries on its own.
			logger.Warn("Worker:RefreshCalendars:Error", "run_id", runID, "account", account, "error", err)
			continue
		}
		if _, err := w.listings.GetAppointmentTypes(ctx, account, true); err != nil {
			logger.Warn("Worker:RefreshTypes:Error", "run_id", runID, "account", account, "error", err)
			continue
		}
		logger.Info("Worker:Refreshed", "run_id", runID, "account", account)
	}
	return nil
}
