package tasks

import (
	"context"

	"calendar-insights/core/logger"

	"github.com/hibiken/asynq"
)

const TypeDailyFetch = "fetch:daily"

// DailyFetcher is what the worker needs from the fetch service.
type DailyFetcher interface {
	FetchDaily(ctx context.Context) error
}

func NewDailyFetchTask() *asynq.Task {
	return asynq.NewTask(TypeDailyFetch, nil)
}

// DailyFetchHandler runs the scheduled incremental fetch.
type DailyFetchHandler struct {
	fetcher DailyFetcher
}

func NewDailyFetchHandler(fetcher DailyFetcher) *DailyFetchHandler {
	return &DailyFetchHandler{fetcher: fetcher}
}

func (h *DailyFetchHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	logger.Info("DailyFetchHandler:ProcessTask:Start")
	if err := h.fetcher.FetchDaily(ctx); err != nil {
		logger.Error("DailyFetchHandler:ProcessTask:Failed", "error", err)
		return err
	}
	logger.Info("DailyFetchHandler:ProcessTask:Complete")
	return nil
}
