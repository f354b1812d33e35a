package main

import (
	"context"
	"fmt"
	"os"

	"calendar-insights/core/config"
	"calendar-insights/core/constants"
	"calendar-insights/core/database"
	"calendar-insights/core/logger"
	calendarservice "calendar-insights/modules/calendar/service"
	directoryrepo "calendar-insights/modules/directory/repository"
	directoryservice "calendar-insights/modules/directory/service"
	fetchservice "calendar-insights/modules/fetch/service"
	"calendar-insights/modules/fetch/tasks"
	meetingrepo "calendar-insights/modules/meeting/repository"

	"github.com/hibiken/asynq"
)

func main() {
	if err := run(); err != nil {
		logger.Error("Worker:Failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required for the worker")
	}

	db, err := database.InitDB(cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}
	if err := database.RunMigrations(ctx, db); err != nil {
		return err
	}

	source := calendarservice.NewCalendarService(cfg)
	meetings := meetingrepo.NewMeetingRepository(db)
	runs := meetingrepo.NewFetchRunRepository(db)
	users := directoryrepo.NewUserRepository(db)
	enricher := directoryservice.NewDirectoryService(users)
	svc := fetchservice.NewFetchService(source, meetings, enricher, runs)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register(constants.DailyFetchCron, tasks.NewDailyFetchTask()); err != nil {
		return fmt.Errorf("failed to register daily fetch schedule: %w", err)
	}

	// Calendar fetches must never overlap, so the worker runs one task at a time.
	server := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 1})
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeDailyFetch, tasks.NewDailyFetchHandler(svc))

	errs := make(chan error, 2)
	go func() {
		logger.Info("Worker:Scheduler:Start", "cron", constants.DailyFetchCron)
		errs <- scheduler.Run()
	}()
	go func() {
		logger.Info("Worker:Server:Start")
		errs <- server.Run(mux)
	}()
	return <-errs
}
