package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"calendar-insights/core/config"
	"calendar-insights/core/database"
	"calendar-insights/core/logger"
	calendarservice "calendar-insights/modules/calendar/service"
	directoryrepo "calendar-insights/modules/directory/repository"
	directoryservice "calendar-insights/modules/directory/service"
	fetchservice "calendar-insights/modules/fetch/service"
	meetingrepo "calendar-insights/modules/meeting/repository"
)

type runMode struct {
	historicalYears int
	incrementalDays int
	daily           bool
	rangeStart      time.Time
	rangeEnd        time.Time
	useRange        bool
	listCalendars   bool
}

func main() {
	years := flag.Int("years", 0, "fetch this many years of history (full replace)")
	daily := flag.Bool("daily", false, "fetch the last day incrementally")
	days := flag.Int("days", 0, "fetch this many days incrementally")
	startDate := flag.String("start-date", "", "fetch range start (YYYY-MM-DD, with -end-date)")
	endDate := flag.String("end-date", "", "fetch range end (YYYY-MM-DD, with -start-date)")
	listCalendars := flag.Bool("list-calendars", false, "list readable calendars and exit")
	flag.Parse()

	// Usage errors are diagnosed before config loading or any database I/O.
	mode, err := selectMode(*years, *daily, *days, *startDate, *endDate, *listCalendars)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	if err := run(mode); err != nil {
		logger.Error("Fetch:Failed", "error", err)
		os.Exit(1)
	}
}

// selectMode validates the flag combination and resolves it to exactly one
// run mode. Selecting none, or a half-specified date range, is a usage error.
func selectMode(years int, daily bool, days int, startDate, endDate string, listCalendars bool) (runMode, error) {
	switch {
	case listCalendars:
		return runMode{listCalendars: true}, nil
	case daily:
		return runMode{daily: true}, nil
	case years > 0:
		return runMode{historicalYears: years}, nil
	case days > 0:
		return runMode{incrementalDays: days}, nil
	case startDate != "" || endDate != "":
		start, end, err := parseRange(startDate, endDate)
		if err != nil {
			return runMode{}, err
		}
		return runMode{rangeStart: start, rangeEnd: end, useRange: true}, nil
	default:
		return runMode{}, fmt.Errorf("specify one of -years, -daily, -days or -start-date/-end-date")
	}
}

func run(mode runMode) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if mode.listCalendars {
		return listCalendars(cfg)
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

	svc := buildFetchService(cfg, db)

	switch {
	case mode.daily:
		return svc.FetchDaily(ctx)
	case mode.historicalYears > 0:
		return svc.FetchHistorical(ctx, mode.historicalYears)
	case mode.incrementalDays > 0:
		return svc.FetchIncremental(ctx, mode.incrementalDays)
	default:
		return svc.FetchDateRange(ctx, mode.rangeStart, mode.rangeEnd)
	}
}

func listCalendars(cfg *config.Config) error {
	source := calendarservice.NewCalendarService(cfg)
	calendars, err := source.ListCalendars(context.Background())
	if err != nil {
		return err
	}
	for _, cal := range calendars {
		fmt.Printf("%s\t%s\t%s\n", cal.ID, cal.AccessRole, cal.Summary)
	}
	return nil
}

func buildFetchService(cfg *config.Config, db database.IDatabase) *fetchservice.FetchService {
	source := calendarservice.NewCalendarService(cfg)
	meetings := meetingrepo.NewMeetingRepository(db)
	runs := meetingrepo.NewFetchRunRepository(db)
	users := directoryrepo.NewUserRepository(db)
	enricher := directoryservice.NewDirectoryService(users)

	return fetchservice.NewFetchService(source, meetings, enricher, runs)
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("-start-date and -end-date must be given together")
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid -start-date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid -end-date %q: %w", endDate, err)
	}
	// The end date is inclusive on the command line.
	return start, end.AddDate(0, 0, 1), nil
}
