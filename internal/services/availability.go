package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"driver-performance-service/internal/apperr"
	"driver-performance-service/internal/domain"
	"driver-performance-service/internal/platform/obs"
	"driver-performance-service/internal/ports"

	"github.com/rs/zerolog/log"
)

// UnavailableDriver pairs a driver with the human-readable reason they cannot
// take the candidate tour.
type UnavailableDriver struct {
	Driver *domain.Driver
	Reason string
}

// AvailabilityResult partitions a warehouse's active drivers for a candidate
// tour date.
type AvailabilityResult struct {
	Available   []*domain.Driver
	Unavailable []UnavailableDriver
}

// AvailabilityService screens a warehouse's active drivers for a candidate
// tour date: a same-day conflict disqualifies outright, then the weekly
// working-hours cap applies. Every call recomputes against current storage
// state; results are never cached here because they gate scheduling decisions.
type AvailabilityService struct {
	Drivers ports.DriverRepository
	Tours   ports.TourRepository
}

type driverCheck struct {
	driver *domain.Driver
	reason string // empty when available
	err    error
}

// ListAvailableDrivers evaluates each active driver at the warehouse
// independently. Any storage error aborts the whole call (fail closed): a
// driver is never reported available on uncertainty.
func (s *AvailabilityService) ListAvailableDrivers(
	ctx context.Context,
	tourDate time.Time,
	warehouseID int64,
) (_ *AvailabilityResult, err error) {
	defer obs.Time(ctx, "availability.ListAvailableDrivers")(&err)

	if warehouseID <= 0 {
		return nil, apperr.InvalidInput("warehouse id must be positive, got %d", warehouseID)
	}
	if tourDate.IsZero() {
		return nil, apperr.InvalidInput("tour date is required")
	}

	drivers, err := s.Drivers.FindActiveDriversByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list available drivers: find drivers for warehouse %d: %w", warehouseID, err)
	}

	result := &AvailabilityResult{
		Available:   []*domain.Driver{},
		Unavailable: []UnavailableDriver{},
	}
	if len(drivers) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Per-driver checks only read immutable historical data, so they run
	// concurrently under a bounded fan-out.
	sem := make(chan struct{}, 5)
	checks := make(chan driverCheck, len(drivers))
	var wg sync.WaitGroup

	for _, driver := range drivers {
		wg.Add(1)
		go func(d *domain.Driver) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			reason, e := s.checkDriver(ctx, d, tourDate)
			if e != nil {
				checks <- driverCheck{driver: d, err: fmt.Errorf("list available drivers: check driver %d: %w", d.DriverID, e)}
				cancel()
				return
			}
			checks <- driverCheck{driver: d, reason: reason}
		}(driver)
	}

	wg.Wait()
	close(checks)

	var checkErr error
	for c := range checks {
		if c.err != nil {
			if checkErr == nil {
				checkErr = c.err
			}
			continue
		}
		if c.reason == "" {
			result.Available = append(result.Available, c.driver)
		} else {
			result.Unavailable = append(result.Unavailable, UnavailableDriver{Driver: c.driver, Reason: c.reason})
		}
	}
	if checkErr != nil {
		return nil, checkErr
	}

	// Deterministic output ordering regardless of goroutine completion order.
	sort.Slice(result.Available, func(i, j int) bool {
		return result.Available[i].DriverID < result.Available[j].DriverID
	})
	sort.Slice(result.Unavailable, func(i, j int) bool {
		return result.Unavailable[i].Driver.DriverID < result.Unavailable[j].Driver.DriverID
	})

	return result, nil
}

// checkDriver returns an empty reason when the driver may take the tour.
// The same-day conflict takes priority over the weekly-hours check.
func (s *AvailabilityService) checkDriver(
	ctx context.Context,
	driver *domain.Driver,
	tourDate time.Time,
) (string, error) {
	conflict, err := s.Tours.HasTourOnDate(ctx, driver.DriverID, tourDate)
	if err != nil {
		return "", fmt.Errorf("same-day conflict check: %w", err)
	}
	if conflict {
		return "already has a trip scheduled on that date", nil
	}

	// Weekly window relative to the candidate date, candidate date excluded:
	// the tour being scheduled is not part of the sum.
	weekStart := domain.WeekStart(tourDate)
	tours, err := s.Tours.FindToursByDriverInRange(ctx, driver.DriverID, weekStart, domain.DateOnly(tourDate))
	if err != nil {
		return "", fmt.Errorf("weekly hours check: %w", err)
	}

	totalMinutes := 0
	for _, tour := range tours {
		minutes, err := tour.DurationMinutes()
		if err != nil {
			log.Warn().
				Int64("driver_id", driver.DriverID).
				Int64("tour_id", tour.TourID).
				Err(err).
				Msg("tour skipped from weekly workload sum")
			continue
		}
		totalMinutes += minutes
	}

	if totalMinutes >= WeeklyMinutesCap {
		return fmt.Sprintf(
			"already worked %dh%02dm this week (>= 40h weekly cap)",
			totalMinutes/60, totalMinutes%60,
		), nil
	}

	return "", nil
}
