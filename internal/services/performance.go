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

// Fixed KPI weights. Their sum (29) fixes the maximum weighted sum at 145.
const (
	weightImages   = 1
	weightDelivery = 10
	weightPOD      = 1
	weightKM       = 3
	weightTime     = 7
	weightFuel     = 3
	weightCustomer = 4

	maxKPIScore = 5
)

const weightSum = weightImages + weightDelivery + weightPOD + weightKM + weightTime + weightFuel + weightCustomer

// DefaultKMPerFuelUnit is the fixed consumption-rate business rule: one fuel
// unit covers 10 km. Configurable, but the default is a product decision and
// must not drift.
const DefaultKMPerFuelUnit = 10.0

// PerformanceService aggregates completed tours and their route segments into
// per-driver scorecards over an inclusive date range.
type PerformanceService struct {
	Drivers       ports.DriverRepository
	Tours         ports.TourRepository
	KMPerFuelUnit float64
}

func NewPerformanceService(drivers ports.DriverRepository, tours ports.TourRepository, kmPerFuelUnit float64) *PerformanceService {
	if kmPerFuelUnit <= 0 {
		kmPerFuelUnit = DefaultKMPerFuelUnit
	}
	return &PerformanceService{
		Drivers:       drivers,
		Tours:         tours,
		KMPerFuelUnit: kmPerFuelUnit,
	}
}

// tourData pairs a completed tour with its route segments.
type tourData struct {
	tour     *domain.Tour
	segments []*domain.RouteSegment
}

type driverScorecard struct {
	card domain.Scorecard
	err  error
}

// GetDriverPerformance computes one scorecard per driver over the inclusive
// [startDate, endDate] range ("2006-01-02" strings). When driverID is non-nil
// only that driver is scored; it must reference an existing driver.
func (s *PerformanceService) GetDriverPerformance(
	ctx context.Context,
	startDate, endDate string,
	driverID *int64,
) (_ []domain.Scorecard, err error) {
	defer obs.Time(ctx, "performance.GetDriverPerformance")(&err)

	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	drivers, err := s.resolveDrivers(ctx, driverID)
	if err != nil {
		return nil, err
	}

	cards, err := s.scoreDrivers(ctx, drivers, func(ctx context.Context, d *domain.Driver) (domain.Scorecard, error) {
		tours, e := s.loadCompletedTours(ctx, d.DriverID, start, end)
		if e != nil {
			return domain.Scorecard{}, e
		}
		return s.score(d, tours), nil
	})
	if err != nil {
		return nil, err
	}

	return cards, nil
}

// GetDriverPerformanceWeekly applies the identical per-KPI logic but buckets
// each driver's completed tours into calendar weeks (Monday start) before
// scoring. Weeks without completed tours produce no entry.
func (s *PerformanceService) GetDriverPerformanceWeekly(
	ctx context.Context,
	startDate, endDate string,
	driverID *int64,
) (_ []domain.WeeklyScorecard, err error) {
	defer obs.Time(ctx, "performance.GetDriverPerformanceWeekly")(&err)

	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	drivers, err := s.resolveDrivers(ctx, driverID)
	if err != nil {
		return nil, err
	}

	weekly := make([]domain.WeeklyScorecard, 0, len(drivers))
	for _, driver := range drivers {
		tours, e := s.loadCompletedTours(ctx, driver.DriverID, start, end)
		if e != nil {
			return nil, e
		}

		buckets := make(map[time.Time][]tourData)
		for _, td := range tours {
			ws := domain.WeekStart(td.tour.TourDate)
			buckets[ws] = append(buckets[ws], td)
		}

		weekStarts := make([]time.Time, 0, len(buckets))
		for ws := range buckets {
			weekStarts = append(weekStarts, ws)
		}
		sort.Slice(weekStarts, func(i, j int) bool { return weekStarts[i].Before(weekStarts[j]) })

		for _, ws := range weekStarts {
			weekly = append(weekly, domain.WeeklyScorecard{
				WeekStart: ws,
				WeekEnd:   ws.AddDate(0, 0, 6),
				Scorecard: s.score(driver, buckets[ws]),
			})
		}
	}

	return weekly, nil
}

// resolveDrivers returns either the single requested driver or all active
// drivers. A missing driver id is a distinct not-found error, never an empty
// (implicitly "all zeros") result.
func (s *PerformanceService) resolveDrivers(ctx context.Context, driverID *int64) ([]*domain.Driver, error) {
	if driverID != nil {
		if *driverID <= 0 {
			return nil, apperr.InvalidInput("driver id must be positive, got %d", *driverID)
		}

		driver, err := s.Drivers.FindDriverByID(ctx, *driverID)
		if err != nil {
			return nil, fmt.Errorf("driver performance: find driver %d: %w", *driverID, err)
		}
		if driver == nil {
			return nil, apperr.NotFound("driver %d does not exist", *driverID)
		}
		return []*domain.Driver{driver}, nil
	}

	drivers, err := s.Drivers.ListActiveDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("driver performance: list active drivers: %w", err)
	}
	return drivers, nil
}

// scoreDrivers runs the per-driver computation under a bounded fan-out.
// Per-driver data anomalies are handled inside score; any storage error
// aborts the whole batch so callers never see a partially-defaulted result.
func (s *PerformanceService) scoreDrivers(
	ctx context.Context,
	drivers []*domain.Driver,
	compute func(ctx context.Context, d *domain.Driver) (domain.Scorecard, error),
) ([]domain.Scorecard, error) {
	if len(drivers) == 0 {
		return []domain.Scorecard{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	results := make(chan driverScorecard, len(drivers))
	var wg sync.WaitGroup

	for _, driver := range drivers {
		wg.Add(1)
		go func(d *domain.Driver) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			card, err := compute(ctx, d)
			if err != nil {
				results <- driverScorecard{err: fmt.Errorf("driver performance: score driver %d: %w", d.DriverID, err)}
				cancel()
				return
			}
			results <- driverScorecard{card: card}
		}(driver)
	}

	wg.Wait()
	close(results)

	cards := make([]domain.Scorecard, 0, len(drivers))
	var batchErr error
	for r := range results {
		if r.err != nil {
			if batchErr == nil {
				batchErr = r.err
			}
			continue
		}
		cards = append(cards, r.card)
	}
	if batchErr != nil {
		return nil, batchErr
	}

	sort.Slice(cards, func(i, j int) bool { return cards[i].DriverID < cards[j].DriverID })
	return cards, nil
}

// loadCompletedTours fetches a driver's completed tours plus each tour's
// route segments.
func (s *PerformanceService) loadCompletedTours(
	ctx context.Context,
	driverID int64,
	start, end time.Time,
) ([]tourData, error) {
	tours, err := s.Tours.FindCompletedToursByDriver(ctx, driverID, start, end)
	if err != nil {
		return nil, fmt.Errorf("find completed tours: %w", err)
	}

	data := make([]tourData, 0, len(tours))
	for _, tour := range tours {
		segments, err := s.Tours.FindRouteSegmentsByTour(ctx, tour.TourID)
		if err != nil {
			return nil, fmt.Errorf("find route segments for tour %d: %w", tour.TourID, err)
		}
		data = append(data, tourData{tour: tour, segments: segments})
	}

	return data, nil
}

// score turns a driver's completed tours into a scorecard. All seven KPI
// scores and the overall rating are clamped to [0, 5]; zero denominators
// yield 0, never NaN.
func (s *PerformanceService) score(driver *domain.Driver, tours []tourData) domain.Scorecard {
	card := domain.Scorecard{
		DriverID:       driver.DriverID,
		DriverName:     driver.Name,
		CompletedTours: len(tours),
	}

	legacySum := 0.0
	for _, td := range tours {
		card.ImagesUploaded += td.tour.UploadedPhotoCount()

		// The "-1" excludes the depot/return leg: every tour's segment set is
		// assumed to contain exactly one non-delivery leg. Business rule,
		// flagged for product confirmation, not derived here.
		expected := len(td.segments) - 1
		if expected < 0 {
			expected = 0
		}
		card.ExpectedDeliveries += expected

		for _, seg := range td.segments {
			if seg.Delivered() {
				card.ActualDeliveries++
			}
			if seg.ValidPOD() {
				card.ValidPODs++
			}
		}

		card.PlannedKM += td.tour.PlannedKM
		card.ActualKM += td.tour.ActualKM()
		card.PlannedDurationSeconds += td.tour.PlannedDurationSeconds

		if secs, err := td.tour.DurationSeconds(); err == nil {
			card.ActualDurationSeconds += secs
		} else {
			log.Warn().
				Int64("driver_id", driver.DriverID).
				Int64("tour_id", td.tour.TourID).
				Err(err).
				Msg("tour skipped from actual duration sum")
		}

		if td.tour.OverallPerformanceRating != nil {
			legacySum += *td.tour.OverallPerformanceRating
		}
	}

	card.ImagesPossible = card.CompletedTours * domain.RequiredCheckpointPhotos

	// KPI-1: checkpoint-photo completeness.
	if card.ImagesPossible > 0 {
		card.ImageScore = round2(float64(card.ImagesUploaded) / float64(card.ImagesPossible) * maxKPIScore)
	}

	// KPI-2: delivery accuracy. A delivered depot leg pushes the actual count
	// past the expected one, so the ratio is capped.
	if card.ExpectedDeliveries > 0 {
		card.DeliveryScore = clampScore(round2(float64(card.ActualDeliveries) / float64(card.ExpectedDeliveries) * maxKPIScore))
	}

	// KPI-3: proof-of-delivery validity, over the same expected count.
	if card.ExpectedDeliveries > 0 {
		card.PODScore = clampScore(round2(float64(card.ValidPODs) / float64(card.ExpectedDeliveries) * maxKPIScore))
	}

	// KPI-4: km efficiency.
	if card.PlannedKM > 0 {
		card.KMScore = scoreBand(card.ActualKM / card.PlannedKM)
	}

	// KPI-5: time management.
	if card.PlannedDurationSeconds > 0 && card.ActualDurationSeconds > 0 {
		card.TimeScore = scoreBand(float64(card.ActualDurationSeconds) / float64(card.PlannedDurationSeconds))
	}

	// KPI-6: fuel efficiency, derived from the km sums at the fixed
	// consumption rate.
	if card.PlannedKM > 0 && card.ActualKM > 0 {
		expectedFuel := card.PlannedKM / s.KMPerFuelUnit
		actualFuel := card.ActualKM / s.KMPerFuelUnit
		card.FuelScore = scoreBand(actualFuel / expectedFuel)
	}

	// KPI-7: customer rating. Null tour ratings count as 0 in the sum but the
	// denominator stays the completed-tour count. The score is capped because
	// stored legacy ratings are not guaranteed to sit on the 5-point scale;
	// LegacyRating keeps the raw average for auditing.
	if card.CompletedTours > 0 {
		card.CustomerScore = clampScore(round2(legacySum / float64(card.CompletedTours)))
		card.LegacyRating = round2(legacySum / float64(card.CompletedTours))
	}

	weightedSum := weightImages*card.ImageScore +
		weightDelivery*card.DeliveryScore +
		weightPOD*card.PODScore +
		weightKM*card.KMScore +
		weightTime*card.TimeScore +
		weightFuel*card.FuelScore +
		weightCustomer*card.CustomerScore

	maxWeightedSum := float64(weightSum * maxKPIScore)
	if maxWeightedSum > 0 {
		card.Rating = clampScore(round2(weightedSum / maxWeightedSum * maxKPIScore))
	}

	return card
}

// parseDateRange validates the caller-supplied inclusive date range before
// any query runs.
func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, apperr.InvalidInput("start_date and end_date are required")
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.InvalidInput("start_date %q is not a valid YYYY-MM-DD date", startDate)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.InvalidInput("end_date %q is not a valid YYYY-MM-DD date", endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperr.InvalidInput("end_date %s is before start_date %s", endDate, startDate)
	}

	return start, end, nil
}
