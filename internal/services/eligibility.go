package services

import (
	"context"
	"fmt"
	"time"

	"driver-performance-service/internal/apperr"
	"driver-performance-service/internal/domain"
	"driver-performance-service/internal/platform/obs"
	"driver-performance-service/internal/ports"

	"github.com/rs/zerolog/log"
)

// WeeklyMinutesCap is the hard weekly on-duty limit for a driver: 40 hours.
// A driver at exactly the cap is not eligible for another tour.
const WeeklyMinutesCap = 2400

// EligibilityResult reports whether a driver may take on a new tour and the
// workload figures behind the decision. Message is display-only; callers must
// branch on Eligible and the numeric fields.
type EligibilityResult struct {
	DriverID           int64
	Eligible           bool
	TotalWorkedMinutes int
	WorkedHours        int
	WorkedMinutes      int
	LastTourEnd        *time.Time
	RestSinceLastTour  *time.Duration
	Message            string
}

// EligibilityService decides whether drivers may be assigned new tours based
// on the rolling weekly working-hours cap.
//
// The check is advisory: between evaluating eligibility and persisting a tour
// another dispatcher may assign the same driver. Callers needing strict
// serialization should enforce a uniqueness constraint on (driver_id,
// tour_date) at the storage layer.
type EligibilityService struct {
	Drivers ports.DriverRepository
	Tours   ports.TourRepository
}

// EvaluateEligibility computes a driver's worked minutes within the current
// weekly window (Monday 00:00 through referenceTime) and applies the 40-hour
// cap. Tours with missing or unparseable start/end times are skipped from the
// sum and logged as data-quality issues.
func (s *EligibilityService) EvaluateEligibility(
	ctx context.Context,
	driverID int64,
	referenceTime time.Time,
) (_ *EligibilityResult, err error) {
	defer obs.Time(ctx, "eligibility.Evaluate")(&err)

	if driverID <= 0 {
		return nil, apperr.InvalidInput("driver id must be positive, got %d", driverID)
	}

	driver, err := s.Drivers.FindDriverByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("evaluate eligibility: find driver %d: %w", driverID, err)
	}
	if driver == nil {
		return nil, apperr.NotFound("driver %d does not exist", driverID)
	}
	if !driver.Active {
		return nil, apperr.InvalidInput("driver %d is not active", driverID)
	}

	weekStart := domain.WeekStart(referenceTime)
	// Include the reference date itself: the window is [weekStart, refDate].
	toExclusive := domain.DateOnly(referenceTime).AddDate(0, 0, 1)

	tours, err := s.Tours.FindToursByDriverInRange(ctx, driverID, weekStart, toExclusive)
	if err != nil {
		return nil, fmt.Errorf("evaluate eligibility: find tours for driver %d: %w", driverID, err)
	}

	res := &EligibilityResult{DriverID: driverID}

	if len(tours) == 0 {
		res.Eligible = true
		res.Message = fmt.Sprintf("driver %s has no tours this week and is eligible for assignment", driver.Name)
		return res, nil
	}

	totalMinutes := 0
	for _, tour := range tours {
		minutes, err := tour.DurationMinutes()
		if err != nil {
			log.Warn().
				Int64("driver_id", driverID).
				Int64("tour_id", tour.TourID).
				Err(err).
				Msg("tour skipped from weekly workload sum")
			continue
		}
		totalMinutes += minutes
	}

	res.TotalWorkedMinutes = totalMinutes
	res.WorkedHours = totalMinutes / 60
	res.WorkedMinutes = totalMinutes % 60
	res.Eligible = totalMinutes < WeeklyMinutesCap

	// Tours arrive ordered (tour_date desc, end_time desc); the first one is
	// the most recent. Its end instant may still be unresolvable.
	if end, endErr := tours[0].EndInstant(); endErr == nil {
		res.LastTourEnd = &end
		// Negative when the last tour ends in the future; callers tolerate this.
		rest := referenceTime.Sub(end)
		res.RestSinceLastTour = &rest
	} else {
		log.Warn().
			Int64("driver_id", driverID).
			Int64("tour_id", tours[0].TourID).
			Err(endErr).
			Msg("last tour end instant unresolved")
	}

	if res.Eligible {
		res.Message = fmt.Sprintf(
			"driver %s has worked %dh%02dm this week and is eligible for assignment",
			driver.Name, res.WorkedHours, res.WorkedMinutes,
		)
	} else {
		res.Message = fmt.Sprintf(
			"driver %s has worked %dh%02dm this week (>= 40h cap) and is not eligible for assignment",
			driver.Name, res.WorkedHours, res.WorkedMinutes,
		)
	}

	return res, nil
}
