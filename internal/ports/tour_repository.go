package ports

import (
	"context"
	"time"

	"driver-performance-service/internal/domain"
)

// Port: a boundary for retrieving Tour and RouteSegment records.
type TourRepository interface {
	// Retrieve a driver's tours with from <= tour_date < toExclusive,
	// ordered by tour_date desc, end_time desc (most recent first).
	FindToursByDriverInRange(ctx context.Context, driverID int64, from, toExclusive time.Time) ([]*domain.Tour, error)

	// Report whether the driver already has any tour on the given calendar date.
	HasTourOnDate(ctx context.Context, driverID int64, date time.Time) (bool, error)

	// Retrieve a driver's completed tours with startDate <= tour_date <= endDate.
	FindCompletedToursByDriver(ctx context.Context, driverID int64, startDate, endDate time.Time) ([]*domain.Tour, error)

	// Retrieve all route segments belonging to a tour.
	FindRouteSegmentsByTour(ctx context.Context, tourID int64) ([]*domain.RouteSegment, error)
}
