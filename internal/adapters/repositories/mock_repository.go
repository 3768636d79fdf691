package repositories

import (
	"context"
	"time"

	"driver-performance-service/internal/domain"
)

// In-memory DriverRepository for tests and local experiments.
type MockDriverRepository struct {
	Drivers []*domain.Driver
	Err     error
}

func (m *MockDriverRepository) FindDriverByID(_ context.Context, driverID int64) (*domain.Driver, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, d := range m.Drivers {
		if d.DriverID == driverID {
			return d, nil
		}
	}
	return nil, nil
}

func (m *MockDriverRepository) FindActiveDriversByWarehouse(_ context.Context, warehouseID int64) ([]*domain.Driver, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []*domain.Driver{}
	for _, d := range m.Drivers {
		if d.Active && d.WarehouseID == warehouseID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockDriverRepository) ListActiveDrivers(_ context.Context) ([]*domain.Driver, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []*domain.Driver{}
	for _, d := range m.Drivers {
		if d.Active {
			out = append(out, d)
		}
	}
	return out, nil
}

// In-memory TourRepository for tests and local experiments. Mirrors the SQL
// adapter's range semantics: [from, toExclusive) on tour_date, most recent
// tour first.
type MockTourRepository struct {
	Tours          []*domain.Tour
	SegmentsByTour map[int64][]*domain.RouteSegment
	Err            error
}

func (m *MockTourRepository) FindToursByDriverInRange(
	_ context.Context,
	driverID int64,
	from, toExclusive time.Time,
) ([]*domain.Tour, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	out := []*domain.Tour{}
	for _, t := range m.Tours {
		d := domain.DateOnly(t.TourDate)
		if t.DriverID == driverID && !d.Before(from) && d.Before(toExclusive) {
			out = append(out, t)
		}
	}
	sortToursDesc(out)
	return out, nil
}

func (m *MockTourRepository) HasTourOnDate(_ context.Context, driverID int64, date time.Time) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, t := range m.Tours {
		if t.DriverID == driverID && domain.DateOnly(t.TourDate).Equal(domain.DateOnly(date)) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTourRepository) FindCompletedToursByDriver(
	_ context.Context,
	driverID int64,
	startDate, endDate time.Time,
) ([]*domain.Tour, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	out := []*domain.Tour{}
	for _, t := range m.Tours {
		d := domain.DateOnly(t.TourDate)
		if t.DriverID == driverID && t.Status == domain.TourCompleted &&
			!d.Before(startDate) && !d.After(endDate) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTourRepository) FindRouteSegmentsByTour(_ context.Context, tourID int64) ([]*domain.RouteSegment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SegmentsByTour[tourID], nil
}

// sortToursDesc orders tours by tour_date desc, end_time desc, matching the
// SQL adapter's ORDER BY.
func sortToursDesc(tours []*domain.Tour) {
	for i := 1; i < len(tours); i++ {
		for j := i; j > 0 && tourLess(tours[j-1], tours[j]); j-- {
			tours[j-1], tours[j] = tours[j], tours[j-1]
		}
	}
}

func tourLess(a, b *domain.Tour) bool {
	ad, bd := domain.DateOnly(a.TourDate), domain.DateOnly(b.TourDate)
	if !ad.Equal(bd) {
		return ad.Before(bd)
	}

	ae, be := "", ""
	if a.EndTime != nil {
		ae = *a.EndTime
	}
	if b.EndTime != nil {
		be = *b.EndTime
	}
	return ae < be
}
