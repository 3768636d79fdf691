package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"driver-performance-service/internal/domain"
)

// Postgres-backed implementation of the TourRepository port.
//
// Photo and signature artifacts are stored as bytea; the repository reduces
// them to presence flags ("non-null and non-empty") so the domain never
// handles binary payloads. All queries are parameterized.
type SQLTourRepository struct{ DB *sql.DB }

func NewSQLTourRepository(db *sql.DB) *SQLTourRepository {
	return &SQLTourRepository{DB: db}
}

// tourColumns reduces each bytea artifact column to a boolean presence flag.
const tourColumns = `
		tour_id,
		driver_id,
		warehouse_id,
		tour_date,
		start_time,
		end_time,
		status,
		planned_km,
		start_km,
		end_km,
		planned_duration_seconds,
		(start_km_pic IS NOT NULL AND octet_length(start_km_pic) > 0),
		(end_km_pic IS NOT NULL AND octet_length(end_km_pic) > 0),
		(vehicle_front_pic IS NOT NULL AND octet_length(vehicle_front_pic) > 0),
		(vehicle_back_pic IS NOT NULL AND octet_length(vehicle_back_pic) > 0),
		(vehicle_left_pic IS NOT NULL AND octet_length(vehicle_left_pic) > 0),
		(vehicle_right_pic IS NOT NULL AND octet_length(vehicle_right_pic) > 0),
		(cargo_area_pic IS NOT NULL AND octet_length(cargo_area_pic) > 0),
		(fuel_receipt_pic IS NOT NULL AND octet_length(fuel_receipt_pic) > 0),
		(parking_pic IS NOT NULL AND octet_length(parking_pic) > 0),
		overall_performance_rating`

// Return a driver's tours with from <= tour_date < toExclusive, most recent
// first (tour_date desc, end_time desc).
func (s *SQLTourRepository) FindToursByDriverInRange(
	ctx context.Context,
	driverID int64,
	from, toExclusive time.Time,
) ([]*domain.Tour, error) {
	if s.DB == nil {
		return nil, errors.New("tour repository: DB is nil")
	}

	query := `
	SELECT ` + tourColumns + `
	FROM tours
	WHERE driver_id = $1
		AND tour_date >= $2
		AND tour_date < $3
	ORDER BY tour_date DESC, end_time DESC NULLS LAST, tour_id DESC;
	`

	rows, err := s.DB.QueryContext(ctx, query, driverID, from, toExclusive)
	if err != nil {
		return nil, fmt.Errorf("find tours in range: query tours table: %w", err)
	}
	defer rows.Close()

	return scanTours(rows)
}

// Report whether the driver already has any tour on the given calendar date.
func (s *SQLTourRepository) HasTourOnDate(ctx context.Context, driverID int64, date time.Time) (bool, error) {
	if s.DB == nil {
		return false, errors.New("tour repository: DB is nil")
	}

	query := `
	SELECT EXISTS (
		SELECT 1
		FROM tours
		WHERE driver_id = $1
			AND tour_date = $2::date
	);
	`

	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, driverID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("has tour on date: query tours table: %w", err)
	}

	return exists, nil
}

// Return a driver's completed tours with startDate <= tour_date <= endDate.
func (s *SQLTourRepository) FindCompletedToursByDriver(
	ctx context.Context,
	driverID int64,
	startDate, endDate time.Time,
) ([]*domain.Tour, error) {
	if s.DB == nil {
		return nil, errors.New("tour repository: DB is nil")
	}

	query := `
	SELECT ` + tourColumns + `
	FROM tours
	WHERE driver_id = $1
		AND status = $2
		AND tour_date >= $3
		AND tour_date <= $4
	ORDER BY tour_date, tour_id;
	`

	rows, err := s.DB.QueryContext(ctx, query, driverID, string(domain.TourCompleted), startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("find completed tours: query tours table: %w", err)
	}
	defer rows.Close()

	return scanTours(rows)
}

// Return all route segments belonging to a tour.
func (s *SQLTourRepository) FindRouteSegmentsByTour(ctx context.Context, tourID int64) ([]*domain.RouteSegment, error) {
	if s.DB == nil {
		return nil, errors.New("tour repository: DB is nil")
	}

	query := `
	SELECT
		segment_id,
		tour_id,
		order_id,
		status,
		recipient_type,
		delivered_at,
		(customer_signature IS NOT NULL AND octet_length(customer_signature) > 0),
		(delivered_item_pic IS NOT NULL AND octet_length(delivered_item_pic) > 0),
		(neighbour_signature IS NOT NULL AND octet_length(neighbour_signature) > 0),
		(delivered_pic_neighbour IS NOT NULL AND octet_length(delivered_pic_neighbour) > 0)
	FROM route_segments
	WHERE tour_id = $1
	ORDER BY segment_id;
	`

	rows, err := s.DB.QueryContext(ctx, query, tourID)
	if err != nil {
		return nil, fmt.Errorf("find route segments: query route_segments table: %w", err)
	}
	defer rows.Close()

	segments := make([]*domain.RouteSegment, 0, 16)
	for rows.Next() {
		var seg domain.RouteSegment
		var status, recipient string
		err := rows.Scan(
			&seg.SegmentID, &seg.TourID, &seg.OrderID,
			&status, &recipient, &seg.DeliveredAt,
			&seg.HasCustomerSignature, &seg.HasDeliveredItemPhoto,
			&seg.HasNeighbourSignature, &seg.HasNeighbourPhoto,
		)
		if err != nil {
			return nil, fmt.Errorf("find route segments: scan row: %w", err)
		}
		seg.Status = domain.SegmentStatus(status)
		seg.RecipientType = domain.RecipientType(recipient)
		segments = append(segments, &seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find route segments: row iteration: %w", err)
	}

	return segments, nil
}

func scanTours(rows *sql.Rows) ([]*domain.Tour, error) {
	tours := make([]*domain.Tour, 0, 32)
	for rows.Next() {
		var t domain.Tour
		var status string
		err := rows.Scan(
			&t.TourID, &t.DriverID, &t.WarehouseID,
			&t.TourDate, &t.StartTime, &t.EndTime, &status,
			&t.PlannedKM, &t.StartKM, &t.EndKM, &t.PlannedDurationSeconds,
			&t.StartKMPhoto, &t.EndKMPhoto,
			&t.VehicleFrontPhoto, &t.VehicleBackPhoto,
			&t.VehicleLeftPhoto, &t.VehicleRightPhoto,
			&t.CargoAreaPhoto, &t.FuelReceiptPhoto, &t.ParkingPhoto,
			&t.OverallPerformanceRating,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tour row: %w", err)
		}

		// A status outside the closed set is a data error, not a new bucket.
		parsed, err := domain.ParseTourStatus(status)
		if err != nil {
			return nil, fmt.Errorf("tour %d: %w", t.TourID, err)
		}
		t.Status = parsed

		tours = append(tours, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tour row iteration: %w", err)
	}

	return tours, nil
}
