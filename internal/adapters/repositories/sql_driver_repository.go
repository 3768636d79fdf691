package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"driver-performance-service/internal/domain"
)

// Postgres-backed implementation of the DriverRepository port.
type SQLDriverRepository struct{ DB *sql.DB }

func NewSQLDriverRepository(db *sql.DB) *SQLDriverRepository {
	return &SQLDriverRepository{DB: db}
}

const driverColumns = `driver_id, name, email, phone, warehouse_id, active`

// Return one driver by id, or (nil, nil) when absent.
func (s *SQLDriverRepository) FindDriverByID(ctx context.Context, driverID int64) (*domain.Driver, error) {
	if s.DB == nil {
		return nil, errors.New("driver repository: DB is nil")
	}

	query := `
	SELECT ` + driverColumns + `
	FROM drivers
	WHERE driver_id = $1;
	`

	var d domain.Driver
	err := s.DB.QueryRowContext(ctx, query, driverID).
		Scan(&d.DriverID, &d.Name, &d.Email, &d.Phone, &d.WarehouseID, &d.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find driver by id: query drivers table: %w", err)
	}

	return &d, nil
}

// Return all active drivers at a warehouse, ordered by driver id.
func (s *SQLDriverRepository) FindActiveDriversByWarehouse(ctx context.Context, warehouseID int64) ([]*domain.Driver, error) {
	if s.DB == nil {
		return nil, errors.New("driver repository: DB is nil")
	}

	query := `
	SELECT ` + driverColumns + `
	FROM drivers
	WHERE warehouse_id = $1
		AND active
	ORDER BY driver_id;
	`

	rows, err := s.DB.QueryContext(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("find active drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	return scanDrivers(rows)
}

// Return all active drivers across warehouses, ordered by driver id.
func (s *SQLDriverRepository) ListActiveDrivers(ctx context.Context) ([]*domain.Driver, error) {
	if s.DB == nil {
		return nil, errors.New("driver repository: DB is nil")
	}

	query := `
	SELECT ` + driverColumns + `
	FROM drivers
	WHERE active
	ORDER BY driver_id;
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	return scanDrivers(rows)
}

func scanDrivers(rows *sql.Rows) ([]*domain.Driver, error) {
	drivers := make([]*domain.Driver, 0, 16)
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.DriverID, &d.Name, &d.Email, &d.Phone, &d.WarehouseID, &d.Active); err != nil {
			return nil, fmt.Errorf("scan driver row: %w", err)
		}
		drivers = append(drivers, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("driver row iteration: %w", err)
	}

	return drivers, nil
}
