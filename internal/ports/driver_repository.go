package ports

import (
	"context"

	"driver-performance-service/internal/domain"
)

// Port: a boundary for retrieving Driver entities from a data source.
type DriverRepository interface {
	// Retrieve one driver by id. Returns (nil, nil) when no such driver exists.
	FindDriverByID(ctx context.Context, driverID int64) (*domain.Driver, error)

	// Retrieve all active drivers assigned to a warehouse.
	FindActiveDriversByWarehouse(ctx context.Context, warehouseID int64) ([]*domain.Driver, error)

	// Retrieve all active drivers across warehouses.
	ListActiveDrivers(ctx context.Context) ([]*domain.Driver, error)
}
