package domain

// Represents a delivery driver employed at a warehouse.
// Drivers are soft-disabled via the Active flag, never hard-deleted, so
// historical tours always resolve to a driver row.
type Driver struct {
	DriverID    int64
	Name        string
	Email       string
	Phone       string
	WarehouseID int64
	Active      bool
}
