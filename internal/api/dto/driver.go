package dto

type DriverResponse struct {
	DriverID    int64  `json:"driver_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	WarehouseID int64  `json:"warehouse_id"`
	Active      bool   `json:"active"`
}

type ListDriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}
