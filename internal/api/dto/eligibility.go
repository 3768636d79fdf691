package dto

import "time"

type EligibilityResponse struct {
	DriverID           int64      `json:"driver_id"`
	Eligible           bool       `json:"eligible"`
	TotalWorkedMinutes int        `json:"total_worked_minutes"`
	WorkedHours        int        `json:"worked_hours"`
	WorkedMinutes      int        `json:"worked_minutes"`
	LastTourEnd        *time.Time `json:"last_tour_end"`
	// Minutes since the last tour ended; negative when it ends in the future.
	RestSinceLastTourMinutes *int64 `json:"rest_since_last_tour_minutes"`
	Message                  string `json:"message"`
}

type UnavailableDriverResponse struct {
	Driver DriverResponse `json:"driver"`
	Reason string         `json:"reason"`
}

type AvailabilityResponse struct {
	TourDate    string                      `json:"tour_date"`
	WarehouseID int64                       `json:"warehouse_id"`
	Available   []DriverResponse            `json:"available"`
	Unavailable []UnavailableDriverResponse `json:"unavailable"`
}
