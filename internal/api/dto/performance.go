package dto

type ScorecardResponse struct {
	DriverID   int64  `json:"driver_id"`
	DriverName string `json:"driver_name"`

	CompletedTours int `json:"completed_tours"`

	ImagesUploaded int     `json:"images_uploaded"`
	ImagesPossible int     `json:"images_possible"`
	ImageScore     float64 `json:"image_score"`

	ExpectedDeliveries int     `json:"expected_deliveries"`
	ActualDeliveries   int     `json:"actual_deliveries"`
	DeliveryScore      float64 `json:"delivery_score"`

	ValidPODs int     `json:"valid_pods"`
	PODScore  float64 `json:"pod_score"`

	PlannedKM float64 `json:"planned_km"`
	ActualKM  float64 `json:"actual_km"`
	KMScore   float64 `json:"km_score"`

	PlannedDurationSeconds int     `json:"planned_duration_seconds"`
	ActualDurationSeconds  int     `json:"actual_duration_seconds"`
	TimeScore              float64 `json:"time_score"`

	FuelScore     float64 `json:"fuel_score"`
	CustomerScore float64 `json:"customer_score"`

	Rating       float64 `json:"rating"`
	LegacyRating float64 `json:"legacy_rating"`
}

type PerformanceResponse struct {
	StartDate  string              `json:"start_date"`
	EndDate    string              `json:"end_date"`
	Scorecards []ScorecardResponse `json:"scorecards"`
}

type WeeklyScorecardResponse struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	ScorecardResponse
}

type WeeklyPerformanceResponse struct {
	StartDate  string                    `json:"start_date"`
	EndDate    string                    `json:"end_date"`
	Scorecards []WeeklyScorecardResponse `json:"scorecards"`
}
