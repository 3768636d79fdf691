package domain

import "time"

// Scorecard aggregates one driver's KPI counters and derived scores over a
// date range. Raw counters are kept alongside each 0-5 score so dashboards
// can show the inputs, not just the result.
type Scorecard struct {
	DriverID   int64
	DriverName string

	CompletedTours int

	// KPI-1: checkpoint-photo completeness.
	ImagesUploaded int
	ImagesPossible int
	ImageScore     float64

	// KPI-2: delivery accuracy.
	ExpectedDeliveries int
	ActualDeliveries   int
	DeliveryScore      float64

	// KPI-3: proof-of-delivery validity (shares ExpectedDeliveries).
	ValidPODs int
	PODScore  float64

	// KPI-4: km efficiency.
	PlannedKM float64
	ActualKM  float64
	KMScore   float64

	// KPI-5: time management.
	PlannedDurationSeconds int
	ActualDurationSeconds  int
	TimeScore              float64

	// KPI-6: fuel efficiency (derived from the km sums).
	FuelScore float64

	// KPI-7: customer rating.
	CustomerScore float64

	// Weighted aggregate over all seven KPIs, 0-5.
	Rating float64

	// Average of the legacy per-tour cached ratings, surfaced for
	// audit/comparison only.
	LegacyRating float64
}

// WeeklyScorecard is a Scorecard restricted to one calendar week
// (Monday-start) within the requested range.
type WeeklyScorecard struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Scorecard
}
