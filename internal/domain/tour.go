package domain

import (
	"fmt"
	"strings"
	"time"
)

// TourStatus is the closed set of tour lifecycle states.
// Unknown status strings are rejected at parse time rather than silently
// grouped into ad-hoc buckets.
type TourStatus string

const (
	TourPending   TourStatus = "pending"
	TourConfirmed TourStatus = "confirmed"
	TourLive      TourStatus = "live"
	TourCompleted TourStatus = "completed"
)

// ParseTourStatus validates a raw status string against the closed set.
func ParseTourStatus(s string) (TourStatus, error) {
	switch TourStatus(strings.ToLower(strings.TrimSpace(s))) {
	case TourPending:
		return TourPending, nil
	case TourConfirmed:
		return TourConfirmed, nil
	case TourLive:
		return TourLive, nil
	case TourCompleted:
		return TourCompleted, nil
	default:
		return "", fmt.Errorf("parse tour status: unknown status %q", s)
	}
}

// RequiredCheckpointPhotos is the number of checkpoint photos a driver must
// capture per tour (vehicle walk-around, odometer, cargo, fuel, parking).
const RequiredCheckpointPhotos = 9

// Represents a single driver's planned or executed delivery run.
// StartTime/EndTime are time-of-day strings ("15:04" or "15:04:05") on
// TourDate; either may be absent on tours that never ran cleanly.
type Tour struct {
	TourID      int64
	DriverID    int64
	WarehouseID int64
	TourDate    time.Time // date component only
	StartTime   *string
	EndTime     *string
	Status      TourStatus

	PlannedKM              float64
	StartKM                *float64
	EndKM                  *float64
	PlannedDurationSeconds int

	// Checkpoint-photo presence flags. True means the stored artifact is
	// non-null and non-empty.
	StartKMPhoto      bool
	EndKMPhoto        bool
	VehicleFrontPhoto bool
	VehicleBackPhoto  bool
	VehicleLeftPhoto  bool
	VehicleRightPhoto bool
	CargoAreaPhoto    bool
	FuelReceiptPhoto  bool
	ParkingPhoto      bool

	// Rating cached by the legacy pipeline. Surfaced for audit only and
	// never used as an input to new score computations.
	OverallPerformanceRating *float64
}

// UploadedPhotoCount returns how many of the required checkpoint photos were
// captured on this tour.
func (t *Tour) UploadedPhotoCount() int {
	count := 0
	for _, present := range []bool{
		t.StartKMPhoto, t.EndKMPhoto,
		t.VehicleFrontPhoto, t.VehicleBackPhoto,
		t.VehicleLeftPhoto, t.VehicleRightPhoto,
		t.CargoAreaPhoto, t.FuelReceiptPhoto, t.ParkingPhoto,
	} {
		if present {
			count++
		}
	}
	return count
}

// ActualKM returns the driven distance (end odometer minus start odometer),
// or 0 when either reading is missing.
func (t *Tour) ActualKM() float64 {
	if t.StartKM == nil || t.EndKM == nil {
		return 0
	}
	return *t.EndKM - *t.StartKM
}

// DurationSeconds computes the tour's on-duty duration from its start/end
// time-of-day fields. An absent, unparseable, or inverted pair is a
// data-quality error, not a valid zero.
func (t *Tour) DurationSeconds() (int, error) {
	if t.StartTime == nil || t.EndTime == nil {
		return 0, fmt.Errorf("tour %d: start or end time missing", t.TourID)
	}

	start, err := parseClock(*t.StartTime)
	if err != nil {
		return 0, fmt.Errorf("tour %d: start time: %w", t.TourID, err)
	}
	end, err := parseClock(*t.EndTime)
	if err != nil {
		return 0, fmt.Errorf("tour %d: end time: %w", t.TourID, err)
	}

	if end < start {
		return 0, fmt.Errorf("tour %d: end time %q before start time %q", t.TourID, *t.EndTime, *t.StartTime)
	}
	return end - start, nil
}

// DurationMinutes is DurationSeconds expressed in whole minutes.
func (t *Tour) DurationMinutes() (int, error) {
	secs, err := t.DurationSeconds()
	if err != nil {
		return 0, err
	}
	return secs / 60, nil
}

// EndInstant combines TourDate with the end time-of-day to produce the
// absolute instant the tour finished.
func (t *Tour) EndInstant() (time.Time, error) {
	if t.EndTime == nil {
		return time.Time{}, fmt.Errorf("tour %d: end time missing", t.TourID)
	}

	secs, err := parseClock(*t.EndTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("tour %d: end time: %w", t.TourID, err)
	}

	d := t.TourDate
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).
		Add(time.Duration(secs) * time.Second), nil
}

// parseClock converts "15:04:05" or "15:04" to seconds since midnight.
func parseClock(s string) (int, error) {
	s = strings.TrimSpace(s)

	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
		}
	}
	return 0, fmt.Errorf("invalid clock value %q", s)
}
