package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"driver-performance-service/internal/adapters/repositories"
	"driver-performance-service/internal/apperr"
	"driver-performance-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// workTour builds a tour spanning the given clock values on date d.
func workTour(id, driverID int64, d time.Time, start, end string) *domain.Tour {
	return &domain.Tour{
		TourID:    id,
		DriverID:  driverID,
		TourDate:  d,
		StartTime: strPtr(start),
		EndTime:   strPtr(end),
		Status:    domain.TourConfirmed,
	}
}

func newEligibilityService(drivers []*domain.Driver, tours []*domain.Tour) *EligibilityService {
	return &EligibilityService{
		Drivers: &repositories.MockDriverRepository{Drivers: drivers},
		Tours:   &repositories.MockTourRepository{Tours: tours},
	}
}

func TestEvaluateEligibilityNoTours(t *testing.T) {
	driver := &domain.Driver{DriverID: 1, Name: "Jonas", WarehouseID: 1, Active: true}
	svc := newEligibilityService([]*domain.Driver{driver}, nil)

	// Wednesday afternoon.
	ref := time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)

	res, err := svc.EvaluateEligibility(context.Background(), 1, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Eligible {
		t.Error("expected eligible with zero tours")
	}
	if res.TotalWorkedMinutes != 0 {
		t.Errorf("TotalWorkedMinutes = %d, want 0", res.TotalWorkedMinutes)
	}
	if res.LastTourEnd != nil {
		t.Errorf("LastTourEnd = %v, want nil", res.LastTourEnd)
	}
}

func TestEvaluateEligibilityWeeklyCap(t *testing.T) {
	// Week of Monday 2026-08-24; reference is Wednesday.
	ref := time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)
	monday := date(2026, 8, 24)
	tuesday := date(2026, 8, 25)

	cases := []struct {
		name         string
		tours        []*domain.Tour
		wantMinutes  int
		wantEligible bool
	}{
		{
			name: "2399 minutes is eligible",
			tours: []*domain.Tour{
				workTour(1, 1, monday, "00:00:00", "20:00:00"),  // 1200
				workTour(2, 1, tuesday, "00:00:00", "19:59:00"), // 1199
			},
			wantMinutes:  2399,
			wantEligible: true,
		},
		{
			name: "exactly 2400 minutes is not eligible",
			tours: []*domain.Tour{
				workTour(1, 1, monday, "00:00:00", "20:00:00"),  // 1200
				workTour(2, 1, tuesday, "00:00:00", "20:00:00"), // 1200
			},
			wantMinutes:  2400,
			wantEligible: false,
		},
		{
			name: "tours before the week start are ignored",
			tours: []*domain.Tour{
				workTour(1, 1, date(2026, 8, 23), "00:00:00", "20:00:00"), // previous Sunday
				workTour(2, 1, monday, "08:00:00", "12:00:00"),            // 240
			},
			wantMinutes:  240,
			wantEligible: true,
		},
		{
			name: "unparseable tour is skipped from the sum",
			tours: []*domain.Tour{
				workTour(1, 1, monday, "08:00:00", "12:00:00"), // 240
				{TourID: 2, DriverID: 1, TourDate: tuesday, StartTime: strPtr("08:00:00"), EndTime: nil},
			},
			wantMinutes:  240,
			wantEligible: true,
		},
	}

	driver := &domain.Driver{DriverID: 1, Name: "Jonas", WarehouseID: 1, Active: true}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newEligibilityService([]*domain.Driver{driver}, tc.tours)

			res, err := svc.EvaluateEligibility(context.Background(), 1, ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if res.TotalWorkedMinutes != tc.wantMinutes {
				t.Errorf("TotalWorkedMinutes = %d, want %d", res.TotalWorkedMinutes, tc.wantMinutes)
			}
			if res.Eligible != tc.wantEligible {
				t.Errorf("Eligible = %v, want %v", res.Eligible, tc.wantEligible)
			}
		})
	}
}

func TestEvaluateEligibilityLastTourEnd(t *testing.T) {
	driver := &domain.Driver{DriverID: 1, Name: "Jonas", WarehouseID: 1, Active: true}
	tours := []*domain.Tour{
		workTour(1, 1, date(2026, 8, 24), "07:00:00", "15:00:00"),
		workTour(2, 1, date(2026, 8, 26), "08:00:00", "16:00:00"),
	}
	svc := newEligibilityService([]*domain.Driver{driver}, tours)

	ref := time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)

	res, err := svc.EvaluateEligibility(context.Background(), 1, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantEnd := time.Date(2026, 8, 26, 16, 0, 0, 0, time.UTC)
	if res.LastTourEnd == nil || !res.LastTourEnd.Equal(wantEnd) {
		t.Fatalf("LastTourEnd = %v, want %v", res.LastTourEnd, wantEnd)
	}

	if res.RestSinceLastTour == nil || *res.RestSinceLastTour != 2*time.Hour {
		t.Fatalf("RestSinceLastTour = %v, want 2h", res.RestSinceLastTour)
	}
}

func TestEvaluateEligibilityNegativeRest(t *testing.T) {
	driver := &domain.Driver{DriverID: 1, Name: "Jonas", WarehouseID: 1, Active: true}
	tours := []*domain.Tour{
		workTour(1, 1, date(2026, 8, 26), "08:00:00", "16:00:00"),
	}
	svc := newEligibilityService([]*domain.Driver{driver}, tours)

	// Reference before the last tour's end: rest must come back negative,
	// not clamped.
	ref := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	res, err := svc.EvaluateEligibility(context.Background(), 1, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.RestSinceLastTour == nil || *res.RestSinceLastTour != -4*time.Hour {
		t.Fatalf("RestSinceLastTour = %v, want -4h", res.RestSinceLastTour)
	}
}

func TestEvaluateEligibilityDriverErrors(t *testing.T) {
	active := &domain.Driver{DriverID: 1, Name: "Jonas", WarehouseID: 1, Active: true}
	inactive := &domain.Driver{DriverID: 2, Name: "Lena", WarehouseID: 1, Active: false}
	svc := newEligibilityService([]*domain.Driver{active, inactive}, nil)

	ref := time.Now()

	if _, err := svc.EvaluateEligibility(context.Background(), 99, ref); err == nil {
		t.Fatal("expected not-found error for unknown driver")
	} else if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	if _, err := svc.EvaluateEligibility(context.Background(), 2, ref); err == nil {
		t.Fatal("expected error for inactive driver")
	} else if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}

	if _, err := svc.EvaluateEligibility(context.Background(), 0, ref); err == nil {
		t.Fatal("expected error for non-positive driver id")
	}
}

func TestEvaluateEligibilityStorageError(t *testing.T) {
	driver := &domain.Driver{DriverID: 1, Name: "Jonas", WarehouseID: 1, Active: true}
	svc := &EligibilityService{
		Drivers: &repositories.MockDriverRepository{Drivers: []*domain.Driver{driver}},
		Tours:   &repositories.MockTourRepository{Err: errors.New("connection reset")},
	}

	if _, err := svc.EvaluateEligibility(context.Background(), 1, time.Now()); err == nil {
		t.Fatal("expected storage error to propagate")
	}
}
