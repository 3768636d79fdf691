package domain

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestTourDurationMinutes(t *testing.T) {
	cases := []struct {
		name    string
		start   *string
		end     *string
		want    int
		wantErr bool
	}{
		{name: "full clock values", start: strPtr("07:30:00"), end: strPtr("15:45:00"), want: 495},
		{name: "short clock values", start: strPtr("08:00"), end: strPtr("12:30"), want: 270},
		{name: "missing end time", start: strPtr("08:00:00"), end: nil, wantErr: true},
		{name: "missing start time", start: nil, end: strPtr("16:00:00"), wantErr: true},
		{name: "garbage end time", start: strPtr("08:00:00"), end: strPtr("not-a-time"), wantErr: true},
		{name: "end before start", start: strPtr("18:00:00"), end: strPtr("06:00:00"), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tour := &Tour{TourID: 1, StartTime: tc.start, EndTime: tc.end}

			got, err := tour.DurationMinutes()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("DurationMinutes() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTourEndInstant(t *testing.T) {
	tour := &Tour{
		TourID:   1,
		TourDate: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		EndTime:  strPtr("16:10:00"),
	}

	got, err := tour.EndInstant()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 8, 25, 16, 10, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("EndInstant() = %v, want %v", got, want)
	}
}

func TestTourUploadedPhotoCount(t *testing.T) {
	tour := &Tour{
		StartKMPhoto:      true,
		EndKMPhoto:        true,
		VehicleFrontPhoto: true,
		CargoAreaPhoto:    true,
	}
	if got := tour.UploadedPhotoCount(); got != 4 {
		t.Fatalf("UploadedPhotoCount() = %d, want 4", got)
	}

	none := &Tour{}
	if got := none.UploadedPhotoCount(); got != 0 {
		t.Fatalf("UploadedPhotoCount() on empty tour = %d, want 0", got)
	}
}

func TestTourActualKM(t *testing.T) {
	start, end := 45210.0, 45333.0

	tour := &Tour{StartKM: &start, EndKM: &end}
	if got := tour.ActualKM(); got != 123 {
		t.Fatalf("ActualKM() = %v, want 123", got)
	}

	partial := &Tour{StartKM: &start}
	if got := partial.ActualKM(); got != 0 {
		t.Fatalf("ActualKM() with missing end reading = %v, want 0", got)
	}
}

func TestParseTourStatus(t *testing.T) {
	if s, err := ParseTourStatus(" Completed "); err != nil || s != TourCompleted {
		t.Fatalf("ParseTourStatus(Completed) = %v, %v", s, err)
	}

	if _, err := ParseTourStatus("archived"); err == nil {
		t.Fatal("expected error for unknown status, got nil")
	}
}

func TestSegmentValidPOD(t *testing.T) {
	cases := []struct {
		name string
		seg  RouteSegment
		want bool
	}{
		{
			name: "customer with signature and item photo",
			seg:  RouteSegment{RecipientType: RecipientCustomer, HasCustomerSignature: true, HasDeliveredItemPhoto: true},
			want: true,
		},
		{
			name: "customer missing item photo",
			seg:  RouteSegment{RecipientType: RecipientCustomer, HasCustomerSignature: true},
			want: false,
		},
		{
			name: "neighbour with signature and photo",
			seg:  RouteSegment{RecipientType: RecipientNeighbour, HasNeighbourSignature: true, HasNeighbourPhoto: true},
			want: true,
		},
		{
			name: "neighbour with customer artifacts only",
			seg:  RouteSegment{RecipientType: RecipientNeighbour, HasCustomerSignature: true, HasDeliveredItemPhoto: true},
			want: false,
		},
		{
			name: "unknown recipient type",
			seg:  RouteSegment{RecipientType: "warehouse", HasCustomerSignature: true, HasDeliveredItemPhoto: true},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.seg.ValidPOD(); got != tc.want {
				t.Fatalf("ValidPOD() = %v, want %v", got, tc.want)
			}
		})
	}
}
