package domain

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{
			name: "wednesday maps to monday of the same week",
			ref:  time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC), // Wednesday
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday maps to itself at midnight",
			ref:  time.Date(2026, 8, 24, 23, 59, 59, 0, time.UTC),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday maps to the monday six days prior",
			ref:  time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC), // Sunday
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "week start crosses a month boundary",
			ref:  time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC), // Wednesday
			want: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeekStart(tc.ref)
			if !got.Equal(tc.want) {
				t.Fatalf("WeekStart(%v) = %v, want %v", tc.ref, got, tc.want)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	ref := time.Date(2026, 8, 26, 14, 30, 45, 123, time.UTC)
	want := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)

	if got := DateOnly(ref); !got.Equal(want) {
		t.Fatalf("DateOnly(%v) = %v, want %v", ref, got, want)
	}
}
