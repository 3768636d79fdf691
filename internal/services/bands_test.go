package services

import "testing"

func TestScoreBand(t *testing.T) {
	cases := []struct {
		ratio float64
		want  float64
	}{
		{0.90, 5},   // under plan is never penalized
		{1.00, 5},   // exactly on plan
		{1.01, 4.5}, // boundary belongs to the lower score
		{1.02, 4},
		{1.03, 3.5},
		{1.04, 3},
		{1.05, 2.5},
		{1.06, 2},
		{1.07, 1.5},
		{1.08, 1},
		{1.081, 0.5},
		{2.50, 0.5},
	}

	for _, tc := range cases {
		if got := scoreBand(tc.ratio); got != tc.want {
			t.Errorf("scoreBand(%v) = %v, want %v", tc.ratio, got, tc.want)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{3.333333, 3.33},
		{4.666666, 4.67},
		{3.456, 3.46},
		{5, 5},
	}

	for _, tc := range cases {
		if got := round2(tc.in); got != tc.want {
			t.Errorf("round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClampScore(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{3.5, 3.5},
		{5, 5},
		{7.5, 5},
	}

	for _, tc := range cases {
		if got := clampScore(tc.in); got != tc.want {
			t.Errorf("clampScore(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
