package sampling

import (
	"math"
	"slices"
	"testing"
)

func TestGenerateKnownDurations(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		interval float64
		want     []float64
	}{
		{"zero duration", 0, 5, nil},
		{"shorter than interval", 4, 5, nil},
		{"exact single interval", 10, 10, []float64{0}},
		{"truncated tail excluded", 25, 10, []float64{0, 10}},
		{"end to end scenario", 22, 10, []float64{0, 10}},
		{"exact multiple", 30, 10, []float64{0, 10, 20}},
		{"fractional duration", 12.5, 2.5, []float64{0, 2.5, 5, 7.5, 10}},
		{"negative duration", -3, 1, nil},
		{"zero interval", 10, 0, nil},
		{"negative interval", 10, -1, nil},
		{"nan duration", math.NaN(), 1, nil},
		{"infinite duration", math.Inf(1), 1, nil},
		{"nanosecond interval over two hours", 7200, 1e-9, nil},
		{"interval below float resolution", 1e300, 1e-300, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Generate(tc.duration, tc.interval)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("Generate(%v, %v) = %v, want %v", tc.duration, tc.interval, got, tc.want)
			}
		})
	}
}

func TestGenerateCountAndBounds(t *testing.T) {
	for _, interval := range []float64{1, 2, 3, 5, 7, 10, 60} {
		for duration := 0.0; duration <= 300; duration += 1 {
			got := Generate(duration, interval)
			want := 0
			if duration >= interval {
				want = int(math.Floor((duration-interval)/interval)) + 1
			}
			if len(got) != want {
				t.Fatalf("Generate(%v, %v): got %d offsets, want %d", duration, interval, len(got), want)
			}
			for i, offset := range got {
				if offset > duration-interval {
					t.Fatalf("offset %v exceeds duration-interval for (%v, %v)", offset, duration, interval)
				}
				if math.Mod(offset, interval) != 0 {
					t.Fatalf("offset %v is not a multiple of %v", offset, interval)
				}
				if i > 0 && offset-got[i-1] != interval {
					t.Fatalf("offsets not stepping by %v: %v", interval, got)
				}
			}
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		interval float64
		want     int
	}{
		{"end to end scenario", 22, 10, 2},
		{"shorter than interval", 4, 5, 0},
		{"invalid interval", 10, 0, 0},
		{"ratio beyond int range", 1e300, 1e-300, math.MaxInt},
	}
	if got := Count(7200, 1e-9); got <= MaxOffsets {
		t.Fatalf("Count(7200, 1e-9) = %d, expected it to exceed the ceiling", got)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Count(tc.duration, tc.interval); got != tc.want {
				t.Fatalf("Count(%v, %v) = %d, want %d", tc.duration, tc.interval, got, tc.want)
			}
		})
	}
}

func TestGenerateAtCeiling(t *testing.T) {
	got := Generate(float64(MaxOffsets), 1)
	if len(got) != MaxOffsets {
		t.Fatalf("expected %d offsets at the ceiling, got %d", MaxOffsets, len(got))
	}
	if Generate(float64(MaxOffsets)+1, 1) != nil {
		t.Fatal("expected plans above the ceiling to be refused")
	}
}
