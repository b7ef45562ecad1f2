package usecase

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestConfidenceScore(t *testing.T) {
	tests := []struct {
		name  string
		count int
		days  float64
		want  float64
	}{
		{"one fresh report", 1, 0, 0.6},
		{"ten fresh reports saturate", 10, 0, 1.0},
		{"many fresh reports still capped", 100, 0, 1.0},
		{"five reports half decayed", 5, 15, 0.75},
		{"zero evidence", 0, 100, 0},
		{"count floor survives full decay", 10, 365, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := confidenceScore(tt.count, tt.days)
			if !almostEqual(got, tt.want) {
				t.Errorf("confidenceScore(%d, %v) = %v, want %v", tt.count, tt.days, got, tt.want)
			}
		})
	}
}

func TestConfidenceScoreBounds(t *testing.T) {
	for count := 0; count <= 50; count += 5 {
		for days := 0.0; days <= 120; days += 7.5 {
			got := confidenceScore(count, days)
			if got < 0 || got > 1 {
				t.Fatalf("confidenceScore(%d, %v) = %v, outside [0,1]", count, days, got)
			}
		}
	}
}

func TestConfidenceScoreMonotonicInCount(t *testing.T) {
	for days := 0.0; days <= 60; days += 10 {
		prev := -1.0
		for count := 0; count <= 20; count++ {
			got := confidenceScore(count, days)
			if got < prev {
				t.Fatalf("confidence decreased in count: confidence(%d, %v) = %v < %v", count, days, got, prev)
			}
			prev = got
		}
	}
}

func TestConfidenceScoreNonIncreasingInDays(t *testing.T) {
	for count := 0; count <= 20; count += 4 {
		prev := 2.0
		for days := 0.0; days <= 90; days += 3 {
			got := confidenceScore(count, days)
			if got > prev {
				t.Fatalf("confidence increased in days: confidence(%d, %v) = %v > %v", count, days, got, prev)
			}
			prev = got
		}
	}
}

func TestWeightedAverage(t *testing.T) {
	t.Run("fresh observation against multi-report history", func(t *testing.T) {
		// existing weight 0.9, new weight 1.0
		got := weightedAverage(1.80, 1.50, 2, 0)
		want := (1.80*0.9 + 1.50*1.0) / 1.9
		if !almostEqual(got, want) {
			t.Errorf("weightedAverage = %v, want %v", got, want)
		}
	})

	t.Run("single-report history weighs full", func(t *testing.T) {
		got := weightedAverage(2.00, 1.00, 1, 0)
		want := (2.00*1.0 + 1.00*1.0) / 2.0
		if !almostEqual(got, want) {
			t.Errorf("weightedAverage = %v, want %v", got, want)
		}
	})

	t.Run("observation past the window contributes nothing", func(t *testing.T) {
		got := weightedAverage(1.80, 9.99, 5, 45)
		if !almostEqual(got, 1.80) {
			t.Errorf("weightedAverage = %v, want unchanged 1.80", got)
		}
	})

	t.Run("half-decayed observation", func(t *testing.T) {
		got := weightedAverage(1.00, 2.00, 3, 15)
		want := (1.00*0.9 + 2.00*0.5) / 1.4
		if !almostEqual(got, want) {
			t.Errorf("weightedAverage = %v, want %v", got, want)
		}
	})

	t.Run("result stays between inputs", func(t *testing.T) {
		for days := 0.0; days <= 60; days += 5 {
			got := weightedAverage(1.00, 3.00, 4, days)
			if got < 1.00 || got > 3.00 {
				t.Fatalf("weightedAverage(1, 3, 4, %v) = %v, outside [1,3]", days, got)
			}
		}
	})
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("whole days", func(t *testing.T) {
		got := daysSince(now.AddDate(0, 0, -10), now)
		if !almostEqual(got, 10) {
			t.Errorf("daysSince = %v, want 10", got)
		}
	})

	t.Run("future dates clamp to zero", func(t *testing.T) {
		got := daysSince(now.AddDate(0, 0, 3), now)
		if got != 0 {
			t.Errorf("daysSince = %v, want 0", got)
		}
	})
}
