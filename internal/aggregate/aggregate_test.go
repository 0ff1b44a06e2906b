package aggregate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		technical  float64
		cultural   float64
		behavioral float64
		want       Result
	}{
		{
			name:      "cultural veto wins over technical veto",
			technical: 0.1, cultural: 0.39, behavioral: 0.9,
			want: Result{OverallMatch: 0.39, Status: StatusCulturallyIncompatible},
		},
		{
			name:      "technical veto",
			technical: 0.29, cultural: 0.9, behavioral: 0.9,
			want: Result{OverallMatch: 0.29, Status: StatusNotTechnicallyQualified},
		},
		{
			name:      "highlight",
			technical: 0.9, cultural: 0.8, behavioral: 0,
			want: Result{OverallMatch: 0.85, Status: StatusHighPotentialPlus},
		},
		{
			name:      "just below highlight",
			technical: 0.84, cultural: 0.9, behavioral: 0.5,
			want: Result{OverallMatch: 0.79, Status: StatusPotential},
		},
		{
			name:      "high potential by weights",
			technical: 0.84, cultural: 0.79, behavioral: 0.9,
			want: Result{OverallMatch: 0.837, Status: StatusHighPotential},
		},
		{
			name:      "potential",
			technical: 0.6, cultural: 0.6, behavioral: 0.6,
			want: Result{OverallMatch: 0.6, Status: StatusPotential},
		},
		{
			name:      "low potential",
			technical: 0.3, cultural: 0.4, behavioral: 0.2,
			want: Result{OverallMatch: 0.31, Status: StatusLowPotential},
		},
		{
			name:      "low cultural fit vetoes a strong profile",
			technical: 0.9, cultural: 0.3, behavioral: 0.9,
			want: Result{OverallMatch: 0.3, Status: StatusCulturallyIncompatible},
		},
		{
			name:      "low technical fit vetoes a strong culture match",
			technical: 0.2, cultural: 0.9, behavioral: 0.9,
			want: Result{OverallMatch: 0.2, Status: StatusNotTechnicallyQualified},
		},
		{
			name:      "highlight ignores behavioral",
			technical: 0.9, cultural: 0.85, behavioral: 0.1,
			want: Result{OverallMatch: 0.875, Status: StatusHighPotentialPlus},
		},
		{
			name:      "uniform scores",
			technical: 0.7, cultural: 0.7, behavioral: 0.7,
			want: Result{OverallMatch: 0.7, Status: StatusPotential},
		},
		{
			name:      "boundaries are inclusive",
			technical: 0.3, cultural: 0.4, behavioral: 1,
			want: Result{OverallMatch: 0.47, Status: StatusLowPotential},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Aggregate(tt.technical, tt.cultural, tt.behavioral)
			require.NoError(t, err)
			require.Equal(t, tt.want.Status, got.Status)
			require.InDelta(t, tt.want.OverallMatch, got.OverallMatch, 1e-9)
		})
	}
}

func TestAggregateRoundsToFourDecimals(t *testing.T) {
	t.Parallel()

	got, err := Aggregate(0.33333, 0.55555, 0.77777)
	require.NoError(t, err)
	require.Equal(t, 0.4889, got.OverallMatch)
}

func TestAggregateBounded(t *testing.T) {
	t.Parallel()

	for _, tech := range []float64{0, 0.3, 0.5, 0.85, 1} {
		for _, cult := range []float64{0, 0.4, 0.5, 0.8, 1} {
			for _, beh := range []float64{0, 0.5, 1} {
				got, err := Aggregate(tech, cult, beh)
				require.NoError(t, err)
				require.GreaterOrEqual(t, got.OverallMatch, 0.0)
				require.LessOrEqual(t, got.OverallMatch, 1.0)
				require.Contains(t, Statuses, got.Status)
			}
		}
	}
}

func TestAggregateRejectsInvalidScores(t *testing.T) {
	t.Parallel()

	invalid := []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.01, 1.01}
	for _, v := range invalid {
		if _, err := Aggregate(v, 0.5, 0.5); !errors.Is(err, ErrInvalidScore) {
			t.Fatalf("technical %v: expected ErrInvalidScore, got %v", v, err)
		}
		if _, err := Aggregate(0.5, v, 0.5); !errors.Is(err, ErrInvalidScore) {
			t.Fatalf("cultural %v: expected ErrInvalidScore, got %v", v, err)
		}
		if _, err := Aggregate(0.5, 0.5, v); !errors.Is(err, ErrInvalidScore) {
			t.Fatalf("behavioral %v: expected ErrInvalidScore, got %v", v, err)
		}
	}
}
