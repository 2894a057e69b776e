package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateInsurance_Limits(t *testing.T) {
	_, err := CalculateInsurance(50000, true)
	assert.ErrorIs(t, err, ErrValueExceedsLimit)

	_, err = CalculateInsurance(5001, false)
	assert.ErrorIs(t, err, ErrInsuranceRequired)

	_, err = CalculateInsurance(-1, true)
	assert.ErrorIs(t, err, ErrInvalidDeclaredValue)

	cover, err := CalculateInsurance(5000, false)
	require.NoError(t, err)
	assert.Zero(t, cover.Premium)
	assert.Zero(t, cover.Compensation)
}

func TestCalculateInsurance_Bands(t *testing.T) {
	tests := []struct {
		name         string
		value        float64
		premium      float64
		compensation float64
	}{
		{"FullCover", 2000, 100, 2000},
		{"FlatPremium", 3000, 100, 2400},
		{"TwoPercent", 6000, 120, 4800},
		{"SlidingLowerBound", 13000, 273, 7540},
		{"SlidingUpperBound", 21999, 637.97, 17159.22},
		{"ThreePercentLowerBound", 22000, 660, 11220},
		{"ThreePercentUpperBound", 26999, 809.97, 14849.45},
		{"HalfCover", 30000, 900, 15000},
		{"GapTakesLowerBand", 2499.5, 100, 2499.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cover, err := CalculateInsurance(tt.value, true)
			require.NoError(t, err)
			assert.InDelta(t, tt.premium, cover.Premium, 0.01)
			assert.InDelta(t, tt.compensation, cover.Compensation, 0.01)
		})
	}
}

func TestCalculateInsurance_NothingDeclared(t *testing.T) {
	cover, err := CalculateInsurance(0, true)
	require.NoError(t, err)
	assert.Zero(t, cover.Premium)
}
