package domain

import (
	"testing"

	pincodes "courier-rates/internal/features/pincodes/domain"

	"github.com/stretchr/testify/assert"
)

func rec(city, state string) pincodes.PincodeRecord {
	return pincodes.PincodeRecord{Pincode: "000000", City: city, State: state}
}

func TestClassifyZone(t *testing.T) {
	tests := []struct {
		name        string
		origin      pincodes.PincodeRecord
		destination pincodes.PincodeRecord
		want        ZonePair
	}{
		{"BothMetroDifferentStates", rec("Mumbai", "Maharashtra"), rec("Chennai", "Tamil Nadu"), ZonePair{ZoneMetro, ZoneMetro}},
		{"MetroCaseInsensitive", rec("KOLKATA", "WEST BENGAL"), rec("bengaluru", "karnataka"), ZonePair{ZoneMetro, ZoneMetro}},
		{"OneMetroSameState", rec("Mumbai", "Maharashtra"), rec("Pune", "MAHARASHTRA"), ZonePair{ZoneWithinState, ZoneWithinState}},
		{"WithinState", rec("Udaipur", "RAJASTHAN"), rec("Jaipur", "Rajasthan"), ZonePair{ZoneWithinState, ZoneWithinState}},
		{"NorthToNorth", rec("South West Delhi", "DELHI"), rec("Udaipur", "RAJASTHAN"), ZonePair{ZoneNorth, ZoneNorth}},
		{"NorthToSouth", rec("Lucknow", "Uttar Pradesh"), rec("Kochi", "Kerala"), ZonePair{ZoneNorth, ZoneSouth}},
		{"EastToWest", rec("Patna", "Bihar"), rec("Surat", "Gujarat"), ZonePair{ZoneEast, ZoneWest}},
		{"UnknownState", rec("Somewhere", "Atlantis"), rec("Kochi", "Kerala"), ZonePair{ZoneOther, ZoneSouth}},
		{"WhitespaceInState", rec("Agra", "  uttar   pradesh "), rec("Noida", "UTTAR PRADESH"), ZonePair{ZoneWithinState, ZoneWithinState}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyZone(tt.origin, tt.destination))
		})
	}
}

func TestClassifyZone_Deterministic(t *testing.T) {
	a, b := rec("Ranchi", "Jharkhand"), rec("Panaji", "Goa")
	first := ClassifyZone(a, b)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ClassifyZone(a, b))
	}
	assert.Equal(t, ZonePair{ZoneWest, ZoneEast}, ClassifyZone(b, a))
}

func TestRegionOf_EveryListedStateHasOneRegion(t *testing.T) {
	seen := map[string]Zone{}
	for _, r := range regionOrder {
		for _, s := range r.states {
			_, dup := seen[s]
			assert.False(t, dup, "state %s listed twice", s)
			seen[s] = r.zone
			assert.Equal(t, r.zone, RegionOf(s))
		}
	}
}

func TestParseZone(t *testing.T) {
	z, ok := ParseZone(" within-state ")
	assert.True(t, ok)
	assert.Equal(t, ZoneWithinState, z)

	_, ok = ParseZone("Central")
	assert.False(t, ok)
}
