package domain

import (
	"strings"

	pincodes "courier-rates/internal/features/pincodes/domain"
)

// Zone is a coarse pricing region derived from a pincode.
type Zone string

// Zone values. Metro and WithinState are always returned as a symmetric pair.
const (
	ZoneMetro       Zone = "Metro"
	ZoneWithinState Zone = "Within-State"
	ZoneNorth       Zone = "North"
	ZoneEast        Zone = "East"
	ZoneWest        Zone = "West"
	ZoneSouth       Zone = "South"
	ZoneOther       Zone = "Other"
)

// ZonePair is the (from, to) zone key a rate is priced against.
type ZonePair struct {
	From Zone `json:"zone_from"`
	To   Zone `json:"zone_to"`
}

var metroCities = map[string]struct{}{
	"MUMBAI":    {},
	"BENGALURU": {},
	"CHENNAI":   {},
	"DELHI":     {},
	"HYDERABAD": {},
	"KOLKATA":   {},
}

type regionStates struct {
	zone   Zone
	states []string
}

// regionOrder is checked top to bottom; the first region listing a state wins.
var regionOrder = []regionStates{
	{ZoneNorth, []string{
		"DELHI", "HARYANA", "PUNJAB", "HIMACHAL PRADESH", "JAMMU AND KASHMIR", "LADAKH",
		"UTTARAKHAND", "UTTAR PRADESH", "RAJASTHAN", "CHANDIGARH",
	}},
	{ZoneEast, []string{
		"WEST BENGAL", "BIHAR", "JHARKHAND", "ODISHA", "ASSAM", "SIKKIM", "ARUNACHAL PRADESH",
		"MANIPUR", "MEGHALAYA", "MIZORAM", "NAGALAND", "TRIPURA", "ANDAMAN AND NICOBAR ISLANDS",
	}},
	{ZoneWest, []string{
		"MAHARASHTRA", "GUJARAT", "GOA", "MADHYA PRADESH", "CHHATTISGARH",
		"DADRA AND NAGAR HAVELI AND DAMAN AND DIU",
	}},
	{ZoneSouth, []string{
		"KARNATAKA", "KERALA", "TAMIL NADU", "ANDHRA PRADESH", "TELANGANA", "PUDUCHERRY", "LAKSHADWEEP",
	}},
}

// Zones lists every zone a rate can be priced against.
func Zones() []Zone {
	return []Zone{ZoneMetro, ZoneWithinState, ZoneNorth, ZoneEast, ZoneWest, ZoneSouth, ZoneOther}
}

// ParseZone returns the zone named by s, matched case-insensitively.
func ParseZone(s string) (Zone, bool) {
	for _, z := range Zones() {
		if strings.EqualFold(string(z), strings.TrimSpace(s)) {
			return z, true
		}
	}
	return "", false
}

// IsMetroCity reports whether city is one of the metro cities.
func IsMetroCity(city string) bool {
	_, ok := metroCities[key(city)]
	return ok
}

// RegionOf maps a state to its region, or ZoneOther when unknown.
func RegionOf(state string) Zone {
	k := key(state)
	for _, r := range regionOrder {
		for _, s := range r.states {
			if s == k {
				return r.zone
			}
		}
	}
	return ZoneOther
}

// ClassifyZone maps an origin and destination to the zone pair used for pricing.
func ClassifyZone(origin, destination pincodes.PincodeRecord) ZonePair {
	if IsMetroCity(origin.City) && IsMetroCity(destination.City) {
		return ZonePair{From: ZoneMetro, To: ZoneMetro}
	}

	if key(origin.State) == key(destination.State) {
		return ZonePair{From: ZoneWithinState, To: ZoneWithinState}
	}

	return ZonePair{From: RegionOf(origin.State), To: RegionOf(destination.State)}
}

func key(s string) string {
	return strings.ToUpper(pincodes.Normalize(s))
}
