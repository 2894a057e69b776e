package domain

import (
	pincodes "courier-rates/internal/features/pincodes/domain"
)

// Quote is the price of one shipment. It is computed per request and never stored.
type Quote struct {
	Rate          float64                `json:"rate"`
	ZoneFrom      Zone                   `json:"zone_from"`
	ZoneTo        Zone                   `json:"zone_to"`
	WeightSlab    float64                `json:"weight_slab"`
	PackageWeight float64                `json:"package_weight"`
	ResolvedVia   Resolution             `json:"resolved_via"`
	Scope         Scope                  `json:"scope"`
	Origin        pincodes.PincodeRecord `json:"origin"`
	Destination   pincodes.PincodeRecord `json:"destination"`
	Insurance     *InsuranceCover        `json:"insurance,omitempty"`
	Total         float64                `json:"total"`
}

// Resolved is the outcome of resolving one rate request.
type Resolved struct {
	Rate        float64
	ResolvedVia Resolution
	Scope       Scope
}
