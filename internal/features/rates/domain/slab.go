package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrRateNotFound is returned when no rate resolves at user or default scope.
	ErrRateNotFound = errors.New("no rate available for this route and weight")
	// ErrInvalidWeight is returned for package weights outside (0, MaxPackageWeight].
	ErrInvalidWeight = errors.New("package weight must be greater than 0 and at most 1000 kg")
	// ErrInvalidSlab is returned when a rate slab fails validation.
	ErrInvalidSlab = errors.New("invalid rate slab")
	// ErrInvalidPincode is returned when a quote names a pincode the directory cannot resolve.
	ErrInvalidPincode = errors.New("invalid pincode")
)

// MaxPackageWeight is the heaviest package a quote is given for, in kg.
const MaxPackageWeight = 1000.0

// WeightSlab rounds a package weight up to the nearest 0.5 kg.
// Any weight above a half-kilo boundary, however slight, moves to the next slab.
func WeightSlab(weight float64) float64 {
	return math.Ceil(weight*2) / 2
}

// ValidWeight reports whether weight can be quoted.
func ValidWeight(weight float64) bool {
	return weight > 0 && weight <= MaxPackageWeight && !math.IsNaN(weight)
}

// ScopeKind distinguishes platform defaults from negotiated user rates.
type ScopeKind string

const (
	ScopeDefault ScopeKind = "default"
	ScopeUser    ScopeKind = "user"
)

// Scope says whose rate table a slab belongs to.
type Scope struct {
	Kind   ScopeKind `json:"kind"`
	UserID string    `json:"user_id,omitempty"`
}

// DefaultScope is the platform-wide rate table.
func DefaultScope() Scope {
	return Scope{Kind: ScopeDefault}
}

// UserScope is the negotiated rate table of userID.
func UserScope(userID string) Scope {
	return Scope{Kind: ScopeUser, UserID: userID}
}

// ParseScope builds a scope from its stored form.
func ParseScope(kind, userID string) (Scope, error) {
	switch ScopeKind(strings.ToLower(strings.TrimSpace(kind))) {
	case ScopeDefault:
		return DefaultScope(), nil
	case ScopeUser:
		userID = strings.TrimSpace(userID)
		if userID == "" {
			return Scope{}, fmt.Errorf("%w: user scope without user id", ErrInvalidSlab)
		}
		return UserScope(userID), nil
	}
	return Scope{}, fmt.Errorf("%w: unknown scope %q", ErrInvalidSlab, kind)
}

func (s Scope) String() string {
	if s.Kind == ScopeUser {
		return "user:" + s.UserID
	}
	return string(ScopeDefault)
}

// SlabKey identifies one ordered run of slabs in the rate table.
type SlabKey struct {
	Scope    Scope
	ZoneFrom Zone
	ZoneTo   Zone
}

func (k SlabKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Scope, k.ZoneFrom, k.ZoneTo)
}

// RateSlab is one row of the rate table, unique on (scope, zones, weight slab).
type RateSlab struct {
	Scope      Scope   `json:"scope"`
	ZoneFrom   Zone    `json:"zone_from"`
	ZoneTo     Zone    `json:"zone_to"`
	WeightSlab float64 `json:"weight_slab"`
	Rate       float64 `json:"rate"`
}

// Key returns the slab run this row belongs to.
func (r RateSlab) Key() SlabKey {
	return SlabKey{Scope: r.Scope, ZoneFrom: r.ZoneFrom, ZoneTo: r.ZoneTo}
}

// Validate checks the row can be stored.
func (r RateSlab) Validate() error {
	switch {
	case r.Scope.Kind != ScopeDefault && r.Scope.Kind != ScopeUser:
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidSlab, r.Scope.Kind)
	case r.Scope.Kind == ScopeUser && r.Scope.UserID == "":
		return fmt.Errorf("%w: user scope without user id", ErrInvalidSlab)
	case r.ZoneFrom == "" || r.ZoneTo == "":
		return fmt.Errorf("%w: zones are required", ErrInvalidSlab)
	case !(r.WeightSlab > 0):
		return fmt.Errorf("%w: weight slab must be positive, got %v", ErrInvalidSlab, r.WeightSlab)
	case !(r.Rate >= 0):
		return fmt.Errorf("%w: rate must not be negative, got %v", ErrInvalidSlab, r.Rate)
	}
	return nil
}

// Resolution records how a rate was derived.
type Resolution string

const (
	ResolvedExact                 Resolution = "Exact"
	ResolvedInterpolated          Resolution = "Interpolated"
	ResolvedLowerOnlyExtrapolated Resolution = "LowerOnlyExtrapolated"
)

// Interpolate prices packageWeight on the line between two bracketing slabs.
// A zero-width or inverted interval falls back to Extrapolate.
func Interpolate(lower, upper RateSlab, packageWeight float64) (float64, Resolution) {
	if upper.WeightSlab <= lower.WeightSlab {
		return Extrapolate(lower, packageWeight), ResolvedLowerOnlyExtrapolated
	}
	rate := lower.Rate + (packageWeight-lower.WeightSlab)*(upper.Rate-lower.Rate)/(upper.WeightSlab-lower.WeightSlab)
	return rate, ResolvedInterpolated
}

// Extrapolate projects the unit rate of the lower slab onto packageWeight.
func Extrapolate(lower RateSlab, packageWeight float64) float64 {
	return lower.Rate / lower.WeightSlab * packageWeight
}

// RoundCurrency rounds to two decimals.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
