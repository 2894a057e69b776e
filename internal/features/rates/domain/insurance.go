package domain

import "errors"

var (
	// ErrValueExceedsLimit is returned for shipments declared above MaxDeclaredValue.
	ErrValueExceedsLimit = errors.New("shipments declared over 49,999 are not accepted")
	// ErrInsuranceRequired is returned when a high-value shipment is not insured.
	ErrInsuranceRequired = errors.New("insurance is mandatory for shipments declared above 5,000")
	// ErrInvalidDeclaredValue is returned for negative declared values.
	ErrInvalidDeclaredValue = errors.New("declared value must not be negative")
)

const (
	// MaxDeclaredValue is the highest declared value accepted for shipping.
	MaxDeclaredValue = 49999.0
	// MandatoryInsuranceAbove is the declared value above which insurance must be selected.
	MandatoryInsuranceAbove = 5000.0
)

// InsuranceCover is the premium charged and the compensation paid on loss.
type InsuranceCover struct {
	DeclaredValue float64 `json:"declared_value"`
	Premium       float64 `json:"premium"`
	Compensation  float64 `json:"compensation"`
}

// CalculateInsurance prices the cover for a declared shipment value.
// Bands are evaluated against their upper bound, so a value between two
// integer bands takes the lower band's rule.
func CalculateInsurance(declaredValue float64, selected bool) (InsuranceCover, error) {
	cover := InsuranceCover{DeclaredValue: declaredValue}

	if declaredValue < 0 {
		return cover, ErrInvalidDeclaredValue
	}
	if declaredValue > MaxDeclaredValue {
		return cover, ErrValueExceedsLimit
	}
	if declaredValue > MandatoryInsuranceAbove && !selected {
		return cover, ErrInsuranceRequired
	}
	if !selected || declaredValue < 1 {
		return cover, nil
	}

	v := declaredValue
	switch {
	case v < 2500:
		cover.Premium = 100
		cover.Compensation = v
	case v <= 5000:
		cover.Premium = 100
		cover.Compensation = v * 0.8
	case v < 13000:
		cover.Premium = v * 0.02
		cover.Compensation = v * 0.8
	case v < 22000:
		f := bandFraction(v, 13000, 21999)
		cover.Premium = v * (0.021 + (0.029-0.021)*f)
		cover.Compensation = v * (0.58 + (0.78-0.58)*f)
	case v < 27000:
		f := bandFraction(v, 22000, 26999)
		cover.Premium = v * 0.03
		cover.Compensation = v * (0.51 + (0.55-0.51)*f)
	default:
		cover.Premium = v * 0.03
		cover.Compensation = v * 0.5
	}

	cover.Premium = RoundCurrency(cover.Premium)
	cover.Compensation = RoundCurrency(cover.Compensation)
	return cover, nil
}

// bandFraction is how far v sits between lo and hi, clamped to [0, 1].
func bandFraction(v, lo, hi float64) float64 {
	f := (v - lo) / (hi - lo)
	if f > 1 {
		return 1
	}
	return f
}
