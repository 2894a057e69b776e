package domain

import (
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrInvalidPincode is returned when a pincode is not exactly six digits.
	ErrInvalidPincode = errors.New("pincode must be exactly 6 digits")
	// ErrPincodeNotFound is returned when a pincode is absent from the directory.
	ErrPincodeNotFound = errors.New("pincode not found")
)

// PincodeRecord is one entry of the pincode directory.
type PincodeRecord struct {
	// Pincode is the six digit postal index number.
	Pincode string `json:"pincode"`
	// City is the district the pincode belongs to.
	City string `json:"city"`
	// State is the state or union territory.
	State string `json:"state"`
}

// ValidPincode reports whether s is exactly six ASCII digits.
func ValidPincode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Normalize trims and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Display returns a copy with city and state title-cased for presentation.
func (r PincodeRecord) Display() PincodeRecord {
	return PincodeRecord{
		Pincode: r.Pincode,
		City:    titleCase(r.City),
		State:   titleCase(r.State),
	}
}

// titleCase upper-cases the first letter of every word and lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if startOfWord {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			startOfWord = false
		default:
			b.WriteRune(r)
			startOfWord = true
		}
	}
	return b.String()
}
