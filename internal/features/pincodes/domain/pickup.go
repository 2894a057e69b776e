package domain

import "strings"

// Reasons a pickup address can be rejected.
const (
	PickupReasonStateMismatch       = "state_mismatch"
	PickupReasonStateNotServiceable = "state_not_serviceable"
)

// PickupEligibility is the verdict for a pickup address.
type PickupEligibility struct {
	Pincode      string   `json:"pincode"`
	ClaimedState string   `json:"claimed_state"`
	FoundState   string   `json:"found_state"`
	Eligible     bool     `json:"eligible"`
	Reasons      []string `json:"reasons,omitempty"`
}

// CheckPickup decides whether a pickup can be scheduled at record given the
// state the customer entered. serviceable holds upper-cased state names.
func CheckPickup(record PincodeRecord, claimedState string, serviceable []string) PickupEligibility {
	claimed := strings.ToUpper(Normalize(claimedState))
	found := strings.ToUpper(Normalize(record.State))

	result := PickupEligibility{
		Pincode:      record.Pincode,
		ClaimedState: claimed,
		FoundState:   found,
	}

	if claimed != found {
		result.Reasons = append(result.Reasons, PickupReasonStateMismatch)
	}

	allowed := false
	for _, s := range serviceable {
		if s == claimed {
			allowed = true
			break
		}
	}
	if !allowed {
		result.Reasons = append(result.Reasons, PickupReasonStateNotServiceable)
	}

	result.Eligible = len(result.Reasons) == 0
	return result
}
