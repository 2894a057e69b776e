package ports

import (
	"context"

	"courier-rates/internal/features/pincodes/domain"
)

// DatasetSource loads the complete pincode dataset.
// This is a Secondary Port (Driven Port).
type DatasetSource interface {
	// Load returns every record keyed by pincode.
	Load(ctx context.Context) (map[string]domain.PincodeRecord, error)
}

// PincodeDirectory resolves pincodes to their city and state.
// This is the Primary Port consumed by the rate engine and the HTTP handler.
type PincodeDirectory interface {
	// Lookup returns the record for pincode or domain.ErrPincodeNotFound.
	Lookup(ctx context.Context, pincode string) (*domain.PincodeRecord, error)
	// CheckPickup reports whether a pickup can be scheduled at pincode for the claimed state.
	CheckPickup(ctx context.Context, pincode, state string) (*domain.PickupEligibility, error)
}
