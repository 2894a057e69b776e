package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"courier-rates/internal/core/logger"
	"courier-rates/internal/features/pincodes/domain"
	"courier-rates/internal/features/pincodes/ports"

	"go.uber.org/zap"
)

// Directory is a read-through cache over a DatasetSource. The dataset is
// loaded on first use and never mutated afterwards, so lookups need no lock.
// A failed load is not remembered; the next lookup tries again.
type Directory struct {
	source      ports.DatasetSource
	serviceable []string

	mu      sync.Mutex
	records atomic.Pointer[map[string]domain.PincodeRecord]
}

// NewDirectory creates a Directory. serviceable lists the upper-cased states
// where pickups are accepted.
func NewDirectory(source ports.DatasetSource, serviceable []string) *Directory {
	return &Directory{
		source:      source,
		serviceable: serviceable,
	}
}

// Warm loads the dataset ahead of the first lookup.
func (d *Directory) Warm(ctx context.Context) error {
	_, err := d.load(ctx)
	return err
}

// Size returns the number of loaded pincodes, or 0 before the first load.
func (d *Directory) Size() int {
	if m := d.records.Load(); m != nil {
		return len(*m)
	}
	return 0
}

func (d *Directory) load(ctx context.Context) (map[string]domain.PincodeRecord, error) {
	if m := d.records.Load(); m != nil {
		return *m, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if m := d.records.Load(); m != nil {
		return *m, nil
	}

	records, err := d.source.Load(ctx)
	if err != nil {
		logger.Get().Error("Failed to load pincode dataset", zap.Error(err))
		return nil, fmt.Errorf("pincode directory unavailable: %w", err)
	}

	d.records.Store(&records)
	logger.Get().Info("Pincode dataset loaded", zap.Int("pincodes", len(records)))
	return records, nil
}

// Lookup returns the record for pincode.
func (d *Directory) Lookup(ctx context.Context, pincode string) (*domain.PincodeRecord, error) {
	if !domain.ValidPincode(pincode) {
		return nil, domain.ErrInvalidPincode
	}

	records, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	record, ok := records[pincode]
	if !ok {
		logger.Get().Debug("Pincode not found", zap.String("pincode", pincode))
		return nil, domain.ErrPincodeNotFound
	}
	return &record, nil
}

// CheckPickup reports whether a pickup can be scheduled at pincode.
func (d *Directory) CheckPickup(ctx context.Context, pincode, state string) (*domain.PickupEligibility, error) {
	record, err := d.Lookup(ctx, pincode)
	if err != nil {
		return nil, err
	}

	result := domain.CheckPickup(*record, state, d.serviceable)
	if !result.Eligible {
		logger.Get().Info("Pickup address rejected",
			zap.String("pincode", pincode),
			zap.String("claimed_state", result.ClaimedState),
			zap.String("found_state", result.FoundState),
			zap.Strings("reasons", result.Reasons),
		)
	}
	return &result, nil
}
