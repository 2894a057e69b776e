package ports

import (
	"context"

	"courier-rates/internal/features/rates/domain"
)

// RateStore answers ordered range queries over one slab run.
// Every method returns (nil, nil) when no row matches.
// This is a Secondary Port (Driven Port).
type RateStore interface {
	// Exact returns the row at weightSlab.
	Exact(ctx context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error)
	// NearestBelow returns the row with the largest slab strictly below weightSlab.
	NearestBelow(ctx context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error)
	// NearestAbove returns the row with the smallest slab strictly above weightSlab.
	NearestAbove(ctx context.Context, key domain.SlabKey, weightSlab float64) (*domain.RateSlab, error)
	// Slabs returns every row of the run, ascending by weight slab.
	Slabs(ctx context.Context, key domain.SlabKey) ([]domain.RateSlab, error)
}

// RateWriter seeds and maintains the rate table.
type RateWriter interface {
	// Upsert inserts rows or replaces the rate of existing ones and returns how many were written.
	Upsert(ctx context.Context, slabs []domain.RateSlab) (int, error)
	// DeleteScope removes every row of the run.
	DeleteScope(ctx context.Context, key domain.SlabKey) error
}

// RateRepository is a store that can be both read and written.
type RateRepository interface {
	RateStore
	RateWriter
}

// RateResolver prices a zone pair and weight.
// This is a Primary Port (Driving Port).
type RateResolver interface {
	ResolveRate(ctx context.Context, req domain.RateRequest) (*domain.Resolved, error)
	ResolveBulkRates(ctx context.Context, items []domain.BulkItem, userID string, preferUserRate bool) []domain.BulkResult
}

// QuoteService prices shipments between pincodes.
// This is a Primary Port (Driving Port).
type QuoteService interface {
	GetQuote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error)
	GetBulkQuotes(ctx context.Context, reqs []domain.QuoteRequest, userID string) []domain.BulkQuoteResult
}
