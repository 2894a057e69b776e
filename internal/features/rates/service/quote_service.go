package service

import (
	"context"
	"errors"
	"fmt"

	"courier-rates/internal/core/logger"
	pincodes "courier-rates/internal/features/pincodes/domain"
	pincodeports "courier-rates/internal/features/pincodes/ports"
	"courier-rates/internal/features/rates/domain"
	"courier-rates/internal/features/rates/ports"

	"go.uber.org/zap"
)

// QuoteServiceImpl implements ports.QuoteService.
type QuoteServiceImpl struct {
	directory pincodeports.PincodeDirectory
	resolver  ports.RateResolver
}

// NewQuoteService creates a new QuoteServiceImpl.
func NewQuoteService(directory pincodeports.PincodeDirectory, resolver ports.RateResolver) *QuoteServiceImpl {
	return &QuoteServiceImpl{
		directory: directory,
		resolver:  resolver,
	}
}

// prepared is a quote request that passed validation and pincode lookup.
type prepared struct {
	origin      pincodes.PincodeRecord
	destination pincodes.PincodeRecord
	zones       domain.ZonePair
	slab        float64
	insurance   *domain.InsuranceCover
}

func (s *QuoteServiceImpl) prepare(ctx context.Context, req domain.QuoteRequest) (*prepared, error) {
	if !domain.ValidWeight(req.PackageWeight) {
		return nil, domain.ErrInvalidWeight
	}

	origin, err := s.lookup(ctx, "origin", req.OriginPincode)
	if err != nil {
		return nil, err
	}
	destination, err := s.lookup(ctx, "destination", req.DestinationPincode)
	if err != nil {
		return nil, err
	}

	p := &prepared{
		origin:      *origin,
		destination: *destination,
		zones:       domain.ClassifyZone(*origin, *destination),
		slab:        domain.WeightSlab(req.PackageWeight),
	}

	cover, err := domain.CalculateInsurance(req.DeclaredValue, req.InsuranceSelected)
	if err != nil {
		return nil, err
	}
	if req.InsuranceSelected {
		p.insurance = &cover
	}
	return p, nil
}

func (s *QuoteServiceImpl) lookup(ctx context.Context, side, pincode string) (*pincodes.PincodeRecord, error) {
	record, err := s.directory.Lookup(ctx, pincode)
	if errors.Is(err, pincodes.ErrInvalidPincode) || errors.Is(err, pincodes.ErrPincodeNotFound) {
		return nil, fmt.Errorf("%w: %s %q: %v", domain.ErrInvalidPincode, side, pincode, err)
	}
	if err != nil {
		return nil, fmt.Errorf("service: %s lookup: %w", side, err)
	}
	return record, nil
}

func (p *prepared) quote(req domain.QuoteRequest, res *domain.Resolved) *domain.Quote {
	rate := res.Rate
	if res.ResolvedVia != domain.ResolvedExact {
		rate = domain.RoundCurrency(rate)
	}
	q := &domain.Quote{
		Rate:          rate,
		ZoneFrom:      p.zones.From,
		ZoneTo:        p.zones.To,
		WeightSlab:    p.slab,
		PackageWeight: req.PackageWeight,
		ResolvedVia:   res.ResolvedVia,
		Scope:         res.Scope,
		Origin:        p.origin.Display(),
		Destination:   p.destination.Display(),
		Insurance:     p.insurance,
	}
	q.Total = q.Rate
	if p.insurance != nil {
		q.Total = domain.RoundCurrency(q.Rate + p.insurance.Premium)
	}
	return q
}

// GetQuote prices one shipment between two pincodes.
func (s *QuoteServiceImpl) GetQuote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error) {
	p, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	res, err := s.resolver.ResolveRate(ctx, domain.RateRequest{
		ZoneFrom:       p.zones.From,
		ZoneTo:         p.zones.To,
		WeightSlab:     p.slab,
		PackageWeight:  req.PackageWeight,
		UserID:         req.UserID,
		PreferUserRate: req.UserID != "",
	})
	if err != nil {
		return nil, err
	}

	q := p.quote(req, res)
	logger.Get().Info("Quote resolved",
		zap.String("origin", req.OriginPincode),
		zap.String("destination", req.DestinationPincode),
		zap.String("zone_from", string(q.ZoneFrom)),
		zap.String("zone_to", string(q.ZoneTo)),
		zap.Float64("rate", q.Rate),
		zap.String("resolved_via", string(q.ResolvedVia)),
	)
	return q, nil
}

// GetBulkQuotes prices every request for userID. The result at index i
// belongs to reqs[i]; an invalid item never affects the others.
func (s *QuoteServiceImpl) GetBulkQuotes(ctx context.Context, reqs []domain.QuoteRequest, userID string) []domain.BulkQuoteResult {
	results := make([]domain.BulkQuoteResult, len(reqs))
	preps := make([]*prepared, len(reqs))

	var items []domain.BulkItem
	var at []int
	for i, req := range reqs {
		p, err := s.prepare(ctx, req)
		if err != nil {
			results[i].Err = err
			continue
		}
		preps[i] = p
		items = append(items, domain.BulkItem{
			ZoneFrom:      p.zones.From,
			ZoneTo:        p.zones.To,
			WeightSlab:    p.slab,
			PackageWeight: req.PackageWeight,
		})
		at = append(at, i)
	}

	for j, r := range s.resolver.ResolveBulkRates(ctx, items, userID, userID != "") {
		i := at[j]
		if r.Err != nil {
			results[i].Err = r.Err
			continue
		}
		results[i].Quote = preps[i].quote(reqs[i], r.Resolved)
	}

	logger.Get().Info("Bulk quotes resolved", zap.Int("items", len(reqs)), zap.Int("valid", len(items)))
	return results
}
