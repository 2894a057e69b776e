package service

import (
	"context"
	"fmt"

	"courier-rates/internal/core/logger"
	"courier-rates/internal/features/rates/domain"
	"courier-rates/internal/features/rates/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultBulkConcurrency caps parallel lookups when none is configured.
const DefaultBulkConcurrency = 8

// Resolver implements ports.RateResolver over a RateStore.
type Resolver struct {
	store       ports.RateStore
	concurrency int
}

// NewResolver creates a Resolver. concurrency bounds ResolveBulkRates.
func NewResolver(store ports.RateStore, concurrency int) *Resolver {
	if concurrency < 1 {
		concurrency = DefaultBulkConcurrency
	}
	return &Resolver{
		store:       store,
		concurrency: concurrency,
	}
}

// ResolveRate prices one request. A user's own table is tried first when
// requested; the default table answers otherwise. Store failures are returned
// as-is and never reported as domain.ErrRateNotFound.
func (r *Resolver) ResolveRate(ctx context.Context, req domain.RateRequest) (*domain.Resolved, error) {
	log := logger.Get().With(
		zap.String("zone_from", string(req.ZoneFrom)),
		zap.String("zone_to", string(req.ZoneTo)),
		zap.Float64("weight_slab", req.WeightSlab),
		zap.Float64("package_weight", req.PackageWeight),
	)

	if req.PreferUserRate && req.UserID != "" {
		res, err := r.resolveScope(ctx, domain.UserScope(req.UserID), req)
		if err != nil {
			return nil, err
		}
		if res != nil {
			r.record(log, res)
			return res, nil
		}
		log.Debug("No user rate, falling back to default", zap.String("user_id", req.UserID))
	}

	res, err := r.resolveScope(ctx, domain.DefaultScope(), req)
	if err != nil {
		return nil, err
	}
	if res == nil {
		notFoundTotal.Inc()
		log.Info("Rate not found", zap.String("user_id", req.UserID))
		return nil, domain.ErrRateNotFound
	}

	r.record(log, res)
	return res, nil
}

func (r *Resolver) record(log *zap.Logger, res *domain.Resolved) {
	resolutionsTotal.WithLabelValues(string(res.Scope.Kind), string(res.ResolvedVia)).Inc()
	log.Debug("Rate resolved",
		zap.String("scope", res.Scope.String()),
		zap.String("resolved_via", string(res.ResolvedVia)),
		zap.Float64("rate", res.Rate),
	)
}

// resolveScope runs exact, interpolate, lower-only within one scope.
// It returns (nil, nil) when the scope has nothing usable.
func (r *Resolver) resolveScope(ctx context.Context, scope domain.Scope, req domain.RateRequest) (*domain.Resolved, error) {
	key := domain.SlabKey{Scope: scope, ZoneFrom: req.ZoneFrom, ZoneTo: req.ZoneTo}

	exact, err := r.store.Exact(ctx, key, req.WeightSlab)
	if err != nil {
		return nil, fmt.Errorf("resolver: exact lookup %s: %w", key, err)
	}
	if exact != nil {
		return &domain.Resolved{Rate: exact.Rate, ResolvedVia: domain.ResolvedExact, Scope: scope}, nil
	}

	lower, err := r.store.NearestBelow(ctx, key, req.WeightSlab)
	if err != nil {
		return nil, fmt.Errorf("resolver: lower lookup %s: %w", key, err)
	}
	if lower == nil {
		return nil, nil
	}

	upper, err := r.store.NearestAbove(ctx, key, req.WeightSlab)
	if err != nil {
		return nil, fmt.Errorf("resolver: upper lookup %s: %w", key, err)
	}
	if upper != nil {
		rate, via := domain.Interpolate(*lower, *upper, req.PackageWeight)
		return &domain.Resolved{Rate: rate, ResolvedVia: via, Scope: scope}, nil
	}

	return &domain.Resolved{
		Rate:        domain.Extrapolate(*lower, req.PackageWeight),
		ResolvedVia: domain.ResolvedLowerOnlyExtrapolated,
		Scope:       scope,
	}, nil
}

// ResolveBulkRates resolves every item independently and in parallel.
// The result at index i belongs to items[i]; one failure never affects another.
func (r *Resolver) ResolveBulkRates(ctx context.Context, items []domain.BulkItem, userID string, preferUserRate bool) []domain.BulkResult {
	results := make([]domain.BulkResult, len(items))

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(items); j++ {
				results[j].Err = err
			}
			break
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			res, err := r.ResolveRate(ctx, domain.RateRequest{
				ZoneFrom:       item.ZoneFrom,
				ZoneTo:         item.ZoneTo,
				WeightSlab:     item.WeightSlab,
				PackageWeight:  item.PackageWeight,
				UserID:         userID,
				PreferUserRate: preferUserRate,
			})
			results[i] = domain.BulkResult{Resolved: res, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
