package service

import (
	"context"
	"errors"
	"testing"

	pincodes "courier-rates/internal/features/pincodes/domain"
	"courier-rates/internal/features/rates/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDirectory serves a fixed set of pincodes.
type stubDirectory struct {
	records map[string]pincodes.PincodeRecord
	err     error
}

func (d stubDirectory) Lookup(_ context.Context, pincode string) (*pincodes.PincodeRecord, error) {
	if d.err != nil {
		return nil, d.err
	}
	if !pincodes.ValidPincode(pincode) {
		return nil, pincodes.ErrInvalidPincode
	}
	r, ok := d.records[pincode]
	if !ok {
		return nil, pincodes.ErrPincodeNotFound
	}
	return &r, nil
}

func (d stubDirectory) CheckPickup(context.Context, string, string) (*pincodes.PickupEligibility, error) {
	return nil, errors.New("not used")
}

var directory = stubDirectory{records: map[string]pincodes.PincodeRecord{
	"110075": {Pincode: "110075", City: "SOUTH WEST DELHI", State: "DELHI"},
	"313001": {Pincode: "313001", City: "UDAIPUR", State: "RAJASTHAN"},
	"400001": {Pincode: "400001", City: "MUMBAI", State: "MAHARASHTRA"},
	"600001": {Pincode: "600001", City: "CHENNAI", State: "TAMIL NADU"},
}}

func quoteRequest(weight float64) domain.QuoteRequest {
	return domain.QuoteRequest{OriginPincode: "110075", DestinationPincode: "313001", PackageWeight: weight}
}

func TestQuoteService_GetQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("ExactDefaultRate", func(t *testing.T) {
		store := seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth, 1.5, 60)
		svc := NewQuoteService(directory, NewResolver(store, 4))

		q, err := svc.GetQuote(ctx, quoteRequest(1.3))
		require.NoError(t, err)
		assert.Equal(t, 60.0, q.Rate)
		assert.Equal(t, 60.0, q.Total)
		assert.Equal(t, 1.5, q.WeightSlab)
		assert.Equal(t, domain.ZoneNorth, q.ZoneFrom)
		assert.Equal(t, domain.ZoneNorth, q.ZoneTo)
		assert.Equal(t, domain.ResolvedExact, q.ResolvedVia)
		assert.Equal(t, "South West Delhi", q.Origin.City)
		assert.Equal(t, "Rajasthan", q.Destination.State)
		assert.Nil(t, q.Insurance)
	})

	t.Run("Interpolated", func(t *testing.T) {
		store := seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth, 1, 50, 2, 80)
		q, err := NewQuoteService(directory, NewResolver(store, 4)).GetQuote(ctx, quoteRequest(1.3))
		require.NoError(t, err)
		assert.Equal(t, 59.0, q.Rate)
		assert.Equal(t, domain.ResolvedInterpolated, q.ResolvedVia)
	})

	t.Run("ExactRateKeepsStoredPrecision", func(t *testing.T) {
		store := seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth, 1.5, 60.005)
		q, err := NewQuoteService(directory, NewResolver(store, 4)).GetQuote(ctx, quoteRequest(1.3))
		require.NoError(t, err)
		assert.Equal(t, domain.ResolvedExact, q.ResolvedVia)
		assert.Equal(t, 60.005, q.Rate)
		assert.Equal(t, 60.005, q.Total)
	})

	t.Run("InterpolatedRateRounded", func(t *testing.T) {
		store := seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth, 1, 50, 2, 80.001)
		q, err := NewQuoteService(directory, NewResolver(store, 4)).GetQuote(ctx, quoteRequest(1.3))
		require.NoError(t, err)
		assert.Equal(t, domain.ResolvedInterpolated, q.ResolvedVia)
		assert.Equal(t, 59.0, q.Rate)
	})

	t.Run("Extrapolated", func(t *testing.T) {
		store := seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth, 1, 50)
		q, err := NewQuoteService(directory, NewResolver(store, 4)).GetQuote(ctx, quoteRequest(3.0))
		require.NoError(t, err)
		assert.Equal(t, 150.0, q.Rate)
		assert.Equal(t, domain.ResolvedLowerOnlyExtrapolated, q.ResolvedVia)
	})

	t.Run("MetroZone", func(t *testing.T) {
		store := seed(t, domain.DefaultScope(), domain.ZoneMetro, domain.ZoneMetro, 1, 58)
		req := domain.QuoteRequest{OriginPincode: "400001", DestinationPincode: "600001", PackageWeight: 1}
		q, err := NewQuoteService(directory, NewResolver(store, 4)).GetQuote(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, domain.ZoneMetro, q.ZoneFrom)
		assert.Equal(t, 58.0, q.Rate)
	})

	t.Run("UserRateWins", func(t *testing.T) {
		store := seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth, 1.5, 60)
		seedInto(t, store, domain.UserScope("u-1"), domain.ZoneNorth, domain.ZoneNorth, 1.5, 45)

		req := quoteRequest(1.3)
		req.UserID = "u-1"
		q, err := NewQuoteService(directory, NewResolver(store, 4)).GetQuote(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 45.0, q.Rate)
		assert.Equal(t, domain.UserScope("u-1"), q.Scope)
	})

	t.Run("Insured", func(t *testing.T) {
		store := seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth, 1.5, 60)
		req := quoteRequest(1.3)
		req.DeclaredValue = 6000
		req.InsuranceSelected = true

		q, err := NewQuoteService(directory, NewResolver(store, 4)).GetQuote(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, q.Insurance)
		assert.Equal(t, 120.0, q.Insurance.Premium)
		assert.Equal(t, 180.0, q.Total)
	})

	t.Run("InsuranceRequired", func(t *testing.T) {
		store := seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth, 1.5, 60)
		req := quoteRequest(1.3)
		req.DeclaredValue = 6000

		_, err := NewQuoteService(directory, NewResolver(store, 4)).GetQuote(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInsuranceRequired)
	})

	t.Run("InvalidWeight", func(t *testing.T) {
		svc := NewQuoteService(directory, NewResolver(seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth), 4))
		for _, w := range []float64{0, -2, 1000.01} {
			_, err := svc.GetQuote(ctx, quoteRequest(w))
			assert.ErrorIs(t, err, domain.ErrInvalidWeight)
		}
	})

	t.Run("UnknownPincode", func(t *testing.T) {
		svc := NewQuoteService(directory, NewResolver(seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth), 4))

		req := quoteRequest(1.3)
		req.DestinationPincode = "999999"
		_, err := svc.GetQuote(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidPincode)
		assert.Contains(t, err.Error(), "destination")

		req = quoteRequest(1.3)
		req.OriginPincode = "11007"
		_, err = svc.GetQuote(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidPincode)
		assert.Contains(t, err.Error(), "origin")
	})

	t.Run("DirectoryUnavailable", func(t *testing.T) {
		broken := stubDirectory{err: errors.New("dataset unreachable")}
		_, err := NewQuoteService(broken, NewResolver(seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth), 4)).
			GetQuote(ctx, quoteRequest(1.3))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidPincode)
	})

	t.Run("NoRate", func(t *testing.T) {
		store := seed(t, domain.DefaultScope(), domain.ZoneSouth, domain.ZoneSouth, 1, 50)
		_, err := NewQuoteService(directory, NewResolver(store, 4)).GetQuote(ctx, quoteRequest(1.3))
		assert.ErrorIs(t, err, domain.ErrRateNotFound)
	})
}

func TestQuoteService_GetBulkQuotes(t *testing.T) {
	store := seed(t, domain.DefaultScope(), domain.ZoneNorth, domain.ZoneNorth, 1, 50, 2, 80)
	seedInto(t, store, domain.UserScope("u-2"), domain.ZoneNorth, domain.ZoneNorth, 1.5, 33)
	svc := NewQuoteService(directory, NewResolver(store, 3))

	reqs := []domain.QuoteRequest{
		quoteRequest(1.3),
		{OriginPincode: "110075", DestinationPincode: "000000", PackageWeight: 1},
		quoteRequest(1.0),
		{OriginPincode: "400001", DestinationPincode: "600001", PackageWeight: 1},
		quoteRequest(0),
	}

	results := svc.GetBulkQuotes(context.Background(), reqs, "u-2")
	require.Len(t, results, len(reqs))

	require.NoError(t, results[0].Err)
	assert.Equal(t, 33.0, results[0].Quote.Rate)
	assert.Equal(t, domain.UserScope("u-2"), results[0].Quote.Scope)

	assert.ErrorIs(t, results[1].Err, domain.ErrInvalidPincode)

	require.NoError(t, results[2].Err)
	assert.Equal(t, 50.0, results[2].Quote.Rate)
	assert.Equal(t, domain.DefaultScope(), results[2].Quote.Scope)

	assert.ErrorIs(t, results[3].Err, domain.ErrRateNotFound)
	assert.ErrorIs(t, results[4].Err, domain.ErrInvalidWeight)
}
