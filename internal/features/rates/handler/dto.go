package handler

import (
	"fmt"
	"reflect"

	"courier-rates/internal/features/rates/domain"

	"github.com/go-playground/validator/v10"
)

// MaxBulkItems caps the size of a bulk quote request.
const MaxBulkItems = 500

// UserIDHeader identifies the customer whose negotiated rates apply.
const UserIDHeader = "X-User-ID"

// QuoteQuery holds the query parameters of GET /rates/quote.
type QuoteQuery struct {
	Origin        string  `query:"origin" validate:"required,len=6,numeric"`
	Destination   string  `query:"destination" validate:"required,len=6,numeric"`
	Weight        float64 `query:"weight" validate:"gt=0,lte=1000"`
	DeclaredValue float64 `query:"declared_value" validate:"gte=0"`
	Insurance     bool    `query:"insurance"`
	UserID        string  `query:"user_id" validate:"omitempty,max=64"`
}

// BulkQuoteItem is one shipment of a bulk quote request.
type BulkQuoteItem struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Weight        float64 `json:"weight"`
	DeclaredValue float64 `json:"declared_value"`
	Insurance     bool    `json:"insurance"`
}

// BulkQuoteRequest is the body of POST /rates/quote/bulk.
// Items are validated one by one by the service so a bad item fails alone.
type BulkQuoteRequest struct {
	UserID string          `json:"user_id" validate:"omitempty,max=64"`
	Items  []BulkQuoteItem `json:"items" validate:"required,min=1,max=500"`
}

// BulkQuoteResult is the outcome of the item at Index.
type BulkQuoteResult struct {
	Index       int               `json:"index"`
	Rate        *float64          `json:"rate,omitempty"`
	Total       *float64          `json:"total,omitempty"`
	ZoneFrom    domain.Zone       `json:"zone_from,omitempty"`
	ZoneTo      domain.Zone       `json:"zone_to,omitempty"`
	WeightSlab  *float64          `json:"weight_slab,omitempty"`
	ResolvedVia domain.Resolution `json:"resolved_via,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// BulkQuoteResponse lists results in request order.
type BulkQuoteResponse struct {
	Results []BulkQuoteResult `json:"results"`
}

func toBulkResult(i int, r domain.BulkQuoteResult) BulkQuoteResult {
	if r.Err != nil {
		return BulkQuoteResult{Index: i, Error: r.Err.Error()}
	}
	q := r.Quote
	return BulkQuoteResult{
		Index:       i,
		Rate:        &q.Rate,
		Total:       &q.Total,
		ZoneFrom:    q.ZoneFrom,
		ZoneTo:      q.ZoneTo,
		WeightSlab:  &q.WeightSlab,
		ResolvedVia: q.ResolvedVia,
	}
}

// validationMessage turns one validator failure into a client-facing sentence.
func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at most %s entries", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
