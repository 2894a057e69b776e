package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"courier-rates/internal/core/logger"
	"courier-rates/internal/core/server"
	"courier-rates/internal/features/rates/domain"
	"courier-rates/internal/features/rates/ports"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RateHandler handles HTTP requests for shipping quotes.
type RateHandler struct {
	quotes    ports.QuoteService
	validator *validator.Validate
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(quotes ports.QuoteService) *RateHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("query"); name != "" {
			return name
		}
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	return &RateHandler{
		quotes:    quotes,
		validator: v,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Details lists individual validation failures.
	Details []string `json:"details,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// Register mounts the rate routes on router.
func (h *RateHandler) Register(router fiber.Router) {
	router.Get("/rates/quote", h.GetQuote)
	router.Post("/rates/quote/bulk", h.GetBulkQuotes)
}

// GetQuote godoc
// @Summary Quote a shipment
// @Description Prices a package between two pincodes, preferring the customer's negotiated rates.
// @Tags rates
// @Produce json
// @Param origin query string true "Origin pincode"
// @Param destination query string true "Destination pincode"
// @Param weight query number true "Package weight in kg"
// @Param declared_value query number false "Declared shipment value"
// @Param insurance query bool false "Insure the shipment"
// @Param user_id query string false "Customer whose negotiated rates apply"
// @Param X-User-ID header string false "Customer whose negotiated rates apply"
// @Success 200 {object} domain.Quote
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rates/quote [get]
func (h *RateHandler) GetQuote(c *fiber.Ctx) error {
	var q QuoteQuery
	if err := c.QueryParser(&q); err != nil {
		return h.badRequest(c, "Invalid query parameters", nil)
	}
	if err := h.validator.Struct(&q); err != nil {
		return h.validationFailed(c, err)
	}

	userID := q.UserID
	if userID == "" {
		userID = strings.TrimSpace(c.Get(UserIDHeader))
	}

	quote, err := h.quotes.GetQuote(c.UserContext(), domain.QuoteRequest{
		OriginPincode:      q.Origin,
		DestinationPincode: q.Destination,
		PackageWeight:      q.Weight,
		UserID:             userID,
		DeclaredValue:      q.DeclaredValue,
		InsuranceSelected:  q.Insurance,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(quote)
}

// GetBulkQuotes godoc
// @Summary Quote many shipments
// @Description Prices up to 500 packages at once. Each item succeeds or fails on its own.
// @Tags rates
// @Accept json
// @Produce json
// @Param request body BulkQuoteRequest true "Shipments to quote"
// @Param X-User-ID header string false "Customer whose negotiated rates apply"
// @Success 200 {object} BulkQuoteResponse
// @Failure 400 {object} ErrorResponse
// @Router /rates/quote/bulk [post]
func (h *RateHandler) GetBulkQuotes(c *fiber.Ctx) error {
	var req BulkQuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.validationFailed(c, err)
	}

	userID := req.UserID
	if userID == "" {
		userID = strings.TrimSpace(c.Get(UserIDHeader))
	}

	reqs := make([]domain.QuoteRequest, len(req.Items))
	for i, item := range req.Items {
		reqs[i] = domain.QuoteRequest{
			OriginPincode:      item.Origin,
			DestinationPincode: item.Destination,
			PackageWeight:      item.Weight,
			UserID:             userID,
			DeclaredValue:      item.DeclaredValue,
			InsuranceSelected:  item.Insurance,
		}
	}

	results := h.quotes.GetBulkQuotes(c.UserContext(), reqs, userID)

	resp := BulkQuoteResponse{Results: make([]BulkQuoteResult, len(results))}
	for i, r := range results {
		resp.Results[i] = toBulkResult(i, r)
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func (h *RateHandler) badRequest(c *fiber.Ctx, message string, details []string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Message: message,
		Details: details,
		RayID:   server.RayID(c),
	})
}

func (h *RateHandler) validationFailed(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return h.badRequest(c, "Validation failed", []string{err.Error()})
	}
	details := make([]string, 0, len(ve))
	for _, fe := range ve {
		details = append(details, validationMessage(fe))
	}
	return h.badRequest(c, "Validation failed", details)
}

func isBadRequest(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidWeight,
		domain.ErrInvalidPincode,
		domain.ErrInsuranceRequired,
		domain.ErrValueExceedsLimit,
		domain.ErrInvalidDeclaredValue,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (h *RateHandler) fail(c *fiber.Ctx, err error) error {
	rayID := server.RayID(c)

	switch {
	case isBadRequest(err):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: err.Error(), RayID: rayID})
	case errors.Is(err, domain.ErrRateNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Message: err.Error(), RayID: rayID})
	}

	logger.Get().Error("Quote failed", zap.String("ray_id", rayID), zap.Error(err))
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal server error",
		RayID:   rayID,
	})
}
