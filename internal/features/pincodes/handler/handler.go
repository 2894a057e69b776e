package handler

import (
	"errors"
	"net/http"

	"courier-rates/internal/core/logger"
	"courier-rates/internal/core/server"
	"courier-rates/internal/features/pincodes/domain"
	"courier-rates/internal/features/pincodes/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PincodeHandler handles HTTP requests for the pincode directory.
type PincodeHandler struct {
	directory ports.PincodeDirectory
}

// NewPincodeHandler creates a new PincodeHandler.
func NewPincodeHandler(directory ports.PincodeDirectory) *PincodeHandler {
	return &PincodeHandler{
		directory: directory,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// Register mounts the pincode routes on router.
func (h *PincodeHandler) Register(router fiber.Router) {
	router.Get("/pincodes/:pincode", h.GetPincode)
	router.Get("/pincodes/:pincode/pickup", h.CheckPickup)
}

// GetPincode godoc
// @Summary Look up a pincode
// @Description Returns the city and state for a six digit pincode.
// @Tags pincodes
// @Produce json
// @Param pincode path string true "Six digit pincode"
// @Success 200 {object} domain.PincodeRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /pincodes/{pincode} [get]
func (h *PincodeHandler) GetPincode(c *fiber.Ctx) error {
	pincode := c.Params("pincode")

	record, err := h.directory.Lookup(c.UserContext(), pincode)
	if err != nil {
		return h.fail(c, pincode, err)
	}

	return c.Status(http.StatusOK).JSON(record.Display())
}

// CheckPickup godoc
// @Summary Check pickup eligibility
// @Description Verifies that the pincode belongs to the claimed state and that pickups are serviceable there.
// @Tags pincodes
// @Produce json
// @Param pincode path string true "Six digit pincode"
// @Param state query string true "State entered by the customer"
// @Success 200 {object} domain.PickupEligibility
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /pincodes/{pincode}/pickup [get]
func (h *PincodeHandler) CheckPickup(c *fiber.Ctx) error {
	pincode := c.Params("pincode")
	state := c.Query("state")
	if state == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "state query parameter is required",
			RayID:   server.RayID(c),
		})
	}

	result, err := h.directory.CheckPickup(c.UserContext(), pincode, state)
	if err != nil {
		return h.fail(c, pincode, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

func (h *PincodeHandler) fail(c *fiber.Ctx, pincode string, err error) error {
	rayID := server.RayID(c)

	switch {
	case errors.Is(err, domain.ErrInvalidPincode):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Message: err.Error(), RayID: rayID})
	case errors.Is(err, domain.ErrPincodeNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Message: "pincode not found", RayID: rayID})
	}

	logger.Get().Error("Pincode lookup failed",
		zap.String("pincode", pincode),
		zap.String("ray_id", rayID),
		zap.Error(err),
	)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal server error",
		RayID:   rayID,
	})
}
