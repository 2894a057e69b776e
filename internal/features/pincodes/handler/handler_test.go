package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"courier-rates/internal/features/pincodes/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDirectory is a mock implementation of ports.PincodeDirectory
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) Lookup(ctx context.Context, pincode string) (*domain.PincodeRecord, error) {
	args := m.Called(ctx, pincode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PincodeRecord), args.Error(1)
}

func (m *MockDirectory) CheckPickup(ctx context.Context, pincode, state string) (*domain.PickupEligibility, error) {
	args := m.Called(ctx, pincode, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PickupEligibility), args.Error(1)
}

func setupApp(directory *MockDirectory) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	NewPincodeHandler(directory).Register(app)
	return app
}

func TestPincodeHandler_GetPincode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		directory := new(MockDirectory)
		app := setupApp(directory)

		directory.On("Lookup", mock.Anything, "110075").
			Return(&domain.PincodeRecord{Pincode: "110075", City: "SOUTH WEST DELHI", State: "DELHI"}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/pincodes/110075", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body domain.PincodeRecord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "South West Delhi", body.City)
		assert.Equal(t, "Delhi", body.State)
		directory.AssertExpectations(t)
	})

	t.Run("Malformed", func(t *testing.T) {
		directory := new(MockDirectory)
		app := setupApp(directory)

		directory.On("Lookup", mock.Anything, "11x075").Return(nil, domain.ErrInvalidPincode).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/pincodes/11x075", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		directory := new(MockDirectory)
		app := setupApp(directory)

		directory.On("Lookup", mock.Anything, "999999").Return(nil, domain.ErrPincodeNotFound).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/pincodes/999999", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "test-ray-id", body.RayID)
	})

	t.Run("InternalError", func(t *testing.T) {
		directory := new(MockDirectory)
		app := setupApp(directory)

		directory.On("Lookup", mock.Anything, "110075").Return(nil, errors.New("dataset unreachable")).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/pincodes/110075", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestPincodeHandler_CheckPickup(t *testing.T) {
	t.Run("Eligible", func(t *testing.T) {
		directory := new(MockDirectory)
		app := setupApp(directory)

		directory.On("CheckPickup", mock.Anything, "110075", "Delhi").
			Return(&domain.PickupEligibility{Pincode: "110075", Eligible: true}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/pincodes/110075/pickup?state=Delhi", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body domain.PickupEligibility
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Eligible)
		directory.AssertExpectations(t)
	})

	t.Run("MissingState", func(t *testing.T) {
		directory := new(MockDirectory)
		app := setupApp(directory)

		resp, err := app.Test(httptest.NewRequest("GET", "/pincodes/110075/pickup", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		directory.AssertNotCalled(t, "CheckPickup", mock.Anything, mock.Anything, mock.Anything)
	})
}
