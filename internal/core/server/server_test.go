package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"courier-rates/internal/core/config"
	"courier-rates/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew verifies that New creates a Server with the correct configuration.
func TestNew(t *testing.T) {
	cfg := &config.AppConfig{
		ServerPort: 8080,
	}

	logger.Init("development", "debug")
	srv := New(cfg)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.App)
	assert.Equal(t, cfg, srv.cfg)
}

// TestHealth verifies the health endpoint and the ray id header.
func TestHealth(t *testing.T) {
	logger.Init("development", "error")
	srv := New(&config.AppConfig{ServerPort: 8080})

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err = uuid.Parse(resp.Header.Get(RayIDHeader))
	assert.NoError(t, err)
}

// TestRayID verifies the ray id helper inside a handler.
func TestRayID(t *testing.T) {
	logger.Init("development", "error")
	srv := New(&config.AppConfig{ServerPort: 8080})

	var seen string
	srv.App.Get("/ray", func(c *fiber.Ctx) error {
		seen = RayID(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/ray", nil))
	require.NoError(t, err)
	assert.Equal(t, resp.Header.Get(RayIDHeader), seen)

	bare := fiber.New()
	bare.Get("/ray", func(c *fiber.Ctx) error {
		seen = RayID(c)
		return nil
	})
	_, err = bare.Test(httptest.NewRequest("GET", "/ray", nil))
	require.NoError(t, err)
	assert.Equal(t, "unknown", seen)
}

// TestServer_Run_Error verifies that Run returns an error when binding fails (e.g., privileged port).
func TestServer_Run_Error(t *testing.T) {
	cfg := &config.AppConfig{
		ServerPort: 1,
	}
	logger.Init("development", "error")

	srv := New(cfg)

	errCh := make(chan error)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(1 * time.Second):
		srv.Shutdown(time.Second)
		t.Log("Server unexpectedly started or timed out on Error test")
	}
}
