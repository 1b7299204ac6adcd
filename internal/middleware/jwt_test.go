package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/gvclassroom/classroom-api/internal/auth"
	"github.com/gvclassroom/classroom-api/internal/middleware"
)

func newAuthTestApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(middleware.OptionalAuth(secret))
	app.Get("/open", func(c *fiber.Ctx) error {
		id, _ := c.Locals("user_id").(string)
		return c.SendString(id)
	})
	app.Get("/closed", middleware.RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestOptionalAuthBindsIdentity(t *testing.T) {
	app := newAuthTestApp("secret")

	token, err := auth.Issue("user-1", "SOPORTE", "secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	app := newAuthTestApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	app := newAuthTestApp("secret")

	req := httptest.NewRequest(http.MethodGet, "/closed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthAcceptsToken(t *testing.T) {
	app := newAuthTestApp("secret")

	token, err := auth.Issue("user-1", "SOPORTE", "secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
