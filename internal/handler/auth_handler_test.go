package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/handler"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/service"
)

type mockAuthService struct {
	response dto.LoginResponse
	err      error
}

func (m *mockAuthService) Login(_ context.Context, _ dto.LoginRequest) (dto.LoginResponse, error) {
	if m.err != nil {
		return dto.LoginResponse{}, m.err
	}
	return m.response, nil
}

func postLogin(t *testing.T, svc service.AuthService, body string) *http.Response {
	t.Helper()

	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/auth"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestLoginHandlerSuccess(t *testing.T) {
	svc := &mockAuthService{response: dto.LoginResponse{
		User:  models.Usuario{Base: models.Base{ID: "admin"}, Rut: "11.111.111-1", Tipo: models.RolSuperAdmin},
		Token: "signed-token",
	}}

	resp := postLogin(t, svc, `{"rut":"11.111.111-1","password":"123456"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, "signed-token", body.Data.Token)
	require.Equal(t, "admin", body.Data.User.ID)
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	resp := postLogin(t, &mockAuthService{err: service.ErrCredencialesInvalidas}, `{"rut":"1-1","password":"wrong1"}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginHandlerDisabledAccount(t *testing.T) {
	resp := postLogin(t, &mockAuthService{err: service.ErrUsuarioDesactivado}, `{"rut":"1-1","password":"123456"}`)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestLoginHandlerMalformedBody(t *testing.T) {
	resp := postLogin(t, &mockAuthService{}, `{`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
