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
	"github.com/gvclassroom/classroom-api/internal/repository"
	"github.com/gvclassroom/classroom-api/internal/service"
)

type mockIncidenciaService struct {
	incidencia models.IncidenciaDispositivo
	err        error
}

func (m *mockIncidenciaService) List(_ context.Context, _ repository.IncidenciaFilter) ([]models.IncidenciaDispositivo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []models.IncidenciaDispositivo{m.incidencia}, nil
}

func (m *mockIncidenciaService) Homologar(_ context.Context, _ string, _ dto.HomologarRequest) (models.IncidenciaDispositivo, error) {
	if m.err != nil {
		return models.IncidenciaDispositivo{}, m.err
	}
	return m.incidencia, nil
}

func postHomologar(t *testing.T, svc service.IncidenciaService, body string) *http.Response {
	t.Helper()

	app := fiber.New()
	handler.NewIncidenciaHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/incidencias-dispositivos"))

	req := httptest.NewRequest(http.MethodPost, "/api/incidencias-dispositivos/inc-1/homologar", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHomologarHandlerUnknownIncident(t *testing.T) {
	resp := postHomologar(t, &mockIncidenciaService{err: service.ErrIncidenciaNotFound}, `{"sedeId":"s1","salaId":"r1"}`)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHomologarHandlerUnknownLocation(t *testing.T) {
	resp := postHomologar(t, &mockIncidenciaService{err: service.ErrUbicacionNotFound}, `{"sedeId":"missing","salaId":"r1"}`)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHomologarHandlerAlreadyResolved(t *testing.T) {
	resp := postHomologar(t, &mockIncidenciaService{err: service.ErrIncidenciaResuelta}, `{"sedeId":"s1","salaId":"r1"}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestHomologarHandlerSuccess(t *testing.T) {
	sede := "Sede Central"
	sala := "Sala Norte"
	svc := &mockIncidenciaService{incidencia: models.IncidenciaDispositivo{
		Base:             models.Base{ID: "inc-1"},
		DispositivoID:    "disp-1",
		TipoIncidencia:   "desconexion",
		SedeHomologada:   &sede,
		SalaHomologada:   &sala,
		EstadoResolucion: models.ResolucionResuelto,
	}}

	resp := postHomologar(t, svc, `{"sedeId":"s1","salaId":"r1"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                         `json:"success"`
		Data    models.IncidenciaDispositivo `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, models.ResolucionResuelto, body.Data.EstadoResolucion)
	require.Equal(t, "Sede Central", *body.Data.SedeHomologada)
}

func TestIncidenciaListInvalidDate(t *testing.T) {
	app := fiber.New()
	handler.NewIncidenciaHandler(&mockIncidenciaService{}, zerolog.New(io.Discard)).Register(app.Group("/api/incidencias-dispositivos"))

	req := httptest.NewRequest(http.MethodGet, "/api/incidencias-dispositivos?desde=not-a-date", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
