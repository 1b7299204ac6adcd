package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

func setupDispositivoService(t *testing.T) (*gorm.DB, DispositivoService) {
	t.Helper()

	db := newTestDB(t, "dispositivo")
	validate := validator.New(validator.WithRequiredStructEnabled())

	service := NewDispositivoService(
		repository.NewDispositivoRepository(db),
		repository.NewIncidenciaRepository(db),
		nil,
		validate,
		testLogger(),
	)

	return db, service
}

func seedDispositivoFixture(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.Sede{Base: models.Base{ID: "sede-1"}, Codigo: "S1", Nombre: "Sede Central", Timezone: "America/Santiago"}).Error)
	require.NoError(t, db.Create(&models.Sala{Base: models.Base{ID: "sala-1"}, Codigo: "A1", Nombre: "Sala Norte", SedeID: "sede-1"}).Error)

	salaID := "sala-1"
	sedeID := "sede-1"
	require.NoError(t, db.Create(&models.Dispositivo{
		Base:           models.Base{ID: "disp-1"},
		SerialNumber:   "TB-1",
		Tipo:           models.DispositivoTablet,
		SalaID:         &salaID,
		SedeID:         &sedeID,
		EstadoConexion: models.DispositivoConectado,
	}).Error)
}

func TestHeartbeatInvalidEstado(t *testing.T) {
	db, service := setupDispositivoService(t)
	seedDispositivoFixture(t, db)

	_, err := service.Heartbeat(context.Background(), "disp-1", dto.HeartbeatRequest{EstadoConexion: "apagado"})
	require.ErrorIs(t, err, ErrEstadoConexionInvalido)
}

func TestHeartbeatUnknownDevice(t *testing.T) {
	db, service := setupDispositivoService(t)
	seedDispositivoFixture(t, db)

	_, err := service.Heartbeat(context.Background(), "missing", dto.HeartbeatRequest{EstadoConexion: models.DispositivoConectado})
	require.ErrorIs(t, err, ErrDispositivoNotFound)
}

func TestHeartbeatWithoutTransitionSkipsHistory(t *testing.T) {
	db, service := setupDispositivoService(t)
	seedDispositivoFixture(t, db)

	bateria := 70
	dispositivo, err := service.Heartbeat(context.Background(), "disp-1", dto.HeartbeatRequest{
		EstadoConexion: models.DispositivoConectado,
		Bateria:        &bateria,
	})
	require.NoError(t, err)
	require.NotNil(t, dispositivo.Bateria)
	require.Equal(t, 70, *dispositivo.Bateria)
	require.NotNil(t, dispositivo.UltimaConexion)

	var historial int64
	require.NoError(t, db.Model(&models.HistorialDispositivo{}).Count(&historial).Error)
	require.Zero(t, historial)
}

func TestHeartbeatDisconnectOpensIncident(t *testing.T) {
	db, service := setupDispositivoService(t)
	seedDispositivoFixture(t, db)

	dispositivo, err := service.Heartbeat(context.Background(), "disp-1", dto.HeartbeatRequest{EstadoConexion: models.DispositivoDesconectado})
	require.NoError(t, err)
	require.Equal(t, models.DispositivoDesconectado, dispositivo.EstadoConexion)

	var historial []models.HistorialDispositivo
	require.NoError(t, db.Find(&historial).Error)
	require.Len(t, historial, 1)
	require.Equal(t, models.DispositivoConectado, historial[0].EstadoAnterior)
	require.Equal(t, models.DispositivoDesconectado, historial[0].EstadoNuevo)

	var incidencias []models.IncidenciaDispositivo
	require.NoError(t, db.Find(&incidencias).Error)
	require.Len(t, incidencias, 1)
	require.Equal(t, "desconexion", incidencias[0].TipoIncidencia)
	require.Equal(t, models.ResolucionPendiente, incidencias[0].EstadoResolucion)
	require.NotNil(t, incidencias[0].SedeOriginal)
	require.Equal(t, "Sede Central", *incidencias[0].SedeOriginal)
	require.NotNil(t, incidencias[0].SalaOriginal)
	require.Equal(t, "Sala Norte", *incidencias[0].SalaOriginal)
}

func TestHeartbeatTransitionToWarningSkipsIncident(t *testing.T) {
	db, service := setupDispositivoService(t)
	seedDispositivoFixture(t, db)

	_, err := service.Heartbeat(context.Background(), "disp-1", dto.HeartbeatRequest{EstadoConexion: models.DispositivoAdvertencia})
	require.NoError(t, err)

	var historial int64
	require.NoError(t, db.Model(&models.HistorialDispositivo{}).Count(&historial).Error)
	require.Equal(t, int64(1), historial)

	var incidencias int64
	require.NoError(t, db.Model(&models.IncidenciaDispositivo{}).Count(&incidencias).Error)
	require.Zero(t, incidencias)
}

func TestHistorialUnknownDevice(t *testing.T) {
	db, service := setupDispositivoService(t)
	seedDispositivoFixture(t, db)

	_, err := service.Historial(context.Background(), "missing")
	require.ErrorIs(t, err, ErrDispositivoNotFound)
}
