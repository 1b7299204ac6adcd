package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/config"
	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

func setupIncidenciaService(t *testing.T, policy string) (*gorm.DB, IncidenciaService) {
	t.Helper()

	db := newTestDB(t, "incidencia")
	validate := validator.New(validator.WithRequiredStructEnabled())

	service := NewIncidenciaService(
		repository.NewIncidenciaRepository(db),
		repository.NewSedeRepository(db),
		policy,
		validate,
		testLogger(),
	)

	return db, service
}

func seedIncidenciaFixture(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.Sede{Base: models.Base{ID: "sede-1"}, Codigo: "S1", Nombre: "Sede Central", Timezone: "America/Santiago"}).Error)
	require.NoError(t, db.Create(&models.Sala{Base: models.Base{ID: "sala-1"}, Codigo: "A1", Nombre: "Sala Norte", SedeID: "sede-1"}).Error)
	require.NoError(t, db.Create(&models.Dispositivo{
		Base:           models.Base{ID: "disp-1"},
		SerialNumber:   "TB-1",
		Tipo:           models.DispositivoTablet,
		EstadoConexion: models.DispositivoDesconectado,
	}).Error)

	sedeOriginal := "Sede Antigua"
	require.NoError(t, db.Create(&models.IncidenciaDispositivo{
		Base:             models.Base{ID: "inc-1"},
		DispositivoID:    "disp-1",
		TipoIncidencia:   "desconexion",
		SedeOriginal:     &sedeOriginal,
		EstadoResolucion: models.ResolucionPendiente,
	}).Error)
}

func TestHomologarUnknownLocationLeavesIncidentPending(t *testing.T) {
	db, service := setupIncidenciaService(t, config.RehomologarAllow)
	seedIncidenciaFixture(t, db)

	_, err := service.Homologar(context.Background(), "inc-1", dto.HomologarRequest{SedeID: "missing", SalaID: "sala-1"})
	require.ErrorIs(t, err, ErrUbicacionNotFound)

	_, err = service.Homologar(context.Background(), "inc-1", dto.HomologarRequest{SedeID: "sede-1", SalaID: "missing"})
	require.ErrorIs(t, err, ErrUbicacionNotFound)

	var stored models.IncidenciaDispositivo
	require.NoError(t, db.First(&stored, "id = ?", "inc-1").Error)
	require.Equal(t, models.ResolucionPendiente, stored.EstadoResolucion)
	require.Nil(t, stored.SedeHomologada)
}

func TestHomologarUnknownIncident(t *testing.T) {
	db, service := setupIncidenciaService(t, config.RehomologarAllow)
	seedIncidenciaFixture(t, db)

	_, err := service.Homologar(context.Background(), "missing", dto.HomologarRequest{SedeID: "sede-1", SalaID: "sala-1"})
	require.ErrorIs(t, err, ErrIncidenciaNotFound)
}

func TestHomologarSnapshotsResolvedLocation(t *testing.T) {
	db, service := setupIncidenciaService(t, config.RehomologarAllow)
	seedIncidenciaFixture(t, db)

	incidencia, err := service.Homologar(context.Background(), "inc-1", dto.HomologarRequest{SedeID: "sede-1", SalaID: "sala-1"})
	require.NoError(t, err)
	require.Equal(t, models.ResolucionResuelto, incidencia.EstadoResolucion)
	require.NotNil(t, incidencia.SedeHomologada)
	require.Equal(t, "Sede Central", *incidencia.SedeHomologada)
	require.NotNil(t, incidencia.SalaHomologada)
	require.Equal(t, "Sala Norte", *incidencia.SalaHomologada)

	var stored models.IncidenciaDispositivo
	require.NoError(t, db.First(&stored, "id = ?", "inc-1").Error)
	require.NotNil(t, stored.SedeOriginal)
	require.Equal(t, "Sede Antigua", *stored.SedeOriginal)
}

func TestHomologarRepeatPolicyReject(t *testing.T) {
	db, service := setupIncidenciaService(t, config.RehomologarReject)
	seedIncidenciaFixture(t, db)

	_, err := service.Homologar(context.Background(), "inc-1", dto.HomologarRequest{SedeID: "sede-1", SalaID: "sala-1"})
	require.NoError(t, err)

	_, err = service.Homologar(context.Background(), "inc-1", dto.HomologarRequest{SedeID: "sede-1", SalaID: "sala-1"})
	require.ErrorIs(t, err, ErrIncidenciaResuelta)
}

func TestHomologarRepeatPolicyIdempotent(t *testing.T) {
	db, service := setupIncidenciaService(t, config.RehomologarIdempotent)
	seedIncidenciaFixture(t, db)

	first, err := service.Homologar(context.Background(), "inc-1", dto.HomologarRequest{SedeID: "sede-1", SalaID: "sala-1"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Sede{Base: models.Base{ID: "sede-2"}, Codigo: "S2", Nombre: "Sede Sur", Timezone: "America/Santiago"}).Error)
	require.NoError(t, db.Create(&models.Sala{Base: models.Base{ID: "sala-2"}, Codigo: "B1", Nombre: "Sala Sur", SedeID: "sede-2"}).Error)

	second, err := service.Homologar(context.Background(), "inc-1", dto.HomologarRequest{SedeID: "sede-2", SalaID: "sala-2"})
	require.NoError(t, err)
	require.Equal(t, *first.SedeHomologada, *second.SedeHomologada)
	require.Equal(t, *first.SalaHomologada, *second.SalaHomologada)
}

func TestHomologarRepeatPolicyAllowOverwrites(t *testing.T) {
	db, service := setupIncidenciaService(t, config.RehomologarAllow)
	seedIncidenciaFixture(t, db)

	_, err := service.Homologar(context.Background(), "inc-1", dto.HomologarRequest{SedeID: "sede-1", SalaID: "sala-1"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Sede{Base: models.Base{ID: "sede-2"}, Codigo: "S2", Nombre: "Sede Sur", Timezone: "America/Santiago"}).Error)
	require.NoError(t, db.Create(&models.Sala{Base: models.Base{ID: "sala-2"}, Codigo: "B1", Nombre: "Sala Sur", SedeID: "sede-2"}).Error)

	second, err := service.Homologar(context.Background(), "inc-1", dto.HomologarRequest{SedeID: "sede-2", SalaID: "sala-2"})
	require.NoError(t, err)
	require.Equal(t, "Sede Sur", *second.SedeHomologada)
	require.Equal(t, "Sala Sur", *second.SalaHomologada)
}
