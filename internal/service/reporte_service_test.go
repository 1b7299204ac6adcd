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

func setupReporteService(t *testing.T) (*gorm.DB, ReporteService) {
	t.Helper()

	db := newTestDB(t, "reporte")
	validate := validator.New(validator.WithRequiredStructEnabled())

	service := NewReporteService(repository.NewReporteRepository(db), validate, testLogger())

	return db, service
}

func TestReporteCreateSanitizesComment(t *testing.T) {
	db, service := setupReporteService(t)

	require.NoError(t, db.Create(&models.Usuario{
		Base: models.Base{ID: "profe"}, Rut: "12-3", Nombre: "Profesor", Password: "x", Tipo: models.RolProfesor, Activo: true,
	}).Error)

	reporte, err := service.Create(context.Background(), dto.ReporteCreateRequest{
		Comentario: `<script>alert("x")</script>La tablet no enciende`,
	}, Actor{ID: "profe", Tipo: models.RolProfesor})
	require.NoError(t, err)
	require.Equal(t, "La tablet no enciende", reporte.Comentario)
	require.Equal(t, "profe", reporte.ProfesorID)
	require.Equal(t, "pendiente", reporte.Estado)
}

func TestReporteCreateRequiresComment(t *testing.T) {
	_, service := setupReporteService(t)

	_, err := service.Create(context.Background(), dto.ReporteCreateRequest{}, Actor{ID: "profe"})
	require.Error(t, err)
}
