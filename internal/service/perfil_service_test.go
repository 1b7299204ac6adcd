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

func setupPerfilService(t *testing.T) (*gorm.DB, PerfilService) {
	t.Helper()

	db := newTestDB(t, "perfil")
	validate := validator.New(validator.WithRequiredStructEnabled())

	service := NewPerfilService(repository.NewPerfilRepository(db), validate, testLogger())

	return db, service
}

func TestPerfilCreateRejectsMalformedPermisos(t *testing.T) {
	_, service := setupPerfilService(t)

	cases := []string{
		"not json",
		`{"ver_dashboard": true}`,
		`["ver_dashboard", 2]`,
		`[""]`,
	}
	for _, permisos := range cases {
		_, err := service.Create(context.Background(), dto.PerfilCreateRequest{Nombre: "Perfil", Permisos: permisos})
		require.ErrorIs(t, err, ErrPermisosInvalidos, "permisos: %s", permisos)
	}
}

func TestPerfilCreateSyncsJoinRows(t *testing.T) {
	db, service := setupPerfilService(t)

	require.NoError(t, db.Create(&models.Permiso{Base: models.Base{ID: "perm-1"}, Codigo: "ver_dashboard", Nombre: "Ver dashboard", Modulo: "dashboard"}).Error)
	require.NoError(t, db.Create(&models.Permiso{Base: models.Base{ID: "perm-2"}, Codigo: "editar_asistencia", Nombre: "Editar asistencia", Modulo: "marcajes"}).Error)

	perfil, err := service.Create(context.Background(), dto.PerfilCreateRequest{
		Nombre:   "Coordinador",
		Permisos: `["ver_dashboard","editar_asistencia","codigo_desconocido"]`,
	})
	require.NoError(t, err)

	var rows []models.PerfilPermiso
	require.NoError(t, db.Where("perfil_id = ?", perfil.ID).Find(&rows).Error)
	require.Len(t, rows, 2)
}

func TestPerfilUpdateNotFound(t *testing.T) {
	_, service := setupPerfilService(t)

	nombre := "Nuevo"
	_, err := service.Update(context.Background(), "missing", dto.PerfilUpdateRequest{Nombre: &nombre})
	require.ErrorIs(t, err, ErrPerfilNotFound)
}

func TestPerfilUpdateReplacesPermisos(t *testing.T) {
	db, service := setupPerfilService(t)

	require.NoError(t, db.Create(&models.Permiso{Base: models.Base{ID: "perm-1"}, Codigo: "ver_dashboard", Nombre: "Ver dashboard", Modulo: "dashboard"}).Error)
	require.NoError(t, db.Create(&models.Permiso{Base: models.Base{ID: "perm-2"}, Codigo: "ver_salas", Nombre: "Ver salas", Modulo: "sedes"}).Error)

	perfil, err := service.Create(context.Background(), dto.PerfilCreateRequest{Nombre: "Base", Permisos: `["ver_dashboard"]`})
	require.NoError(t, err)

	permisos := `["ver_salas"]`
	updated, err := service.Update(context.Background(), perfil.ID, dto.PerfilUpdateRequest{Permisos: &permisos})
	require.NoError(t, err)
	require.Equal(t, permisos, updated.Permisos)

	var rows []models.PerfilPermiso
	require.NoError(t, db.Where("perfil_id = ?", perfil.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, "perm-2", rows[0].PermisoID)
}
