package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

func setupAuditoriaService(t *testing.T) (*gorm.DB, AuditoriaService) {
	t.Helper()

	db := newTestDB(t, "auditoria")
	service := NewAuditoriaService(repository.NewAuditLogRepository(db), repository.NewUsuarioRepository(db), testLogger())

	return db, service
}

func seedAuditoriaFixture(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.Perfil{
		Base: models.Base{ID: "perfil-auditor"}, Nombre: "Auditor", Permisos: `["ver_auditoria"]`,
	}).Error)
	require.NoError(t, db.Create(&models.Perfil{
		Base: models.Base{ID: "perfil-basico"}, Nombre: "Basico", Permisos: `["ver_dashboard"]`,
	}).Error)

	auditorPerfil := "perfil-auditor"
	basicoPerfil := "perfil-basico"
	usuarios := []models.Usuario{
		{Base: models.Base{ID: "auditor"}, Rut: "1-1", Nombre: "Auditor", Password: "x", Tipo: models.RolSoporte, PerfilID: &auditorPerfil, Activo: true},
		{Base: models.Base{ID: "basico"}, Rut: "2-2", Nombre: "Basico", Password: "x", Tipo: models.RolVisualizador, PerfilID: &basicoPerfil, Activo: true},
		{Base: models.Base{ID: "root"}, Rut: "3-3", Nombre: "Root", Password: "x", Tipo: models.RolSuperAdmin, Activo: true},
	}
	for i := range usuarios {
		require.NoError(t, db.Create(&usuarios[i]).Error)
	}

	entries := []models.AuditLog{
		{ActorID: "auditor", Action: "UPDATE", Entity: "Marcaje", EntityID: "m1", Before: datatypes.JSONMap{"estado": "AUSENTE"}, After: datatypes.JSONMap{"estado": "PRESENTE"}},
		{ActorID: "root", Action: "UPDATE", Entity: "Marcaje", EntityID: "m2", Before: datatypes.JSONMap{"estado": "PRESENTE"}, After: datatypes.JSONMap{"estado": "TARDANZA"}},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}
}

func TestAuditoriaListRequiresPermission(t *testing.T) {
	db, service := setupAuditoriaService(t)
	seedAuditoriaFixture(t, db)

	_, _, err := service.List(context.Background(), repository.AuditLogFilter{}, Actor{ID: "basico"})
	require.ErrorIs(t, err, ErrPermisoDenegado)
}

func TestAuditoriaListUnknownActor(t *testing.T) {
	db, service := setupAuditoriaService(t)
	seedAuditoriaFixture(t, db)

	_, _, err := service.List(context.Background(), repository.AuditLogFilter{}, Actor{ID: "ghost"})
	require.ErrorIs(t, err, ErrActorDesconocido)
}

func TestAuditoriaListWithPermission(t *testing.T) {
	db, service := setupAuditoriaService(t)
	seedAuditoriaFixture(t, db)

	logs, total, err := service.List(context.Background(), repository.AuditLogFilter{}, Actor{ID: "auditor"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
}

func TestAuditoriaListSuperAdminBypass(t *testing.T) {
	db, service := setupAuditoriaService(t)
	seedAuditoriaFixture(t, db)

	logs, total, err := service.List(context.Background(), repository.AuditLogFilter{ActorID: "root"}, Actor{ID: "root"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	require.Equal(t, "m2", logs[0].EntityID)
}
