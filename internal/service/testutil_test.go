package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Sede{},
		&models.Sala{},
		&models.Perfil{},
		&models.Permiso{},
		&models.PerfilPermiso{},
		&models.Usuario{},
		&models.Clase{},
		&models.Inscripcion{},
		&models.Marcaje{},
		&models.Dispositivo{},
		&models.IncidenciaDispositivo{},
		&models.HistorialDispositivo{},
		&models.ReporteError{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	return db
}
