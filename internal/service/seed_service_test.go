package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gvclassroom/classroom-api/internal/models"
)

func TestSeedDisabled(t *testing.T) {
	db := newTestDB(t, "seed_disabled")
	service := NewSeedService(db, false, "secret", testLogger())

	_, err := service.Run(context.Background(), "secret")
	require.ErrorIs(t, err, ErrSeedDisabled)
}

func TestSeedTokenGuard(t *testing.T) {
	db := newTestDB(t, "seed_token")
	service := NewSeedService(db, true, "secret", testLogger())

	_, err := service.Run(context.Background(), "wrong")
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	_, err = service.Run(context.Background(), "")
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedEmptyTokenNeverMatches(t *testing.T) {
	db := newTestDB(t, "seed_empty")
	service := NewSeedService(db, true, "", testLogger())

	_, err := service.Run(context.Background(), "")
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedProvisionsSuperAdmin(t *testing.T) {
	db := newTestDB(t, "seed_admin")
	service := NewSeedService(db, true, "secret", testLogger())

	summary, err := service.Run(context.Background(), "secret")
	require.NoError(t, err)
	require.Equal(t, 3, summary.Perfiles)
	require.Equal(t, 2, summary.Sedes)
	require.Equal(t, 4, summary.Salas)

	var admin models.Usuario
	require.NoError(t, db.First(&admin, "rut = ?", "11.111.111-1").Error)
	require.Equal(t, models.RolSuperAdmin, admin.Tipo)
	require.True(t, admin.Activo)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("123456")))

	var adminPerfil models.Perfil
	require.NoError(t, db.First(&adminPerfil, "id = ?", "perfil-admin").Error)
	require.Equal(t, `["*"]`, adminPerfil.Permisos)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t, "seed_idempotent")
	service := NewSeedService(db, true, "secret", testLogger())

	_, err := service.Run(context.Background(), "secret")
	require.NoError(t, err)
	_, err = service.Run(context.Background(), "secret")
	require.NoError(t, err)

	var usuarios int64
	require.NoError(t, db.Model(&models.Usuario{}).Count(&usuarios).Error)
	require.Equal(t, int64(5), usuarios)

	var joinRows int64
	require.NoError(t, db.Model(&models.PerfilPermiso{}).Count(&joinRows).Error)
	require.Equal(t, int64(11), joinRows)
}
