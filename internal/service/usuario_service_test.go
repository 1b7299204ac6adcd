package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

func setupUsuarioService(t *testing.T) (*gorm.DB, UsuarioService) {
	t.Helper()

	db := newTestDB(t, "usuario")
	validate := validator.New(validator.WithRequiredStructEnabled())

	service := NewUsuarioService(repository.NewUsuarioRepository(db), validate, testLogger())

	return db, service
}

func TestUsuarioCreateHashesPassword(t *testing.T) {
	db, service := setupUsuarioService(t)

	usuario, err := service.Create(context.Background(), dto.UsuarioCreateRequest{
		Rut:      "15.555.555-5",
		Nombre:   "Nueva Cuenta",
		Password: "secreta",
		Tipo:     models.RolProfesor,
	})
	require.NoError(t, err)
	require.Equal(t, "America/Santiago", usuario.Timezone)
	require.True(t, usuario.Activo)

	var stored models.Usuario
	require.NoError(t, db.First(&stored, "id = ?", usuario.ID).Error)
	require.NotEqual(t, "secreta", stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secreta")))
}

func TestUsuarioCreateRejectsUnknownRole(t *testing.T) {
	_, service := setupUsuarioService(t)

	_, err := service.Create(context.Background(), dto.UsuarioCreateRequest{
		Rut:      "15.555.555-5",
		Nombre:   "Nueva Cuenta",
		Password: "secreta",
		Tipo:     "DIRECTOR",
	})
	require.ErrorIs(t, err, ErrTipoInvalido)
}

func TestUsuarioListFiltersByTipo(t *testing.T) {
	db, service := setupUsuarioService(t)

	usuarios := []models.Usuario{
		{Base: models.Base{ID: "p1"}, Rut: "1-1", Nombre: "Profe", Password: "x", Tipo: models.RolProfesor, Activo: true},
		{Base: models.Base{ID: "a1"}, Rut: "2-2", Nombre: "Alumno", Password: "x", Tipo: models.RolAlumno, Activo: true},
	}
	for i := range usuarios {
		require.NoError(t, db.Create(&usuarios[i]).Error)
	}

	profesores, err := service.List(context.Background(), "profesor")
	require.NoError(t, err)
	require.Len(t, profesores, 1)
	require.Equal(t, "p1", profesores[0].ID)

	todos, err := service.List(context.Background(), "gerente")
	require.NoError(t, err)
	require.Len(t, todos, 2)
}

func TestUsuarioUpdatePartial(t *testing.T) {
	db, service := setupUsuarioService(t)

	require.NoError(t, db.Create(&models.Usuario{
		Base: models.Base{ID: "u1"}, Rut: "1-1", Nombre: "Antes", Password: "x", Tipo: models.RolProfesor, Activo: true,
	}).Error)

	nombre := "Despues"
	activo := false
	usuario, err := service.Update(context.Background(), "u1", dto.UsuarioUpdateRequest{Nombre: &nombre, Activo: &activo})
	require.NoError(t, err)
	require.Equal(t, "Despues", usuario.Nombre)
	require.False(t, usuario.Activo)
	require.Equal(t, "1-1", usuario.Rut)
}

func TestUsuarioUpdateNotFound(t *testing.T) {
	_, service := setupUsuarioService(t)

	nombre := "Nadie"
	_, err := service.Update(context.Background(), "missing", dto.UsuarioUpdateRequest{Nombre: &nombre})
	require.ErrorIs(t, err, ErrUsuarioNotFound)
}
