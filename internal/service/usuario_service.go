package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

var (
	// ErrUsuarioNotFound indicates the account does not exist.
	ErrUsuarioNotFound = errors.New("usuario not found")
	// ErrTipoInvalido indicates an unknown account role.
	ErrTipoInvalido = errors.New("invalid user role")
)

// UsuarioService exposes account administration use cases.
type UsuarioService interface {
	List(ctx context.Context, tipo string) ([]models.Usuario, error)
	Create(ctx context.Context, payload dto.UsuarioCreateRequest) (models.Usuario, error)
	Update(ctx context.Context, id string, payload dto.UsuarioUpdateRequest) (models.Usuario, error)
}

type usuarioService struct {
	usuarios  repository.UsuarioRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUsuarioService builds the account service.
func NewUsuarioService(usuarios repository.UsuarioRepository, validate *validator.Validate, logger zerolog.Logger) UsuarioService {
	return &usuarioService{
		usuarios:  usuarios,
		validator: validate,
		logger:    logger.With().Str("component", "usuario_service").Logger(),
	}
}

func (s *usuarioService) List(ctx context.Context, tipo string) ([]models.Usuario, error) {
	normalized := strings.ToUpper(strings.TrimSpace(tipo))
	if normalized != "" && !roleValido(normalized) {
		normalized = ""
	}

	return s.usuarios.List(ctx, normalized)
}

func (s *usuarioService) Create(ctx context.Context, payload dto.UsuarioCreateRequest) (models.Usuario, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Usuario{}, err
	}

	if !roleValido(payload.Tipo) {
		return models.Usuario{}, ErrTipoInvalido
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Usuario{}, err
	}

	timezone := payload.Timezone
	if timezone == "" {
		timezone = "America/Santiago"
	}

	activo := true
	if payload.Activo != nil {
		activo = *payload.Activo
	}

	usuario := models.Usuario{
		Rut:      payload.Rut,
		Nombre:   payload.Nombre,
		Email:    payload.Email,
		Password: string(hashed),
		Tipo:     payload.Tipo,
		PerfilID: payload.PerfilID,
		SedeID:   payload.SedeID,
		Timezone: timezone,
		Activo:   activo,
	}

	if err := s.usuarios.Create(ctx, &usuario); err != nil {
		return models.Usuario{}, err
	}

	s.logger.Info().Str("usuario_id", usuario.ID).Str("tipo", usuario.Tipo).Msg("usuario created")

	return s.usuarios.GetByID(ctx, usuario.ID)
}

func (s *usuarioService) Update(ctx context.Context, id string, payload dto.UsuarioUpdateRequest) (models.Usuario, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Usuario{}, err
	}

	usuario, err := s.usuarios.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Usuario{}, ErrUsuarioNotFound
		}
		return models.Usuario{}, err
	}

	if payload.Rut != nil {
		usuario.Rut = *payload.Rut
	}
	if payload.Nombre != nil {
		usuario.Nombre = *payload.Nombre
	}
	if payload.Email != nil {
		usuario.Email = payload.Email
	}
	if payload.Tipo != nil {
		if !roleValido(*payload.Tipo) {
			return models.Usuario{}, ErrTipoInvalido
		}
		usuario.Tipo = *payload.Tipo
	}
	if payload.PerfilID != nil {
		usuario.PerfilID = payload.PerfilID
	}
	if payload.SedeID != nil {
		usuario.SedeID = payload.SedeID
	}
	if payload.Timezone != nil {
		usuario.Timezone = *payload.Timezone
	}
	if payload.Activo != nil {
		usuario.Activo = *payload.Activo
	}
	if payload.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.Usuario{}, err
		}
		usuario.Password = string(hashed)
	}

	if err := s.usuarios.Update(ctx, &usuario); err != nil {
		return models.Usuario{}, err
	}

	s.logger.Info().Str("usuario_id", usuario.ID).Msg("usuario updated")

	return s.usuarios.GetByID(ctx, usuario.ID)
}

func roleValido(tipo string) bool {
	for _, role := range models.ValidRoles {
		if tipo == role {
			return true
		}
	}
	return false
}
