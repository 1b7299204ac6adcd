package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/auth"
	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

var (
	// ErrCredencialesInvalidas indicates an unknown RUT or a wrong password.
	ErrCredencialesInvalidas = errors.New("invalid credentials")
	// ErrUsuarioDesactivado indicates the account exists but is disabled.
	ErrUsuarioDesactivado = errors.New("account disabled")
)

// AuthService verifies credentials and mints session tokens.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	usuarios  repository.UsuarioRepository
	validator *validator.Validate
	secret    string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService builds the authentication service.
func NewAuthService(usuarios repository.UsuarioRepository, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		usuarios:  usuarios,
		validator: validate,
		secret:    secret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	usuario, err := s.usuarios.GetByRut(ctx, payload.Rut)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrCredencialesInvalidas
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrCredencialesInvalidas
	}

	if !usuario.Activo {
		return dto.LoginResponse{}, ErrUsuarioDesactivado
	}

	token, err := auth.Issue(usuario.ID, usuario.Tipo, s.secret, s.tokenTTL)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("usuario_id", usuario.ID).Str("tipo", usuario.Tipo).Msg("login succeeded")

	return dto.LoginResponse{User: usuario, Token: token}, nil
}
