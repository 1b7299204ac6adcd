package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/permission"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

// AuditoriaService exposes the audit trail to authorized staff.
type AuditoriaService interface {
	List(ctx context.Context, filter repository.AuditLogFilter, actor Actor) ([]models.AuditLog, int64, error)
}

type auditoriaService struct {
	audits   repository.AuditLogRepository
	usuarios repository.UsuarioRepository
	logger   zerolog.Logger
}

// NewAuditoriaService builds the audit trail service.
func NewAuditoriaService(audits repository.AuditLogRepository, usuarios repository.UsuarioRepository, logger zerolog.Logger) AuditoriaService {
	return &auditoriaService{
		audits:   audits,
		usuarios: usuarios,
		logger:   logger.With().Str("component", "auditoria_service").Logger(),
	}
}

func (s *auditoriaService) List(ctx context.Context, filter repository.AuditLogFilter, actor Actor) ([]models.AuditLog, int64, error) {
	editor, err := s.usuarios.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrActorDesconocido
		}
		return nil, 0, err
	}

	if editor.Tipo != models.RolSuperAdmin {
		if editor.Perfil == nil || !permission.ParseSet(editor.Perfil.Permisos).Allows(permission.VerAuditoria) {
			return nil, 0, ErrPermisoDenegado
		}
	}

	return s.audits.List(ctx, filter)
}
