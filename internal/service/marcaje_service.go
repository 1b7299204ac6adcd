package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/events"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/permission"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

var (
	// ErrMarcajeNotFound indicates the attendance record does not exist.
	ErrMarcajeNotFound = errors.New("marcaje not found")
	// ErrEstadoInvalido indicates a status value outside the closed set.
	ErrEstadoInvalido = errors.New("invalid attendance status")
	// ErrActorDesconocido indicates the authenticated account no longer exists.
	ErrActorDesconocido = errors.New("actor account not found")
	// ErrPermisoDenegado indicates the actor lacks the required permission.
	ErrPermisoDenegado = errors.New("permission denied")
)

// MarcajeService exposes attendance record use cases.
type MarcajeService interface {
	List(ctx context.Context, filter repository.MarcajeFilter) ([]models.Marcaje, error)
	Create(ctx context.Context, payload dto.MarcajeCreateRequest, actor Actor) (models.Marcaje, error)
	UpdateEstado(ctx context.Context, id string, payload dto.MarcajeUpdateRequest, actor Actor) (models.Marcaje, error)
}

type marcajeService struct {
	marcajes  repository.MarcajeRepository
	usuarios  repository.UsuarioRepository
	audits    repository.AuditLogRepository
	publisher *events.Publisher
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewMarcajeService builds the attendance service.
func NewMarcajeService(marcajes repository.MarcajeRepository, usuarios repository.UsuarioRepository, audits repository.AuditLogRepository, publisher *events.Publisher, validate *validator.Validate, logger zerolog.Logger) MarcajeService {
	return &marcajeService{
		marcajes:  marcajes,
		usuarios:  usuarios,
		audits:    audits,
		publisher: publisher,
		validator: validate,
		logger:    logger.With().Str("component", "marcaje_service").Logger(),
		now:       time.Now,
	}
}

func (s *marcajeService) List(ctx context.Context, filter repository.MarcajeFilter) ([]models.Marcaje, error) {
	return s.marcajes.List(ctx, filter)
}

func (s *marcajeService) Create(ctx context.Context, payload dto.MarcajeCreateRequest, actor Actor) (models.Marcaje, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Marcaje{}, err
	}

	if !models.EstadoMarcajeValido(payload.Estado) {
		return models.Marcaje{}, ErrEstadoInvalido
	}

	tipo := payload.TipoMarcaje
	if tipo == "" {
		tipo = models.MarcajeManual
	}

	marcaje := models.Marcaje{
		ClaseID:     payload.ClaseID,
		AlumnoID:    payload.AlumnoID,
		FechaHora:   s.now(),
		Estado:      payload.Estado,
		TipoMarcaje: tipo,
	}
	if actor.Authenticated() {
		marcaje.ModificadoPor = &actor.ID
	}

	if err := s.marcajes.Create(ctx, &marcaje); err != nil {
		return models.Marcaje{}, err
	}

	s.logger.Info().Str("marcaje_id", marcaje.ID).Str("estado", marcaje.Estado).Msg("marcaje created")

	return marcaje, nil
}

// UpdateEstado transitions a record's status: permission check, prior-state
// fetch, overwrite, then audit append. The update and the audit write are
// not atomic; the audit insert is always attempted after a successful
// update and its failure is surfaced to the caller, never dropped.
func (s *marcajeService) UpdateEstado(ctx context.Context, id string, payload dto.MarcajeUpdateRequest, actor Actor) (models.Marcaje, error) {
	if !models.EstadoMarcajeValido(payload.Estado) {
		return models.Marcaje{}, ErrEstadoInvalido
	}

	editor, err := s.usuarios.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Marcaje{}, ErrActorDesconocido
		}
		return models.Marcaje{}, err
	}

	if !s.puedeEditar(editor) {
		return models.Marcaje{}, ErrPermisoDenegado
	}

	anterior, err := s.marcajes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Marcaje{}, ErrMarcajeNotFound
		}
		return models.Marcaje{}, err
	}

	actualizado := anterior
	actualizado.Estado = payload.Estado
	actualizado.TipoMarcaje = models.MarcajeManual
	actualizado.ModificadoPor = &editor.ID

	if err := s.marcajes.Update(ctx, &actualizado); err != nil {
		return models.Marcaje{}, err
	}

	entry := models.AuditLog{
		ActorID:  editor.ID,
		Action:   "UPDATE",
		Entity:   "Marcaje",
		EntityID: id,
		Before:   snapshotMarcaje(anterior),
		After:    snapshotMarcajeEditado(actualizado, editor),
	}
	if err := s.audits.Create(ctx, &entry); err != nil {
		s.logger.Error().Err(err).Str("marcaje_id", id).Msg("audit write failed after marcaje update")
		return models.Marcaje{}, fmt.Errorf("audit write failed: %w", err)
	}

	s.publisher.Publish(events.Event{
		Subject:  events.SubjectMarcajeEditado,
		EntityID: id,
		Payload: map[string]interface{}{
			"estado":  actualizado.Estado,
			"actorId": editor.ID,
		},
	})

	s.logger.Info().
		Str("marcaje_id", id).
		Str("actor_id", editor.ID).
		Str("estado", actualizado.Estado).
		Msg("marcaje updated")

	return actualizado, nil
}

// puedeEditar applies the permission rules for attendance edits: the
// super-admin role bypasses the profile evaluator entirely; everyone else
// needs editar_asistencia in their profile's permission list.
func (s *marcajeService) puedeEditar(editor models.Usuario) bool {
	if editor.Tipo == models.RolSuperAdmin {
		return true
	}
	if editor.Perfil == nil {
		return false
	}
	return permission.ParseSet(editor.Perfil.Permisos).Allows(permission.EditarAsistencia)
}

func snapshotMarcaje(m models.Marcaje) datatypes.JSONMap {
	snapshot := datatypes.JSONMap{
		"id":          m.ID,
		"claseId":     m.ClaseID,
		"alumnoId":    m.AlumnoID,
		"estado":      m.Estado,
		"tipoMarcaje": m.TipoMarcaje,
		"fechaHora":   m.FechaHora,
	}
	if m.ModificadoPor != nil {
		snapshot["modificadoPor"] = *m.ModificadoPor
	}
	if m.Alumno != nil {
		snapshot["alumnoNombre"] = m.Alumno.Nombre
		snapshot["alumnoRut"] = m.Alumno.Rut
	}
	if m.Clase != nil {
		snapshot["claseAsignatura"] = m.Clase.Asignatura
	}
	return snapshot
}

func snapshotMarcajeEditado(m models.Marcaje, editor models.Usuario) datatypes.JSONMap {
	snapshot := snapshotMarcaje(m)
	snapshot["modificadoPor"] = editor.Nombre
	snapshot["modificadoPorId"] = editor.ID
	return snapshot
}
