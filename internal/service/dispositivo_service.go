package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/events"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

var (
	// ErrDispositivoNotFound indicates the device does not exist.
	ErrDispositivoNotFound = errors.New("dispositivo not found")
	// ErrEstadoConexionInvalido indicates an unknown connection state.
	ErrEstadoConexionInvalido = errors.New("invalid connection state")
)

// DispositivoService exposes device monitoring use cases.
type DispositivoService interface {
	List(ctx context.Context, filter repository.DispositivoFilter) ([]models.Dispositivo, error)
	Heartbeat(ctx context.Context, id string, payload dto.HeartbeatRequest) (models.Dispositivo, error)
	Historial(ctx context.Context, id string) ([]models.HistorialDispositivo, error)
}

type dispositivoService struct {
	dispositivos repository.DispositivoRepository
	incidencias  repository.IncidenciaRepository
	publisher    *events.Publisher
	validator    *validator.Validate
	logger       zerolog.Logger
	now          func() time.Time
}

// NewDispositivoService builds the device service.
func NewDispositivoService(dispositivos repository.DispositivoRepository, incidencias repository.IncidenciaRepository, publisher *events.Publisher, validate *validator.Validate, logger zerolog.Logger) DispositivoService {
	return &dispositivoService{
		dispositivos: dispositivos,
		incidencias:  incidencias,
		publisher:    publisher,
		validator:    validate,
		logger:       logger.With().Str("component", "dispositivo_service").Logger(),
		now:          time.Now,
	}
}

func (s *dispositivoService) List(ctx context.Context, filter repository.DispositivoFilter) ([]models.Dispositivo, error) {
	return s.dispositivos.List(ctx, filter)
}

// Heartbeat applies a device status report. A connection-state transition
// appends a history row, and a transition to desconectado opens a pending
// incident with the device's current location snapshotted.
func (s *dispositivoService) Heartbeat(ctx context.Context, id string, payload dto.HeartbeatRequest) (models.Dispositivo, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Dispositivo{}, err
	}

	if !models.EstadoConexionValido(payload.EstadoConexion) {
		return models.Dispositivo{}, ErrEstadoConexionInvalido
	}

	dispositivo, err := s.dispositivos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Dispositivo{}, ErrDispositivoNotFound
		}
		return models.Dispositivo{}, err
	}

	anterior := dispositivo.EstadoConexion

	ahora := s.now()
	dispositivo.EstadoConexion = payload.EstadoConexion
	dispositivo.UltimaConexion = &ahora
	if payload.Bateria != nil {
		dispositivo.Bateria = payload.Bateria
	}
	if payload.VersionApp != nil {
		dispositivo.VersionApp = payload.VersionApp
	}

	if err := s.dispositivos.Update(ctx, &dispositivo); err != nil {
		return models.Dispositivo{}, err
	}

	if anterior != dispositivo.EstadoConexion {
		if err := s.registrarTransicion(ctx, dispositivo, anterior); err != nil {
			return models.Dispositivo{}, err
		}
	}

	return dispositivo, nil
}

func (s *dispositivoService) registrarTransicion(ctx context.Context, dispositivo models.Dispositivo, anterior string) error {
	historial := models.HistorialDispositivo{
		DispositivoID:  dispositivo.ID,
		EstadoAnterior: anterior,
		EstadoNuevo:    dispositivo.EstadoConexion,
		Bateria:        dispositivo.Bateria,
	}
	if err := s.dispositivos.AppendHistorial(ctx, &historial); err != nil {
		return err
	}

	s.publisher.Publish(events.Event{
		Subject:  events.SubjectDispositivoEstado,
		EntityID: dispositivo.ID,
		Payload: map[string]interface{}{
			"estadoAnterior": anterior,
			"estadoNuevo":    dispositivo.EstadoConexion,
		},
	})

	if dispositivo.EstadoConexion != models.DispositivoDesconectado {
		return nil
	}

	descripcion := "Dispositivo sin conexion detectado por heartbeat"
	incidencia := models.IncidenciaDispositivo{
		DispositivoID:  dispositivo.ID,
		TipoIncidencia: "desconexion",
		Descripcion:    &descripcion,
	}
	if dispositivo.Sede != nil {
		incidencia.SedeOriginal = &dispositivo.Sede.Nombre
	}
	if dispositivo.Sala != nil {
		incidencia.SalaOriginal = &dispositivo.Sala.Nombre
	}

	if err := s.incidencias.Create(ctx, &incidencia); err != nil {
		return err
	}

	s.publisher.Publish(events.Event{
		Subject:  events.SubjectIncidenciaAbierta,
		EntityID: incidencia.ID,
		Payload: map[string]interface{}{
			"dispositivoId": dispositivo.ID,
			"serialNumber":  dispositivo.SerialNumber,
		},
	})

	s.logger.Warn().
		Str("dispositivo_id", dispositivo.ID).
		Str("serial", dispositivo.SerialNumber).
		Msg("dispositivo desconectado, incidencia abierta")

	return nil
}

func (s *dispositivoService) Historial(ctx context.Context, id string) ([]models.HistorialDispositivo, error) {
	if _, err := s.dispositivos.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDispositivoNotFound
		}
		return nil, err
	}

	return s.dispositivos.ListHistorial(ctx, id)
}
