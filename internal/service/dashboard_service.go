package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

const statsCacheKey = "dashboard:stats"

// DashboardService produces the landing-page aggregates.
type DashboardService interface {
	Stats(ctx context.Context) (dto.DashboardStats, error)
	ClasesRecientes(ctx context.Context) ([]dto.ClaseReciente, error)
}

type dashboardService struct {
	usuarios     repository.UsuarioRepository
	dispositivos repository.DispositivoRepository
	clases       repository.ClaseRepository
	incidencias  repository.IncidenciaRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(usuarios repository.UsuarioRepository, dispositivos repository.DispositivoRepository, clases repository.ClaseRepository, incidencias repository.IncidenciaRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		usuarios:     usuarios,
		dispositivos: dispositivos,
		clases:       clases,
		incidencias:  incidencias,
		cache:        cache,
		cacheTTL:     ttl,
		logger:       logger.With().Str("component", "dashboard_service").Logger(),
		now:          time.Now,
	}
}

// Stats serves the counters through a cache-aside redis entry. Cache
// failures degrade to a direct read, never to an error.
func (s *dashboardService) Stats(ctx context.Context) (dto.DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats dto.DashboardStats
			if unmarshalErr := json.Unmarshal([]byte(cached), &stats); unmarshalErr == nil {
				s.logger.Debug().Msg("dashboard stats cache hit")
				return stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	stats, err := s.buildStats(ctx)
	if err != nil {
		return dto.DashboardStats{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return stats, nil
}

func (s *dashboardService) buildStats(ctx context.Context) (dto.DashboardStats, error) {
	var stats dto.DashboardStats
	var err error

	if stats.TotalUsuarios, err = s.usuarios.Count(ctx); err != nil {
		return dto.DashboardStats{}, err
	}
	if stats.UsuariosActivos, err = s.usuarios.CountActivos(ctx); err != nil {
		return dto.DashboardStats{}, err
	}
	if stats.TotalDispositivos, err = s.dispositivos.Count(ctx); err != nil {
		return dto.DashboardStats{}, err
	}
	if stats.DispositivosConectados, err = s.dispositivos.CountByEstado(ctx, models.DispositivoConectado); err != nil {
		return dto.DashboardStats{}, err
	}

	hoy := s.now().Truncate(24 * time.Hour)
	if stats.ClasesHoy, err = s.clases.CountByDateRange(ctx, hoy, hoy.Add(24*time.Hour)); err != nil {
		return dto.DashboardStats{}, err
	}
	if stats.IncidenciasPendientes, err = s.incidencias.CountByResolucion(ctx, models.ResolucionPendiente); err != nil {
		return dto.DashboardStats{}, err
	}

	return stats, nil
}

func (s *dashboardService) ClasesRecientes(ctx context.Context) ([]dto.ClaseReciente, error) {
	clases, err := s.clases.ListRecent(ctx, 5)
	if err != nil {
		return nil, err
	}

	recientes := make([]dto.ClaseReciente, 0, len(clases))
	for _, clase := range clases {
		item := dto.ClaseReciente{
			ID:         clase.ID,
			Asignatura: clase.Asignatura,
			Profesor:   "Sin profesor",
			Sala:       "Sin sala",
			HoraInicio: clase.HoraInicio,
			HoraFin:    clase.HoraFin,
			Estado:     clase.Estado,
		}
		if clase.Profesor != nil {
			item.Profesor = clase.Profesor.Nombre
		}
		if clase.Sala != nil {
			item.Sala = clase.Sala.Nombre
		}
		recientes = append(recientes, item)
	}

	return recientes, nil
}
