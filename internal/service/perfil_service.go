package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/dto"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/permission"
	"github.com/gvclassroom/classroom-api/internal/repository"
)

var (
	// ErrPerfilNotFound indicates the profile does not exist.
	ErrPerfilNotFound = errors.New("perfil not found")
	// ErrPermisosInvalidos indicates the permisos payload is not a JSON string array.
	ErrPermisosInvalidos = errors.New("permisos must be a JSON array of permission codes")
)

const permisosSchemaJSON = `{
	"type": "array",
	"items": {"type": "string", "minLength": 1}
}`

// PerfilService exposes permission profile use cases. The serialized
// permisos column stays the representation consulted at decision time; the
// normalized join rows are rewritten on every change so the two cannot
// drift for recognized codes.
type PerfilService interface {
	List(ctx context.Context) ([]models.Perfil, error)
	Create(ctx context.Context, payload dto.PerfilCreateRequest) (models.Perfil, error)
	Update(ctx context.Context, id string, payload dto.PerfilUpdateRequest) (models.Perfil, error)
}

type perfilService struct {
	perfiles  repository.PerfilRepository
	schema    *jsonschema.Schema
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPerfilService builds the profile service.
func NewPerfilService(perfiles repository.PerfilRepository, validate *validator.Validate, logger zerolog.Logger) PerfilService {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("permisos.json", strings.NewReader(permisosSchemaJSON)); err != nil {
		panic(err)
	}

	return &perfilService{
		perfiles:  perfiles,
		schema:    compiler.MustCompile("permisos.json"),
		validator: validate,
		logger:    logger.With().Str("component", "perfil_service").Logger(),
	}
}

func (s *perfilService) List(ctx context.Context) ([]models.Perfil, error) {
	return s.perfiles.List(ctx)
}

func (s *perfilService) Create(ctx context.Context, payload dto.PerfilCreateRequest) (models.Perfil, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Perfil{}, err
	}

	if err := s.validatePermisos(payload.Permisos); err != nil {
		return models.Perfil{}, err
	}

	perfil := models.Perfil{
		Nombre:      payload.Nombre,
		Descripcion: payload.Descripcion,
		Permisos:    payload.Permisos,
	}

	if err := s.perfiles.Create(ctx, &perfil); err != nil {
		return models.Perfil{}, err
	}

	if err := s.syncPermisoRows(ctx, perfil); err != nil {
		s.logger.Warn().Err(err).Str("perfil_id", perfil.ID).Msg("failed to sync permission join rows")
	}

	s.logger.Info().Str("perfil_id", perfil.ID).Str("nombre", perfil.Nombre).Msg("perfil created")

	return perfil, nil
}

func (s *perfilService) Update(ctx context.Context, id string, payload dto.PerfilUpdateRequest) (models.Perfil, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Perfil{}, err
	}

	perfil, err := s.perfiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Perfil{}, ErrPerfilNotFound
		}
		return models.Perfil{}, err
	}

	if payload.Nombre != nil {
		perfil.Nombre = *payload.Nombre
	}
	if payload.Descripcion != nil {
		perfil.Descripcion = payload.Descripcion
	}
	if payload.Permisos != nil {
		if err := s.validatePermisos(*payload.Permisos); err != nil {
			return models.Perfil{}, err
		}
		perfil.Permisos = *payload.Permisos
	}

	if err := s.perfiles.Update(ctx, &perfil); err != nil {
		return models.Perfil{}, err
	}

	if payload.Permisos != nil {
		if err := s.syncPermisoRows(ctx, perfil); err != nil {
			s.logger.Warn().Err(err).Str("perfil_id", perfil.ID).Msg("failed to sync permission join rows")
		}
	}

	s.logger.Info().Str("perfil_id", perfil.ID).Msg("perfil updated")

	return perfil, nil
}

func (s *perfilService) validatePermisos(serialized string) error {
	var decoded interface{}
	if err := json.Unmarshal([]byte(serialized), &decoded); err != nil {
		return ErrPermisosInvalidos
	}
	if err := s.schema.Validate(decoded); err != nil {
		return ErrPermisosInvalidos
	}
	return nil
}

// syncPermisoRows rewrites the normalized join rows to match the serialized
// column for codes present in the catalog. Unknown codes survive in the
// column but get no row.
func (s *perfilService) syncPermisoRows(ctx context.Context, perfil models.Perfil) error {
	granted := permission.ParseSet(perfil.Permisos)
	if granted.Empty() {
		return s.perfiles.ReplacePerfilPermisos(ctx, perfil.ID, nil)
	}

	catalog, err := s.perfiles.ListPermisos(ctx)
	if err != nil {
		return err
	}

	byCodigo := make(map[string]string, len(catalog))
	for _, permiso := range catalog {
		byCodigo[permiso.Codigo] = permiso.ID
	}

	var ids []string
	for _, code := range granted.Codes() {
		if permisoID, ok := byCodigo[string(code)]; ok {
			ids = append(ids, permisoID)
		}
	}

	return s.perfiles.ReplacePerfilPermisos(ctx, perfil.ID, ids)
}
