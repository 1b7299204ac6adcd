package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
)

// UsuarioRepository provides access to user accounts.
type UsuarioRepository interface {
	GetByID(ctx context.Context, id string) (models.Usuario, error)
	GetByRut(ctx context.Context, rut string) (models.Usuario, error)
	List(ctx context.Context, tipo string) ([]models.Usuario, error)
	Create(ctx context.Context, usuario *models.Usuario) error
	Update(ctx context.Context, usuario *models.Usuario) error
	Count(ctx context.Context) (int64, error)
	CountActivos(ctx context.Context) (int64, error)
}

type usuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository constructs a user repository.
func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

func (r *usuarioRepository) GetByID(ctx context.Context, id string) (models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).
		Preload("Perfil").
		Preload("Sede").
		First(&usuario, "id = ?", id).Error
	if err != nil {
		return models.Usuario{}, err
	}

	return usuario, nil
}

func (r *usuarioRepository) GetByRut(ctx context.Context, rut string) (models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).
		Preload("Perfil").
		Preload("Sede").
		First(&usuario, "rut = ?", rut).Error
	if err != nil {
		return models.Usuario{}, err
	}

	return usuario, nil
}

func (r *usuarioRepository) List(ctx context.Context, tipo string) ([]models.Usuario, error) {
	query := r.db.WithContext(ctx).
		Preload("Perfil").
		Preload("Sede").
		Order("nombre ASC")

	if tipo != "" {
		query = query.Where("tipo = ?", tipo)
	}

	var usuarios []models.Usuario
	if err := query.Find(&usuarios).Error; err != nil {
		return nil, err
	}

	return usuarios, nil
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *usuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Save(usuario).Error
}

func (r *usuarioRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Usuario{}).Count(&total).Error
	return total, err
}

func (r *usuarioRepository) CountActivos(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Usuario{}).
		Where("activo = ?", true).
		Count(&total).Error
	return total, err
}
