package dto

// PerfilCreateRequest carries the payload for creating a permission profile.
// Permisos must be a JSON-encoded array of permission codes.
type PerfilCreateRequest struct {
	Nombre      string  `json:"nombre" validate:"required"`
	Descripcion *string `json:"descripcion"`
	Permisos    string  `json:"permisos" validate:"required"`
}

// PerfilUpdateRequest carries a partial profile update.
type PerfilUpdateRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Permisos    *string `json:"permisos"`
}
