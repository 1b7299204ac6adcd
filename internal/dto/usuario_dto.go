package dto

// UsuarioCreateRequest carries the payload for creating an account.
type UsuarioCreateRequest struct {
	Rut      string  `json:"rut" validate:"required"`
	Nombre   string  `json:"nombre" validate:"required"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Tipo     string  `json:"tipo" validate:"required"`
	PerfilID *string `json:"perfilId"`
	SedeID   *string `json:"sedeId"`
	Timezone string  `json:"timezone"`
	Activo   *bool   `json:"activo"`
}

// UsuarioUpdateRequest carries a partial account update. A non-nil password
// is re-hashed before storage.
type UsuarioUpdateRequest struct {
	Rut      *string `json:"rut"`
	Nombre   *string `json:"nombre"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Tipo     *string `json:"tipo"`
	PerfilID *string `json:"perfilId"`
	SedeID   *string `json:"sedeId"`
	Timezone *string `json:"timezone"`
	Activo   *bool   `json:"activo"`
}
