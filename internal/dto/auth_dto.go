package dto

import "github.com/gvclassroom/classroom-api/internal/models"

// LoginRequest carries login credentials.
type LoginRequest struct {
	Rut      string `json:"rut" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse returns the authenticated account and its session token.
// The password hash is stripped by the model's serialization rules.
type LoginResponse struct {
	User  models.Usuario `json:"user"`
	Token string         `json:"token"`
}
