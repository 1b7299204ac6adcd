package dto

// MarcajeCreateRequest registers a manual attendance record.
type MarcajeCreateRequest struct {
	ClaseID     string `json:"claseId" validate:"required"`
	AlumnoID    string `json:"alumnoId" validate:"required"`
	Estado      string `json:"estado" validate:"required"`
	TipoMarcaje string `json:"tipoMarcaje"`
}

// MarcajeUpdateRequest transitions an attendance record's status.
type MarcajeUpdateRequest struct {
	Estado string `json:"estado" validate:"required"`
}
