package dto

// ReporteCreateRequest files a problem report on behalf of the
// authenticated professor.
type ReporteCreateRequest struct {
	SalaID     *string `json:"salaId"`
	SedeID     *string `json:"sedeId"`
	Comentario string  `json:"comentario" validate:"required"`
}
