package dto

// HeartbeatRequest is the periodic status report posted by a device.
type HeartbeatRequest struct {
	EstadoConexion string  `json:"estadoConexion" validate:"required"`
	Bateria        *int    `json:"bateria" validate:"omitempty,min=0,max=100"`
	VersionApp     *string `json:"versionApp"`
}

// HomologarRequest reassigns an incident's effective location.
type HomologarRequest struct {
	SedeID string `json:"sedeId" validate:"required"`
	SalaID string `json:"salaId" validate:"required"`
}
