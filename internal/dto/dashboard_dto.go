package dto

// DashboardStats aggregates the portal's landing-page counters.
type DashboardStats struct {
	TotalUsuarios          int64 `json:"totalUsuarios"`
	UsuariosActivos        int64 `json:"usuariosActivos"`
	TotalDispositivos      int64 `json:"totalDispositivos"`
	DispositivosConectados int64 `json:"dispositivosConectados"`
	ClasesHoy              int64 `json:"clasesHoy"`
	IncidenciasPendientes  int64 `json:"incidenciasPendientes"`
}

// ClaseReciente is a condensed class row for the dashboard listing.
type ClaseReciente struct {
	ID         string `json:"id"`
	Asignatura string `json:"asignatura"`
	Profesor   string `json:"profesor"`
	Sala       string `json:"sala"`
	HoraInicio string `json:"horaInicio"`
	HoraFin    string `json:"horaFin"`
	Estado     string `json:"estado"`
}
