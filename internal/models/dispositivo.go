package models

import "time"

// Device connection states.
const (
	DispositivoConectado    = "conectado"
	DispositivoDesconectado = "desconectado"
	DispositivoAdvertencia  = "advertencia"
)

// Device hardware types.
const (
	DispositivoTablet = "tablet"
	DispositivoPDA    = "pda"
)

// Incident resolution states. Resolution is one-way: once resuelto there is
// no path back to pendiente.
const (
	ResolucionPendiente = "pendiente"
	ResolucionEnProceso = "en_proceso"
	ResolucionResuelto  = "resuelto"
)

// EstadoConexionValido reports whether estado is a known connection state.
func EstadoConexionValido(estado string) bool {
	switch estado {
	case DispositivoConectado, DispositivoDesconectado, DispositivoAdvertencia:
		return true
	}
	return false
}

// Dispositivo is an attendance-marking hardware unit assigned to a room.
type Dispositivo struct {
	Base
	SerialNumber   string     `gorm:"size:64;uniqueIndex;not null" json:"serialNumber"`
	Tipo           string     `gorm:"size:32;not null" json:"tipo"`
	SalaID         *string    `gorm:"size:64" json:"salaId"`
	SedeID         *string    `gorm:"size:64" json:"sedeId"`
	VersionApp     *string    `gorm:"size:32" json:"versionApp"`
	Bateria        *int       `json:"bateria"`
	EstadoConexion string     `gorm:"size:32;not null;default:desconectado" json:"estadoConexion"`
	UltimaConexion *time.Time `json:"ultimaConexion"`
	Sala           *Sala      `gorm:"foreignKey:SalaID" json:"sala,omitempty"`
	Sede           *Sede      `gorm:"foreignKey:SedeID" json:"sede,omitempty"`
}

// IncidenciaDispositivo reports a device malfunction. The original location
// is captured as display-name snapshots; once homologated the resolved
// location is snapshotted the same way so later renames do not rewrite
// history. Homologated fields stay null until resolution.
type IncidenciaDispositivo struct {
	Base
	DispositivoID    string       `gorm:"size:64;not null;index" json:"dispositivoId"`
	TipoIncidencia   string       `gorm:"size:64;not null" json:"tipoIncidencia"`
	Descripcion      *string      `gorm:"size:512" json:"descripcion"`
	SedeOriginal     *string      `gorm:"size:255" json:"sedeOriginal"`
	SalaOriginal     *string      `gorm:"size:255" json:"salaOriginal"`
	SedeHomologada   *string      `gorm:"size:255" json:"sedeHomologada"`
	SalaHomologada   *string      `gorm:"size:255" json:"salaHomologada"`
	EstadoResolucion string       `gorm:"size:32;not null;default:pendiente" json:"estadoResolucion"`
	Dispositivo      *Dispositivo `gorm:"foreignKey:DispositivoID" json:"dispositivo,omitempty"`
}

// HistorialDispositivo records a connection-state transition observed via
// device heartbeats.
type HistorialDispositivo struct {
	Base
	DispositivoID  string       `gorm:"size:64;not null;index" json:"dispositivoId"`
	EstadoAnterior string       `gorm:"size:32;not null" json:"estadoAnterior"`
	EstadoNuevo    string       `gorm:"size:32;not null" json:"estadoNuevo"`
	Bateria        *int         `json:"bateria"`
	Dispositivo    *Dispositivo `gorm:"foreignKey:DispositivoID" json:"dispositivo,omitempty"`
}
