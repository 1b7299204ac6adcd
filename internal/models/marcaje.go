package models

import "time"

// Attendance states. Marcaje.Estado always holds one of these four values.
const (
	MarcajePresente    = "PRESENTE"
	MarcajeAusente     = "AUSENTE"
	MarcajeTardanza    = "TARDANZA"
	MarcajeJustificado = "JUSTIFICADO"
)

// Record types. A record becomes MANUAL whenever a human edits it.
const (
	MarcajeAutomatico = "AUTOMATICO"
	MarcajeManual     = "MANUAL"
)

// EstadosMarcaje lists the accepted attendance states in a stable order.
var EstadosMarcaje = []string{MarcajePresente, MarcajeAusente, MarcajeTardanza, MarcajeJustificado}

// EstadoMarcajeValido reports whether estado belongs to the closed set.
func EstadoMarcajeValido(estado string) bool {
	switch estado {
	case MarcajePresente, MarcajeAusente, MarcajeTardanza, MarcajeJustificado:
		return true
	}
	return false
}

// Marcaje is an attendance record linking a student to a class session.
// Records are created automatically by classroom devices or manually by
// staff; they are mutated only through the attendance-edit workflow and
// never deleted.
type Marcaje struct {
	Base
	ClaseID       string    `gorm:"size:64;not null;index" json:"claseId"`
	AlumnoID      string    `gorm:"size:64;not null;index" json:"alumnoId"`
	FechaHora     time.Time `gorm:"not null" json:"fechaHora"`
	Estado        string    `gorm:"size:32;not null" json:"estado"`
	TipoMarcaje   string    `gorm:"size:32;not null;default:AUTOMATICO" json:"tipoMarcaje"`
	ModificadoPor *string   `gorm:"size:64" json:"modificadoPor"`
	Clase         *Clase    `gorm:"foreignKey:ClaseID" json:"clase,omitempty"`
	Alumno        *Usuario  `gorm:"foreignKey:AlumnoID" json:"alumno,omitempty"`
}
