package models

import "time"

// Class session states.
const (
	ClaseActiva     = "activa"
	ClaseCancelada  = "cancelada"
	ClaseCompletada = "completada"
)

// Clase is a scheduled class session in a room.
type Clase struct {
	Base
	Codigo        string        `gorm:"size:32;not null" json:"codigo"`
	Asignatura    string        `gorm:"size:255;not null" json:"asignatura"`
	ProfesorID    string        `gorm:"size:64;not null;index" json:"profesorId"`
	SalaID        string        `gorm:"size:64;not null;index" json:"salaId"`
	Fecha         time.Time     `gorm:"not null;index" json:"fecha"`
	HoraInicio    string        `gorm:"size:8;not null" json:"horaInicio"`
	HoraFin       string        `gorm:"size:8;not null" json:"horaFin"`
	Estado        string        `gorm:"size:32;not null;default:activa" json:"estado"`
	Profesor      *Usuario      `gorm:"foreignKey:ProfesorID" json:"profesor,omitempty"`
	Sala          *Sala         `gorm:"foreignKey:SalaID" json:"sala,omitempty"`
	Inscripciones []Inscripcion `gorm:"foreignKey:ClaseID" json:"inscripciones,omitempty"`
	Marcajes      []Marcaje     `gorm:"foreignKey:ClaseID" json:"marcajes,omitempty"`
}

// Inscripcion enrolls a student into a class session.
type Inscripcion struct {
	Base
	ClaseID  string   `gorm:"size:64;not null;index" json:"claseId"`
	AlumnoID string   `gorm:"size:64;not null;index" json:"alumnoId"`
	Alumno   *Usuario `gorm:"foreignKey:AlumnoID" json:"alumno,omitempty"`
}
