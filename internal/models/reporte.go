package models

import "time"

// ReporteError is a free-text problem report filed by a professor.
type ReporteError struct {
	Base
	ProfesorID string    `gorm:"size:64;not null;index" json:"profesorId"`
	SalaID     *string   `gorm:"size:64" json:"salaId"`
	SedeID     *string   `gorm:"size:64" json:"sedeId"`
	Fecha      time.Time `gorm:"not null" json:"fecha"`
	Comentario string    `gorm:"type:text;not null" json:"comentario"`
	Estado     string    `gorm:"size:32;not null;default:pendiente" json:"estado"`
	Profesor   *Usuario  `gorm:"foreignKey:ProfesorID" json:"profesor,omitempty"`
}
