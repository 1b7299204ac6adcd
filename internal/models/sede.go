package models

// Sede is a physical institutional site or campus.
type Sede struct {
	Base
	Codigo   string `gorm:"size:32;uniqueIndex;not null" json:"codigo"`
	Nombre   string `gorm:"size:255;not null" json:"nombre"`
	Timezone string `gorm:"size:64;not null;default:America/Santiago" json:"timezone"`
}

// Sala is a room inside a site.
type Sala struct {
	Base
	Codigo string `gorm:"size:32;not null" json:"codigo"`
	Nombre string `gorm:"size:255;not null" json:"nombre"`
	SedeID string `gorm:"size:64;not null;index" json:"sedeId"`
	Sede   *Sede  `gorm:"foreignKey:SedeID" json:"sede,omitempty"`
}
