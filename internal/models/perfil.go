package models

// Perfil bundles permission codes assignable to users. Permisos holds a
// JSON-encoded string array; this column is the representation consulted by
// the permission evaluator at request time.
type Perfil struct {
	Base
	Nombre      string  `gorm:"size:255;not null" json:"nombre"`
	Descripcion *string `gorm:"size:512" json:"descripcion"`
	Permisos    string  `gorm:"type:text;not null;default:'[]'" json:"permisos"`
}

// Permiso is a catalog entry describing a single permission code.
type Permiso struct {
	Base
	Codigo string `gorm:"size:64;uniqueIndex;not null" json:"codigo"`
	Nombre string `gorm:"size:255;not null" json:"nombre"`
	Modulo string `gorm:"size:64;not null" json:"modulo"`
}

// PerfilPermiso joins profiles to catalog permissions. Seeding and profile
// administration keep these rows aligned with the Perfil.Permisos column for
// recognized codes.
type PerfilPermiso struct {
	Base
	PerfilID  string   `gorm:"size:64;not null;uniqueIndex:idx_perfil_permiso" json:"perfilId"`
	PermisoID string   `gorm:"size:64;not null;uniqueIndex:idx_perfil_permiso" json:"permisoId"`
	Perfil    *Perfil  `gorm:"foreignKey:PerfilID" json:"perfil,omitempty"`
	Permiso   *Permiso `gorm:"foreignKey:PermisoID" json:"permiso,omitempty"`
}
