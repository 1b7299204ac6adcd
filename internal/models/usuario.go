package models

// User roles. SUPER_ADMIN bypasses profile-based permission checks entirely.
const (
	RolSuperAdmin   = "SUPER_ADMIN"
	RolSoporte      = "SOPORTE"
	RolProfesor     = "PROFESOR"
	RolAlumno       = "ALUMNO"
	RolVisualizador = "VISUALIZADOR"
)

// ValidRoles lists every accepted value for Usuario.Tipo.
var ValidRoles = []string{RolSuperAdmin, RolSoporte, RolProfesor, RolAlumno, RolVisualizador}

// Usuario is an account identified by Chilean RUT.
type Usuario struct {
	Base
	Rut      string  `gorm:"size:32;uniqueIndex;not null" json:"rut"`
	Nombre   string  `gorm:"size:255;not null" json:"nombre"`
	Email    *string `gorm:"size:255" json:"email"`
	Password string  `gorm:"size:255;not null" json:"-"`
	Tipo     string  `gorm:"size:32;not null" json:"tipo"`
	PerfilID *string `gorm:"size:64" json:"perfilId"`
	SedeID   *string `gorm:"size:64" json:"sedeId"`
	Timezone string  `gorm:"size:64;not null;default:America/Santiago" json:"timezone"`
	Activo   bool    `gorm:"not null;default:true" json:"activo"`
	Perfil   *Perfil `gorm:"foreignKey:PerfilID" json:"perfil,omitempty"`
	Sede     *Sede   `gorm:"foreignKey:SedeID" json:"sede,omitempty"`
}
