package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/permission"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedSummary counts the rows the seeder guaranteed to exist.
type SeedSummary struct {
	Permisos     int `json:"permisos"`
	Perfiles     int `json:"perfiles"`
	Sedes        int `json:"sedes"`
	Salas        int `json:"salas"`
	Usuarios     int `json:"usuarios"`
	Dispositivos int `json:"dispositivos"`
	Clases       int `json:"clases"`
}

// SeedService provisions the demo dataset. Seeding is idempotent: rows are
// keyed by stable ids and re-running never duplicates them.
type SeedService interface {
	Run(ctx context.Context, token string) (SeedSummary, error)
}

type seedService struct {
	db      *gorm.DB
	enabled bool
	token   string
	logger  zerolog.Logger
}

// NewSeedService constructs the seeding service.
func NewSeedService(db *gorm.DB, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		db:      db,
		enabled: enabled,
		token:   token,
		logger:  logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) Run(ctx context.Context, token string) (SeedSummary, error) {
	if !s.enabled {
		return SeedSummary{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return SeedSummary{}, ErrSeedUnauthorized
	}

	var summary SeedSummary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if summary.Permisos, err = seedPermisos(tx); err != nil {
			return err
		}
		if summary.Perfiles, err = seedPerfiles(tx); err != nil {
			return err
		}
		if summary.Sedes, summary.Salas, err = seedUbicaciones(tx); err != nil {
			return err
		}
		if summary.Usuarios, err = seedUsuarios(tx); err != nil {
			return err
		}
		if summary.Dispositivos, err = seedDispositivos(tx); err != nil {
			return err
		}
		if summary.Clases, err = seedClases(tx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return SeedSummary{}, err
	}

	s.logger.Info().
		Int("usuarios", summary.Usuarios).
		Int("clases", summary.Clases).
		Msg("demo dataset seeded")

	return summary, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtleConstantTimeCompare(expected, strings.TrimSpace(token))
}

func subtleConstantTimeCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	mismatch := byte(0)
	for i := 0; i < len(a); i++ {
		mismatch |= a[i] ^ b[i]
	}
	return mismatch == 0
}

func ensure[T any](tx *gorm.DB, id string, row T) error {
	return tx.Where("id = ?", id).FirstOrCreate(&row).Error
}

func seedPermisos(tx *gorm.DB) (int, error) {
	entries := []models.Permiso{
		{Base: models.Base{ID: "perm-ver-dashboard"}, Codigo: string(permission.VerDashboard), Nombre: "Ver dashboard", Modulo: "dashboard"},
		{Base: models.Base{ID: "perm-ver-calendario-docente"}, Codigo: string(permission.VerCalendarioDocente), Nombre: "Ver calendario docente", Modulo: "clases"},
		{Base: models.Base{ID: "perm-ver-mi-calendario"}, Codigo: string(permission.VerMiCalendario), Nombre: "Ver mi calendario", Modulo: "clases"},
		{Base: models.Base{ID: "perm-editar-asistencia"}, Codigo: string(permission.EditarAsistencia), Nombre: "Editar asistencia", Modulo: "marcajes"},
		{Base: models.Base{ID: "perm-ver-salas"}, Codigo: string(permission.VerSalas), Nombre: "Ver salas", Modulo: "sedes"},
		{Base: models.Base{ID: "perm-ver-dispositivos"}, Codigo: string(permission.VerDispositivos), Nombre: "Ver dispositivos", Modulo: "dispositivos"},
		{Base: models.Base{ID: "perm-homologar-dispositivos"}, Codigo: string(permission.HomologarDispositivos), Nombre: "Homologar dispositivos", Modulo: "dispositivos"},
		{Base: models.Base{ID: "perm-ver-usuarios"}, Codigo: string(permission.VerUsuarios), Nombre: "Ver usuarios", Modulo: "usuarios"},
		{Base: models.Base{ID: "perm-editar-usuarios"}, Codigo: string(permission.EditarUsuarios), Nombre: "Editar usuarios", Modulo: "usuarios"},
		{Base: models.Base{ID: "perm-crear-usuarios"}, Codigo: string(permission.CrearUsuarios), Nombre: "Crear usuarios", Modulo: "usuarios"},
		{Base: models.Base{ID: "perm-ver-historial-errores"}, Codigo: string(permission.VerHistorialErrores), Nombre: "Ver historial de errores", Modulo: "reportes"},
		{Base: models.Base{ID: "perm-reportar-errores"}, Codigo: string(permission.ReportarErrores), Nombre: "Reportar errores", Modulo: "reportes"},
		{Base: models.Base{ID: "perm-ver-historial-dispositivos"}, Codigo: string(permission.VerHistorialDispositivos), Nombre: "Ver historial de dispositivos", Modulo: "dispositivos"},
		{Base: models.Base{ID: "perm-gestionar-perfiles"}, Codigo: string(permission.GestionarPerfiles), Nombre: "Gestionar perfiles", Modulo: "perfiles"},
		{Base: models.Base{ID: "perm-exportar-reportes"}, Codigo: string(permission.ExportarReportes), Nombre: "Exportar reportes", Modulo: "reportes"},
		{Base: models.Base{ID: "perm-ver-auditoria"}, Codigo: string(permission.VerAuditoria), Nombre: "Ver auditoria", Modulo: "auditoria"},
	}

	for _, entry := range entries {
		if err := ensure(tx, entry.ID, entry); err != nil {
			return 0, err
		}
	}

	return len(entries), nil
}

func seedPerfiles(tx *gorm.DB) (int, error) {
	descripcion := func(s string) *string { return &s }

	perfiles := []models.Perfil{
		{
			Base:        models.Base{ID: "perfil-admin"},
			Nombre:      "Administrador",
			Descripcion: descripcion("Acceso completo a todos los modulos"),
			Permisos:    `["*"]`,
		},
		{
			Base:        models.Base{ID: "perfil-coordinador"},
			Nombre:      "Coordinador",
			Descripcion: descripcion("Gestion de asistencia, dispositivos y usuarios"),
			Permisos:    `["ver_dashboard","ver_calendario_docente","editar_asistencia","ver_salas","ver_dispositivos","homologar_dispositivos","ver_usuarios","ver_historial_errores","ver_historial_dispositivos"]`,
		},
		{
			Base:        models.Base{ID: "perfil-docente"},
			Nombre:      "Docente",
			Descripcion: descripcion("Calendario propio y reporte de errores"),
			Permisos:    `["ver_mi_calendario","reportar_errores"]`,
		},
	}

	for _, perfil := range perfiles {
		if err := ensure(tx, perfil.ID, perfil); err != nil {
			return 0, err
		}
		if err := syncSeedPerfilPermisos(tx, perfil); err != nil {
			return 0, err
		}
	}

	return len(perfiles), nil
}

// syncSeedPerfilPermisos mirrors the serialized column into join rows so the
// normalized catalog view matches from the first boot.
func syncSeedPerfilPermisos(tx *gorm.DB, perfil models.Perfil) error {
	for _, code := range permission.ParseSet(perfil.Permisos).Codes() {
		if code == permission.Wildcard {
			continue
		}

		var permiso models.Permiso
		if err := tx.First(&permiso, "codigo = ?", string(code)).Error; err != nil {
			return err
		}

		row := models.PerfilPermiso{PerfilID: perfil.ID, PermisoID: permiso.ID}
		err := tx.Where("perfil_id = ? AND permiso_id = ?", perfil.ID, permiso.ID).
			FirstOrCreate(&row).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func seedUbicaciones(tx *gorm.DB) (int, int, error) {
	sedes := []models.Sede{
		{Base: models.Base{ID: "sede-santiago"}, Codigo: "STGO", Nombre: "Sede Santiago", Timezone: "America/Santiago"},
		{Base: models.Base{ID: "sede-valparaiso"}, Codigo: "VALP", Nombre: "Sede Valparaiso", Timezone: "America/Santiago"},
	}
	for _, sede := range sedes {
		if err := ensure(tx, sede.ID, sede); err != nil {
			return 0, 0, err
		}
	}

	salas := []models.Sala{
		{Base: models.Base{ID: "sala-a101"}, Codigo: "A-101", Nombre: "Sala A-101", SedeID: "sede-santiago"},
		{Base: models.Base{ID: "sala-a102"}, Codigo: "A-102", Nombre: "Sala A-102", SedeID: "sede-santiago"},
		{Base: models.Base{ID: "sala-b201"}, Codigo: "B-201", Nombre: "Sala B-201", SedeID: "sede-santiago"},
		{Base: models.Base{ID: "sala-v101"}, Codigo: "V-101", Nombre: "Sala V-101", SedeID: "sede-valparaiso"},
	}
	for _, sala := range salas {
		if err := ensure(tx, sala.ID, sala); err != nil {
			return 0, 0, err
		}
	}

	return len(sedes), len(salas), nil
}

func seedUsuarios(tx *gorm.DB) (int, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	password := string(hashed)
	email := func(s string) *string { return &s }
	ref := func(s string) *string { return &s }

	usuarios := []models.Usuario{
		{
			Base:     models.Base{ID: "usuario-admin"},
			Rut:      "11.111.111-1",
			Nombre:   "Administrador General",
			Email:    email("admin@classroom.cl"),
			Password: password,
			Tipo:     models.RolSuperAdmin,
			PerfilID: ref("perfil-admin"),
			SedeID:   ref("sede-santiago"),
			Timezone: "America/Santiago",
			Activo:   true,
		},
		{
			Base:     models.Base{ID: "usuario-coordinador"},
			Rut:      "13.333.333-3",
			Nombre:   "Carla Soto",
			Email:    email("carla.soto@classroom.cl"),
			Password: password,
			Tipo:     models.RolSoporte,
			PerfilID: ref("perfil-coordinador"),
			SedeID:   ref("sede-santiago"),
			Timezone: "America/Santiago",
			Activo:   true,
		},
		{
			Base:     models.Base{ID: "usuario-profesor"},
			Rut:      "12.345.678-9",
			Nombre:   "Pedro Rojas",
			Email:    email("pedro.rojas@classroom.cl"),
			Password: password,
			Tipo:     models.RolProfesor,
			PerfilID: ref("perfil-docente"),
			SedeID:   ref("sede-santiago"),
			Timezone: "America/Santiago",
			Activo:   true,
		},
		{
			Base:     models.Base{ID: "usuario-alumno-1"},
			Rut:      "20.111.222-3",
			Nombre:   "Ana Fuentes",
			Password: password,
			Tipo:     models.RolAlumno,
			SedeID:   ref("sede-santiago"),
			Timezone: "America/Santiago",
			Activo:   true,
		},
		{
			Base:     models.Base{ID: "usuario-alumno-2"},
			Rut:      "20.444.555-6",
			Nombre:   "Benjamin Silva",
			Password: password,
			Tipo:     models.RolAlumno,
			SedeID:   ref("sede-santiago"),
			Timezone: "America/Santiago",
			Activo:   true,
		},
	}

	for _, usuario := range usuarios {
		if err := ensure(tx, usuario.ID, usuario); err != nil {
			return 0, err
		}
	}

	return len(usuarios), nil
}

func seedDispositivos(tx *gorm.DB) (int, error) {
	ref := func(s string) *string { return &s }
	version := func(s string) *string { return &s }
	bateria := func(n int) *int { return &n }

	dispositivos := []models.Dispositivo{
		{
			Base:           models.Base{ID: "disp-tablet-01"},
			SerialNumber:   "TB-0001",
			Tipo:           models.DispositivoTablet,
			SalaID:         ref("sala-a101"),
			SedeID:         ref("sede-santiago"),
			VersionApp:     version("2.4.1"),
			Bateria:        bateria(87),
			EstadoConexion: models.DispositivoConectado,
		},
		{
			Base:           models.Base{ID: "disp-tablet-02"},
			SerialNumber:   "TB-0002",
			Tipo:           models.DispositivoTablet,
			SalaID:         ref("sala-b201"),
			SedeID:         ref("sede-santiago"),
			VersionApp:     version("2.4.1"),
			Bateria:        bateria(45),
			EstadoConexion: models.DispositivoDesconectado,
		},
		{
			Base:           models.Base{ID: "disp-pda-01"},
			SerialNumber:   "PD-0001",
			Tipo:           models.DispositivoPDA,
			SalaID:         ref("sala-v101"),
			SedeID:         ref("sede-valparaiso"),
			VersionApp:     version("2.3.0"),
			Bateria:        bateria(62),
			EstadoConexion: models.DispositivoAdvertencia,
		},
	}

	for _, dispositivo := range dispositivos {
		if err := ensure(tx, dispositivo.ID, dispositivo); err != nil {
			return 0, err
		}
	}

	return len(dispositivos), nil
}

func seedClases(tx *gorm.DB) (int, error) {
	hoy := time.Now().Truncate(24 * time.Hour)

	clases := []models.Clase{
		{
			Base:       models.Base{ID: "clase-mat-101"},
			Codigo:     "MAT-101",
			Asignatura: "Matematicas I",
			ProfesorID: "usuario-profesor",
			SalaID:     "sala-a101",
			Fecha:      hoy,
			HoraInicio: "08:30",
			HoraFin:    "10:00",
			Estado:     models.ClaseActiva,
		},
		{
			Base:       models.Base{ID: "clase-fis-201"},
			Codigo:     "FIS-201",
			Asignatura: "Fisica II",
			ProfesorID: "usuario-profesor",
			SalaID:     "sala-b201",
			Fecha:      hoy,
			HoraInicio: "10:15",
			HoraFin:    "11:45",
			Estado:     models.ClaseCancelada,
		},
	}
	for _, clase := range clases {
		if err := ensure(tx, clase.ID, clase); err != nil {
			return 0, err
		}
	}

	inscripciones := []models.Inscripcion{
		{Base: models.Base{ID: "insc-mat-alumno-1"}, ClaseID: "clase-mat-101", AlumnoID: "usuario-alumno-1"},
		{Base: models.Base{ID: "insc-mat-alumno-2"}, ClaseID: "clase-mat-101", AlumnoID: "usuario-alumno-2"},
		{Base: models.Base{ID: "insc-fis-alumno-1"}, ClaseID: "clase-fis-201", AlumnoID: "usuario-alumno-1"},
	}
	for _, inscripcion := range inscripciones {
		if err := ensure(tx, inscripcion.ID, inscripcion); err != nil {
			return 0, err
		}
	}

	marcajes := []models.Marcaje{
		{
			Base:        models.Base{ID: "marcaje-mat-alumno-1"},
			ClaseID:     "clase-mat-101",
			AlumnoID:    "usuario-alumno-1",
			FechaHora:   hoy.Add(8*time.Hour + 32*time.Minute),
			Estado:      models.MarcajePresente,
			TipoMarcaje: models.MarcajeAutomatico,
		},
		{
			Base:        models.Base{ID: "marcaje-mat-alumno-2"},
			ClaseID:     "clase-mat-101",
			AlumnoID:    "usuario-alumno-2",
			FechaHora:   hoy.Add(8*time.Hour + 30*time.Minute),
			Estado:      models.MarcajeAusente,
			TipoMarcaje: models.MarcajeAutomatico,
		},
	}
	for _, marcaje := range marcajes {
		if err := ensure(tx, marcaje.ID, marcaje); err != nil {
			return 0, err
		}
	}

	return len(clases), nil
}
