// Package permission evaluates profile-based capabilities. Permission codes
// form a closed set; profiles store them as a JSON-encoded string array and
// malformed or missing data always degrades to deny.
package permission

import (
	"encoding/json"
	"strings"
)

// Code identifies a single grantable capability.
type Code string

// The permission catalog. Wildcard grants everything.
const (
	Wildcard                 Code = "*"
	VerDashboard             Code = "ver_dashboard"
	VerCalendarioDocente     Code = "ver_calendario_docente"
	VerMiCalendario          Code = "ver_mi_calendario"
	EditarAsistencia         Code = "editar_asistencia"
	VerSalas                 Code = "ver_salas"
	VerDispositivos          Code = "ver_dispositivos"
	HomologarDispositivos    Code = "homologar_dispositivos"
	VerUsuarios              Code = "ver_usuarios"
	EditarUsuarios           Code = "editar_usuarios"
	CrearUsuarios            Code = "crear_usuarios"
	VerHistorialErrores      Code = "ver_historial_errores"
	ReportarErrores          Code = "reportar_errores"
	VerHistorialDispositivos Code = "ver_historial_dispositivos"
	GestionarPerfiles        Code = "gestionar_perfiles"
	ExportarReportes         Code = "exportar_reportes"
	VerAuditoria             Code = "ver_auditoria"
)

var catalog = map[Code]struct{}{
	Wildcard:                 {},
	VerDashboard:             {},
	VerCalendarioDocente:     {},
	VerMiCalendario:          {},
	EditarAsistencia:         {},
	VerSalas:                 {},
	VerDispositivos:          {},
	HomologarDispositivos:    {},
	VerUsuarios:              {},
	EditarUsuarios:           {},
	CrearUsuarios:            {},
	VerHistorialErrores:      {},
	ReportarErrores:          {},
	VerHistorialDispositivos: {},
	GestionarPerfiles:        {},
	ExportarReportes:         {},
	VerAuditoria:             {},
}

// Known reports whether code belongs to the catalog.
func Known(code Code) bool {
	_, ok := catalog[code]
	return ok
}

// Set is an immutable collection of granted permission codes.
type Set struct {
	wildcard bool
	codes    map[Code]struct{}
}

// ParseSet decodes a profile's serialized permission list. Unrecognized
// codes are dropped; any decoding failure yields the empty set so that bad
// data can never widen access.
func ParseSet(serialized string) Set {
	trimmed := strings.TrimSpace(serialized)
	if trimmed == "" {
		return Set{}
	}

	var raw []string
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return Set{}
	}

	set := Set{codes: make(map[Code]struct{}, len(raw))}
	for _, entry := range raw {
		code := Code(strings.TrimSpace(entry))
		if !Known(code) {
			continue
		}
		if code == Wildcard {
			set.wildcard = true
			continue
		}
		set.codes[code] = struct{}{}
	}

	return set
}

// Allows reports whether the set grants the given code.
func (s Set) Allows(code Code) bool {
	if s.wildcard {
		return true
	}
	if s.codes == nil {
		return false
	}
	_, ok := s.codes[code]
	return ok
}

// Empty reports whether the set grants nothing at all.
func (s Set) Empty() bool {
	return !s.wildcard && len(s.codes) == 0
}

// Codes returns the granted codes, with the wildcard listed first if set.
func (s Set) Codes() []Code {
	result := make([]Code, 0, len(s.codes)+1)
	if s.wildcard {
		result = append(result, Wildcard)
	}
	for code := range s.codes {
		result = append(result, code)
	}
	return result
}
