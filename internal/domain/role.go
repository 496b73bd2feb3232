package domain

// Role enumerates the account kinds the marketplace issues. The set is
// closed: a credential carrying anything else is rejected.
type Role string

const (
	RoleEgresado Role = "egresado"
	RoleEmpresa  Role = "empresa"
)

// ParseRole maps a raw claim or form value onto the closed role set.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleEgresado:
		return RoleEgresado, true
	case RoleEmpresa:
		return RoleEmpresa, true
	default:
		return "", false
	}
}
