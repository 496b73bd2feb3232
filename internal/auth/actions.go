package auth

import "github.com/spec-kit/egresados-portal/internal/domain"

// Action enumerates the per-vacancy controls the portal can offer.
type Action string

const (
	ActionApply          Action = "apply"
	ActionEdit           Action = "edit"
	ActionDelete         Action = "delete"
	ActionViewApplicants Action = "view_applicants"
)

// ActionSet is the set of actions permitted for one session on one vacancy.
type ActionSet map[Action]struct{}

// Can reports whether the action is in the set.
func (s ActionSet) Can(action Action) bool {
	_, ok := s[action]
	return ok
}

// PermittedActions decides which controls to present for a vacancy. The
// result is advisory: the backend independently authorizes the actual call,
// and a denial there (ownership changed underneath us, revoked account) comes
// back as an API error, not a crash. Denials here hide controls silently —
// no redirect, unlike the route guard.
func PermittedActions(session Session, vacante domain.Vacante) ActionSet {
	allowed := ActionSet{}
	if !session.Authenticated {
		return allowed
	}
	switch session.Role {
	case domain.RoleEgresado:
		allowed[ActionApply] = struct{}{}
	case domain.RoleEmpresa:
		// Strict ownership: no admin override, no delegation.
		if session.SubjectID == vacante.CompanyID {
			allowed[ActionEdit] = struct{}{}
			allowed[ActionDelete] = struct{}{}
			allowed[ActionViewApplicants] = struct{}{}
		}
	}
	return allowed
}
