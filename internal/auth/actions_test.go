package auth

import (
	"testing"

	"github.com/spec-kit/egresados-portal/internal/domain"
)

func TestPermittedActions(t *testing.T) {
	vacante := domain.Vacante{ID: "v1", CompanyID: "c1", Title: "Backend Dev"}

	tests := []struct {
		name    string
		session Session
		want    []Action
	}{
		{
			name:    "unauthenticated gets nothing",
			session: Session{},
			want:    nil,
		},
		{
			name:    "egresado may only apply",
			session: Session{Authenticated: true, SubjectID: "g1", Role: domain.RoleEgresado},
			want:    []Action{ActionApply},
		},
		{
			name: "egresado gets no company actions even as owner-id holder",
			// Same identifier as the owning company; the role rules still win.
			session: Session{Authenticated: true, SubjectID: "c1", Role: domain.RoleEgresado},
			want:    []Action{ActionApply},
		},
		{
			name:    "owning empresa manages but never applies",
			session: Session{Authenticated: true, SubjectID: "c1", Role: domain.RoleEmpresa},
			want:    []Action{ActionEdit, ActionDelete, ActionViewApplicants},
		},
		{
			name:    "non-owning empresa gets nothing",
			session: Session{Authenticated: true, SubjectID: "c2", Role: domain.RoleEmpresa},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PermittedActions(tt.session, vacante)
			if len(got) != len(tt.want) {
				t.Fatalf("PermittedActions = %v, want %v", got, tt.want)
			}
			for _, action := range tt.want {
				if !got.Can(action) {
					t.Errorf("PermittedActions = %v, missing %q", got, action)
				}
			}
		})
	}
}
