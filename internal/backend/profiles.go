package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/spec-kit/egresados-portal/internal/domain"
)

// ProfileUpdate is the partial-update payload for /me. Nil fields are left
// untouched by the backend.
type ProfileUpdate struct {
	FullName       *string `json:"full_name,omitempty"`
	GraduationYear *int    `json:"graduation_year,omitempty"`
	Carrera        *string `json:"carrera,omitempty"`
	CompanyName    *string `json:"company_name,omitempty"`
	Website        *string `json:"website,omitempty"`
}

// Me fetches the caller's own profile.
func (c *Client) Me(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.do(ctx, http.MethodGet, "/me", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMe applies a partial update to the caller's profile.
func (c *Client) UpdateMe(ctx context.Context, update ProfileUpdate) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.do(ctx, http.MethodPut, "/me", nil, update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Empresas lists all company profiles.
func (c *Client) Empresas(ctx context.Context) ([]domain.Profile, error) {
	query := url.Values{"role": {string(domain.RoleEmpresa)}}
	var profiles []domain.Profile
	if err := c.do(ctx, http.MethodGet, "/profiles", query, nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
