package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/spec-kit/egresados-portal/internal/domain"
)

// VacanteCreate payload for POST /vacantes.
type VacanteCreate struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Salario     *float64 `json:"salario,omitempty"`
	Location    string   `json:"location,omitempty"`
	Modality    string   `json:"modality,omitempty"`
}

// VacanteUpdate is the partial-update payload for PUT /vacantes/{id}.
type VacanteUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Salario     *float64 `json:"salario,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Modality    *string  `json:"modality,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// Vacantes lists vacancies, optionally filtered by a title search.
func (c *Client) Vacantes(ctx context.Context, search string) ([]domain.Vacante, error) {
	var query url.Values
	if search != "" {
		query = url.Values{"query": {search}}
	}
	var vacantes []domain.Vacante
	if err := c.do(ctx, http.MethodGet, "/vacantes", query, nil, &vacantes); err != nil {
		return nil, err
	}
	return vacantes, nil
}

// Vacante fetches one vacancy by ID.
func (c *Client) Vacante(ctx context.Context, id string) (*domain.Vacante, error) {
	var vacante domain.Vacante
	if err := c.do(ctx, http.MethodGet, "/vacantes/"+id, nil, nil, &vacante); err != nil {
		return nil, err
	}
	return &vacante, nil
}

// CreateVacante posts a new vacancy. The backend derives the owning company
// from the credential.
func (c *Client) CreateVacante(ctx context.Context, create VacanteCreate) (*domain.Vacante, error) {
	var vacante domain.Vacante
	if err := c.do(ctx, http.MethodPost, "/vacantes", nil, create, &vacante); err != nil {
		return nil, err
	}
	return &vacante, nil
}

// UpdateVacante applies a partial update to a vacancy.
func (c *Client) UpdateVacante(ctx context.Context, id string, update VacanteUpdate) (*domain.Vacante, error) {
	var vacante domain.Vacante
	if err := c.do(ctx, http.MethodPut, "/vacantes/"+id, nil, update, &vacante); err != nil {
		return nil, err
	}
	return &vacante, nil
}

// DeleteVacante removes a vacancy.
func (c *Client) DeleteVacante(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/vacantes/"+id, nil, nil, nil)
}

// Aplicar submits the caller's application to a vacancy.
func (c *Client) Aplicar(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/vacantes/"+id+"/aplicar", nil, nil, nil)
}

// Aplicaciones lists the applications received by a vacancy.
func (c *Client) Aplicaciones(ctx context.Context, id string) ([]domain.Aplicacion, error) {
	var aplicaciones []domain.Aplicacion
	if err := c.do(ctx, http.MethodGet, "/vacantes/"+id+"/aplicaciones", nil, nil, &aplicaciones); err != nil {
		return nil, err
	}
	return aplicaciones, nil
}
