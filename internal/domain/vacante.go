package domain

// Vacante is a job vacancy as served by the marketplace API. Ownership is a
// single company identity; the client compares it against the session subject
// when deciding which controls to offer.
type Vacante struct {
	ID          string   `json:"id"`
	CompanyID   string   `json:"company_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Salario     *float64 `json:"salario,omitempty"`
	Location    string   `json:"location,omitempty"`
	Modality    string   `json:"modality,omitempty"`
	IsActive    bool     `json:"is_active"`
}
