package domain

// Profile is the unified account profile exposed by the marketplace API.
// Graduate and company accounts share the table; which optional fields are
// populated depends on the role.
type Profile struct {
	ID             string `json:"id"`
	Role           Role   `json:"role"`
	Email          string `json:"email,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	GraduationYear *int   `json:"graduation_year,omitempty"`
	Carrera        string `json:"carrera,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	Website        string `json:"website,omitempty"`
}

// DisplayName picks the most specific name available for navigation and
// listings.
func (p Profile) DisplayName() string {
	if p.Role == RoleEmpresa && p.CompanyName != "" {
		return p.CompanyName
	}
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}
