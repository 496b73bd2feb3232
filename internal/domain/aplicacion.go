package domain

// Aplicacion records a graduate's application to a vacancy.
type Aplicacion struct {
	ID          string `json:"id"`
	ApplicantID string `json:"applicant_id"`
	VacancyID   string `json:"vacancy_id"`
	Status      string `json:"status"`
}
