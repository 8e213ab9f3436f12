package dto

type AppointmentListDTO struct {
	ID               uint     `json:"id"`
	Date             string   `json:"date"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	Status           string   `json:"status"`
	Origin           string   `json:"origin"`
	ClientName       string   `json:"client_name"`
	ClientPhone      string   `json:"client_phone"`
	ServiceNames     []string `json:"service_names"`
	Price            string   `json:"price"`
	ProfessionalID   *uint    `json:"professional_id"`
	ProfessionalName string   `json:"professional_name,omitempty"`
}
