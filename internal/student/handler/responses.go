package handler

import (
	"time"

	"unibus/internal/student/models"
)

type StudentResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	CEP          string    `json:"cep"`
	City         string    `json:"city"`
	CityIBGECode string    `json:"city_ibge_code"`
	CreatedAt    time.Time `json:"created_at"`
}

func toStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:           s.ID,
		Name:         s.Name,
		Email:        s.Email,
		CEP:          s.PostalCode,
		City:         s.Locality,
		CityIBGECode: s.RegionCode,
		CreatedAt:    s.CreatedAt,
	}
}

func toStudentResponses(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, toStudentResponse(s))
	}
	return out
}
