package services

import (
	"strings"

	"mindzy/internal/models"
)

var psychologists = []models.Psychologist{
	{
		ID: "1", Name: "Dra. María González", Specialty: "Ansiedad y Estrés Académico",
		Rating: 4.9, Reviews: 127, Experience: "12 años de experiencia",
		Location: "Ciudad Universitaria", Availability: "Disponible hoy", Price: 50,
		Image: "👩‍⚕️", Status: "online", Modality: "hibrida",
	},
	{
		ID: "2", Name: "Dr. Carlos Mendoza", Specialty: "Terapia Cognitivo-Conductual",
		Rating: 4.8, Reviews: 98, Experience: "8 años de experiencia",
		Location: "Centro Médico Norte", Availability: "Disponible mañana", Price: 60,
		Image: "👨‍⚕️", Status: "offline", Modality: "presencial",
	},
	{
		ID: "3", Name: "Dra. Ana Ramírez", Specialty: "Psicología Juvenil",
		Rating: 5.0, Reviews: 156, Experience: "15 años de experiencia",
		Location: "Consultorio Virtual", Availability: "Citas disponibles", Price: 45,
		Image: "👩‍⚕️", Status: "online", Modality: "virtual",
	},
	{
		ID: "4", Name: "Dr. Roberto Silva", Specialty: "Manejo del Burnout",
		Rating: 4.7, Reviews: 89, Experience: "10 años de experiencia",
		Location: "Clínica Salud Mental", Availability: "Próxima semana", Price: 55,
		Image: "👨‍⚕️", Status: "offline", Modality: "hibrida",
	},
}

// SearchPsychologists matches query against name or specialty,
// case-insensitively.
// An empty query returns the whole directory.
func SearchPsychologists(query string) []models.Psychologist {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Psychologist, 0, len(psychologists))
	for _, p := range psychologists {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Specialty), q) {
			out = append(out, p)
		}
	}
	return out
}
