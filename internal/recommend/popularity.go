package recommend

import (
	"math"
	"strings"

	"career-path/internal/domain"
)

// Outlook es la perspectiva laboral de un rol. OutlookUnknown es el valor por
// defecto de cualquier etiqueta fuera de la tabla.
type Outlook int

const (
	OutlookUnknown Outlook = iota
	OutlookLow
	OutlookMedium
	OutlookHigh
	OutlookVeryHigh
)

// ParseOutlook acepta "Very High", "VeryHigh" o "very_high" indistintamente.
func ParseOutlook(label string) Outlook {
	key := strings.ToLower(label)
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "low":
		return OutlookLow
	case "medium":
		return OutlookMedium
	case "high":
		return OutlookHigh
	case "veryhigh":
		return OutlookVeryHigh
	default:
		return OutlookUnknown
	}
}

// Weight devuelve el peso de popularidad de la perspectiva.
func (o Outlook) Weight() float64 {
	switch o {
	case OutlookLow:
		return 0.2
	case OutlookMedium:
		return 0.5
	case OutlookHigh:
		return 0.8
	case OutlookVeryHigh:
		return 1.0
	case OutlookUnknown:
		return 0.5
	}
	return 0.5
}

const (
	outlookShare    = 0.6
	salaryShare     = 0.4
	salaryReference = 25.0
)

// PopularityScore combina perspectiva y salario medio en [0,1].
func PopularityScore(role domain.CareerRole) float64 {
	salary := math.Min(SalaryMidpoint(role.SalaryRange)/salaryReference, 1.0)
	return outlookShare*ParseOutlook(role.Outlook).Weight() + salaryShare*salary
}

// PopularityScores aplica PopularityScore a cada rol.
func PopularityScores(roles []domain.CareerRole) []float64 {
	out := make([]float64, len(roles))
	for i, r := range roles {
		out[i] = PopularityScore(r)
	}
	return out
}
