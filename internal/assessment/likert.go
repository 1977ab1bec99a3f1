package assessment

import (
	"strings"

	"career-path/internal/domain"
)

const neutralLikert = 3

var likertLabels = map[string]int{
	"strongly disagree": 1,
	"disagree":          2,
	"neutral":           3,
	"agree":             4,
	"strongly agree":    5,
}

var likertCodes = map[string]int{"1": 1, "2": 2, "3": 3, "4": 4, "5": 5}

// likertDeltas: delta directo por valor de escala.
var likertDeltas = [6]int{0, -2, -1, 0, 1, 2}

// ParseLikert lleva "1".."5" o una etiqueta de cinco puntos a 1..5; el resto es neutral.
func ParseLikert(answer string) int {
	answer = strings.TrimSpace(answer)
	if v, ok := likertCodes[answer]; ok {
		return v
	}
	if v, ok := likertLabels[strings.ToLower(answer)]; ok {
		return v
	}
	return neutralLikert
}

// LikertDelta devuelve el delta con signo del rasgo segun la variante.
// Variantes desconocidas puntuan cero.
func LikertDelta(value int, variant domain.ScoringVariant) int {
	if value < 1 || value > 5 {
		value = neutralLikert
	}
	switch variant {
	case domain.LikertScale:
		return likertDeltas[value]
	case domain.LikertReverse:
		return -likertDeltas[value]
	default:
		return 0
	}
}
