package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Category es la seccion del test a la que pertenece una pregunta.
type Category string

const (
	CategoryPersonality Category = "Personality"
	CategoryCognitive   Category = "Cognitive"
	CategorySkills      Category = "Skills"
	CategorySituational Category = "Situational"
	CategoryValues      Category = "Values"
)

// TalliedCategories son las categorias con conteo correct/total.
var TalliedCategories = [...]Category{
	CategoryCognitive,
	CategorySkills,
	CategorySituational,
	CategoryValues,
}

// ScoringVariant distingue items Likert directos de los invertidos.
type ScoringVariant string

const (
	LikertScale   ScoringVariant = "likert_scale"
	LikertReverse ScoringVariant = "likert_reverse"
)

// QuestionDefinition describe la regla de puntuacion de una pregunta.
// Solo los campos de la categoria correspondiente tienen valor.
type QuestionDefinition struct {
	ID       string
	Category Category

	// Personalidad
	Trait   Trait
	Variant ScoringVariant

	// Cognitive / Skills
	CorrectAnswer string
	Weight        int

	// Situational / Values: opcion -> deseabilidad 1..5
	ScoringMap map[string]int
}

// Answer acepta tanto strings como numeros en el JSON de entrada.
type Answer string

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Answer(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("answer must be a string or a number: %w", err)
	}
	if f, err := n.Float64(); err == nil {
		*a = Answer(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*a = Answer(n.String())
	return nil
}

// ResponseRecord es un item enviado por el usuario.
type ResponseRecord struct {
	QuestionID string `json:"Question_ID"`
	Answer     Answer `json:"Answer"`
}

// Normalized devuelve id y respuesta sin espacios alrededor.
func (r ResponseRecord) Normalized() (string, string) {
	return strings.TrimSpace(r.QuestionID), strings.TrimSpace(string(r.Answer))
}

// CategoryTally acumula intentos y aciertos de una categoria.
type CategoryTally struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Ratio devuelve Percentage/100 o 0 si no hubo intentos.
func (t CategoryTally) Ratio() float64 {
	if t.Total == 0 {
		return 0
	}
	return t.Percentage / 100
}

// PersonalityState acumula los deltas firmados por rasgo.
type PersonalityState struct {
	Deltas        [len(CanonicalTraits)]int
	Responses     int
	TotalPossible int
}

// Add suma delta al rasgo y registra la respuesta.
func (p *PersonalityState) Add(t Trait, delta int) {
	idx := t.Index()
	if idx < 0 {
		return
	}
	p.Deltas[idx] += delta
	p.Responses++
	p.TotalPossible += 2
}

// Delta devuelve el acumulado de un rasgo.
func (p PersonalityState) Delta(t Trait) int {
	idx := t.Index()
	if idx < 0 {
		return 0
	}
	return p.Deltas[idx]
}

// PersonalityDetail es el resumen expuesto en detailed_scores.personality.
type PersonalityDetail struct {
	Responses     int `json:"responses"`
	TotalPossible int `json:"total_possible"`
}
