package assessment

import (
	"fmt"
	"strings"

	"career-path/internal/domain"
)

// EducationLevel elige el banco de preguntas que puntua un envio.
type EducationLevel string

const (
	LevelFoundation   EducationLevel = "Foundation"
	LevelIntermediate EducationLevel = "Intermediate"
	LevelAdvanced     EducationLevel = "Advanced"

	DefaultLevel = LevelIntermediate
)

var levelAliases = map[string]EducationLevel{
	"foundation":   LevelFoundation,
	"intermediate": LevelIntermediate,
	"advanced":     LevelAdvanced,
	"highschool":   LevelFoundation,
	"bachelors":    LevelIntermediate,
	"masters":      LevelAdvanced,
	"phd":          LevelAdvanced,
}

// ParseEducationLevel resuelve un nivel o un alias de educacion del perfil.
// Valores desconocidos resuelven a DefaultLevel con ok=false.
func ParseEducationLevel(s string) (EducationLevel, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if level, ok := levelAliases[key]; ok {
		return level, true
	}
	return DefaultLevel, false
}

// QuestionBank es la tabla inmutable id -> definicion de un nivel.
type QuestionBank struct {
	level     EducationLevel
	questions map[string]domain.QuestionDefinition
}

func (b *QuestionBank) Level() EducationLevel { return b.level }

func (b *QuestionBank) Len() int { return len(b.questions) }

// CountByCategory cuenta las preguntas de una categoria en el banco.
func (b *QuestionBank) CountByCategory(c domain.Category) int {
	n := 0
	for _, q := range b.questions {
		if q.Category == c {
			n++
		}
	}
	return n
}

// Lookup resuelve un id crudo, probando primero la forma sin separadores.
func (b *QuestionBank) Lookup(rawID string) (domain.QuestionDefinition, bool) {
	if q, ok := b.questions[NormalizeQuestionID(rawID)]; ok {
		return q, true
	}
	q, ok := b.questions[rawID]
	return q, ok
}

// NormalizeQuestionID quita los guiones bajos: I_P001 -> IP001.
func NormalizeQuestionID(id string) string {
	return strings.ReplaceAll(id, "_", "")
}

// BankFor devuelve el banco compartido del nivel; si no existe, el de DefaultLevel.
func BankFor(level EducationLevel) *QuestionBank {
	if b, ok := banks[level]; ok {
		return b
	}
	return banks[DefaultLevel]
}

type personalityItem struct {
	trait   domain.Trait
	variant domain.ScoringVariant
}

type bankSpec struct {
	prefix      string
	personality []personalityItem
	skills      string
	cognitive   string
	situational [][5]int
	values      [][5]int
}

var optionLetters = [5]string{"A", "B", "C", "D", "E"}

func buildBank(level EducationLevel, spec bankSpec) *QuestionBank {
	b := &QuestionBank{level: level, questions: make(map[string]domain.QuestionDefinition)}
	add := func(q domain.QuestionDefinition) {
		if _, dup := b.questions[q.ID]; dup {
			panic(fmt.Sprintf("assessment: duplicate question id %s", q.ID))
		}
		b.questions[q.ID] = q
	}
	id := func(section string, n int) string {
		return fmt.Sprintf("%s%s%03d", spec.prefix, section, n+1)
	}

	for i, item := range spec.personality {
		add(domain.QuestionDefinition{
			ID:       id("P", i),
			Category: domain.CategoryPersonality,
			Trait:    item.trait,
			Variant:  item.variant,
		})
	}
	for i, key := range spec.skills {
		add(domain.QuestionDefinition{ID: id("S", i), Category: domain.CategorySkills, CorrectAnswer: string(key), Weight: 1})
	}
	for i, key := range spec.cognitive {
		add(domain.QuestionDefinition{ID: id("C", i), Category: domain.CategoryCognitive, CorrectAnswer: string(key), Weight: 1})
	}
	graded := func(section string, cat domain.Category, rows [][5]int) {
		for i, row := range rows {
			m := make(map[string]int, len(row))
			for j, v := range row {
				m[optionLetters[j]] = v
			}
			add(domain.QuestionDefinition{ID: id(section, i), Category: cat, ScoringMap: m})
		}
	}
	graded("T", domain.CategorySituational, spec.situational)
	graded("V", domain.CategoryValues, spec.values)
	return b
}
