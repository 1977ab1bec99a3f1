package assessment

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"career-path/internal/domain"
)

// desirableThreshold: desde aca una opcion graduada cuenta como correcta.
const desirableThreshold = 4

var ErrNoResponses = errors.New("no responses provided")

// Sheet es el resultado de recorrer un envio contra un banco.
type Sheet struct {
	Level       EducationLevel
	Personality domain.PersonalityState
	Processed   int
	Skipped     int

	tallies map[domain.Category]*domain.CategoryTally
}

func newSheet(level EducationLevel) *Sheet {
	s := &Sheet{Level: level, tallies: make(map[domain.Category]*domain.CategoryTally, len(domain.TalliedCategories))}
	for _, c := range domain.TalliedCategories {
		s.tallies[c] = &domain.CategoryTally{}
	}
	return s
}

// Tally devuelve una copia de los conteos de una categoria.
func (s *Sheet) Tally(c domain.Category) domain.CategoryTally {
	if t, ok := s.tallies[c]; ok {
		return *t
	}
	return domain.CategoryTally{}
}

// Scorer recorre respuestas y aplica la regla de cada pregunta.
type Scorer struct {
	logger *zap.Logger
}

func NewScorer(logger *zap.Logger) *Scorer {
	return &Scorer{logger: logger}
}

// Score evalua las respuestas en orden. Ids desconocidos y respuestas vacias se
// saltean sin tocar conteos. Un id repetido puntua en cada aparicion.
func (s *Scorer) Score(level EducationLevel, responses []domain.ResponseRecord) (*Sheet, error) {
	if len(responses) == 0 {
		return nil, ErrNoResponses
	}
	bank := BankFor(level)
	sheet := newSheet(bank.Level())

	for _, r := range responses {
		id, answer := r.Normalized()
		if id == "" || answer == "" {
			sheet.Skipped++
			continue
		}
		q, ok := bank.Lookup(id)
		if !ok {
			sheet.Skipped++
			if s.logger != nil {
				s.logger.Debug("unknown question id", zap.String("question_id", id), zap.String("level", string(bank.Level())))
			}
			continue
		}
		sheet.Processed++
		s.apply(sheet, q, answer)
	}

	for _, t := range sheet.tallies {
		if t.Total > 0 {
			t.Percentage = math.Round(float64(t.Correct)/float64(t.Total)*1000) / 10
		}
	}
	return sheet, nil
}

func (s *Scorer) apply(sheet *Sheet, q domain.QuestionDefinition, answer string) {
	switch q.Category {
	case domain.CategoryPersonality:
		if !q.Trait.Valid() {
			return
		}
		sheet.Personality.Add(q.Trait, LikertDelta(ParseLikert(answer), q.Variant))
	case domain.CategoryCognitive, domain.CategorySkills:
		t := sheet.tallies[q.Category]
		t.Total++
		if answer == q.CorrectAnswer {
			t.Correct++
		}
	case domain.CategorySituational, domain.CategoryValues:
		t := sheet.tallies[q.Category]
		t.Total++
		if v, ok := q.ScoringMap[answer]; ok && v >= desirableThreshold {
			t.Correct++
		}
	default:
		if s.logger != nil {
			s.logger.Warn("question with unknown category", zap.String("question_id", q.ID), zap.String("category", string(q.Category)))
		}
	}
}
