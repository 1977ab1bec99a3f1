package assessment

import (
	"errors"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"career-path/internal/domain"
)

func resp(id, answer string) domain.ResponseRecord {
	return domain.ResponseRecord{QuestionID: id, Answer: domain.Answer(answer)}
}

func TestScoreRejectsEmptyResponses(t *testing.T) {
	s := NewScorer(zap.NewNop())
	if _, err := s.Score(LevelFoundation, nil); !errors.Is(err, ErrNoResponses) {
		t.Fatalf("expected ErrNoResponses, got %v", err)
	}
}

func TestScoreReverseKeyedExample(t *testing.T) {
	s := NewScorer(zap.NewNop())
	sheet, err := s.Score(LevelFoundation, []domain.ResponseRecord{resp("FP001", "5"), resp("FP002", "1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sheet.Personality.Delta(domain.TraitExtraversion); got != 4 {
		t.Fatalf("expected extraversion delta 4, got %d", got)
	}
	if sheet.Personality.Responses != 2 || sheet.Personality.TotalPossible != 4 {
		t.Fatalf("unexpected personality counters: %+v", sheet.Personality)
	}
	if p := BuildProfile(sheet.Personality); p.DominantTrait != domain.TraitExtraversion {
		t.Fatalf("expected Extraversion dominant, got %s", p.DominantTrait)
	}
	if sheet.Processed != 2 {
		t.Fatalf("expected 2 processed, got %d", sheet.Processed)
	}
}

func TestScoreTotalsCountOnlyResolvedResponses(t *testing.T) {
	s := NewScorer(zap.NewNop())
	sheet, err := s.Score(LevelFoundation, []domain.ResponseRecord{
		resp("FC001", "A"),  // correct
		resp("FC002", "A"),  // wrong
		resp("F_C003", "D"), // correct, separator form
		resp("FS001", "B"),
		resp("ZZ999", "A"), // unknown
		resp("FS002", ""),  // empty answer
		resp("", "A"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cog := sheet.Tally(domain.CategoryCognitive)
	if cog.Total != 3 || cog.Correct != 2 || cog.Percentage != 66.7 {
		t.Fatalf("unexpected cognitive tally: %+v", cog)
	}
	skills := sheet.Tally(domain.CategorySkills)
	if skills.Total != 1 || skills.Correct != 1 || skills.Percentage != 100 {
		t.Fatalf("unexpected skills tally: %+v", skills)
	}
	if v := sheet.Tally(domain.CategoryValues); v.Total != 0 || v.Percentage != 0 {
		t.Fatalf("values must stay empty, got %+v", v)
	}
	if sheet.Processed != 4 || sheet.Skipped != 3 {
		t.Fatalf("expected 4 processed / 3 skipped, got %d / %d", sheet.Processed, sheet.Skipped)
	}
}

func TestScoreUnknownIDHasNoEffect(t *testing.T) {
	s := NewScorer(zap.NewNop())
	sheet, err := s.Score(LevelAdvanced, []domain.ResponseRecord{resp("XX001", "A")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range domain.TalliedCategories {
		if tally := sheet.Tally(c); tally.Total != 0 || tally.Correct != 0 {
			t.Fatalf("%s: expected empty tally, got %+v", c, tally)
		}
	}
	if sheet.Processed != 0 || sheet.Personality.Responses != 0 {
		t.Fatalf("unknown id must not be processed: %+v", sheet)
	}
}

func TestScoreGradedOptions(t *testing.T) {
	s := NewScorer(zap.NewNop())
	// FV001: A3 B5 C4 D2 E3; FT001: A1 B5 C2 D3 E1
	sheet, err := s.Score(LevelFoundation, []domain.ResponseRecord{
		resp("FV001", "B"),
		resp("FV001", "C"),
		resp("FV001", "D"),
		resp("FT001", "D"),
		resp("FT001", "B"),
		resp("FT001", "Z"), // not an option: attempted, never correct
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values := sheet.Tally(domain.CategoryValues)
	if values.Total != 3 || values.Correct != 2 {
		t.Fatalf("unexpected values tally: %+v", values)
	}
	situational := sheet.Tally(domain.CategorySituational)
	if situational.Total != 3 || situational.Correct != 1 || situational.Percentage != 33.3 {
		t.Fatalf("unexpected situational tally: %+v", situational)
	}
}

// Un id repetido se evalua en cada aparicion y en todas las categorias: los
// deltas de personalidad se acumulan y cada item de opcion cuenta un intento
// por aparicion, juzgado con su propia respuesta.
func TestScoreDuplicateQuestionIDs(t *testing.T) {
	s := NewScorer(zap.NewNop())
	sheet, err := s.Score(LevelFoundation, []domain.ResponseRecord{
		resp("FP001", "5"),
		resp("FP001", "5"),
		resp("FC001", "A"),
		resp("FC001", "B"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sheet.Personality.Delta(domain.TraitExtraversion); got != 4 {
		t.Fatalf("expected duplicated likert items to accumulate to 4, got %d", got)
	}
	cog := sheet.Tally(domain.CategoryCognitive)
	if cog.Total != 2 || cog.Correct != 1 {
		t.Fatalf("expected both occurrences to be evaluated, got %+v", cog)
	}
}

func TestScoreUnknownLevelFallsBack(t *testing.T) {
	s := NewScorer(zap.NewNop())
	sheet, err := s.Score(EducationLevel("Expert"), []domain.ResponseRecord{resp("IS001", "B")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sheet.Level != LevelIntermediate {
		t.Fatalf("expected Intermediate fallback, got %s", sheet.Level)
	}
	if sheet.Tally(domain.CategorySkills).Correct != 1 {
		t.Fatalf("expected the intermediate key to be used")
	}
}

func TestDominantTraitIsOrderIndependent(t *testing.T) {
	responses := []domain.ResponseRecord{
		resp("IP001", "4"),
		resp("IP005", "5"),
		resp("IP008", "Agree"),
		resp("IP011", "2"),
		resp("IP014", "Strongly Agree"),
		resp("IP015", "1"),
		resp("IP019", "5"),
		resp("IP010", "3"),
	}
	s := NewScorer(zap.NewNop())
	base, err := s.Score(LevelIntermediate, responses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := BuildProfile(base.Personality)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]domain.ResponseRecord(nil), responses...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		sheet, err := s.Score(LevelIntermediate, shuffled)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := BuildProfile(sheet.Personality)
		if got != want {
			t.Fatalf("permutation %d changed the profile: %+v vs %+v", i, got, want)
		}
	}
}
