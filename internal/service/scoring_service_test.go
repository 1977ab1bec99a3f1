package service

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"career-path/internal/domain"
)

func record(id, answer string) domain.ResponseRecord {
	return domain.ResponseRecord{QuestionID: id, Answer: domain.Answer(answer)}
}

func TestScoringServiceScoresFoundationExample(t *testing.T) {
	svc := NewScoringService(zap.NewNop())
	res, err := svc.Score(ScoringRequest{
		EducationLevel: "Foundation",
		Username:       "ana",
		Responses: []domain.ResponseRecord{
			record("FP001", "5"),
			record("FP002", "1"),
			record("ZZ999", "A"),
			record("FC001", "A"),
			record("F_T001", "B"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PersonalityDominantTrait != "Extraversion" || res.PersonalityType != "Social Connector" {
		t.Fatalf("unexpected profile: %+v", res)
	}
	// |+4| / (5*4) * 100
	if res.PersonalityScore != 20 {
		t.Fatalf("expected personality score 20, got %v", res.PersonalityScore)
	}
	if res.ProcessedResponses != 4 {
		t.Fatalf("unknown id must not be processed, got %d", res.ProcessedResponses)
	}
	if res.CognitiveScore != 1 || res.SituationalScore != 1 || res.SkillsScore != 0 || res.ValuesScore != 0 {
		t.Fatalf("unexpected category scores: %+v", res)
	}
	d := res.DetailedScores
	if d == nil || d.Cognitive.Total != 1 || d.Situational.Total != 1 || d.Skills.Total != 0 || d.Values.Total != 0 {
		t.Fatalf("totals must count attempted questions only: %+v", d)
	}
	if d.Personality.Responses != 2 || d.Personality.TotalPossible != 4 {
		t.Fatalf("unexpected personality detail: %+v", d.Personality)
	}
	if res.Username != "ana" || res.EducationLevel != "Foundation" || res.Error != "" {
		t.Fatalf("unexpected header fields: %+v", res)
	}
}

func TestScoringServiceDefaults(t *testing.T) {
	svc := NewScoringService(zap.NewNop())
	res, err := svc.Score(ScoringRequest{Responses: []domain.ResponseRecord{record("IS001", "B")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Username != "Unknown User" || res.EducationLevel != "Intermediate" {
		t.Fatalf("unexpected defaults: %+v", res)
	}
	if res.PersonalityDominantTrait != "Extraversion" || res.PersonalityScore != 50 {
		t.Fatalf("expected neutral personality defaults, got %+v", res)
	}
}

func TestScoringServiceEmptyResponses(t *testing.T) {
	svc := NewScoringService(zap.NewNop())
	res, err := svc.Score(ScoringRequest{Username: "ana"})
	if err == nil || !IsEmptyInput(err) {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if res.Error == "" || res.PersonalityType != "Assessment Error" || res.Username != "Unknown" {
		t.Fatalf("unexpected error result: %+v", res)
	}
	if res.DetailedScores != nil || res.ProcessedResponses != 0 {
		t.Fatalf("error result must be zeroed: %+v", res)
	}

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["detailed_scores"]; ok {
		t.Fatalf("error payload must not carry detailed_scores")
	}
	if decoded["cognitive_score"] != float64(0) {
		t.Fatalf("expected zeroed cognitive_score, got %v", decoded["cognitive_score"])
	}
}

func TestScoringRequestAcceptsNumericAnswers(t *testing.T) {
	var req ScoringRequest
	body := `{"username":"ana","education_level":"Foundation","responses":[{"Question_ID":"FP001","Answer":5},{"Question_ID":"FC001","Answer":"A"}]}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	res, err := NewScoringService(zap.NewNop()).Score(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DetailedScores.Personality.Responses != 1 || res.PersonalityScore != 10 {
		t.Fatalf("numeric likert answer not scored: %+v", res)
	}
}
