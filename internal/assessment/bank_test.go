package assessment

import (
	"testing"

	"career-path/internal/domain"
)

func TestBankSizes(t *testing.T) {
	for _, level := range []EducationLevel{LevelFoundation, LevelIntermediate, LevelAdvanced} {
		bank := BankFor(level)
		if bank.Level() != level {
			t.Fatalf("expected level %s, got %s", level, bank.Level())
		}
		want := map[domain.Category]int{
			domain.CategoryPersonality: 19,
			domain.CategorySkills:      19,
			domain.CategoryCognitive:   15,
			domain.CategorySituational: 11,
			domain.CategoryValues:      11,
		}
		for c, n := range want {
			if got := bank.CountByCategory(c); got != n {
				t.Fatalf("%s: expected %d %s questions, got %d", level, n, c, got)
			}
		}
		if bank.Len() != 75 {
			t.Fatalf("%s: expected 75 questions, got %d", level, bank.Len())
		}
	}
}

func TestBankLookupNormalizesSeparators(t *testing.T) {
	bank := BankFor(LevelIntermediate)
	withSep, ok := bank.Lookup("I_P001")
	if !ok {
		t.Fatalf("expected I_P001 to resolve")
	}
	plain, ok := bank.Lookup("IP001")
	if !ok {
		t.Fatalf("expected IP001 to resolve")
	}
	if withSep.ID != plain.ID || withSep.Trait != domain.TraitExtraversion {
		t.Fatalf("expected same definition, got %+v and %+v", withSep, plain)
	}
	if _, ok := bank.Lookup("FP001"); ok {
		t.Fatalf("foundation id must not resolve in intermediate bank")
	}
}

func TestBankDefinitions(t *testing.T) {
	f := BankFor(LevelFoundation)
	if q, _ := f.Lookup("FP002"); q.Variant != domain.LikertReverse || q.Trait != domain.TraitExtraversion {
		t.Fatalf("unexpected FP002 definition: %+v", q)
	}
	if q, _ := f.Lookup("FS008"); q.CorrectAnswer != "D" || q.Weight != 1 {
		t.Fatalf("unexpected FS008 definition: %+v", q)
	}
	if q, _ := f.Lookup("FT001"); q.ScoringMap["B"] != 5 || q.ScoringMap["D"] != 3 {
		t.Fatalf("unexpected FT001 scoring map: %+v", q.ScoringMap)
	}
	if q, _ := BankFor(LevelIntermediate).Lookup("IC003"); q.CorrectAnswer != "E" {
		t.Fatalf("expected IC003 key E, got %q", q.CorrectAnswer)
	}
	if q, _ := BankFor(LevelAdvanced).Lookup("AP002"); q.Variant != domain.LikertScale {
		t.Fatalf("expected AP002 to be direct keyed, got %s", q.Variant)
	}
}

func TestParseEducationLevel(t *testing.T) {
	cases := []struct {
		in   string
		want EducationLevel
		ok   bool
	}{
		{"Foundation", LevelFoundation, true},
		{" advanced ", LevelAdvanced, true},
		{"highschool", LevelFoundation, true},
		{"Bachelors", LevelIntermediate, true},
		{"phd", LevelAdvanced, true},
		{"kindergarten", LevelIntermediate, false},
		{"", LevelIntermediate, false},
	}
	for _, tc := range cases {
		got, ok := ParseEducationLevel(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseEducationLevel(%q) = %s,%v; want %s,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
	if BankFor(EducationLevel("unknown")).Level() != DefaultLevel {
		t.Fatalf("expected fallback to default bank")
	}
}
