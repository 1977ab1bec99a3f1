package assessment

import "career-path/internal/domain"

var (
	eScale = personalityItem{domain.TraitExtraversion, domain.LikertScale}
	eRev   = personalityItem{domain.TraitExtraversion, domain.LikertReverse}
	cScale = personalityItem{domain.TraitConscientiousness, domain.LikertScale}
	cRev   = personalityItem{domain.TraitConscientiousness, domain.LikertReverse}
	oScale = personalityItem{domain.TraitOpenness, domain.LikertScale}
	oRev   = personalityItem{domain.TraitOpenness, domain.LikertReverse}
	aScale = personalityItem{domain.TraitAgreeableness, domain.LikertScale}
	aRev   = personalityItem{domain.TraitAgreeableness, domain.LikertReverse}
	nScale = personalityItem{domain.TraitNeuroticism, domain.LikertScale}
	nRev   = personalityItem{domain.TraitNeuroticism, domain.LikertReverse}
)

// P001..P019 comparten layout; Advanced puntua P002 en sentido directo.
var standardPersonality = []personalityItem{
	eScale, eRev, eScale, eScale,
	cScale, cScale, cRev,
	oScale, oScale, oRev,
	aScale, aScale, aRev,
	nScale, nRev, nScale, nRev,
	oScale, cScale,
}

func advancedPersonality() []personalityItem {
	items := append([]personalityItem(nil), standardPersonality...)
	items[1] = eScale
	return items
}

var banks = map[EducationLevel]*QuestionBank{
	LevelFoundation: buildBank(LevelFoundation, bankSpec{
		prefix:      "F",
		personality: standardPersonality,
		skills:      "BACBCBCDBCABCBABCBB",
		cognitive:   "ABDBCCACCCACBAC",
		situational: [][5]int{
			{1, 5, 2, 3, 1},
			{1, 2, 5, 1, 1},
			{2, 1, 5, 1, 1},
			{2, 1, 5, 1, 1},
			{1, 5, 1, 2, 2},
			{1, 2, 5, 1, 1},
			{1, 2, 5, 1, 1},
			{1, 2, 5, 1, 1},
			{3, 5, 1, 1, 2},
			{1, 5, 2, 1, 1},
			{1, 2, 5, 3, 1},
		},
		values: [][5]int{
			{3, 5, 4, 2, 3},
			{2, 4, 5, 3, 4},
			{2, 1, 5, 4, 3},
			{3, 5, 2, 1, 4},
			{4, 3, 5, 2, 1},
			{2, 3, 5, 1, 4},
			{1, 5, 3, 2, 4},
			{5, 2, 3, 4, 1},
			{3, 2, 4, 5, 1},
			{1, 5, 3, 2, 4},
			{5, 4, 3, 2, 1},
		},
	}),
	LevelIntermediate: buildBank(LevelIntermediate, bankSpec{
		prefix:      "I",
		personality: standardPersonality,
		skills:      "BCBBBCDCCBCBBBBBBBC",
		cognitive:   "BBEBBCCBAACADBB",
		situational: [][5]int{
			{1, 2, 5, 1, 2},
			{1, 2, 5, 1, 2},
			{1, 2, 5, 1, 2},
			{1, 5, 2, 1, 1},
			{1, 5, 2, 1, 2},
			{2, 2, 5, 2, 3},
			{1, 2, 5, 1, 1},
			{2, 5, 3, 1, 2},
			{1, 5, 2, 2, 1},
			{1, 5, 2, 2, 1},
			{1, 5, 2, 3, 2},
		},
		values: [][5]int{
			{2, 3, 4, 3, 5},
			{3, 4, 2, 5, 4},
			{3, 5, 4, 4, 4},
			{3, 4, 3, 4, 5},
			{3, 5, 4, 4, 4},
			{2, 4, 3, 3, 5},
			{3, 5, 4, 4, 4},
			{3, 4, 3, 4, 5},
			{3, 5, 2, 4, 4},
			{3, 4, 3, 5, 4},
			{3, 4, 4, 4, 5},
		},
	}),
	LevelAdvanced: buildBank(LevelAdvanced, bankSpec{
		prefix:      "A",
		personality: advancedPersonality(),
		skills:      "BABBBBCABBBBBBBBBBB",
		cognitive:   "CBDACAACBBACBAB",
		situational: [][5]int{
			{1, 5, 2, 1, 1},
			{1, 2, 5, 3, 1},
			{1, 2, 5, 3, 2},
			{1, 2, 3, 5, 2},
			{1, 2, 5, 1, 1},
			{2, 1, 5, 3, 2},
			{1, 2, 5, 1, 1},
			{1, 2, 5, 1, 2},
			{1, 2, 5, 1, 1},
			{1, 2, 5, 1, 3},
			{1, 2, 5, 3, 1},
		},
		values: [][5]int{
			{2, 5, 1, 3, 2},
			{3, 4, 4, 3, 5},
			{5, 3, 4, 2, 2},
			{3, 5, 2, 4, 1},
			{3, 5, 4, 4, 2},
			{3, 4, 2, 3, 5},
			{2, 3, 4, 5, 3},
			{2, 3, 2, 5, 4},
			{2, 1, 5, 3, 1},
			{2, 5, 3, 2, 4},
			{2, 5, 3, 4, 3},
		},
	}),
}
