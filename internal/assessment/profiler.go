package assessment

import "career-path/internal/domain"

const (
	defaultConfidence = 50.0
	maxDeltaPerTrait  = 4
)

// Profile es el resultado de personalidad de un envio.
type Profile struct {
	DominantTrait domain.Trait
	domain.Archetype
	Confidence float64
}

// BuildProfile elige el rasgo dominante (empates al primero en orden canonico)
// y deriva una confianza 0-100 de los deltas absolutos.
func BuildProfile(state domain.PersonalityState) Profile {
	if state.Responses == 0 {
		return Profile{
			DominantTrait: domain.TraitExtraversion,
			Archetype:     domain.ArchetypeFor(domain.TraitExtraversion),
			Confidence:    defaultConfidence,
		}
	}

	best := 0
	sum := 0
	for i, d := range state.Deltas {
		if d > state.Deltas[best] {
			best = i
		}
		if d < 0 {
			d = -d
		}
		sum += d
	}
	dominant := domain.CanonicalTraits[best]

	confidence := defaultConfidence
	if sum > 0 {
		confidence = float64(sum) / float64(len(domain.CanonicalTraits)*maxDeltaPerTrait) * 100
		if confidence > 100 {
			confidence = 100
		}
		if confidence < 0 {
			confidence = 0
		}
	}

	return Profile{
		DominantTrait: dominant,
		Archetype:     domain.ArchetypeFor(dominant),
		Confidence:    confidence,
	}
}
