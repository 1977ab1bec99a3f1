package domain

// Trait identifica una de las cinco dimensiones Big Five.
type Trait string

const (
	TraitExtraversion      Trait = "Extraversion"
	TraitConscientiousness Trait = "Conscientiousness"
	TraitOpenness          Trait = "Openness"
	TraitAgreeableness     Trait = "Agreeableness"
	TraitNeuroticism       Trait = "Neuroticism"
)

// CanonicalTraits fija el orden de desempate al elegir el rasgo dominante.
var CanonicalTraits = [...]Trait{
	TraitExtraversion,
	TraitConscientiousness,
	TraitOpenness,
	TraitAgreeableness,
	TraitNeuroticism,
}

// Index devuelve la posicion canonica del rasgo o -1 si no es valido.
func (t Trait) Index() int {
	for i, c := range CanonicalTraits {
		if c == t {
			return i
		}
	}
	return -1
}

func (t Trait) Valid() bool { return t.Index() >= 0 }

// Archetype agrupa el tipo de personalidad y su descripcion para un rasgo dominante.
type Archetype struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

var archetypes = map[Trait]Archetype{
	TraitExtraversion: {
		Type:        "Social Connector",
		Description: "Thrives in social interactions and enjoys meeting new people",
	},
	TraitConscientiousness: {
		Type:        "Organized Achiever",
		Description: "Organized, disciplined, and achievement-oriented",
	},
	TraitOpenness: {
		Type:        "Creative Explorer",
		Description: "Creative, curious, and open to new experiences",
	},
	TraitAgreeableness: {
		Type:        "Collaborative Helper",
		Description: "Cooperative, empathetic, and team-oriented",
	},
	TraitNeuroticism: {
		Type:        "Thoughtful Analyzer",
		Description: "Thoughtful and analytical, may experience stress in high-pressure situations",
	},
}

// BalancedArchetype se usa solo si el rasgo no pertenece a la tabla.
var BalancedArchetype = Archetype{
	Type:        "Balanced Individual",
	Description: "Shows balanced traits across multiple dimensions",
}

// ArchetypeFor busca el arquetipo fijo del rasgo.
func ArchetypeFor(t Trait) Archetype {
	if a, ok := archetypes[t]; ok {
		return a
	}
	return BalancedArchetype
}
