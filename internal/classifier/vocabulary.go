package classifier

import "sort"

// DefaultCode es el codigo de cualquier valor fuera del vocabulario.
const DefaultCode = 0

// Vocabulary codifica valores categoricos como los label encoders del
// entrenamiento: la lista ordenada de clases da el indice de cada valor.
type Vocabulary struct {
	classes []string
	index   map[string]int
}

func NewVocabulary(classes []string) Vocabulary {
	sorted := append([]string(nil), classes...)
	sort.Strings(sorted)
	uniq := sorted[:0]
	for i, c := range sorted {
		if i > 0 && c == sorted[i-1] {
			continue
		}
		uniq = append(uniq, c)
	}
	v := Vocabulary{classes: uniq, index: make(map[string]int, len(uniq))}
	for i, c := range uniq {
		v.index[c] = i
	}
	return v
}

// Encode devuelve el indice de la clase, o DefaultCode con known=false.
func (v Vocabulary) Encode(value string) (code int, known bool) {
	if i, ok := v.index[value]; ok {
		return i, true
	}
	return DefaultCode, false
}

func (v Vocabulary) Classes() []string {
	return append([]string(nil), v.classes...)
}

func (v Vocabulary) Len() int { return len(v.classes) }
