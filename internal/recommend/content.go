package recommend

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const (
	maxVocabulary = 200
	maxDocFreq    = 0.95
)

var tokenPattern = regexp.MustCompile(`\w\w+`)

// ContentSimilarityIndex guarda la matriz coseno de los skills de todo el corpus.
type ContentSimilarityIndex struct {
	vocabulary []string
	sim        [][]float64
}

// analyze devuelve unigramas y bigramas sin stop-words, en orden de aparicion.
func analyze(text string) []string {
	var words []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		words = append(words, tok)
	}
	terms := append([]string(nil), words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// NewContentSimilarityIndex vectoriza los textos con tf-idf suavizado y
// calcula la similitud coseno entre todos los pares.
func NewContentSimilarityIndex(texts []string) *ContentSimilarityIndex {
	n := len(texts)
	docs := make([]map[string]float64, n)
	df := make(map[string]int)
	tf := make(map[string]int)
	for i, text := range texts {
		counts := make(map[string]float64)
		for _, term := range analyze(text) {
			counts[term]++
			tf[term]++
		}
		for term := range counts {
			df[term]++
		}
		docs[i] = counts
	}

	limit := maxDocFreq * float64(n)
	var candidates []string
	for term, d := range df {
		if float64(d) <= limit {
			candidates = append(candidates, term)
		}
	}
	sort.Slice(candidates, func(a, b int) bool {
		ta, tb := tf[candidates[a]], tf[candidates[b]]
		if ta != tb {
			return ta > tb
		}
		return candidates[a] < candidates[b]
	})
	if len(candidates) > maxVocabulary {
		candidates = candidates[:maxVocabulary]
	}
	sort.Strings(candidates)

	vectors := make([][]float64, n)
	for i, counts := range docs {
		v := make([]float64, len(candidates))
		for j, term := range candidates {
			if c := counts[term]; c > 0 {
				idf := math.Log(float64(1+n)/float64(1+df[term])) + 1
				v[j] = c * idf
			}
		}
		if norm := floats.Norm(v, 2); norm > 0 {
			floats.Scale(1/norm, v)
		}
		vectors[i] = v
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		sim[i][i] = 1
		for j := i + 1; j < n; j++ {
			s := 0.0
			if len(candidates) > 0 {
				s = floats.Dot(vectors[i], vectors[j])
			}
			sim[i][j], sim[j][i] = s, s
		}
	}
	return &ContentSimilarityIndex{vocabulary: candidates, sim: sim}
}

// Similarity devuelve la similitud coseno entre dos roles del corpus.
func (c *ContentSimilarityIndex) Similarity(i, j int) float64 { return c.sim[i][j] }

// Vocabulary devuelve los terminos retenidos en orden alfabetico.
func (c *ContentSimilarityIndex) Vocabulary() []string {
	return append([]string(nil), c.vocabulary...)
}

// Scores es la media por fila de la submatriz de candidates, diagonal incluida.
func (c *ContentSimilarityIndex) Scores(candidates []int) []float64 {
	out := make([]float64, len(candidates))
	if len(candidates) == 0 {
		return out
	}
	for a, i := range candidates {
		sum := 0.0
		for _, j := range candidates {
			sum += c.sim[i][j]
		}
		out[a] = sum / float64(len(candidates))
	}
	return out
}
