package recommend

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultTopN    = 4
	EducationBonus = 0.15
)

// HybridWeights reparte el puntaje fusionado entre las tres señales.
type HybridWeights struct {
	Content       float64
	Collaborative float64
	Popularity    float64
}

// DefaultWeights es la mezcla 0.4/0.3/0.3.
func DefaultWeights() HybridWeights {
	return HybridWeights{Content: 0.4, Collaborative: 0.3, Popularity: 0.3}
}

// Validate exige pesos no negativos que sumen 1.
func (w HybridWeights) Validate() error {
	sum := w.Content + w.Collaborative + w.Popularity
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", sum)
	}
	for _, v := range []float64{w.Content, w.Collaborative, w.Popularity} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// MinMaxNormalize escala a [0,1]. Un vector con desvio cero se devuelve sin cambios.
func MinMaxNormalize(scores []float64) []float64 {
	out := append([]float64(nil), scores...)
	if len(out) == 0 {
		return out
	}
	if _, std := stat.PopMeanStdDev(out, nil); std == 0 {
		return out
	}
	lo, hi := floats.Min(out), floats.Max(out)
	if hi == lo {
		return out
	}
	for i := range out {
		out[i] = (out[i] - lo) / (hi - lo)
	}
	return out
}

// Candidate es un rol del cluster con sus tres señales ya normalizadas.
type Candidate struct {
	Index          int
	Content        float64
	Collaborative  float64
	Popularity     float64
	EducationMatch bool
	Fused          float64
}

// Fuse normaliza cada señal por separado, combina con w y suma el bono de educacion.
func Fuse(indices []int, content, collab, popularity []float64, educationMatch []bool, w HybridWeights) []Candidate {
	cn := MinMaxNormalize(content)
	kn := MinMaxNormalize(collab)
	pn := MinMaxNormalize(popularity)

	out := make([]Candidate, len(indices))
	for a, idx := range indices {
		c := Candidate{
			Index:         idx,
			Content:       cn[a],
			Collaborative: kn[a],
			Popularity:    pn[a],
		}
		c.Fused = w.Content*c.Content + w.Collaborative*c.Collaborative + w.Popularity*c.Popularity
		if a < len(educationMatch) && educationMatch[a] {
			c.EducationMatch = true
			c.Fused += EducationBonus
		}
		out[a] = c
	}
	return out
}

// Rank ordena por puntaje descendente conservando el orden del corpus en empates
// y devuelve los primeros topN.
func Rank(candidates []Candidate, topN int) []Candidate {
	if topN <= 0 {
		topN = DefaultTopN
	}
	ranked := append([]Candidate(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Fused > ranked[j].Fused })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
