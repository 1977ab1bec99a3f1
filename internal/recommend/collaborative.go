package recommend

import (
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"career-path/internal/domain"
)

const (
	defaultSalaryMidpoint = 10.0
	defaultEducation      = "Graduation"
	defaultOutlook        = "Medium"

	fitNeighbors   = 15
	queryNeighbors = 10

	numericFeatures = 4
)

// SalaryMidpoint promedia los dos limites de un rango como "7-25 LPA".
// Cualquier otro formato devuelve 10.
func SalaryMidpoint(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return defaultSalaryMidpoint
	}
	bounds := strings.Split(fields[0], "-")
	if len(bounds) != 2 {
		return defaultSalaryMidpoint
	}
	lo, err := strconv.ParseFloat(bounds[0], 64)
	if err != nil {
		return defaultSalaryMidpoint
	}
	hi, err := strconv.ParseFloat(bounds[1], 64)
	if err != nil {
		return defaultSalaryMidpoint
	}
	return (lo + hi) / 2
}

// SkillCount cuenta los skills separados por ';'.
func SkillCount(skills string) int {
	n := 0
	for _, s := range strings.Split(skills, ";") {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// ordinalEncoder asigna a cada valor su posicion en la lista ordenada de distintos.
func ordinalEncoder(values []string) map[string]float64 {
	distinct := make(map[string]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}
	sorted := make([]string, 0, len(distinct))
	for v := range distinct {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)
	enc := make(map[string]float64, len(sorted))
	for i, v := range sorted {
		enc[v] = float64(i)
	}
	return enc
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// CollaborativeSimilarityIndex estandariza los rasgos numericos de cada rol y
// mide la densidad de vecinos alrededor de un rol en todo el corpus.
type CollaborativeSimilarityIndex struct {
	raw    [][]float64
	scaled [][]float64
	mean   []float64
	scale  []float64
	k      int
}

// NewCollaborativeSimilarityIndex codifica y ajusta el indice de vecinos.
func NewCollaborativeSimilarityIndex(roles []domain.CareerRole) *CollaborativeSimilarityIndex {
	n := len(roles)
	education := make([]string, n)
	outlook := make([]string, n)
	for i, r := range roles {
		education[i] = orDefault(r.EducationRequired, defaultEducation)
		outlook[i] = orDefault(r.Outlook, defaultOutlook)
	}
	eduEnc := ordinalEncoder(education)
	outEnc := ordinalEncoder(outlook)

	idx := &CollaborativeSimilarityIndex{
		raw:   make([][]float64, n),
		mean:  make([]float64, numericFeatures),
		scale: make([]float64, numericFeatures),
		k:     min(fitNeighbors, n),
	}
	for i, r := range roles {
		idx.raw[i] = []float64{
			eduEnc[education[i]],
			SalaryMidpoint(r.SalaryRange),
			outEnc[outlook[i]],
			float64(SkillCount(r.RequiredSkills)),
		}
	}

	col := make([]float64, n)
	for f := 0; f < numericFeatures; f++ {
		for i := range idx.raw {
			col[i] = idx.raw[i][f]
		}
		idx.scale[f] = 1
		if n == 0 {
			continue
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		idx.mean[f] = mean
		if std > 0 {
			idx.scale[f] = std
		}
	}

	idx.scaled = make([][]float64, n)
	for i, v := range idx.raw {
		idx.scaled[i] = idx.standardize(v)
	}
	return idx
}

func (c *CollaborativeSimilarityIndex) standardize(v []float64) []float64 {
	out := make([]float64, len(v))
	for f := range v {
		out[f] = (v[f] - c.mean[f]) / c.scale[f]
	}
	return out
}

// Features devuelve el vector crudo (educacion, salario, outlook, skills) de un rol.
func (c *CollaborativeSimilarityIndex) Features(i int) []float64 {
	return append([]float64(nil), c.raw[i]...)
}

// FitNeighbors es el k con el que se ajusto el indice.
func (c *CollaborativeSimilarityIndex) FitNeighbors() int { return c.k }

// neighborDistances devuelve las k distancias euclidianas mas cortas a q.
func (c *CollaborativeSimilarityIndex) neighborDistances(q []float64, k int) []float64 {
	dists := make([]float64, len(c.scaled))
	for i, v := range c.scaled {
		dists[i] = floats.Distance(q, v, 2)
	}
	sort.Float64s(dists)
	if k > len(dists) {
		k = len(dists)
	}
	return dists[:k]
}

// Scores calcula 1/(1+distancia media) para cada candidato, consultando
// min(10, len(candidates)) vecinos en todo el corpus.
func (c *CollaborativeSimilarityIndex) Scores(candidates []int) []float64 {
	out := make([]float64, len(candidates))
	if len(candidates) == 0 {
		return out
	}
	k := min(queryNeighbors, len(candidates))
	for a, i := range candidates {
		d := c.neighborDistances(c.standardize(c.raw[i]), k)
		out[a] = 1 / (1 + stat.Mean(d, nil))
	}
	return out
}
