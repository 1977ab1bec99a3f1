package recommend

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"career-path/internal/domain"
)

var (
	ErrCorpusNotFound = errors.New("role corpus not found")
	ErrEmptyCorpus    = errors.New("role corpus is empty")
)

// Corpus es el conjunto ordenado e inmutable de roles mas su version de contenido.
type Corpus struct {
	roles   []domain.CareerRole
	version string
}

// NewCorpus copia los roles y calcula la version.
func NewCorpus(roles []domain.CareerRole) *Corpus {
	c := &Corpus{roles: append([]domain.CareerRole(nil), roles...)}
	c.version = versionOf(c.roles)
	return c
}

func (c *Corpus) Len() int { return len(c.roles) }

func (c *Corpus) Role(i int) domain.CareerRole { return c.roles[i] }

// Version cambia cuando cambia cualquier campo de cualquier rol.
func (c *Corpus) Version() string { return c.version }

// Roles devuelve una copia de las filas en orden de corpus.
func (c *Corpus) Roles() []domain.CareerRole {
	return append([]domain.CareerRole(nil), c.roles...)
}

// ClusterIndices devuelve las posiciones de los roles del cluster, en orden.
func (c *Corpus) ClusterIndices(cluster string) []int {
	var idx []int
	for i, r := range c.roles {
		if r.Cluster == cluster {
			idx = append(idx, i)
		}
	}
	return idx
}

// Clusters lista los clusters distintos en orden de aparicion.
func (c *Corpus) Clusters() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range c.roles {
		if !seen[r.Cluster] {
			seen[r.Cluster] = true
			out = append(out, r.Cluster)
		}
	}
	return out
}

func versionOf(roles []domain.CareerRole) string {
	h := sha256.New()
	for _, r := range roles {
		for _, f := range roleFields(&r) {
			io.WriteString(h, *f)
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func roleFields(r *domain.CareerRole) []*string {
	return []*string{
		&r.Cluster, &r.Role, &r.RequiredSkills, &r.EducationRequired, &r.SalaryRange, &r.Outlook,
		&r.GrowthPath, &r.LearningResources, &r.EntranceExams, &r.FieldForAdmission,
		&r.OnlineResourcesLinks, &r.FreeCertifications,
	}
}

// columnKey unifica los headers crudos (CareerCluster) y canonicos
// (Career_Cluster) en una sola clave.
func columnKey(header string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(header), "_", ""))
}

var columnSetters = map[string]func(r *domain.CareerRole, v string){
	"careercluster":          func(r *domain.CareerRole, v string) { r.Cluster = v },
	"careerrole":             func(r *domain.CareerRole, v string) { r.Role = v },
	"requiredskills":         func(r *domain.CareerRole, v string) { r.RequiredSkills = v },
	"educationlevelrequired": func(r *domain.CareerRole, v string) { r.EducationRequired = v },
	"avgsalaryrange":         func(r *domain.CareerRole, v string) { r.SalaryRange = v },
	"joboutlook":             func(r *domain.CareerRole, v string) { r.Outlook = v },
	"growthpath":             func(r *domain.CareerRole, v string) { r.GrowthPath = v },
	"learningresources":      func(r *domain.CareerRole, v string) { r.LearningResources = v },
	"entranceexams":          func(r *domain.CareerRole, v string) { r.EntranceExams = v },
	"fieldforadmission":      func(r *domain.CareerRole, v string) { r.FieldForAdmission = v },
	"onlineresourceslinks":   func(r *domain.CareerRole, v string) { r.OnlineResourcesLinks = v },
	"freecertifications":     func(r *domain.CareerRole, v string) { r.FreeCertifications = v },
}

// ReadCSV parsea una tabla de roles. Columnas desconocidas se ignoran; cluster
// y rol son obligatorias.
func ReadCSV(r io.Reader) (*Corpus, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCorpus
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	setters := make([]func(*domain.CareerRole, string), len(header))
	found := make(map[string]bool)
	for i, h := range header {
		key := columnKey(strings.TrimPrefix(h, "\ufeff"))
		if set, ok := columnSetters[key]; ok {
			setters[i] = set
			found[key] = true
		}
	}
	if !found["careercluster"] || !found["careerrole"] {
		return nil, fmt.Errorf("role corpus header missing cluster or role column")
	}

	var roles []domain.CareerRole
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(roles)+1, err)
		}
		var role domain.CareerRole
		for i, v := range rec {
			if i < len(setters) && setters[i] != nil {
				setters[i](&role, strings.TrimSpace(v))
			}
		}
		roles = append(roles, role)
	}
	if len(roles) == 0 {
		return nil, ErrEmptyCorpus
	}
	return NewCorpus(roles), nil
}

// LoadCSV lee la tabla de roles de path.
func LoadCSV(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// LoadOrSeed carga path y ante cualquier falla usa SeedCorpus.
func LoadOrSeed(path string, logger *zap.Logger) *Corpus {
	c, err := LoadCSV(path)
	if err != nil {
		if logger != nil {
			logger.Warn("role corpus unavailable, using seed corpus", zap.String("path", path), zap.Error(err))
		}
		return SeedCorpus()
	}
	if logger != nil {
		logger.Info("role corpus loaded", zap.String("path", path), zap.Int("roles", c.Len()), zap.Strings("clusters", c.Clusters()))
	}
	return c
}

// SeedCorpus es el corpus semilla de un solo cluster.
func SeedCorpus() *Corpus {
	names := []string{"Software Developer", "Web Developer", "Mobile App Developer", "DevOps Engineer"}
	roles := make([]domain.CareerRole, 0, len(names))
	for _, name := range names {
		roles = append(roles, domain.CareerRole{
			Cluster:              "IT",
			Role:                 name,
			RequiredSkills:       "Programming; Problem Solving; Debugging",
			EducationRequired:    "Graduation",
			SalaryRange:          "7-25 LPA",
			Outlook:              "High",
			GrowthPath:           fmt.Sprintf("Junior %s > %s > Senior %s", name, name, name),
			LearningResources:    "Online Courses; Certifications",
			EntranceExams:        "Technical Tests",
			FieldForAdmission:    "Computer Science",
			OnlineResourcesLinks: "https://coursera.org",
			FreeCertifications:   "Google IT",
		})
	}
	return NewCorpus(roles)
}
