package domain

// CareerRole es una fila del corpus de roles.
type CareerRole struct {
	Cluster              string `json:"career_cluster"`
	Role                 string `json:"career_role"`
	RequiredSkills       string `json:"required_skills"`
	EducationRequired    string `json:"education_level_required"`
	SalaryRange          string `json:"avg_salary_range"`
	Outlook              string `json:"job_outlook"`
	GrowthPath           string `json:"growth_path"`
	LearningResources    string `json:"learning_resources"`
	EntranceExams        string `json:"entrance_exams"`
	FieldForAdmission    string `json:"field_for_admission"`
	OnlineResourcesLinks string `json:"online_resources_links"`
	FreeCertifications   string `json:"free_certifications"`
}

// Recommendation es un rol rankeado con el desglose de sus puntajes.
type Recommendation struct {
	Rank int `json:"rank"`
	CareerRole
	ConfidenceScore    float64 `json:"confidence_score"`
	ContentScore       float64 `json:"content_score"`
	CollaborativeScore float64 `json:"collaborative_score"`
	PopularityScore    float64 `json:"popularity_score"`
}
