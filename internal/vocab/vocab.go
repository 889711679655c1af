// Package vocab holds the keyword tables that drive extraction: the skill
// database, education and certification keywords, the name denylists, and
// the surname repair map. Tables ship with built-in defaults and can be
// replaced or extended by an external JSON file.
package vocab

import (
	"sort"
	"strings"
)

// Vocabulary groups every externally loadable keyword table.
// Matching against these tables is case-insensitive throughout.
type Vocabulary struct {
	// SkillsByCategory maps a category label to its skill phrases.
	SkillsByCategory map[string][]string `json:"skills_by_category"`

	// EducationKeywords mark a line as an education line.
	EducationKeywords []string `json:"education_keywords"`

	// CertificationKeywords are scanned in order; the first line containing
	// each keyword is captured as a certification.
	CertificationKeywords []string `json:"certification_keywords"`

	// JobTitleDenylist rejects name candidates containing job-title words.
	JobTitleDenylist []string `json:"job_title_denylist"`

	// TechTermDenylist rejects name candidates containing technology terms.
	TechTermDenylist []string `json:"tech_term_denylist"`

	// ConnectorWords reject name candidates containing generic filler words.
	// Unlike the denylists these match whole words, not substrings.
	ConnectorWords []string `json:"connector_words"`

	// SurnameRepairs maps OCR-truncated surnames to their full form,
	// e.g. "umar" -> "Kumar". Keys are lowercase.
	SurnameRepairs map[string]string `json:"surname_repairs"`
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	return &Vocabulary{
		SkillsByCategory: map[string][]string{
			"programming": {"python", "java", "javascript", "c++", "c#", "ruby", "go", "rust", "php", "swift", "kotlin", "typescript"},
			"web":         {"react", "angular", "vue", "node.js", "express", "django", "flask", "fastapi", "html", "css", "tailwind"},
			"data":        {"sql", "mongodb", "postgresql", "mysql", "redis", "elasticsearch", "pandas", "numpy", "spark"},
			"ml":          {"machine learning", "deep learning", "tensorflow", "pytorch", "scikit-learn", "keras", "nlp", "computer vision"},
			"cloud":       {"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins", "ci/cd"},
			"tools":       {"git", "jira", "agile", "scrum", "rest api", "graphql", "microservices"},
		},
		EducationKeywords: []string{
			"bachelor", "master", "phd", "b.tech", "m.tech", "b.s", "m.s", "mba", "degree", "university", "college",
		},
		CertificationKeywords: []string{
			"certified", "certification", "certificate", "aws", "azure", "google cloud", "pmp", "cissp",
		},
		JobTitleDenylist: []string{
			"developer", "engineer", "manager", "associate", "consultant", "analyst",
			"intern", "designer", "architect", "lead", "senior", "junior", "staff",
			"principal", "director", "head", "chief", "officer", "specialist",
			"stack", "frontend", "backend", "fullstack", "full-stack", "full stack",
			"software", "data", "web", "mobile", "cloud", "security", "network",
			"product", "project", "program", "technical", "tech", "it", "qa", "qe",
			"coordinator", "administrator", "executive", "assistant", "representative",
		},
		TechTermDenylist: []string{
			"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "go", "rust", "php", "swift", "kotlin",
			"react", "angular", "vue", "node", "nodejs", "express", "django", "flask", "fastapi", "spring",
			"pandas", "numpy", "scipy", "matplotlib", "seaborn", "plotly", "tensorflow", "pytorch", "keras",
			"docker", "kubernetes", "git", "github", "gitlab", "jenkins", "aws", "azure", "gcp",
			"linux", "windows", "macos", "ubuntu", "debian",
			"adobe", "photoshop", "illustrator", "figma", "sketch", "xd",
			"mongodb", "postgresql", "mysql", "redis", "elasticsearch", "sql",
			"api", "rest", "graphql", "microservices", "devops", "agile", "scrum", "jira",
		},
		ConnectorWords: []string{
			"with", "and", "the", "for", "in", "at", "to", "of", "undergraduate", "graduate", "student",
		},
		SurnameRepairs: map[string]string{
			"umar":  "Kumar",
			"harma": "Sharma",
			"ingh":  "Singh",
			"upta":  "Gupta",
			"atel":  "Patel",
			"erma":  "Verma",
			"eddy":  "Reddy",
			"ishra": "Mishra",
			"adav":  "Yadav",
		},
	}
}

// AllSkills flattens the category map into one deduplicated, sorted phrase
// list. Dedup is case-insensitive; the first spelling seen wins.
func (v *Vocabulary) AllSkills() []string {
	seen := make(map[string]bool)
	skills := make([]string, 0, 64)

	categories := make([]string, 0, len(v.SkillsByCategory))
	for category := range v.SkillsByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for _, skill := range v.SkillsByCategory[category] {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			skills = append(skills, skill)
		}
	}

	sort.Strings(skills)
	return skills
}

// MergeWithDefaults fills any table the loaded file omitted with the
// built-in default. Tables explicitly present in the file, even if empty,
// are kept as given.
func (v *Vocabulary) MergeWithDefaults() {
	defaults := Default()

	if v.SkillsByCategory == nil {
		v.SkillsByCategory = defaults.SkillsByCategory
	}
	if v.EducationKeywords == nil {
		v.EducationKeywords = defaults.EducationKeywords
	}
	if v.CertificationKeywords == nil {
		v.CertificationKeywords = defaults.CertificationKeywords
	}
	if v.JobTitleDenylist == nil {
		v.JobTitleDenylist = defaults.JobTitleDenylist
	}
	if v.TechTermDenylist == nil {
		v.TechTermDenylist = defaults.TechTermDenylist
	}
	if v.ConnectorWords == nil {
		v.ConnectorWords = defaults.ConnectorWords
	}
	if v.SurnameRepairs == nil {
		v.SurnameRepairs = defaults.SurnameRepairs
	}
}

// Validate checks that every table extraction depends on is present and
// non-empty. A missing required table is a configuration error and callers
// are expected to treat it as fatal.
func (v *Vocabulary) Validate() error {
	if len(v.SkillsByCategory) == 0 {
		return &Error{Message: "skills_by_category must contain at least one category"}
	}
	if len(v.AllSkills()) == 0 {
		return &Error{Message: "skills_by_category must contain at least one skill"}
	}
	if len(v.EducationKeywords) == 0 {
		return &Error{Message: "education_keywords must not be empty"}
	}
	if len(v.CertificationKeywords) == 0 {
		return &Error{Message: "certification_keywords must not be empty"}
	}
	if len(v.JobTitleDenylist) == 0 {
		return &Error{Message: "job_title_denylist must not be empty"}
	}
	if len(v.TechTermDenylist) == 0 {
		return &Error{Message: "tech_term_denylist must not be empty"}
	}
	return nil
}
