package analyze

import (
	"sort"
	"strings"
)

// Fit score bounds and shape. The score is a rough heuristic based on how
// many known skills appear in the text; it is not a calibrated model and
// callers must not treat it as authoritative.
const (
	fitScoreFloor    = 20
	fitScoreBase     = 40
	fitScorePerSkill = 7
	fitScoreCeiling  = 95
)

// skillKeywords are matched case-insensitively as substrings.
var skillKeywords = []string{
	"python", "java", "javascript", "react", "vue",
	"docker", "kubernetes", "sql", "nosql", "linux",
	"machine learning", "deep learning",
	"data analysis", "api", "cloud", "aws", "azure",
	"fastapi", "flask", "django",
}

// languageKeywords are spoken languages commonly named in job postings.
var languageKeywords = []string{
	"english", "german", "french", "arabic", "persian", "norwegian",
}

// techKeywords cover infrastructure and tooling mentions.
var techKeywords = []string{
	"aws", "gcp", "azure",
	"docker", "kubernetes",
	"tensorflow", "pytorch",
	"fastapi", "flask", "django",
	"postgres", "mysql", "mongodb",
	"redis",
}

// Analysis holds the attributes extracted from a job posting text.
type Analysis struct {
	Skills      []string `json:"skills"`
	Languages   []string `json:"languages"`
	TechStack   []string `json:"tech_stack"`
	JobFitScore int      `json:"job_fit_score"`
}

// Analyze runs all attribute extractors over text and derives the fit score.
func Analyze(text string) Analysis {
	skills := FindSkills(text)
	return Analysis{
		Skills:      skills,
		Languages:   FindLanguages(text),
		TechStack:   FindTech(text),
		JobFitScore: EstimateFitScore(skills),
	}
}

// FindSkills returns the known skill keywords present in text,
// sorted and deduplicated.
func FindSkills(text string) []string {
	return matchSorted(text, skillKeywords)
}

// FindLanguages returns the spoken languages mentioned in text,
// in first-seen (list) order.
func FindLanguages(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, 2)
	for _, lang := range languageKeywords {
		if strings.Contains(lower, lang) {
			found = append(found, lang)
		}
	}
	return found
}

// FindTech returns the technology keywords present in text,
// sorted and deduplicated.
func FindTech(text string) []string {
	return matchSorted(text, techKeywords)
}

// EstimateFitScore maps the number of matched skills onto [20, 95].
// More skills found means a better score; the result is monotonically
// non-decreasing in the number of skills.
func EstimateFitScore(skills []string) int {
	if len(skills) == 0 {
		return fitScoreFloor
	}

	score := fitScoreBase + fitScorePerSkill*len(skills)
	if score > fitScoreCeiling {
		return fitScoreCeiling
	}
	return score
}

// matchSorted performs case-insensitive substring matching against a fixed
// keyword list and returns sorted, deduplicated matches.
func matchSorted(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	found := make([]string, 0, 4)

	for _, kw := range keywords {
		if _, dup := seen[kw]; dup {
			continue
		}
		if strings.Contains(lower, kw) {
			seen[kw] = struct{}{}
			found = append(found, kw)
		}
	}

	sort.Strings(found)
	return found
}
