// Package profile holds the typed candidate and job profiles scored by the matcher
// and the decoders that build them from tabular records, LLM extractions and payloads.
package profile

import (
	"time"

	"github.com/spigell/hr-matcher/internal/level"
)

// Unknown marks a day count that the source did not provide.
const Unknown = -1

// Candidate is the applicant side of a match. List fields are always non-nil and trimmed.
type Candidate struct {
	ID                  string
	TechnicalSkills     []string
	Tools               []string
	SoftSkills          []string
	Seniority           string
	Education           string
	LanguageProficiency string
	Resume              string
	Location            string

	Comment         string
	Recruiter       string
	DaysInProcess   int
	DaysSinceUpdate int

	HasEmail          bool
	HasPhone          bool
	HasLinkedIn       bool
	CompletenessScore float64
	// LocalToJob is set when the source already decided whether the candidate is local.
	LocalToJob *bool
}

// Job is the vacancy side of a match.
type Job struct {
	ID                  string
	Title               string
	TechnicalSkills     []string
	Tools               []string
	NiceToHaveSkills    []string
	SoftSkills          []string
	Seniority           string
	Education           string
	LanguageProficiency string
	Activities          string
	Locations           []string
}

// MatchPair associates one candidate with one job. Pairs are not unique within a batch.
type MatchPair struct {
	Candidate Candidate
	Job       Job
	AppliedAt time.Time
	UpdatedAt time.Time
}

// ScoreResult is the outcome of scoring one pair.
type ScoreResult struct {
	CandidateID  string  `json:"candidate_id"`
	JobID        string  `json:"job_id"`
	Skills       float64 `json:"skills"`
	Cultural     float64 `json:"cultural"`
	Behavioral   float64 `json:"behavioral"`
	OverallMatch float64 `json:"overall_match"`
	Status       string  `json:"status"`
}

// SkillTerms returns technical skills followed by tools.
func (c Candidate) SkillTerms() []string {
	return concat(c.TechnicalSkills, c.Tools)
}

func (c Candidate) Levels() level.Labels {
	return level.Labels{
		level.Professional: c.Seniority,
		level.Academic:     c.Education,
		level.Language:     c.LanguageProficiency,
	}
}

// SkillTerms returns technical skills followed by tools.
func (j Job) SkillTerms() []string {
	return concat(j.TechnicalSkills, j.Tools)
}

func (j Job) Levels() level.Labels {
	return level.Labels{
		level.Professional: j.Seniority,
		level.Academic:     j.Education,
		level.Language:     j.LanguageProficiency,
	}
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
