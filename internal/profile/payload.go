package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/hr-matcher/internal/utils"
)

var errMissingRequestID = errors.New("payload request_id is required")

type payload struct {
	RequestID string `mapstructure:"request_id"`
	Candidate struct {
		Profile struct {
			ResumeText string   `mapstructure:"resume_text"`
			Seniority  string   `mapstructure:"seniority_inferred"`
			Education  string   `mapstructure:"education_level"`
			Languages  []string `mapstructure:"languages"`
		} `mapstructure:"profile"`
		Skills struct {
			TechnicalSkills []string `mapstructure:"technical_skills"`
			SoftSkills      []string `mapstructure:"soft_skills"`
			Tools           []string `mapstructure:"tools"`
		} `mapstructure:"skills"`
		QualitySignals struct {
			HasEmail          bool    `mapstructure:"has_email"`
			HasPhone          bool    `mapstructure:"has_phone"`
			HasLinkedIn       bool    `mapstructure:"has_linkedin"`
			CompletenessScore float64 `mapstructure:"completeness_score"`
			IsLocalToJob      *bool   `mapstructure:"is_local_to_job"`
		} `mapstructure:"quality_signals"`
		BehavioralSignals struct {
			DaysSinceUpdate int    `mapstructure:"days_since_profile_update"`
			DaysInProcess   int    `mapstructure:"days_in_process"`
			Comment         string `mapstructure:"recruiter_comment"`
			Recruiter       string `mapstructure:"recruiter"`
		} `mapstructure:"behavioral_signals"`
	} `mapstructure:"candidate"`
	JobContext struct {
		Metadata struct {
			Title    string `mapstructure:"job_title"`
			Location string `mapstructure:"location"`
		} `mapstructure:"metadata"`
		Requirements struct {
			TechSkills       []string `mapstructure:"required_tech_skills"`
			SoftSkills       []string `mapstructure:"required_soft_skills"`
			Tools            []string `mapstructure:"required_tools"`
			Seniority        string   `mapstructure:"target_seniority"`
			Education        string   `mapstructure:"target_education"`
			English          string   `mapstructure:"target_english"`
			NiceToHaveSkills []string `mapstructure:"nice_to_have_skills"`
		} `mapstructure:"requirements"`
	} `mapstructure:"job_context"`
}

// FromPayload builds a MatchPair from a structured scoring request and returns its request id.
// The candidate takes the request id, the job takes its title as id.
func FromPayload(data map[string]any) (string, MatchPair, error) {
	var p payload
	p.Candidate.BehavioralSignals.DaysInProcess = Unknown
	p.Candidate.BehavioralSignals.DaysSinceUpdate = Unknown

	if err := decode(data, &p); err != nil {
		return "", MatchPair{}, fmt.Errorf("decode payload: %w", err)
	}

	requestID := trim(p.RequestID)
	if requestID == "" {
		return "", MatchPair{}, errMissingRequestID
	}

	c := p.Candidate
	candidate := Candidate{
		ID:                  requestID,
		TechnicalSkills:     clean(c.Skills.TechnicalSkills),
		Tools:               clean(c.Skills.Tools),
		SoftSkills:          clean(c.Skills.SoftSkills),
		Seniority:           declared(c.Profile.Seniority),
		Education:           declared(c.Profile.Education),
		LanguageProficiency: englishLevel(c.Profile.Languages),
		Resume:              trim(c.Profile.ResumeText),
		Comment:             trim(c.BehavioralSignals.Comment),
		Recruiter:           trim(c.BehavioralSignals.Recruiter),
		DaysInProcess:       c.BehavioralSignals.DaysInProcess,
		DaysSinceUpdate:     c.BehavioralSignals.DaysSinceUpdate,
		HasEmail:            c.QualitySignals.HasEmail,
		HasPhone:            c.QualitySignals.HasPhone,
		HasLinkedIn:         c.QualitySignals.HasLinkedIn,
		CompletenessScore:   c.QualitySignals.CompletenessScore,
		LocalToJob:          c.QualitySignals.IsLocalToJob,
	}

	j := p.JobContext
	job := Job{
		ID:                  trim(j.Metadata.Title),
		Title:               trim(j.Metadata.Title),
		TechnicalSkills:     clean(j.Requirements.TechSkills),
		Tools:               clean(j.Requirements.Tools),
		NiceToHaveSkills:    clean(j.Requirements.NiceToHaveSkills),
		SoftSkills:          clean(j.Requirements.SoftSkills),
		Seniority:           declared(j.Requirements.Seniority),
		Education:           declared(j.Requirements.Education),
		LanguageProficiency: trim(j.Requirements.English),
		Locations:           clean([]string{j.Metadata.Location}),
	}

	return requestID, MatchPair{Candidate: candidate, Job: job}, nil
}

// declared maps the payload placeholders for "not informed" to an empty label.
func declared(label string) string {
	switch utils.Fold(label) {
	case "UNKNOWN", "NOT_DECLARED", "NOT DECLARED":
		return ""
	}
	return trim(label)
}

// englishLevel picks the level from an entry such as "English: advanced" or "Inglês - Fluente".
func englishLevel(languages []string) string {
	for _, entry := range clean(languages) {
		folded := utils.Fold(entry)
		if !strings.HasPrefix(folded, "ENGLISH") && !strings.HasPrefix(folded, "INGLES") {
			continue
		}
		if i := strings.IndexAny(entry, ":-("); i >= 0 {
			return strings.Trim(strings.TrimSpace(entry[i+1:]), ")")
		}
	}
	return ""
}
