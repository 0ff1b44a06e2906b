package profile

import (
	"fmt"
	"math"
	"time"
)

// record mirrors one curated ETL row. Job columns carry the job_ prefix,
// applicant columns app_, prospect columns p_.
type record struct {
	CandidateID string `mapstructure:"codigo_candidato"`
	JobID       string `mapstructure:"codigo_vaga"`
	JobTitle    string `mapstructure:"job_titulo_vaga"`

	JobTechnicalSkills []string `mapstructure:"job_competencias_tecnicas"`
	JobTools           []string `mapstructure:"job_ferramentas_tecnologicas"`
	JobSoftSkills      []string `mapstructure:"job_competencias_comportamentais"`
	JobSeniority       string   `mapstructure:"job_senioridade_aparente"`
	JobEducation       string   `mapstructure:"job_nivel_formacao"`
	JobEnglish         string   `mapstructure:"job_nivel_ingles"`
	JobActivities      string   `mapstructure:"job_pv_principais_atividades"`
	JobCity            string   `mapstructure:"job_pv_cidade"`
	JobState           string   `mapstructure:"job_pv_estado"`
	JobWorkplace       string   `mapstructure:"job_pv_local_trabalho"`

	AppTechnicalSkills []string `mapstructure:"app_competencias_tecnicas"`
	AppTools           []string `mapstructure:"app_ferramentas_tecnologicas"`
	AppSoftSkills      []string `mapstructure:"app_competencias_comportamentais"`
	AppSeniority       string   `mapstructure:"app_senioridade_aparente"`
	AppEducation       string   `mapstructure:"app_nivel_formacao"`
	AppEnglish         string   `mapstructure:"app_nivel_ingles"`
	AppResume          string   `mapstructure:"app_cv_pt"`
	AppLocation        string   `mapstructure:"app_ib_local"`

	Comment         string    `mapstructure:"p_comentario"`
	Recruiter       string    `mapstructure:"p_recrutador"`
	AppliedAt       time.Time `mapstructure:"p_data_candidatura"`
	UpdatedAt       time.Time `mapstructure:"p_data_ultima_atualizacao"`
	DaysInProcess   int       `mapstructure:"dias_no_processo"`
	DaysSinceUpdate int       `mapstructure:"dias_desde_ultima_atualizacao"`

	HasEmail    bool `mapstructure:"ind_app_email"`
	HasPhone    bool `mapstructure:"ind_app_telefone"`
	HasLinkedIn bool `mapstructure:"ind_app_linkedin"`

	SameLocation *bool `mapstructure:"ind_mesma_localidade"`
}

// now is replaced in tests.
var now = time.Now

// FromRecord builds a MatchPair from one curated tabular row.
// Unknown columns are ignored and missing ones take their defaults.
func FromRecord(row map[string]any) (MatchPair, error) {
	r := record{DaysInProcess: Unknown, DaysSinceUpdate: Unknown}
	if err := decode(row, &r); err != nil {
		return MatchPair{}, fmt.Errorf("decode record: %w", err)
	}

	// Day counts missing from the row are derived from the process dates.
	if r.DaysInProcess == Unknown && !r.AppliedAt.IsZero() && !r.UpdatedAt.IsZero() {
		r.DaysInProcess = epochDays(r.UpdatedAt) - epochDays(r.AppliedAt)
	}
	if r.DaysSinceUpdate == Unknown && !r.UpdatedAt.IsZero() {
		r.DaysSinceUpdate = epochDays(now()) - epochDays(r.UpdatedAt)
	}

	candidate := Candidate{
		ID:                  trim(r.CandidateID),
		TechnicalSkills:     clean(r.AppTechnicalSkills),
		Tools:               clean(r.AppTools),
		SoftSkills:          clean(r.AppSoftSkills),
		Seniority:           trim(r.AppSeniority),
		Education:           trim(r.AppEducation),
		LanguageProficiency: trim(r.AppEnglish),
		Resume:              trim(r.AppResume),
		Location:            trim(r.AppLocation),
		Comment:             trim(r.Comment),
		Recruiter:           trim(r.Recruiter),
		DaysInProcess:       r.DaysInProcess,
		DaysSinceUpdate:     r.DaysSinceUpdate,
		HasEmail:            r.HasEmail,
		HasPhone:            r.HasPhone,
		HasLinkedIn:         r.HasLinkedIn,
		CompletenessScore:   completeness(r.HasEmail, r.HasPhone, r.HasLinkedIn),
		LocalToJob:          r.SameLocation,
	}

	job := Job{
		ID:                  trim(r.JobID),
		Title:               trim(r.JobTitle),
		TechnicalSkills:     clean(r.JobTechnicalSkills),
		Tools:               clean(r.JobTools),
		NiceToHaveSkills:    []string{},
		SoftSkills:          clean(r.JobSoftSkills),
		Seniority:           trim(r.JobSeniority),
		Education:           trim(r.JobEducation),
		LanguageProficiency: trim(r.JobEnglish),
		Activities:          trim(r.JobActivities),
		Locations:           clean([]string{r.JobCity, r.JobState, r.JobWorkplace}),
	}

	return MatchPair{
		Candidate: candidate,
		Job:       job,
		AppliedAt: r.AppliedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func completeness(flags ...bool) float64 {
	set := 0
	for _, f := range flags {
		if f {
			set++
		}
	}
	return float64(set) / float64(len(flags))
}

// epochDays counts whole UTC days since the Unix epoch.
func epochDays(t time.Time) int {
	return int(math.Floor(float64(t.Unix()) / 86400))
}
