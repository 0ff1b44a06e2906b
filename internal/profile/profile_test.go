package profile

import (
	"reflect"
	"testing"
	"time"

	"github.com/spigell/hr-matcher/internal/level"
)

func TestFromRecord(t *testing.T) {
	row := map[string]any{
		"codigo_candidato":                 float64(31337),
		"codigo_vaga":                      "5185",
		"job_competencias_tecnicas":        []any{"Python", " SQL ", "", nil},
		"job_ferramentas_tecnologicas":     "Power BI",
		"job_competencias_comportamentais": nil,
		"job_senioridade_aparente":         "Sênior",
		"job_nivel_ingles":                 "Avançado",
		"job_pv_cidade":                    "São Paulo",
		"job_pv_estado":                    "SP",
		"job_pv_local_trabalho":            "",
		"app_competencias_tecnicas":        []any{"python"},
		"app_senioridade_aparente":         "Pleno",
		"app_ib_local":                     "Sao Paulo - SP",
		"p_comentario":                     "Candidato muito interessado",
		"p_recrutador":                     "Ana",
		"p_data_candidatura":               "2021-04-08",
		"dias_no_processo":                 "12",
		"ind_app_email":                    1,
		"ind_app_telefone":                 float64(0),
		"ind_app_linkedin":                 true,
		"unknown_column":                   "ignored",
	}

	pair, err := FromRecord(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pair.Candidate.ID != "31337" || pair.Job.ID != "5185" {
		t.Fatalf("unexpected ids: %q %q", pair.Candidate.ID, pair.Job.ID)
	}
	if !reflect.DeepEqual(pair.Job.TechnicalSkills, []string{"Python", "SQL"}) {
		t.Fatalf("unexpected job skills: %#v", pair.Job.TechnicalSkills)
	}
	if !reflect.DeepEqual(pair.Job.Tools, []string{"Power BI"}) {
		t.Fatalf("bare string must become a one element list, got %#v", pair.Job.Tools)
	}
	if pair.Job.SoftSkills == nil || len(pair.Job.SoftSkills) != 0 {
		t.Fatalf("null list must become an empty list, got %#v", pair.Job.SoftSkills)
	}
	if pair.Candidate.Tools == nil {
		t.Fatalf("missing list must be empty, not nil")
	}
	if !reflect.DeepEqual(pair.Job.Locations, []string{"São Paulo", "SP"}) {
		t.Fatalf("unexpected job locations: %#v", pair.Job.Locations)
	}
	if pair.Candidate.DaysInProcess != 12 {
		t.Fatalf("expected 12 days in process, got %d", pair.Candidate.DaysInProcess)
	}
	if pair.Candidate.DaysSinceUpdate != Unknown {
		t.Fatalf("missing day count must be %d, got %d", Unknown, pair.Candidate.DaysSinceUpdate)
	}
	if !pair.Candidate.HasEmail || pair.Candidate.HasPhone || !pair.Candidate.HasLinkedIn {
		t.Fatalf("unexpected indicators: %+v", pair.Candidate)
	}
	if got := pair.Candidate.CompletenessScore; got < 0.66 || got > 0.67 {
		t.Fatalf("unexpected completeness %f", got)
	}
	if !pair.AppliedAt.Equal(time.Date(2021, 4, 8, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected application date %v", pair.AppliedAt)
	}
	if !pair.UpdatedAt.IsZero() {
		t.Fatalf("missing date must be zero, got %v", pair.UpdatedAt)
	}

	levels := pair.Job.Levels()
	if levels[level.Professional] != "Sênior" || levels[level.Language] != "Avançado" {
		t.Fatalf("unexpected job levels: %v", levels)
	}
	if got := pair.Job.SkillTerms(); !reflect.DeepEqual(got, []string{"Python", "SQL", "Power BI"}) {
		t.Fatalf("unexpected skill terms: %#v", got)
	}
}

func TestFromRecordEmptyRow(t *testing.T) {
	pair, err := FromRecord(map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.Candidate.DaysInProcess != Unknown {
		t.Fatalf("expected unknown days in process")
	}
	if len(pair.Job.Locations) != 0 || pair.Job.Locations == nil {
		t.Fatalf("expected empty locations, got %#v", pair.Job.Locations)
	}
}

func TestFromRecordBadDateIsZero(t *testing.T) {
	pair, err := FromRecord(map[string]any{"p_data_candidatura": "not a date"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pair.AppliedAt.IsZero() {
		t.Fatalf("expected zero time, got %v", pair.AppliedAt)
	}
}

func TestExtraction(t *testing.T) {
	data := map[string]any{
		"competencias_tecnicas":        "Java",
		"ferramentas_tecnologicas":     []any{"Git", "  "},
		"competencias_comportamentais": []any{"Comunicação", "Proatividade"},
		"senioridade_aparente":         "Júnior",
		"nivel_formacao":               "Ensino Superior Completo",
		"idiomas":                      map[string]any{"ingles": " Intermediário "},
	}

	candidate, err := CandidateFromExtraction("c1", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(candidate.TechnicalSkills, []string{"Java"}) {
		t.Fatalf("unexpected skills %#v", candidate.TechnicalSkills)
	}
	if !reflect.DeepEqual(candidate.Tools, []string{"Git"}) {
		t.Fatalf("unexpected tools %#v", candidate.Tools)
	}
	if candidate.LanguageProficiency != "Intermediário" {
		t.Fatalf("unexpected english level %q", candidate.LanguageProficiency)
	}
	if candidate.DaysInProcess != Unknown {
		t.Fatalf("expected unknown days in process")
	}

	job, err := JobFromExtraction("j1", map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ID != "j1" || job.TechnicalSkills == nil || job.SoftSkills == nil {
		t.Fatalf("unexpected empty job: %+v", job)
	}
}

func TestFromPayload(t *testing.T) {
	data := map[string]any{
		"request_id": "req-1",
		"candidate": map[string]any{
			"profile": map[string]any{
				"resume_text":        "Engenheiro de dados",
				"seniority_inferred": "senior",
				"education_level":    "not_declared",
				"languages":          []any{"Spanish: basic", "English: advanced"},
			},
			"skills": map[string]any{
				"technical_skills": []any{"Go", "Kubernetes"},
				"soft_skills":      "teamwork",
			},
			"quality_signals": map[string]any{
				"has_email":          true,
				"completeness_score": 0.8,
				"is_local_to_job":    false,
			},
			"behavioral_signals": map[string]any{
				"days_in_process": 3,
			},
		},
		"job_context": map[string]any{
			"metadata": map[string]any{"job_title": "Data Engineer", "location": "remote"},
			"requirements": map[string]any{
				"required_tech_skills": []any{"Go"},
				"target_seniority":     "unknown",
				"nice_to_have_skills":  []any{"Rust"},
			},
		},
	}

	id, pair, err := FromPayload(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "req-1" || pair.Candidate.ID != "req-1" || pair.Job.ID != "Data Engineer" {
		t.Fatalf("unexpected ids: %q %+v", id, pair.Job)
	}
	if pair.Candidate.Seniority != "senior" || pair.Candidate.Education != "" {
		t.Fatalf("unexpected candidate levels: %+v", pair.Candidate)
	}
	if pair.Job.Seniority != "" {
		t.Fatalf("unknown seniority must be empty, got %q", pair.Job.Seniority)
	}
	if pair.Candidate.LanguageProficiency != "advanced" {
		t.Fatalf("unexpected english level %q", pair.Candidate.LanguageProficiency)
	}
	if !reflect.DeepEqual(pair.Candidate.SoftSkills, []string{"teamwork"}) {
		t.Fatalf("unexpected soft skills %#v", pair.Candidate.SoftSkills)
	}
	if pair.Candidate.LocalToJob == nil || *pair.Candidate.LocalToJob {
		t.Fatalf("expected explicit non-local flag")
	}
	if pair.Candidate.DaysInProcess != 3 || pair.Candidate.DaysSinceUpdate != Unknown {
		t.Fatalf("unexpected day counts: %+v", pair.Candidate)
	}
	if !reflect.DeepEqual(pair.Job.NiceToHaveSkills, []string{"Rust"}) {
		t.Fatalf("unexpected nice to have %#v", pair.Job.NiceToHaveSkills)
	}
}

func TestFromPayloadRequiresRequestID(t *testing.T) {
	if _, _, err := FromPayload(map[string]any{"candidate": map[string]any{}}); err == nil {
		t.Fatalf("expected error without request_id")
	}
}

func TestEnglishLevel(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{in: []string{"Inglês - Fluente"}, want: "Fluente"},
		{in: []string{"english (intermediate)"}, want: "intermediate"},
		{in: []string{"Português"}, want: ""},
		{in: nil, want: ""},
	}

	for _, tt := range tests {
		if got := englishLevel(tt.in); got != tt.want {
			t.Fatalf("englishLevel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromRecordDerivesDayCounts(t *testing.T) {
	saved := now
	now = func() time.Time { return time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = saved })

	tests := []struct {
		name         string
		row          map[string]any
		inProcess    int
		sinceUpdated int
	}{
		{
			name: "both dates",
			row: map[string]any{
				"p_data_candidatura":        "2024-01-01",
				"p_data_ultima_atualizacao": "2024-01-31 18:30:00",
			},
			inProcess:    30,
			sinceUpdated: 30,
		},
		{
			name:         "only the update date",
			row:          map[string]any{"p_data_ultima_atualizacao": "2024-02-29"},
			inProcess:    Unknown,
			sinceUpdated: 1,
		},
		{
			name: "precomputed columns win",
			row: map[string]any{
				"p_data_candidatura":            "2024-01-01",
				"p_data_ultima_atualizacao":     "2024-01-31",
				"dias_no_processo":              7,
				"dias_desde_ultima_atualizacao": 3,
			},
			inProcess:    7,
			sinceUpdated: 3,
		},
		{
			name:         "no dates",
			row:          map[string]any{"p_data_candidatura": "2024-01-01"},
			inProcess:    Unknown,
			sinceUpdated: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := FromRecord(tt.row)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pair.Candidate.DaysInProcess != tt.inProcess {
				t.Fatalf("days in process = %d, want %d", pair.Candidate.DaysInProcess, tt.inProcess)
			}
			if pair.Candidate.DaysSinceUpdate != tt.sinceUpdated {
				t.Fatalf("days since update = %d, want %d", pair.Candidate.DaysSinceUpdate, tt.sinceUpdated)
			}
		})
	}
}

func TestFromRecordSameLocation(t *testing.T) {
	pair, err := FromRecord(map[string]any{"ind_mesma_localidade": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.Candidate.LocalToJob == nil || !*pair.Candidate.LocalToJob {
		t.Fatalf("expected precomputed location flag, got %v", pair.Candidate.LocalToJob)
	}

	pair, err = FromRecord(map[string]any{"ind_mesma_localidade": float64(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.Candidate.LocalToJob == nil || *pair.Candidate.LocalToJob {
		t.Fatalf("expected a false location flag, got %v", pair.Candidate.LocalToJob)
	}

	pair, err = FromRecord(map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.Candidate.LocalToJob != nil {
		t.Fatalf("missing column must leave the flag unset")
	}
}
