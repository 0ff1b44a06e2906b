package profile

import "fmt"

// extraction is the dictionary produced by the LLM feature extractor for a resume or a job posting.
type extraction struct {
	TechnicalSkills []string `mapstructure:"competencias_tecnicas"`
	Tools           []string `mapstructure:"ferramentas_tecnologicas"`
	SoftSkills      []string `mapstructure:"competencias_comportamentais"`
	Seniority       string   `mapstructure:"senioridade_aparente"`
	Education       string   `mapstructure:"nivel_formacao"`
	Languages       struct {
		English string `mapstructure:"ingles"`
	} `mapstructure:"idiomas"`
}

func decodeExtraction(data map[string]any) (extraction, error) {
	var e extraction
	if err := decode(data, &e); err != nil {
		return extraction{}, fmt.Errorf("decode extraction: %w", err)
	}
	return e, nil
}

// CandidateFromExtraction builds a candidate from extracted resume features.
func CandidateFromExtraction(id string, data map[string]any) (Candidate, error) {
	e, err := decodeExtraction(data)
	if err != nil {
		return Candidate{}, err
	}

	return Candidate{
		ID:                  trim(id),
		TechnicalSkills:     clean(e.TechnicalSkills),
		Tools:               clean(e.Tools),
		SoftSkills:          clean(e.SoftSkills),
		Seniority:           trim(e.Seniority),
		Education:           trim(e.Education),
		LanguageProficiency: trim(e.Languages.English),
		DaysInProcess:       Unknown,
		DaysSinceUpdate:     Unknown,
	}, nil
}

// JobFromExtraction builds a job from extracted posting features.
func JobFromExtraction(id string, data map[string]any) (Job, error) {
	e, err := decodeExtraction(data)
	if err != nil {
		return Job{}, err
	}

	return Job{
		ID:                  trim(id),
		TechnicalSkills:     clean(e.TechnicalSkills),
		Tools:               clean(e.Tools),
		NiceToHaveSkills:    []string{},
		SoftSkills:          clean(e.SoftSkills),
		Seniority:           trim(e.Seniority),
		Education:           trim(e.Education),
		LanguageProficiency: trim(e.Languages.English),
		Locations:           []string{},
	}, nil
}
