package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spigell/hr-matcher/internal/embedding"
	"github.com/spigell/hr-matcher/internal/profile"
)

var testVectors = map[string][]float32{
	"Go":                 {1, 0, 0},
	"Golang":             {1, 0, 0},
	"Python":             {0, 1, 0},
	"SQL":                {0, 0.6, 0.8},
	"Comunicação":        {0, 0, 1},
	"Comunicativo":       {0, 0.6, 0.8},
	"Trabalho em equipe": {1, 0, 0},
}

func stubEngine() *embedding.Engine {
	encoder := embedding.EncoderFunc(func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			v, ok := testVectors[text]
			if !ok {
				v = []float32{-1, -1, -1}
			}
			out[i] = v
		}
		return out, nil
	})
	return embedding.NewEngine(encoder, nil)
}

func TestSkillsScore(t *testing.T) {
	t.Parallel()

	skills := NewSkills(stubEngine(), nil, nil)
	ctx := context.Background()

	job := profile.Job{TechnicalSkills: []string{"Go"}, Seniority: "Sênior"}
	candidate := profile.Candidate{Tools: []string{"Golang"}, Seniority: "Pleno"}

	// semantic 1.0; structured 0.6*(2/3) + 0.2 + 0.2
	score, err := skills.Score(ctx, job, candidate)
	require.NoError(t, err)
	require.InDelta(t, 0.7+0.3*0.8, score, 1e-6)
}

func TestSkillsScoreMissingData(t *testing.T) {
	t.Parallel()

	skills := NewSkills(stubEngine(), nil, nil)

	// nothing to compare: semantic 0, every level requirement absent
	score, err := skills.Score(context.Background(), profile.Job{}, profile.Candidate{})
	require.NoError(t, err)
	require.InDelta(t, 0.3, score, 1e-6)

	// candidate without skills against a job that asks for them
	job := profile.Job{TechnicalSkills: []string{"Go"}, Seniority: "Sênior"}
	score, err = skills.Score(context.Background(), job, profile.Candidate{})
	require.NoError(t, err)
	require.InDelta(t, 0.3*0.4, score, 1e-6)
}

func TestSkillsThresholdZeroesWeakMatches(t *testing.T) {
	t.Parallel()

	skills := NewSkills(stubEngine(), nil, nil)

	// Python vs SQL is 0.6, Go vs SQL is 0: mean of {0, 0.6} = 0.3
	job := profile.Job{TechnicalSkills: []string{"Go", "Python"}}
	candidate := profile.Candidate{TechnicalSkills: []string{"SQL"}}

	score, err := skills.Score(context.Background(), job, candidate)
	require.NoError(t, err)
	require.InDelta(t, 0.7*0.3+0.3, score, 1e-6)
}

func TestSkillsBatchMatchesSingle(t *testing.T) {
	t.Parallel()

	skills := NewSkills(stubEngine(), nil, nil)
	ctx := context.Background()

	pairs := []profile.MatchPair{
		{Job: profile.Job{TechnicalSkills: []string{"Go"}}, Candidate: profile.Candidate{Tools: []string{"Golang"}}},
		{Job: profile.Job{TechnicalSkills: []string{"Python"}, Seniority: "Júnior"}, Candidate: profile.Candidate{TechnicalSkills: []string{"SQL"}}},
		{Job: profile.Job{}, Candidate: profile.Candidate{TechnicalSkills: []string{"Go"}}},
	}

	batch, err := skills.ScoreBatch(ctx, pairs)
	require.NoError(t, err)
	require.Len(t, batch, len(pairs))

	for i, pair := range pairs {
		single, err := skills.Score(ctx, pair.Job, pair.Candidate)
		require.NoError(t, err)
		require.Equal(t, single, batch[i])
	}
}

func TestSkillsEncoderFailure(t *testing.T) {
	t.Parallel()

	failure := errors.New("provider down")
	engine := embedding.NewEngine(embedding.EncoderFunc(func(context.Context, []string) ([][]float32, error) {
		return nil, failure
	}), nil)

	job := profile.Job{TechnicalSkills: []string{"Go"}}
	candidate := profile.Candidate{TechnicalSkills: []string{"Go"}}
	_, err := NewSkills(engine, nil, nil).Score(context.Background(), job, candidate)
	require.ErrorIs(t, err, failure)
}

func TestCulturalScore(t *testing.T) {
	t.Parallel()

	cultural := NewCultural(stubEngine(), nil)
	ctx := context.Background()

	score, err := cultural.Score(ctx, profile.Job{}, profile.Candidate{SoftSkills: []string{"Comunicação"}})
	require.NoError(t, err)
	require.Equal(t, 0.5, score)

	job := profile.Job{SoftSkills: []string{"Comunicação", "Trabalho em equipe"}}
	candidate := profile.Candidate{SoftSkills: []string{"Comunicativo"}}

	// best matches 0.8 and 0.0, no threshold
	score, err = cultural.Score(ctx, job, candidate)
	require.NoError(t, err)
	require.InDelta(t, 0.4, score, 1e-6)

	batch, err := cultural.ScoreBatch(ctx, []profile.MatchPair{{Job: job, Candidate: candidate}, {}})
	require.NoError(t, err)
	require.Equal(t, []float64{score, 0.5}, batch)
}
