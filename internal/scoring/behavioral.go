package scoring

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/spigell/hr-matcher/internal/lexical"
	"github.com/spigell/hr-matcher/internal/logger"
	"github.com/spigell/hr-matcher/internal/profile"
	"github.com/spigell/hr-matcher/internal/utils"
)

var (
	positiveComment = regexp.MustCompile(`(?i)(interessado|motivado|bom perfil|gostei|excelente|promissor|encaminhar|aprovado)`)
	negativeComment = regexp.MustCompile(`(?i)(desistiu|n[aã]o tem perfil|fraco|recusou|sem experi[eê]ncia|confuso|ruim)`)
)

// Heuristic scores by comment sentiment.
const (
	positiveScore = 0.9
	neutralScore  = 0.5
	negativeScore = 0.2
)

const commentPreview = 80

// Feature names as exported by the training data.
const (
	FeaturePositive        = "contem_palavra_chave_positiva"
	FeatureNegative        = "contem_palavra_chave_negativa"
	FeatureSentiment       = "sentimento_comentario_score"
	FeatureDaysInProcess   = "dias_no_processo"
	FeatureDaysSinceUpdate = "dias_desde_ultima_atualizacao"
	FeatureHasEmail        = "ind_app_email"
	FeatureHasPhone        = "ind_app_telefone"
	FeatureHasLinkedIn     = "ind_app_linkedin"
	FeatureCompleteness    = "percentual_perfil_completo"
	FeatureSameLocation    = "ind_mesma_localidade"
	// FeatureRecruiterPrefix is followed by the bucket name in one-hot recruiter columns.
	FeatureRecruiterPrefix = "p_recrutador_tratado_"
)

// Features are the behavioral signals extracted from one pair.
type Features struct {
	Positive        bool
	Negative        bool
	Sentiment       int
	Recruiter       string
	DaysInProcess   int
	DaysSinceUpdate int
	HasEmail        bool
	HasPhone        bool
	HasLinkedIn     bool
	Completeness    float64
	SameLocation    bool
}

// Prediction is one behavioral output row.
type Prediction struct {
	CandidateID string  `json:"candidate_id"`
	JobID       string  `json:"job_id"`
	Score       float64 `json:"score_behavioral"`
	// Heuristic is set when the score comes from comment sentiment instead of the classifier.
	Heuristic bool `json:"heuristic"`
}

// Behavioral predicts candidate engagement. Without a usable classifier it falls back to
// a comment sentiment heuristic.
type Behavioral struct {
	classifier        *Classifier
	recruiters        Recruiters
	locationThreshold float64
	log               *zap.Logger
}

// NewBehavioral creates the scorer. classifier may be nil.
func NewBehavioral(classifier *Classifier, recruiters Recruiters, log *zap.Logger) *Behavioral {
	if recruiters.names == nil {
		recruiters = NewRecruiters(nil)
	}
	return &Behavioral{
		classifier:        classifier,
		recruiters:        recruiters,
		locationThreshold: lexical.DefaultLocationThreshold,
		log:               logger.WithFields(log),
	}
}

// Features extracts the behavioral signals of pair.
func (b *Behavioral) Features(pair profile.MatchPair) Features {
	c := pair.Candidate
	f := Features{
		Positive:        positiveComment.MatchString(c.Comment),
		Negative:        negativeComment.MatchString(c.Comment),
		Recruiter:       b.recruiters.Bucket(c.Recruiter),
		DaysInProcess:   c.DaysInProcess,
		DaysSinceUpdate: c.DaysSinceUpdate,
		HasEmail:        c.HasEmail,
		HasPhone:        c.HasPhone,
		HasLinkedIn:     c.HasLinkedIn,
		Completeness:    c.CompletenessScore,
	}

	switch {
	case f.Positive:
		f.Sentiment = 1
	case f.Negative:
		f.Sentiment = -1
	}

	if c.LocalToJob != nil {
		f.SameLocation = *c.LocalToJob
	} else {
		f.SameLocation = lexical.MatchLocations([]string{c.Location}, pair.Job.Locations, b.locationThreshold)
	}

	return f
}

// Values flattens the features into the named numeric columns the classifier reads.
func (b *Behavioral) Values(f Features) map[string]float64 {
	values := map[string]float64{
		FeaturePositive:        boolValue(f.Positive),
		FeatureNegative:        boolValue(f.Negative),
		FeatureSentiment:       float64(f.Sentiment),
		FeatureDaysInProcess:   float64(f.DaysInProcess),
		FeatureDaysSinceUpdate: float64(f.DaysSinceUpdate),
		FeatureHasEmail:        boolValue(f.HasEmail),
		FeatureHasPhone:        boolValue(f.HasPhone),
		FeatureHasLinkedIn:     boolValue(f.HasLinkedIn),
		FeatureCompleteness:    f.Completeness,
		FeatureSameLocation:    boolValue(f.SameLocation),
	}
	for _, bucket := range b.recruiters.Buckets() {
		values[FeatureRecruiterPrefix+bucket] = boolValue(bucket == f.Recruiter)
	}
	return values
}

// Predict scores one pair. It never fails.
func (b *Behavioral) Predict(pair profile.MatchPair) Prediction {
	f := b.Features(pair)

	score, fromClassifier := b.classifier.Probability(b.Values(f))
	if !fromClassifier {
		if b.classifier != nil {
			b.log.Debug("classifier features incomplete, using heuristic",
				append(logger.PairFields(pair.Candidate.ID, pair.Job.ID),
					zap.Int("sentiment", f.Sentiment),
					zap.String("comment", utils.TruncateForLog(pair.Candidate.Comment, commentPreview)),
				)...)
		}
		score = heuristic(f.Sentiment)
	}

	return Prediction{
		CandidateID: pair.Candidate.ID,
		JobID:       pair.Job.ID,
		Score:       clamp(score),
		Heuristic:   !fromClassifier,
	}
}

func (b *Behavioral) PredictBatch(pairs []profile.MatchPair) []Prediction {
	predictions := make([]Prediction, len(pairs))
	for i, pair := range pairs {
		predictions[i] = b.Predict(pair)
	}
	return predictions
}

// UsesClassifier reports whether a classifier was loaded.
func (b *Behavioral) UsesClassifier() bool {
	return b.classifier != nil
}

func heuristic(sentiment int) float64 {
	switch sentiment {
	case 1:
		return positiveScore
	case -1:
		return negativeScore
	default:
		return neutralScore
	}
}

func boolValue(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
