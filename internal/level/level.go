// Package level maps ordinal category labels (seniority, education, language
// proficiency) to numeric levels and compares them as bounded ratios.
package level

import (
	"github.com/spigell/hr-matcher/internal/utils"
)

// Dimension names a structured comparison axis.
type Dimension string

const (
	Professional Dimension = "professional"
	Academic     Dimension = "academic"
	Language     Dimension = "language"
)

// Weights holds the contribution of every dimension to the structured score. They must sum to 1.
type Weights map[Dimension]float64

// DefaultWeights is the canonical split used by the skills scorer.
var DefaultWeights = Weights{
	Professional: 0.6,
	Academic:     0.2,
	Language:     0.2,
}

// Dimensions lists the axes in evaluation order.
var Dimensions = []Dimension{Professional, Academic, Language}

// Labels carries one label per dimension.
type Labels map[Dimension]string

// table is keyed by folded labels (upper case, no diacritics).
var table = map[string]float64{
	// language proficiency
	"NENHUM":        0,
	"NONE":          0,
	"BASICO":        1,
	"BASIC":         1,
	"TECNICO":       1.5,
	"TECHNICAL":     1.5,
	"INTERMEDIARIO": 2,
	"INTERMEDIATE":  2,
	"AVANCADO":      3,
	"ADVANCED":      3,
	"FLUENTE":       4,
	"FLUENT":        4,

	// seniority
	"ESTAGIO":      0.5,
	"INTERN":       0.5,
	"JUNIOR":       1,
	"PLENO":        2,
	"MID":          2,
	"SENIOR":       3,
	"ESPECIALISTA": 4,
	"SPECIALIST":   4,
	"LIDER":        5,
	"LEAD":         5,

	// education
	"ENSINO MEDIO":               1,
	"ENSINO MEDIO COMPLETO":      1,
	"HIGH_SCHOOL":                1,
	"ENSINO SUPERIOR INCOMPLETO": 2,
	"TECNOLOGO":                  2,
	"ENSINO SUPERIOR COMPLETO":   3,
	"SUPERIOR COMPLETO":          3,
	"BACHELORS":                  3,
	"POS-GRADUACAO":              4,
	"MESTRADO":                   4,
	"MASTERS":                    4,
	"DOUTORADO":                  4,
	"PHD":                        4,
}

// Of returns the ordinal level of label. Unknown or empty labels are level 0.
func Of(label string) float64 {
	return table[utils.Fold(label)]
}

// Similarity compares a required level with the candidate's one.
// An unconstrained requirement (0) always matches; a missing candidate level never does.
func Similarity(jobLevel, candidateLevel float64) float64 {
	switch {
	case jobLevel <= 0:
		return 1
	case candidateLevel <= 0:
		return 0
	default:
		return min(candidateLevel/jobLevel, 1)
	}
}

// StructuredSimilarity is Similarity over labels.
func StructuredSimilarity(jobLabel, candidateLabel string) float64 {
	return Similarity(Of(jobLabel), Of(candidateLabel))
}

// WeightedStructuredScore sums the per-dimension similarity times its weight.
// A nil weights map falls back to DefaultWeights.
func WeightedStructuredScore(job, candidate Labels, weights Weights) float64 {
	if weights == nil {
		weights = DefaultWeights
	}

	total := 0.0
	for _, dim := range Dimensions {
		total += StructuredSimilarity(job[dim], candidate[dim]) * weights[dim]
	}
	return total
}
