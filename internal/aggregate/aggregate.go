// Package aggregate turns the three component scores of a match into an overall score and status.
package aggregate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidScore is returned for component scores that are NaN, infinite or outside [0, 1].
var ErrInvalidScore = errors.New("invalid score")

// Status labels.
const (
	StatusCulturallyIncompatible  = "Culturally Incompatible"
	StatusNotTechnicallyQualified = "Not Technically Qualified"
	StatusHighPotentialPlus       = "High Potential+"
	StatusHighPotential           = "High Potential"
	StatusPotential               = "Potential"
	StatusLowPotential            = "Low Potential"
)

// Statuses lists every label from best to worst.
var Statuses = []string{
	StatusHighPotentialPlus,
	StatusHighPotential,
	StatusPotential,
	StatusLowPotential,
	StatusNotTechnicallyQualified,
	StatusCulturallyIncompatible,
}

const (
	culturalVeto  = 0.4
	technicalVeto = 0.3

	highlightTechnical = 0.85
	highlightCultural  = 0.8

	technicalWeight  = 0.5
	culturalWeight   = 0.3
	behavioralWeight = 0.2

	highPotential = 0.8
	potential     = 0.6
)

type Result struct {
	OverallMatch float64 `json:"overall_match"`
	Status       string  `json:"status"`
}

// Aggregate applies the vetoes, then the highlight rule, then the weighted average.
// In a veto the overall match is the offending score itself.
func Aggregate(technical, cultural, behavioral float64) (Result, error) {
	if err := validate("technical", technical); err != nil {
		return Result{}, err
	}
	if err := validate("cultural", cultural); err != nil {
		return Result{}, err
	}
	if err := validate("behavioral", behavioral); err != nil {
		return Result{}, err
	}

	if cultural < culturalVeto {
		return Result{OverallMatch: cultural, Status: StatusCulturallyIncompatible}, nil
	}
	if technical < technicalVeto {
		return Result{OverallMatch: technical, Status: StatusNotTechnicallyQualified}, nil
	}

	if technical >= highlightTechnical && cultural >= highlightCultural {
		return Result{OverallMatch: (technical + cultural) / 2, Status: StatusHighPotentialPlus}, nil
	}

	overall := round4(technicalWeight*technical + culturalWeight*cultural + behavioralWeight*behavioral)

	switch {
	case overall >= highPotential:
		return Result{OverallMatch: overall, Status: StatusHighPotential}, nil
	case overall >= potential:
		return Result{OverallMatch: overall, Status: StatusPotential}, nil
	default:
		return Result{OverallMatch: overall, Status: StatusLowPotential}, nil
	}
}

func validate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s score %v", ErrInvalidScore, name, v)
	}
	return nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
