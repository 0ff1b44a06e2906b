package scoring

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrClassifierNotFound is returned by LoadClassifier when the artifact does not exist.
var ErrClassifierNotFound = errors.New("behavioral classifier not found")

// Classifier is a logistic regression over named behavioral features.
type Classifier struct {
	Version   string        `yaml:"version"`
	Intercept float64       `yaml:"intercept"`
	Features  []Coefficient `yaml:"features"`
}

type Coefficient struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// LoadClassifier reads a YAML classifier artifact.
func LoadClassifier(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrClassifierNotFound, path)
		}
		return nil, fmt.Errorf("read classifier %s: %w", path, err)
	}

	return ParseClassifier(data)
}

func ParseClassifier(data []byte) (*Classifier, error) {
	var c Classifier
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse classifier: %w", err)
	}

	if len(c.Features) == 0 {
		return nil, errors.New("classifier has no features")
	}
	if !finite(c.Intercept) {
		return nil, errors.New("classifier intercept is not finite")
	}
	for _, f := range c.Features {
		if f.Name == "" {
			return nil, errors.New("classifier feature without name")
		}
		if !finite(f.Weight) {
			return nil, fmt.Errorf("classifier weight of %s is not finite", f.Name)
		}
	}

	return &c, nil
}

// Probability returns the positive class probability. It reports false when a feature
// the classifier needs is absent from values.
func (c *Classifier) Probability(values map[string]float64) (float64, bool) {
	if c == nil {
		return 0, false
	}

	z := c.Intercept
	for _, f := range c.Features {
		v, ok := values[f.Name]
		if !ok {
			return 0, false
		}
		z += f.Weight * v
	}
	return 1 / (1 + math.Exp(-z)), true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
