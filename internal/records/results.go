package records

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/hr-matcher/internal/profile"
)

// Results is the output of one scoring run.
type Results struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Items       []*profile.ScoreResult `json:"items"`
}

func NewResults(items []profile.ScoreResult) *Results {
	r := &Results{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Items:       make([]*profile.ScoreResult, 0, len(items)),
	}
	for i := range items {
		r.Items = append(r.Items, &items[i])
	}
	return r
}

func (r *Results) Len() int {
	return len(r.Items)
}

// SortByOverall orders results from the best overall match to the worst, keeping input order on ties.
func (r *Results) SortByOverall() {
	sort.SliceStable(r.Items, func(i, j int) bool {
		return r.Items[i].OverallMatch > r.Items[j].OverallMatch
	})
}

// ReportByStatus groups results by status label.
func (r *Results) ReportByStatus() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range r.Items {
		report[item.Status] = append(report[item.Status], map[string]string{
			"candidate":     item.CandidateID,
			"job":           item.JobID,
			"overall_match": formatScore(item.OverallMatch),
			"skills":        formatScore(item.Skills),
			"cultural":      formatScore(item.Cultural),
			"behavioral":    formatScore(item.Behavioral),
		})
	}
	return report
}

// CountByStatus returns how many results carry each status.
func (r *Results) CountByStatus() map[string]int {
	counts := make(map[string]int)
	for _, item := range r.Items {
		counts[item.Status]++
	}
	return counts
}

func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToFile writes the results as indented JSON, replacing any previous content.
func (r *Results) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return err
	}
	return nil
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
