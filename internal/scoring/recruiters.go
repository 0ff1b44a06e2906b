package scoring

import (
	"sort"

	"github.com/spigell/hr-matcher/internal/utils"
)

// OtherRecruiter is the bucket of every recruiter outside the common list.
const OtherRecruiter = "Outros"

// DefaultRecruiters are the recruiters frequent enough in the historical data to get their own bucket.
var DefaultRecruiters = []string{"Michelle", "Daniella", "Stefany", "Katia", "Ana", "Raquel", "Mônica", "Thaise"}

// Recruiters maps recruiter names to feature buckets.
type Recruiters struct {
	// folded name -> display name
	names map[string]string
}

// NewRecruiters builds buckets from names. An empty list falls back to DefaultRecruiters.
func NewRecruiters(names []string) Recruiters {
	names = utils.CleanList(names)
	if len(names) == 0 {
		names = DefaultRecruiters
	}

	r := Recruiters{names: make(map[string]string, len(names))}
	for _, name := range names {
		key := utils.Fold(name)
		if _, ok := r.names[key]; !ok {
			r.names[key] = name
		}
	}
	return r
}

// RecruitersFromHistory keeps the recruiters that appear at least minCount times in history.
// When none qualifies the default list is used.
func RecruitersFromHistory(history []string, minCount int) Recruiters {
	counts := make(map[string]int)
	first := make(map[string]string)
	for _, name := range utils.CleanList(history) {
		key := utils.Fold(name)
		counts[key]++
		if _, ok := first[key]; !ok {
			first[key] = name
		}
	}

	common := make([]string, 0)
	for key, count := range counts {
		if count >= minCount {
			common = append(common, first[key])
		}
	}
	sort.Strings(common)

	return NewRecruiters(common)
}

// Bucket returns the recruiter's display name when common, OtherRecruiter otherwise.
func (r Recruiters) Bucket(name string) string {
	if display, ok := r.names[utils.Fold(name)]; ok {
		return display
	}
	return OtherRecruiter
}

// Buckets lists every bucket, OtherRecruiter last.
func (r Recruiters) Buckets() []string {
	out := make([]string, 0, len(r.names)+1)
	for _, display := range r.names {
		out = append(out, display)
	}
	sort.Strings(out)
	return append(out, OtherRecruiter)
}
