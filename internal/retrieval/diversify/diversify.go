// Package diversify implements the Diversifier & Post-Filter (C9): an
// MMR-style diversity pass followed by case-title-hint prioritization.
package diversify

import (
	"regexp"
	"strings"

	"github.com/faizrashid/nazeer/pkg/models"
)

const defaultDiversityThreshold = 0.8

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Filter is the Diversifier & Post-Filter (C9).
type Filter struct {
	diversityThreshold float64
}

// New constructs C9 with spec.md's default diversity_threshold (0.8).
func New() *Filter {
	return &Filter{diversityThreshold: defaultDiversityThreshold}
}

// NewWithThreshold constructs C9 with a caller-supplied diversity
// threshold, falling back to the spec default when threshold is zero.
func NewWithThreshold(threshold float64) *Filter {
	if threshold <= 0 {
		threshold = defaultDiversityThreshold
	}
	return &Filter{diversityThreshold: threshold}
}

// Apply runs the two-pass filter (spec §4.9) and returns at most k results.
func (f *Filter) Apply(candidates []models.RankedResult, k int, caseTitleHint *string) []models.RankedResult {
	diversified := f.diversify(candidates, k)
	return prioritizeHint(diversified, caseTitleHint)
}

// diversify implements step 1: greedily accept candidates in score order,
// rejecting any whose Jaccard similarity to an already-accepted text
// exceeds the diversity threshold, then backfilling from the rejected
// pool if fewer than k were accepted.
func (f *Filter) diversify(candidates []models.RankedResult, k int) []models.RankedResult {
	if k <= 0 || k > len(candidates) {
		k = len(candidates)
	}

	accepted := make([]models.RankedResult, 0, k)
	acceptedTokens := make([]map[string]struct{}, 0, k)
	var rejected []models.RankedResult

	for _, c := range candidates {
		tokens := tokenSet(c.Text)
		tooSimilar := false
		for _, existing := range acceptedTokens {
			if jaccard(tokens, existing) > f.diversityThreshold {
				tooSimilar = true
				break
			}
		}
		if tooSimilar {
			rejected = append(rejected, c)
			continue
		}
		accepted = append(accepted, c)
		acceptedTokens = append(acceptedTokens, tokens)
		if len(accepted) >= k {
			return accepted
		}
	}

	for _, c := range rejected {
		if len(accepted) >= k {
			break
		}
		accepted = append(accepted, c)
	}
	return accepted
}

// prioritizeHint implements step 2: partition by normalized-title match
// against the hint, returning matches first when any exist.
func prioritizeHint(results []models.RankedResult, caseTitleHint *string) []models.RankedResult {
	if caseTitleHint == nil || strings.TrimSpace(*caseTitleHint) == "" {
		return results
	}

	hint := normalizeTitle(*caseTitleHint)
	var matches, rest []models.RankedResult
	for _, r := range results {
		if normalizeTitle(r.CaseTitle) == hint {
			matches = append(matches, r)
		} else {
			rest = append(rest, r)
		}
	}
	if len(matches) > 0 {
		return append(matches, rest...)
	}
	return results
}

func normalizeTitle(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(s, " "))
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
