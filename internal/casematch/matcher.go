// Package casematch implements the Case Exact-Match Short-Circuit (C6): a
// tiered case-number matcher that runs ahead of semantic retrieval so an
// unambiguous case reference never needs a vector search.
package casematch

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

const maxMatches = 5

var caseNumberPatternRe = regexp.MustCompile(`[A-Z]+\.?\s*\d+/\d+`)
var collapseDotsRe = regexp.MustCompile(`\.\s+`)
var collapseSlashRe = regexp.MustCompile(`\s*/\s*`)

// Matcher is the Case Exact-Match Short-Circuit (C6).
type Matcher struct {
	cases storage.CaseReadStore
}

// NewMatcher wires C6 to the read-only case store.
func NewMatcher(cases storage.CaseReadStore) *Matcher {
	return &Matcher{cases: cases}
}

// FindExactMatch runs the four-strategy tiered match (spec §4.6), trying
// each strategy in order and stopping at the first that produces a hit.
// Strategy 4 (title contains) only runs if 1-3 all come up empty.
func (m *Matcher) FindExactMatch(ctx context.Context, hint string) ([]models.RankedResult, error) {
	hintClean := strings.TrimSpace(hint)
	if hintClean == "" {
		return nil, nil
	}

	matched, stage, err := m.matchByStrategy(ctx, hintClean)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, nil
	}
	if len(matched) > maxMatches {
		matched = matched[:maxMatches]
	}

	results := make([]models.RankedResult, 0, len(matched))
	for _, c := range matched {
		text, extras := m.buildDossier(ctx, c)
		results = append(results, models.RankedResult{
			ID:               c.ID,
			Score:            1.0,
			Text:             text,
			CaseID:           c.ID,
			CaseNumber:       c.CaseNumber,
			CaseTitle:        c.CaseName,
			Court:            c.Court,
			Status:           string(c.Status),
			Extras:           extras,
			MatchType:        "exact_case_number",
			SourceMatchStage: stage,
		})
	}
	return results, nil
}

func (m *Matcher) matchByStrategy(ctx context.Context, hintClean string) ([]*models.Case, string, error) {
	// Strategy 1: exact case-insensitive match on case_number.
	candidates, err := m.cases.FindCasesByNumber(ctx, hintClean, 0)
	if err != nil {
		return nil, "", err
	}
	var exact []*models.Case
	for _, c := range candidates {
		if strings.EqualFold(c.CaseNumber, hintClean) {
			exact = append(exact, c)
		}
	}
	if len(exact) > 0 {
		return exact, "iexact", nil
	}

	// Strategy 2: normalized-contains (collapse whitespace, tighten
	// ". "->"." and " / "->"/").
	normalized := normalizeCaseNumber(hintClean)
	candidates, err = m.cases.FindCasesByNumber(ctx, normalized, 0)
	if err != nil {
		return nil, "", err
	}
	var byNormalized []*models.Case
	for _, c := range candidates {
		if strings.Contains(strings.ToUpper(c.CaseNumber), normalized) {
			byNormalized = append(byNormalized, c)
		}
	}
	if len(byNormalized) > 0 {
		return byNormalized, "normalized", nil
	}

	// Strategy 3: extract the bare case-number shape and retry.
	if pattern := caseNumberPatternRe.FindString(strings.ToUpper(hintClean)); pattern != "" {
		pattern = strings.Join(strings.Fields(pattern), " ")
		candidates, err = m.cases.FindCasesByNumber(ctx, pattern, 0)
		if err != nil {
			return nil, "", err
		}
		var byPattern []*models.Case
		for _, c := range candidates {
			if strings.Contains(strings.ToUpper(c.CaseNumber), pattern) {
				byPattern = append(byPattern, c)
			}
		}
		if len(byPattern) > 0 {
			return byPattern, "pattern", nil
		}
	}

	// Strategy 4: fall back to matching the case title, only after 1-3 fail.
	byTitle, err := m.cases.FindCasesByTitle(ctx, hintClean, 0)
	if err != nil {
		return nil, "", err
	}
	if len(byTitle) > 0 {
		return byTitle, "title_contains", nil
	}

	return nil, "", nil
}

func normalizeCaseNumber(s string) string {
	s = strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	s = collapseDotsRe.ReplaceAllString(s, ".")
	s = collapseSlashRe.ReplaceAllString(s, "/")
	return s
}

// buildDossier assembles the full-case text and a structured extras bag
// (spec §4.6: "assemble full dossier per result").
func (m *Matcher) buildDossier(ctx context.Context, c *models.Case) (string, map[string]interface{}) {
	var parts []string
	extras := make(map[string]interface{})

	parts = append(parts, fmt.Sprintf("Case Number: %s", c.CaseNumber))
	parts = append(parts, fmt.Sprintf("Case Title: %s", c.CaseName))
	if c.Court != "" {
		parts = append(parts, fmt.Sprintf("Court: %s", c.Court))
	}
	parts = append(parts, fmt.Sprintf("Status: %s", c.Status))

	orders, _ := m.cases.ListOrders(ctx, c.ID)
	if latest := mostRecentOrder(orders); latest != nil {
		if latest.Bench != "" {
			parts = append(parts, fmt.Sprintf("Bench: %s", latest.Bench))
			extras["bench"] = latest.Bench
		}
		if latest.ShortOrder != "" {
			parts = append(parts, fmt.Sprintf("Short Order: %s", latest.ShortOrder))
			extras["short_order"] = latest.ShortOrder
		}
		extras["hearing_date"] = latest.HearingDate
		parts = append(parts, fmt.Sprintf("Hearing Date: %s", latest.HearingDate.Format("2006-01-02")))
	}

	if detail, _ := m.cases.GetCaseDetail(ctx, c.ID); detail != nil {
		if detail.CaseDescription != "" {
			parts = append(parts, fmt.Sprintf("Case Description: %s", detail.CaseDescription))
			extras["case_description"] = detail.CaseDescription
		}
		if detail.CaseStage != "" {
			extras["case_stage"] = detail.CaseStage
		}
		if len(detail.AdvocatesPetitioner) > 0 {
			v := strings.Join(detail.AdvocatesPetitioner, ", ")
			parts = append(parts, fmt.Sprintf("Petitioner's Advocates: %s", v))
			extras["advocates_petitioner"] = v
		}
		if len(detail.AdvocatesRespondent) > 0 {
			v := strings.Join(detail.AdvocatesRespondent, ", ")
			parts = append(parts, fmt.Sprintf("Respondent's Advocates: %s", v))
			extras["advocates_respondent"] = v
		}
		if detail.FIR != nil {
			var firLine []string
			if detail.FIR.Number != "" {
				firLine = append(firLine, fmt.Sprintf("FIR No. %s", detail.FIR.Number))
				extras["fir_number"] = detail.FIR.Number
			}
			if detail.FIR.PoliceStation != "" {
				firLine = append(firLine, detail.FIR.PoliceStation)
				extras["police_station"] = detail.FIR.PoliceStation
			}
			if detail.FIR.UnderSection != "" {
				firLine = append(firLine, fmt.Sprintf("Under Sections %s", detail.FIR.UnderSection))
				extras["under_section"] = detail.FIR.UnderSection
			}
			if len(firLine) > 0 {
				parts = append(parts, strings.Join(firLine, "; "))
			}
		}
	}

	return strings.Join(parts, "\n"), extras
}

func mostRecentOrder(orders []*models.Order) *models.Order {
	var latest *models.Order
	for _, o := range orders {
		if latest == nil || o.HearingDate.After(latest.HearingDate) {
			latest = o
		}
	}
	return latest
}
