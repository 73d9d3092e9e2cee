// Package statute implements the Statute Keyword Engine (C5): synonym
// expansion, an exact-phrase short-circuit, topic-scoped relevance
// filtering, weighted field retrieval, and context exclusion over the
// law-information corpus.
package statute

import (
	"context"
	"sort"
	"strings"

	"github.com/faizrashid/nazeer/internal/storage"
	"github.com/faizrashid/nazeer/pkg/models"
)

// SearchType scopes a search to StatuteEntry fields. SearchTypeAll (or
// empty) runs the full pipeline; any other value skips the exact-phrase
// pass and topic filters and runs a synonym-expanded match against the
// single named field.
type SearchType string

const (
	SearchTypeAll          SearchType = "all"
	SearchTypeTitle        SearchType = "title"
	SearchTypeSections     SearchType = "sections"
	SearchTypeTags         SearchType = "tags"
	SearchTypeJurisdiction SearchType = "jurisdiction"
)

const (
	scoreExactPhrase = 100.0
	scoreTitle       = 90.0
	scoreTag         = 80.0
	scoreSection     = 70.0
	scoreFieldMatch  = 75.0
)

// Engine is the Statute Keyword Engine (C5).
type Engine struct {
	store storage.StatuteStore
}

// NewEngine wires C5 to its corpus store.
func NewEngine(store storage.StatuteStore) *Engine {
	return &Engine{store: store}
}

// Search implements spec §4.5's six-step algorithm.
func (e *Engine) Search(ctx context.Context, query string, searchType SearchType) ([]models.StatuteMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	entries, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if searchType != SearchTypeAll && searchType != "" {
		return fieldSpecificSearch(entries, query, searchType), nil
	}

	if exact := exactPhrasePass(entries, query); len(exact) > 0 {
		return exact, nil
	}

	expanded := expandSynonyms(query)
	if len(expanded) == 0 {
		return nil, nil
	}

	relevant := filterRelevantTerms(query, expanded)
	if len(relevant) == 0 {
		return nil, nil
	}

	candidates := weightedRetrieval(entries, relevant)
	filtered := applyContextExclusion(candidates, query)

	sortMatches(filtered)
	return filtered, nil
}

func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

func searchableFields(e *models.StatuteEntry) (title, sections, tags, jurisdiction, punishment string) {
	return strings.ToLower(e.Title), strings.ToLower(strings.Join(e.Sections, " ")),
		strings.ToLower(strings.Join(e.Tags, " ")), strings.ToLower(e.Jurisdiction), strings.ToLower(e.PunishmentSummary)
}

// exactPhrasePass implements step 2: entries containing the raw query
// verbatim in any searchable field score 100 and short-circuit the rest
// of the algorithm.
func exactPhrasePass(entries []*models.StatuteEntry, query string) []models.StatuteMatch {
	needle := strings.ToLower(query)
	var out []models.StatuteMatch
	for _, e := range entries {
		title, sections, tags, jurisdiction, punishment := searchableFields(e)
		if strings.Contains(title, needle) || strings.Contains(sections, needle) ||
			strings.Contains(tags, needle) || strings.Contains(jurisdiction, needle) ||
			strings.Contains(punishment, needle) {
			out = append(out, models.StatuteMatch{Entry: e, Relevance: scoreExactPhrase})
		}
	}
	sortMatches(out)
	return out
}

// filterRelevantTerms implements step 3: scope the expanded term set to
// the query's detected topic; unrecognized topics pass every term through.
func filterRelevantTerms(query string, expanded []string) []string {
	lower := strings.ToLower(query)
	rule := matchTopic(relevanceRules, lower)
	if rule == nil {
		return expanded
	}

	seen := make(map[string]bool)
	var out []string
	addUnique := func(w string) {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}

	if rule.topic == topicVehicleTheft {
		// The vehicle-theft rule seeds three always-included terms ahead
		// of the filtered expansion (mirrors the Python implementation).
		addUnique("theft")
		addUnique("motor vehicle")
		addUnique("motor")
	}

	for _, term := range expanded {
		termLower := strings.ToLower(term)
		for _, kw := range rule.relevant {
			if strings.Contains(termLower, kw) {
				addUnique(term)
				break
			}
		}
	}

	return out
}

// weightedRetrieval implements step 4: title/tag/section matches scored
// 90/80/70, deduplicated by entry with the max matched score kept.
func weightedRetrieval(entries []*models.StatuteEntry, terms []string) []models.StatuteMatch {
	best := make(map[*models.StatuteEntry]float64)
	for _, e := range entries {
		title, sections, tags, _, _ := searchableFields(e)
		score := 0.0
		for _, term := range terms {
			t := strings.ToLower(term)
			if strings.Contains(title, t) && scoreTitle > score {
				score = scoreTitle
			}
			if strings.Contains(tags, t) && scoreTag > score {
				score = scoreTag
			}
			if strings.Contains(sections, t) && scoreSection > score {
				score = scoreSection
			}
		}
		if score > 0 {
			best[e] = score
		}
	}

	out := make([]models.StatuteMatch, 0, len(best))
	for e, score := range best {
		out = append(out, models.StatuteMatch{Entry: e, Relevance: score})
	}
	return out
}

// applyContextExclusion implements step 5: subtract the topic's deny-list
// and require at least one in-topic keyword survive in title or tags.
func applyContextExclusion(matches []models.StatuteMatch, query string) []models.StatuteMatch {
	lower := strings.ToLower(query)
	rule := matchTopic(exclusionRules, lower)
	if rule == nil {
		return matches
	}

	var out []models.StatuteMatch
	for _, m := range matches {
		title, _, tags, _, _ := searchableFields(m.Entry)

		excluded := false
		for _, kw := range rule.exclude {
			if strings.Contains(title, kw) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		if rule.topic == topicVehicleTheft {
			if (strings.Contains(title, "gas") && strings.Contains(title, "theft")) ||
				(strings.Contains(title, "electricity") && strings.Contains(title, "theft")) ||
				(strings.Contains(title, "water") && strings.Contains(title, "theft")) ||
				(strings.Contains(title, "oil") && strings.Contains(title, "theft")) ||
				strings.Contains(title, "shipping") || strings.Contains(title, "transport") || strings.Contains(title, "cargo") {
				continue
			}
		}

		inTopic := false
		for _, kw := range rule.relevant {
			if strings.Contains(title, kw) || strings.Contains(tags, kw) {
				inTopic = true
				break
			}
		}
		if !inTopic {
			continue
		}

		out = append(out, m)
	}
	return out
}

// fieldSpecificSearch implements the search_type-scoped path (title,
// sections, tags, jurisdiction): synonym-expanded substring match against
// the single named field, scored uniformly.
func fieldSpecificSearch(entries []*models.StatuteEntry, query string, searchType SearchType) []models.StatuteMatch {
	expanded := expandSynonyms(query)
	var out []models.StatuteMatch
	for _, e := range entries {
		title, sections, tags, jurisdiction, _ := searchableFields(e)
		var field string
		switch searchType {
		case SearchTypeTitle:
			field = title
		case SearchTypeSections:
			field = sections
		case SearchTypeTags:
			field = tags
		case SearchTypeJurisdiction:
			field = jurisdiction
		}
		for _, term := range expanded {
			if strings.Contains(field, strings.ToLower(term)) {
				out = append(out, models.StatuteMatch{Entry: e, Relevance: scoreFieldMatch})
				break
			}
		}
	}
	sortMatches(out)
	return out
}

// sortMatches implements step 6: order by (-relevance, title).
func sortMatches(matches []models.StatuteMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Relevance != matches[j].Relevance {
			return matches[i].Relevance > matches[j].Relevance
		}
		return matches[i].Entry.Title < matches[j].Entry.Title
	})
}
