package chunk

import "strings"

// aiContextScore implements spec §4.2.2.
func aiContextScore(text string, m Metadata) float64 {
	score := 0.3
	if m.LegalDomain != "general" {
		score += 0.2
	}
	if len(m.Sections) > 0 {
		score += 0.2
	}
	court := strings.ToLower(m.Court)
	if strings.Contains(court, "high court") || strings.Contains(court, "supreme court") {
		score += 0.2
	}
	if len(text) > 500 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

var qaRelevanceTerms = []string{"court", "judge", "case", "law", "legal", "section", "act"}

func isPlaceholder(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	lower := strings.ToLower(s)
	return lower == "n/a" || lower == "unknown" || lower == "-"
}

// qaRelevanceScore implements spec §4.2.3.
func qaRelevanceScore(text string, m Metadata) float64 {
	lower := strings.ToLower(text)

	present := 0
	for _, term := range qaRelevanceTerms {
		if strings.Contains(lower, term) {
			present++
		}
	}
	score := (float64(present) / float64(len(qaRelevanceTerms))) * 0.4

	if !isPlaceholder(m.CaseNo) {
		score += 0.2
	}
	if !isPlaceholder(m.Court) {
		score += 0.2
	}
	if len(m.Judges) > 0 {
		score += 0.1
	}
	if len(m.Sections) > 0 {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
