package statute

// legalSynonyms is ported from LEGAL_SYNONYMS in
// original_source/backend/law_information_project/law_information/search_enhancements.py,
// the ground truth for the statute-search synonym table.
var legalSynonyms = map[string][]string{
	"theft":    {"stealing", "robbery", "burglary", "larceny", "thieving", "pilfering"},
	"stealing": {"theft", "robbery", "burglary", "larceny", "thieving", "pilfering"},
	"robbery":  {"theft", "stealing", "burglary", "larceny", "mugging", "hold-up"},
	"burglary": {"theft", "stealing", "robbery", "larceny", "breaking", "entering"},

	"murder":   {"homicide", "killing", "assassination", "slaying"},
	"homicide": {"murder", "killing", "assassination", "slaying"},
	"assault":  {"attack", "battery", "violence", "beating", "striking"},
	"attack":   {"assault", "battery", "violence", "beating", "striking"},
	"violence": {"assault", "attack", "battery", "beating", "striking"},

	"fraud":     {"cheating", "deception", "scam", "swindling", "embezzlement", "forgery"},
	"cheating":  {"fraud", "deception", "scam", "swindling", "embezzlement"},
	"scam":      {"fraud", "cheating", "deception", "swindling", "embezzlement"},
	"deception": {"fraud", "cheating", "scam", "swindling", "embezzlement"},

	"family":   {"marriage", "divorce", "custody", "domestic", "spouse", "children"},
	"marriage": {"family", "divorce", "wedding", "matrimony", "spouse"},
	"divorce":  {"family", "marriage", "separation", "dissolution", "annulment"},
	"custody":  {"family", "children", "guardianship", "parental", "care"},

	"court":      {"tribunal", "judiciary", "bench", "judge", "magistrate", "sessions"},
	"tribunal":   {"court", "judiciary", "bench", "judge", "magistrate"},
	"judge":      {"court", "tribunal", "judiciary", "magistrate", "justice"},
	"magistrate": {"court", "tribunal", "judge", "justice", "sessions"},

	"property":  {"land", "real estate", "ownership", "possession", "asset", "belongings"},
	"land":      {"property", "real estate", "ownership", "possession", "territory"},
	"ownership": {"property", "land", "possession", "title", "deed"},
	"possession": {"property", "land", "ownership", "holding", "keeping"},

	"employment": {"job", "work", "labor", "worker", "employee", "occupation"},
	"job":        {"employment", "work", "labor", "worker", "employee", "occupation"},
	"work":       {"employment", "job", "labor", "worker", "employee", "occupation"},
	"labor":      {"employment", "job", "work", "worker", "employee", "labour"},
	"worker":     {"employment", "job", "work", "labor", "employee", "staff"},

	"punishment":   {"penalty", "sentence", "fine", "imprisonment", "jail"},
	"penalty":      {"punishment", "sentence", "fine", "imprisonment", "jail"},
	"sentence":     {"punishment", "penalty", "fine", "imprisonment", "jail"},
	"fine":         {"punishment", "penalty", "sentence", "monetary", "payment"},
	"imprisonment": {"punishment", "penalty", "sentence", "jail", "prison"},

	"rights":       {"privileges", "entitlements", "freedoms", "liberties", "claims"},
	"privileges":   {"rights", "entitlements", "freedoms", "liberties", "claims"},
	"entitlements": {"rights", "privileges", "freedoms", "liberties", "claims"},
}

// expandSynonyms implements the query-side half of C5 step 1: every word in
// query plus its synonym-table neighbours, deduplicated.
func expandSynonyms(query string) []string {
	words := tokenize(query)
	seen := make(map[string]bool)
	var out []string
	add := func(w string) {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	for _, w := range words {
		add(w)
		for _, syn := range legalSynonyms[w] {
			add(syn)
		}
	}
	return out
}
