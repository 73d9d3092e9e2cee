package chunk

import "strings"

// band is a weighted keyword tier; high=3, medium=2, low=1, matching the
// teacher's concepts-package keyword-weighting idiom.
type band struct {
	weight   int
	keywords []string
}

var domainBands = map[string][]band{
	"criminal": {
		{3, []string{"ppc", "accused", "fir", "charged under", "criminal charges", "conviction", "acquittal", "murder", "qatl"}},
		{2, []string{"prosecution", "offence", "offense", "bail", "sentence", "custody"}},
		{1, []string{"police", "investigation", "arrest"}},
	},
	"civil": {
		{3, []string{"cpc", "plaintiff", "defendant", "suit for", "decree", "injunction"}},
		{2, []string{"damages", "specific performance", "breach of contract"}},
		{1, []string{"civil suit", "pleadings"}},
	},
	"constitutional": {
		{3, []string{"constitution", "fundamental rights", "article 199", "writ petition", "habeas corpus"}},
		{2, []string{"due process", "judicial review", "ultra vires"}},
		{1, []string{"state", "legislature"}},
	},
	"family": {
		{3, []string{"khula", "divorce", "custody of minor", "maintenance", "nikahnama"}},
		{2, []string{"guardianship", "dower", "dowry"}},
		{1, []string{"marriage", "family court"}},
	},
	"commercial": {
		{3, []string{"arbitration", "commercial dispute", "letter of credit", "company law"}},
		{2, []string{"partnership", "shareholder", "insolvency"}},
		{1, []string{"business", "trade"}},
	},
	"tax": {
		{3, []string{"income tax", "sales tax", "fbr", "tax tribunal"}},
		{2, []string{"assessment order", "tax evasion"}},
		{1, []string{"revenue", "customs duty"}},
	},
	"labor": {
		{3, []string{"labour court", "industrial relations", "wrongful termination"}},
		{2, []string{"employee", "employer", "wages"}},
		{1, []string{"workplace", "union"}},
	},
	"property": {
		{3, []string{"mutation", "registry", "possession of land", "ejectment"}},
		{2, []string{"tenancy", "lease", "revenue record"}},
		{1, []string{"property", "land"}},
	},
	"banking": {
		{3, []string{"nab", "banking court", "recovery of loan", "financial institution"}},
		{2, []string{"default", "guarantee", "mortgage"}},
		{1, []string{"bank", "finance"}},
	},
	"intellectual_property": {
		{3, []string{"trademark", "copyright infringement", "patent"}},
		{2, []string{"intellectual property", "trade secret"}},
		{1, []string{"brand", "design registration"}},
	},
	"corporate": {
		{3, []string{"secp", "board of directors", "corporate governance"}},
		{2, []string{"winding up", "memorandum of association"}},
		{1, []string{"company", "shares"}},
	},
}

const criminalTieBreakDomain = "criminal"

var criminalTieBreakTerms = []string{"ppc", "charged under", "criminal charges", "accused", "conviction"}

// classifyDomain scores text against every domain's keyword bands and
// returns the argmax, applying the criminal/civil tie-break rule (spec
// §4.2.1). Zero total score across all domains yields "general".
func classifyDomain(text string) string {
	lower := strings.ToLower(text)

	scores := make(map[string]int, len(domainBands))
	for domain, bands := range domainBands {
		total := 0
		for _, b := range bands {
			for _, kw := range b.keywords {
				if strings.Contains(lower, kw) {
					total += b.weight
				}
			}
		}
		scores[domain] = total
	}

	if scores["criminal"] > 0 && scores["civil"] > 0 {
		for _, term := range criminalTieBreakTerms {
			if strings.Contains(lower, term) {
				return criminalTieBreakDomain
			}
		}
	}

	best := "general"
	bestScore := 0
	// Deterministic iteration: stable priority order over the domain set
	// so ties resolve the same way on every run.
	for _, domain := range domainOrder {
		if scores[domain] > bestScore {
			bestScore = scores[domain]
			best = domain
		}
	}
	if bestScore == 0 {
		return "general"
	}
	return best
}

var domainOrder = []string{
	"criminal", "civil", "constitutional", "family", "commercial", "tax",
	"labor", "property", "banking", "intellectual_property", "corporate",
}
