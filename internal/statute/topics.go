package statute

import "strings"

// topic is the query context C5 detects to scope its keyword filter and
// exclusion deny-list (spec §4.5 steps 3 and 5), ported from the ordered
// if/elif chain in search_enhancements.py's _filter_relevant_terms and
// _apply_context_filter.
type topic string

const (
	topicVehicleTheft   topic = "vehicle_theft"
	topicMurderViolence topic = "murder_violence"
	topicFamilyLaw      topic = "family_law"
	topicPropertyLaw    topic = "property_law"
	topicFraud          topic = "fraud"
	topicTraffic        topic = "traffic"
	topicNone           topic = ""
)

type topicRule struct {
	topic    topic
	triggers []string
	relevant []string // keyword substrings a term must contain to survive the relevance filter
	exclude  []string // title substrings that disqualify an entry
}

// relevanceRules drives step 3 (context-relevance filter). Order matters:
// the first matching trigger set wins, exactly as the Python elif chain does.
var relevanceRules = []topicRule{
	{
		topic:    topicVehicleTheft,
		triggers: []string{"car", "vehicle", "motor", "auto", "stolen", "theft"},
		relevant: []string{"theft", "steal", "robbery", "burglary", "larceny", "vehicle", "motor", "car", "auto", "traffic", "criminal", "crime", "offense", "punishment", "ppc", "penal", "code"},
	},
	{
		topic:    topicMurderViolence,
		triggers: []string{"murder", "homicide", "killing", "violence", "assault"},
		relevant: []string{"murder", "homicide", "killing", "violence", "assault", "attack", "criminal", "penal", "ppc", "offense", "crime"},
	},
	{
		topic:    topicFamilyLaw,
		triggers: []string{"family", "marriage", "divorce", "custody", "spouse"},
		relevant: []string{"family", "marriage", "divorce", "custody", "spouse", "children", "domestic", "matrimony", "wedding"},
	},
	{
		topic:    topicPropertyLaw,
		triggers: []string{"property", "land", "ownership", "possession"},
		relevant: []string{"property", "land", "ownership", "possession", "real estate", "asset", "belongings"},
	},
	{
		topic:    topicFraud,
		triggers: []string{"fraud", "cheating", "scam", "deception"},
		relevant: []string{"fraud", "cheating", "deception", "scam", "swindling", "embezzlement", "forgery", "false"},
	},
}

// exclusionRules drives step 5 (context exclusion). Traffic only appears
// here, never in relevanceRules, matching the original's asymmetry.
var exclusionRules = []topicRule{
	{
		topic:    topicVehicleTheft,
		triggers: []string{"car", "vehicle", "motor", "auto", "stolen"},
		relevant: []string{"motor vehicle", "motor", "theft", "steal", "robbery", "burglary"},
		exclude: []string{
			"banking", "bank", "financial", "agricultural", "agriculture",
			"maritime", "admiralty", "shipping", "naval", "sea",
			"education", "school", "university", "examination",
			"tax", "revenue", "customs", "duty",
			"health", "medical", "hospital", "pharmaceutical",
			"cotton", "transport", "cargo", "hydrocarbon", "port", "trust",
			"meetings", "public order", "institute", "development",
			"carriage", "air",
		},
	},
	{
		topic:    topicMurderViolence,
		triggers: []string{"murder", "homicide", "killing", "violence", "assault"},
		relevant: []string{"murder", "homicide", "killing", "violence", "assault", "attack", "criminal", "penal", "ppc", "offense", "crime"},
		exclude: []string{
			"agricultural", "agriculture", "produce", "grading", "marketing",
			"blood", "transfusion", "medical", "health", "hospital",
			"banking", "bank", "financial", "tax", "revenue",
			"education", "school", "university", "examination",
			"maritime", "shipping", "port", "cargo",
		},
	},
	{
		topic:    topicFamilyLaw,
		triggers: []string{"family", "marriage", "divorce", "custody", "spouse"},
		relevant: []string{"family", "marriage", "divorce", "custody", "spouse", "children", "domestic", "matrimony", "wedding"},
		exclude: []string{
			"banking", "bank", "financial", "tax", "revenue",
			"agricultural", "agriculture", "produce", "grading",
			"medical", "health", "hospital", "blood",
			"maritime", "shipping", "port", "cargo",
			"education", "school", "university", "examination",
		},
	},
	{
		topic:    topicPropertyLaw,
		triggers: []string{"property", "land", "ownership", "possession", "real estate"},
		relevant: []string{"property", "land", "ownership", "possession", "real estate", "asset", "belongings", "abandoned", "management"},
		exclude: []string{
			"banking", "bank", "financial", "transfer", "liabilities",
			"agricultural", "agriculture", "produce", "grading",
			"medical", "health", "hospital", "blood",
			"maritime", "shipping", "port", "cargo",
			"education", "school", "university", "examination",
		},
	},
	{
		topic:    topicFraud,
		triggers: []string{"fraud", "cheating", "scam", "deception", "embezzlement"},
		relevant: []string{"fraud", "cheating", "deception", "scam", "swindling", "embezzlement", "forgery", "false", "counterfeit"},
		exclude: []string{
			"agricultural", "agriculture", "produce", "grading",
			"medical", "health", "hospital", "blood",
			"maritime", "shipping", "port", "cargo",
			"education", "school", "university", "examination",
			"banking", "bank", "financial", "transfer",
		},
	},
	{
		topic:    topicTraffic,
		triggers: []string{"hit and run", "accident", "traffic", "driving", "rash", "vehicle"},
		relevant: []string{"motor vehicle", "motor", "traffic", "driving", "accident", "hit and run", "rash", "negligence", "vehicle"},
		exclude: []string{
			"agricultural", "agriculture", "produce", "grading",
			"medical", "health", "hospital", "blood",
			"maritime", "shipping", "port", "cargo",
			"education", "school", "university", "examination",
			"banking", "bank", "financial", "transfer",
			"abandoned", "property", "management",
			"trafficking", "human trafficking", "persons",
		},
	},
}

func matchTopic(rules []topicRule, queryLower string) *topicRule {
	for i := range rules {
		for _, trigger := range rules[i].triggers {
			if strings.Contains(queryLower, trigger) {
				return &rules[i]
			}
		}
	}
	return nil
}
