package legalref

import (
	"fmt"
	"regexp"
	"strings"
)

// pattern pairs a compiled regex with the parser that turns one of its
// matches into a candidate. Modeled on citation.Extractor's
// map[Format]*regexp.Regexp + per-format parse function idiom.
type pattern struct {
	kind  Kind
	re    *regexp.Regexp
	parse func(kind Kind, m []int, text string) candidate
}

var statuteCodes = map[string]string{
	"ppc":          "PPC",
	"crpc":         "CrPC",
	"cpc":          "CPC",
	"qso":          "QSO",
	"constitution": "Constitution",
}

func normalizedStatuteCode(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.TrimRight(key, ".")
	if code, ok := statuteCodes[key]; ok {
		return code
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

func isKnownCode(code string) bool {
	c := strings.ToLower(code)
	return c == "ppc" || c == "crpc" || c == "cpc" || c == "constitution"
}

func compilePatterns() []pattern {
	var patterns []pattern

	// sub-section: "sub-section 2 of section 497" -> s. 497(2)
	subSectionRe := regexp.MustCompile(`(?i)sub-?section\s+(\d+[A-Za-z]?)\s+of\s+section\s+(\d+[A-Za-z]?)\s*(ppc|crpc|cpc|qso)?`)
	patterns = append(patterns, pattern{
		kind: KindSubSection,
		re:   subSectionRe,
		parse: func(kind Kind, m []int, text string) candidate {
			sub := text[m[2]:m[3]]
			sec := text[m[4]:m[5]]
			act := ""
			if m[6] >= 0 {
				act = normalizedStatuteCode(text[m[6]:m[7]])
			}
			canon := fmt.Sprintf("s. %s(%s)", sec, sub)
			if act != "" {
				canon = fmt.Sprintf("%s %s", canon, act)
			}
			return candidate{
				kind: kind, start: m[0], end: m[1], surface: text[m[0]:m[1]],
				canonical: canon, act: act,
				key: fmt.Sprintf("section|%s(%s)|%s", sec, sub, strings.ToLower(act)),
			}
		},
	})

	// section: "section 302 PPC", "s. 302 ppc", "302 PPC"
	sectionRe := regexp.MustCompile(`(?i)(?:section|s\.)\s*(\d+[A-Za-z]?)\s*(ppc|crpc|cpc|qso)?|\b(\d{2,3}[A-Za-z]?)\s+(ppc|crpc|cpc|qso)\b`)
	patterns = append(patterns, pattern{
		kind: KindSection,
		re:   sectionRe,
		parse: func(kind Kind, m []int, text string) candidate {
			var num, act string
			if m[2] >= 0 {
				num = text[m[2]:m[3]]
				if m[4] >= 0 {
					act = normalizedStatuteCode(text[m[4]:m[5]])
				}
			} else {
				num = text[m[6]:m[7]]
				act = normalizedStatuteCode(text[m[8]:m[9]])
			}
			canon := fmt.Sprintf("s. %s", num)
			if act != "" {
				canon = fmt.Sprintf("%s %s", canon, act)
			}
			return candidate{
				kind: kind, start: m[0], end: m[1], surface: text[m[0]:m[1]],
				canonical: canon, act: act,
				key: fmt.Sprintf("section|%s|%s", num, strings.ToLower(act)),
			}
		},
	})

	// constitutional article: "article 199", "art. 199(1) constitution"
	articleRe := regexp.MustCompile(`(?i)(?:article|art\.?)\s*(\d+[A-Za-z]?)(?:\((\d+)\))?\s*(constitution)?`)
	patterns = append(patterns, pattern{
		kind: KindConstitutional,
		re:   articleRe,
		parse: func(kind Kind, m []int, text string) candidate {
			num := text[m[2]:m[3]]
			sub := ""
			if m[4] >= 0 {
				sub = text[m[4]:m[5]]
			}
			canon := fmt.Sprintf("Art. %s Constitution", num)
			key := fmt.Sprintf("art|%s|constitution", num)
			if sub != "" {
				canon = fmt.Sprintf("Art. %s(%s) Constitution", num, sub)
				key = fmt.Sprintf("art|%s(%s)|constitution", num, sub)
			}
			return candidate{
				kind: kind, start: m[0], end: m[1], surface: text[m[0]:m[1]],
				canonical: canon, act: "Constitution", key: key,
			}
		},
	})

	// case citation: "PLD 2019 SC 123", "PLJ 2020 45"
	citationRe := regexp.MustCompile(`(?i)\b(PLD|MLD|CLC|SCMR|YLR|PLJ)\s+(\d{4})\s+(?:([A-Z]{2,6})\s+)?(\d+)\b`)
	patterns = append(patterns, pattern{
		kind: KindCaseCitation,
		re:   citationRe,
		parse: func(kind Kind, m []int, text string) candidate {
			reporter := strings.ToUpper(text[m[2]:m[3]])
			year := text[m[4]:m[5]]
			court := ""
			if m[6] >= 0 {
				court = strings.ToUpper(text[m[6]:m[7]])
			}
			page := text[m[8]:m[9]]
			var canon string
			if court != "" {
				canon = fmt.Sprintf("%s %s %s %s", reporter, year, court, page)
			} else {
				canon = fmt.Sprintf("%s %s %s", reporter, year, page)
			}
			return candidate{
				kind: kind, start: m[0], end: m[1], surface: text[m[0]:m[1]],
				canonical: canon,
				key:       fmt.Sprintf("citation|%s|%s|%s|%s", reporter, year, court, page),
			}
		},
	})

	// court reference: "SC 2023 45", "Lahore High Court 2021 12"
	courtRe := regexp.MustCompile(`(?i)\b(SC|Supreme Court|Lahore High Court|Sindh High Court|Islamabad High Court|Peshawar High Court|Balochistan High Court)\s+(\d{4})\s+(\d+)\b`)
	patterns = append(patterns, pattern{
		kind: KindCourt,
		re:   courtRe,
		parse: func(kind Kind, m []int, text string) candidate {
			court := text[m[2]:m[3]]
			year := text[m[4]:m[5]]
			num := text[m[6]:m[7]]
			canon := fmt.Sprintf("%s %s %s", canonicalCourt(court), year, num)
			return candidate{
				kind: kind, start: m[0], end: m[1], surface: text[m[0]:m[1]],
				canonical: canon,
				key:       fmt.Sprintf("court|%s|%s|%s", strings.ToLower(court), year, num),
			}
		},
	})

	// rule/order: "rule 11 CPC", "order 7 CPC"
	ruleRe := regexp.MustCompile(`(?i)\b(rule|order)\s+(\d+[A-Za-z]?)\s*(cpc|crpc)?\b`)
	patterns = append(patterns, pattern{
		kind: KindRuleOrder,
		re:   ruleRe,
		parse: func(kind Kind, m []int, text string) candidate {
			label := capitalize(strings.ToLower(text[m[2]:m[3]]))
			num := text[m[4]:m[5]]
			act := ""
			if m[6] >= 0 {
				act = normalizedStatuteCode(text[m[6]:m[7]])
			}
			canon := fmt.Sprintf("%s %s", label, num)
			if act != "" {
				canon = fmt.Sprintf("%s %s", canon, act)
			}
			return candidate{
				kind: kind, start: m[0], end: m[1], surface: text[m[0]:m[1]],
				canonical: canon, act: act,
				key: fmt.Sprintf("rule|%s|%s|%s", strings.ToLower(label), num, strings.ToLower(act)),
			}
		},
	})

	// agency reference: "FIA investigation", "NAB filed"
	agencyRe := regexp.MustCompile(`(?i)\b(FIA|NAB|ANF|CTD)\b`)
	patterns = append(patterns, pattern{
		kind: KindAgency,
		re:   agencyRe,
		parse: func(kind Kind, m []int, text string) candidate {
			code := strings.ToUpper(text[m[2]:m[3]])
			return candidate{
				kind: kind, start: m[0], end: m[1], surface: text[m[0]:m[1]],
				canonical: fmt.Sprintf("%s investigation", code),
				key:       fmt.Sprintf("agency|%s", code),
			}
		},
	})

	return patterns
}

func canonicalCourt(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case key == "sc" || key == "supreme court":
		return "SC"
	case strings.Contains(key, "lahore"):
		return "Lahore High Court"
	case strings.Contains(key, "sindh"):
		return "Sindh High Court"
	case strings.Contains(key, "islamabad"):
		return "Islamabad High Court"
	case strings.Contains(key, "peshawar"):
		return "Peshawar High Court"
	case strings.Contains(key, "balochistan"):
		return "Balochistan High Court"
	default:
		return raw
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
