package legalref

import (
	"sort"
	"strings"
)

// Normalizer canonicalizes legal references in arbitrary input text
// (spec §4.1). It is stateless once constructed: Normalize takes input
// and produces output with no retained state, per the "data + pure
// functions" design note.
type Normalizer struct {
	patterns []pattern
}

// NewNormalizer builds a Normalizer with the full Pakistani legal
// reference pattern set.
func NewNormalizer() *Normalizer {
	return &Normalizer{patterns: compilePatterns()}
}

// Normalize recognizes, deduplicates, and canonicalizes every legal
// reference in text. It never raises: on internal failure it returns the
// original text with an empty reference list and an error marker.
func (n *Normalizer) Normalize(text string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{ProcessedText: text, Error: "normalization_panic"}
		}
	}()

	candidates := n.findCandidates(text)
	candidates = suppressDuplicateKeys(candidates)

	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := candidates[i].kind.priority(), candidates[j].kind.priority()
		if pi != pj {
			return pi > pj
		}
		return candidates[i].start < candidates[j].start
	})

	accepted := suppressOverlaps(candidates)

	// Replacement must happen back-to-front on original character offsets
	// so earlier spans are not shifted by later substitutions.
	bySpan := make([]candidate, len(accepted))
	copy(bySpan, accepted)
	sort.Slice(bySpan, func(i, j int) bool { return bySpan[i].start > bySpan[j].start })

	processed := text
	for _, c := range bySpan {
		processed = processed[:c.start] + c.canonical + processed[c.end:]
	}

	// References are reported in priority/position order, matching the
	// order they were accepted in (spec scenario 5: citation before section).
	refs := make([]Reference, 0, len(accepted))
	for _, c := range accepted {
		refs = append(refs, Reference{
			Kind:        c.kind,
			Surface:     c.surface,
			Canonical:   c.canonical,
			Start:       c.start,
			End:         c.end,
			QARelevance: qaRelevance(c),
		})
	}

	return Result{
		ProcessedText: processed,
		References:    refs,
		QAContext:     buildQAContext(accepted),
	}
}

func (n *Normalizer) findCandidates(text string) []candidate {
	var out []candidate
	for _, p := range n.patterns {
		matches := p.re.FindAllStringSubmatchIndex(text, -1)
		for _, m := range matches {
			out = append(out, p.parse(p.kind, m, text))
		}
	}
	return out
}

// suppressDuplicateKeys drops any match whose normalized key was already
// seen, in the order findCandidates discovered them (spec §4.1 step 2:
// "before sorting").
func suppressDuplicateKeys(in []candidate) []candidate {
	seen := make(map[string]bool, len(in))
	out := make([]candidate, 0, len(in))
	for _, c := range in {
		if seen[c.key] {
			continue
		}
		seen[c.key] = true
		out = append(out, c)
	}
	return out
}

// suppressOverlaps rejects a candidate whose overlap with any already-
// accepted span exceeds 50% of the shorter span's length (spec §4.1 step 4).
func suppressOverlaps(in []candidate) []candidate {
	var accepted []candidate
	for _, c := range in {
		overlaps := false
		for _, a := range accepted {
			ov := overlapLen(c.start, c.end, a.start, a.end)
			if ov <= 0 {
				continue
			}
			shorter := c.end - c.start
			if a.end-a.start < shorter {
				shorter = a.end - a.start
			}
			if shorter > 0 && float64(ov) > 0.5*float64(shorter) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

func overlapLen(s1, e1, s2, e2 int) int {
	start := s1
	if s2 > start {
		start = s2
	}
	end := e1
	if e2 < end {
		end = e2
	}
	if end <= start {
		return 0
	}
	return end - start
}

var agencyRelevance = map[string]float64{
	"FIA": 0.80,
	"NAB": 0.85,
	"ANF": 0.75,
	"CTD": 0.70,
}

// qaRelevance implements spec §4.1 step 5: statute codes in the known set
// get a 0.9 base; citation/constitutional/court kinds add a bonus on top,
// capped at 1.0; agency references sit in their own 0.70-0.85 band.
func qaRelevance(c candidate) float64 {
	if c.kind == KindAgency {
		code := strings.TrimSuffix(c.canonical, " investigation")
		if v, ok := agencyRelevance[code]; ok {
			return v
		}
		return 0.70
	}

	score := 0.6
	if c.act != "" && isKnownCode(c.act) {
		score = 0.9
	}
	switch c.kind {
	case KindCaseCitation:
		score += 0.1
	case KindConstitutional:
		score += 0.05
	case KindCourt:
		score += 0.05
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func buildQAContext(accepted []candidate) QAContext {
	var ctx QAContext
	actSeen := map[string]bool{}
	courtSeen := map[string]bool{}
	yearSeen := map[string]bool{}
	typeSeen := map[Kind]bool{}

	for _, c := range accepted {
		if c.act != "" && !actSeen[c.act] {
			actSeen[c.act] = true
			ctx.Acts = append(ctx.Acts, c.act)
		}
		if !typeSeen[c.kind] {
			typeSeen[c.kind] = true
			ctx.ReferenceTypes = append(ctx.ReferenceTypes, string(c.kind))
		}
		if c.kind == KindCourt || c.kind == KindCaseCitation {
			fields := strings.Fields(c.canonical)
			for _, f := range fields {
				if len(f) == 4 && isDigits(f) && !yearSeen[f] {
					yearSeen[f] = true
					ctx.Years = append(ctx.Years, f)
				}
			}
		}
		if c.kind == KindCourt {
			fields := strings.Fields(c.canonical)
			court := c.canonical
			if len(fields) > 2 {
				court = strings.Join(fields[:len(fields)-2], " ")
			}
			if court != "" && !courtSeen[court] {
				courtSeen[court] = true
				ctx.Courts = append(ctx.Courts, court)
			}
		}
	}
	return ctx
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
