package audit

import (
	"sort"
	"strings"
)

// Vocabulary maps a canonical justification category to its trigger terms.
// Full categories excuse the whole day; Partial categories tolerate punch
// irregularities but still expect punches to exist.
type Vocabulary struct {
	Full    map[string][]string `yaml:"full" json:"full"`
	Partial map[string][]string `yaml:"partial" json:"partial"`
}

// Normalize upper-cases and trims every term and drops empty ones.
func (v Vocabulary) Normalize() Vocabulary {
	return Vocabulary{
		Full:    normalizeTerms(v.Full),
		Partial: normalizeTerms(v.Partial),
	}
}

// Merge returns a vocabulary holding the terms of both. Categories present in
// both receive the union of their terms, in order, without duplicates.
func (v Vocabulary) Merge(other Vocabulary) Vocabulary {
	return Vocabulary{
		Full:    mergeTerms(v.Full, other.Full),
		Partial: mergeTerms(v.Partial, other.Partial),
	}
}

// MatchFull returns the first full-day category whose term occurs in reason.
func (v Vocabulary) MatchFull(reason string) (string, bool) {
	return matchTerms(v.Full, reason)
}

// MatchPartial returns the first partial category whose term occurs in reason.
func (v Vocabulary) MatchPartial(reason string) (string, bool) {
	return matchTerms(v.Partial, reason)
}

// matchTerms walks categories in sorted order so the reported category is
// deterministic when a reason carries terms of several categories.
func matchTerms(terms map[string][]string, reason string) (string, bool) {
	if reason == "" || len(terms) == 0 {
		return "", false
	}
	upper := strings.ToUpper(reason)

	categories := make([]string, 0, len(terms))
	for category := range terms {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for _, term := range terms[category] {
			if term == "" {
				continue
			}
			if strings.Contains(upper, strings.ToUpper(term)) {
				return category, true
			}
		}
	}
	return "", false
}

func normalizeTerms(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for category, terms := range in {
		key := strings.ToUpper(strings.TrimSpace(category))
		if key == "" {
			continue
		}
		for _, term := range terms {
			term = strings.ToUpper(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			out[key] = append(out[key], term)
		}
	}
	return out
}

func mergeTerms(a, b map[string][]string) map[string][]string {
	out := make(map[string][]string, len(a)+len(b))
	seen := make(map[string]map[string]struct{})
	add := func(src map[string][]string) {
		for category, terms := range src {
			if seen[category] == nil {
				seen[category] = make(map[string]struct{})
			}
			for _, term := range terms {
				if _, ok := seen[category][term]; ok {
					continue
				}
				seen[category][term] = struct{}{}
				out[category] = append(out[category], term)
			}
		}
	}
	add(a)
	add(b)
	return out
}
