package correction

import (
	"sort"
	"strings"
	"unicode"
)

const defaultMinTokenLen = 3

// Stop-words dropped during keyword extraction. The platform serves French
// course content, so both French and English function words are covered.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// French
		"les", "des", "une", "est", "sont", "dans", "pour", "que", "qui",
		"avec", "sur", "pas", "par", "plus", "aux", "ces", "son", "ses",
		"cette", "mais", "comme", "tout", "tous", "elle", "ils", "elles",
		"nous", "vous", "leur", "leurs", "donc", "ainsi", "être", "avoir",
		"fait", "peut", "aussi", "entre", "sans", "sous", "lors", "alors",
		// English
		"the", "and", "for", "are", "was", "were", "with", "this", "that",
		"from", "has", "have", "had", "not", "its", "can", "will", "which",
		"into", "also", "than", "then", "when", "where", "there", "their",
	} {
		stopWords[w] = struct{}{}
	}
}

// extractKeywords returns the significant terms of s: lower-cased, split on
// non-alphanumeric boundaries, stop-words and short tokens dropped. The
// output is a deduplicated sorted slice, so identical input always yields
// identical output.
func extractKeywords(s string, minLen int) []string {
	if minLen <= 0 {
		minLen = defaultMinTokenLen
	}
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len([]rune(t)) < minLen {
			continue
		}
		if _, stop := stopWords[t]; stop {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// keywordOverlap is the proportion of reference keywords present in the
// submitted answer's keyword set. Returns 0 when the reference has none.
func keywordOverlap(reference, submitted []string) float64 {
	if len(reference) == 0 {
		return 0
	}
	have := map[string]struct{}{}
	for _, k := range submitted {
		have[k] = struct{}{}
	}
	hits := 0
	for _, k := range reference {
		if _, ok := have[k]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(reference))
}
