package catalog

import (
	"strings"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/models"
)

// reverseStrategy is one tier of the reverse description lookup. The tiers
// run in strict priority order; the first tier that yields at least one
// match wins.
type reverseStrategy struct {
	kind  models.MatchKind
	match func(query string, entries []Entry) []Entry
}

var reverseStrategies = []reverseStrategy{
	{models.MatchReverseExact, matchExact},
	{models.MatchReverseSimple, matchSimple},
	{models.MatchReverseKeyword, matchKeyword},
	{models.MatchReversePartial, matchPartial},
}

// matchExact: case-insensitive, trimmed full-string equality.
func matchExact(query string, entries []Entry) []Entry {
	q := strings.TrimSpace(query)
	var out []Entry
	for _, e := range entries {
		if strings.EqualFold(q, strings.TrimSpace(e.Description)) {
			out = append(out, e)
		}
	}
	return out
}

// Hand-authored special cases. These rules are finite and explicit; nothing
// here is inferred from data.
var (
	herbNames = []string{
		"rosemary", "thyme", "basil", "mint", "sage",
		"parsley", "coriander", "dill", "tarragon", "oregano",
	}
	melonNames = []string{"honeydew", "cantaloupe", "galia", "watermelon", "melon"}
	singleWordProduce = []string{
		"kiwi", "lime", "lemon", "plum", "pear", "leek", "swede", "fennel",
	}
)

// matchSimple applies the domain special-case table: herb family matching
// that excludes "dust" variants, melon-type substring matches, grape-color
// disambiguation, and a short list of single-word produce names.
func matchSimple(query string, entries []Entry) []Entry {
	q := strings.ToLower(query)

	for _, herb := range herbNames {
		if !strings.Contains(q, herb) {
			continue
		}
		var out []Entry
		for _, e := range entries {
			d := strings.ToLower(e.Description)
			if strings.Contains(d, herb) && !strings.Contains(d, "dust") {
				out = append(out, e)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	if strings.Contains(q, "melon") {
		var out []Entry
		for _, e := range entries {
			d := strings.ToLower(e.Description)
			for _, m := range melonNames {
				if strings.Contains(d, m) {
					out = append(out, e)
					break
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	if strings.Contains(q, "grape") {
		// Suppliers write grape color, the catalog writes grape variety:
		// red grapes are stocked as black, green as white.
		want := ""
		if strings.Contains(q, "red") {
			want = "black grape"
		} else if strings.Contains(q, "green") {
			want = "white grape"
		}
		if want != "" {
			var out []Entry
			for _, e := range entries {
				if strings.Contains(strings.ToLower(e.Description), want) {
					out = append(out, e)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}

	for _, w := range singleWordProduce {
		if !strings.Contains(q, w) {
			continue
		}
		var out []Entry
		for _, e := range entries {
			if strings.EqualFold(strings.TrimSpace(e.Description), w) {
				out = append(out, e)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	return nil
}

// matchKeyword tokenizes the query on whitespace, keeps tokens longer than
// two characters, and matches catalog descriptions under 50 characters that
// contain at least one token. The length cap biases toward concise canonical
// names over verbose variants.
func matchKeyword(query string, entries []Entry) []Entry {
	var tokens []string
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if len(t) > 2 {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	var out []Entry
	for _, e := range entries {
		if len(e.Description) >= 50 {
			continue
		}
		d := strings.ToLower(e.Description)
		for _, t := range tokens {
			if strings.Contains(d, t) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// partialOverrides holds specific query-substring to catalog-substring
// overrides not covered by the other tiers. Currently none are needed.
var partialOverrides = map[string]string{}

func matchPartial(query string, entries []Entry) []Entry {
	q := strings.ToLower(query)
	var out []Entry
	for qsub, dsub := range partialOverrides {
		if !strings.Contains(q, qsub) {
			continue
		}
		for _, e := range entries {
			if strings.Contains(strings.ToLower(e.Description), dsub) {
				out = append(out, e)
			}
		}
	}
	return out
}

// pickByUnitPriority breaks ties between reverse matches: a code ending in
// the Each suffix wins, then a code ending in the Box suffix, then the first
// match in catalog order. Each is the most universally importable unit.
func pickByUnitPriority(matches []Entry) Entry {
	for _, e := range matches {
		if strings.HasSuffix(e.Code, models.UnitEach.Suffix()) {
			return e
		}
	}
	for _, e := range matches {
		if strings.HasSuffix(e.Code, models.UnitBox.Suffix()) {
			return e
		}
	}
	return matches[0]
}
