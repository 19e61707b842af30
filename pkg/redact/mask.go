package redact

import (
	"regexp"
	"sort"
	"strings"
)

// Mask replaces every occurrence of every mapped value in text with its
// placeholder token. Keys are applied longest first so a full name is
// consumed before the first-name key that is one of its substrings, and each
// replacement runs over the accumulating output of the previous ones.
// Substitution is case-insensitive and literal: keys are regexp-quoted, so
// characters with pattern meaning match themselves.
//
// Matching is plain substring with no word-boundary anchoring, so a short
// mapped value occurring inside an unrelated longer word is replaced too.
// Over-masking is the accepted failure mode here; see ValidateNoLeak for the
// independent residue check.
func Mask(text string, m *Mapping) string {
	if text == "" || m.Len() == 0 {
		return text
	}
	out := text
	for _, e := range m.keysByLength() {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(e.value))
		out = re.ReplaceAllLiteralString(out, string(e.token))
	}
	return out
}

// keysByLength returns entries ordered by descending value length, ties kept
// in insertion order so the pass is deterministic.
func (m *Mapping) keysByLength() []entry {
	keys := make([]entry, len(m.entries))
	copy(keys, m.entries)
	sort.SliceStable(keys, func(i, j int) bool {
		return len(keys[i].value) > len(keys[j].value)
	})
	return keys
}

// Unmask replaces placeholder tokens in text with their real values. The
// reverse table keeps the first value seen per token in mapping insertion
// order, so the canonical full form wins over its case variants. Token
// matching is exact and case-sensitive; tokens have one canonical casing.
// Tokens with no mapped value (pronoun tokens, categories absent from the
// record) are left in place, which makes Unmask idempotent once all
// resolvable tokens are gone.
func Unmask(text string, m *Mapping) string {
	if text == "" || m.Len() == 0 {
		return text
	}
	out := text
	for _, r := range m.reverse() {
		out = strings.ReplaceAll(out, string(r.token), r.value)
	}
	return out
}

// reverse derives token → real value pairs, first-inserted value per token.
func (m *Mapping) reverse() []entry {
	seen := make(map[Token]bool, len(m.entries))
	rev := make([]entry, 0, len(m.entries))
	for _, e := range m.entries {
		if seen[e.token] {
			continue
		}
		seen[e.token] = true
		rev = append(rev, e)
	}
	return rev
}
