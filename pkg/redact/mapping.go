package redact

import (
	"strings"
	"time"
	"unicode"

	"github.com/draftshield/draftshield/pkg/models"
)

// Mapping associates literal real values with placeholder tokens for one
// student, for the duration of one mask/unmask round trip. Entries keep
// insertion order; re-adding an existing key overwrites its token in place
// (last write wins) while the key keeps its original position, so reverse
// derivation stays deterministic. A Mapping is never mutated after
// BuildMapping returns and is therefore safe for concurrent readers.
type Mapping struct {
	entries []entry
	index   map[string]int
}

type entry struct {
	value string
	token Token
}

func newMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// put records value → token. Empty values contribute no entry. A key that
// already exists keeps its position and takes the new token: when two
// categories collide on an identical literal, the later-inserted category
// wins. This collision policy is lossy: the literal can only be restored to
// one form anyway.
func (m *Mapping) put(value string, token Token) {
	if value == "" {
		return
	}
	if i, ok := m.index[value]; ok {
		m.entries[i].token = token
		return
	}
	m.index[value] = len(m.entries)
	m.entries = append(m.entries, entry{value: value, token: token})
}

// putCased records the exact value followed by its lowercase and uppercase
// forms. The exact form goes first so reverse derivation restores it.
func (m *Mapping) putCased(value string, token Token) {
	m.put(value, token)
	m.put(strings.ToLower(value), token)
	m.put(strings.ToUpper(value), token)
}

// Len returns the number of mapped values.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Values returns the mapped real values in insertion order.
func (m *Mapping) Values() []string {
	vals := make([]string, len(m.entries))
	for i, e := range m.entries {
		vals[i] = e.value
	}
	return vals
}

// Lookup returns the token currently associated with a literal value.
func (m *Mapping) Lookup(value string) (Token, bool) {
	i, ok := m.index[value]
	if !ok {
		return "", false
	}
	return m.entries[i].token, true
}

// dobLayouts are the calendar-date forms accepted from the intake form.
var dobLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
}

// BuildMapping derives the complete substitution table for one student.
// Empty fields contribute nothing, so a record with only a name still yields
// a usable, smaller table; BuildMapping has no failure path.
//
// Field order below is the documented collision tie-break: when two fields
// share an identical literal value, the later field's token survives.
func BuildMapping(rec models.StudentRecord) *Mapping {
	m := newMapping()

	if name := rec.FullName; name != "" {
		m.putCased(name, TokenStudentName)
		// First token of the name, when it differs from the full value,
		// gets its own placeholder so "John said..." masks without the
		// full-name form.
		if i := strings.IndexFunc(name, unicode.IsSpace); i > 0 {
			if first := name[:i]; first != name {
				m.putCased(first, TokenStudentFirstName)
			}
		}
	}

	if dob := rec.DateOfBirth; dob != "" {
		m.put(dob, TokenDateOfBirth)
		// Source documents render the date in several forms; cover the
		// locale and ISO renderings when the stored value parses. An
		// unparseable date degrades to raw-value-only mapping.
		if t, ok := parseDOB(dob); ok {
			m.put(t.Format("January 2, 2006"), TokenDateOfBirth)
			m.put(t.Format("2006-01-02"), TokenDateOfBirth)
		}
	}

	// Low-ambiguity literals: exact value only, no case variants.
	m.put(rec.StudentID, TokenStudentID)

	m.putCased(rec.School, TokenSchool)
	m.put(rec.Grade, TokenGrade)
	m.putCased(rec.GuardianName, TokenGuardianName)
	m.put(rec.Address, TokenAddress)

	// GuardianContact has no token in the vocabulary and is never mapped;
	// callers must not place it in outbound payloads.

	return m
}

func parseDOB(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
