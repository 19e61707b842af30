package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftshield/draftshield/pkg/models"
)

func TestValidateNoLeak_CleanAfterMask(t *testing.T) {
	m := BuildMapping(testRecord())

	tests := []struct {
		name  string
		input string
	}{
		{"exact case", "John Smith (S-10442) attends Lakeside Elementary, guardian Maria Smith."},
		{"lowercase", "john smith (s-10442) attends lakeside elementary."},
		{"uppercase", "JOHN SMITH ATTENDS LAKESIDE ELEMENTARY ON 2015-04-02."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked := Mask(tt.input, m)
			report := ValidateNoLeak(masked, m)
			assert.True(t, report.Clean, "offending: %v", report.Offending)
			assert.Empty(t, report.Offending)
		})
	}
}

func TestValidateNoLeak_DetectsResidue(t *testing.T) {
	m := BuildMapping(testRecord())

	report := ValidateNoLeak("The report mentions john smith twice.", m)

	require.False(t, report.Clean)
	assert.Contains(t, report.Offending, "john smith")
}

func TestValidateNoLeak_CaseInsensitive(t *testing.T) {
	m := BuildMapping(models.StudentRecord{FullName: "John Smith"})

	report := ValidateNoLeak("JoHn SmItH slipped through", m)

	require.False(t, report.Clean)
	// Every mapped key that matches is listed; the case variants share the
	// same case-folded text, so all three full-name keys appear.
	assert.Len(t, report.Offending, 6)
}

func TestValidateNoLeak_IgnoresShortValues(t *testing.T) {
	m := BuildMapping(models.StudentRecord{
		FullName: "John Smith",
		Grade:    "K",
	})

	report := ValidateNoLeak("Kindergarten starts with K", m)

	assert.True(t, report.Clean, "short mapped values are excluded from the scan")
}

func TestValidateNoLeak_EmptyInputs(t *testing.T) {
	m := BuildMapping(testRecord())

	assert.True(t, ValidateNoLeak("", m).Clean)
	assert.True(t, ValidateNoLeak("no identifying data here", BuildMapping(models.StudentRecord{})).Clean)
}

func TestValidateNoLeak_DoesNotMutate(t *testing.T) {
	m := BuildMapping(testRecord())
	text := "John Smith is present"

	_ = ValidateNoLeak(text, m)

	assert.Equal(t, "John Smith is present", text)
	assert.Equal(t, 1, countEntries(m, "John Smith"))
}

func countEntries(m *Mapping, value string) int {
	n := 0
	for _, v := range m.Values() {
		if v == value {
			n++
		}
	}
	return n
}
