package redact

import "strings"

// leakMinLen excludes short mapped values from the residue scan. Initials
// and single-character grade labels ("K") flag far too many false positives
// to be useful, even though they stay in the mapping for masking itself.
const leakMinLen = 2

// LeakReport is the result of a residual-value scan over masked text.
type LeakReport struct {
	Clean     bool     `json:"clean"`
	Offending []string `json:"offending_values,omitempty"`
}

// ValidateNoLeak reports whether any mapped value longer than leakMinLen
// characters survives in text, case-insensitively, and lists every offender.
// It never modifies the text and never blocks anything by itself: in the
// expected flow Mask has already run, so a hit means either a mapping gap or
// a leak source outside the mapped fields (operator-authored text,
// generation-service artifacts). What to do about it is the caller's policy.
func ValidateNoLeak(text string, m *Mapping) LeakReport {
	report := LeakReport{Clean: true}
	if text == "" || m.Len() == 0 {
		return report
	}
	lower := strings.ToLower(text)
	for _, e := range m.entries {
		if len(e.value) <= leakMinLen {
			continue
		}
		if strings.Contains(lower, strings.ToLower(e.value)) {
			report.Offending = append(report.Offending, e.value)
		}
	}
	report.Clean = len(report.Offending) == 0
	return report
}
