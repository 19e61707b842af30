// Package redact builds reversible substitution mappings between
// student-identifying values and placeholder tokens, applies them to free
// text and nested payloads before egress to the generation service, and
// reverses them on ingress. It also provides an independent residue scan
// over masked output as a defense-in-depth gate.
//
// The engine only ever knows about values it was explicitly given; it does
// no natural-language PII detection.
package redact

// Token is a placeholder standing in for one category of identifying data.
// The vocabulary is closed: prompt templates, the generation service, and
// renderers all treat these literal strings as a stable contract. Adding a
// category means adding a token here and teaching BuildMapping to populate it.
type Token string

const (
	TokenStudentName      Token = "[STUDENT_NAME]"
	TokenStudentFirstName Token = "[STUDENT_FIRST_NAME]"
	TokenDateOfBirth      Token = "[DOB]"
	TokenStudentID        Token = "[STUDENT_ID]"
	TokenSchool           Token = "[SCHOOL]"
	TokenGrade            Token = "[GRADE]"
	TokenGuardianName     Token = "[GUARDIAN_NAME]"
	TokenAddress          Token = "[ADDRESS]"
)

// Pronoun tokens are part of the vocabulary but are never populated from a
// student record: the generation side emits them directly and Unmask leaves
// them in place for the rendering layer to resolve.
const (
	TokenPronounSubject    Token = "[PRONOUN_SUBJECT]"
	TokenPronounObject     Token = "[PRONOUN_OBJECT]"
	TokenPronounPossessive Token = "[PRONOUN_POSSESSIVE]"
)

// Tokens returns the full closed vocabulary, data tokens first.
func Tokens() []Token {
	return []Token{
		TokenStudentName,
		TokenStudentFirstName,
		TokenDateOfBirth,
		TokenStudentID,
		TokenSchool,
		TokenGrade,
		TokenGuardianName,
		TokenAddress,
		TokenPronounSubject,
		TokenPronounObject,
		TokenPronounPossessive,
	}
}
