package verification

import (
	"strings"

	"studymate/internal/vision"
)

// AcceptanceThreshold is the minimum extraction confidence for a verdict to
// be accepted.
const AcceptanceThreshold = 0.7

// Declared holds the profile fields the user typed in earlier, as far as the
// document can confirm them.
type Declared struct {
	FullName   string
	Identifier string // university id for students, employee id for teachers
}

// Outcome is the verdict of comparing extracted fields against declared ones.
// Two separate signals: ConfidenceScore reflects extraction completeness
// only, MismatchedFields reflects comparison correctness. IsValid requires
// both to pass.
type Outcome struct {
	IsValid          bool     `json:"is_valid"`
	ConfidenceScore  float64  `json:"confidence_score"`
	MismatchedFields []string `json:"mismatched_fields"`
}

// Reconcile compares the overlapping semantic fields (name, identifier)
// case-insensitively. A field mismatches only when the extracted value is
// present and differs from the declared one; absent extracted fields are not
// mismatches, they just depress the confidence score.
func Reconcile(ext vision.ExtractedFields, dec Declared) Outcome {
	if ext.Empty() {
		return Outcome{IsValid: false, ConfidenceScore: 0, MismatchedFields: []string{}}
	}

	mismatched := []string{}
	if ext.Name != "" && !fieldsEqual(ext.Name, dec.FullName) {
		mismatched = append(mismatched, "name")
	}
	if ext.StudentID != "" && !fieldsEqual(ext.StudentID, dec.Identifier) {
		mismatched = append(mismatched, "student_id")
	}

	return Outcome{
		IsValid:          ext.RawConfidence >= AcceptanceThreshold && len(mismatched) == 0,
		ConfidenceScore:  ext.RawConfidence,
		MismatchedFields: mismatched,
	}
}

func fieldsEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
