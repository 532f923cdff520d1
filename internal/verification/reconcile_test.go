package verification

import (
	"testing"

	"studymate/internal/vision"

	"github.com/stretchr/testify/assert"
)

func TestReconcileMatching(t *testing.T) {
	ext := vision.ExtractedFields{
		Name:          "Jane Doe",
		StudentID:     "10293847",
		CollegeName:   "Example University",
		RawConfidence: 1.0,
	}
	dec := Declared{FullName: "Jane Doe", Identifier: "10293847"}

	out := Reconcile(ext, dec)
	assert.True(t, out.IsValid)
	assert.Equal(t, 1.0, out.ConfidenceScore)
	assert.Empty(t, out.MismatchedFields)
}

func TestReconcileIsCaseInsensitive(t *testing.T) {
	ext := vision.ExtractedFields{Name: "  JANE doe ", StudentID: "abc-123", RawConfidence: 1.0}
	dec := Declared{FullName: "Jane Doe", Identifier: "ABC-123"}

	out := Reconcile(ext, dec)
	assert.Empty(t, out.MismatchedFields)
}

func TestReconcileNameMismatch(t *testing.T) {
	ext := vision.ExtractedFields{
		Name:          "Jane Doe",
		StudentID:     "10293847",
		CollegeName:   "Example University",
		RawConfidence: 1.0,
	}
	dec := Declared{FullName: "John Smith", Identifier: "10293847"}

	out := Reconcile(ext, dec)
	assert.False(t, out.IsValid)
	// Confidence stays an extraction signal: perfect extraction of wrong
	// values still scores 1.0 and is rejected via the mismatch list.
	assert.Equal(t, 1.0, out.ConfidenceScore)
	assert.Equal(t, []string{"name"}, out.MismatchedFields)
}

func TestReconcileIdentifierMismatch(t *testing.T) {
	ext := vision.ExtractedFields{Name: "Jane Doe", StudentID: "000", RawConfidence: 1.0}
	dec := Declared{FullName: "Jane Doe", Identifier: "10293847"}

	out := Reconcile(ext, dec)
	assert.False(t, out.IsValid)
	assert.Equal(t, []string{"student_id"}, out.MismatchedFields)
}

func TestReconcileAbsentFieldIsNotAMismatch(t *testing.T) {
	// Name not extracted: depresses confidence, does not mismatch.
	ext := vision.ExtractedFields{StudentID: "10293847", CollegeName: "Example University", RawConfidence: 2.0 / 3}
	dec := Declared{FullName: "Jane Doe", Identifier: "10293847"}

	out := Reconcile(ext, dec)
	assert.Empty(t, out.MismatchedFields)
	// 2/3 < 0.7, so the verdict still fails on the threshold.
	assert.False(t, out.IsValid)
}

func TestReconcileEmptyExtractionShortCircuits(t *testing.T) {
	decs := []Declared{
		{},
		{FullName: "Jane Doe", Identifier: "10293847"},
	}
	for _, dec := range decs {
		out := Reconcile(vision.ExtractedFields{}, dec)
		assert.False(t, out.IsValid)
		assert.Zero(t, out.ConfidenceScore)
		assert.Empty(t, out.MismatchedFields)
	}
}
