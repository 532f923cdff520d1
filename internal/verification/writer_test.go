package verification

import (
	"context"
	"encoding/json"
	"testing"

	"studymate/internal/vision"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() vision.ExtractedFields {
	return vision.ExtractedFields{
		Name:          "Jane Doe",
		StudentID:     "10293847",
		CollegeName:   "Example University",
		RawConfidence: 1.0,
	}
}

func validOutcome() Outcome {
	return Outcome{IsValid: true, ConfidenceScore: 1.0, MismatchedFields: []string{}}
}

func TestWriterCreatesCardAndLog(t *testing.T) {
	store := NewMemoryStore()
	college := store.AddCollege("Example University")
	w := NewWriter(store)

	res, err := w.Record(context.Background(), "user-a", validOutcome(), validFields(), "img-ref")
	require.NoError(t, err)
	require.NotNil(t, res.Card)

	cards := store.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "user-a", cards[0].UserID)
	assert.Equal(t, "10293847", cards[0].StudentID)
	assert.Equal(t, college.ID, cards[0].CollegeID)
	assert.True(t, cards[0].VerificationStatus)

	logs := store.Logs()
	require.Len(t, logs, 1)
	assert.True(t, logs[0].VerificationStatus)
	assert.Equal(t, 1.0, logs[0].ConfidenceScore)
	require.NotNil(t, logs[0].StudentIDCardID)
	assert.Equal(t, cards[0].ID, *logs[0].StudentIDCardID)

	var snapshot vision.ExtractedFields
	require.NoError(t, json.Unmarshal([]byte(logs[0].ExtractedData), &snapshot))
	assert.Equal(t, "Jane Doe", snapshot.Name)
}

func TestWriterIdempotentForSameOwner(t *testing.T) {
	store := NewMemoryStore()
	store.AddCollege("Example University")
	w := NewWriter(store)

	_, err := w.Record(context.Background(), "user-a", validOutcome(), validFields(), "img")
	require.NoError(t, err)
	_, err = w.Record(context.Background(), "user-a", validOutcome(), validFields(), "img")
	require.NoError(t, err)

	// One canonical card, append-only log growth.
	assert.Len(t, store.Cards(), 1)
	assert.Len(t, store.Logs(), 2)
}

func TestWriterReassignsOwnership(t *testing.T) {
	store := NewMemoryStore()
	store.AddCollege("Example University")
	w := NewWriter(store)

	resA, err := w.Record(context.Background(), "user-a", validOutcome(), validFields(), "img")
	require.NoError(t, err)

	resB, err := w.Record(context.Background(), "user-b", validOutcome(), validFields(), "img")
	require.NoError(t, err)

	cards := store.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "user-b", cards[0].UserID)
	assert.Equal(t, resA.Card.ID, resB.Card.ID, "reassignment must reuse the canonical row")
}

func TestWriterInvalidOutcomeWritesLogOnly(t *testing.T) {
	store := NewMemoryStore()
	store.AddCollege("Example University")
	w := NewWriter(store)

	outcome := Outcome{IsValid: false, ConfidenceScore: 1.0, MismatchedFields: []string{"name"}}
	res, err := w.Record(context.Background(), "user-a", outcome, validFields(), "img")
	require.NoError(t, err)
	assert.Nil(t, res.Card)

	assert.Empty(t, store.Cards(), "failed verification must not mutate cards")
	logs := store.Logs()
	require.Len(t, logs, 1)
	assert.False(t, logs[0].VerificationStatus)
	assert.Nil(t, logs[0].StudentIDCardID)
}

func TestWriterCollegeNotFound(t *testing.T) {
	store := NewMemoryStore()
	store.AddCollege("Example University")
	w := NewWriter(store)

	fields := validFields()
	fields.CollegeName = "Exampel University" // OCR slip

	_, err := w.Record(context.Background(), "user-a", validOutcome(), fields, "img")
	require.Error(t, err)

	var miss *CollegeNotFoundError
	require.ErrorAs(t, err, &miss)
	assert.ErrorIs(t, err, ErrCollegeNotFound)
	assert.Equal(t, "Example University", miss.ClosestMatch)

	// The miss short-circuits before any write.
	assert.Empty(t, store.Cards())
	assert.Empty(t, store.Logs())
}

func TestWriterCollegeLookupIsCaseInsensitive(t *testing.T) {
	store := NewMemoryStore()
	store.AddCollege("Example University")
	w := NewWriter(store)

	fields := validFields()
	fields.CollegeName = "EXAMPLE UNIVERSITY"

	_, err := w.Record(context.Background(), "user-a", validOutcome(), fields, "img")
	require.NoError(t, err)
	assert.Len(t, store.Cards(), 1)
}
