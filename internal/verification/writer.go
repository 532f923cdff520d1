package verification

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"studymate/internal/models"
	"studymate/internal/vision"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/google/uuid"
)

// hintThreshold: below this Jaro-Winkler similarity a near-miss college name
// is not worth suggesting.
const hintThreshold = 0.85

// Writer persists verification outcomes: the canonical ID card row and the
// append-only audit log.
type Writer struct {
	store Store
}

func NewWriter(store Store) *Writer {
	return &Writer{store: store}
}

// WriteResult reports what the writer persisted.
type WriteResult struct {
	Card  *models.StudentIDCard
	LogID string
}

// Record persists one verification attempt.
//
// Ordering is part of the contract: the college must resolve before any card
// write, and the audit entry is appended after the card write so it can link
// the card id. An invalid outcome writes the audit entry only; the card is
// never mutated on a failed verification.
func (w *Writer) Record(ctx context.Context, userID string, outcome Outcome, ext vision.ExtractedFields, imageRef string) (*WriteResult, error) {
	if !outcome.IsValid {
		entry, err := w.appendLog(ctx, userID, nil, outcome, ext)
		if err != nil {
			return nil, err
		}
		return &WriteResult{LogID: entry.ID}, nil
	}

	college, err := w.store.CollegeByName(ctx, ext.CollegeName)
	if err != nil {
		var miss *CollegeNotFoundError
		if errors.As(err, &miss) {
			return nil, w.withHint(ctx, miss)
		}
		return nil, err
	}

	card := &models.StudentIDCard{
		UserID:             userID,
		StudentID:          ext.StudentID,
		CollegeID:          college.ID,
		FullName:           ext.Name,
		ImageURL:           imageRef,
		VerificationStatus: true,
	}
	if err := w.store.UpsertCard(ctx, card); err != nil {
		return nil, err
	}

	entry, err := w.appendLog(ctx, userID, &card.ID, outcome, ext)
	if err != nil {
		return nil, err
	}
	return &WriteResult{Card: card, LogID: entry.ID}, nil
}

func (w *Writer) appendLog(ctx context.Context, userID string, cardID *string, outcome Outcome, ext vision.ExtractedFields) (*models.IDVerificationLog, error) {
	snapshot, _ := json.Marshal(ext)
	entry := &models.IDVerificationLog{
		ID:                 uuid.NewString(),
		UserID:             userID,
		StudentIDCardID:    cardID,
		VerificationStatus: outcome.IsValid,
		ConfidenceScore:    outcome.ConfidenceScore,
		ExtractedData:      string(snapshot),
		CreatedAt:          time.Now().UTC(),
	}
	if err := w.store.AppendLog(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// withHint decorates a college miss with the nearest known name, when there
// is one close enough to be a plausible OCR slip.
func (w *Writer) withHint(ctx context.Context, miss *CollegeNotFoundError) error {
	names, err := w.store.CollegeNames(ctx)
	if err != nil || len(names) == 0 {
		return miss
	}
	metric := metrics.NewJaroWinkler()
	best, bestSim := "", 0.0
	for _, n := range names {
		sim := strutil.Similarity(strings.ToLower(miss.Name), strings.ToLower(n), metric)
		if sim > bestSim {
			best, bestSim = n, sim
		}
	}
	if bestSim >= hintThreshold {
		miss.ClosestMatch = best
	}
	return miss
}
