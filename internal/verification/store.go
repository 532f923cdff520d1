package verification

import (
	"context"
	"errors"
	"fmt"

	"studymate/internal/models"
)

// ErrCollegeNotFound is returned when the extracted institution name matches
// no colleges row.
var ErrCollegeNotFound = errors.New("college not found in database")

// CollegeNotFoundError wraps ErrCollegeNotFound with the name that missed
// and, when one is close enough, the nearest known college name.
type CollegeNotFoundError struct {
	Name         string
	ClosestMatch string
}

func (e *CollegeNotFoundError) Error() string {
	if e.ClosestMatch != "" {
		return fmt.Sprintf("college %q not found (did you mean %q?)", e.Name, e.ClosestMatch)
	}
	return fmt.Sprintf("college %q not found", e.Name)
}

func (e *CollegeNotFoundError) Unwrap() error { return ErrCollegeNotFound }

// Store is the persistence boundary of the record writer. The gorm
// implementation backs production; a memory implementation backs tests.
type Store interface {
	// CollegeByName resolves a college by case-insensitive exact name and
	// returns ErrCollegeNotFound on a miss.
	CollegeByName(ctx context.Context, name string) (*models.College, error)

	// CollegeNames lists every known college name, for nearest-match hints.
	CollegeNames(ctx context.Context) ([]string, error)

	// UpsertCard inserts or reassigns the canonical card for
	// card.StudentID. The lookup and the write are atomic: at most one row
	// per identifier survives concurrent attempts. The stored row is
	// written back into card.
	UpsertCard(ctx context.Context, card *models.StudentIDCard) error

	// AppendLog records one verification attempt. Logs are append-only.
	AppendLog(ctx context.Context, entry *models.IDVerificationLog) error
}
