package verification

import (
	"context"
	"errors"
	"time"

	"studymate/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore is the Postgres-backed store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CollegeByName(ctx context.Context, name string) (*models.College, error) {
	var college models.College
	err := s.db.WithContext(ctx).Where("name ILIKE ?", name).First(&college).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &CollegeNotFoundError{Name: name}
	}
	if err != nil {
		return nil, err
	}
	return &college, nil
}

func (s *GormStore) CollegeNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&models.College{}).Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// UpsertCard runs the identifier lookup and the write inside one transaction
// so two concurrent attempts for the same identifier cannot both insert; the
// unique index on student_id backs this up at the schema level.
func (s *GormStore) UpsertCard(ctx context.Context, card *models.StudentIDCard) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.StudentIDCard
		err := tx.Where("student_id = ?", card.StudentID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			card.ID = uuid.NewString()
			now := time.Now().UTC()
			card.CreatedAt, card.UpdatedAt = now, now
			return tx.Create(card).Error
		case err != nil:
			return err
		}

		// One canonical card per identifier: a different owner takes the
		// row over, the same owner just refreshes the flags.
		existing.UserID = card.UserID
		existing.CollegeID = card.CollegeID
		existing.FullName = card.FullName
		existing.ImageURL = card.ImageURL
		existing.VerificationStatus = true
		existing.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*card = existing
		return nil
	})
}

func (s *GormStore) AppendLog(ctx context.Context, entry *models.IDVerificationLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}
