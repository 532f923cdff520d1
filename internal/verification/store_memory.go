package verification

import (
	"context"
	"strings"
	"sync"
	"time"

	"studymate/internal/models"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in maps. Used by tests and as a reference for
// the upsert semantics the gorm store must match.
type MemoryStore struct {
	mu       sync.Mutex
	colleges map[string]*models.College       // id -> college
	cards    map[string]*models.StudentIDCard // student_id -> card
	logs     []*models.IDVerificationLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		colleges: make(map[string]*models.College),
		cards:    make(map[string]*models.StudentIDCard),
	}
}

func (s *MemoryStore) AddCollege(name string) *models.College {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &models.College{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
	s.colleges[c.ID] = c
	return c
}

func (s *MemoryStore) CollegeByName(_ context.Context, name string) (*models.College, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.colleges {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, &CollegeNotFoundError{Name: name}
}

func (s *MemoryStore) CollegeNames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.colleges))
	for _, c := range s.colleges {
		names = append(names, c.Name)
	}
	return names, nil
}

func (s *MemoryStore) UpsertCard(_ context.Context, card *models.StudentIDCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := s.cards[card.StudentID]; ok {
		existing.UserID = card.UserID
		existing.CollegeID = card.CollegeID
		existing.FullName = card.FullName
		existing.ImageURL = card.ImageURL
		existing.VerificationStatus = true
		existing.UpdatedAt = now
		*card = *existing
		return nil
	}
	card.ID = uuid.NewString()
	card.CreatedAt, card.UpdatedAt = now, now
	cp := *card
	s.cards[card.StudentID] = &cp
	return nil
}

func (s *MemoryStore) AppendLog(_ context.Context, entry *models.IDVerificationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	s.logs = append(s.logs, &cp)
	return nil
}

// Cards returns a snapshot of all stored cards.
func (s *MemoryStore) Cards() []models.StudentIDCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.StudentIDCard, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, *c)
	}
	return out
}

// Logs returns a snapshot of the audit log.
func (s *MemoryStore) Logs() []models.IDVerificationLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.IDVerificationLog, 0, len(s.logs))
	for _, l := range s.logs {
		out = append(out, *l)
	}
	return out
}
