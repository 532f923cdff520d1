package channels

import (
	"context"
	"errors"
	"fmt"

	"studymate/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("channel not found")

// Service manages the college -> branch -> subject channel directory and
// subject membership.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Hierarchy is the full channel tree under one college.
type Hierarchy struct {
	College  models.College       `json:"college"`
	Branches []BranchWithSubjects `json:"branches"`
}

type BranchWithSubjects struct {
	Branch   models.Branch    `json:"branch"`
	Subjects []models.Subject `json:"subjects"`
}

func (s *Service) Hierarchy(ctx context.Context, collegeID string) (*Hierarchy, error) {
	var college models.College
	err := s.db.WithContext(ctx).First(&college, "id = ?", collegeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: college %s", ErrNotFound, collegeID)
	}
	if err != nil {
		return nil, err
	}

	var branches []models.Branch
	if err := s.db.WithContext(ctx).Where("college_id = ?", collegeID).Find(&branches).Error; err != nil {
		return nil, err
	}

	out := &Hierarchy{College: college, Branches: make([]BranchWithSubjects, 0, len(branches))}
	for _, branch := range branches {
		var subjects []models.Subject
		if err := s.db.WithContext(ctx).Where("branch_id = ?", branch.ID).Find(&subjects).Error; err != nil {
			return nil, err
		}
		out.Branches = append(out.Branches, BranchWithSubjects{Branch: branch, Subjects: subjects})
	}
	return out, nil
}

func (s *Service) CreateCollege(ctx context.Context, name string) (*models.College, error) {
	college := models.College{ID: uuid.NewString(), Name: name}
	if err := s.db.WithContext(ctx).Create(&college).Error; err != nil {
		return nil, err
	}
	return &college, nil
}

func (s *Service) CreateBranch(ctx context.Context, collegeID, name string) (*models.Branch, error) {
	branch := models.Branch{ID: uuid.NewString(), CollegeID: collegeID, Name: name}
	if err := s.db.WithContext(ctx).Create(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (s *Service) CreateSubject(ctx context.Context, branchID, name, classroomID string) (*models.Subject, error) {
	subject := models.Subject{ID: uuid.NewString(), BranchID: branchID, Name: name, GoogleClassroomID: classroomID}
	if err := s.db.WithContext(ctx).Create(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *Service) Join(ctx context.Context, userID, subjectID string) error {
	var subject models.Subject
	err := s.db.WithContext(ctx).First(&subject, "id = ?", subjectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: subject %s", ErrNotFound, subjectID)
	}
	if err != nil {
		return err
	}

	// Joining twice is a no-op, not an error.
	var existing models.ChannelMember
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	member := models.ChannelMember{ID: uuid.NewString(), UserID: userID, SubjectID: subjectID}
	return s.db.WithContext(ctx).Create(&member).Error
}

func (s *Service) Leave(ctx context.Context, userID, subjectID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Delete(&models.ChannelMember{}).Error
}
