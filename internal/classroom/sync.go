package classroom

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"studymate/internal/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	classroom "google.golang.org/api/classroom/v1"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// Syncer pulls courses and coursework from Google Classroom into the
// assignments table and mirrors due-dated assignments onto the user's
// primary calendar.
type Syncer struct {
	db *gorm.DB
}

func NewSyncer(db *gorm.DB) *Syncer {
	return &Syncer{db: db}
}

type SyncResult struct {
	Courses  int `json:"courses"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Sync runs with the caller's OAuth access token; nothing is cached across
// calls. Already-imported assignments (same user, same assignment id) are
// skipped.
func (s *Syncer) Sync(ctx context.Context, userID, accessToken string) (*SyncResult, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	cls, err := classroom.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to init classroom client: %w", err)
	}
	cal, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to init calendar client: %w", err)
	}

	courses, err := cls.Courses.List().PageSize(10).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("course list failed: %w", err)
	}
	if len(courses.Courses) == 0 {
		return nil, errors.New("no courses found")
	}

	res := &SyncResult{Courses: len(courses.Courses)}
	for _, course := range courses.Courses {
		work, err := cls.Courses.CourseWork.List(course.Id).Context(ctx).Do()
		if err != nil {
			log.Println("classroom: coursework list failed for", course.Id, err)
			continue
		}
		for _, assignment := range work.CourseWork {
			imported, err := s.importAssignment(ctx, cal, userID, course, assignment)
			if err != nil {
				log.Println("classroom: import failed for", assignment.Id, err)
				continue
			}
			if imported {
				res.Imported++
			} else {
				res.Skipped++
			}
		}
	}
	return res, nil
}

func (s *Syncer) importAssignment(ctx context.Context, cal *calendar.Service, userID string, course *classroom.Course, assignment *classroom.CourseWork) (bool, error) {
	var existing models.ClassroomData
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND assignment_id = ?", userID, assignment.Id).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	due := dueTime(assignment.DueDate)
	row := models.ClassroomData{
		ID:              uuid.NewString(),
		UserID:          userID,
		CourseID:        course.Id,
		CourseName:      course.Name,
		AssignmentID:    assignment.Id,
		AssignmentTitle: assignment.Title,
		DueDate:         due,
		Description:     assignment.Description,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return false, err
	}

	if due != nil {
		event := &calendar.Event{
			Summary:     fmt.Sprintf("%s - %s", course.Name, assignment.Title),
			Description: assignment.Description,
			Start:       &calendar.EventDateTime{DateTime: due.Format(time.RFC3339), TimeZone: "UTC"},
			End:         &calendar.EventDateTime{DateTime: due.Format(time.RFC3339), TimeZone: "UTC"},
		}
		if _, err := cal.Events.Insert("primary", event).Context(ctx).Do(); err != nil {
			// The assignment row already exists; a calendar miss is not
			// worth failing the sync over.
			log.Println("classroom: calendar insert failed:", err)
		}
	}
	return true, nil
}

func dueTime(d *classroom.Date) *time.Time {
	if d == nil || d.Year == 0 {
		return nil
	}
	t := time.Date(int(d.Year), time.Month(d.Month), int(d.Day), 0, 0, 0, 0, time.UTC)
	return &t
}

// Upcoming returns the user's next assignments ordered by due date.
func (s *Syncer) Upcoming(ctx context.Context, userID string, limit int) ([]models.ClassroomData, error) {
	var rows []models.ClassroomData
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND due_date >= ?", userID, time.Now().UTC()).
		Order("due_date ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
