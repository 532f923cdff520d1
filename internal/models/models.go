package models

import "time"

// User is an account holder. Role-specific columns are populated from the
// onboarding draft once the user confirms; until then Role is empty.
type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Role         string `gorm:"size:16" json:"role"` // "student" | "teacher"

	// Student columns
	UniversityID string `json:"university_id,omitempty"`
	Major        string `json:"major,omitempty"`
	AcademicYear string `json:"academic_year,omitempty"`

	// Teacher columns
	EmployeeID string `json:"employee_id,omitempty"`
	Department string `json:"department,omitempty"`
	Courses    string `json:"courses,omitempty"` // comma separated

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type College struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Branch struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CollegeID string    `gorm:"index;size:36" json:"college_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Subject struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	BranchID          string    `gorm:"index;size:36" json:"branch_id"`
	Name              string    `json:"name"`
	GoogleClassroomID string    `json:"google_classroom_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ChannelMember struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index:idx_member,unique;size:36" json:"user_id"`
	SubjectID string    `gorm:"index:idx_member,unique;size:36" json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentIDCard is the canonical verified card for one identifier value.
// StudentID is unique across the table; re-verification by a different user
// reassigns the existing row instead of inserting a second one.
type StudentIDCard struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	UserID             string    `gorm:"index;size:36" json:"user_id"`
	StudentID          string    `gorm:"uniqueIndex;size:64" json:"student_id"`
	CollegeID          string    `gorm:"size:36" json:"college_id"`
	FullName           string    `json:"full_name"`
	ImageURL           string    `json:"image_url"`
	VerificationStatus bool      `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IDVerificationLog is append-only: one row per verification attempt, never
// updated or deleted.
type IDVerificationLog struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	UserID             string    `gorm:"index;size:36" json:"user_id"`
	StudentIDCardID    *string   `gorm:"size:36" json:"student_id_card_id"`
	VerificationStatus bool      `json:"verification_status"`
	ConfidenceScore    float64   `json:"confidence_score"`
	ExtractedData      string    `gorm:"type:text" json:"extracted_data"` // JSON snapshot
	CreatedAt          time.Time `json:"created_at"`
}

type ClassroomData struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	UserID          string     `gorm:"index:idx_assignment,unique;size:36" json:"user_id"`
	CourseID        string     `json:"course_id"`
	CourseName      string     `json:"course_name"`
	AssignmentID    string     `gorm:"index:idx_assignment,unique;size:64" json:"assignment_id"`
	AssignmentTitle string     `json:"assignment_title"`
	DueDate         *time.Time `gorm:"index" json:"due_date"`
	Description     string     `json:"description"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type StudyPlan struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"index;size:36" json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `gorm:"index" json:"end_date"`
	Priority    string    `gorm:"size:16" json:"priority"` // low | medium | high
	Status      string    `gorm:"size:16" json:"status"`   // pending | in_progress | completed
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChatHistory struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:64" json:"user_id"` // phone number for whatsapp senders
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Context   string    `gorm:"type:text" json:"context"`
	CreatedAt time.Time `json:"created_at"`
}

type Notification struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string     `gorm:"index;size:36" json:"user_id"`
	Type      string     `gorm:"size:16" json:"type"` // reminder | study_plan | assignment | general
	Message   string     `json:"message"`
	Status    string     `gorm:"size:16" json:"status"` // pending | sent | failed
	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
}
