package onboarding

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool { return r == RoleStudent || r == RoleTeacher }

// StudentProfile and TeacherProfile are the role-specific halves of a draft.
// Exactly one of them is set, discriminated by ProfileDraft.Role.
type StudentProfile struct {
	UniversityID string `json:"university_id"`
	Major        string `json:"major"`
	AcademicYear string `json:"academic_year"` // freshman | sophomore | junior | senior
}

type TeacherProfile struct {
	EmployeeID string   `json:"employee_id"`
	Department string   `json:"department"`
	Courses    []string `json:"courses"`
}

// ProfileDraft is the user-entered profile collected during onboarding. Once
// document capture begins it is fixed for the remainder of the session.
type ProfileDraft struct {
	Role     Role            `json:"role"`
	FullName string          `json:"full_name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Student  *StudentProfile `json:"student,omitempty"`
	Teacher  *TeacherProfile `json:"teacher,omitempty"`
}

// Identifier returns the role-specific unique value used as the uniqueness
// key for ID cards.
func (d *ProfileDraft) Identifier() string {
	switch d.Role {
	case RoleStudent:
		if d.Student != nil {
			return d.Student.UniversityID
		}
	case RoleTeacher:
		if d.Teacher != nil {
			return d.Teacher.EmployeeID
		}
	}
	return ""
}

var academicYears = map[string]bool{
	"freshman": true, "sophomore": true, "junior": true, "senior": true,
}

// Validate enforces the field-level checks gating the move from profile
// entry to document verification.
func (d *ProfileDraft) Validate() error {
	if !d.Role.Valid() {
		return fmt.Errorf("invalid role %q", d.Role)
	}
	if strings.TrimSpace(d.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	if !strings.Contains(d.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}

	switch d.Role {
	case RoleStudent:
		if d.Student == nil {
			return fmt.Errorf("student details are required")
		}
		if d.Teacher != nil {
			return fmt.Errorf("teacher details not allowed on a student draft")
		}
		if strings.TrimSpace(d.Student.UniversityID) == "" {
			return fmt.Errorf("university_id is required")
		}
		if d.Student.AcademicYear != "" && !academicYears[d.Student.AcademicYear] {
			return fmt.Errorf("invalid academic_year %q", d.Student.AcademicYear)
		}
	case RoleTeacher:
		if d.Teacher == nil {
			return fmt.Errorf("teacher details are required")
		}
		if d.Student != nil {
			return fmt.Errorf("student details not allowed on a teacher draft")
		}
		if strings.TrimSpace(d.Teacher.EmployeeID) == "" {
			return fmt.Errorf("employee_id is required")
		}
	}
	return nil
}
