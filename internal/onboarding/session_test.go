package onboarding

import (
	"context"
	"testing"

	"studymate/internal/verification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentDraft() ProfileDraft {
	return ProfileDraft{
		Role:     RoleStudent,
		FullName: "Jane Doe",
		Email:    "jane@example.edu",
		Phone:    "+15550001111",
		Student: &StudentProfile{
			UniversityID: "10293847",
			Major:        "Physics",
			AcademicYear: "junior",
		},
	}
}

func TestSessionHappyPath(t *testing.T) {
	s := NewSession("user-a")
	assert.Equal(t, StepRoleSelection, s.Step)

	require.NoError(t, s.SelectRole(RoleStudent))
	assert.Equal(t, StepProfileEntry, s.Step)

	require.NoError(t, s.SubmitProfile(studentDraft()))
	assert.Equal(t, StepDocumentVerification, s.Step)

	outcome := verification.Outcome{IsValid: true, ConfidenceScore: 1.0, MismatchedFields: []string{}}
	require.NoError(t, s.CompleteVerification(outcome))
	assert.Equal(t, StepConfirmation, s.Step)

	require.NoError(t, s.Confirm())
}

func TestSessionTransitionsAreForwardOnly(t *testing.T) {
	s := NewSession("user-a")

	// Out-of-order inputs are rejected in every earlier state.
	assert.ErrorIs(t, s.SubmitProfile(studentDraft()), ErrInvalidTransition)
	assert.ErrorIs(t, s.CompleteVerification(verification.Outcome{}), ErrInvalidTransition)
	assert.ErrorIs(t, s.Confirm(), ErrInvalidTransition)

	require.NoError(t, s.SelectRole(RoleStudent))
	assert.ErrorIs(t, s.SelectRole(RoleTeacher), ErrInvalidTransition, "no going back to role selection")

	require.NoError(t, s.SubmitProfile(studentDraft()))
	assert.ErrorIs(t, s.SubmitProfile(studentDraft()), ErrInvalidTransition, "draft is frozen once capture begins")
}

func TestSessionRejectsInvalidRole(t *testing.T) {
	s := NewSession("user-a")
	assert.ErrorIs(t, s.SelectRole("admin"), ErrDraftInvalid)
	assert.Equal(t, StepRoleSelection, s.Step)
}

func TestSessionDraftMustMatchSelectedRole(t *testing.T) {
	s := NewSession("user-a")
	require.NoError(t, s.SelectRole(RoleTeacher))

	err := s.SubmitProfile(studentDraft())
	assert.ErrorIs(t, err, ErrDraftInvalid)
	assert.Equal(t, StepProfileEntry, s.Step)
}

func TestDraftValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProfileDraft)
	}{
		{"missing name", func(d *ProfileDraft) { d.FullName = "  " }},
		{"bad email", func(d *ProfileDraft) { d.Email = "not-an-email" }},
		{"missing student details", func(d *ProfileDraft) { d.Student = nil }},
		{"missing university id", func(d *ProfileDraft) { d.Student.UniversityID = "" }},
		{"bad academic year", func(d *ProfileDraft) { d.Student.AcademicYear = "fifth" }},
		{"both halves set", func(d *ProfileDraft) { d.Teacher = &TeacherProfile{EmployeeID: "e1"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := studentDraft()
			tt.mutate(&d)
			assert.Error(t, d.Validate())
		})
	}

	teacher := ProfileDraft{
		Role:     RoleTeacher,
		FullName: "Dr. Smith",
		Email:    "smith@example.edu",
		Teacher:  &TeacherProfile{EmployeeID: "EMP-9", Department: "Math", Courses: []string{"Calc I"}},
	}
	assert.NoError(t, teacher.Validate())
	assert.Equal(t, "EMP-9", teacher.Identifier())
	student := studentDraft()
	assert.Equal(t, "10293847", student.Identifier())
}

func TestSessionRetryReplacesOutcome(t *testing.T) {
	s := NewSession("user-a")
	require.NoError(t, s.SelectRole(RoleStudent))
	require.NoError(t, s.SubmitProfile(studentDraft()))

	// Still in the verification step after a failed capture: nothing was
	// completed, so retrying is just another attempt.
	assert.Equal(t, StepDocumentVerification, s.Step)

	outcome := verification.Outcome{IsValid: false, ConfidenceScore: 1.0, MismatchedFields: []string{"name"}}
	require.NoError(t, s.CompleteVerification(outcome))
	assert.Equal(t, StepConfirmation, s.Step)
	require.NotNil(t, s.Outcome)
	assert.False(t, s.Outcome.IsValid)

	// Confirmation is reachable even with a failed verdict; the caller
	// decides what to do with it.
	assert.NoError(t, s.Confirm())
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	s := NewSession("user-a")
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.UserID, got.UserID)

	// Stored copy is isolated from later mutation.
	require.NoError(t, s.SelectRole(RoleStudent))
	got, err = store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepRoleSelection, got.Step)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
