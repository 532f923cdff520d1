package onboarding

import (
	"errors"
	"fmt"
	"time"

	"studymate/internal/verification"

	"github.com/google/uuid"
)

// Step is one state of the onboarding flow. Transitions only move forward.
type Step int

const (
	StepRoleSelection Step = iota + 1
	StepProfileEntry
	StepDocumentVerification
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepRoleSelection:
		return "role_selection"
	case StepProfileEntry:
		return "profile_entry"
	case StepDocumentVerification:
		return "document_verification"
	case StepConfirmation:
		return "confirmation"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var (
	ErrInvalidTransition = errors.New("step not allowed in current onboarding state")
	ErrDraftInvalid      = errors.New("profile draft failed validation")
)

// Session is one user's in-flight onboarding. Everything here is discarded
// if the session is abandoned; only the confirm step touches the users table.
type Session struct {
	ID        string                `json:"id"`
	UserID    string                `json:"user_id"`
	Step      Step                  `json:"step"`
	Role      Role                  `json:"role,omitempty"`
	Draft     *ProfileDraft         `json:"draft,omitempty"`
	Outcome   *verification.Outcome `json:"outcome,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

func NewSession(userID string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Step:      StepRoleSelection,
		CreatedAt: time.Now().UTC(),
	}
}

// SelectRole moves role_selection -> profile_entry. No other input is
// accepted in the role-selection state.
func (s *Session) SelectRole(role Role) error {
	if s.Step != StepRoleSelection {
		return fmt.Errorf("%w: select role during %s", ErrInvalidTransition, s.Step)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrDraftInvalid, role)
	}
	s.Role = role
	s.Step = StepProfileEntry
	return nil
}

// SubmitProfile moves profile_entry -> document_verification. The draft must
// validate and match the selected role; afterwards it is immutable.
func (s *Session) SubmitProfile(draft ProfileDraft) error {
	if s.Step != StepProfileEntry {
		return fmt.Errorf("%w: submit profile during %s", ErrInvalidTransition, s.Step)
	}
	if draft.Role != s.Role {
		return fmt.Errorf("%w: draft role %q does not match selected role %q", ErrDraftInvalid, draft.Role, s.Role)
	}
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrDraftInvalid, err)
	}
	s.Draft = &draft
	s.Step = StepDocumentVerification
	return nil
}

// CompleteVerification moves document_verification -> confirmation. Failed
// capture attempts simply stay in the verification step and may retry; each
// retry's extracted fields replace the previous attempt's.
func (s *Session) CompleteVerification(outcome verification.Outcome) error {
	if s.Step != StepDocumentVerification {
		return fmt.Errorf("%w: verify document during %s", ErrInvalidTransition, s.Step)
	}
	s.Outcome = &outcome
	s.Step = StepConfirmation
	return nil
}

// Confirm is only legal in the terminal confirmation step; the caller then
// applies the draft to the durable profile and deletes the session.
func (s *Session) Confirm() error {
	if s.Step != StepConfirmation || s.Outcome == nil {
		return fmt.Errorf("%w: confirm during %s", ErrInvalidTransition, s.Step)
	}
	return nil
}

// Declared projects the draft's overlapping semantic fields for
// reconciliation against extracted document fields.
func (s *Session) Declared() verification.Declared {
	if s.Draft == nil {
		return verification.Declared{}
	}
	return verification.Declared{
		FullName:   s.Draft.FullName,
		Identifier: s.Draft.Identifier(),
	}
}
