package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"studymate/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sender is what the bridge needs from the messaging client; tests plug in
// a recorder.
type Sender interface {
	SendText(ctx context.Context, to, body string) error
}

// Bridge connects the study assistant to the messaging platform: outbound
// reminders, the webhook handshake, and inbound message logging.
type Bridge struct {
	db          *gorm.DB
	sender      Sender
	verifyToken string
}

func NewBridge(db *gorm.DB, sender Sender, verifyToken string) *Bridge {
	return &Bridge{db: db, sender: sender, verifyToken: verifyToken}
}

// VerifyHandshake implements the platform's subscription handshake: echo the
// challenge only when the mode and token match.
func (b *Bridge) VerifyHandshake(mode, token, challenge string) (string, bool) {
	if mode == "subscribe" && b.verifyToken != "" && token == b.verifyToken {
		return challenge, true
	}
	return "", false
}

// InboundPayload mirrors the webhook body shape the platform posts.
type InboundPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

const cannedReply = "I'm your AI study assistant. I can help you with:\n\n" +
	"1. Study plan queries\n2. Assignment reminders\n3. Subject-specific questions\n4. Time management advice\n\n" +
	"What would you like to know?"

// HandleInbound logs the incoming message, replies, and records the reply.
func (b *Bridge) HandleInbound(ctx context.Context, payload InboundPayload) error {
	if len(payload.Entry) == 0 || len(payload.Entry[0].Changes) == 0 ||
		len(payload.Entry[0].Changes[0].Value.Messages) == 0 {
		return errors.New("no message found in webhook payload")
	}
	msg := payload.Entry[0].Changes[0].Value.Messages[0]

	row := models.ChatHistory{
		ID:       uuid.NewString(),
		UserID:   msg.From, // phone number stands in for the user id here
		Message:  msg.Text.Body,
		Response: cannedReply,
		Context:  `{"type":"whatsapp"}`,
	}
	if err := b.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	if err := b.sender.SendText(ctx, msg.From, cannedReply); err != nil {
		log.Println("whatsapp: reply failed:", err)
	}
	return nil
}

// SendAssignmentReminder messages the user's next upcoming assignment.
func (b *Bridge) SendAssignmentReminder(ctx context.Context, userID, phone string) error {
	var assignment models.ClassroomData
	err := b.db.WithContext(ctx).
		Where("user_id = ? AND due_date >= ?", userID, time.Now().UTC()).
		Order("due_date ASC").
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New("no upcoming assignments found")
	}
	if err != nil {
		return err
	}

	desc := assignment.Description
	if desc == "" {
		desc = "No description provided"
	}
	message := fmt.Sprintf("📝 Assignment Reminder!\n\n%s\nDue: %s\n\nDescription: %s",
		assignment.AssignmentTitle, assignment.DueDate.Format(time.RFC1123), desc)

	return b.notify(ctx, userID, "assignment", phone, message)
}

// SendStudyPlanReminder messages the user's next study session.
func (b *Bridge) SendStudyPlanReminder(ctx context.Context, userID, phone string) error {
	var session models.StudyPlan
	err := b.db.WithContext(ctx).
		Where("user_id = ? AND end_date >= ?", userID, time.Now().UTC()).
		Order("start_date ASC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New("no study plan found")
	}
	if err != nil {
		return err
	}

	message := fmt.Sprintf("📚 Study Reminder!\n\nNext session:\n%s\n\nStart: %s\nEnd: %s\n\nDescription: %s",
		session.Title, session.StartDate.Format(time.RFC1123), session.EndDate.Format(time.RFC1123), session.Description)

	return b.notify(ctx, userID, "study_plan", phone, message)
}

func (b *Bridge) notify(ctx context.Context, userID, kind, phone, message string) error {
	sendErr := b.sender.SendText(ctx, phone, message)

	status := "sent"
	var sentAt *time.Time
	if sendErr != nil {
		status = "failed"
	} else {
		now := time.Now().UTC()
		sentAt = &now
	}
	row := models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Type:    kind,
		Message: message,
		Status:  status,
		SentAt:  sentAt,
	}
	if err := b.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	return sendErr
}
