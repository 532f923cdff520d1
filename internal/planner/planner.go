package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studymate/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

const generationTimeout = 30 * time.Second

// ErrNoAssignments is returned when there is nothing to plan around.
var ErrNoAssignments = errors.New("no upcoming assignments to plan for")

// TextGenerator is the LLM boundary; the Gemini client satisfies it and
// tests substitute canned output.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator asks Gemini for JSON-only responses.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to init Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: "gemini-2.0-flash-lite"}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.GenerationConfig = genai.GenerationConfig{ResponseMIMEType: "application/json"}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from Gemini")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		} else {
			sb.WriteString(fmt.Sprint(part))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", errors.New("no text in Gemini response")
	}
	return out, nil
}

func (g *GeminiGenerator) Close() error { return g.client.Close() }

// Planner generates and stores study plans around upcoming assignments.
type Planner struct {
	db         *gorm.DB
	gen        TextGenerator
	genTimeout time.Duration
}

func NewPlanner(db *gorm.DB, gen TextGenerator) *Planner {
	return &Planner{db: db, gen: gen, genTimeout: generationTimeout}
}

// Generate builds the prompt from the user's upcoming assignments, asks the
// model for a session list and persists it.
func (p *Planner) Generate(ctx context.Context, userID string) ([]models.StudyPlan, error) {
	var assignments []models.ClassroomData
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND due_date >= ?", userID, time.Now().UTC()).
		Order("due_date ASC").
		Limit(5).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, ErrNoAssignments
	}

	sessions, err := p.generatePlan(ctx, assignments)
	if err != nil {
		return nil, err
	}

	plans := make([]models.StudyPlan, 0, len(sessions))
	for _, s := range sessions {
		plans = append(plans, models.StudyPlan{
			ID:          uuid.NewString(),
			UserID:      userID,
			Title:       s.Title,
			Description: s.Description,
			StartDate:   s.StartDate,
			EndDate:     s.EndDate,
			Priority:    s.Priority,
			Status:      "pending",
		})
	}
	if err := p.db.WithContext(ctx).Create(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// generatePlan runs the model call under its own deadline, so a slow
// generation expires here instead of eating into the caller's budget for the
// persistence write.
func (p *Planner) generatePlan(ctx context.Context, assignments []models.ClassroomData) ([]PlanSession, error) {
	ctx, cancel := context.WithTimeout(ctx, p.genTimeout)
	defer cancel()

	raw, err := p.gen.Generate(ctx, buildPrompt(assignments))
	if err != nil {
		return nil, err
	}
	return ParsePlanJSON(raw)
}

// Current returns the user's not-yet-finished study sessions ordered by
// start date.
func (p *Planner) Current(ctx context.Context, userID string) ([]models.StudyPlan, error) {
	var plans []models.StudyPlan
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND end_date >= ?", userID, time.Now().UTC()).
		Order("start_date ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func buildPrompt(assignments []models.ClassroomData) string {
	var sb strings.Builder
	sb.WriteString("Create a personalized study plan for the following assignments:\n")
	for _, a := range assignments {
		due := "no due date"
		if a.DueDate != nil {
			due = a.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(&sb, "- %s (Due: %s)\n", a.AssignmentTitle, due)
	}
	sb.WriteString(`
Please create a study plan that:
1. Breaks down each assignment into manageable tasks
2. Allocates appropriate time for each task
3. Takes into account the due dates
4. Includes breaks and buffer time
5. Prioritizes tasks based on urgency and complexity

Your entire response must be ONLY a JSON array of study sessions, each with:
- title: string
- description: string
- start_date: ISO date string
- end_date: ISO date string
- priority: "low" | "medium" | "high"`)
	return sb.String()
}
