package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PlanSession is one study session as the model returns it.
type PlanSession struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Priority    string    `json:"priority"`
}

var priorities = map[string]bool{"low": true, "medium": true, "high": true}

// ParsePlanJSON tolerates the usual LLM decorations: surrounding prose and
// Markdown code fences are stripped before unmarshaling.
func ParsePlanJSON(raw string) ([]PlanSession, error) {
	s := stripCodeFences(raw)
	if candidate, ok := extractFirstJSON(s); ok {
		s = candidate
	}

	var sessions []PlanSession
	if err := json.Unmarshal([]byte(s), &sessions); err != nil {
		return nil, fmt.Errorf("failed to parse study plan JSON: %w", err)
	}
	if len(sessions) == 0 {
		return nil, errors.New("model returned an empty study plan")
	}
	for i := range sessions {
		if sessions[i].Title == "" {
			return nil, fmt.Errorf("study session %d has no title", i)
		}
		if !priorities[sessions[i].Priority] {
			sessions[i].Priority = "medium"
		}
	}
	return sessions, nil
}

// stripCodeFences removes surrounding Markdown code fences like ```json ... ```.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
		// remove a possible language tag at the start of the fence
		if i := strings.IndexByte(s, '\n'); i != -1 {
			first := strings.TrimSpace(s[:i])
			if len(first) > 0 && len(first) < 20 {
				s = s[i+1:]
			}
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// extractFirstJSON attempts to extract the first balanced JSON array or object.
func extractFirstJSON(s string) (string, bool) {
	if arr, ok := extractBalanced(s, '[', ']'); ok {
		return arr, true
	}
	if obj, ok := extractBalanced(s, '{', '}'); ok {
		return obj, true
	}
	return "", false
}

// extractBalanced finds the first balanced open..close span. Brackets inside
// JSON string values do not count toward the depth, so a title like
// "sections 1] and 2" survives extraction.
func extractBalanced(s string, open, close byte) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			// Quotes outside the candidate are surrounding prose.
			if depth > 0 {
				inString = true
			}
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
