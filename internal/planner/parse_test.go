package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planJSON = `[
  {"title":"Read chapter 3","description":"Notes + exercises","start_date":"2026-09-01T09:00:00Z","end_date":"2026-09-01T11:00:00Z","priority":"high"},
  {"title":"Draft essay","description":"Outline first","start_date":"2026-09-02T14:00:00Z","end_date":"2026-09-02T16:00:00Z","priority":"medium"}
]`

func TestParsePlanJSON(t *testing.T) {
	sessions, err := ParsePlanJSON(planJSON)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Read chapter 3", sessions[0].Title)
	assert.Equal(t, "high", sessions[0].Priority)
}

func TestParsePlanJSONStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + planJSON + "\n```"
	sessions, err := ParsePlanJSON(fenced)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestParsePlanJSONExtractsFromProse(t *testing.T) {
	wrapped := "Here is your plan:\n" + planJSON + "\nGood luck!"
	sessions, err := ParsePlanJSON(wrapped)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestParsePlanJSONDefaultsUnknownPriority(t *testing.T) {
	raw := `[{"title":"T","description":"","start_date":"2026-09-01T09:00:00Z","end_date":"2026-09-01T10:00:00Z","priority":"urgent"}]`
	sessions, err := ParsePlanJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "medium", sessions[0].Priority)
}

func TestParsePlanJSONBracketsInsideStrings(t *testing.T) {
	raw := `Here you go: [{"title":"Review sections 1] and 2","description":"incl. \"quoted\" terms","start_date":"2026-09-01T09:00:00Z","end_date":"2026-09-01T10:00:00Z","priority":"low"}] done`
	sessions, err := ParsePlanJSON(raw)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Review sections 1] and 2", sessions[0].Title)
}

func TestParsePlanJSONRejectsGarbage(t *testing.T) {
	_, err := ParsePlanJSON("the model refused")
	assert.Error(t, err)

	_, err = ParsePlanJSON("[]")
	assert.Error(t, err)

	_, err = ParsePlanJSON(`[{"description":"no title"}]`)
	assert.Error(t, err)
}
