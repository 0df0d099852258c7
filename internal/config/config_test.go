package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQuestionnaireIsValid(t *testing.T) {
	q := DefaultQuestionnaire()
	require.NoError(t, q.Validate())
	assert.Equal(t, 10, q.Total())

	first, err := q.ByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, "idea_description", first.ID)
	assert.Empty(t, first.Criteria, "the opening question is open-ended")
	assert.Equal(t, 0, first.MaxFollowUps)
}

func TestDefaultQuestionnaireMultiFieldQuestions(t *testing.T) {
	q := DefaultQuestionnaire()

	data, err := q.ByNumber(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"data_sources", "data_readiness"}, data.Fields)

	plan, err := q.ByNumber(9)
	require.NoError(t, err)
	assert.Equal(t, []string{"timeline", "budget"}, plan.Fields)
}

func TestLoadQuestionnaireMissingFileFallsBackToDefaults(t *testing.T) {
	q, err := LoadQuestionnaire(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultQuestionnaire().Total(), q.Total())
}

func TestLoadQuestionnaireBrokenFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadQuestionnaire(path)
	assert.Error(t, err, "a present but broken file must never be silently replaced")
}

func TestLoadQuestionnaireInvalidContentIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	// Valid JSON, invalid questionnaire: numbering starts at 2.
	body := `{"questions":[{"id":"q","number":2,"prompt":"?","fields":["f"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := LoadQuestionnaire(path)
	assert.ErrorIs(t, err, entity.ErrInvalidQuestionnaire)
}

func TestLoadQuestionnaireFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	body := `{"questions":[
		{"id":"only","number":1,"prompt":"The one question?","criteria":["something"],"max_follow_ups":1,"fields":["only"]}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	q, err := LoadQuestionnaire(path)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Total())

	spec, err := q.ByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, "The one question?", spec.Prompt)
	assert.Equal(t, 1, spec.MaxFollowUps)
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("prod"))
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("local"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
