package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplatesRender(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	body, err := tm.Render(TemplateStudentWelcome, TemplateData{
		"CoachName":    "Coach Ann",
		"DeckName":     "Algebra",
		"Email":        "student@test.local",
		"TempPassword": "tmp-pass-123",
		"LoginURL":     "http://localhost:4000/login",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Coach Ann")
	assert.Contains(t, body, "tmp-pass-123")

	body, err = tm.Render(TemplateCoachDecision, TemplateData{
		"CoachName": "Coach Bob",
		"Decision":  "approved",
		"Approved":  true,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "approved")
	assert.Contains(t, body, "start creating decks")
}

func TestRender_UnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("no_such_template", TemplateData{})
	assert.Error(t, err)
}
