package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanOutingPromptDefinition(t *testing.T) {
	prompt := NewPromptTemplates().PlanOutingPrompt()

	assert.Equal(t, "plan_outing", prompt.Name)
	require.Len(t, prompt.Arguments, 3)
}

func TestPlanOutingHandler(t *testing.T) {
	templates := NewPromptTemplates()

	request := mcp.GetPromptRequest{}
	request.Params.Arguments = map[string]string{
		"interests":    "live music",
		"when":         "tomorrow",
		"neighborhood": "Mission",
	}

	result, err := templates.PlanOutingHandler(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	content, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, content.Text, "search_sf_events")
	assert.Contains(t, content.Text, "live music")
	assert.Contains(t, content.Text, "tomorrow")
	assert.Contains(t, content.Text, "Mission")
}

func TestPlanOutingHandlerDefaultsWhen(t *testing.T) {
	templates := NewPromptTemplates()

	result, err := templates.PlanOutingHandler(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)

	content, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, content.Text, "this weekend")
}
