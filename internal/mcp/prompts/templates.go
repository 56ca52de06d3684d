package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const planOutingPrompt = "plan_outing"

type PromptTemplates struct{}

func NewPromptTemplates() *PromptTemplates {
	return &PromptTemplates{}
}

func (p *PromptTemplates) PlanOutingPrompt() mcp.Prompt {
	return mcp.NewPrompt(
		planOutingPrompt,
		mcp.WithPromptDescription("Plan a San Francisco outing around Rec & Parks events matching the user's interests"),
		mcp.WithArgument("interests", mcp.ArgumentDescription("What the user enjoys (e.g. live music, hiking, kids activities)")),
		mcp.WithArgument("when", mcp.ArgumentDescription("When they want to go (e.g. today, this weekend, 2026-09-12)")),
		mcp.WithArgument("neighborhood", mcp.ArgumentDescription("Preferred neighborhood, if any")),
	)
}

func (p *PromptTemplates) PlanOutingHandler(_ context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := request.Params.Arguments
	interests := getArgString(args, "interests")
	when := getArgString(args, "when")
	neighborhood := getArgString(args, "neighborhood")
	if when == "" {
		when = "this weekend"
	}

	text := fmt.Sprintf("Use the search_sf_events tool to find San Francisco Recreation & Parks events and build a short outing plan.\n\nInterests: %s\nWhen: %s\nNeighborhood: %s\n\nPick the best matches, explain why each fits, and note anything worth booking ahead.", interests, when, neighborhood)

	return &mcp.GetPromptResult{
		Description: "Plan an outing from upcoming Rec & Parks events",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}

func getArgString(args map[string]string, key string) string {
	if args == nil {
		return ""
	}
	return args[key]
}
