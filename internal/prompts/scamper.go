package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ScamperPrompt handles the scamper-brainstorm MCP prompt.
type ScamperPrompt struct{}

// NewScamperPrompt creates a ScamperPrompt.
func NewScamperPrompt() *ScamperPrompt {
	return &ScamperPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ScamperPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("scamper-brainstorm",
		mcp.WithPromptDescription(
			"Brainstorm improvements with the seven SCAMPER techniques, then score and rank the ideas.",
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("Topic or challenge to brainstorm on"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("current_situation",
			mcp.ArgumentDescription("Current situation or problem details"),
		),
	)
}

// Handle processes the scamper-brainstorm prompt request.
func (p *ScamperPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := argOr(req, "topic", "")
	if topic == "" {
		return nil, fmt.Errorf("argument 'topic' is required")
	}
	situation := argOr(req, "current_situation", "(ask me)")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("SCAMPER brainstorm: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Let's brainstorm on %q. Current situation: %s\n\n"+
						"Please:\n"+
						"1. Run `scamper_start_session` (ask me for the current situation first if it is missing)\n"+
						"2. Go through Substitute, Combine, Adapt, Modify, Put to other use, Eliminate and Reverse in order\n"+
						"3. For each technique, use its guiding questions to propose 2-3 ideas and record them with `scamper_apply_technique`\n"+
						"4. Ask me to score the ideas for feasibility and impact (0-10), then run `scamper_evaluate_ideas`\n"+
						"5. Summarise the top ideas from the ranking",
					topic, situation,
				)),
			},
		},
	}, nil
}
