// Package prompts implements MCP prompt handlers for the analysis techniques.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to run a technique's tools in the right order. Unlike
// tools (which the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// argOr returns the named prompt argument, or fallback when it is unset.
func argOr(req mcp.GetPromptRequest, name, fallback string) string {
	if args := req.Params.Arguments; args != nil {
		if v, ok := args[name]; ok && v != "" {
			return v
		}
	}
	return fallback
}

// WhyPrompt handles the why-analysis MCP prompt.
type WhyPrompt struct{}

// NewWhyPrompt creates a WhyPrompt.
func NewWhyPrompt() *WhyPrompt {
	return &WhyPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *WhyPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("why-analysis",
		mcp.WithPromptDescription(
			"Dig for the root cause of a problem with five rounds of 'why'. "+
				"The assistant asks one question per level and records each answer.",
		),
		mcp.WithArgument("problem",
			mcp.ArgumentDescription("The problem to analyse"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the why-analysis prompt request.
func (p *WhyPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	problem := argOr(req, "problem", "")
	if problem == "" {
		return nil, fmt.Errorf("argument 'problem' is required")
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Why analysis: %s", problem),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to find the root cause of this problem: %q\n\n"+
						"Please:\n"+
						"1. Run `why_analysis_start` with problem=%q\n"+
						"2. Ask me the returned question and wait for my answer\n"+
						"3. Record my answer with `why_analysis_add_answer` at the current level\n"+
						"4. Ask me the next question it returns, and repeat until level 4 is answered\n"+
						"5. Present the root-cause summary and suggest countermeasures for the root cause\n\n"+
						"Do not answer the questions for me, and never skip a level.",
					problem, problem,
				)),
			},
		},
	}, nil
}
