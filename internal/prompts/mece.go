package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// MECEPrompt handles the mece-check MCP prompt.
type MECEPrompt struct{}

// NewMECEPrompt creates a MECEPrompt.
func NewMECEPrompt() *MECEPrompt {
	return &MECEPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *MECEPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("mece-check",
		mcp.WithPromptDescription(
			"Check a categorisation for overlaps and gaps, or propose one from a standard framework.",
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("What is being categorised"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("categories",
			mcp.ArgumentDescription("Comma-separated categories to check. Leave empty to get a proposed structure."),
		),
	)
}

// Handle processes the mece-check prompt request.
func (p *MECEPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := argOr(req, "topic", "")
	if topic == "" {
		return nil, fmt.Errorf("argument 'topic' is required")
	}

	var categories []string
	for _, c := range strings.Split(argOr(req, "categories", ""), ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}

	var text string
	if len(categories) == 0 {
		text = fmt.Sprintf(
			"I need a MECE breakdown of %q.\n\n"+
				"Please:\n"+
				"1. Run `mece_create_structure` with topic=%q and framework='auto'\n"+
				"2. Show me the proposed categories with their descriptions\n"+
				"3. Help me list concrete items under each category",
			topic, topic,
		)
	} else {
		text = fmt.Sprintf(
			"Please check whether these categories for %q are MECE: %s\n\n"+
				"1. Run `mece_analyze_categories` with topic=%q and the categories above\n"+
				"2. Explain each overlap and gap it reports\n"+
				"3. Propose a corrected category list and re-check it until it is compliant\n\n"+
				"The check is lexical, so also point out semantic overlaps it cannot see.",
			topic, strings.Join(categories, ", "), topic,
		)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("MECE check: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
