package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/why"
)

// WhyStartTool handles the why_analysis_start MCP tool.
type WhyStartTool struct {
	engine *why.Engine
}

// NewWhyStartTool creates a WhyStartTool.
func NewWhyStartTool(engine *why.Engine) *WhyStartTool {
	return &WhyStartTool{engine: engine}
}

// Definition returns the MCP tool definition for why_analysis_start.
func (t *WhyStartTool) Definition() mcp.Tool {
	return mcp.NewTool("why_analysis_start",
		mcp.WithDescription(
			"Start a five-whys root-cause analysis. Returns the analysis id and the level-0 question. "+
				"Answer it with why_analysis_add_answer, one level at a time.",
		),
		mcp.WithString("problem",
			mcp.Required(),
			mcp.Description("The problem to analyse, e.g. '売上が減少している'"),
		),
		mcp.WithString("context",
			mcp.Description("Optional background or constraints"),
		),
	)
}

type whyStartResponse struct {
	AnalysisID string     `json:"analysis_id"`
	Problem    string     `json:"problem"`
	Level      int        `json:"current_level"`
	Question   string     `json:"question"`
	Status     why.Status `json:"status"`
	Progress   string     `json:"progress"`
}

// Handle processes the why_analysis_start tool call.
func (t *WhyStartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	problem := req.GetString("problem", "")
	if problem == "" {
		return mcp.NewToolResultError("'problem' is required"), nil
	}

	s, err := t.engine.Start(ctx, problem, req.GetString("context", ""))
	if err != nil {
		return failure(err)
	}
	return jsonResult(whyStartResponse{
		AnalysisID: s.ID,
		Problem:    s.Problem,
		Level:      0,
		Question:   s.Whys[0].Question,
		Status:     s.Status,
		Progress:   s.Progress(),
	})
}

// WhyAddAnswerTool handles the why_analysis_add_answer MCP tool.
type WhyAddAnswerTool struct {
	engine *why.Engine
}

// NewWhyAddAnswerTool creates a WhyAddAnswerTool.
func NewWhyAddAnswerTool(engine *why.Engine) *WhyAddAnswerTool {
	return &WhyAddAnswerTool{engine: engine}
}

// Definition returns the MCP tool definition for why_analysis_add_answer.
func (t *WhyAddAnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("why_analysis_add_answer",
		mcp.WithDescription(
			"Record the answer for one level of a why analysis. Levels are answered in order (0-4) "+
				"and cannot be overwritten. Returns the next question, or the root-cause summary after level 4.",
		),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by why_analysis_start"),
		),
		mcp.WithNumber("level",
			mcp.Required(),
			mcp.Description("Level being answered, 0 to 4"),
			mcp.Min(0),
			mcp.Max(why.Depth-1),
		),
		mcp.WithString("answer",
			mcp.Required(),
			mcp.Description("Answer to the question at that level"),
		),
	)
}

// Handle processes the why_analysis_add_answer tool call.
func (t *WhyAddAnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("analysis_id", "")
	if id == "" {
		return mcp.NewToolResultError("'analysis_id' is required"), nil
	}
	level, ok := intArg(req, "level")
	if !ok {
		return mcp.NewToolResultError("'level' is required and must be a whole number"), nil
	}
	answer := req.GetString("answer", "")
	if answer == "" {
		return mcp.NewToolResultError("'answer' is required"), nil
	}

	res, err := t.engine.AddAnswer(ctx, id, level, answer)
	if err != nil {
		return failure(err)
	}
	return jsonResult(res)
}

// WhyGetTool handles the why_analysis_get MCP tool.
type WhyGetTool struct {
	engine *why.Engine
}

// NewWhyGetTool creates a WhyGetTool.
func NewWhyGetTool(engine *why.Engine) *WhyGetTool {
	return &WhyGetTool{engine: engine}
}

// Definition returns the MCP tool definition for why_analysis_get.
func (t *WhyGetTool) Definition() mcp.Tool {
	return mcp.NewTool("why_analysis_get",
		mcp.WithDescription("Show the full question/answer history and status of a why analysis."),
		mcp.WithString("analysis_id",
			mcp.Required(),
			mcp.Description("Id returned by why_analysis_start"),
		),
	)
}

type whyGetResponse struct {
	*why.Session
	Progress        string       `json:"progress"`
	CurrentLevel    *int         `json:"current_level,omitempty"`
	CurrentQuestion string       `json:"current_question,omitempty"`
	Summary         *why.Summary `json:"summary,omitempty"`
}

// Handle processes the why_analysis_get tool call.
func (t *WhyGetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("analysis_id", "")
	if id == "" {
		return mcp.NewToolResultError("'analysis_id' is required"), nil
	}

	s, err := t.engine.Get(ctx, id)
	if err != nil {
		return failure(err)
	}
	resp := whyGetResponse{Session: s, Progress: s.Progress()}
	if cur, ok := s.Current(); ok {
		level := cur.Level
		resp.CurrentLevel = &level
		resp.CurrentQuestion = cur.Question
	}
	if s.Status == why.StatusCompleted {
		summary := why.BuildSummary(s)
		resp.Summary = &summary
	}
	return jsonResult(resp)
}

// WhyListTool handles the why_analysis_list MCP tool.
type WhyListTool struct {
	engine *why.Engine
}

// NewWhyListTool creates a WhyListTool.
func NewWhyListTool(engine *why.Engine) *WhyListTool {
	return &WhyListTool{engine: engine}
}

// Definition returns the MCP tool definition for why_analysis_list.
func (t *WhyListTool) Definition() mcp.Tool {
	return mcp.NewTool("why_analysis_list",
		mcp.WithDescription("List every why analysis in creation order."),
	)
}

// Handle processes the why_analysis_list tool call.
func (t *WhyListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := t.engine.List(ctx)
	if err != nil {
		return failure(err)
	}
	return jsonResult(struct {
		Total    int           `json:"total"`
		Analyses []why.Listing `json:"analyses"`
	}{len(list), list})
}
