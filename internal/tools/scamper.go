package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/scamper"
	"github.com/HendryAvila/analysis-support/internal/session"
)

// ScamperStartTool handles the scamper_start_session MCP tool.
type ScamperStartTool struct {
	engine *scamper.Engine
}

// NewScamperStartTool creates a ScamperStartTool.
func NewScamperStartTool(engine *scamper.Engine) *ScamperStartTool {
	return &ScamperStartTool{engine: engine}
}

// Definition returns the MCP tool definition for scamper_start_session.
func (t *ScamperStartTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_start_session",
		mcp.WithDescription(
			"Start a SCAMPER brainstorming session (Substitute, Combine, Adapt, Modify, Put to other use, "+
				"Eliminate, Reverse). Returns the session id, a technique overview and a usage guide.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Topic or challenge to generate ideas for"),
		),
		mcp.WithString("current_situation",
			mcp.Required(),
			mcp.Description("Current situation or problem details"),
		),
		mcp.WithString("context",
			mcp.Description("Optional background or constraints"),
		),
	)
}

// Handle processes the scamper_start_session tool call.
func (t *ScamperStartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := req.GetString("topic", "")
	if topic == "" {
		return mcp.NewToolResultError("'topic' is required"), nil
	}
	situation := req.GetString("current_situation", "")
	if situation == "" {
		return mcp.NewToolResultError("'current_situation' is required"), nil
	}

	started, err := t.engine.StartSession(ctx, topic, situation, req.GetString("context", ""))
	if err != nil {
		return failure(err)
	}
	return jsonResult(started)
}

// ScamperApplyTool handles the scamper_apply_technique MCP tool.
type ScamperApplyTool struct {
	engine *scamper.Engine
}

// NewScamperApplyTool creates a ScamperApplyTool.
func NewScamperApplyTool(engine *scamper.Engine) *ScamperApplyTool {
	return &ScamperApplyTool{engine: engine}
}

// Definition returns the MCP tool definition for scamper_apply_technique.
func (t *ScamperApplyTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_apply_technique",
		mcp.WithDescription(
			"Record ideas generated with one SCAMPER technique. The technique may be given in English "+
				"(any case, spaces or underscores) or Japanese (代替, 結合, 応用, 変更, 転用, 除去, 逆転). "+
				"Returns the recorded ideas and the technique's guiding questions.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Id returned by scamper_start_session"),
		),
		mcp.WithString("technique",
			mcp.Required(),
			mcp.Description("SCAMPER technique, e.g. 'substitute' or '代替'"),
		),
		mcp.WithArray("ideas",
			mcp.Required(),
			mcp.Description("Ideas generated with the technique"),
			mcp.WithStringItems(),
		),
		mcp.WithArray("explanations",
			mcp.Description("Optional explanation per idea; must match the number of ideas"),
			mcp.WithStringItems(),
		),
	)
}

// Handle processes the scamper_apply_technique tool call.
func (t *ScamperApplyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("session_id", "")
	if id == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}
	technique := req.GetString("technique", "")
	if technique == "" {
		return mcp.NewToolResultError("'technique' is required"), nil
	}
	ideas, _, err := stringSliceArg(req, "ideas")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	explanations, _, err := stringSliceArg(req, "explanations")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	app, err := t.engine.ApplyTechnique(ctx, id, technique, ideas, explanations)
	if err != nil {
		return failure(err)
	}
	return jsonResult(app)
}

// ScamperEvaluateTool handles the scamper_evaluate_ideas MCP tool.
type ScamperEvaluateTool struct {
	engine *scamper.Engine
}

// NewScamperEvaluateTool creates a ScamperEvaluateTool.
func NewScamperEvaluateTool(engine *scamper.Engine) *ScamperEvaluateTool {
	return &ScamperEvaluateTool{engine: engine}
}

// Definition returns the MCP tool definition for scamper_evaluate_ideas.
func (t *ScamperEvaluateTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_evaluate_ideas",
		mcp.WithDescription(
			"Score recorded ideas for feasibility and impact (0-10 each). Ideas are matched by exact text. "+
				"Returns every evaluated idea ranked by combined score, plus per-technique statistics.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Id returned by scamper_start_session"),
		),
		mcp.WithArray("idea_evaluations",
			mcp.Required(),
			mcp.Description("Evaluations: [{\"idea\": \"...\", \"feasibility\": 0-10, \"impact\": 0-10}]"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"idea":        map[string]any{"type": "string"},
					"feasibility": map[string]any{"type": "integer", "minimum": scamper.MinScore, "maximum": scamper.MaxScore},
					"impact":      map[string]any{"type": "integer", "minimum": scamper.MinScore, "maximum": scamper.MaxScore},
				},
				"required": []string{"idea", "feasibility", "impact"},
			}),
		),
	)
}

// Handle processes the scamper_evaluate_ideas tool call.
func (t *ScamperEvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("session_id", "")
	if id == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}
	var raw []evaluationArg
	present, err := decodeArg(req, "idea_evaluations", &raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !present {
		return mcp.NewToolResultError("'idea_evaluations' is required"), nil
	}
	evals, err := toEvaluations(raw)
	if err != nil {
		return failure(err)
	}

	ranking, err := t.engine.EvaluateIdeas(ctx, id, evals)
	if err != nil {
		return failure(err)
	}
	return jsonResult(ranking)
}

// evaluationArg is one idea_evaluations item as sent by the caller. Scores
// are pointers so an omitted score is rejected instead of read as 0.
type evaluationArg struct {
	Idea        string `json:"idea"`
	Feasibility *int   `json:"feasibility"`
	Impact      *int   `json:"impact"`
}

func toEvaluations(raw []evaluationArg) ([]scamper.Evaluation, error) {
	evals := make([]scamper.Evaluation, len(raw))
	for i, r := range raw {
		if r.Feasibility == nil {
			return nil, session.Validationf("evaluation %d: feasibility is required", i+1)
		}
		if r.Impact == nil {
			return nil, session.Validationf("evaluation %d: impact is required", i+1)
		}
		evals[i] = scamper.Evaluation{Idea: r.Idea, Feasibility: *r.Feasibility, Impact: *r.Impact}
	}
	return evals, nil
}

// ScamperGetTool handles the scamper_get_session MCP tool.
type ScamperGetTool struct {
	engine *scamper.Engine
}

// NewScamperGetTool creates a ScamperGetTool.
func NewScamperGetTool(engine *scamper.Engine) *ScamperGetTool {
	return &ScamperGetTool{engine: engine}
}

// Definition returns the MCP tool definition for scamper_get_session.
func (t *ScamperGetTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_get_session",
		mcp.WithDescription("Show a SCAMPER session: idea counts per technique, the 5 latest ideas and the note history."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Id returned by scamper_start_session"),
		),
	)
}

// Handle processes the scamper_get_session tool call.
func (t *ScamperGetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("session_id", "")
	if id == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}
	ov, err := t.engine.GetSession(ctx, id)
	if err != nil {
		return failure(err)
	}
	return jsonResult(ov)
}

// ScamperListTool handles the scamper_list_sessions MCP tool.
type ScamperListTool struct {
	engine *scamper.Engine
}

// NewScamperListTool creates a ScamperListTool.
func NewScamperListTool(engine *scamper.Engine) *ScamperListTool {
	return &ScamperListTool{engine: engine}
}

// Definition returns the MCP tool definition for scamper_list_sessions.
func (t *ScamperListTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_list_sessions",
		mcp.WithDescription("List every SCAMPER session in creation order."),
	)
}

// Handle processes the scamper_list_sessions tool call.
func (t *ScamperListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := t.engine.ListSessions(ctx)
	if err != nil {
		return failure(err)
	}
	return jsonResult(struct {
		Total    int               `json:"total"`
		Sessions []scamper.Listing `json:"sessions"`
	}{len(list), list})
}

// ScamperComprehensiveTool handles the scamper_generate_comprehensive MCP tool.
type ScamperComprehensiveTool struct {
	engine *scamper.Engine
}

// NewScamperComprehensiveTool creates a ScamperComprehensiveTool.
func NewScamperComprehensiveTool(engine *scamper.Engine) *ScamperComprehensiveTool {
	return &ScamperComprehensiveTool{engine: engine}
}

// Definition returns the MCP tool definition for scamper_generate_comprehensive.
func (t *ScamperComprehensiveTool) Definition() mcp.Tool {
	return mcp.NewTool("scamper_generate_comprehensive",
		mcp.WithDescription(
			"Open a SCAMPER session and apply all seven techniques in order, seeding one placeholder idea "+
				"per guiding question. Replace the placeholders with concrete ideas, then evaluate.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Topic or challenge to generate ideas for"),
		),
		mcp.WithString("current_situation",
			mcp.Required(),
			mcp.Description("Current situation or problem details"),
		),
		mcp.WithString("context",
			mcp.Description("Optional background or constraints"),
		),
	)
}

// Handle processes the scamper_generate_comprehensive tool call.
func (t *ScamperComprehensiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := req.GetString("topic", "")
	if topic == "" {
		return mcp.NewToolResultError("'topic' is required"), nil
	}
	situation := req.GetString("current_situation", "")
	if situation == "" {
		return mcp.NewToolResultError("'current_situation' is required"), nil
	}

	c, err := t.engine.GenerateComprehensive(ctx, topic, situation, req.GetString("context", ""))
	if err != nil {
		return failure(err)
	}
	return jsonResult(c)
}
