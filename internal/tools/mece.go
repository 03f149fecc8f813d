package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/mece"
)

// MECEAnalyzeTool handles the mece_analyze_categories MCP tool.
type MECEAnalyzeTool struct {
	analyzer *mece.Analyzer
}

// NewMECEAnalyzeTool creates a MECEAnalyzeTool.
func NewMECEAnalyzeTool(analyzer *mece.Analyzer) *MECEAnalyzeTool {
	return &MECEAnalyzeTool{analyzer: analyzer}
}

// Definition returns the MCP tool definition for mece_analyze_categories.
func (t *MECEAnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("mece_analyze_categories",
		mcp.WithDescription(
			"Check a list of categories for overlaps (not mutually exclusive) and gaps "+
				"(not collectively exhaustive). The check is lexical: shared words and contained labels "+
				"count as overlaps, and gaps are found against the framework the topic points to.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("What is being categorised, e.g. '市場分析'"),
		),
		mcp.WithArray("categories",
			mcp.Required(),
			mcp.Description("Category labels to check (at least 2)"),
			mcp.WithStringItems(),
		),
	)
}

// Handle processes the mece_analyze_categories tool call.
func (t *MECEAnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := req.GetString("topic", "")
	if topic == "" {
		return mcp.NewToolResultError("'topic' is required"), nil
	}
	categories, _, err := stringSliceArg(req, "categories")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := t.analyzer.AnalyzeCategories(topic, categories)
	if err != nil {
		return failure(err)
	}
	return jsonResult(res)
}

// MECEStructureTool handles the mece_create_structure MCP tool.
type MECEStructureTool struct {
	analyzer *mece.Analyzer
}

// NewMECEStructureTool creates a MECEStructureTool.
func NewMECEStructureTool(analyzer *mece.Analyzer) *MECEStructureTool {
	return &MECEStructureTool{analyzer: analyzer}
}

// Definition returns the MCP tool definition for mece_create_structure.
func (t *MECEStructureTool) Definition() mcp.Tool {
	return mcp.NewTool("mece_create_structure",
		mcp.WithDescription(
			"Propose a MECE categorisation of a topic from a fixed framework: SWOT, 4P, 3C, timeline or "+
				"internal_external. With 'auto' the framework is chosen from the topic's keywords.",
		),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Topic to structure"),
		),
		mcp.WithString("framework",
			mcp.Description("Framework to use. Defaults to 'auto'."),
			mcp.DefaultString(string(mece.FrameworkAuto)),
			mcp.Enum(frameworkNames()...),
		),
	)
}

func frameworkNames() []string {
	names := []string{string(mece.FrameworkAuto)}
	for _, fw := range mece.Priority {
		names = append(names, string(fw))
	}
	return names
}

// Handle processes the mece_create_structure tool call.
func (t *MECEStructureTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := req.GetString("topic", "")
	if topic == "" {
		return mcp.NewToolResultError("'topic' is required"), nil
	}

	st, err := t.analyzer.CreateStructure(topic, req.GetString("framework", string(mece.FrameworkAuto)))
	if err != nil {
		return failure(err)
	}
	return jsonResult(st)
}
