// Package resources implements MCP resource handlers for the analysis
// sessions.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (analysis://...) following MCP conventions.
package resources

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/mece"
	"github.com/HendryAvila/analysis-support/internal/scamper"
	"github.com/HendryAvila/analysis-support/internal/why"
)

// Resource URIs.
const (
	WhySessionsURI     = "analysis://why/sessions"
	ScamperSessionsURI = "analysis://scamper/sessions"
	FrameworksURI      = "analysis://mece/frameworks"
)

// Handler serves the session resources.
type Handler struct {
	why     *why.Engine
	scamper *scamper.Engine
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(whyEngine *why.Engine, scamperEngine *scamper.Engine) *Handler {
	return &Handler{why: whyEngine, scamper: scamperEngine}
}

// WhySessionsResource returns the MCP resource definition for the why
// analysis list.
func (h *Handler) WhySessionsResource() mcp.Resource {
	return mcp.NewResource(
		WhySessionsURI,
		"Why Analyses",
		mcp.WithResourceDescription("Every why analysis with its status and progress, in creation order"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleWhySessions returns the why analysis list as JSON.
func (h *Handler) HandleWhySessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := h.why.List(ctx)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, list)
}

// ScamperSessionsResource returns the MCP resource definition for the
// SCAMPER session list.
func (h *Handler) ScamperSessionsResource() mcp.Resource {
	return mcp.NewResource(
		ScamperSessionsURI,
		"SCAMPER Sessions",
		mcp.WithResourceDescription("Every SCAMPER session with its idea counts, in creation order"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleScamperSessions returns the SCAMPER session list as JSON.
func (h *Handler) HandleScamperSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list, err := h.scamper.ListSessions(ctx)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, list)
}

// FrameworksResource returns the MCP resource definition for the MECE
// framework catalog.
func (h *Handler) FrameworksResource() mcp.Resource {
	return mcp.NewResource(
		FrameworksURI,
		"MECE Frameworks",
		mcp.WithResourceDescription("The MECE framework templates, their categories and auto-selection keywords"),
		mcp.WithMIMEType("application/json"),
	)
}

type frameworkEntry struct {
	Framework  mece.Framework `json:"framework"`
	Categories []string       `json:"categories"`
	Keywords   []string       `json:"keywords"`
}

// HandleFrameworks returns the framework catalog in priority order.
func (h *Handler) HandleFrameworks(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	entries := make([]frameworkEntry, 0, len(mece.Priority))
	for _, fw := range mece.Priority {
		tmpl, ok := mece.TemplateFor(fw)
		if !ok {
			return nil, fmt.Errorf("framework %s has no template", fw)
		}
		e := frameworkEntry{Framework: fw, Keywords: tmpl.Keywords}
		for _, c := range tmpl.Categories {
			e.Categories = append(e.Categories, c.Label)
		}
		entries = append(entries, e)
	}
	return jsonResource(req.Params.URI, entries)
}
