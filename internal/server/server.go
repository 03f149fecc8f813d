// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it builds the session registries for the
// configured store, hands each engine its own registry, and registers the
// tools, prompts and resources that depend on them. No analysis logic
// lives here, only wiring.
package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/analysis-support/internal/config"
	"github.com/HendryAvila/analysis-support/internal/mece"
	"github.com/HendryAvila/analysis-support/internal/prompts"
	"github.com/HendryAvila/analysis-support/internal/resources"
	"github.com/HendryAvila/analysis-support/internal/scamper"
	"github.com/HendryAvila/analysis-support/internal/session"
	"github.com/HendryAvila/analysis-support/internal/tools"
	"github.com/HendryAvila/analysis-support/internal/why"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Name is the MCP server name announced to clients.
const Name = "analysis-support"

// New creates and configures the MCP server with all tools, prompts and
// resources registered. This is the single place where all dependencies
// are resolved.
//
// The returned cleanup function closes the SQLite store when one is in use
// and must be called on shutdown (typically via defer). It is always
// non-nil and safe to call.
func New(cfg config.Config, logger *slog.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := cfg.Validate(); err != nil {
		return nil, noop, fmt.Errorf("invalid config: %w", err)
	}

	// --- Create shared dependencies ---

	policy, err := mece.LoadPolicy(cfg.MECEPolicy)
	if err != nil {
		return nil, noop, err
	}

	whyReg, scamperReg, cleanup, err := openRegistries(cfg, logger)
	if err != nil {
		return nil, noop, err
	}

	whyEngine := why.NewEngine(whyReg, why.Options{
		Locale: cfg.Locale,
		Logger: logger.With("component", "why"),
	})
	analyzer := mece.NewAnalyzer(mece.Options{
		Policy: &policy,
		Locale: cfg.Locale,
		Logger: logger.With("component", "mece"),
	})
	scamperEngine := scamper.NewEngine(scamperReg, scamper.Options{
		Locale: cfg.Locale,
		Logger: logger.With("component", "scamper"),
	})

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register Why-Analysis tools ---

	whyStart := tools.NewWhyStartTool(whyEngine)
	s.AddTool(whyStart.Definition(), whyStart.Handle)

	whyAnswer := tools.NewWhyAddAnswerTool(whyEngine)
	s.AddTool(whyAnswer.Definition(), whyAnswer.Handle)

	whyGet := tools.NewWhyGetTool(whyEngine)
	s.AddTool(whyGet.Definition(), whyGet.Handle)

	whyList := tools.NewWhyListTool(whyEngine)
	s.AddTool(whyList.Definition(), whyList.Handle)

	// --- Register MECE tools ---
	//
	// The analyzer is stateless: nothing it computes is stored.

	meceAnalyze := tools.NewMECEAnalyzeTool(analyzer)
	s.AddTool(meceAnalyze.Definition(), meceAnalyze.Handle)

	meceStructure := tools.NewMECEStructureTool(analyzer)
	s.AddTool(meceStructure.Definition(), meceStructure.Handle)

	// --- Register SCAMPER tools ---

	scamperStart := tools.NewScamperStartTool(scamperEngine)
	s.AddTool(scamperStart.Definition(), scamperStart.Handle)

	scamperApply := tools.NewScamperApplyTool(scamperEngine)
	s.AddTool(scamperApply.Definition(), scamperApply.Handle)

	scamperEvaluate := tools.NewScamperEvaluateTool(scamperEngine)
	s.AddTool(scamperEvaluate.Definition(), scamperEvaluate.Handle)

	scamperGet := tools.NewScamperGetTool(scamperEngine)
	s.AddTool(scamperGet.Definition(), scamperGet.Handle)

	scamperList := tools.NewScamperListTool(scamperEngine)
	s.AddTool(scamperList.Definition(), scamperList.Handle)

	scamperComprehensive := tools.NewScamperComprehensiveTool(scamperEngine)
	s.AddTool(scamperComprehensive.Definition(), scamperComprehensive.Handle)

	// --- Register prompts ---

	whyPrompt := prompts.NewWhyPrompt()
	s.AddPrompt(whyPrompt.Definition(), whyPrompt.Handle)

	mecePrompt := prompts.NewMECEPrompt()
	s.AddPrompt(mecePrompt.Definition(), mecePrompt.Handle)

	scamperPrompt := prompts.NewScamperPrompt()
	s.AddPrompt(scamperPrompt.Definition(), scamperPrompt.Handle)

	// --- Register resources ---

	rh := resources.NewHandler(whyEngine, scamperEngine)
	s.AddResource(rh.WhySessionsResource(), rh.HandleWhySessions)
	s.AddResource(rh.ScamperSessionsResource(), rh.HandleScamperSessions)
	s.AddResource(rh.FrameworksResource(), rh.HandleFrameworks)

	logger.Info("mcp server ready",
		"store", cfg.Store,
		"locale", cfg.Locale,
		"mece_policy", policyName(cfg.MECEPolicy),
	)
	return s, cleanup, nil
}

// openRegistries builds one registry per stateful technique on the
// configured store.
func openRegistries(cfg config.Config, logger *slog.Logger) (session.Registry[*why.Session], session.Registry[*scamper.Session], func(), error) {
	if cfg.Store != config.StoreSQLite {
		return session.NewMemoryRegistry[*why.Session]("why analysis"),
			session.NewMemoryRegistry[*scamper.Session]("scamper session"),
			noop, nil
	}

	db, err := session.OpenSQLite(cfg.SQLiteDSN)
	if err != nil {
		return nil, nil, noop, fmt.Errorf("opening session store: %w", err)
	}
	cleanup := func() { closeDB(db, logger) }
	return session.NewSQLiteRegistry[*why.Session](db, "why", "why analysis"),
		session.NewSQLiteRegistry[*scamper.Session](db, "scamper", "scamper session"),
		cleanup, nil
}

func closeDB(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("closing session store", "error", err)
	}
}

func policyName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func noop() {}

// Handler exposes s over streamable HTTP at /mcp, next to a /healthz probe.
func Handler(s *server.MCPServer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": Version})
	})
	r.Handle("/mcp", server.NewStreamableHTTPServer(s))
	return r
}

// serverInstructions returns the system instructions that tell the AI how
// to use the analysis tools.
func serverInstructions() string {
	return `You are connected to analysis-support, an MCP server offering three structured thinking techniques.

## WHY-ANALYSIS (root cause)

Five levels of "why", answered strictly in order:
1. why_analysis_start(problem) returns the analysis_id and the level-0 question
2. Ask the user the question, then why_analysis_add_answer(analysis_id, level, answer)
3. Each answer yields the next question; after level 4 you get the root-cause summary
4. why_analysis_get shows the history, why_analysis_list every analysis

Answers cannot be overwritten and a level cannot be skipped. Ask the user; do not invent answers.

## MECE (mutually exclusive, collectively exhaustive)

- mece_analyze_categories(topic, categories) reports overlaps, gaps and a violation_type (none, overlap, gap, both)
- mece_create_structure(topic, framework) proposes categories from SWOT, 4P, 3C, timeline or internal_external; 'auto' picks one from the topic

The check is lexical. Review semantic overlaps yourself and say so.

## SCAMPER (idea generation)

1. scamper_start_session(topic, current_situation)
2. scamper_apply_technique(session_id, technique, ideas, explanations?) per technique:
   Substitute, Combine, Adapt, Modify, Put to other use, Eliminate, Reverse (Japanese names are accepted)
3. scamper_evaluate_ideas(session_id, idea_evaluations) with feasibility and impact from 0 to 10
4. scamper_get_session / scamper_list_sessions to review

scamper_generate_comprehensive seeds a session with one placeholder idea per guiding question for all seven techniques.

## ERRORS

Tool errors start with "validation error", "not found" or "conflict". Fix the input and retry; the session is unchanged.`
}
