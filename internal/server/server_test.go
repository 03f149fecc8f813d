package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/analysis-support/internal/config"
)

var toolNames = []string{
	"why_analysis_start",
	"why_analysis_add_answer",
	"why_analysis_get",
	"why_analysis_list",
	"mece_analyze_categories",
	"mece_create_structure",
	"scamper_start_session",
	"scamper_apply_technique",
	"scamper_evaluate_ideas",
	"scamper_get_session",
	"scamper_list_sessions",
	"scamper_generate_comprehensive",
}

// rpc sends one JSON-RPC request to s and returns the encoded response.
func rpc(t *testing.T, s *server.MCPServer, method string, params any) string {
	t.Helper()
	msg, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		t.Fatal(err)
	}
	resp := s.HandleMessage(context.Background(), msg)
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshaling response: %v", err)
	}
	return string(out)
}

func TestNew_RegistersEverything(t *testing.T) {
	s, cleanup, err := New(config.Default(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	tools := rpc(t, s, "tools/list", map[string]any{})
	for _, name := range toolNames {
		if !strings.Contains(tools, `"`+name+`"`) {
			t.Errorf("tool %s is not registered", name)
		}
	}

	promptList := rpc(t, s, "prompts/list", map[string]any{})
	for _, name := range []string{"why-analysis", "mece-check", "scamper-brainstorm"} {
		if !strings.Contains(promptList, name) {
			t.Errorf("prompt %s is not registered", name)
		}
	}

	resourceList := rpc(t, s, "resources/list", map[string]any{})
	for _, uri := range []string{"analysis://why/sessions", "analysis://scamper/sessions", "analysis://mece/frameworks"} {
		if !strings.Contains(resourceList, uri) {
			t.Errorf("resource %s is not registered", uri)
		}
	}
}

func TestNew_ToolCallRoundTrip(t *testing.T) {
	s, cleanup, err := New(config.Default(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	out := rpc(t, s, "tools/call", map[string]any{
		"name":      "mece_analyze_categories",
		"arguments": map[string]any{"topic": "市場分析", "categories": []string{"国内顧客", "国内市場"}},
	})
	if !strings.Contains(out, `violation_type`) || !strings.Contains(out, `overlap`) {
		t.Errorf("unexpected tools/call response: %s", out)
	}
}

func TestNew_SQLiteStore(t *testing.T) {
	cfg := config.Default()
	cfg.Store = config.StoreSQLite
	cfg.SQLiteDSN = filepath.Join(t.TempDir(), "sessions.db")

	s, cleanup, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	out := rpc(t, s, "tools/call", map[string]any{
		"name":      "why_analysis_start",
		"arguments": map[string]any{"problem": "納期遅延"},
	})
	if !strings.Contains(out, "analysis_id") {
		t.Errorf("unexpected tools/call response: %s", out)
	}
}

func TestNew_BadPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.MECEPolicy = filepath.Join(t.TempDir(), "missing.yaml")

	_, cleanup, err := New(cfg, nil)
	if err == nil {
		t.Fatal("expected error for missing policy file")
	}
	cleanup()
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Store = "redis"
	if _, _, err := New(cfg, nil); err == nil {
		t.Fatal("expected error for unsupported store")
	}
}

func TestHandler_Healthz(t *testing.T) {
	s, cleanup, err := New(config.Default(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	srv := httptest.NewServer(Handler(s))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestServerInstructions_MentionEveryTool(t *testing.T) {
	text := serverInstructions()
	for _, name := range toolNames {
		if !strings.Contains(text, name) {
			t.Errorf("instructions do not mention %s", name)
		}
	}
}
