// Package tools implements the MCP tool handlers for Why-Analysis, MECE and
// SCAMPER.
//
// Each tool follows the same shape:
// - A struct holding its engine, injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() decodes arguments, calls the engine and renders JSON
//
// Caller mistakes (the session error taxonomy) come back as tool errors so
// the model can correct itself; anything else is returned as a Go error.
package tools

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/session"
)

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// failure turns an engine error into the tool response.
func failure(err error) (*mcp.CallToolResult, error) {
	if session.IsDomainError(err) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

// intArg extracts a whole-number argument (JSON numbers are float64).
// ok is false when the key is missing or not a whole number.
func intArg(req mcp.CallToolRequest, key string) (v int, ok bool) {
	switch n := req.GetArguments()[key].(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

// stringSliceArg extracts an array of strings. present reports whether the
// key was supplied at all, so an empty array can be told apart from none.
func stringSliceArg(req mcp.CallToolRequest, key string) (vals []string, present bool, err error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	switch items := raw.(type) {
	case []string:
		return append([]string{}, items...), true, nil
	case []any:
		vals = make([]string, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, true, fmt.Errorf("'%s' item %d must be a string", key, i+1)
			}
			vals[i] = s
		}
		return vals, true, nil
	default:
		return nil, true, fmt.Errorf("'%s' must be an array of strings", key)
	}
}

// decodeArg re-decodes a structured argument into out.
func decodeArg(req mcp.CallToolRequest, key string, out any) (present bool, err error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return false, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return true, fmt.Errorf("'%s' is not valid JSON: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("'%s' has the wrong shape: %w", key, err)
	}
	return true, nil
}
