// analysis-support: an MCP server for structured problem analysis.
//
// It exposes three thinking methods as MCP tools: Why-Analysis (five
// chained "why" questions), MECE checking and structuring, and SCAMPER
// brainstorming with idea evaluation.
//
// Usage:
//
//	analysis-support serve                   # MCP over stdio
//	analysis-support serve --transport http  # streamable HTTP on --addr
//	analysis-support frameworks              # list MECE templates
//	analysis-support techniques              # list SCAMPER techniques
//	analysis-support version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
