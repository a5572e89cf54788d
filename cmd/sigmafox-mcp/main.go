// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Command sigmafox-mcp exposes SigmaFox compilation as an MCP stdio server
// (SPEC_FULL.md §4.15, supplemental to spec.md). It has no direct teacher
// analog — the teacher repo never wires an MCP surface — so its shape is
// drawn from github.com/mark3labs/mcp-go's own tool-server conventions,
// the same dependency _examples/agentic-research-mache's go.mod already
// requires.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/magictrick-dev/sigmafox/internal/buildinfo"
	"github.com/magictrick-dev/sigmafox/internal/config"
	"github.com/magictrick-dev/sigmafox/internal/driver"
)

// compileMu serializes every call into internal/driver.Run. SPEC_FULL.md
// §5 carries forward spec.md §5's single-threaded, synchronous pipeline
// guarantee; this mutex is the one concurrency primitive in the whole
// repo, bounding the stdio server's otherwise-concurrent tool dispatch
// back down to one compilation at a time.
var compileMu sync.Mutex

func main() {
	s := server.NewMCPServer("sigmafox", buildinfo.Version.String(),
		server.WithToolCapabilities(false))

	s.AddTool(compileTool(), handleCompile)
	s.AddTool(checkTool(), handleCheck)

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("sigmafox-mcp: %v", err)
	}
}

func compileTool() mcp.Tool {
	return mcp.NewTool("sigmafox_compile",
		mcp.WithDescription("Transpile a SigmaFox source module to C++, writing the generated files to disk."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Entry source path")),
		mcp.WithString("output_directory", mcp.Description("Directory generated C++ is written to (default \"./\")")),
		mcp.WithString("output_name", mcp.Description("Base name of the generated entry file (default \"main\")")),
		mcp.WithBoolean("compile", mcp.Description("Also compile the generated C++ with $CXX")),
	)
}

func checkTool() mcp.Tool {
	return mcp.NewTool("sigmafox_check",
		mcp.WithDescription("Tokenize, parse, and validate a SigmaFox source module without generating C++; reports diagnostics only."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Entry source path")),
	)
}

func handleCompile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := config.Default()
	opts.EntryPath = path
	if v := req.GetString("output_directory", ""); v != "" {
		opts.OutputDirectory = v
	}
	if v := req.GetString("output_name", ""); v != "" {
		opts.OutputName = v
	}
	opts.Compile = req.GetBool("compile", false)

	return runAndReport(opts), nil
}

func handleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := config.Default()
	opts.EntryPath = path
	opts.CheckOnly = true

	return runAndReport(opts), nil
}

func runAndReport(opts config.Options) *mcp.CallToolResult {
	compileMu.Lock()
	defer compileMu.Unlock()

	res := driver.Run(osfs.New("."), opts, nil)

	if len(res.Diagnostics) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("ok: exit %d", res.ExitCode))
	}

	var b []byte
	for _, d := range res.Diagnostics {
		b = append(b, []byte(d.Error()+"\n")...)
	}
	if res.ExitCode != driver.ExitSuccess {
		return mcp.NewToolResultError(string(b))
	}
	return mcp.NewToolResultText(string(b))
}
