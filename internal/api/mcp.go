package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/ghfolio/internal/portfolio"
)

const recentLookupsResourceLimit = 10

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Portfolios Loader
	Lookups    LookupStore // optional; if nil, the recent lookups resource errors
	Version    string
}

// NewMCPServer creates an MCP server exposing portfolio lookups as a tool.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	s := server.NewMCPServer(
		"ghfolio",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("ghfolio builds portfolio views from public GitHub profiles, repositories and an optional config/portfolio.json."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("get_portfolio",
			mcp.WithDescription("Fetch a GitHub user's portfolio view: profile, featured repositories, skills, theme and social links."),
			mcp.WithString("handle", mcp.Description("GitHub username"), mcp.Required()),
		),
		mcpGetPortfolio(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"portfolio://lookups/recent",
			"Recent Lookups",
			mcp.WithResourceDescription("Last 10 portfolio lookups with their outcome"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceRecentLookups(deps),
	)

	return s
}

func mcpGetPortfolio(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		handle, err := req.RequireString("handle")
		if err != nil {
			return mcpError("handle is required"), nil
		}

		v, err := lookupView(ctx, deps.Portfolios, deps.Lookups, handle)
		switch {
		case errors.Is(err, portfolio.ErrEmptyHandle):
			return mcpError("handle is required"), nil
		case errors.Is(err, portfolio.ErrProfileNotFound):
			return mcpError(fmt.Sprintf("GitHub user %q not found", handle)), nil
		case err != nil:
			return mcpError(fmt.Sprintf("failed to load portfolio: %v", err)), nil
		}

		b, err := json.Marshal(v)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal portfolio: %v", err)), nil
		}

		return mcpText(string(b)), nil
	}
}

func mcpResourceRecentLookups(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if deps.Lookups == nil {
			return nil, fmt.Errorf("lookup log is not enabled")
		}

		lookups, err := deps.Lookups.ListLookups(recentLookupsResourceLimit, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to list lookups: %w", err)
		}

		b, err := json.Marshal(lookups)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal lookups: %w", err)
		}
		if lookups == nil {
			b = []byte("[]")
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
