// Package mcptools exposes diagram generation as MCP tools for agents.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/tordrt/umlgen"
	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/interchange"
	"github.com/tordrt/umlgen/internal/resolver"
)

// Deps carries what the tools need.
type Deps struct {
	BasePackage string
	BaseURL     string
	Logger      *zap.Logger
}

func (d *Deps) logger() *zap.Logger {
	if d == nil || d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// NewServer creates an MCP server with every tool registered.
func NewServer(version string, deps *Deps) *server.MCPServer {
	s := server.NewMCPServer("umlgen", version, server.WithToolCapabilities(true))
	Register(s, deps)
	return s
}

// ServeStdio serves s over stdin and stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("failed to serve mcp: %w", err)
	}
	return nil
}

// Register adds the generation, resolution and conversion tools to s.
func Register(s *server.MCPServer, deps *Deps) {
	registerGenerate(s, deps)
	registerResolve(s, deps)
	registerConvert(s, deps)
}

// ErrorResponse is the body of a failed tool call.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorResult(code, message string) *mcp.CallToolResult {
	data, _ := json.Marshal(ErrorResponse{Error: true, Code: code, Message: message})
	result := mcp.NewToolResultText(string(data))
	result.IsError = true
	return result
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

var diagramArg = mcp.WithString(
	"diagram",
	mcp.Required(),
	mcp.Description("Class diagram as JSON: an editor snapshot {classes, links} or an interchange document {classes, relationships}"),
)

func registerGenerate(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"generate_artifacts",
		mcp.WithDescription("Generates source artifacts from a UML class diagram"),
		diagramArg,
		mcp.WithString(
			"target",
			mcp.Required(),
			mcp.Description("What to generate"),
			mcp.Enum(umlgen.Targets()...),
		),
		mcp.WithString("project", mcp.Description("Optional - project name, defaults to the diagram title")),
		mcp.WithString("format", mcp.Description("Optional - markdown or text for docs, json or yaml for interchange-export")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireString("diagram")
		if err != nil {
			return nil, err
		}
		target, err := req.RequireString("target")
		if err != nil {
			return nil, err
		}
		snap, warnings, err := umlgen.ParseDiagram([]byte(raw), interchange.FormatJSON)
		if err != nil {
			return errorResult("invalid_diagram", err.Error()), nil
		}

		format := req.GetString("format", "")
		opts := &umlgen.Options{
			Target:            strings.TrimSpace(target),
			ProjectName:       req.GetString("project", ""),
			DocsFormat:        format,
			InterchangeFormat: format,
			Logger:            deps.logger(),
		}
		if deps != nil {
			opts.BasePackage = deps.BasePackage
			opts.BaseURL = deps.BaseURL
		}
		res := umlgen.Generate(ctx, snap, opts)
		if !res.Success {
			return errorResult("generation_failed", res.Error), nil
		}
		res.Warnings = append(warnings, res.Warnings...)
		return jsonResult(res)
	})
}

type resolveResult struct {
	Counts   umlgen.Counts                  `json:"counts"`
	Classes  []resolver.NamedClassRelations `json:"classes"`
	Resolved *resolver.Resolved             `json:"resolved"`
	Warnings []diagram.Warning              `json:"warnings,omitempty"`
}

func registerResolve(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"resolve_relationships",
		mcp.WithDescription("Shows how each relationship of a class diagram maps to foreign keys, collections, join tables and inheritance"),
		diagramArg,
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireString("diagram")
		if err != nil {
			return nil, err
		}
		snap, warnings, err := umlgen.ParseDiagram([]byte(raw), interchange.FormatJSON)
		if err != nil {
			return errorResult("invalid_diagram", err.Error()), nil
		}

		logger := deps.logger()
		d, more := diagram.Extract(snap, logger)
		warnings = append(warnings, more...)
		r := resolver.Resolve(d, logger)
		warnings = append(warnings, r.Warnings...)

		return jsonResult(resolveResult{
			Counts:   umlgen.Counts{Classes: len(d.Classes), Relationships: len(d.Relationships)},
			Classes:  r.Classes(),
			Resolved: r,
			Warnings: warnings,
		})
	})
}

type convertResult struct {
	Format   string            `json:"format"`
	Counts   umlgen.Counts     `json:"counts"`
	Document string            `json:"document"`
	Warnings []diagram.Warning `json:"warnings,omitempty"`
}

func registerConvert(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"convert_interchange",
		mcp.WithDescription("Normalizes an interchange document and converts it between JSON and YAML"),
		mcp.WithString("document", mcp.Required(), mcp.Description("The interchange document text")),
		mcp.WithString("from", mcp.Description("Optional - format of document, json (default) or yaml"), mcp.Enum(interchange.FormatJSON, interchange.FormatYAML)),
		mcp.WithString("to", mcp.Description("Optional - output format, json (default) or yaml"), mcp.Enum(interchange.FormatJSON, interchange.FormatYAML)),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireString("document")
		if err != nil {
			return nil, err
		}
		from := req.GetString("from", interchange.FormatJSON)
		to := req.GetString("to", interchange.FormatJSON)

		snap, warnings := umlgen.ImportDocument([]byte(raw), from)
		data, more, err := umlgen.ExportDocument(snap, to, deps.logger())
		if err != nil {
			return errorResult("conversion_failed", err.Error()), nil
		}
		return jsonResult(convertResult{
			Format:   to,
			Counts:   umlgen.Counts{Classes: len(snap.Classes), Relationships: len(snap.Links)},
			Document: string(data),
			Warnings: append(warnings, more...),
		})
	})
}
