// Package mcp holds the tool and prompt registries and binds them to the
// MCP protocol via mcp-go. One registry instance drives both transports.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/builtwith/builtwith-mcp/internal/builtwith"
	"github.com/builtwith/builtwith-mcp/internal/common"
)

// ParamType enumerates the schema types a tool parameter may declare.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamBoolean ParamType = "boolean"
)

// ParamSpec declares one tool parameter. The same declaration is the
// validator input and the catalog-rendering source; documentation is
// never derived by reflecting on a validator's internals.
type ParamSpec struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
}

// Args holds validated tool arguments keyed by parameter name.
type Args map[string]any

// String returns the named argument as a string, or "" when absent.
func (a Args) String(key string) string {
	v, _ := a[key].(string)
	return v
}

// Bool returns the named argument as a bool, or false when absent.
func (a Args) Bool(key string) bool {
	v, _ := a[key].(bool)
	return v
}

// Int returns the named argument as an int, or 0 when absent.
// JSON numbers arrive as float64.
func (a Args) Int(key string) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// ToolDef declares one tool: its catalog entry, the upstream path it
// maps to, and how validated arguments become upstream query parameters.
// Definitions are immutable after registration.
type ToolDef struct {
	Name        string
	Description string
	Path        string
	Params      []ParamSpec

	// MapParams converts validated arguments to upstream query
	// parameters (uppercase names, KEY excluded). Must be pure.
	MapParams func(args Args) map[string]string

	// Normalize post-processes a successful upstream payload.
	// Nil means identity.
	Normalize func(payload json.RawMessage) (json.RawMessage, error)
}

// PromptArgSpec declares one prompt argument.
type PromptArgSpec struct {
	Name        string
	Description string
	Required    bool
}

// PromptDef declares one prompt template. Render is pure text
// generation; prompts never perform I/O.
type PromptDef struct {
	Name        string
	Description string
	Args        []PromptArgSpec
	Render      func(args map[string]string) []mcp.PromptMessage
}

// Registry is the in-process table of tools and prompts shared by both
// transports. It is populated at startup and read-only afterwards, so
// concurrent dispatch needs no locking.
type Registry struct {
	client      *builtwith.Client
	logger      *common.Logger
	tools       []ToolDef
	toolIndex   map[string]int
	prompts     []PromptDef
	promptIndex map[string]int
}

// NewRegistry creates an empty registry dispatching through the given client.
func NewRegistry(client *builtwith.Client, logger *common.Logger) *Registry {
	return &Registry{
		client:      client,
		logger:      logger,
		toolIndex:   make(map[string]int),
		promptIndex: make(map[string]int),
	}
}

// RegisterTool appends a tool definition to the catalog. Duplicate or
// malformed definitions are programming errors and panic at startup.
func (r *Registry) RegisterTool(def ToolDef) {
	if def.Name == "" || def.Path == "" || def.MapParams == nil {
		panic(fmt.Sprintf("mcp: incomplete tool definition %+v", def))
	}
	if _, exists := r.toolIndex[def.Name]; exists {
		panic(fmt.Sprintf("mcp: duplicate tool %q", def.Name))
	}
	r.toolIndex[def.Name] = len(r.tools)
	r.tools = append(r.tools, def)
}

// RegisterPrompt appends a prompt definition to the catalog. Duplicates
// panic at startup, same as tools.
func (r *Registry) RegisterPrompt(def PromptDef) {
	if def.Name == "" || def.Render == nil {
		panic(fmt.Sprintf("mcp: incomplete prompt definition %+v", def))
	}
	if _, exists := r.promptIndex[def.Name]; exists {
		panic(fmt.Sprintf("mcp: duplicate prompt %q", def.Name))
	}
	r.promptIndex[def.Name] = len(r.prompts)
	r.prompts = append(r.prompts, def)
}

// Tools returns the tool catalog in registration order.
func (r *Registry) Tools() []ToolDef {
	return r.tools
}

// Prompts returns the prompt catalog in registration order.
func (r *Registry) Prompts() []PromptDef {
	return r.prompts
}

// Dispatch runs one tool invocation end to end and always returns a
// JSON payload: the normalized upstream data on success, or an
// error-shaped object. The protocol layer wraps either in a normal
// success envelope — callers inspect payload content, not fault codes.
func (r *Registry) Dispatch(ctx context.Context, name string, rawArgs map[string]any) json.RawMessage {
	idx, ok := r.toolIndex[name]
	if !ok {
		return builtwith.ErrorPayload(&builtwith.CallError{
			Kind:    builtwith.KindUnknownTool,
			Message: fmt.Sprintf("unknown tool %q", name),
		})
	}
	def := r.tools[idx]

	args, err := validateArgs(def.Params, rawArgs)
	if err != nil {
		return builtwith.ErrorPayload(err)
	}

	payload, err := r.client.Call(ctx, def.Path, def.MapParams(args))
	if err != nil {
		r.logger.Warn().Str("tool", name).Str("error", err.Error()).Msg("tool call failed")
		return builtwith.ErrorPayload(err)
	}

	if def.Normalize != nil {
		payload, err = def.Normalize(payload)
		if err != nil {
			return builtwith.ErrorPayload(&builtwith.CallError{
				Kind:    builtwith.KindBadUpstreamResponse,
				Message: fmt.Sprintf("failed to normalize response: %v", err),
			})
		}
	}
	return payload
}

// RenderPrompt renders a prompt by name after validating its arguments.
func (r *Registry) RenderPrompt(name string, args map[string]string) ([]mcp.PromptMessage, error) {
	idx, ok := r.promptIndex[name]
	if !ok {
		return nil, &builtwith.CallError{
			Kind:    builtwith.KindUnknownPrompt,
			Message: fmt.Sprintf("unknown prompt %q", name),
		}
	}
	def := r.prompts[idx]
	for _, a := range def.Args {
		if a.Required && args[a.Name] == "" {
			return nil, &builtwith.CallError{
				Kind:    builtwith.KindInvalidInput,
				Message: fmt.Sprintf("missing required argument %q", a.Name),
			}
		}
	}
	return def.Render(args), nil
}

// validateArgs checks raw arguments against the declared parameter
// specs and returns only the declared values. Undeclared arguments are
// ignored rather than rejected.
func validateArgs(specs []ParamSpec, raw map[string]any) (Args, error) {
	args := make(Args, len(specs))
	for _, spec := range specs {
		value, present := raw[spec.Name]
		if !present || value == nil {
			if spec.Required {
				return nil, &builtwith.CallError{
					Kind:    builtwith.KindInvalidInput,
					Message: fmt.Sprintf("missing required parameter %q", spec.Name),
				}
			}
			continue
		}
		switch spec.Type {
		case ParamString:
			s, ok := value.(string)
			if !ok {
				return nil, invalidType(spec, value)
			}
			if s == "" && spec.Required {
				return nil, &builtwith.CallError{
					Kind:    builtwith.KindInvalidInput,
					Message: fmt.Sprintf("missing required parameter %q", spec.Name),
				}
			}
		case ParamNumber:
			switch value.(type) {
			case float64, int:
			default:
				return nil, invalidType(spec, value)
			}
		case ParamBoolean:
			if _, ok := value.(bool); !ok {
				return nil, invalidType(spec, value)
			}
		}
		args[spec.Name] = value
	}
	return args, nil
}

func invalidType(spec ParamSpec, value any) error {
	return &builtwith.CallError{
		Kind:    builtwith.KindInvalidInput,
		Message: fmt.Sprintf("parameter %q must be a %s, got %T", spec.Name, spec.Type, value),
	}
}

// Attach registers every tool and prompt on the given MCP server.
func (r *Registry) Attach(s *server.MCPServer) {
	for i := range r.tools {
		def := r.tools[i]
		s.AddTool(buildTool(def), r.toolHandler(def.Name))
	}
	for i := range r.prompts {
		def := r.prompts[i]
		s.AddPrompt(buildPrompt(def), r.promptHandler(def))
	}
}

// buildTool converts a ToolDef into an mcp.Tool with the declared schema.
func buildTool(def ToolDef) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}
	for _, p := range def.Params {
		var propOpts []mcp.PropertyOption
		if p.Description != "" {
			propOpts = append(propOpts, mcp.Description(p.Description))
		}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		switch p.Type {
		case ParamNumber:
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case ParamBoolean:
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(def.Name, opts...)
}

// buildPrompt converts a PromptDef into an mcp.Prompt.
func buildPrompt(def PromptDef) mcp.Prompt {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(def.Description)}
	for _, a := range def.Args {
		var argOpts []mcp.ArgumentOption
		if a.Description != "" {
			argOpts = append(argOpts, mcp.ArgumentDescription(a.Description))
		}
		if a.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(a.Name, argOpts...))
	}
	return mcp.NewPrompt(def.Name, opts...)
}

func (r *Registry) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload := r.Dispatch(ctx, name, req.GetArguments())
		return textResult(string(payload)), nil
	}
}

func (r *Registry) promptHandler(def PromptDef) server.PromptHandlerFunc {
	return func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		messages, err := r.RenderPrompt(def.Name, req.Params.Arguments)
		if err != nil {
			// Same policy as tools: errors travel as payload content,
			// not protocol faults.
			messages = []mcp.PromptMessage{userMessage(string(builtwith.ErrorPayload(err)))}
		}
		return &mcp.GetPromptResult{
			Description: def.Description,
			Messages:    messages,
		}, nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func userMessage(text string) mcp.PromptMessage {
	return mcp.PromptMessage{
		Role: mcp.RoleUser,
		Content: mcp.TextContent{
			Type: "text",
			Text: text,
		},
	}
}

// NewServer builds the mcp-go server instance shared by both transports.
func NewServer(name, version string, r *Registry) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
	)
	r.Attach(s)
	return s
}
