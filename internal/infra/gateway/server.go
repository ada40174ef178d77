package gateway

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/infra/telemetry"
)

const (
	ToolListProviders = "apidir.list_providers"
	ToolGetProvider   = "apidir.get_provider"
)

// Directory is the part of the directory client the tools call.
type Directory interface {
	ListProviders(ctx context.Context) ([]domain.ProviderID, error)
	FetchDescriptor(ctx context.Context, id domain.ProviderID) (domain.Resolution, error)
}

// Options configures a Server.
type Options struct {
	Directory Directory
	Logger    *zap.Logger
	Name      string
	Version   string
}

// Server exposes the directory as MCP tools.
type Server struct {
	directory Directory
	logger    *zap.Logger
	server    *mcp.Server
}

// ProvidersResult is the payload of apidir.list_providers.
type ProvidersResult struct {
	Providers []domain.ProviderID `json:"providers"`
	Count     int                 `json:"count"`
}

// ProviderResult is the payload of apidir.get_provider.
type ProviderResult struct {
	Provider   domain.ProviderID    `json:"provider"`
	Key        string               `json:"key"`
	Fallback   bool                 `json:"fallback"`
	Descriptor domain.APIDescriptor `json:"descriptor"`
}

type getProviderArgs struct {
	Provider string `json:"provider"`
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	name := opts.Name
	if name == "" {
		name = "apidir-mcp"
	}
	s := &Server{
		directory: opts.Directory,
		logger:    logger.Named("gateway"),
	}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: opts.Version,
	}, &mcp.ServerOptions{
		HasTools: true,
	})

	listTool := ListProvidersTool()
	s.server.AddTool(&listTool, s.listProvidersHandler())
	getTool := GetProviderTool()
	s.server.AddTool(&getTool, s.getProviderHandler())
	return s
}

// Run serves the tools over stdio until ctx is done or the client leaves.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("gateway starting (stdio transport)")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCP returns the underlying server, for in-process transports.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

func ListProvidersTool() mcp.Tool {
	return mcp.Tool{
		Name:        ToolListProviders,
		Description: "List the ids of every provider in the API directory, in directory order.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

func GetProviderTool() mcp.Tool {
	return mcp.Tool{
		Name:        ToolGetProvider,
		Description: "Fetch the API descriptor of one provider. When the provider document has no entry keyed by the provider id, the first entry of the document is returned and fallback is true.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"provider": map[string]any{
					"type":        "string",
					"description": "Provider id as returned by apidir.list_providers, e.g. \"apis.guru\".",
				},
			},
			"required": []string{"provider"},
		},
	}
}

func (s *Server) listProvidersHandler() mcp.ToolHandler {
	return func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, meta := telemetry.EnsureRequestMeta(ctx)
		ids, err := s.directory.ListProviders(ctx)
		if err != nil {
			return s.toolError(ToolListProviders, meta, err), nil
		}
		if ids == nil {
			ids = []domain.ProviderID{}
		}
		return jsonResult(ProvidersResult{Providers: ids, Count: len(ids)})
	}
}

func (s *Server) getProviderHandler() mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, meta := telemetry.EnsureRequestMeta(ctx)
		var args getProviderArgs
		if req != nil && req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(json.RawMessage(req.Params.Arguments), &args); err != nil {
				return s.toolError(ToolGetProvider, meta, domain.E(domain.CodeInvalidArgument, "get provider", "invalid arguments", err)), nil
			}
		}
		id := domain.ProviderID(strings.TrimSpace(args.Provider))
		if err := id.Validate(); err != nil {
			return s.toolError(ToolGetProvider, meta, err), nil
		}

		res, err := s.directory.FetchDescriptor(ctx, id)
		if err != nil {
			return s.toolError(ToolGetProvider, meta, err), nil
		}
		return jsonResult(ProviderResult{
			Provider:   id,
			Key:        res.Key,
			Fallback:   res.Fallback,
			Descriptor: res.Descriptor,
		})
	}
}

func (s *Server) toolError(tool string, meta telemetry.RequestMeta, err error) *mcp.CallToolResult {
	code, _ := domain.CodeFrom(err)
	fields := append(telemetry.RequestFields(meta), zap.String("tool", tool), zap.String("code", string(code)), zap.Error(err))
	s.logger.Warn("tool call failed", fields...)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}
