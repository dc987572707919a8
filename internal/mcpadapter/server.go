package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/xplusplusai/fo-semantic-mcp/internal/config"
	"github.com/xplusplusai/fo-semantic-mcp/internal/instructions"
	"github.com/xplusplusai/fo-semantic-mcp/internal/searchapi"
)

// NewServer builds the MCP server with the search tool, the workflow prompt
// and the tool reference resource registered.
func NewServer(cfg *config.Config, searcher searchapi.Searcher, logger *zerolog.Logger) (*mcp.Server, error) {
	serverInstructions, err := instructions.Server(instructions.ServerParams{
		ToolName:        SearchToolName,
		LocalAssetsPath: cfg.LocalAssetsPath,
		DefaultLimit:    cfg.DefaultLimit,
		HardLimit:       cfg.HardLimit,
	})
	if err != nil {
		return nil, err
	}

	inputSchema, err := searchInputSchema()
	if err != nil {
		return nil, err
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    cfg.ServerName,
			Version: cfg.ServerVersion,
		},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
			InitializedHandler: func(ctx context.Context, req *mcp.InitializedRequest) {
				logger.Info().
					Str("server", cfg.ServerName).
					Str("version", cfg.ServerVersion).
					Msg("MCP client initialized")
			},
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        SearchToolName,
		Title:       "Search F&O Artifacts",
		Description: instructions.ToolDescription(),
		InputSchema: inputSchema,
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint: true,
		},
	}, NewSearchHandler(searcher, cfg, logger).Handle)

	server.AddPrompt(goldenPathPrompt(), NewGoldenPathHandler(logger))
	server.AddResource(searchToolDocResource(), readSearchToolDoc)

	logger.Debug().
		Str("tool", SearchToolName).
		Str("prompt", GoldenPathPromptName).
		Str("resource", SearchToolDocURI).
		Msg("registered MCP capabilities")

	return server, nil
}
