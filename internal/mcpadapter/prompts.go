package mcpadapter

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/xplusplusai/fo-semantic-mcp/internal/instructions"
)

// GoldenPathPromptName is the registered name of the development workflow prompt.
const GoldenPathPromptName = "fo-development-assistant"

func goldenPathPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        GoldenPathPromptName,
		Title:       "F&O Development Assistant",
		Description: "Guides an F&O development task through search, inspection of local XML and implementation.",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "task",
				Description: "The development task to complete, e.g. add a field to the customer form",
				Required:    true,
			},
		},
	}
}

// NewGoldenPathHandler renders the workflow prompt for the requested task.
func NewGoldenPathHandler(logger *zerolog.Logger) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var task string
		if req != nil && req.Params != nil {
			task = req.Params.Arguments["task"]
		}

		text, err := instructions.GoldenPath(SearchToolName, task)
		if err != nil {
			logger.Error().Err(err).Str("prompt", GoldenPathPromptName).Msg("failed to render prompt")
			return nil, fmt.Errorf("failed to render %s prompt: %w", GoldenPathPromptName, err)
		}

		return &mcp.GetPromptResult{
			Description: "F&O development workflow",
			Messages: []*mcp.PromptMessage{
				{
					Role:    "user",
					Content: &mcp.TextContent{Text: text},
				},
			},
		}, nil
	}
}
