package prompts

import (
	"context"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// RegisterAll registers all prompts with the MCP server
func RegisterAll(server *mcp.Server, logger *zap.Logger) {
	// Daily quote prompt
	quotePrompt := &mcp.Prompt{
		Name:        "daily-quote",
		Description: "Get a random sentence from Hitokoto and reflect on it",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "language",
				Description: "Language for the reflection (defaults to the quote's language)",
				Required:    false,
			},
		},
	}

	server.AddPrompt(quotePrompt, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		language := req.Params.Arguments["language"]

		message := "Please fetch today's quote.\n\n"
		message += "Use the get-quote tool to retrieve a sentence, then explain what it means"
		if language != "" {
			message += " in " + language
		}
		message += " and who it is attributed to."

		return &mcp.GetPromptResult{
			Description: "Daily quote request",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: message,
					},
				},
			},
		}, nil
	})

	logger.Info("Registered prompt", zap.String("prompt", quotePrompt.Name))

	// Counter walkthrough prompt
	counterPrompt := &mcp.Prompt{
		Name:        "counter-walkthrough",
		Description: "Step the shared counter up and back to its initial value",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "steps",
				Description: "How many times to increment before resetting (default 3)",
				Required:    false,
			},
		},
	}

	server.AddPrompt(counterPrompt, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		steps := 3
		if n, err := strconv.Atoi(req.Params.Arguments["steps"]); err == nil && n > 0 {
			steps = n
		}

		message := "Walk me through the shared counter.\n\n"
		message += "1. Use the get-counter tool to read the current value.\n"
		message += "2. Call increment-counter " + strconv.Itoa(steps) + " times, reporting the doubled value each time.\n"
		message += "3. Call init-counter to reset it, and confirm the final value."

		return &mcp.GetPromptResult{
			Description: "Counter walkthrough request",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: message,
					},
				},
			},
		}, nil
	})

	logger.Info("Registered prompt", zap.String("prompt", counterPrompt.Name))
}
