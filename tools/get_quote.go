package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"DemoLab/DemoServer/quote"
)

type GetQuote struct {
	Name        string
	Description string
	Source      quote.Source
}

func (tool *GetQuote) Action(ctx context.Context, req *mcp.CallToolRequest, params struct{}) (*mcp.CallToolResult, any, error) {
	raw, err := tool.Source.Fetch(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", quote.FailureMessage, err)
	}

	text := string(raw)
	if h, err := quote.Parse(raw); err == nil && h.Hitokoto != "" {
		text = h.String()
	}

	return textResult(text, string(raw)), nil, nil
}

func (tool *GetQuote) Register(server *mcp.Server) (mcpToolInstance *mcp.Tool) {
	return register(server, tool.Name, tool.Description, tool.Action)
}

func NewGetQuote(source quote.Source) *GetQuote {
	return &GetQuote{
		Name:        "get-quote",
		Description: "Fetch a random sentence from the Hitokoto API. Returns the formatted quote and the raw JSON.",
		Source:      source,
	}
}
