package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"DemoLab/DemoServer/hello"
)

type GetGreeting struct {
	Name        string
	Description string
	Greeter     *hello.Handler
}

func (tool *GetGreeting) Action(ctx context.Context, req *mcp.CallToolRequest, params struct{}) (*mcp.CallToolResult, any, error) {
	greeting := tool.Greeter.Greet()

	data, err := json.Marshal(greeting)
	if err != nil {
		return nil, nil, err
	}

	return textResult(greeting.Message, string(data)), nil, nil
}

func (tool *GetGreeting) Register(server *mcp.Server) (mcpToolInstance *mcp.Tool) {
	return register(server, tool.Name, tool.Description, tool.Action)
}

func NewGetGreeting(greeter *hello.Handler) *GetGreeting {
	return &GetGreeting{
		Name:        "get-greeting",
		Description: "Return the server's greeting message with the current UTC timestamp.",
		Greeter:     greeter,
	}
}
