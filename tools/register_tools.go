package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"DemoLab/DemoServer/activity"
	"DemoLab/DemoServer/counter"
	"DemoLab/DemoServer/hello"
	"DemoLab/DemoServer/quote"
)

type MCPRegisterableTool interface {
	Register(server *mcp.Server) (mcpToolInstance *mcp.Tool)
}

// Deps are the application services the tools expose.
type Deps struct {
	Quotes   quote.Source
	Greeter  *hello.Handler
	Counter  *counter.Store
	Activity *activity.Feed
}

// All builds every tool whose dependency is set.
func All(deps Deps) []MCPRegisterableTool {
	var tools []MCPRegisterableTool
	if deps.Quotes != nil {
		tools = append(tools, NewGetQuote(deps.Quotes))
	}
	if deps.Greeter != nil {
		tools = append(tools, NewGetGreeting(deps.Greeter))
	}
	if deps.Counter != nil {
		tools = append(tools,
			NewGetCounter(deps.Counter),
			NewIncrementCounter(deps.Counter),
			NewDecrementCounter(deps.Counter),
			NewInitCounter(deps.Counter),
		)
	}
	if deps.Activity != nil {
		tools = append(tools, NewGetActivityLog(deps.Activity))
	}
	return tools
}

func RegisterAll(server *mcp.Server, logger *zap.Logger, tools ...MCPRegisterableTool) {
	for _, tool := range tools {
		mcpToolInstance := tool.Register(server)

		logger.Info("Registered tool", zap.String("tool", mcpToolInstance.Name))
	}
}

func register[In any](server *mcp.Server, name, description string, action mcp.ToolHandlerFor[In, any]) *mcp.Tool {
	mcpToolInstance := &mcp.Tool{
		Name:        name,
		Description: description,
	}

	mcp.AddTool(server, mcpToolInstance, action)

	return mcpToolInstance
}

func textResult(texts ...string) *mcp.CallToolResult {
	result := &mcp.CallToolResult{}
	for _, text := range texts {
		result.Content = append(result.Content, &mcp.TextContent{Text: text})
	}
	return result
}
