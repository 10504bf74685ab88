package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"DemoLab/DemoServer/counter"
)

func counterResult(snap counter.Snapshot) *mcp.CallToolResult {
	return textResult(fmt.Sprintf("count is %d (double %d)", snap.Count, snap.DoubleCount))
}

type GetCounter struct {
	Name        string
	Description string
	Store       *counter.Store
}

func (tool *GetCounter) Action(ctx context.Context, req *mcp.CallToolRequest, params struct{}) (*mcp.CallToolResult, any, error) {
	return counterResult(tool.Store.Snapshot()), nil, nil
}

func (tool *GetCounter) Register(server *mcp.Server) (mcpToolInstance *mcp.Tool) {
	return register(server, tool.Name, tool.Description, tool.Action)
}

func NewGetCounter(store *counter.Store) *GetCounter {
	return &GetCounter{
		Name:        "get-counter",
		Description: "Read the shared counter and its doubled value.",
		Store:       store,
	}
}

type IncrementCounter struct {
	Name        string
	Description string
	Store       *counter.Store
}

func (tool *IncrementCounter) Action(ctx context.Context, req *mcp.CallToolRequest, params struct{}) (*mcp.CallToolResult, any, error) {
	tool.Store.Increment()
	return counterResult(tool.Store.Snapshot()), nil, nil
}

func (tool *IncrementCounter) Register(server *mcp.Server) (mcpToolInstance *mcp.Tool) {
	return register(server, tool.Name, tool.Description, tool.Action)
}

func NewIncrementCounter(store *counter.Store) *IncrementCounter {
	return &IncrementCounter{
		Name:        "increment-counter",
		Description: "Add one to the shared counter.",
		Store:       store,
	}
}

type DecrementCounter struct {
	Name        string
	Description string
	Store       *counter.Store
}

func (tool *DecrementCounter) Action(ctx context.Context, req *mcp.CallToolRequest, params struct{}) (*mcp.CallToolResult, any, error) {
	tool.Store.Decrement()
	return counterResult(tool.Store.Snapshot()), nil, nil
}

func (tool *DecrementCounter) Register(server *mcp.Server) (mcpToolInstance *mcp.Tool) {
	return register(server, tool.Name, tool.Description, tool.Action)
}

func NewDecrementCounter(store *counter.Store) *DecrementCounter {
	return &DecrementCounter{
		Name:        "decrement-counter",
		Description: "Subtract one from the shared counter. The counter may go negative.",
		Store:       store,
	}
}

type InitCounter struct {
	Name        string
	Description string
	Store       *counter.Store
}

func (tool *InitCounter) Action(ctx context.Context, req *mcp.CallToolRequest, params struct{}) (*mcp.CallToolResult, any, error) {
	if _, err := tool.Store.Init(ctx); err != nil {
		return nil, nil, fmt.Errorf("counter init interrupted: %w", err)
	}
	return counterResult(tool.Store.Snapshot()), nil, nil
}

func (tool *InitCounter) Register(server *mcp.Server) (mcpToolInstance *mcp.Tool) {
	return register(server, tool.Name, tool.Description, tool.Action)
}

func NewInitCounter(store *counter.Store) *InitCounter {
	return &InitCounter{
		Name:        "init-counter",
		Description: "Reset the shared counter to its initial value after a short delay.",
		Store:       store,
	}
}
