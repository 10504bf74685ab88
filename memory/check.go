// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package memory talks to an MCP knowledge-graph memory server: it writes a
// test entity and reads the whole graph back.
package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const (
	ToolCreateEntities = "create_entities"
	ToolReadGraph      = "read_graph"

	// FileEnv is the variable the memory server reads its storage path from.
	FileEnv = "MEMORY_FILE_PATH"
)

// ErrToolsMissing is returned when the server does not expose both
// create_entities and read_graph.
var ErrToolsMissing = errors.New("memory server is missing create_entities or read_graph")

// Entity is a node of the memory graph.
type Entity struct {
	Name         string   `json:"name"`
	EntityType   string   `json:"entityType"`
	Observations []string `json:"observations"`
}

// DefaultEntities is what the check writes when no entities are given.
var DefaultEntities = []Entity{
	{
		Name:         "向阳的项目结构偏好",
		EntityType:   "架构偏好",
		Observations: []string{"所有代码都应放在 app 文件夹下，而不是根目录。"},
	},
}

// Report is the outcome of a successful check.
type Report struct {
	Tools   []string            `json:"tools"`
	Created *mcp.CallToolResult `json:"created"`
	Graph   *mcp.CallToolResult `json:"graph"`
}

// Checker runs the memory check against a server.
type Checker struct {
	client *mcp.Client
	logger *zap.Logger
}

func NewChecker(logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "demoserver-memory-check",
		Version: "1.0.0",
	}, nil)
	return &Checker{client: client, logger: logger}
}

// Run connects over transport, verifies the required tools exist, creates
// entities and reads the graph. The session is closed before returning.
func (c *Checker) Run(ctx context.Context, transport mcp.Transport, entities []Entity) (*Report, error) {
	if len(entities) == 0 {
		entities = DefaultEntities
	}

	session, err := c.client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to memory server: %w", err)
	}
	defer session.Close()
	c.logger.Info("Connected to memory server")

	listed, err := session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	report := &Report{}
	for _, tool := range listed.Tools {
		report.Tools = append(report.Tools, tool.Name)
	}
	c.logger.Info("Available tools", zap.Strings("tools", report.Tools))

	if !slices.Contains(report.Tools, ToolCreateEntities) || !slices.Contains(report.Tools, ToolReadGraph) {
		return report, ErrToolsMissing
	}

	c.logger.Info("Writing memory", zap.String("tool", ToolCreateEntities), zap.Int("entities", len(entities)))
	report.Created, err = call(ctx, session, ToolCreateEntities, map[string]any{"entities": entities})
	if err != nil {
		return report, err
	}

	c.logger.Info("Reading memory graph", zap.String("tool", ToolReadGraph))
	report.Graph, err = call(ctx, session, ToolReadGraph, map[string]any{})
	if err != nil {
		return report, err
	}

	return report, nil
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) (*mcp.CallToolResult, error) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", name, err)
	}
	if result.IsError {
		return result, fmt.Errorf("%s returned an error: %s", name, textOf(result))
	}
	return result, nil
}

func textOf(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}

// NewCommandTransport builds a stdio transport that spawns the memory server
// with its storage file set to the absolute form of memoryFile. The file's
// directory is created if needed.
func NewCommandTransport(command string, args []string, memoryFile string) (*mcp.CommandTransport, error) {
	path, err := filepath.Abs(memoryFile)
	if err != nil {
		return nil, fmt.Errorf("resolving memory file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating memory directory: %w", err)
	}

	cmd := exec.Command(command, args...)
	cmd.Env = append(os.Environ(), FileEnv+"="+path)
	cmd.Stderr = os.Stderr

	return &mcp.CommandTransport{Command: cmd}, nil
}
