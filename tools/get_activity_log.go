package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"DemoLab/DemoServer/activity"
)

type GetActivityLog struct {
	Name        string
	Description string
	Feed        *activity.Feed
}

// GetActivityLogParams defines the parameters for reading the activity log
type GetActivityLogParams struct {
	Limit int    `json:"limit,omitempty" jsonschema:"Number of recent entries to retrieve (default: 20, max: 100)"`
	Kind  string `json:"kind,omitempty" jsonschema:"Only return entries of this kind (session, guard, counter, quote)"`
}

func (tool *GetActivityLog) Action(ctx context.Context, req *mcp.CallToolRequest, params GetActivityLogParams) (*mcp.CallToolResult, any, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > activity.DefaultMaxEntries {
		limit = activity.DefaultMaxEntries
	}

	entries := tool.Feed.History(0)
	if params.Kind != "" {
		filtered := entries[:0]
		for _, entry := range entries {
			if entry.Kind == params.Kind {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	var response strings.Builder
	if len(entries) == 0 {
		response.WriteString("No activity recorded.")
	} else {
		fmt.Fprintf(&response, "Last %d entries:\n\n", len(entries))
		for _, entry := range entries {
			actor := entry.Actor
			if actor == "" {
				actor = "-"
			}
			fmt.Fprintf(&response, "[%s] %s %s: %s\n",
				entry.Timestamp.Format("15:04:05"),
				entry.Kind,
				actor,
				entry.Message,
			)
		}
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")

	return textResult(
		response.String(),
		fmt.Sprintf("\nStructured data:\n%s", string(jsonData)),
	), nil, nil
}

func (tool *GetActivityLog) Register(server *mcp.Server) (mcpToolInstance *mcp.Tool) {
	return register(server, tool.Name, tool.Description, tool.Action)
}

func NewGetActivityLog(feed *activity.Feed) *GetActivityLog {
	return &GetActivityLog{
		Name:        "get-activity-log",
		Description: "Read recent diagnostic activity: logins, guard redirects, counter changes and quote failures.",
		Feed:        feed,
	}
}
