package prompts

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: "demo", Version: "test"}, nil)
	RegisterAll(server, zaptest.NewLogger(t))

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func promptText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, result.Messages, 1)
	text, ok := result.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListPrompts(t *testing.T) {
	cs := connect(t)

	listed, err := cs.ListPrompts(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, p := range listed.Prompts {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"daily-quote", "counter-walkthrough"}, names)
}

func TestDailyQuote(t *testing.T) {
	cs := connect(t)

	result, err := cs.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name:      "daily-quote",
		Arguments: map[string]string{"language": "English"},
	})
	require.NoError(t, err)

	text := promptText(t, result)
	assert.Contains(t, text, "get-quote")
	assert.Contains(t, text, "in English")
}

func TestCounterWalkthrough(t *testing.T) {
	cs := connect(t)

	result, err := cs.GetPrompt(context.Background(), &mcp.GetPromptParams{Name: "counter-walkthrough"})
	require.NoError(t, err)
	assert.Contains(t, promptText(t, result), "increment-counter 3 times")

	result, err = cs.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name:      "counter-walkthrough",
		Arguments: map[string]string{"steps": "5"},
	})
	require.NoError(t, err)
	assert.Contains(t, promptText(t, result), "increment-counter 5 times")
}
