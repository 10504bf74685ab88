package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"DemoLab/DemoServer/activity"
	"DemoLab/DemoServer/clock"
	"DemoLab/DemoServer/counter"
	"DemoLab/DemoServer/hello"
)

type stubSource struct {
	body json.RawMessage
	err  error
}

func (s stubSource) Fetch(ctx context.Context) (json.RawMessage, error) {
	return s.body, s.err
}

func textAt(t *testing.T, result *mcp.CallToolResult, i int) string {
	t.Helper()
	require.NotNil(t, result)
	require.Greater(t, len(result.Content), i)

	var data map[string]interface{}
	jsonBytes, err := result.Content[i].MarshalJSON()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(jsonBytes, &data))
	return data["text"].(string)
}

func TestGetQuote(t *testing.T) {
	body := json.RawMessage(`{"hitokoto":"人生若只如初见","from":"木兰词","from_who":"纳兰性德"}`)
	tool := NewGetQuote(stubSource{body: body})

	result, _, err := tool.Action(context.TODO(), &mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err, "Calling tool %q", tool.Name)

	assert.Equal(t, "「人生若只如初见」 —— 纳兰性德《木兰词》", textAt(t, result, 0))
	assert.JSONEq(t, string(body), textAt(t, result, 1))
}

func TestGetQuoteFailure(t *testing.T) {
	tool := NewGetQuote(stubSource{err: errors.New("upstream down")})

	_, _, err := tool.Action(context.TODO(), &mcp.CallToolRequest{}, struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to fetch from Hitokoto API")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestGetGreeting(t *testing.T) {
	now := time.Date(2025, 7, 15, 1, 30, 0, 0, time.UTC)
	tool := NewGetGreeting(hello.NewHandler("", clock.Fixed(now)))

	result, _, err := tool.Action(context.TODO(), &mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)

	assert.Equal(t, hello.DefaultMessage, textAt(t, result, 0))
	assert.JSONEq(t, `{"message":"`+hello.DefaultMessage+`","timestamp":"2025-07-15T01:30:00Z"}`, textAt(t, result, 1))
}

func TestCounterTools(t *testing.T) {
	store := counter.NewStore(counter.WithSleeper(&clock.Instant{}))
	ctx := context.TODO()
	req := &mcp.CallToolRequest{}

	result, _, err := NewIncrementCounter(store).Action(ctx, req, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "count is 1 (double 2)", textAt(t, result, 0))

	_, _, err = NewDecrementCounter(store).Action(ctx, req, struct{}{})
	require.NoError(t, err)
	result, _, err = NewDecrementCounter(store).Action(ctx, req, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "count is -1 (double -2)", textAt(t, result, 0))

	result, _, err = NewInitCounter(store).Action(ctx, req, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "count is 100 (double 200)", textAt(t, result, 0))

	result, _, err = NewGetCounter(store).Action(ctx, req, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "count is 100 (double 200)", textAt(t, result, 0))
}

func TestInitCounterCancelled(t *testing.T) {
	store := counter.NewStore()
	store.Increment()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewInitCounter(store).Action(ctx, &mcp.CallToolRequest{}, struct{}{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, store.Value())
}

func TestGetActivityLog(t *testing.T) {
	feed := activity.NewFeed(0)
	tool := NewGetActivityLog(feed)

	result, _, err := tool.Action(context.TODO(), &mcp.CallToolRequest{}, GetActivityLogParams{})
	require.NoError(t, err)
	assert.Equal(t, "No activity recorded.", textAt(t, result, 0))

	feed.Record(activity.KindSession, "alice", "logged in")
	feed.Record(activity.KindCounter, "", "increment: count=1")
	feed.Record(activity.KindCounter, "", "increment: count=2")

	result, _, err = tool.Action(context.TODO(), &mcp.CallToolRequest{}, GetActivityLogParams{Limit: 2})
	require.NoError(t, err)
	text := textAt(t, result, 0)
	assert.True(t, strings.HasPrefix(text, "Last 2 entries:"))
	assert.NotContains(t, text, "alice")
	assert.Contains(t, text, "count=2")

	result, _, err = tool.Action(context.TODO(), &mcp.CallToolRequest{}, GetActivityLogParams{Kind: activity.KindSession})
	require.NoError(t, err)
	text = textAt(t, result, 0)
	assert.Contains(t, text, "session alice: logged in")
	assert.NotContains(t, text, "count=")
}

func TestRegisterAllOverTransport(t *testing.T) {
	ctx := context.Background()
	store := counter.NewStore(counter.WithSleeper(&clock.Instant{}))

	server := mcp.NewServer(&mcp.Implementation{Name: "demo", Version: "test"}, nil)
	RegisterAll(server, zaptest.NewLogger(t), All(Deps{
		Quotes:   stubSource{body: json.RawMessage(`{"hitokoto":"hi"}`)},
		Greeter:  hello.NewHandler("", nil),
		Counter:  store,
		Activity: activity.NewFeed(0),
	})...)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	listed, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range listed.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"get-quote", "get-greeting", "get-counter", "increment-counter",
		"decrement-counter", "init-counter", "get-activity-log",
	}, names)

	result, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "increment-counter", Arguments: map[string]any{}})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "count is 1 (double 2)", textAt(t, result, 0))
	assert.Equal(t, 1, store.Value())
}

func TestAllSkipsMissingDeps(t *testing.T) {
	assert.Empty(t, All(Deps{}))
	assert.Len(t, All(Deps{Counter: counter.NewStore()}), 4)
}
