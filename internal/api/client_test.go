package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"chatdeck/internal/models"

	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api"), srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestListAgents(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/agents", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active_only"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(requestIDHeader))
		writeJSON(w, []map[string]any{
			{"id": 1, "display_name": "Sage", "description": "Wise", "color": "#10b981"},
			{"id": 2, "display_name": "Scout"},
		})
	})

	agents, err := client.ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, int64(1), agents[0].ID)
	assert.Equal(t, "Sage", agents[0].Label())
	assert.Equal(t, "#10b981", agents[0].Accent())
	assert.Equal(t, "AI assistant", agents[1].Blurb())
}

func TestListConversations(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/conversations", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":5,"title":"","created_at":"2025-01-02T03:04:05","message_count":4}]`)
	})

	convs, err := client.ListConversations(context.Background())
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "Conversation 5", convs[0].DisplayTitle())
	assert.Equal(t, 4, convs[0].MessageCount)
	assert.Equal(t, 2025, convs[0].CreatedAt.Year())
}

func TestGetConversation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/conversations/42", r.URL.Path)
		writeJSON(w, map[string]any{
			"id":         42,
			"agent_name": "Sage",
			"messages": []map[string]string{
				{"role": "system", "content": "be nice"},
				{"role": "user", "content": "hi"},
				{"role": "assistant", "content": "hello"},
			},
		})
	})

	detail, err := client.GetConversation(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), detail.ID)
	assert.Equal(t, "Sage", detail.AgentName)
	require.Len(t, detail.Messages, 3)
	assert.Equal(t, models.RoleSystem, detail.Messages[0].Role)

	_, err = client.GetConversation(context.Background(), 0)
	assert.Error(t, err)
}

func TestSendChat(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat/conversation", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(7), body["agent_id"])
		assert.Equal(t, float64(9), body["conversation_id"])
		msgs := body["messages"].([]any)
		require.Len(t, msgs, 1)
		assert.Equal(t, map[string]any{"role": "user", "content": "ping"}, msgs[0])
		writeJSON(w, map[string]any{"response": "pong", "conversation_id": 9, "usage": map[string]any{"total_tokens": 12}})
	})

	resp, err := client.SendChat(context.Background(), models.ChatRequest{
		Messages:       []models.Message{{Role: models.RoleUser, Content: "ping"}},
		AgentID:        7,
		ConversationID: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Response)
	assert.Equal(t, int64(9), resp.ConversationID)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, int64(12), resp.Usage.TotalTokens)
}

func TestNonSuccessStatusIsNetworkErrorWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"detail":"down"}`)
	})

	_, err := client.ListConversations(context.Background())
	require.Error(t, err)

	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, http.StatusServiceUnavailable, ne.StatusCode)
	assert.Equal(t, "conversations", ne.Endpoint)
	assert.True(t, IsNetworkError(err))
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))
	assert.Contains(t, err.Error(), "status: 503")
	assert.Equal(t, int32(1), calls.Load())
}

func TestNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.GetConversation(context.Background(), 3)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.True(t, ne.NotFound())
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url+"/api").ListAgents(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Equal(t, 0, StatusCode(err))
}

func TestCallerOptionsWin(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, "fixed-id", r.Header.Get(requestIDHeader))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))
		writeJSON(w, map[string]string{"ok": "1"})
	})

	var out map[string]string
	err := client.Request(context.Background(), http.MethodGet, "health", nil, &out,
		option.WithHeader("Content-Type", "text/plain"),
		option.WithHeader(requestIDHeader, "fixed-id"),
		option.WithHeader("X-Extra", "yes"),
	)
	require.NoError(t, err)
	assert.Equal(t, "1", out["ok"])
}

func TestOpenAIEnvironmentIsNotForwarded(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-secret")
	t.Setenv("OPENAI_ORG_ID", "org-x")
	t.Setenv("OPENAI_PROJECT_ID", "proj-x")

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("OpenAI-Organization"))
		assert.Empty(t, r.Header.Get("OpenAI-Project"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		writeJSON(w, []map[string]any{})
	})

	_, err := client.ListAgents(context.Background())
	require.NoError(t, err)
}

func TestUndecodableBodyIsNetworkError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<html>maintenance</html>`)
	})

	_, err := client.ListAgents(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Equal(t, 0, StatusCode(err))
	assert.Contains(t, err.Error(), "decoding response")
}

func TestConversationWithBadTimestampIsKept(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":5,"created_at":"not a date","message_count":1},{"id":6,"created_at":"2025-01-02T03:04:05Z"}]`)
	})

	convs, err := client.ListConversations(context.Background())
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.True(t, convs[0].CreatedAt.IsZero())
	assert.Equal(t, 2025, convs[1].CreatedAt.Year())
}
