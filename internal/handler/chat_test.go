package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/trip-planner/backend/internal/handler"
)

// mockChatter is a test double for handler.Chatter.
type mockChatter struct {
	respond func(ctx context.Context, prompt string) (string, error)
}

func (m *mockChatter) Respond(ctx context.Context, prompt string) (string, error) {
	return m.respond(ctx, prompt)
}

var _ handler.Chatter = (*mockChatter)(nil)

func newChatHandler(chat handler.Chatter) http.Handler {
	return handler.NewServer(nil, chat).Routes()
}

func TestChat_200(t *testing.T) {
	var prompt string
	chat := &mockChatter{
		respond: func(_ context.Context, p string) (string, error) {
			prompt = p
			return "the Algarve is lovely in May", nil
		},
	}

	body := jsonBody(t, map[string]any{"message": "where should I go in May?"})
	rec := doJSON(t, newChatHandler(chat), http.MethodPost, "/chat", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "where should I go in May?", prompt)

	var resp struct {
		Response string `json:"response"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "the Algarve is lovely in May", resp.Response)
}

func TestChat_400_MissingMessage(t *testing.T) {
	chat := &mockChatter{
		respond: func(_ context.Context, _ string) (string, error) {
			t.Fatal("chat service must not be reached for an empty message")
			return "", nil
		},
	}

	body := jsonBody(t, map[string]any{"message": "   "})
	rec := doJSON(t, newChatHandler(chat), http.MethodPost, "/chat", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Error)
}

func TestChat_400_MalformedBody(t *testing.T) {
	chat := &mockChatter{}

	rec := doJSON(t, newChatHandler(chat), http.MethodPost, "/chat",
		bytes.NewBufferString("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_502_ProviderFailure(t *testing.T) {
	chat := &mockChatter{
		respond: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("model overloaded")
		},
	}

	body := jsonBody(t, map[string]any{"message": "hi"})
	rec := doJSON(t, newChatHandler(chat), http.MethodPost, "/chat", body)

	// Completion provider failures propagate; they are never swallowed into
	// an empty 200.
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "model overloaded")
}
