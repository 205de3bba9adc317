package conversations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/louenes/lectura/internal/auth"
	"github.com/louenes/lectura/internal/conversation"
	"github.com/louenes/lectura/pkg/sdk"
)

type stubAsker struct {
	answer string
	chat   conversation.ChatLog
	err    error

	gotUserID     string
	gotIdentifier string
	gotQuestion   string
	gotSourceHint string
}

func (s *stubAsker) Ask(ctx context.Context, userID, identifier, question, sourceHint string) (string, conversation.ChatLog, error) {
	s.gotUserID = userID
	s.gotIdentifier = identifier
	s.gotQuestion = question
	s.gotSourceHint = sourceHint
	return s.answer, s.chat, s.err
}

type stubStore struct {
	created *conversation.Conversation
	byID    map[uuid.UUID]*conversation.Conversation
	deleted []uuid.UUID
}

func (s *stubStore) Create(ctx context.Context, conv *conversation.Conversation) error {
	s.created = conv
	return nil
}

func (s *stubStore) FindByID(ctx context.Context, id uuid.UUID) (*conversation.Conversation, error) {
	if conv, ok := s.byID[id]; ok {
		return conv, nil
	}
	return nil, conversation.ErrNotFound
}

func (s *stubStore) ListByUser(ctx context.Context, userID string) ([]conversation.Conversation, error) {
	var out []conversation.Conversation
	for _, conv := range s.byID {
		if conv.UserID == userID {
			out = append(out, *conv)
		}
	}
	return out, nil
}

func (s *stubStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestRouter(asker Asker, store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	authn := func(c *gin.Context) { c.Set(auth.UserIDKey, "user-1") }
	RegisterRoutes(engine.Group("/api"), NewController(asker, store, zap.NewNop()), authn)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAskEndpoint(t *testing.T) {
	t.Run("success returns answer and chat", func(t *testing.T) {
		asker := &stubAsker{
			answer: "X is explained at minute 3",
			chat: conversation.ChatLog{
				{Question: "What is X?", Answer: "X is explained at minute 3"},
			},
		}
		engine := newTestRouter(asker, &stubStore{})

		rec := doRequest(t, engine, http.MethodPost, "/api/conversations/ask",
			`{"identifier":"abc123","question":"What is X?","source_url":"https://youtu.be/abc123"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", asker.gotUserID, "ask is scoped to the authenticated caller")
		assert.Equal(t, "abc123", asker.gotIdentifier)
		assert.Equal(t, "What is X?", asker.gotQuestion)
		assert.Equal(t, "https://youtu.be/abc123", asker.gotSourceHint)

		var resp sdk.ApiResponse[sdk.AskResponse]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, sdk.StatusSuccess, resp.Status)
		assert.Equal(t, "X is explained at minute 3", resp.Data.Answer)
		require.Len(t, resp.Data.Chat, 1)
	})

	t.Run("missing question is a 400", func(t *testing.T) {
		engine := newTestRouter(&stubAsker{}, &stubStore{})

		rec := doRequest(t, engine, http.MethodPost, "/api/conversations/ask", `{"identifier":"abc123"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error taxonomy maps onto status codes", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"not found", conversation.ErrNotFound, http.StatusNotFound},
			{"ambiguous", conversation.ErrAmbiguousReference, http.StatusNotFound},
			{"missing source hint", conversation.ErrMissingSourceReference, http.StatusBadRequest},
			{"transcript unavailable", conversation.ErrTranscriptUnavailable, http.StatusBadGateway},
			{"vanished", conversation.ErrConversationVanished, http.StatusNotFound},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				engine := newTestRouter(&stubAsker{err: tt.err}, &stubStore{})

				rec := doRequest(t, engine, http.MethodPost, "/api/conversations/ask",
					`{"identifier":"abc123","question":"Q?"}`)

				assert.Equal(t, tt.want, rec.Code)

				var resp sdk.ApiResponse[any]
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, sdk.StatusError, resp.Status)
			})
		}
	})
}

func TestCreateConversationEndpoint(t *testing.T) {
	t.Run("creates for the authenticated user", func(t *testing.T) {
		store := &stubStore{}
		engine := newTestRouter(&stubAsker{}, store)

		rec := doRequest(t, engine, http.MethodPost, "/api/conversations",
			`{"source_url":"https://www.youtube.com/watch?v=abc123","transcript":"lecture text"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, store.created)
		assert.Equal(t, "user-1", store.created.UserID)
		assert.Equal(t, "Untitled Video", store.created.Title)
		require.NotNil(t, store.created.Transcript)
		assert.Equal(t, "lecture text", *store.created.Transcript)
	})

	t.Run("rejects a non-YouTube source URL", func(t *testing.T) {
		store := &stubStore{}
		engine := newTestRouter(&stubAsker{}, store)

		rec := doRequest(t, engine, http.MethodPost, "/api/conversations",
			`{"source_url":"https://example.com/video"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, store.created)
	})
}

func TestGetConversationEndpoint(t *testing.T) {
	owned := conversation.New("user-1", "Mine", "https://youtu.be/abc123", nil)
	foreign := conversation.New("user-2", "Not mine", "https://youtu.be/zzz999", nil)
	store := &stubStore{byID: map[uuid.UUID]*conversation.Conversation{
		owned.ID:   owned,
		foreign.ID: foreign,
	}}
	engine := newTestRouter(&stubAsker{}, store)

	t.Run("owner gets the conversation", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/conversations/"+owned.ID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)

		var resp sdk.ApiResponse[sdk.Conversation]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, owned.ID.String(), resp.Data.ID)
	})

	t.Run("someone else's conversation looks absent", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/conversations/"+foreign.ID.String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/conversations/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteConversationEndpoint(t *testing.T) {
	owned := conversation.New("user-1", "Mine", "https://youtu.be/abc123", nil)
	store := &stubStore{byID: map[uuid.UUID]*conversation.Conversation{owned.ID: owned}}
	engine := newTestRouter(&stubAsker{}, store)

	rec := doRequest(t, engine, http.MethodDelete, "/api/conversations/"+owned.ID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.deleted, 1)
	assert.Equal(t, owned.ID, store.deleted[0])
}
