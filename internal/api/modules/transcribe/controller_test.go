package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/louenes/lectura/internal/providers/supadata"
	"github.com/louenes/lectura/pkg/sdk"
)

type stubFetcher struct {
	resp *supadata.Response
	err  error

	gotReq supadata.Request
}

func (s *stubFetcher) Fetch(ctx context.Context, req supadata.Request) (*supadata.Response, error) {
	s.gotReq = req
	return s.resp, s.err
}

func newTestRouter(fetcher Fetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(engine.Group("/api"), NewController(fetcher, zap.NewNop()))
	return engine
}

func TestTranscribeEndpoint(t *testing.T) {
	t.Run("proxies url, lang and chunkSize as a text request", func(t *testing.T) {
		fetcher := &stubFetcher{resp: &supadata.Response{Content: "lecture text", Lang: "en"}}
		engine := newTestRouter(fetcher)

		req := httptest.NewRequest(http.MethodGet,
			"/api/transcribe?url=https%3A%2F%2Fyoutu.be%2Fabc123&lang=en&chunkSize=512", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://youtu.be/abc123", fetcher.gotReq.URL)
		assert.Equal(t, "en", fetcher.gotReq.Lang)
		assert.Equal(t, 512, fetcher.gotReq.ChunkSize)
		assert.True(t, fetcher.gotReq.Text)

		var resp sdk.ApiResponse[sdk.TranscribeResponse]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "lecture text", resp.Data.Content)
	})

	t.Run("missing url and videoId is a 400", func(t *testing.T) {
		engine := newTestRouter(&stubFetcher{})

		req := httptest.NewRequest(http.MethodGet, "/api/transcribe", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("provider failure is a 502", func(t *testing.T) {
		engine := newTestRouter(&stubFetcher{err: errors.New("upstream down")})

		req := httptest.NewRequest(http.MethodGet, "/api/transcribe?videoId=abc123", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
