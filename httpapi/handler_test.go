package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docsight/docsight/ai"
	"github.com/docsight/docsight/ai/mock"
	"github.com/docsight/docsight/httpapi"
	"github.com/docsight/docsight/pipeline"
	"github.com/docsight/docsight/session"
	storagebadger "github.com/docsight/docsight/storage/badger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*echo.Echo, *mock.MockProvider) {
	t.Helper()

	history, backend, err := storagebadger.NewMemoryHistory()
	require.NoError(t, err)
	t.Cleanup(func() {
		history.Close()
		backend.Close()
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	sessions := session.NewStore(session.WithPurger(history))
	p, err := pipeline.NewPipeline(sessions, history, provider)
	require.NoError(t, err)
	t.Cleanup(p.Release)

	e := echo.New()
	httpapi.NewHandler(p).Register(e)
	return e, provider
}

func multipartUpload(t *testing.T, sessionID string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("session_id", sessionID))
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadAndAsk(t *testing.T) {
	e, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "user-1", map[string]string{
		"policy.txt": "All refunds are processed within fourteen days.",
	})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var uploadResp struct {
		SessionID string `json:"session_id"`
		Documents int    `json:"documents"`
		Chunks    int    `json:"chunks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploadResp))
	assert.Equal(t, "user-1", uploadResp.SessionID)
	assert.Equal(t, 1, uploadResp.Documents)
	assert.GreaterOrEqual(t, uploadResp.Chunks, 1)

	askBody := strings.NewReader(`{"session_id":"user-1","question":"How fast are refunds?"}`)
	req = httptest.NewRequest(http.MethodPost, "/ask", askBody)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var askResp struct {
		Answer  string `json:"answer"`
		Sources []struct {
			Text  string  `json:"text"`
			Score float32 `json:"score"`
		} `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &askResp))
	assert.Equal(t, "answer to How fast are refunds?", askResp.Answer)
	require.NotEmpty(t, askResp.Sources)
	assert.Contains(t, askResp.Sources[0].Text, "refunds")
}

func TestAskBeforeUpload(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/ask",
		strings.NewReader(`{"session_id":"user-1","question":"Anything?"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Answer string `json:"answer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, pipeline.NotReadyAnswer, resp.Answer)
}

func TestInputErrorsAreBadRequests(t *testing.T) {
	e, _ := newTestServer(t)

	t.Run("missing session on ask", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ask",
			strings.NewReader(`{"question":"hello"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty question", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ask",
			strings.NewReader(`{"session_id":"user-1","question":"  "}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upload without files", func(t *testing.T) {
		body, contentType := multipartUpload(t, "user-1", nil)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upload invalid pdf", func(t *testing.T) {
		body, contentType := multipartUpload(t, "user-1", map[string]string{
			"broken.pdf": "this is not a pdf",
		})
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServiceErrorsMapToGatewayStatuses(t *testing.T) {
	e, provider := newTestServer(t)

	body, contentType := multipartUpload(t, "user-1", map[string]string{
		"doc.txt": "Indexed content.",
	})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("timeout is 504", func(t *testing.T) {
		provider.GetMockEmbedder().EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
			return nil, ai.ClassifyServiceError(ai.ErrEmbeddingService, context.DeadlineExceeded)
		}
		defer func() { provider.GetMockEmbedder().EmbedTextFunc = nil }()

		req := httptest.NewRequest(http.MethodPost, "/ask",
			strings.NewReader(`{"session_id":"user-1","question":"slow?"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})

	t.Run("embedding failure is 502", func(t *testing.T) {
		provider.GetMockEmbedder().EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
			return nil, ai.ClassifyServiceError(ai.ErrEmbeddingService, errors.New("connection refused"))
		}
		defer func() { provider.GetMockEmbedder().EmbedTextFunc = nil }()

		req := httptest.NewRequest(http.MethodPost, "/ask",
			strings.NewReader(`{"session_id":"user-1","question":"up?"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHistoryAndDeleteSession(t *testing.T) {
	e, _ := newTestServer(t)

	body, contentType := multipartUpload(t, "user-1", map[string]string{
		"doc.txt": "Some content.",
	})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/ask",
		strings.NewReader(`{"session_id":"user-1","question":"What content?"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/history?session_id=user-1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var histResp struct {
		Turns []struct {
			Role     string `json:"role"`
			Contents string `json:"contents"`
		} `json:"turns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &histResp))
	require.Len(t, histResp.Turns, 2)
	assert.Equal(t, "user", histResp.Turns[0].Role)
	assert.Equal(t, "assistant", histResp.Turns[1].Role)

	req = httptest.NewRequest(http.MethodDelete, "/session?session_id=user-1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/history?session_id=user-1", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	histResp.Turns = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &histResp))
	assert.Empty(t, histResp.Turns)
}

func TestHealthz(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
