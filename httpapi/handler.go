// Copyright 2026 The docsight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/docsight/docsight/ai"
	"github.com/docsight/docsight/core"
	"github.com/docsight/docsight/extract"
	"github.com/docsight/docsight/pipeline"
	"github.com/labstack/echo/v4"
)

// Handler exposes the pipeline over HTTP.
type Handler struct {
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// NewHandler creates an HTTP handler over the pipeline.
func NewHandler(p *pipeline.Pipeline) *Handler {
	return &Handler{
		pipeline: p,
		logger:   slog.Default().With("component", "httpapi"),
	}
}

// Register mounts the handler's routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/upload", h.Upload)
	e.POST("/ask", h.Ask)
	e.GET("/history", h.History)
	e.DELETE("/session", h.DeleteSession)
	e.GET("/healthz", h.Healthz)
}

type uploadResponse struct {
	SessionID string `json:"session_id"`
	Documents int    `json:"documents"`
	Chunks    int    `json:"chunks"`
}

type askRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type sourceResponse struct {
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

type askResponse struct {
	Answer  string           `json:"answer"`
	Sources []sourceResponse `json:"sources,omitempty"`
}

type turnResponse struct {
	Role      string `json:"role"`
	Contents  string `json:"contents"`
	CreatedAt string `json:"created_at"`
}

// Upload ingests multipart files into a session, replacing any
// previously uploaded documents.
// (POST /upload, form fields: session_id + one or more "files")
func (h *Handler) Upload(ctx echo.Context) error {
	sessionID := ctx.FormValue("session_id")

	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid multipart request"})
	}

	var documents []core.Document
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable file: " + fh.Filename})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable file: " + fh.Filename})
		}
		documents = append(documents, core.Document{Name: fh.Filename, Data: data})
	}

	result, err := h.pipeline.Ingest(ctx.Request().Context(), sessionID, documents)
	if err != nil {
		return h.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, uploadResponse{
		SessionID: sessionID,
		Documents: result.Documents,
		Chunks:    result.Chunks,
	})
}

// Ask answers a question against a session's documents.
// (POST /ask)
func (h *Handler) Ask(ctx echo.Context) error {
	var req askRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	answer, err := h.pipeline.Query(ctx.Request().Context(), req.SessionID, req.Question)
	if err != nil {
		return h.errorResponse(ctx, err)
	}

	resp := askResponse{Answer: answer.Text}
	for _, src := range answer.Sources {
		resp.Sources = append(resp.Sources, sourceResponse{Text: src.Chunk.Text, Score: src.Score})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// History returns a session's conversation so far.
// (GET /history?session_id=...)
func (h *Handler) History(ctx echo.Context) error {
	history, err := h.pipeline.History(ctx.Request().Context(), ctx.QueryParam("session_id"))
	if err != nil {
		return h.errorResponse(ctx, err)
	}

	turns := make([]turnResponse, 0, len(history))
	for _, turn := range history {
		turns = append(turns, turnResponse{
			Role:      turn.Role.String(),
			Contents:  turn.Contents,
			CreatedAt: turn.CreatedAt.Format(time.RFC3339),
		})
	}
	return ctx.JSON(http.StatusOK, map[string]any{"turns": turns})
}

// DeleteSession discards a session's documents and history.
// (DELETE /session?session_id=...)
func (h *Handler) DeleteSession(ctx echo.Context) error {
	if err := h.pipeline.Reset(ctx.Request().Context(), ctx.QueryParam("session_id")); err != nil {
		return h.errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Healthz reports liveness.
// (GET /healthz)
func (h *Handler) Healthz(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// errorResponse maps pipeline errors onto HTTP statuses. Input problems
// are the caller's fault, timeouts map to gateway timeout, and the rest
// of the service failures map to bad gateway.
func (h *Handler) errorResponse(ctx echo.Context, err error) error {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, core.ErrEmptySessionID),
		errors.Is(err, core.ErrNoDocuments),
		errors.Is(err, core.ErrEmptyDocument),
		errors.Is(err, core.ErrEmptyQuestion),
		errors.Is(err, extract.ErrExtraction):
		status = http.StatusBadRequest
	case errors.Is(err, ai.ErrTimeout):
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", ctx.Path(), "err", err)
	}
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}
