package queries

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docquery-backend/internal/llm"
	"docquery-backend/internal/shared/server/middleware"
	"docquery-backend/internal/shared/server/respond"
	"docquery-backend/internal/shared/storage/search"
)

// askTimeout bounds the embedding and generation calls behind one question.
const askTimeout = 60 * time.Second

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches query routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/queries/query", h.ask)
	rg.GET("/queries/search", h.searchContent)
	rg.GET("/queries/search/title", h.searchTitle)
	rg.GET("/queries/search/user", h.searchOwned)
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *Handler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ctx, cancel := contextWithAskTimeout(c)
	defer cancel()

	answer, err := h.Svc.Ask(ctx, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoCorpus):
			respond.Error(c, http.StatusNotFound, "no_corpus", "no documents available to answer from", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "llm_unavailable", "semantic queries are not configured", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "query_failed", "failed to answer question", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"question": req.Question,
		"answer":   answer,
	})
}

func (h *Handler) searchContent(c *gin.Context) {
	hits, err := h.Svc.SearchContent(c.Request.Context(), c.Query("q"))
	h.respondSearch(c, hits, err)
}

func (h *Handler) searchTitle(c *gin.Context) {
	hits, err := h.Svc.SearchTitle(c.Request.Context(), c.Query("q"))
	h.respondSearch(c, hits, err)
}

func (h *Handler) searchOwned(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	hits, err := h.Svc.SearchOwned(c.Request.Context(), userID, c.Query("q"))
	h.respondSearch(c, hits, err)
}

func (h *Handler) respondSearch(c *gin.Context, hits []search.Hit, err error) {
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "search_unavailable", "search request failed", nil)
		}
		return
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"results": hits})
}

func contextWithAskTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), askTimeout)
}
