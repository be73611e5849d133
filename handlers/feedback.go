package handlers

import (
	"net/http"

	"github.com/Madhulr/to-do-Bend/internal/feedback"
	"github.com/Madhulr/to-do-Bend/pkg/middleware"
	"github.com/gin-gonic/gin"
)

type createFeedbackRequest struct {
	Message string `json:"message"`
	User    string `json:"user"`
}

// FeedbackHandler serves /feedback. There is no update or delete.
type FeedbackHandler struct {
	svc *feedback.Service
}

func NewFeedbackHandler(svc *feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

func (h *FeedbackHandler) Register(rg *gin.RouterGroup) {
	f := rg.Group("/feedback")
	f.GET("", h.List)
	f.POST("", h.Create)
	f.GET("/:id", h.Get)
}

func (h *FeedbackHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.Username(c))
	if err != nil {
		respondError(c, feedbackNotFound, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fb, err := h.svc.Create(c.Request.Context(), req.User, req.Message)
	if err != nil {
		respondError(c, feedbackNotFound, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	fb, err := h.svc.GetOwned(c.Request.Context(), middleware.Username(c), id)
	if err != nil {
		respondError(c, feedbackNotFound, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}
