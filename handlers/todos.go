package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Madhulr/to-do-Bend/internal/todos"
	"github.com/Madhulr/to-do-Bend/pkg/middleware"
	"github.com/gin-gonic/gin"
)

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	User        string `json:"user"`
}

// updateTodoRequest only carries completed; other fields in the payload are dropped.
type updateTodoRequest struct {
	Completed *bool `json:"completed"`
}

// TodoHandler serves /todos.
type TodoHandler struct {
	svc *todos.Service
}

func NewTodoHandler(svc *todos.Service) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Register routes under /todos
func (h *TodoHandler) Register(rg *gin.RouterGroup) {
	t := rg.Group("/todos")
	t.GET("", h.List)
	t.POST("", h.Create)
	t.GET("/:id", h.Get)
	t.PATCH("/:id", h.UpdateCompleted)
	t.DELETE("/:id", h.Delete)
}

func (h *TodoHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.Username(c))
	if err != nil {
		respondError(c, todoNotFound, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), req.User, req.Title, req.Description)
	if err != nil {
		respondError(c, todoNotFound, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.svc.GetOwned(c.Request.Context(), middleware.Username(c), id)
	if err != nil {
		respondError(c, todoNotFound, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TodoHandler) UpdateCompleted(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.UpdateCompleted(c.Request.Context(), middleware.Username(c), id, req.Completed)
	if err != nil {
		respondError(c, todoNotFound, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.Username(c), id); err != nil {
		respondError(c, todoNotFound, err)
		return
	}
	c.Status(http.StatusNoContent)
}
