package handlers

import (
	"net/http"

	"github.com/Madhulr/to-do-Bend/internal/activity"
	"github.com/gin-gonic/gin"
)

// ActivityHandler serves the cross-user summary and the per-user detail view.
type ActivityHandler struct {
	svc *activity.Service
}

func NewActivityHandler(svc *activity.Service) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

func (h *ActivityHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/user-activities", h.ListAll)
	rg.GET("/user-details/:username", h.Detail)
}

func (h *ActivityHandler) ListAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, "", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ActivityHandler) Detail(c *gin.Context) {
	d, err := h.svc.Detail(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, "", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// RegisterRoot serves the fixed liveness message on GET /.
func RegisterRoot(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is running"})
	})
}
