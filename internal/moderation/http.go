package moderation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/moderation/check", h.Check)
}

type checkRequest struct {
	Text string `json:"text"`
}

// Check lets the client pre-validate text before submitting a form. The
// same service instance gates server-side writes, so the verdicts agree.
func (h *Handler) Check(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required and must be a string"})
		return
	}

	c.JSON(http.StatusOK, h.svc.Check(c.Request.Context(), req.Text))
}
