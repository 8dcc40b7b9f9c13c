package comments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethical-careers/ethical-careers-backend/internal/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/reviews/:id/comments", h.ListByReview)
	r.POST("/reviews/:id/comments", h.Add)

	g := r.Group("/comments")
	g.POST("/:id/like", h.ToggleLike)
	g.DELETE("/:id", h.Delete)
}

type addRequest struct {
	Text string `json:"text"`
}

func (h *Handler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cm, err := h.svc.Add(c.Request.Context(), auth.UserUID(c), c.Param("id"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrBlocked):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to post comment"})
		}
		return
	}
	c.JSON(http.StatusCreated, cm)
}

func (h *Handler) ListByReview(c *gin.Context) {
	list, err := h.svc.ListByReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": list})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	cm, err := h.svc.ToggleLike(c.Request.Context(), c.Param("id"), auth.UserUID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update like"})
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"), auth.UserUID(c))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own comments"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
	}
}
