package reviews

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
	r.GET("/companies/:slug/reviews", h.ListByCompany)
	r.POST("/companies/:slug/reviews", h.Submit)

	g := r.Group("/reviews")
	g.GET("", h.ListAll)
	g.POST("/:id/like", h.ToggleLike)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Submit(c *gin.Context) {
	var in SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	in.CompanySlug = c.Param("slug")

	rev, err := h.svc.Submit(c.Request.Context(), auth.UserUID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrBlocked):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error submitting review"})
		}
		return
	}
	c.JSON(http.StatusCreated, rev)
}

func (h *Handler) ListByCompany(c *gin.Context) {
	revs, err := h.svc.ListByCompany(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": revs})
}

func (h *Handler) ListAll(c *gin.Context) {
	revs, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": revs})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	rev, err := h.svc.ToggleLike(c.Request.Context(), c.Param("id"), auth.UserUID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update like"})
		return
	}
	c.JSON(http.StatusOK, rev)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"), auth.UserUID(c))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own reviews"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
	}
}
