package users

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
	g := r.Group("/users")
	g.GET("/me", h.Me)
	g.PATCH("/me", h.UpdateMe)
	g.GET("/:uid", h.Public)
}

func (h *Handler) Me(c *gin.Context) {
	p, err := h.svc.Me(c.Request.Context(), auth.UserUID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": p})
}

type updateMeRequest struct {
	Bio string `json:"bio"`
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.svc.UpdateBio(c.Request.Context(), auth.UserUID(c), req.Bio)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": p})
}

func (h *Handler) Public(c *gin.Context) {
	p, err := h.svc.Public(c.Request.Context(), c.Param("uid"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}
