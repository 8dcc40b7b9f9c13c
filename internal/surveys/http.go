package surveys

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
	g := r.Group("/surveys")
	g.GET("/status", h.Status)
	g.POST("/signup", h.SubmitSignup)
	g.POST("/pre", h.SubmitPre)
	g.POST("/post", h.SubmitPost)
	g.POST("/global", h.SubmitGlobal)
}

// Status drives the page-level triggers: company pages pass ?company=<slug>
// to learn whether to mount the pre/post modal, the home page omits it.
func (h *Handler) Status(c *gin.Context) {
	uid := auth.UserUID(c)
	report := h.svc.Status(c.Request.Context(), uid, c.Query("company"))
	c.JSON(http.StatusOK, report)
}

func (h *Handler) SubmitPre(c *gin.Context) {
	var res PreSurveyResponse
	if err := c.ShouldBindJSON(&res); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.finish(c, h.svc.SubmitPre(c.Request.Context(), auth.UserUID(c), res))
}

func (h *Handler) SubmitPost(c *gin.Context) {
	var res PostSurveyResponse
	if err := c.ShouldBindJSON(&res); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.finish(c, h.svc.SubmitPost(c.Request.Context(), auth.UserUID(c), res))
}

func (h *Handler) SubmitGlobal(c *gin.Context) {
	var res GlobalSurveyResponse
	if err := c.ShouldBindJSON(&res); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.finish(c, h.svc.SubmitGlobal(c.Request.Context(), auth.UserUID(c), res))
}

func (h *Handler) SubmitSignup(c *gin.Context) {
	var res SignupSurveyResponse
	if err := c.ShouldBindJSON(&res); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.finish(c, h.svc.SubmitSignup(c.Request.Context(), auth.UserUID(c), res))
}

func (h *Handler) finish(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrPreSurveyRequired):
		c.JSON(http.StatusConflict, gin.H{"error": ErrPreSurveyRequired.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit survey. Please try again."})
	}
}
