package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublic mounts the routes that run without a verified ID token.
func (h *Handler) RegisterPublic(r gin.IRouter) {
	g := r.Group("/auth")
	g.POST("/signup", h.Signup)
	g.POST("/password-reset", h.PasswordReset)
	g.POST("/resend-verification", h.ResendVerification)
}

// RegisterProtected mounts the routes that need an authenticated caller.
func (h *Handler) RegisterProtected(r gin.IRouter) {
	r.GET("/auth/me", h.Me)
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.svc.Signup(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		case errors.Is(err, ErrWeakPassword), errors.Is(err, ErrInvalidSignup):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[auth] signup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create account."})
		}
		return
	}
	c.JSON(http.StatusCreated, res)
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) PasswordReset(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if _, err := h.svc.PasswordResetLink(c.Request.Context(), req.Email); err != nil {
		// Same response either way so the endpoint can't be used to probe
		// for registered addresses.
		log.Printf("[auth] password reset link failed: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "If that email is registered, a reset link has been sent."})
}

func (h *Handler) ResendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	link, err := h.svc.ResendVerification(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("[auth] resend verification failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resend verification email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification email resent. Please check your inbox (and spam).", "verificationLink": link})
}

// Me reports the token's identity plus the live verification flag, which
// the token may not reflect yet right after the user clicks the link.
func (h *Handler) Me(c *gin.Context) {
	uid := UserUID(c)
	verified, err := h.svc.EmailVerified(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check verification status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"uid": uid, "email": UserEmail(c), "emailVerified": verified})
}
