package companies

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Lister is the read surface handlers need; *Repo satisfies it.
type Lister interface {
	Create(ctx context.Context, name, industry, description string) (*Company, error)
	Get(ctx context.Context, slug string) (*Company, error)
	List(ctx context.Context) ([]Company, error)
}

type Handler struct {
	repo Lister
}

func NewHandler(repo Lister) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/companies")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:slug", h.Get)
}

type createRequest struct {
	Name        string `json:"name" binding:"required"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	company, err := h.repo.Create(c.Request.Context(), req.Name, req.Industry, req.Description)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "company already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create company"})
		return
	}
	c.JSON(http.StatusCreated, company)
}

// List supports the directory page's substring search and industry filter.
// Firestore has no substring queries, so filtering happens here, the same
// place the original filtered its fetched list.
func (h *Handler) List(c *gin.Context) {
	all, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list companies"})
		return
	}

	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	industry := c.Query("industry")

	out := make([]Company, 0, len(all))
	for _, company := range all {
		if search != "" && !strings.Contains(strings.ToLower(company.Name), search) {
			continue
		}
		if industry != "" && company.Industry != industry {
			continue
		}
		out = append(out, company)
	}
	c.JSON(http.StatusOK, gin.H{"companies": out})
}

func (h *Handler) Get(c *gin.Context) {
	company, err := h.repo.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load company"})
		return
	}
	c.JSON(http.StatusOK, company)
}
