package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ethical-careers/ethical-careers-backend/config"
	httpapi "github.com/ethical-careers/ethical-careers-backend/internal/api/http"
	apimw "github.com/ethical-careers/ethical-careers-backend/internal/api/http/middleware"
	"github.com/ethical-careers/ethical-careers-backend/internal/auth"
	authmw "github.com/ethical-careers/ethical-careers-backend/internal/auth/middleware"
	"github.com/ethical-careers/ethical-careers-backend/internal/comments"
	"github.com/ethical-careers/ethical-careers-backend/internal/companies"
	"github.com/ethical-careers/ethical-careers-backend/internal/moderation"
	"github.com/ethical-careers/ethical-careers-backend/internal/reviews"
	"github.com/ethical-careers/ethical-careers-backend/internal/surveys"
	"github.com/ethical-careers/ethical-careers-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	Firebase    *Firebase
	Redis       *redis.Client
}

// BuildRouter wires repositories, services, and handlers onto a Gin engine.
// Everything under /api/v1 requires a verified Firebase ID token.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(apimw.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.Cfg.Server)))

	fs := dep.Firebase.Firestore

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, fs, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(fs)
	companyRepo := companies.NewRepo(fs)
	reviewRepo := reviews.NewRepo(fs)
	commentRepo := comments.NewRepo(fs)
	surveyRepo := surveys.NewRepo(fs)

	gate := buildGate(dep.Cfg, dep.Redis)

	reviewSvc := reviews.NewService(reviewRepo, gate, userRepo)
	commentSvc := comments.NewService(commentRepo, gate, userRepo)
	surveySvc := surveys.NewService(surveyRepo, surveys.Thresholds{
		PostSurveyDelay:   dep.Cfg.Survey.PostSurveyDelay,
		GlobalSurveyDelay: dep.Cfg.Survey.GlobalSurveyDelay,
	})
	userSvc := users.NewService(userRepo, reviewRepo, commentRepo)

	authSvc := auth.NewService(dep.Firebase.Auth, userRepo, auth.ActionSettings(dep.Cfg.App))
	authHandler := auth.NewHandler(authSvc)

	// Signup, password reset, and the moderation preview run before the
	// caller has a token.
	public := r.Group("/api/v1")
	authHandler.RegisterPublic(public)
	moderation.NewHandler(gate).Register(public)

	api := r.Group("/api/v1")
	api.Use(authmw.FirebaseAuth(dep.Firebase.Auth))

	authHandler.RegisterProtected(api)
	users.NewHandler(userSvc).Register(api)
	companies.NewHandler(companyRepo).Register(api)
	reviews.NewHandler(reviewSvc).Register(api)
	comments.NewHandler(commentSvc).Register(api)
	surveys.NewHandler(surveySvc).Register(api)

	return r
}

func buildGate(cfg *config.Config, rdb *redis.Client) *moderation.Service {
	client := moderation.NewClient(cfg.Moderation.Endpoint, cfg.Moderation.APIKey, cfg.Moderation.RateLimit)
	cache := moderation.NewCache(rdb, cfg.Moderation.CacheTTL)
	return moderation.NewService(client, cache, moderation.ThresholdsFromConfig(cfg.Moderation))
}

func corsConfig(cfg config.ServerConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = cfg.AllowedOrigins
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-Id")
	c.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	return c
}
