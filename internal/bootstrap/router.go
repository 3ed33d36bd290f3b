package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/zerotocryptodev/backend/config"
	"github.com/zerotocryptodev/backend/internal/admin"
	"github.com/zerotocryptodev/backend/internal/ai"
	httpapi "github.com/zerotocryptodev/backend/internal/api/http"
	"github.com/zerotocryptodev/backend/internal/api/http/middleware"
	"github.com/zerotocryptodev/backend/internal/auth"
	"github.com/zerotocryptodev/backend/internal/chains"
	"github.com/zerotocryptodev/backend/internal/format"
	"github.com/zerotocryptodev/backend/internal/lessons"
	"github.com/zerotocryptodev/backend/internal/pages"
	"github.com/zerotocryptodev/backend/internal/profiles"
	"github.com/zerotocryptodev/backend/internal/projects"
	"github.com/zerotocryptodev/backend/internal/ratelimit"
	"github.com/zerotocryptodev/backend/internal/shares"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Logger      zerolog.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Config.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Config.App.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	verifier := auth.NewVerifier(dep.Config.Supabase.JWTSecret)

	profileRepo := profiles.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	lessonRepo := lessons.NewRepo(dep.DB)
	shareRepo := shares.NewRepo(dep.DB)

	aiClient := ai.NewClient(ai.Options{
		BaseURL:   dep.Config.Anthropic.BaseURL,
		APIKey:    dep.Config.Anthropic.APIKey,
		Model:     dep.Config.Anthropic.Model,
		MaxTokens: dep.Config.Anthropic.MaxTokens,
	})
	formatClient := format.NewClient(dep.Config.Formatter.BaseURL)
	limiter := ratelimit.NewLimiter(dep.Redis, dep.Logger)
	allowlist := admin.NewAllowlist(dep.Config.App.AdminEmails)
	chainConfig := chains.New(dep.Config.App.SepoliaRPC)

	api := r.Group("/api")
	api.Use(auth.WithUser(verifier))

	aiGroup := api.Group("/ai")
	aiGroup.Use(limiter.Middleware("ai", ratelimit.AIPolicy))
	ai.Register(aiGroup, aiClient, dep.Logger)

	format.Register(api, formatClient, dep.Logger)
	shares.Register(api, shareRepo, dep.Logger)
	profiles.Register(api, profileRepo, dep.Logger)
	projects.Register(api.Group("/projects"), projectRepo, lessonRepo, dep.Logger)
	admin.Register(api.Group("/admin"), allowlist, dep.DB, dep.Logger)
	chains.Register(api.Group("/config"), chainConfig)

	pagesGroup := r.Group("/pages")
	pagesGroup.Use(auth.WithUser(verifier))
	pages.Register(pagesGroup, profileRepo, projectRepo, lessonRepo, dep.Logger)

	return r
}
