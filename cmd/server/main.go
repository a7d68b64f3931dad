package main

import (
	"log"
	"time"

	"blog_backend/internal/app/router"
	accountadapters "blog_backend/internal/feature/accounts/adapters"
	accounthandler "blog_backend/internal/feature/accounts/transport/handler"
	accountusecase "blog_backend/internal/feature/accounts/usecase"
	postadapters "blog_backend/internal/feature/posts/adapters"
	posthandler "blog_backend/internal/feature/posts/transport/handler"
	postusecase "blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/platform/cache"
	"blog_backend/internal/platform/config"
	platformdb "blog_backend/internal/platform/db"
	"blog_backend/internal/platform/email"
	jwtmw "blog_backend/internal/platform/jwt"
	platformredis "blog_backend/internal/platform/redis"
	"blog_backend/internal/platform/session"
	"blog_backend/internal/platform/token"
	"blog_backend/internal/shared/ratelimiter"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := platformdb.OpenDB()

	// Redis: required for refresh sessions, optional for the post cache
	rdb, err := platformredis.NewRedisClient()
	if err != nil {
		log.Fatal("[ERROR] Redis unavailable:", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Println("[ERROR] Failed to close Redis client:", err)
		}
	}()

	// Repositories
	userRepo := accountadapters.NewUserGorm(db)
	sessionRepo := session.NewSessionRedis(rdb, "session")
	postRepo := postadapters.NewPostGorm(db)

	// Wrap post lookups with the Redis read-through cache
	var cachedPostRepo postusecase.PostRepository = cache.NewCachingPostRepository(rdb, 5*time.Minute, postRepo, "posts")

	// Platform services
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL)
	linkTokens := token.NewIssuer(cfg.TokenSecret, cfg.LinkTokenTTL)
	mailLimiter := ratelimiter.NewRateLimiter(10, time.Minute)
	mailer := email.NewService(cfg, mailLimiter)

	// Usecases
	accountUC := accountusecase.NewAccountUsecase(userRepo, sessionRepo, jwtGen, linkTokens, mailer, cfg.RefreshTokenTTL)
	postUC := postusecase.NewPostUsecase(cachedPostRepo)

	// Handlers
	accountH := accounthandler.NewAccountHandler(accountUC)
	postH := posthandler.NewPostHandler(postUC)

	r := router.NewRouter(accountH, postH)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
