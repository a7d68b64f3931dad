// Package router wires the HTTP route table.
package router

import (
	"github.com/gin-gonic/gin"

	accounthandler "blog_backend/internal/feature/accounts/transport/handler"
	posthandler "blog_backend/internal/feature/posts/transport/handler"
	"blog_backend/internal/platform/http/handler"
	jwtmw "blog_backend/internal/platform/jwt"
)

// NewRouter assembles the gin engine with all application routes.
func NewRouter(accounts *accounthandler.AccountHandler, posts *posthandler.PostHandler) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)

	api := r.Group("/api")

	// Open account endpoints
	api.POST("/register", accounts.Register)
	api.GET("/verify-email/:uid/:token", accounts.VerifyEmail)
	api.POST("/login", accounts.Login)
	api.POST("/token/refresh", accounts.Refresh)
	api.POST("/password-reset", accounts.RequestPasswordReset)
	api.POST("/password-reset-confirm/:uid/:token", accounts.ConfirmPasswordReset)

	// Open post endpoints. The detail route takes an optional bearer token
	// so authors can fetch their own drafts.
	api.GET("/posts", posts.List)
	api.GET("/posts/:id", jwtmw.AuthOptional(), posts.Get)

	// Authenticated routes
	auth := api.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/profile", accounts.Profile)
		auth.PATCH("/profile", accounts.UpdateProfile)

		auth.POST("/posts", posts.Create)
		auth.GET("/posts/my_drafts", posts.MyDrafts)
		auth.PUT("/posts/:id", posts.Update)
		auth.PATCH("/posts/:id", posts.Update)
		auth.DELETE("/posts/:id", posts.Delete)
		auth.POST("/posts/:id/publish", posts.Publish)
		auth.POST("/posts/:id/unpublish", posts.Unpublish)
	}

	return r
}
