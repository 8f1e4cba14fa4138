package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bsanalyst/backend/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Companies *CompanyHandler
	Documents *DocumentHandler
	Ask       *AskHandler
	Status    *StatusHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/health", deps.Status.Health)
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/seed/admin", deps.Auth.SeedAdmin)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/users", deps.Auth.CreateUser)
	authGroup.GET("/users", deps.Auth.ListUsers)

	authGroup.POST("/companies", deps.Companies.Create)
	authGroup.GET("/companies", deps.Companies.List)
	authGroup.POST("/companies/access", deps.Companies.GrantAccess)

	authGroup.GET("/documents", deps.Documents.List)
	authGroup.DELETE("/documents/:id", deps.Documents.Delete)
	authGroup.POST("/documents/ingest", deps.Documents.Ingest)

	authGroup.POST("/ask", deps.Ask.Ask)
	authGroup.GET("/ai/status", deps.Status.AIStatus)
}
