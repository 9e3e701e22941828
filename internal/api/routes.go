package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mycv/internal/api/middleware"
	"mycv/internal/printing"
)

// Dependencies 汇总路由需要的外部资源。
type Dependencies struct {
	DB             *gorm.DB
	Queue          TaskEnqueuer
	Storage        ObjectStorage
	Redis          *redis.Client
	Validator      middleware.TokenValidator
	Printer        *printing.Service
	Logger         *slog.Logger
	ClamdAddr      string
	AllowedOrigins []string
	MaxResumes     int
}

// RegisterRoutes 注册 API 路由，统一挂在 /v1 下。
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	var counter redisRateCounter
	if deps.Redis != nil {
		counter = deps.Redis
	}

	resumeHandler := NewResumeHandler(deps.DB, deps.Queue, deps.Storage, deps.Printer, counter, deps.Logger, deps.MaxResumes)
	templateHandler := NewTemplateHandler(deps.DB, deps.Printer)
	assetHandler := NewAssetHandler(deps.Logger, deps.ClamdAddr, counter)
	wsHandler := NewWsHandler(deps.Redis, deps.Validator, deps.Logger, deps.AllowedOrigins)
	authMiddleware := middleware.AuthMiddleware(deps.Validator)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)
		v1.GET("/templates", templateHandler.ListTemplates)
		v1.GET("/design/options", templateHandler.DesignOptions)
		v1.POST("/format", templateHandler.Format)
		v1.POST("/render", authMiddleware, templateHandler.Render)

		resumeGroup := v1.Group("/resumes")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.GET("/:id/print", resumeHandler.PrintResume)
			resumeGroup.POST("/:id/export", resumeHandler.ExportResume)
			resumeGroup.GET("/:id/download-link", resumeHandler.GetDownloadLink)
		}

		assetGroup := v1.Group("/assets")
		assetGroup.Use(authMiddleware)
		{
			assetGroup.POST("/photo", assetHandler.UploadPhoto)
		}
	}
}
