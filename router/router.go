package router

import (
	"net/http"
	"time"

	"fincontrol/api"
	"fincontrol/config"
	_ "fincontrol/docs"
	"fincontrol/middleware"
	"fincontrol/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter monta as rotas da API
func SetupRouter(cfg *config.Config, mailer *service.EmailService, store *service.LocalStore) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), CORSMiddleware())
	r.MaxMultipartMemory = int64(cfg.Storage.MaxUploadMB) << 20

	// comprovantes enviados
	if store != nil {
		r.Static(store.PublicPath(), store.Dir())
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var proofs service.ProofStore
	if store != nil {
		proofs = store
	}

	authHandler := api.NewAuthHandler(cfg)
	userHandler := api.NewUserHandler(cfg, mailer)
	categoryHandler := api.NewCategoryHandler()
	transactionHandler := api.NewTransactionHandler(cfg, mailer)
	dashboardHandler := api.NewDashboardHandler(cfg)
	planHandler := api.NewPaymentPlanHandler(cfg, proofs)
	exportHandler := api.NewExportHandler()

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", middleware.LoginRateLimit(cfg.Server.LoginRateLimit, time.Minute), authHandler.Login)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(), middleware.LoadCurrentUser())
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/profile", authHandler.UpdateProfile)

			categories := authorized.Group("/categories")
			{
				categories.GET("", categoryHandler.List)
				categories.POST("", categoryHandler.Create)
				categories.PUT("/:id", categoryHandler.Update)
				categories.DELETE("/:id", categoryHandler.Delete)
			}

			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", transactionHandler.Create)
				transactions.GET("", transactionHandler.List)
				transactions.GET("/pending-count", transactionHandler.PendingCount)
				transactions.GET("/:id", transactionHandler.Get)
			}

			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/summary", dashboardHandler.Summary)
				dashboard.GET("/chart", dashboardHandler.Chart)
			}

			plans := authorized.Group("/payment-plans")
			{
				plans.POST("", planHandler.Create)
				plans.GET("", planHandler.List)
				plans.GET("/:id", planHandler.Get)
				plans.PUT("/:id", planHandler.Update)
				plans.PATCH("/:id/status", planHandler.UpdateStatus)
				plans.DELETE("/:id", planHandler.Delete)
				plans.POST("/:id/proof", planHandler.UploadProof)
				plans.DELETE("/:id/proof", planHandler.DeleteProof)
			}

			authorized.GET("/export/csv", exportHandler.ExportCSV)

			admin := authorized.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", userHandler.List)
				admin.POST("/users", userHandler.Create)
				admin.PUT("/users/:id", userHandler.Update)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.GET("/transactions/pending", transactionHandler.Pending)
				admin.POST("/transactions/:id/approve", transactionHandler.Approve)
				admin.POST("/transactions/:id/reject", transactionHandler.Reject)

				admin.GET("/export/excel", exportHandler.ExportExcel)
			}
		}
	}

	return r
}

// CORSMiddleware CORS para o front-end servido em outra origem
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
