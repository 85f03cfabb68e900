package router

import (
	"net/http"

	"pocketledger/api"
	"pocketledger/catalog"
	"pocketledger/config"
	_ "pocketledger/docs"
	"pocketledger/ledger"
	"pocketledger/middleware"
	"pocketledger/report"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps 路由依赖的服务
type Deps struct {
	Engine  *ledger.Engine
	Reports *report.Service
	Catalog *catalog.Service
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	txHandler := api.NewTransactionHandler(deps.Engine, deps.Reports)
	reportHandler := api.NewReportHandler(deps.Engine, deps.Reports)
	catalogHandler := api.NewCatalogHandler(deps.Catalog)
	exportHandler := api.NewExportHandler(deps.Reports)

	v1 := r.Group("/api/v1")
	{
		// 目录（无需登录）
		v1.GET("/categories", catalogHandler.Categories)
		v1.GET("/subcategories", catalogHandler.Subcategories)
		v1.GET("/payment-methods", catalogHandler.PaymentMethods)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		authorized.Use(middleware.RateLimit(cfg.RateLimit.MaxWrites, cfg.RateLimit.Window(), middleware.ByUser))
		{
			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", txHandler.Create)
				transactions.GET("", txHandler.List)
				transactions.PUT("/:id", txHandler.Update)
				transactions.DELETE("/:id", txHandler.Delete)
			}

			authorized.GET("/reports", reportHandler.Reports)
			statistics := authorized.Group("/statistics")
			{
				statistics.GET("/categories", reportHandler.CategoryStats)
				statistics.GET("/breakdown", reportHandler.CategoryBreakdown)
				statistics.GET("/trends", reportHandler.MonthlyTrends)
			}

			wallets := authorized.Group("/wallets")
			{
				wallets.GET("", reportHandler.Wallets)
				wallets.DELETE("/:method_id", reportHandler.DeleteWallet)
			}

			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
