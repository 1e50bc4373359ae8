package router

import (
	"time"

	"expensetracker/api"
	"expensetracker/config"
	"expensetracker/database"
	_ "expensetracker/docs"
	"expensetracker/ledger"
	"expensetracker/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由，需先完成 database.Init 与 middleware.InitJWT
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(CORSMiddleware())

	svc := ledger.NewService(database.DB)

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证（无需登录），登录与注册按 IP 限流
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			limit := middleware.LoginRateLimit(10, time.Minute)
			auth.POST("/register", limit, authHandler.Register)
			auth.POST("/login", limit, authHandler.Login)
		}

		// 需要 JWT 认证的接口
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)

			expenseHandler := api.NewExpenseHandler(svc)
			expenses := authorized.Group("/expenses")
			{
				expenses.POST("", expenseHandler.Create)
				expenses.GET("", expenseHandler.List)
				expenses.GET("/:id", expenseHandler.Get)
				expenses.PUT("/:id", expenseHandler.Update)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			incomeHandler := api.NewIncomeHandler(svc)
			incomes := authorized.Group("/incomes")
			{
				incomes.POST("", incomeHandler.Create)
				incomes.GET("", incomeHandler.List)
				incomes.GET("/:id", incomeHandler.Get)
				incomes.PUT("/:id", incomeHandler.Update)
				incomes.DELETE("/:id", incomeHandler.Delete)
			}

			budgetHandler := api.NewBudgetHandler(svc)
			budgets := authorized.Group("/budgets")
			{
				budgets.POST("", budgetHandler.Create)
				budgets.GET("", budgetHandler.List)
				budgets.GET("/:id", budgetHandler.Get)
				budgets.PUT("/:id", budgetHandler.Update)
				budgets.DELETE("/:id", budgetHandler.Delete)
			}

			categoryHandler := api.NewCategoryHandler(svc)
			authorized.GET("/categories", categoryHandler.List)
			authorized.GET("/categories/:id", categoryHandler.Get)
			authorized.GET("/income-categories", categoryHandler.ListIncome)
			authorized.GET("/income-categories/:id", categoryHandler.GetIncome)

			summaryHandler := api.NewSummaryHandler(svc)
			authorized.GET("/summary/monthly", summaryHandler.Monthly)

			exportHandler := api.NewExportHandler(svc)
			authorized.GET("/export/excel", exportHandler.ExportExcel)

			reportHandler := api.NewReportHandler(svc, cfg)
			authorized.POST("/reports/monthly/email", reportHandler.SendMonthlyEmail)

			// 后台管理（admin / super_admin）
			admin := authorized.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/categories", categoryHandler.Create)
				admin.PUT("/categories/:id", categoryHandler.Update)
				admin.DELETE("/categories/:id", categoryHandler.Delete)

				admin.POST("/income-categories", categoryHandler.CreateIncome)
				admin.PUT("/income-categories/:id", categoryHandler.UpdateIncome)
				admin.DELETE("/income-categories/:id", categoryHandler.DeleteIncome)

				userHandler := api.NewUserHandler(svc)
				admin.GET("/users", userHandler.List)
				admin.PUT("/users/:id/role", userHandler.AssignRole)

				admin.POST("/email/test", reportHandler.SendTestEmail)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
