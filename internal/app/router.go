// internal/app/router.go
package app

import (
	adminHandler "tryout-admin-service/internal/handlers/admin"
	authHandler "tryout-admin-service/internal/handlers/auth"
	catalogHandler "tryout-admin-service/internal/handlers/catalog"
	questionHandler "tryout-admin-service/internal/handlers/question"
	subscriptionHandler "tryout-admin-service/internal/handlers/subscription"
	transactionHandler "tryout-admin-service/internal/handlers/transaction"
	tryoutHandler "tryout-admin-service/internal/handlers/tryout"
	"tryout-admin-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler         *authHandler.AuthHandler
	AdminHandler        *adminHandler.AdminHandler
	CatalogHandler      *catalogHandler.CatalogHandler
	TryoutHandler       *tryoutHandler.TryoutHandler
	QuestionHandler     *questionHandler.QuestionHandler
	SubscriptionHandler *subscriptionHandler.SubscriptionHandler
	TransactionHandler  *transactionHandler.TransactionHandler
	AuthMiddleware      gin.HandlerFunc
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.AuthHandler.Login)

		authProtected := auth.Group("")
		authProtected.Use(h.AuthMiddleware)
		{
			authProtected.POST("/logout", h.AuthHandler.Logout)
			authProtected.GET("/me", h.AuthHandler.Me)
		}
	}

	// Everything below requires an authenticated admin.
	protected := api.Group("")
	protected.Use(h.AuthMiddleware)

	// ==================== Admin Management (super admin) ====================
	admins := protected.Group("/admins")
	admins.Use(middleware.SuperAdminOnly())
	{
		admins.GET("", h.AdminHandler.ListAdmins)
		admins.POST("", h.AdminHandler.CreateAdmin)
		admins.GET("/:id", h.AdminHandler.GetAdmin)
		admins.PATCH("/:id", h.AdminHandler.UpdateAdmin)
	}

	activityLog := protected.Group("/activity-log")
	activityLog.Use(middleware.SuperAdminOnly())
	{
		activityLog.GET("", h.AdminHandler.ListActivityLog)
	}

	// ==================== Categories ====================
	categories := protected.Group("/categories")
	{
		categories.GET("", h.CatalogHandler.ListCategories)
		categories.POST("", h.CatalogHandler.CreateCategory)
		categories.GET("/:id", h.CatalogHandler.GetCategory)
		categories.PATCH("/:id", h.CatalogHandler.UpdateCategory)
		categories.DELETE("/:id", h.CatalogHandler.DeleteCategory)
	}

	// ==================== Packages ====================
	packages := protected.Group("/packages")
	{
		packages.GET("", h.CatalogHandler.ListPackages)
		packages.POST("", h.CatalogHandler.CreatePackage)
		packages.GET("/:id", h.CatalogHandler.GetPackage)
		packages.PATCH("/:id", h.CatalogHandler.UpdatePackage)
		packages.DELETE("/:id", h.CatalogHandler.DeletePackage)
	}

	// ==================== Tryouts ====================
	tryouts := protected.Group("/tryouts")
	{
		tryouts.GET("", h.TryoutHandler.ListTryouts)
		tryouts.POST("", h.TryoutHandler.CreateTryout)
		tryouts.GET("/:id", h.TryoutHandler.GetTryout)
		tryouts.PATCH("/:id", h.TryoutHandler.UpdateTryout)
		tryouts.DELETE("/:id", h.TryoutHandler.DeleteTryout)
		tryouts.GET("/:id/sessions", h.TryoutHandler.ListSessions)
	}

	// ==================== Questions ====================
	questions := protected.Group("/questions")
	{
		questions.GET("", h.QuestionHandler.ListQuestions)
		questions.POST("", h.QuestionHandler.CreateQuestion)
		questions.GET("/:id", h.QuestionHandler.GetQuestion)
		questions.PATCH("/:id", h.QuestionHandler.UpdateQuestion)
		questions.DELETE("/:id", h.QuestionHandler.DeleteQuestion)
		questions.PUT("/:id/sub-chapters", h.QuestionHandler.AssignSubChapters)
	}

	// ==================== Sub-chapters ====================
	subChapters := protected.Group("/sub-chapters")
	{
		subChapters.GET("", h.QuestionHandler.ListSubChapters)
		subChapters.POST("", h.QuestionHandler.CreateSubChapter)
		subChapters.GET("/:id", h.QuestionHandler.GetSubChapter)
		subChapters.PATCH("/:id", h.QuestionHandler.UpdateSubChapter)
		subChapters.DELETE("/:id", h.QuestionHandler.DeleteSubChapter)
	}

	// ==================== Subscription Types ====================
	subscriptionTypes := protected.Group("/subscription-types")
	{
		subscriptionTypes.GET("", h.SubscriptionHandler.ListTypes)
		subscriptionTypes.POST("", h.SubscriptionHandler.CreateType)
		subscriptionTypes.GET("/:id", h.SubscriptionHandler.GetType)
		subscriptionTypes.PATCH("/:id", h.SubscriptionHandler.UpdateType)
		subscriptionTypes.DELETE("/:id", h.SubscriptionHandler.DeleteType)
	}

	// ==================== User Subscriptions ====================
	userSubscriptions := protected.Group("/user-subscriptions")
	{
		userSubscriptions.GET("", h.SubscriptionHandler.ListUserSubscriptions)
		userSubscriptions.POST("", h.SubscriptionHandler.AssignSubscription)
		userSubscriptions.GET("/:id", h.SubscriptionHandler.GetUserSubscription)
		userSubscriptions.PATCH("/:id", h.SubscriptionHandler.UpdateUserSubscription)
	}

	// ==================== Transactions ====================
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.TransactionHandler.ListTransactions)
		transactions.POST("", h.TransactionHandler.CreateTransaction)
		transactions.GET("/:id", h.TransactionHandler.GetTransaction)
		transactions.PATCH("/:id", h.TransactionHandler.UpdateTransaction)
	}
}
