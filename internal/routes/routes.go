package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/aegislife/internal/config"
	"github.com/example/aegislife/internal/handlers"
	"github.com/example/aegislife/internal/middleware"
	"github.com/example/aegislife/internal/models"
	"github.com/example/aegislife/internal/services"
)

// Register wires every route onto the Fiber app. Public routes come first;
// everything after the auth group requires a bearer token.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	roleCache := services.NewRoleCache(cfg.RedisAddr, cfg.RedisPassword)
	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret, log)
	uploadSvc := services.NewImgBBService(cfg.ImgBBAPIKey, log)

	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, roleCache)
	policyHandler := handlers.NewPolicyHandler(db)
	appHandler := handlers.NewApplicationHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db, stripeSvc)
	blogHandler := handlers.NewBlogHandler(db)
	marketingHandler := handlers.NewMarketingHandler(db)
	adminHandler := handlers.NewAdminHandler(db)
	quoteHandler := handlers.NewQuoteHandler(db)
	uploadHandler := handlers.NewUploadHandler(uploadSvc)

	// Public routes.
	app.Post("/auth/register", authHandler.Register)
	app.Post("/auth/login", authHandler.Login)
	app.Post("/jwt", authHandler.IssueToken)
	app.Post("/users", userHandler.UpsertUser)

	app.Get("/policies/popular", policyHandler.PopularPolicies)
	app.Get("/policies", policyHandler.ListPolicies)
	app.Get("/policies/:id", policyHandler.GetPolicy)

	app.Get("/blogs/latest", blogHandler.LatestBlogs)
	app.Patch("/blogs/visit/:id", blogHandler.VisitBlog)
	app.Get("/blogs", blogHandler.ListBlogs)
	app.Get("/blogs/:id", blogHandler.GetBlog)

	app.Get("/reviews", marketingHandler.ListReviews)
	app.Post("/subscribe", marketingHandler.Subscribe)
	app.Get("/agents/public", userHandler.PublicAgents)
	app.Post("/quote", quoteHandler.Estimate)

	// Stripe authenticates this route with its signature header.
	app.Post("/payments/webhook", paymentHandler.Webhook)

	// Everything below requires a bearer token.
	authorized := app.Group("", middleware.AuthMiddleware(cfg))

	adminOnly := middleware.RequireRoles(db, roleCache, models.RoleAdmin)
	adminOrAgent := middleware.RequireRoles(db, roleCache, models.RoleAdmin, models.RoleAgent)
	agentOnly := middleware.RequireRoles(db, roleCache, models.RoleAgent)

	authorized.Get("/users/admin/:email", userHandler.IsAdmin)
	authorized.Get("/users/agent/:email", userHandler.IsAgent)
	authorized.Get("/users/role/:email", userHandler.GetRole)
	authorized.Patch("/users/profile/:email", userHandler.UpdateProfile)
	authorized.Get("/users", adminOnly, userHandler.ListUsers)
	authorized.Patch("/users/:id/role", adminOnly, userHandler.UpdateRole)
	authorized.Get("/agents", adminOnly, userHandler.ListAgents)

	authorized.Post("/policies", adminOnly, policyHandler.CreatePolicy)
	authorized.Put("/policies/:id", adminOnly, policyHandler.UpdatePolicy)
	authorized.Delete("/policies/:id", adminOnly, policyHandler.DeletePolicy)

	authorized.Post("/applications", appHandler.Submit)
	authorized.Get("/applications", adminOnly, appHandler.ListAll)
	authorized.Get("/applications/customer/:email", appHandler.ListByCustomer)
	authorized.Get("/applications/agent/:email", adminOrAgent, appHandler.ListByAgent)
	// Claim routes register before /applications/:id so the literal segments
	// are not captured by the id parameter.
	authorized.Get("/applications/claims/pending", adminOrAgent, appHandler.PendingClaims)
	authorized.Patch("/applications/claims/approve/:id", adminOrAgent, appHandler.ApproveClaim)
	authorized.Patch("/applications/claims/reject/:id", adminOrAgent, appHandler.RejectClaim)
	authorized.Patch("/applications/claim/:id", appHandler.FileClaim)
	authorized.Patch("/applications/:id", adminOrAgent, appHandler.UpdateApplication)

	authorized.Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)
	authorized.Post("/payments", paymentHandler.CreatePayment)
	authorized.Get("/payments", adminOnly, paymentHandler.ListPayments)
	authorized.Get("/payments/:email", paymentHandler.ListByEmail)

	authorized.Post("/blogs", adminOrAgent, blogHandler.CreateBlog)
	authorized.Get("/blogs/agent/:email", adminOrAgent, blogHandler.ListAgentBlogs)
	authorized.Put("/blogs/agent/:id", agentOnly, blogHandler.UpdateAgentBlog)
	authorized.Delete("/blogs/agent/:id", agentOnly, blogHandler.DeleteAgentBlog)
	authorized.Put("/blogs/:id", adminOnly, blogHandler.UpdateBlog)
	authorized.Delete("/blogs/:id", adminOnly, blogHandler.DeleteBlog)

	authorized.Post("/reviews", marketingHandler.CreateReview)
	authorized.Post("/upload", uploadHandler.UploadDocument)

	authorized.Get("/admin/stats", adminOnly, adminHandler.DashboardStats)
}
