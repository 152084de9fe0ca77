package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sjwaight/gu/internal/batch"
	"github.com/sjwaight/gu/internal/config"
	"github.com/sjwaight/gu/internal/handler"
	"github.com/sjwaight/gu/internal/infra"
	"github.com/sjwaight/gu/internal/middleware"
	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/repository"
	"github.com/sjwaight/gu/internal/service"
	"github.com/sjwaight/gu/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	renderPDF := func(inv *model.Invoice, commissions []model.Commission) (string, error) {
		return infra.GenerateInvoicePDF(cfg.SiteName, cfg.InvoicePDFPath, inv, commissions)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	editorRepo := repository.NewEditorRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	regionRepo := repository.NewRegionRepository(db)
	fundRepo := repository.NewFundRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(editorRepo, cfg)
	articleSvc := service.NewArticleService(articleRepo, authorRepo)
	authorSvc := service.NewAuthorService(authorRepo, dispatcher, cfg.SiteName)
	taxonomySvc := service.NewTaxonomyService(topicRepo, categoryRepo, regionRepo, fundRepo)
	commissionSvc := service.NewCommissionService(commissionRepo, authorRepo, fundRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, commissionRepo, service.PDFWriter(renderPDF))

	processor := batch.New(batch.Config{
		Articles:    articleRepo,
		Commissions: commissionRepo,
		Invoices:    invoiceRepo,
		Mailer:      mailer,
		RenderPDF:   renderPDF,
		EditorEmail: cfg.EditorEmail,
		SiteName:    cfg.SiteName,
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	articlesH := handler.NewArticlesHandler(articleSvc)
	authorsH := handler.NewAuthorsHandler(authorSvc)
	taxonomyH := handler.NewTaxonomyHandler(taxonomySvc)
	paymentsH := handler.NewPaymentsHandler(taxonomySvc, commissionSvc, invoiceSvc, processor)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Published content is readable without auth.
	r.GET("/v1/articles", articlesH.List)
	r.GET("/v1/articles/:slug", articlesH.GetBySlug)
	r.GET("/v1/topics", taxonomyH.ListTopics)
	r.GET("/v1/categories", taxonomyH.ListCategories)
	r.GET("/v1/regions", taxonomyH.ListRegions)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Editorial — any authenticated editor
		editorial := middleware.RequireRole("editor", "admin")

		articles := v1.Group("/articles", editorial)
		{
			articles.POST("", articlesH.Create)
			articles.PUT("/:id", articlesH.Update)
			articles.POST("/:id/publish", articlesH.Publish)
			articles.POST("/:id/top-story", articlesH.MakeTopStory)
		}

		authors := v1.Group("/authors", editorial)
		{
			authors.POST("", authorsH.Create)
			authors.GET("", authorsH.List)
			authors.GET("/:id", authorsH.Get)
			authors.PUT("/:id", authorsH.Update)
		}

		taxonomy := v1.Group("", editorial)
		{
			taxonomy.POST("/topics", taxonomyH.CreateTopic)
			taxonomy.POST("/categories", taxonomyH.CreateCategory)
			taxonomy.POST("/regions", taxonomyH.CreateRegion)
		}

		// Payments — admin only: money moves here
		payments := v1.Group("", middleware.RequireRole("admin"))
		{
			payments.POST("/funds", paymentsH.CreateFund)
			payments.GET("/funds", paymentsH.ListFunds)

			payments.POST("/commissions", paymentsH.CreateCommission)
			payments.GET("/commissions", paymentsH.ListCommissions)
			payments.GET("/commissions/:id", paymentsH.GetCommission)
			payments.PUT("/commissions/:id", paymentsH.UpdateCommission)

			payments.GET("/invoices", paymentsH.ListInvoices)
			payments.GET("/invoices/:id", paymentsH.GetInvoice)
			payments.PATCH("/invoices/:id/status", paymentsH.UpdateInvoiceStatus)
			payments.GET("/invoices/:id/pdf", paymentsH.InvoicePDF)
			payments.POST("/invoices/process", paymentsH.ProcessInvoices)
		}

		// Editor accounts — admin only
		editors := v1.Group("/editors", middleware.RequireRole("admin"))
		{
			editors.POST("", authH.CreateEditor)
			editors.GET("", authH.ListEditors)
			editors.DELETE("/:id", authH.DeactivateEditor)
		}
	}

	return r
}
