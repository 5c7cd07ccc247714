package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"companycrm/internal/company"
	"companycrm/internal/config"
	"companycrm/internal/database"
	"companycrm/internal/handlers"
	"companycrm/internal/logger"
	"companycrm/internal/middleware"
	"companycrm/internal/searchclient"
	"companycrm/internal/services"
	"companycrm/internal/sheets"
	"companycrm/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "companycrm/internal/docs" // Import swagger docs
)

// @title           Company CRM API
// @version         1.0
// @description     Search and browse private companies with normalized funding and price history.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey PipelineKey
// @in header
// @name X-API-Key

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	assembler := company.NewAssembler(logger.Diagnostics())
	backend := searchclient.NewClient(appConfig.SearchBackendURL, &http.Client{Timeout: appConfig.SearchTimeout})

	var source sheets.RowSource
	if appConfig.SyncEnabled() {
		client, err := sheets.NewClient(context.Background(),
			appConfig.GoogleCredentialsPath, appConfig.GoogleSheetID, appConfig.WorksheetName)
		if err != nil {
			log.Warnf("Sheet sync disabled: %v", err)
		} else {
			source = client
		}
	}

	searchService := services.NewSearchService(backend, assembler)
	companyService := services.NewCompanyService(dbManager.DB(), assembler)
	syncService := services.NewSyncService(source, companyService)

	if appConfig.SyncSchedule != "" && source != nil {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(appConfig.SyncSchedule, func() {
			if _, err := syncService.Sync(context.Background()); err != nil {
				log.Errorw("scheduled sheet sync failed", "error", err)
			}
		}); err != nil {
			return fmt.Errorf("invalid SYNC_SCHEDULE %q: %w", appConfig.SyncSchedule, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Infof("Sheet sync scheduled: %s", appConfig.SyncSchedule)
	}

	validator.Register()

	router := newRouter(appConfig, routes{
		search:   handlers.NewSearchHandler(searchService),
		company:  handlers.NewCompanyHandler(companyService),
		pipeline: handlers.NewPipelineHandler(syncService),
	})

	log.Infof("Starting Company CRM server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

type routes struct {
	search   *handlers.SearchHandler
	company  *handlers.CompanyHandler
	pipeline *handlers.PipelineHandler
}

func newRouter(cfg *config.Config, h routes) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	v1.GET("/search", h.search.Search)
	v1.GET("/advanced-search", h.search.AdvancedSearch)

	companies := v1.Group("/companies")
	companies.GET("", h.company.ListCompanies)
	companies.GET("/:name", h.company.GetCompany)

	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/sync", h.pipeline.Sync)

	return router
}
