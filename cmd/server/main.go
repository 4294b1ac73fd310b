package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dadidelux/sheng-project/internal/config"
	"github.com/dadidelux/sheng-project/internal/database"
	"github.com/dadidelux/sheng-project/internal/handlers"
	"github.com/dadidelux/sheng-project/internal/middleware"
	"github.com/dadidelux/sheng-project/internal/ml"
	"github.com/dadidelux/sheng-project/internal/services"
	"github.com/dadidelux/sheng-project/internal/store"
	"github.com/dadidelux/sheng-project/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log)

	// Initialize database
	db, err := database.NewDB(cfg.DB)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize services
	st := store.New(db.Pool)
	modelLoader := ml.NewLoader(cfg.Model)
	dataService := services.NewDataService(st)
	targetingService := services.NewTargetingService(st)
	predictionService := services.NewPredictionService(modelLoader, st)

	// Initialize handlers
	dataViewerHandler := handlers.NewDataViewerHandler(dataService)
	targetingHandler := handlers.NewTargetingHandler(targetingService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSOrigin))
	router.Use(middleware.Metrics())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "DSWD Poverty Analysis API", "status": "running"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", middleware.MetricsHandler())

	api := router.Group("/api/v1")

	dataViewer := api.Group("/data-viewer")
	dataViewer.GET("/poverty-data", dataViewerHandler.PovertyData)
	dataViewer.GET("/poverty-data/columns", dataViewerHandler.PovertyDataColumns)
	dataViewer.GET("/poverty-data/export", dataViewerHandler.ExportPovertyData)
	dataViewer.GET("/predictions", dataViewerHandler.Predictions)
	dataViewer.GET("/predictions/columns", dataViewerHandler.PredictionsColumns)
	dataViewer.GET("/predictions/export", dataViewerHandler.ExportPredictions)

	targeting := api.Group("/targeting")
	targeting.GET("/coverage", targetingHandler.Coverage)
	targeting.GET("/efficiency", targetingHandler.Efficiency)

	predict := api.Group("/predict")
	predict.POST("/poverty", predictionHandler.Predict)
	predict.GET("/questionnaire", predictionHandler.Questionnaire)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("poverty analysis API starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
