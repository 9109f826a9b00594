package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.ApiService/controllers"
	container "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Container"
	snsingestor "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Ingestor"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting sensor gateway")

	config := ctr.GetConfig()
	history := ctr.GetHistory()

	// Optional MQTT ingest bridge, sharing the HTTP path's history
	if config.BridgeEnabled() {
		bridge := snsingestor.New(config, history, logger)
		if err := bridge.Start(); err != nil {
			logger.FatalWithError(err, "Failed to start MQTT bridge")
		}
		ctr.RegisterCleanup(func() error {
			bridge.Stop()
			return nil
		})
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configure CORS from config
	corsConfig := cors.Config{
		AllowOrigins:     config.CORS.AllowedOrigins,
		AllowMethods:     config.CORS.AllowedMethods,
		AllowHeaders:     config.CORS.AllowedHeaders,
		ExposeHeaders:    config.CORS.ExposedHeaders,
		AllowCredentials: config.CORS.AllowCredentials,
		MaxAge:           time.Duration(config.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// Create controllers and register routes
	dataController := controllers.NewDataController(history, logger, config.Server.Name)
	healthController := controllers.NewHealthController(history, logger, config.Server.Name)
	dashboardController := controllers.NewDashboardController(history, logger, config.Server.Name)

	dataController.RegisterRoutes(router)
	healthController.RegisterRoutes(router)
	dashboardController.RegisterRoutes(router)

	// Get port from configuration
	port := config.Server.Port

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("HTTP server starting on port " + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	logger.Info("Sensor gateway running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "Server forced to shutdown")
	}
}
