package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrey156p/taskflow/config"
	"github.com/andrey156p/taskflow/middleware"
	"github.com/andrey156p/taskflow/routes"
	"github.com/andrey156p/taskflow/services"
	"github.com/andrey156p/taskflow/storage"
)

func main() {
	if err := config.InitLogger(); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer config.Logger.Sync()

	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := config.InitDB(conf); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// The cache is optional; a dead redis only costs us the cache.
	if err := config.InitRedis(conf); err != nil {
		config.Logger.Warnw("redis unavailable, task list cache disabled", "error", err)
	}

	store := storage.NewGormTaskStore(config.DB, conf.DBTimeout())
	taskService := services.NewTaskService(store)
	reportService := services.NewReportService()
	mailService := services.NewMailService(conf)

	scheduler := services.NewScheduler(taskService, reportService, mailService, conf)
	if err := scheduler.Start(); err != nil {
		config.Logger.Errorw("weekly report scheduler disabled", "error", err)
	}

	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	middleware.SetupMiddleware(r)
	routes.RegisterRoutes(r, conf, taskService, reportService)

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	go func() {
		config.Logger.Infow("server listening", "port", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Infow("shutting down server")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	config.Logger.Infow("server stopped")
}
