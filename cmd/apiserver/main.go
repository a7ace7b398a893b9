package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/andreishark/api-backend-ecommerce/config"
	"github.com/andreishark/api-backend-ecommerce/internal/app"
	"github.com/andreishark/api-backend-ecommerce/internal/webapi"
)

var conffile = flag.String("c", "catalogapi.yml", "config file")

func main() {
	flag.Parse()

	// Optional .env file; environment overrides the yaml config.
	_ = godotenv.Load()

	appConfig := config.LoadConfig(*conffile)

	application := app.NewApplication(appConfig)
	if err := application.Init(appConfig); err != nil {
		zap.S().Fatalf("application init failed: %v", err)
	}
	defer application.Release()

	server := webapi.NewServer(application)

	go func() {
		if err := server.Start(); err != nil {
			zap.S().Errorf("web server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("web server shutdown failed: %v", err)
	}
}
