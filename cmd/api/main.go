package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/config"
	httpAPI "shop-backend/internal/http"
	"shop-backend/internal/http/controller"
	"shop-backend/internal/logger"
	"shop-backend/internal/metrics"
	"shop-backend/internal/repository/sql"
	"shop-backend/internal/service"
	sqspkg "shop-backend/internal/sqs"
	"shop-backend/internal/storage"
)

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	logger.InitJSONLogger(conf.DebugMode)

	ctx := context.Background()
	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)
	defer db.Close()

	// Create repositories
	userRepository := sql.NewUserRepository(db)
	productRepository := sql.NewProductRepository(db)

	// Select the blob storage backend; the pipeline never knows which one runs.
	var blobs storage.BlobStore
	var uploadsDir string
	switch conf.Storage.Driver {
	case config.StorageDriverS3:
		blobs, err = storage.NewMinioStore(ctx, conf.Storage.Endpoint, conf.Storage.AccessKey,
			conf.Storage.SecretKey, conf.Storage.Bucket, conf.Storage.PublicBase, conf.Storage.UseSSL)
		handleErr("starting object storage", err)
	default:
		localStore, lerr := storage.NewLocalStore(conf.Storage.UploadsDir, conf.Storage.PublicBaseURL)
		handleErr("starting local storage", lerr)
		blobs = localStore
		uploadsDir = localStore.Dir()
	}

	// Product event publisher is optional; without a queue URL nothing is emitted.
	var publisher *sqspkg.Publisher
	if conf.AWS.SQSQueueURL != "" {
		sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
		handleErr("loading AWS config", err)
		publisher = sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)
	}

	// Create services
	authService := service.NewAuthService(userRepository, conf.Auth.JWTSecret)
	productService := service.NewProductService(productRepository, blobs, publisher)

	// One-time admin bootstrap, idempotent across restarts
	err = authService.SeedAdmin(ctx, conf.Auth.AdminEmail, conf.Auth.AdminPassword)
	handleErr("seeding admin account", err)

	// Start HTTP server
	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	authCtr := controller.NewAuthController(authService)
	productCtr := controller.NewProductController(productService)
	httpServer := gin.Default()
	httpServer = httpAPI.InitRouter(conf, httpServer, authCtr, productCtr, authService, uploadsDir)

	go func() {
		err = httpServer.Run(":" + conf.HTTPServer.Port)
		if err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	// Start metrics server
	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
