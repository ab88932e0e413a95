package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"archive-service/internal/archive"
	"archive-service/internal/auth"
	"archive-service/internal/handlers"
	"archive-service/internal/media"
	"archive-service/internal/middleware"
	"archive-service/internal/observability"
	"archive-service/internal/rabbitmq"
	"archive-service/internal/repositories"
	"archive-service/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	loader := archive.NewLoader(getEnv("ARCHIVE_PATH", "archive.json"))
	arch, err := loader.Load()
	if err != nil {
		log.Fatalf("failed to load archive: %v", err)
	}
	log.Printf("archive loaded: %d messages across %d days", arch.Size(), len(arch.DaySummaries()))
	observability.SetArchiveSize(arch.Size())

	shutdownTracer, err := observability.InitTracer(context.Background(), "archive-service", getEnv("OTLP_ENDPOINT", ""))
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			log.Printf("tracer shutdown: %v", err)
		}
	}()

	publisher := rabbitmq.NewPublisher(getEnv("AMQP_URL", ""), getEnv("AMQP_EXCHANGE", "archive.audit"))
	defer publisher.Close()
	log.Printf("audit publisher mode=%s", rabbitmq.PublisherMode(publisher))

	emitter := telemetry.NewAuditEmitter(
		publisher,
		getEnv("AUDIT_ROUTING_KEY", "audit.archive"),
		"archive-service",
		getEnv("ENVIRONMENT", "dev"),
	)

	gate := auth.NewGate(getEnv("ARCHIVE_PASSWORD_HASH", ""), getEnv("ARCHIVE_PASSWORD", ""))
	if !gate.Enabled() {
		log.Fatalf("no archive password configured, set ARCHIVE_PASSWORD_HASH or ARCHIVE_PASSWORD")
	}
	manager := auth.NewManager(mustEnv("JWT_SECRET"), 24*time.Hour)

	resolver, err := buildResolver()
	if err != nil {
		log.Fatalf("failed to configure media resolver: %v", err)
	}

	repo := repositories.NewArchiveRepo(arch)

	messagesHandler := handlers.NewMessagesHandler(repo, emitter)
	loginHandler := handlers.NewLoginHandler(gate, manager, emitter)
	mediaHandler := handlers.NewMediaHandler(resolver)

	limiter := middleware.NewLimiterStore(30, 10, 5*time.Minute)
	defer limiter.Stop()

	router := gin.Default()

	router.Use(gin.Recovery())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware("archive-service"))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "messages": arch.Size()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/login", loginHandler.Login)

	authMiddleware := middleware.AuthMiddleware(manager)

	router.GET("/thread", authMiddleware, messagesHandler.Thread)
	router.GET("/messages", authMiddleware, messagesHandler.List)
	router.GET("/messages/search", authMiddleware, middleware.RateLimitMiddleware(limiter), messagesHandler.Search)
	router.GET("/messages/days", authMiddleware, messagesHandler.Days)
	router.GET("/messages/day/:date", authMiddleware, messagesHandler.ByDate)
	router.GET("/media/*uri", authMiddleware, mediaHandler.Redirect)

	port := getEnv("PORT", "8080")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildResolver picks the S3 presigner when a bucket is configured, falling
// back to plain path resolution against MEDIA_BASE_URL.
func buildResolver() (media.Resolver, error) {
	bucket := getEnv("S3_BUCKET", "")
	if bucket == "" {
		return media.NewPathResolver(getEnv("MEDIA_BASE_URL", "")), nil
	}

	return media.NewS3Resolver(context.Background(), media.S3Config{
		Region:    getEnv("S3_REGION", "auto"),
		Endpoint:  getEnv("S3_ENDPOINT", ""),
		AccessKey: mustEnv("S3_ACCESS_KEY"),
		SecretKey: mustEnv("S3_SECRET_KEY"),
		Bucket:    bucket,
		Expiry:    15 * time.Minute,
	})
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustEnv(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		log.Fatalf("missing required environment variable %s", key)
	}
	return val
}
