package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/coinwatch/assethub/db"
	"github.com/coinwatch/assethub/db/migrations"
	"github.com/coinwatch/assethub/lib"
	"github.com/coinwatch/assethub/lib/cache"
	"github.com/coinwatch/assethub/lib/coingecko"
	"github.com/coinwatch/assethub/lib/service"
	"github.com/coinwatch/assethub/lib/transport"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/uptrace/bun/migrate"
)

// @title        AssetHub
// @version      1.0.0
// @description  Cryptocurrency market data proxy with a persisted favorites list.

// @BasePath  /

// @schemes  https http
func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := lib.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	// The cache is shared across all requests. Redis when configured,
	// otherwise an in-process map.
	var cacheStore cache.Store
	if c.RedisURL != "" {
		redisStore, err := cache.NewRedisStore(c.RedisURL)
		if err != nil {
			logger.Fatalf("Error connecting to redis: %v", err)
		}
		cacheStore = redisStore
		logger.Infof("Using redis cache at %s", c.RedisURL)
	} else {
		cacheStore = cache.NewMemoryStore()
		logger.Info("REDIS_URL not set, using in-memory cache")
	}

	geckoClient := coingecko.NewClient(
		c.CoinGeckoBaseUrl,
		c.CoinGeckoUserAgent,
		time.Duration(c.CoinGeckoTimeout)*time.Second,
	)

	svc := &service.AssethubService{
		Config: c,
		DB:     dbConn,
		Cache:  cacheStore,
		Client: geckoClient,
		Logger: logger,
	}

	//init echo server
	e := transport.InitEcho(c, logger)
	//if Datadog is configured, add datadog middleware
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("assethub")))
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	transport.RegisterEndpoints(svc, e, logMw)

	//Start Prometheus server if necessary
	if c.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, svc, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	signalCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	<-signalCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	if err := dbConn.Close(); err != nil {
		e.Logger.Fatal(err)
	}
}
