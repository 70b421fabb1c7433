package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/sbilibin2017/gw-fintech-demo/docs"
	"github.com/sbilibin2017/gw-fintech-demo/internal/facades"
	"github.com/sbilibin2017/gw-fintech-demo/internal/handlers"
	"github.com/sbilibin2017/gw-fintech-demo/internal/jwt"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/middlewares"
	"github.com/sbilibin2017/gw-fintech-demo/internal/mockdata"
	"github.com/sbilibin2017/gw-fintech-demo/internal/repositories"
	"github.com/sbilibin2017/gw-fintech-demo/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const serviceName = "gw-fintech-demo"

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Storage and velocity store drivers.
const (
	driverMemory   = "memory"
	driverPostgres = "postgres"
	driverRedis    = "redis"
)

// config holds every setting read from the environment.
type config struct {
	AppHost        string
	AppPort        string
	LogLevel       string
	AllowedOrigins []string

	StorageDriver     string
	PGHost            string
	PGPort            int
	PGUser            string
	PGPassword        string
	PGDB              string
	PGMaxOpenConns    int
	PGMaxIdleConns    int
	VelocityStore     string
	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaBrokers           []string
	KafkaTransactionsTopic string
	KafkaAlertsTopic       string

	GWHost       string
	GWPort       string
	RateCacheTTL time.Duration

	JWTSecretKey string
	JWTExp       time.Duration

	FraudFlagProbability    float64
	FraudAlertProbability   float64
	DriverVerifyProbability float64
	CashoutFeePercent       float64
}

// @title gw-fintech-demo API
// @version 1.0.0
// @description Demo fintech backend: mock transactions, simulated fraud detection and Bolt driver payouts
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getFloat := func(key, defaultValue string) (float64, error) {
		v, err := strconv.ParseFloat(getEnv(key, defaultValue), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getProbability := func(key, defaultValue string) (float64, error) {
		p, err := getFloat(key, defaultValue)
		if err != nil {
			return 0, err
		}
		if p < 0 || p > 1 {
			return 0, fmt.Errorf("%s: probability %v outside [0,1]", key, p)
		}
		return p, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.AllowedOrigins = splitList(getEnv("APP_ALLOWED_ORIGINS", "http://localhost:3000"))

	// Storage config
	cfg.StorageDriver = getEnv("STORAGE_DRIVER", driverMemory)
	if cfg.StorageDriver != driverMemory && cfg.StorageDriver != driverPostgres {
		return cfg, fmt.Errorf("STORAGE_DRIVER: unsupported driver %q", cfg.StorageDriver)
	}
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.VelocityStore = getEnv("VELOCITY_STORE", driverMemory)
	if cfg.VelocityStore != driverMemory && cfg.VelocityStore != driverRedis {
		return cfg, fmt.Errorf("VELOCITY_STORE: unsupported store %q", cfg.VelocityStore)
	}
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Kafka config
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaTransactionsTopic = getEnv("KAFKA_TRANSACTIONS_TOPIC", "transactions")
	cfg.KafkaAlertsTopic = getEnv("KAFKA_ALERTS_TOPIC", "fraud-alerts")

	// gRPC config
	cfg.GWHost = getEnv("GW_EXCHANGER_HOST", "")
	cfg.GWPort = getEnv("GW_EXCHANGER_PORT", "50051")
	rateTTL, err := getInt("EXCHANGE_RATE_CACHE_TTL_SECOND", "60")
	if err != nil {
		return
	}
	cfg.RateCacheTTL = time.Duration(rateTTL) * time.Second

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	jwtExp, err := getInt("JWT_EXP_SECOND", "86400")
	if err != nil {
		return
	}
	cfg.JWTExp = time.Duration(jwtExp) * time.Second

	// Simulation config
	if cfg.FraudFlagProbability, err = getProbability("FRAUD_FLAG_PROBABILITY", "0.3"); err != nil {
		return
	}
	if cfg.FraudAlertProbability, err = getProbability("FRAUD_ALERT_PROBABILITY", "0.5"); err != nil {
		return
	}
	if cfg.DriverVerifyProbability, err = getProbability("DRIVER_VERIFY_PROBABILITY", "0.7"); err != nil {
		return
	}
	if cfg.CashoutFeePercent, err = getFloat("CASHOUT_FEE_PERCENT", "1.5"); err != nil {
		return
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// run initializes the logger, storage, Redis, Kafka, gRPC client, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	now := time.Now().UTC()
	users, err := mockdata.HashedUsers(bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo users: %w", err)
	}
	seedTxns := mockdata.Transactions(now)
	seedAlerts := mockdata.FraudAlerts(now)

	probes := map[string]handlers.Probe{}

	// Storage
	var (
		userRepo  services.UserReader
		txnRepo   services.TransactionRepository
		alertRepo services.AlertRepository
		db        *sqlx.DB
	)
	switch cfg.StorageDriver {
	case driverPostgres:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
		logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

		db, err = sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			return fmt.Errorf("PostgreSQL connection error: %w", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.PGMaxOpenConns)
		db.SetMaxIdleConns(cfg.PGMaxIdleConns)

		if err := repositories.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if err := repositories.Seed(ctx, db, users, seedTxns, seedAlerts); err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		userRepo = repositories.NewUserPostgresRepository(db, middlewares.GetTxFromContext)
		txnRepo = repositories.NewTransactionPostgresRepository(db, middlewares.GetTxFromContext)
		alertRepo = repositories.NewFraudAlertPostgresRepository(db, middlewares.GetTxFromContext)
		probes["postgres"] = db.PingContext
	default:
		userRepo = repositories.NewUserMemoryRepository(users)
		txnRepo = repositories.NewTransactionMemoryRepository(seedTxns)
		alertRepo = repositories.NewFraudAlertMemoryRepository(seedAlerts)
	}

	// Redis backs the velocity store and the exchange rate cache.
	var rdb *redis.Client
	if cfg.VelocityStore == driverRedis || cfg.GWHost != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var velocity services.VelocityStore = repositories.NewVelocityMemoryRepository()
	if cfg.VelocityStore == driverRedis {
		redisVelocity := repositories.NewVelocityRedisRepository(rdb)
		probes["redis"] = redisVelocity.Ping
		velocity = redisVelocity
	}

	// Kafka
	txnPublisher := services.NewKafkaPublisher(newKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTransactionsTopic), cfg.KafkaTransactionsTopic)
	defer closePublisher(txnPublisher)
	alertPublisher := services.NewKafkaPublisher(newKafkaWriter(cfg.KafkaBrokers, cfg.KafkaAlertsTopic), cfg.KafkaAlertsTopic)
	defer closePublisher(alertPublisher)

	// gRPC exchanger, optional
	var (
		rates     services.ExchangeRateReader
		rateCache services.ExchangeRateCache
	)
	if cfg.GWHost != "" {
		grpcAddr := fmt.Sprintf("%s:%s", cfg.GWHost, cfg.GWPort)
		conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("failed to connect to gRPC service at %s: %w", grpcAddr, err)
		}
		defer conn.Close()

		rates = facades.NewExchangeRatesGRPCFacade(pb.NewExchangeServiceClient(conn), 0)
		rateCache = repositories.NewExchangeRateCacheRepository(rdb, cfg.RateCacheTTL)
	}

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.JWTExp))

	// Initialize services
	rnd := services.NewRandomizer()
	authService := services.NewAuthService(userRepo, tokens)
	txnService := services.NewTransactionService(txnRepo, velocity, txnPublisher, rnd, cfg.FraudFlagProbability)
	fraudService := services.NewFraudService(alertRepo, txnRepo, alertPublisher, rnd, cfg.FraudAlertProbability)
	detector := services.NewDetector(velocity, rnd)
	boltService := services.NewBoltService(txnService, rates, rateCache, rnd, cfg.DriverVerifyProbability, cfg.CashoutFeePercent)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.TracingMiddleware(serviceName))
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))

	// Public routes
	handlers.RegisterHealthHandler(r, handlers.NewHealthHandler(serviceName, probes))
	handlers.RegisterLoginHandler(r, handlers.NewLoginHandler(authService))

	// Protected routes with JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokens))
		if db != nil {
			r.Use(middlewares.TxMiddleware(db))
		}

		handlers.RegisterVerifyHandler(r, handlers.NewVerifyHandler(authService, middlewares.ClaimsFromContext))
		handlers.RegisterTransactionHandlers(r,
			handlers.NewListTransactionsHandler(txnService),
			handlers.NewCreateTransactionHandler(txnService, middlewares.ClaimsFromContext),
		)
		handlers.RegisterFraudAlertHandlers(r,
			handlers.NewListAlertsHandler(fraudService),
			handlers.NewAnalyzeTransactionHandler(fraudService),
			handlers.NewUpdateAlertStatusHandler(fraudService),
		)
		handlers.RegisterScoreHandlers(r,
			handlers.NewScoreHandler(detector, middlewares.ClaimsFromContext),
			handlers.NewRiskScoreHandler(detector),
		)
		handlers.RegisterBoltHandlers(r,
			handlers.NewVerifyDriverHandler(boltService),
			handlers.NewCashoutHandler(boltService, middlewares.ClaimsFromContext),
		)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newKafkaWriter returns nil when no brokers are configured.
func newKafkaWriter(brokers []string, topic string) services.KafkaWriter {
	if len(brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		RequiredAcks:           kafka.RequireOne,
	}
}

func closePublisher(p *services.KafkaPublisher) {
	if err := p.Close(); err != nil {
		logger.Log.Errorw("failed to close Kafka writer", "error", err)
	}
}
