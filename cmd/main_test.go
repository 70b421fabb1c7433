package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"google.golang.org/grpc"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig and restores them after the test
func resetEnv(t *testing.T) {
	t.Helper()
	saved := os.Environ()
	os.Clearenv()
	t.Cleanup(func() {
		os.Clearenv()
		for _, kv := range saved {
			if k, v, ok := strings.Cut(kv, "="); ok {
				os.Setenv(k, v)
			}
		}
	})
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !contains(output, "Version: v1.0.0") ||
		!contains(output, "Commit: abcd1234") ||
		!contains(output, "Build: 2025-09-26") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv(t)

	cfg, err := parseConfig("nonexistent.env")
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if cfg.AppHost != "localhost" || cfg.AppPort != "8080" || cfg.LogLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", cfg.AppHost, cfg.AppPort, cfg.LogLevel)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("unexpected allowed origins: %v", cfg.AllowedOrigins)
	}

	// Storage
	if cfg.StorageDriver != driverMemory || cfg.VelocityStore != driverMemory {
		t.Errorf("unexpected storage drivers: %s/%s", cfg.StorageDriver, cfg.VelocityStore)
	}
	if cfg.PGHost != "localhost" || cfg.PGPort != 5432 || cfg.PGUser != "user" || cfg.PGPassword != "password" || cfg.PGDB != "database" ||
		cfg.PGMaxOpenConns != 16 || cfg.PGMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	// Redis
	if cfg.RedisHost != "localhost" || cfg.RedisPort != 6379 || cfg.RedisDB != 0 || cfg.RedisPassword != "" ||
		cfg.RedisPoolSize != 10 || cfg.RedisMinIdleConns != 2 {
		t.Errorf("unexpected redis config")
	}

	// Kafka
	if len(cfg.KafkaBrokers) != 0 || cfg.KafkaTransactionsTopic != "transactions" || cfg.KafkaAlertsTopic != "fraud-alerts" {
		t.Errorf("unexpected kafka config")
	}

	// gRPC
	if cfg.GWHost != "" || cfg.GWPort != "50051" || cfg.RateCacheTTL != time.Minute {
		t.Errorf("unexpected grpc config")
	}

	// JWT
	if cfg.JWTSecretKey != "my_super_secret_key" || cfg.JWTExp != 24*time.Hour {
		t.Errorf("unexpected jwt config")
	}

	// Simulation
	if cfg.FraudFlagProbability != 0.3 || cfg.FraudAlertProbability != 0.5 ||
		cfg.DriverVerifyProbability != 0.7 || cfg.CashoutFeePercent != 1.5 {
		t.Errorf("unexpected simulation config")
	}
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv(t)
	os.Setenv("APP_HOST", "127.0.0.1")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")
	os.Setenv("APP_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	os.Setenv("STORAGE_DRIVER", "postgres")
	os.Setenv("POSTGRES_HOST", "pg.example.com")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("POSTGRES_USER", "admin")
	os.Setenv("POSTGRES_PASSWORD", "secret")
	os.Setenv("POSTGRES_DB", "mydb")
	os.Setenv("POSTGRES_MAX_OPEN_CONNS", "20")
	os.Setenv("POSTGRES_MAX_IDLE_CONNS", "10")

	os.Setenv("VELOCITY_STORE", "redis")
	os.Setenv("REDIS_HOST", "redis.example.com")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("REDIS_PASSWORD", "redispass")
	os.Setenv("REDIS_POOL_SIZE", "15")
	os.Setenv("REDIS_MIN_IDLE_CONNS", "5")

	os.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	os.Setenv("KAFKA_TRANSACTIONS_TOPIC", "txns")
	os.Setenv("KAFKA_ALERTS_TOPIC", "alerts")

	os.Setenv("GW_EXCHANGER_HOST", "grpc.example.com")
	os.Setenv("GW_EXCHANGER_PORT", "50052")
	os.Setenv("EXCHANGE_RATE_CACHE_TTL_SECOND", "120")

	os.Setenv("JWT_SECRET_KEY", "supersecret")
	os.Setenv("JWT_EXP_SECOND", "300")

	os.Setenv("FRAUD_FLAG_PROBABILITY", "0")
	os.Setenv("FRAUD_ALERT_PROBABILITY", "1")
	os.Setenv("DRIVER_VERIFY_PROBABILITY", "0.25")
	os.Setenv("CASHOUT_FEE_PERCENT", "2")

	cfg, err := parseConfig("nonexistent.env")
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if cfg.AppHost != "127.0.0.1" || cfg.AppPort != "9090" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected app config")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected allowed origins: %v", cfg.AllowedOrigins)
	}
	if cfg.StorageDriver != driverPostgres || cfg.PGHost != "pg.example.com" || cfg.PGPort != 5433 || cfg.PGUser != "admin" ||
		cfg.PGPassword != "secret" || cfg.PGDB != "mydb" || cfg.PGMaxOpenConns != 20 || cfg.PGMaxIdleConns != 10 {
		t.Errorf("unexpected postgres config")
	}
	if cfg.VelocityStore != driverRedis || cfg.RedisHost != "redis.example.com" || cfg.RedisPort != 6380 || cfg.RedisDB != 2 ||
		cfg.RedisPassword != "redispass" || cfg.RedisPoolSize != 15 || cfg.RedisMinIdleConns != 5 {
		t.Errorf("unexpected redis config")
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "k1:9092" || cfg.KafkaTransactionsTopic != "txns" || cfg.KafkaAlertsTopic != "alerts" {
		t.Errorf("unexpected kafka config: %v", cfg.KafkaBrokers)
	}
	if cfg.GWHost != "grpc.example.com" || cfg.GWPort != "50052" || cfg.RateCacheTTL != 2*time.Minute {
		t.Errorf("unexpected grpc config")
	}
	if cfg.JWTSecretKey != "supersecret" || cfg.JWTExp != 5*time.Minute {
		t.Errorf("unexpected jwt config")
	}
	if cfg.FraudFlagProbability != 0 || cfg.FraudAlertProbability != 1 ||
		cfg.DriverVerifyProbability != 0.25 || cfg.CashoutFeePercent != 2 {
		t.Errorf("unexpected simulation config")
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown storage driver", key: "STORAGE_DRIVER", value: "mongo"},
		{name: "unknown velocity store", key: "VELOCITY_STORE", value: "memcached"},
		{name: "non numeric port", key: "POSTGRES_PORT", value: "abc"},
		{name: "non numeric jwt expiration", key: "JWT_EXP_SECOND", value: "soon"},
		{name: "probability above one", key: "FRAUD_FLAG_PROBABILITY", value: "1.5"},
		{name: "negative probability", key: "DRIVER_VERIFY_PROBABILITY", value: "-0.1"},
		{name: "non numeric fee", key: "CASHOUT_FEE_PERCENT", value: "%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetEnv(t)
			os.Setenv(tt.key, tt.value)

			if _, err := parseConfig("nonexistent.env"); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestParseConfig_FromFile(t *testing.T) {
	resetEnv(t)

	path := t.TempDir() + "/test.env"
	content := "APP_PORT=7070\nCASHOUT_FEE_PERCENT=3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := parseConfig(path)
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}
	if cfg.AppPort != "7070" || cfg.CashoutFeePercent != 3 {
		t.Errorf("file values not applied: port=%s fee=%v", cfg.AppPort, cfg.CashoutFeePercent)
	}
}

// ------------------ Mock gRPC Server ------------------
type mockExchangeServer struct {
	pb.UnimplementedExchangeServiceServer
}

func (m *mockExchangeServer) GetExchangeRateForCurrency(ctx context.Context, req *pb.CurrencyRequest) (*pb.ExchangeRateResponse, error) {
	rate := float32(1.0)
	switch req.ToCurrency {
	case "EUR":
		rate = 0.5
	case "JPY":
		rate = 110.0
	}
	return &pb.ExchangeRateResponse{
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Rate:         rate,
	}, nil
}

// Start mock gRPC server and return host:port and stop function
func startMockGRPCServer() (addr string, stop func(), err error) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	s := grpc.NewServer()
	pb.RegisterExchangeServiceServer(s, &mockExchangeServer{})
	go s.Serve(lis)

	stop = func() {
		s.Stop()
		lis.Close()
	}
	return lis.Addr().String(), stop, nil
}

func freePort(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer lis.Close()
	return strconv.Itoa(lis.Addr().(*net.TCPAddr).Port)
}

func baseConfig(port string) config {
	return config{
		AppHost:                 "127.0.0.1",
		AppPort:                 port,
		LogLevel:                "debug",
		AllowedOrigins:          []string{"*"},
		StorageDriver:           driverMemory,
		VelocityStore:           driverMemory,
		RateCacheTTL:            time.Minute,
		JWTSecretKey:            "testsecret",
		JWTExp:                  time.Minute,
		FraudFlagProbability:    0,
		FraudAlertProbability:   0,
		DriverVerifyProbability: 1,
		CashoutFeePercent:       1.5,
	}
}

// startRun runs the application in the background and waits for /health.
func startRun(t *testing.T, cfg config) (baseURL string, stop func() error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx, cfg) }()

	baseURL = fmt.Sprintf("http://%s:%s", cfg.AppHost, cfg.AppPort)
	deadline := time.Now().Add(30 * time.Second)
	for {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			break
		}
		select {
		case err := <-errCh:
			cancel()
			t.Fatalf("run exited early: %v", err)
		default:
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("server did not become ready")
		}
		time.Sleep(50 * time.Millisecond)
	}

	return baseURL, func() error {
		cancel()
		select {
		case err := <-errCh:
			return err
		case <-time.After(15 * time.Second):
			return fmt.Errorf("run did not stop")
		}
	}
}

func doJSON(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func login(t *testing.T, baseURL string) string {
	t.Helper()

	var resp struct {
		Token string `json:"token"`
	}
	status := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "",
		map[string]string{"email": "demo@fintech.dev", "password": "demo123"}, &resp)
	if status != http.StatusOK || resp.Token == "" {
		t.Fatalf("login failed: status %d", status)
	}
	return resp.Token
}

func TestRun_MemoryStorage(t *testing.T) {
	baseURL, stop := startRun(t, baseConfig(freePort(t)))

	var health struct {
		Status string `json:"status"`
	}
	if status := doJSON(t, http.MethodGet, baseURL+"/health", "", nil, &health); status != http.StatusOK || health.Status != "OK" {
		t.Errorf("unexpected health: %d %q", status, health.Status)
	}

	if status := doJSON(t, http.MethodGet, baseURL+"/api/transactions", "", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", status)
	}

	token := login(t, baseURL)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	status := doJSON(t, http.MethodPost, baseURL+"/api/transactions", token,
		map[string]any{"amount": 120.5, "currency": "NGN", "type": "transfer", "toUser": "merchant-1"}, &created)
	if status != http.StatusCreated || created.ID == "" || created.Status != "completed" {
		t.Errorf("unexpected create result: %d %+v", status, created)
	}

	var listed struct {
		Transactions []struct {
			ID string `json:"id"`
		} `json:"transactions"`
	}
	if status := doJSON(t, http.MethodGet, baseURL+"/api/transactions?limit=1", token, nil, &listed); status != http.StatusOK {
		t.Errorf("list status %d", status)
	}
	if len(listed.Transactions) != 1 || listed.Transactions[0].ID != created.ID {
		t.Errorf("newest transaction not listed first: %+v", listed.Transactions)
	}

	// Without an exchanger, cross currency cash-outs are rejected.
	if status := doJSON(t, http.MethodPost, baseURL+"/api/bolt/cashout", token,
		map[string]any{"driverId": "drv-1", "amount": 100, "targetCurrency": "EUR"}, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 for conversion without exchanger, got %d", status)
	}

	if err := stop(); err != nil {
		t.Fatalf("expected run to stop cleanly, got error: %v", err)
	}
}

func TestRun_PostgresRedisExchanger(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	// ------------------ Postgres container ------------------
	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "user"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: pgReq, Started: true})
	if err != nil {
		t.Fatal(err)
	}
	defer pgContainer.Terminate(ctx)

	pgHost, _ := pgContainer.Host(ctx)
	pgPort, _ := pgContainer.MappedPort(ctx, "5432")

	// ------------------ Redis container ------------------
	redisReq := testcontainers.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: redisReq, Started: true})
	if err != nil {
		t.Fatal(err)
	}
	defer redisContainer.Terminate(ctx)

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, "6379")

	// ------------------ Mock gRPC server ------------------
	grpcAddr, stopGRPC, err := startMockGRPCServer()
	if err != nil {
		t.Fatal(err)
	}
	defer stopGRPC()

	grpcHost, grpcPort, err := net.SplitHostPort(grpcAddr)
	if err != nil {
		t.Fatal(err)
	}

	// ------------------ Run ------------------
	cfg := baseConfig(freePort(t))
	cfg.StorageDriver = driverPostgres
	cfg.PGHost, cfg.PGPort = pgHost, pgPort.Int()
	cfg.PGUser, cfg.PGPassword, cfg.PGDB = "user", "password", "testdb"
	cfg.PGMaxOpenConns, cfg.PGMaxIdleConns = 5, 2
	cfg.VelocityStore = driverRedis
	cfg.RedisHost, cfg.RedisPort = redisHost, redisPort.Int()
	cfg.RedisPoolSize, cfg.RedisMinIdleConns = 10, 2
	cfg.GWHost, cfg.GWPort = grpcHost, grpcPort

	baseURL, stop := startRun(t, cfg)

	var health struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if status := doJSON(t, http.MethodGet, baseURL+"/health", "", nil, &health); status != http.StatusOK {
		t.Errorf("unexpected health status %d: %+v", status, health)
	}
	if health.Checks["postgres"] != "ok" || health.Checks["redis"] != "ok" {
		t.Errorf("unexpected health checks: %v", health.Checks)
	}

	token := login(t, baseURL)

	var cashout struct {
		Transaction struct {
			ID     string  `json:"id"`
			Type   string  `json:"type"`
			Amount float64 `json:"amount"`
		} `json:"transaction"`
		Fee             float64 `json:"fee"`
		NetAmount       float64 `json:"netAmount"`
		ExchangeRate    float64 `json:"exchangeRate"`
		ExchangedAmount float64 `json:"exchangedAmount"`
	}
	status := doJSON(t, http.MethodPost, baseURL+"/api/bolt/cashout", token,
		map[string]any{"driverId": "drv-7", "amount": 200, "currency": "NGN", "targetCurrency": "EUR"}, &cashout)
	if status != http.StatusCreated {
		t.Fatalf("cashout status %d", status)
	}
	if cashout.Transaction.Type != "cashout" || cashout.Fee != 3 || cashout.NetAmount != 197 ||
		cashout.ExchangeRate != 0.5 || cashout.ExchangedAmount != 98.5 {
		t.Errorf("unexpected cashout: %+v", cashout)
	}

	var score struct {
		RiskScore int `json:"riskScore"`
	}
	if status := doJSON(t, http.MethodGet, baseURL+"/api/fraud/risk-score/"+"4f6c8a7e-1b2d-4c3e-9f10-2a3b4c5d6e01", token, nil, &score); status != http.StatusOK {
		t.Errorf("risk score status %d", status)
	}

	if err := stop(); err != nil {
		t.Fatalf("expected run to stop cleanly, got error: %v", err)
	}
}
