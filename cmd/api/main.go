package main

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"fooddash/internal/auth"
	"fooddash/internal/db"
	"fooddash/internal/notifications"
	"fooddash/internal/payments"
	"fooddash/internal/push"
	"fooddash/internal/ratelimiter"
	"fooddash/internal/store"

	"github.com/9ssi7/exponent"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 20
	defaultEnabled := true

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            time.Minute,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var version = "1.0.0"

//	@title			Fooddash API
//	@description	Payments and push notification dispatch for the Fooddash delivery app.

//	@contact.name	API Support
//	@contact.email	support@fooddash.app

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	// .env is optional; production sets the environment directly
	_ = godotenv.Load()

	cfg := config{
		addr:   envString("ADDR", ":8080"),
		env:    envString("ENV", "development"),
		apiURL: envString("EXTERNAL_URL", "localhost:8080"),
		db: dbConfig{
			addr:         os.Getenv("DB_ADDR"),
			maxOpenConns: envInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleTime:  envString("DB_MAX_IDLE_TIME", "15m"),
		},
		paystack: paystackConfig{
			secretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
			baseURL:   os.Getenv("PAYSTACK_BASE_URL"),
		},
		firebase: firebaseConfig{
			projectID:       os.Getenv("FIREBASE_PROJECT_ID"),
			serverKey:       os.Getenv("FIREBASE_SERVER_KEY"),
			credentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		},
		expoEnabled:    envBool("EXPO_ENABLED", false),
		promoBatchSize: envInt("PROMO_BATCH_SIZE", notifications.DefaultBatchSize),
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: os.Getenv("AUTH_TOKEN_SECRET"),
				iss:    os.Getenv("AUTH_TOKEN_ISSUER"),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	// Database
	pool, err := db.New(cfg.db.addr, int32(cfg.db.maxOpenConns), cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	storage := store.NewStorage(pool)

	// Push
	sender, err := newPushSender(cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}

	notificationService := &notifications.Service{
		Devices:    storage.Devices,
		Profiles:   storage.Profiles,
		Campaigns:  storage.Campaigns,
		Dispatcher: notifications.NewDispatcher(sender, cfg.promoBatchSize),
		Logger:     logger,
	}

	// Payments
	paymentManager := payments.NewPaymentManager()
	paymentManager.RegisterGateway(payments.Paystack, payments.NewPaystackAdapter(cfg.paystack.secretKey, cfg.paystack.baseURL))
	if cfg.paystack.secretKey == "" {
		logger.Warn("PAYSTACK_SECRET_KEY is not set, payment endpoints will fail")
	}

	// Rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	// Authenticator
	var authenticator auth.Authenticator
	if cfg.auth.token.secret != "" {
		authenticator = auth.NewJWTAuthenticator(cfg.auth.token.secret, cfg.auth.token.iss, time.Hour)
	} else {
		logger.Warn("AUTH_TOKEN_SECRET is not set, service authentication is disabled")
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		payments:      paymentManager,
		notifier:      notificationService,
		authenticator: authenticator,
		rateLimiter:   rateLimiter,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats(pool)
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	app.runEvery(bgCtx, "ratelimiter-sweep", cfg.rateLimiter.TimeFrame, rateLimiter.Sweep)

	mux := app.mount()

	logger.Fatal(app.run(mux))
}

// newPushSender prefers the Admin SDK when a service account file is configured and falls
// back to the FCM HTTP v1 endpoint with a server key.
func newPushSender(cfg config, logger *zap.SugaredLogger) (push.Sender, error) {
	var fcm push.Sender
	if cfg.firebase.credentialsFile != "" {
		s, err := push.NewFirebaseSender(context.Background(), cfg.firebase.projectID, cfg.firebase.credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("firebase sender: %w", err)
		}
		fcm = s
		logger.Infow("push via firebase admin sdk", "project", cfg.firebase.projectID)
	} else {
		fcm = push.NewFCMHTTPSender(cfg.firebase.projectID, cfg.firebase.serverKey)
		logger.Infow("push via fcm http v1", "project", cfg.firebase.projectID)
	}

	router := &push.Router{FCM: fcm}
	if cfg.expoEnabled {
		router.Expo = push.NewExpoSender(exponent.NewClient())
		logger.Info("expo push tokens enabled")
	}
	return router, nil
}
