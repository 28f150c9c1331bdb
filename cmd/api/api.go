package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fooddash/docs" //this is required to generate swagger docs
	"fooddash/internal/auth"
	"fooddash/internal/notifications"
	"fooddash/internal/payments"
	"fooddash/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// paymentService is what the payment handlers need from payments.PaymentManager.
type paymentService interface {
	InitiatePayment(ctx context.Context, method string, req payments.PaymentRequest) (payments.PaymentResponse, error)
	VerifyPayment(ctx context.Context, method string, req payments.PaymentVerifyRequest) (payments.PaymentVerifyResponse, error)
}

type notifier interface {
	NotifyOrderStatus(ctx context.Context, ev notifications.OrderEvent) (notifications.Outcome, error)
	NotifyDriverLocation(ctx context.Context, loc notifications.DriverLocation) (notifications.Outcome, error)
	SendPromotion(ctx context.Context, p notifications.Promotion) (notifications.Outcome, error)
}

type application struct {
	config        config
	logger        *zap.SugaredLogger
	payments      paymentService
	notifier      notifier
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr           string
	db             dbConfig
	env            string
	apiURL         string
	paystack       paystackConfig
	firebase       firebaseConfig
	expoEnabled    bool
	promoBatchSize int
	auth           authConfig
	rateLimiter    ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type paystackConfig struct {
	secretKey string
	baseURL   string
}

type firebaseConfig struct {
	projectID       string
	serverKey       string
	credentialsFile string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// CORS runs first so preflight never hits auth
		r.Route("/payments", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"POST", "OPTIONS"},
				AllowedHeaders:   []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
				AllowCredentials: false,
				MaxAge:           300,
			}))
			r.Use(app.RateLimiterMiddleware)
			r.Use(app.ServiceTokenMiddleware(""))

			r.Options("/initialize", app.preflightHandler)
			r.Post("/initialize", app.initializePaymentHandler)
			r.Options("/verify", app.preflightHandler)
			r.Post("/verify", app.verifyPaymentHandler)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(app.ServiceTokenMiddleware(auth.ServiceRole))

			r.Post("/order", app.orderNotificationHandler)
			r.Post("/driver-location", app.driverLocationNotificationHandler)
			r.Post("/promotional", app.promotionalNotificationHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 90,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
