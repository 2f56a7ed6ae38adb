package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"eventregistration/config"
	_ "eventregistration/docs"
	"eventregistration/internal/adapters/audit"
	"eventregistration/internal/adapters/auth"
	"eventregistration/internal/adapters/email"
	"eventregistration/internal/adapters/notify/telegram"
	"eventregistration/internal/adapters/payment/midtrans"
	"eventregistration/internal/adapters/payment/qrpay"
	"eventregistration/internal/adapters/payment/sessionstore"
	httpdelivery "eventregistration/internal/delivery/http"
	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/domain"
	"eventregistration/internal/platform/metrics"
	redisplatform "eventregistration/internal/platform/redis"
	"eventregistration/internal/repository/postgres"
	"eventregistration/internal/services"
)

const qrSize = 256

// @title Event Registration API
// @version 1.0
// @description Registration lifecycle and payment reconciliation for finite-capacity events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	redisClient, err := redisplatform.New(ctx, redisplatform.Config{URL: cfg.Redis.URL})
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)

	checkout := midtrans.NewGateway(midtrans.Config{
		ServerKey:  cfg.Payment.MidtransServerKey,
		Production: cfg.Payment.MidtransProduction,
		FinishURL:  cfg.Payment.CheckoutFinishURL,
		Currency:   cfg.Payment.Currency,
	}, newSessionStore(redisClient, cfg.Payment.SessionTTL), logger, m)

	var scanToPay domain.ScanToPayProvider
	if cfg.Payment.ScanToPayPayee != "" {
		scanToPay, err = qrpay.NewProvider(cfg.Payment.ScanToPayPayee, qrSize)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("SCAN_TO_PAY_PAYEE not set; scan-to-pay registrations are disabled")
	}

	auditSink, closeAudit, err := newAuditSink(cfg.Audit, logger)
	if err != nil {
		return err
	}
	defer closeAudit()

	notifier, err := newNotificationSink(cfg.Notify, db)
	if err != nil {
		return err
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	emailSink := services.NewEmailSink(services.NewEmailService(mailer, renderer, logger), userRepo, eventRepo)

	dispatcher := services.NewDispatcher(notifier, emailSink, auditSink, cfg.EffectTimeout, logger, m)

	registrationSvc := services.NewRegistrationService(eventRepo, registrationRepo, checkout, scanToPay, dispatcher, logger, m, cfg.ServiceTimeout, cfg.Payment.GatewayTimeout)
	reconciliationSvc := services.NewReconciliationService(eventRepo, registrationRepo, checkout, dispatcher, logger, m, cfg.ServiceTimeout, cfg.Payment.GatewayTimeout)
	approvalSvc := services.NewApprovalService(eventRepo, registrationRepo, dispatcher, m, cfg.ServiceTimeout)
	capacitySvc := services.NewCapacityService(eventRepo, registrationRepo, cfg.ServiceTimeout)

	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Logger:         logger,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Gatherer:       reg,
		HealthCheck:    healthCheck(db, redisClient),
		Registration:   controllers.NewRegistrationController(logger, registrationSvc),
		Payment:        controllers.NewPaymentController(logger, reconciliationSvc),
		Approval:       controllers.NewApprovalController(logger, approvalSvc),
		Capacity:       controllers.NewCapacityController(logger, capacitySvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func newSessionStore(client *redis.Client, ttl time.Duration) domain.SessionMetadataStore {
	if client != nil {
		return sessionstore.NewRedis(client, ttl)
	}
	return sessionstore.NewMemory(ttl)
}

func newAuditSink(cfg config.AuditConfig, logger *slog.Logger) (domain.AuditSink, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewLogSink(logger), func() {}, nil
	}
	client, err := audit.NewKafkaClient(cfg.KafkaBrokers, cfg.Topic)
	if err != nil {
		return nil, nil, err
	}
	return audit.NewKafkaPublisher(client, cfg.Topic, audit.WithLogger(logger)), client.Close, nil
}

func newNotificationSink(cfg config.NotifyConfig, db *sql.DB) (domain.NotificationSink, error) {
	if cfg.Provider == "telegram" {
		return telegram.NewSink(cfg.TelegramBotToken, cfg.TelegramChatID)
	}
	return postgres.NewNotificationRepository(db), nil
}

func healthCheck(db *sql.DB, client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		if client != nil {
			return client.Ping(ctx).Err()
		}
		return nil
	}
}
