package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"

	httpadp "vms-backend/internal/adapter/http"
	"vms-backend/internal/adapter/repository/gormrepo"
	"vms-backend/internal/config"
	"vms-backend/internal/infrastructure/cache"
	"vms-backend/internal/infrastructure/db"
	"vms-backend/internal/infrastructure/mail"
	"vms-backend/internal/infrastructure/storage"
	"vms-backend/internal/usecase/account"
	"vms-backend/internal/usecase/analytics"
	"vms-backend/internal/usecase/auth"
	"vms-backend/internal/usecase/dashboard"
	"vms-backend/internal/usecase/evaluation"
	"vms-backend/internal/usecase/event"
	"vms-backend/internal/usecase/feedback"
	"vms-backend/internal/usecase/ingest"
	"vms-backend/internal/usecase/membership"
	"vms-backend/internal/usecase/report"
	"vms-backend/internal/usecase/requirement"
)

func main() {
	cfg := config.Load()

	logger := log.New("vms")
	logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line}")
	logger.SetLevel(log.INFO)
	if cfg.Debug {
		logger.SetLevel(log.DEBUG)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	if err := gormrepo.Migrate(gdb); err != nil {
		logger.Fatalf("migrate: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Fatalf("database handle: %v", err)
	}
	tx := gormrepo.NewGormUoW(gdb)

	var (
		rdb         *redis.Client
		resultCache analytics.Cache
	)
	if cfg.RedisAddr != "" {
		if rdb, err = cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB); err != nil {
			logger.Fatalf("redis: %v", err)
		}
		resultCache = cache.NewResultCache(rdb, "vms:analytics:")
	} else {
		logger.Warn("REDIS_ADDR not set: idempotency and analytics caching disabled")
	}

	var sender mail.Sender = mail.NewLogSender(logger)
	if cfg.SendgridAPIKey != "" {
		sender = mail.NewSendgridSender(cfg.SendgridAPIKey, cfg.MailFrom, cfg.MailFromName)
	}
	mailer := mail.NewMailer(sender, mail.NewRenderer(cfg.MailFromName, cfg.FrontendBaseURL), logger, cfg.MailWorkers, cfg.MailQueueSize)

	blobs, err := storage.NewLocalStore(cfg.UploadDir, "/uploads", cfg.UploadMaxBytes)
	if err != nil {
		logger.Fatalf("upload dir: %v", err)
	}

	authUC := auth.NewUsecase(tx, cfg.SessionTTL)
	members := membership.NewUsecase(tx, mailer)
	events := event.NewUsecase(tx)
	jobs := ingest.NewUsecase(tx, cfg.Location(), logger)
	analyticsUC := analytics.NewUsecase(tx, jobs, resultCache, time.Duration(cfg.AnalyticsTTLSecs)*time.Second, logger)
	requirements := requirement.NewUsecase(tx, blobs, mailer)
	evaluations := evaluation.NewUsecase(tx)
	members.OnChange(analyticsUC.Invalidate)
	events.OnChange(analyticsUC.Invalidate)
	requirements.OnChange(analyticsUC.Invalidate)
	evaluations.OnChange(analyticsUC.Invalidate)

	routes := httpadp.RouterConfig{
		Sessions:       authUC,
		Redis:          rdb,
		IdempotencyTTL: time.Duration(cfg.IdempTTLSecs) * time.Second,
		UploadDir:      cfg.UploadDir,
		AllowOrigins:   []string{cfg.FrontendBaseURL},
	}
	e := httpadp.NewServer(routes)
	e.Logger = logger
	e.Use(middleware.Logger())
	httpadp.Register(e, httpadp.Handlers{
		Health:      httpadp.NewHandler(sqlDB),
		Auth:        httpadp.NewAuthHandler(authUC, members),
		Accounts:    httpadp.NewAccountHandler(account.NewUsecase(tx)),
		Membership:  httpadp.NewMembershipHandler(members),
		Events:      httpadp.NewEventHandler(events),
		Requirement: httpadp.NewRequirementHandler(requirements),
		Evaluation:  httpadp.NewEvaluationHandler(evaluations),
		Reports:     httpadp.NewReportHandler(report.NewUsecase(tx, blobs)),
		Feedback:    httpadp.NewFeedbackHandler(feedback.NewUsecase(tx)),
		Dashboard:   httpadp.NewDashboardHandler(dashboard.NewUsecase(tx, events, cfg.Location())),
		Analytics:   httpadp.NewAnalyticsHandler(analyticsUC),
	}, routes)

	go func() {
		addr := ":" + cfg.AppPort
		logger.Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	mailer.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	_ = sqlDB.Close()
}
