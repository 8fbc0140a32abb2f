package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "rentflow-backend/internal/adapter/http"
	appmw "rentflow-backend/internal/adapter/middleware"
	"rentflow-backend/internal/adapter/repository/mysql"
	"rentflow-backend/internal/config"
	agreementDomain "rentflow-backend/internal/domain/agreement"
	applicationDomain "rentflow-backend/internal/domain/application"
	paymentDomain "rentflow-backend/internal/domain/payment"
	tenancyDomain "rentflow-backend/internal/domain/tenancy"
	"rentflow-backend/internal/gateway/paygate"
	"rentflow-backend/internal/infrastructure/cache"
	"rentflow-backend/internal/infrastructure/db"
	"rentflow-backend/internal/notify"
	agreementUsecase "rentflow-backend/internal/usecase/agreement"
	paymentUsecase "rentflow-backend/internal/usecase/payment"
	tenancyUsecase "rentflow-backend/internal/usecase/tenancy"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&applicationDomain.Application{},
		&paymentDomain.PaymentIntent{},
		&agreementDomain.Agreement{},
		&tenancyDomain.Tenancy{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	apps := mysql.NewApplicationRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	agreements := mysql.NewAgreementRepository(gdb)
	tenancies := mysql.NewTenancyRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	gateway := paygate.NewHTTPClient(cfg.GatewayBaseURL, cfg.GatewayToken)
	notifier := notify.NewBestEffort(notify.NewHTTPEmitter(cfg.NotifyBaseURL))

	paymentUC := paymentUsecase.NewUsecase(apps, payments, uow, gateway, notifier)
	tenancyUC := tenancyUsecase.NewUsecase(apps, agreements, tenancies, notifier)
	agreementUC := agreementUsecase.NewUsecase(apps, payments, agreements, uow, tenancyUC, notifier)

	h := httpadp.NewHandler()
	ph := httpadp.NewPaymentHandler(paymentUC, cfg.PollMaxAttempts, cfg.PollMaxIntervalMS)
	ah := httpadp.NewAgreementHandler(agreementUC)
	wh := httpadp.NewWebhookHandler(paymentUC, agreementUC, cfg.GatewayWebhookToken)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	e.GET("/health", h.Health)

	v1 := e.Group("/v1", appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	v1.POST("/applications/:application_id/payment", ph.RequestPayment)
	v1.GET("/payments/:payment_id", ph.GetPayment)
	v1.GET("/payments/:payment_id/status", ph.PollPaymentStatus)
	v1.POST("/agreements/:agreement_id/signatures", ah.Sign)
	v1.GET("/agreements/:agreement_id", ah.GetAgreement)

	// gateway push channel; authed by shared token, not Ax headers
	e.POST("/webhooks/payment-gateway", wh.PaymentConfirmation)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
