package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/upzy-app/hub-api/internal/application/auth"
	"github.com/upzy-app/hub-api/internal/application/billing"
	"github.com/upzy-app/hub-api/internal/application/checkout"
	"github.com/upzy-app/hub-api/internal/application/crossauth"
	"github.com/upzy-app/hub-api/internal/application/usecase"
	infraaddress "github.com/upzy-app/hub-api/internal/infrastructure/address"
	infrapayment "github.com/upzy-app/hub-api/internal/infrastructure/payment"
	"github.com/upzy-app/hub-api/internal/infrastructure/postgres"
	httpRouter "github.com/upzy-app/hub-api/internal/interfaces/http"
	"github.com/upzy-app/hub-api/pkg/config"
	"github.com/upzy-app/hub-api/pkg/crosstoken"
	"github.com/upzy-app/hub-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	// Repositórios
	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, membershipRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, membershipRepo, txRunner)
	catalogUC := usecase.NewCatalogUseCase(productRepo, planRepo)
	subUC := billing.NewSubscriptionUseCase(subRepo, planRepo)

	// Acesso cruzado: o signer do token de vida curta
	signer, err := crosstoken.NewSigner(cfg.CrossToken.Secret, cfg.CrossToken.Issuer, cfg.CrossToken.TTLMinutes)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar signer de acesso cruzado")
	}
	crossAuthUC := crossauth.NewCrossAuthUseCase(
		userRepo, companyRepo, membershipRepo, productRepo, signer, cfg.App.PublicURL,
	)

	// Checkout: gateway de pagamento + consulta de CEP
	gateway := infrapayment.NewAsaasClient(cfg.Payment, log)
	addressLookup := infraaddress.NewViaCEPClient(cfg.Address)
	checkoutCtrl := checkout.NewController(
		productRepo, planRepo, gateway, addressLookup,
		checkout.Config{
			PollInterval:    time.Duration(cfg.Checkout.PollIntervalSeconds) * time.Second,
			PollMaxAttempts: cfg.Checkout.PollMaxAttempts,
			SubmitTimeout:   time.Duration(cfg.Payment.SubmitTimeoutSeconds) * time.Second,
			ReturnURLBase:   cfg.App.PublicURL,
		},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Upzy Hub API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		CatalogUC:    catalogUC,
		CrossAuthUC:  crossAuthUC,
		CheckoutCtrl: checkoutCtrl,
		SubUC:        subUC,
		JWTSecret:    cfg.JWT.Secret,
		WebhookToken: cfg.Payment.WebhookToken,
		Logger:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
