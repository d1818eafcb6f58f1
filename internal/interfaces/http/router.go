package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/upzy-app/hub-api/internal/application/auth"
	"github.com/upzy-app/hub-api/internal/application/billing"
	"github.com/upzy-app/hub-api/internal/application/checkout"
	"github.com/upzy-app/hub-api/internal/application/crossauth"
	"github.com/upzy-app/hub-api/internal/application/usecase"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/pkg/logger"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	CatalogUC    *usecase.CatalogUseCase
	CrossAuthUC  *crossauth.CrossAuthUseCase
	CheckoutCtrl *checkout.Controller
	SubUC        *billing.SubscriptionUseCase
	JWTSecret    string
	WebhookToken string
	Logger       *logger.Logger
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Validação de token de acesso cruzado (público: chamado pelo produto
	// receptor na aterrissagem, antes de existir sessão lá)
	crossHandler := NewCrossAuthHandler(deps.CrossAuthUC)
	api.Get("/cross-auth/validate", crossHandler.Validate)

	// Webhook do gateway (público, guardado por token próprio no header)
	webhookHandler := NewWebhookHandler(deps.SubUC, deps.WebhookToken, deps.Logger)
	api.Post("/webhooks/payment", webhookHandler.HandlePayment)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Emissão de token de acesso cruzado (protegido: precisa da sessão)
	protected.Post("/cross-auth/token", crossHandler.Issue)

	// Companies + equipe (protegido)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/slug-availability", companyHandler.CheckSlug)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id/branding", companyHandler.UpdateBranding)
	companies.Get("/:id/members", companyHandler.ListMembers)
	companies.Post("/:id/members", companyHandler.AddMember)
	companies.Put("/:id/members/:userId", companyHandler.UpdateMemberRole)
	companies.Delete("/:id/members/:userId", companyHandler.RemoveMember)

	// Catálogo e assinaturas (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.SubUC)
	catalog := protected.Group("/catalog")
	catalog.Get("/products", catalogHandler.ListProducts)
	catalog.Get("/products/:productId/plans", catalogHandler.ListPlans)
	protected.Get("/subscriptions", catalogHandler.ListSubscriptions)

	// Checkout (protegido; contratar planos é gestão de cobrança)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutCtrl)
	sessions := protected.Group("/checkout/sessions", RequireRole(entity.RoleOwner, entity.RoleAdmin))
	sessions.Post("/", checkoutHandler.Start)
	sessions.Get("/:id", checkoutHandler.Status)
	sessions.Put("/:id/form", checkoutHandler.UpdateForm)
	sessions.Post("/:id/submit", checkoutHandler.Submit)
	sessions.Delete("/:id", checkoutHandler.Close)
	protected.Get("/address/:cep", checkoutHandler.LookupAddress)
}
