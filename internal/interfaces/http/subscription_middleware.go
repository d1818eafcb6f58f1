package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain/entity"
)

// subscriptionChecker é o contrato mínimo que o middleware precisa para
// verificar assinaturas. Implementado por *billing.SubscriptionUseCase; a
// interface evita o import circular.
type subscriptionChecker interface {
	GetActive(ctx context.Context, companyID, productID string) (*entity.Subscription, error)
}

// RequireSubscription devolve um middleware Fiber que verifica se a empresa
// do token tem assinatura ativa do produto. Usar DEPOIS do AuthMiddleware
// (precisa de LocalCompanyID).
//
// Comportamento:
//   - 403 Forbidden → produto não assinado ou assinatura vencida.
//   - 503 Service Unavailable → falha de infraestrutura ao consultar a DB.
//   - Sem company_id no contexto responde 401 (o AuthMiddleware deveria ter carregado).
func RequireSubscription(productID string, checker subscriptionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id não encontrado no token",
			})
		}

		sub, err := checker.GetActive(c.Context(), companyID, productID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_CHECK_FAILED",
				Message: "não foi possível verificar a assinatura, tente mais tarde",
			})
		}

		if sub == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_REQUIRED",
				Message: "a empresa não tem assinatura ativa do produto '" + productID + "'",
			})
		}

		return c.Next()
	}
}
