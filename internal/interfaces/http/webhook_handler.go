package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/upzy-app/hub-api/internal/application/billing"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/pkg/logger"
)

// WebhookHandler recebe os eventos de pagamento do gateway. É a única
// escrita de assinaturas do sistema.
type WebhookHandler struct {
	uc           *billing.SubscriptionUseCase
	webhookToken string
	log          *logger.Logger
}

// NewWebhookHandler constrói o handler de webhooks.
func NewWebhookHandler(uc *billing.SubscriptionUseCase, webhookToken string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{uc: uc, webhookToken: webhookToken, log: log}
}

// HandlePayment godoc
// @Summary      Webhook de pagamento do gateway
// @Description  Aplica o evento sobre a assinatura. Idempotente por payment.id; o replay responde 200.
// @Tags         webhooks
// @Accept       json
// @Param        asaas-access-token  header  string                     true  "token configurado no gateway"
// @Param        body                body    dto.PaymentWebhookRequest  true  "evento"
// @Success      200
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/webhooks/payment [post]
func (h *WebhookHandler) HandlePayment(c *fiber.Ctx) error {
	// O gateway manda o token combinado num header próprio; sem match o
	// evento é descartado sem tocar em nada.
	if h.webhookToken == "" || c.Get("asaas-access-token") != h.webhookToken {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token de webhook inválido"})
	}

	var in dto.PaymentWebhookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}

	if err := h.uc.ApplyPaymentEvent(c.Context(), in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound) {
			// Referência que não reconhecemos: loga e responde 200 para o
			// gateway não reentregar para sempre.
			h.log.Warn().
				Str("event", in.Event).
				Str("external_reference", in.Payment.ExternalReference).
				Msg("webhook com referência desconhecida, descartado")
			return c.SendStatus(fiber.StatusOK)
		}
		h.log.Error().Err(err).Str("event", in.Event).Msg("falha ao aplicar evento de pagamento")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "falha ao processar o evento"})
	}

	h.log.Info().
		Str("event", in.Event).
		Str("payment_id", in.Payment.ID).
		Msg("evento de pagamento aplicado")
	return c.SendStatus(fiber.StatusOK)
}
