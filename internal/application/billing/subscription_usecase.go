// Package billing consolida o pós-pagamento: o webhook do gateway é a fonte
// de verdade do estado da assinatura. O checkout nunca grava assinatura;
// a tela de sucesso é só conveniência de UX.
package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/internal/domain/repository"
)

// Eventos do gateway reconhecidos pelo webhook.
const (
	EventPaymentConfirmed = "PAYMENT_CONFIRMED"
	EventPaymentReceived  = "PAYMENT_RECEIVED"
	EventPaymentOverdue   = "PAYMENT_OVERDUE"
)

// ExternalReference composta no submit do checkout e devolvida pelo gateway
// no webhook: companyID:productID:planSlug.
func BuildExternalReference(companyID, productID, planSlug string) string {
	return strings.Join([]string{companyID, productID, planSlug}, ":")
}

func parseExternalReference(ref string) (companyID, productID, planSlug string, err error) {
	parts := strings.Split(ref, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("billing: externalReference inválida: %q", ref)
	}
	return parts[0], parts[1], parts[2], nil
}

// SubscriptionUseCase aplica eventos de pagamento sobre assinaturas.
type SubscriptionUseCase struct {
	subRepo  repository.SubscriptionRepository
	planRepo repository.PlanRepository
}

// NewSubscriptionUseCase constrói o caso de uso de assinaturas.
func NewSubscriptionUseCase(subRepo repository.SubscriptionRepository, planRepo repository.PlanRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{subRepo: subRepo, planRepo: planRepo}
}

// ApplyPaymentEvent processa um evento do gateway. Idempotente por
// payment.id: o replay do webhook não cria segunda assinatura.
func (uc *SubscriptionUseCase) ApplyPaymentEvent(ctx context.Context, in dto.PaymentWebhookRequest) error {
	status, ok := statusForEvent(in.Event)
	if !ok {
		// Evento não mapeado: aceito e ignorado (o gateway envia vários tipos).
		return nil
	}

	existing, err := uc.subRepo.GetByExternalRef(ctx, in.Payment.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Status == status {
			return nil // replay exato
		}
		return uc.subRepo.UpdateStatus(ctx, existing.ID, status)
	}

	companyID, productID, planSlug, err := parseExternalReference(in.Payment.ExternalReference)
	if err != nil {
		return domain.ErrInvalidInput
	}
	plan, err := uc.planRepo.GetBySlug(ctx, productID, planSlug)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	sub := &entity.Subscription{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		ProductID:     productID,
		PlanSlug:      planSlug,
		Status:        status,
		AmountMonthly: plan.PriceMonthly,
		ExternalRef:   in.Payment.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return uc.subRepo.Create(ctx, sub)
}

// GetActive devolve a assinatura ativa da empresa para o produto, ou nil.
// Alimenta o gate de assinatura das rotas de produto.
func (uc *SubscriptionUseCase) GetActive(ctx context.Context, companyID, productID string) (*entity.Subscription, error) {
	return uc.subRepo.GetActiveByCompanyProduct(ctx, companyID, productID)
}

// ListByCompany lista as assinaturas de uma empresa.
func (uc *SubscriptionUseCase) ListByCompany(ctx context.Context, companyID string) ([]dto.SubscriptionResponse, error) {
	list, err := uc.subRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubscriptionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SubscriptionResponse{
			ID:            s.ID,
			CompanyID:     s.CompanyID,
			ProductID:     s.ProductID,
			PlanSlug:      s.PlanSlug,
			Status:        s.Status,
			AmountMonthly: s.AmountMonthly,
		})
	}
	return out, nil
}

func statusForEvent(event string) (string, bool) {
	switch event {
	case EventPaymentConfirmed, EventPaymentReceived:
		return entity.SubscriptionActive, true
	case EventPaymentOverdue:
		return entity.SubscriptionPastDue, true
	default:
		return "", false
	}
}
