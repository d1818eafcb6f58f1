package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upzy-app/hub-api/internal/application/billing"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain/entity"
)

// fakeSubRepo implementação em memória da porta SubscriptionRepository.
type fakeSubRepo struct {
	items []*entity.Subscription
}

func (f *fakeSubRepo) Create(_ context.Context, s *entity.Subscription) error {
	f.items = append(f.items, s)
	return nil
}

func (f *fakeSubRepo) GetByExternalRef(_ context.Context, ref string) (*entity.Subscription, error) {
	for _, s := range f.items {
		if s.ExternalRef == ref {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubRepo) GetActiveByCompanyProduct(_ context.Context, companyID, productID string) (*entity.Subscription, error) {
	for _, s := range f.items {
		if s.CompanyID == companyID && s.ProductID == productID && s.Status == entity.SubscriptionActive {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range f.items {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubRepo) UpdateStatus(_ context.Context, id, status string) error {
	for _, s := range f.items {
		if s.ID == id {
			s.Status = status
		}
	}
	return nil
}

// fakePlanRepo devolve um único plano fixo.
type fakePlanRepo struct {
	plan *entity.Plan
}

func (f *fakePlanRepo) Create(_ context.Context, _ *entity.Plan) error { return nil }

func (f *fakePlanRepo) GetBySlug(_ context.Context, productID, slug string) (*entity.Plan, error) {
	if f.plan != nil && f.plan.ProductID == productID && f.plan.Slug == slug {
		return f.plan, nil
	}
	return nil, nil
}

func (f *fakePlanRepo) ListByProduct(_ context.Context, _ string) ([]*entity.Plan, error) {
	return nil, nil
}

func webhookEvent(event, paymentID, ref string) dto.PaymentWebhookRequest {
	var in dto.PaymentWebhookRequest
	in.Event = event
	in.Payment.ID = paymentID
	in.Payment.ExternalReference = ref
	return in
}

func TestApplyPaymentEvent_CriaAssinaturaAtiva(t *testing.T) {
	subRepo := &fakeSubRepo{}
	planRepo := &fakePlanRepo{plan: &entity.Plan{
		ProductID:    "p-1",
		Slug:         "pro",
		PriceMonthly: decimal.NewFromInt(99),
	}}
	uc := billing.NewSubscriptionUseCase(subRepo, planRepo)

	ref := billing.BuildExternalReference("c-1", "p-1", "pro")
	err := uc.ApplyPaymentEvent(context.Background(), webhookEvent(billing.EventPaymentConfirmed, "pay-1", ref))
	require.NoError(t, err)

	require.Len(t, subRepo.items, 1)
	sub := subRepo.items[0]
	assert.Equal(t, "c-1", sub.CompanyID)
	assert.Equal(t, "p-1", sub.ProductID)
	assert.Equal(t, "pro", sub.PlanSlug)
	assert.Equal(t, entity.SubscriptionActive, sub.Status)
	assert.True(t, decimal.NewFromInt(99).Equal(sub.AmountMonthly))
}

// O gateway reenvia webhooks; o replay do mesmo payment.id não pode criar
// uma segunda assinatura.
func TestApplyPaymentEvent_ReplayIdempotente(t *testing.T) {
	subRepo := &fakeSubRepo{}
	planRepo := &fakePlanRepo{plan: &entity.Plan{ProductID: "p-1", Slug: "pro", PriceMonthly: decimal.NewFromInt(99)}}
	uc := billing.NewSubscriptionUseCase(subRepo, planRepo)

	ref := billing.BuildExternalReference("c-1", "p-1", "pro")
	ev := webhookEvent(billing.EventPaymentConfirmed, "pay-1", ref)

	require.NoError(t, uc.ApplyPaymentEvent(context.Background(), ev))
	require.NoError(t, uc.ApplyPaymentEvent(context.Background(), ev))
	require.NoError(t, uc.ApplyPaymentEvent(context.Background(), ev))

	assert.Len(t, subRepo.items, 1, "replay não deve criar nova assinatura")
}

func TestApplyPaymentEvent_OverdueTransicionaStatus(t *testing.T) {
	subRepo := &fakeSubRepo{}
	planRepo := &fakePlanRepo{plan: &entity.Plan{ProductID: "p-1", Slug: "pro", PriceMonthly: decimal.NewFromInt(99)}}
	uc := billing.NewSubscriptionUseCase(subRepo, planRepo)

	ref := billing.BuildExternalReference("c-1", "p-1", "pro")
	require.NoError(t, uc.ApplyPaymentEvent(context.Background(), webhookEvent(billing.EventPaymentConfirmed, "pay-1", ref)))
	require.NoError(t, uc.ApplyPaymentEvent(context.Background(), webhookEvent(billing.EventPaymentOverdue, "pay-1", ref)))

	require.Len(t, subRepo.items, 1)
	assert.Equal(t, entity.SubscriptionPastDue, subRepo.items[0].Status)
}

func TestApplyPaymentEvent_EventoDesconhecidoIgnorado(t *testing.T) {
	subRepo := &fakeSubRepo{}
	uc := billing.NewSubscriptionUseCase(subRepo, &fakePlanRepo{})

	err := uc.ApplyPaymentEvent(context.Background(), webhookEvent("PAYMENT_UPDATED", "pay-1", "c:p:x"))
	assert.NoError(t, err)
	assert.Empty(t, subRepo.items)
}

func TestApplyPaymentEvent_ReferenciaInvalida(t *testing.T) {
	subRepo := &fakeSubRepo{}
	uc := billing.NewSubscriptionUseCase(subRepo, &fakePlanRepo{})

	err := uc.ApplyPaymentEvent(context.Background(), webhookEvent(billing.EventPaymentConfirmed, "pay-1", "sem-formato"))
	assert.Error(t, err)
	assert.Empty(t, subRepo.items)
}
