package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de assinatura. As transições vêm do webhook do gateway de
// pagamento; o checkout nunca grava assinatura diretamente.
const (
	SubscriptionTrial    = "trial"
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// Subscription assinatura de um plano por uma empresa. No máximo uma linha
// ativa por par (empresa, produto).
type Subscription struct {
	ID            string
	CompanyID     string
	ProductID     string
	PlanSlug      string
	Status        string
	AmountMonthly decimal.Decimal
	ExternalRef   string // referência devolvida pelo gateway (idempotência do webhook)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
