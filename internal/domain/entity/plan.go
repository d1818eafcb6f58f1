package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Ciclos de cobrança aceitos no checkout.
const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// Plan plano de assinatura de um produto. ID e Slug são imutáveis depois que
// assinaturas os referenciam.
type Plan struct {
	ID                   string
	ProductID            string
	Slug                 string
	Name                 string
	PriceMonthly         decimal.Decimal
	PriceYearly          decimal.Decimal // zero = sem preço anual próprio
	YearlyDiscountPct    decimal.Decimal
	Features             json.RawMessage // lista JSON de features
	Limits               json.RawMessage // mapa JSON de limites numéricos
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DisplayPrice preço exibido para o ciclo: mensal → PriceMonthly; anual →
// PriceYearly, com fallback para PriceMonthly × 12 quando não definido.
func (p *Plan) DisplayPrice(cycle string) decimal.Decimal {
	if cycle != CycleYearly {
		return p.PriceMonthly
	}
	if p.PriceYearly.IsZero() {
		return p.PriceMonthly.Mul(decimal.NewFromInt(12))
	}
	return p.PriceYearly
}
