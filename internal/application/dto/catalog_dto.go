package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProductResponse saída de um produto satélite do catálogo.
type ProductResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BasePath string `json:"base_path"`
	Active   bool   `json:"active"`
}

// PlanResponse saída de um plano de assinatura.
type PlanResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	Slug              string          `json:"slug"`
	Name              string          `json:"name"`
	PriceMonthly      decimal.Decimal `json:"price_monthly"`
	PriceYearly       decimal.Decimal `json:"price_yearly"`
	YearlyDiscountPct decimal.Decimal `json:"yearly_discount_pct"`
	Features          json.RawMessage `json:"features"`
	Limits            json.RawMessage `json:"limits"`
}

// SubscriptionResponse saída de uma assinatura da empresa.
type SubscriptionResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	ProductID     string          `json:"product_id"`
	PlanSlug      string          `json:"plan_slug"`
	Status        string          `json:"status"`
	AmountMonthly decimal.Decimal `json:"amount_monthly"`
}
