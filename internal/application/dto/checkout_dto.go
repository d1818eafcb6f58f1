package dto

import "github.com/shopspring/decimal"

// StartCheckoutRequest parâmetros de abertura do checkout (vêm da URL da
// página de pagamento: produto, plano e ciclo pré-selecionado).
type StartCheckoutRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	PlanSlug  string `json:"plan_slug" validate:"required"`
	Cycle     string `json:"cycle" validate:"required,oneof=monthly yearly"`
	CompanyID string `json:"company_id" validate:"required"`
}

// CheckoutFormInput campos do formulário enviados pelo cliente. O servidor
// renormaliza tudo; a máscara aplicada no navegador é só conveniência.
type CheckoutFormInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Document      string `json:"document"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=card pix"`
	Cycle         string `json:"cycle" validate:"omitempty,oneof=monthly yearly"`

	CardNumber string `json:"card_number,omitempty"`
	CardHolder string `json:"card_holder,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCVV    string `json:"card_cvv,omitempty"`

	CEP           string `json:"cep,omitempty"`
	Street        string `json:"street,omitempty"`
	Neighborhood  string `json:"neighborhood,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	AddressNumber string `json:"address_number,omitempty"`
}

// CheckoutSessionResponse estado corrente da sessão devolvido ao cliente.
// Nunca ecoa número de cartão, CVV ou validade.
type CheckoutSessionResponse struct {
	ID            string          `json:"id"`
	State         string          `json:"state"`
	ProductID     string          `json:"product_id,omitempty"`
	ProductName   string          `json:"product_name,omitempty"`
	PlanSlug      string          `json:"plan_slug,omitempty"`
	PlanName      string          `json:"plan_name,omitempty"`
	Cycle         string          `json:"cycle,omitempty"`
	DisplayPrice  decimal.Decimal `json:"display_price"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CardBrand     string          `json:"card_brand,omitempty"`

	FieldError *FieldError `json:"field_error,omitempty"`

	// Presentes apenas no caminho PIX.
	PixQRCodeBase64  string `json:"pix_qr_code_base64,omitempty"`
	PixCopyPasteCode string `json:"pix_copy_paste_code,omitempty"`

	// Presente após confirmação: o cliente redireciona depois do delay.
	RedirectURL        string `json:"redirect_url,omitempty"`
	RedirectDelayMilli int    `json:"redirect_delay_ms,omitempty"`
}

// FieldError erro de validação apontando o campo de origem.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AddressResponse resultado da consulta de CEP.
type AddressResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// PaymentWebhookRequest evento de pagamento enviado pelo gateway.
type PaymentWebhookRequest struct {
	Event   string `json:"event"` // PAYMENT_CONFIRMED, PAYMENT_RECEIVED, PAYMENT_OVERDUE
	Payment struct {
		ID                string `json:"id"`
		ExternalReference string `json:"externalReference"`
		Value             string `json:"value"`
	} `json:"payment"`
}
