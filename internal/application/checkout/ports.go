package checkout

import "context"

// Tipos de cobrança e ciclo no formato do gateway.
const (
	BillingCreditCard = "CREDIT_CARD"
	BillingPix        = "PIX"

	GatewayCycleMonthly = "MONTHLY"
	GatewayCycleYearly  = "YEARLY"
)

// Métodos de pagamento como chegam do formulário.
const (
	MethodCard = "card"
	MethodPix  = "pix"
)

// CustomerInfo identificação do pagador.
type CustomerInfo struct {
	Name  string
	Email string
	TaxID string // só dígitos
	Phone string // só dígitos
}

// CardInfo dados do cartão. Nunca logar nem persistir: este struct só
// existe dentro da requisição ao gateway.
type CardInfo struct {
	Number      string
	ExpiryMonth string // 2 dígitos
	ExpiryYear  string // 4 dígitos
	CCV         string
}

// HolderInfo bloco de endereço de cobrança exigido pelo gateway para
// análise antifraude (apenas cartão).
type HolderInfo struct {
	Name          string
	Email         string
	TaxID         string
	PostalCode    string
	AddressNumber string
	Phone         string
}

// SubscriptionRequest requisição de criação de assinatura com pagamento.
type SubscriptionRequest struct {
	PlanID            string
	ProductID         string
	CompanyID         string
	BillingType       string // CREDIT_CARD | PIX
	Cycle             string // MONTHLY | YEARLY
	ExternalReference string // devolvida no webhook de confirmação
	Customer          CustomerInfo
	Card              *CardInfo   // apenas cartão
	Holder            *HolderInfo // apenas cartão
}

// SubscriptionResult resultado do gateway. No caminho PIX vêm o QR code e o
// código copia-e-cola.
type SubscriptionResult struct {
	Success          bool
	PaymentID        string
	PixQRCodeBase64  string
	PixCopyPasteCode string
	ErrorMessage     string
}

// PaymentStatus resposta da consulta de status de um pagamento.
type PaymentStatus struct {
	Paid bool
}

// Gateway porta de saída para o gateway de pagamento. A implementação REST
// vive em infrastructure/payment; para testes injeta-se um mock.
type Gateway interface {
	CreateSubscription(ctx context.Context, req *SubscriptionRequest) (*SubscriptionResult, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (*PaymentStatus, error)
}

// Address endereço resolvido a partir do CEP.
type Address struct {
	CEP          string
	Street       string
	Neighborhood string
	City         string
	State        string
}

// AddressLookup porta de saída da consulta de CEP. CEP inexistente devolve
// domain.ErrAddressNotFound: erro de campo, nunca bloqueio do fluxo.
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}
