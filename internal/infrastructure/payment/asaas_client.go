// Package payment implementa o porto de gateway de pagamento do checkout
// sobre a API REST estilo Asaas (assinaturas com cartão e PIX).
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/upzy-app/hub-api/internal/application/checkout"
	"github.com/upzy-app/hub-api/pkg/config"
	"github.com/upzy-app/hub-api/pkg/logger"
)

var _ checkout.Gateway = (*AsaasClient)(nil)

// AsaasClient cliente HTTP do gateway. Autentica com o header access_token;
// a BaseURL distingue sandbox de produção.
type AsaasClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// NewAsaasClient constrói o cliente do gateway. O timeout do http.Client é
// o teto absoluto; chamadas individuais ainda respeitam o contexto.
func NewAsaasClient(cfg config.PaymentConfig, log *logger.Logger) *AsaasClient {
	timeout := time.Duration(cfg.SubmitTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AsaasClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ── Payloads da API ───────────────────────────────────────────────────────────

type asaasCreditCard struct {
	Number      string `json:"number"`
	HolderName  string `json:"holderName"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CCV         string `json:"ccv"`
}

type asaasHolderInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpfCnpj"`
	PostalCode    string `json:"postalCode"`
	AddressNumber string `json:"addressNumber"`
	Phone         string `json:"phone"`
}

type asaasSubscriptionRequest struct {
	BillingType       string           `json:"billingType"` // CREDIT_CARD | PIX
	Cycle             string           `json:"cycle"`       // MONTHLY | YEARLY
	ExternalReference string           `json:"externalReference"`
	CustomerName      string           `json:"customerName"`
	CustomerEmail     string           `json:"customerEmail"`
	CustomerCpfCnpj   string           `json:"customerCpfCnpj"`
	CustomerPhone     string           `json:"customerPhone"`
	CreditCard        *asaasCreditCard `json:"creditCard,omitempty"`
	CreditCardHolder  *asaasHolderInfo `json:"creditCardHolderInfo,omitempty"`
}

type asaasSubscriptionResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	PaymentID string `json:"paymentId"`
	PixQRCode struct {
		EncodedImage string `json:"encodedImage"`
		Payload      string `json:"payload"`
	} `json:"pixQrCode"`
	Errors []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"errors"`
}

type asaasPaymentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"` // PENDING, CONFIRMED, RECEIVED, ...
}

// ── Porta Gateway ─────────────────────────────────────────────────────────────

// CreateSubscription cria a assinatura no gateway. Falha de negócio (cartão
// recusado, dados rejeitados) volta como Success=false com a mensagem do
// gateway; erro de transporte volta como error.
func (c *AsaasClient) CreateSubscription(ctx context.Context, req *checkout.SubscriptionRequest) (*checkout.SubscriptionResult, error) {
	payload := asaasSubscriptionRequest{
		BillingType:       req.BillingType,
		Cycle:             req.Cycle,
		ExternalReference: req.ExternalReference,
		CustomerName:      req.Customer.Name,
		CustomerEmail:     req.Customer.Email,
		CustomerCpfCnpj:   req.Customer.TaxID,
		CustomerPhone:     req.Customer.Phone,
	}
	if req.Card != nil {
		payload.CreditCard = &asaasCreditCard{
			Number:      req.Card.Number,
			HolderName:  req.Holder.Name,
			ExpiryMonth: req.Card.ExpiryMonth,
			ExpiryYear:  req.Card.ExpiryYear,
			CCV:         req.Card.CCV,
		}
		payload.CreditCardHolder = &asaasHolderInfo{
			Name:          req.Holder.Name,
			Email:         req.Holder.Email,
			CpfCnpj:       req.Holder.TaxID,
			PostalCode:    req.Holder.PostalCode,
			AddressNumber: req.Holder.AddressNumber,
			Phone:         req.Holder.Phone,
		}
	}

	var out asaasSubscriptionResponse
	status, err := c.do(ctx, http.MethodPost, "/subscriptions", payload, &out)
	if err != nil {
		return nil, err
	}
	if status >= 400 || len(out.Errors) > 0 {
		msg := ""
		if len(out.Errors) > 0 {
			msg = out.Errors[0].Description
		}
		c.log.Warn().Int("status", status).Str("gateway_error", msg).Msg("gateway rejeitou a assinatura")
		return &checkout.SubscriptionResult{Success: false, ErrorMessage: msg}, nil
	}

	return &checkout.SubscriptionResult{
		Success:          true,
		PaymentID:        out.PaymentID,
		PixQRCodeBase64:  out.PixQRCode.EncodedImage,
		PixCopyPasteCode: out.PixQRCode.Payload,
	}, nil
}

// GetPaymentStatus consulta o status de um pagamento (polling PIX).
func (c *AsaasClient) GetPaymentStatus(ctx context.Context, paymentID string) (*checkout.PaymentStatus, error) {
	var out asaasPaymentResponse
	status, err := c.do(ctx, http.MethodGet, "/payments/"+paymentID, nil, &out)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("consultar pagamento %s: HTTP %d", paymentID, status)
	}
	paid := out.Status == "CONFIRMED" || out.Status == "RECEIVED"
	return &checkout.PaymentStatus{Paid: paid}, nil
}

// do executa a chamada HTTP e decodifica a resposta JSON em out.
func (c *AsaasClient) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("serializar requisição: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("montar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("chamar gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("ler resposta do gateway: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decodificar resposta do gateway: %w", err)
		}
	}
	return resp.StatusCode, nil
}
