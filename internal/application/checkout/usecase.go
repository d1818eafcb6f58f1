// Package checkout dirige uma tentativa de pagamento de assinatura do
// início (produto + plano + ciclo na URL) até um estado terminal:
// confirmado, aguardando PIX ou erro recuperável. Máquina de estados por
// sessão, com polling PIX cancelável e guarda contra dupla submissão.
package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/upzy-app/hub-api/internal/application/billing"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/internal/domain/repository"
	"github.com/upzy-app/hub-api/pkg/brdoc"
	"github.com/upzy-app/hub-api/pkg/card"
	"github.com/upzy-app/hub-api/pkg/logger"
)

// redirectDelay espera antes do redirect pós-confirmação, para a animação
// de sucesso terminar no cliente.
const redirectDelay = 2500 * time.Millisecond

// Config parâmetros do ciclo de vida do checkout.
type Config struct {
	PollInterval    time.Duration // intervalo entre consultas de status PIX
	PollMaxAttempts int           // corte do polling (evita loop sem fim)
	SubmitTimeout   time.Duration // timeout da chamada ao gateway
	ReturnURLBase   string        // origem pública do hub para a URL de sucesso
}

// Controller orquestra as sessões de checkout. As dependências chegam por
// injeção (nada de estado global) para os testes suprirem fakes.
type Controller struct {
	products repository.ProductRepository
	plans    repository.PlanRepository
	gateway  Gateway
	address  AddressLookup
	store    *Store
	cfg      Config
	log      *logger.Logger
}

// NewController constrói o controller de checkout.
func NewController(
	products repository.ProductRepository,
	plans repository.PlanRepository,
	gateway Gateway,
	address AddressLookup,
	cfg Config,
	log *logger.Logger,
) *Controller {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.PollMaxAttempts <= 0 {
		cfg.PollMaxAttempts = 60
	}
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = 30 * time.Second
	}
	return &Controller{
		products: products,
		plans:    plans,
		gateway:  gateway,
		address:  address,
		store:    NewStore(),
		cfg:      cfg,
		log:      log,
	}
}

// Start abre uma sessão para exatamente um par plano/ciclo. Produto e plano
// são buscados concorrentemente; ambos precisam terminar antes de sair de
// loading-plan. Qualquer um ausente leva ao estado terminal not-found, e
// nenhuma chamada ao gateway acontece a partir dele.
func (c *Controller) Start(ctx context.Context, in dto.StartCheckoutRequest) (*dto.CheckoutSessionResponse, error) {
	var (
		product *entity.Product
		plan    *entity.Plan
		pErr    error
		plErr   error
		wg      sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		product, pErr = c.products.GetByID(ctx, in.ProductID)
	}()
	go func() {
		defer wg.Done()
		plan, plErr = c.plans.GetBySlug(ctx, in.ProductID, in.PlanSlug)
	}()
	wg.Wait()
	if pErr != nil {
		return nil, pErr
	}
	if plErr != nil {
		return nil, plErr
	}

	cycle := in.Cycle
	if cycle != entity.CycleYearly {
		cycle = entity.CycleMonthly
	}
	s := &Session{
		ID:        uuid.New().String(),
		CompanyID: in.CompanyID,
		Cycle:     cycle,
		Form:      Form{PaymentMethod: MethodCard},
	}
	if product == nil || !product.Active || plan == nil {
		s.State = StateNotFound
	} else {
		s.State = StateCollectingInput
		s.Product = product
		s.Plan = plan
	}
	c.store.Put(s)

	s.mu.Lock()
	defer s.mu.Unlock()
	return c.snapshotLocked(s), nil
}

// UpdateForm aplica a entrada do usuário sobre a sessão: normaliza máscaras,
// redetecta a bandeira do cartão e, ao completar o CEP, resolve o endereço.
// CEP não encontrado vira erro de campo mas nunca impede o preenchimento
// manual.
func (c *Controller) UpdateForm(ctx context.Context, sessionID string, in dto.CheckoutFormInput) (*dto.CheckoutSessionResponse, error) {
	s := c.store.Get(sessionID)
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}

	s.mu.Lock()
	if s.State != StateCollectingInput {
		defer s.mu.Unlock()
		return c.snapshotLocked(s), nil
	}
	hadAddress := s.Form.Street != ""
	applyInput(s, in)
	cep := s.Form.CEP
	needLookup := brdoc.IsCompleteCEP(cep) && !hadAddress && s.Form.Street == ""
	s.mu.Unlock()

	if needLookup && c.address != nil {
		addr, err := c.address.Lookup(ctx, brdoc.DigitsOnly(cep))

		s.mu.Lock()
		if s.State == StateCollectingInput && s.Form.CEP == cep {
			switch {
			case errors.Is(err, domain.ErrAddressNotFound):
				s.FieldErr = &dto.FieldError{Field: "cep", Message: "CEP não encontrado, preencha o endereço manualmente"}
			case err != nil:
				// Falha de transporte na consulta: segue sem pré-preencher.
			case addr != nil:
				s.Form.Street = addr.Street
				s.Form.Neighborhood = addr.Neighborhood
				s.Form.City = addr.City
				s.Form.State = addr.State
			}
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return c.snapshotLocked(s), nil
}

// LookupAddress resolve um CEP avulso (endpoint sem sessão).
func (c *Controller) LookupAddress(ctx context.Context, cep string) (*dto.AddressResponse, error) {
	if err := brdoc.ValidateCEP(cep); err != nil {
		return nil, domain.ErrInvalidInput
	}
	addr, err := c.address.Lookup(ctx, brdoc.DigitsOnly(cep))
	if err != nil {
		return nil, err
	}
	return &dto.AddressResponse{
		CEP:          brdoc.FormatCEP(addr.CEP),
		Street:       addr.Street,
		Neighborhood: addr.Neighborhood,
		City:         addr.City,
		State:        addr.State,
	}, nil
}

// Submit valida o formulário e delega a criação da assinatura ao gateway.
// Guardada: enquanto uma submissão está em voo a chamada é no-op; duplo
// clique resulta em exatamente uma chamada ao gateway. Nenhuma transição é
// cometida antes de o gateway responder.
func (c *Controller) Submit(ctx context.Context, sessionID string) (*dto.CheckoutSessionResponse, error) {
	s := c.store.Get(sessionID)
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}

	s.mu.Lock()
	if s.submitting || s.State != StateCollectingInput {
		defer s.mu.Unlock()
		return c.snapshotLocked(s), nil
	}
	if !validateForm(s) {
		defer s.mu.Unlock()
		return c.snapshotLocked(s), nil
	}
	s.submitting = true
	s.State = StateSubmitting
	s.FieldErr = nil
	req := buildGatewayRequest(s)
	method := s.Form.PaymentMethod
	s.mu.Unlock()

	gctx, cancel := context.WithTimeout(ctx, c.cfg.SubmitTimeout)
	res, err := c.gateway.CreateSubscription(gctx, req)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil || res == nil || !res.Success {
		// Falha no gateway: de volta ao formulário com os dados intactos.
		// Mensagem do gateway vai verbatim quando existir.
		s.State = StateCollectingInput
		msg := "não foi possível processar o pagamento, tente novamente"
		if res != nil && res.ErrorMessage != "" {
			msg = res.ErrorMessage
		}
		s.FieldErr = &dto.FieldError{Field: "payment", Message: msg}
		c.log.Warn().
			Str("session_id", s.ID).
			Str("method", method).
			Err(err).
			Msg("gateway recusou criação de assinatura")
		return c.snapshotLocked(s), nil
	}

	s.PaymentID = res.PaymentID
	if method == MethodCard {
		// Cartão: confirmação síncrona. Os dados do cartão já cumpriram o
		// papel; limpamos a sessão.
		s.Form.CardNumber = ""
		s.Form.CardCVV = ""
		s.Form.CardExpiry = ""
		s.State = StateConfirmed
		s.RedirectURL = c.successURL()
		c.log.Info().Str("session_id", s.ID).Msg("checkout confirmado (cartão)")
		return c.snapshotLocked(s), nil
	}

	// PIX: exibe QR e inicia o polling de confirmação. O contexto do loop é
	// independente da requisição HTTP e cancelado no Close da sessão.
	s.State = StateAwaitingPix
	s.PixQRCodeBase64 = res.PixQRCodeBase64
	s.PixCopyPasteCode = res.PixCopyPasteCode
	pollCtx, cancelPoll := context.WithCancel(context.Background())
	s.cancelPoll = cancelPoll
	go c.pollPix(pollCtx, s, res.PaymentID)
	c.log.Info().Str("session_id", s.ID).Msg("checkout aguardando confirmação PIX")
	return c.snapshotLocked(s), nil
}

// pollPix consulta o status do pagamento em intervalo fixo. Os ticks são
// serializados por construção: o próximo delay só arma depois de a chamada
// anterior retornar. Erros de transporte são engolidos e tentados de novo;
// paid=true encerra com transição única para confirmed; o corte de
// tentativas leva a pix-timeout ("confira mais tarde").
func (c *Controller) pollPix(ctx context.Context, s *Session, paymentID string) {
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.cfg.PollInterval):
		}
		attempts++

		status, err := c.gateway.GetPaymentStatus(ctx, paymentID)
		if err == nil && status != nil && status.Paid {
			s.mu.Lock()
			if s.State == StateAwaitingPix {
				s.State = StateConfirmed
				s.RedirectURL = c.successURL()
				s.stopPolling()
				c.log.Info().Str("session_id", s.ID).Msg("pagamento PIX confirmado")
			}
			s.mu.Unlock()
			return
		}

		if attempts >= c.cfg.PollMaxAttempts {
			s.mu.Lock()
			if s.State == StateAwaitingPix {
				s.State = StatePixTimeout
				s.stopPolling()
				c.log.Warn().Str("session_id", s.ID).Msg("polling PIX esgotou as tentativas")
			}
			s.mu.Unlock()
			return
		}
	}
}

// Status devolve o snapshot corrente da sessão.
func (c *Controller) Status(sessionID string) (*dto.CheckoutSessionResponse, error) {
	s := c.store.Get(sessionID)
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.snapshotLocked(s), nil
}

// Close encerra a sessão no teardown da tela: cancela o polling PIX (sem
// isso o loop viraria goroutine órfã) e remove a sessão do store.
func (c *Controller) Close(sessionID string) {
	s := c.store.Get(sessionID)
	if s == nil {
		return
	}
	s.mu.Lock()
	s.stopPolling()
	s.mu.Unlock()
	c.store.Remove(sessionID)
}

// buildGatewayRequest monta a requisição no formato do gateway. Documento,
// telefone e CEP saem só com dígitos; o bloco de cartão e o holder-info só
// vão no método cartão. Chamar com o lock da sessão.
func buildGatewayRequest(s *Session) *SubscriptionRequest {
	req := &SubscriptionRequest{
		PlanID:            s.Plan.ID,
		ProductID:         s.Product.ID,
		CompanyID:         s.CompanyID,
		BillingType:       BillingPix,
		Cycle:             GatewayCycleMonthly,
		ExternalReference: billing.BuildExternalReference(s.CompanyID, s.Product.ID, s.Plan.Slug),
		Customer: CustomerInfo{
			Name:  s.Form.Name,
			Email: s.Form.Email,
			TaxID: brdoc.DigitsOnly(s.Form.Document),
			Phone: brdoc.DigitsOnly(s.Form.Phone),
		},
	}
	if s.Cycle == entity.CycleYearly {
		req.Cycle = GatewayCycleYearly
	}
	if s.Form.PaymentMethod == MethodCard {
		month, year := card.SplitExpiry(s.Form.CardExpiry)
		req.BillingType = BillingCreditCard
		req.Card = &CardInfo{
			Number:      brdoc.DigitsOnly(s.Form.CardNumber),
			ExpiryMonth: month,
			ExpiryYear:  year,
			CCV:         s.Form.CardCVV,
		}
		req.Holder = &HolderInfo{
			Name:          s.Form.CardHolder,
			Email:         s.Form.Email,
			TaxID:         brdoc.DigitsOnly(s.Form.Document),
			PostalCode:    brdoc.DigitsOnly(s.Form.CEP),
			AddressNumber: s.Form.AddressNumber,
			Phone:         brdoc.DigitsOnly(s.Form.Phone),
		}
	}
	return req
}

func (c *Controller) successURL() string {
	return c.cfg.ReturnURLBase + "/assinaturas?status=sucesso"
}

// snapshotLocked projeta o estado da sessão para o cliente. Nunca inclui
// número de cartão, validade ou CVV. Chamar com o lock da sessão.
func (c *Controller) snapshotLocked(s *Session) *dto.CheckoutSessionResponse {
	resp := &dto.CheckoutSessionResponse{
		ID:            s.ID,
		State:         string(s.State),
		Cycle:         s.Cycle,
		PaymentMethod: s.Form.PaymentMethod,
		CardBrand:     string(s.CardBrand),
		FieldError:    s.FieldErr,
	}
	if s.Product != nil {
		resp.ProductID = s.Product.ID
		resp.ProductName = s.Product.Name
	}
	if s.Plan != nil {
		resp.PlanSlug = s.Plan.Slug
		resp.PlanName = s.Plan.Name
		resp.DisplayPrice = s.Plan.DisplayPrice(s.Cycle)
	}
	if s.State == StateAwaitingPix {
		resp.PixQRCodeBase64 = s.PixQRCodeBase64
		resp.PixCopyPasteCode = s.PixCopyPasteCode
	}
	if s.State == StateConfirmed {
		resp.RedirectURL = s.RedirectURL
		resp.RedirectDelayMilli = int(redirectDelay / time.Millisecond)
	}
	return resp
}
