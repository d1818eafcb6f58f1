package checkout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/pkg/logger"
)

// --- fakes ---

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) List(_ context.Context, _ bool) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

type fakePlanRepo struct {
	plans map[string]*entity.Plan // chave productID+"/"+slug
}

func (f *fakePlanRepo) Create(_ context.Context, p *entity.Plan) error {
	f.plans[p.ProductID+"/"+p.Slug] = p
	return nil
}

func (f *fakePlanRepo) GetBySlug(_ context.Context, productID, slug string) (*entity.Plan, error) {
	return f.plans[productID+"/"+slug], nil
}

func (f *fakePlanRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Plan, error) {
	var out []*entity.Plan
	for _, p := range f.plans {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	return out, nil
}

// mockGateway conta as chamadas e delega para funções configuráveis, para
// os testes controlarem sucesso, falha e bloqueio em voo.
type mockGateway struct {
	createCalls atomic.Int32
	statusCalls atomic.Int32
	createFn    func(req *SubscriptionRequest) (*SubscriptionResult, error)
	statusFn    func(paymentID string) (*PaymentStatus, error)
}

func (m *mockGateway) CreateSubscription(_ context.Context, req *SubscriptionRequest) (*SubscriptionResult, error) {
	m.createCalls.Add(1)
	if m.createFn == nil {
		return &SubscriptionResult{Success: true, PaymentID: "pay_1"}, nil
	}
	return m.createFn(req)
}

func (m *mockGateway) GetPaymentStatus(_ context.Context, paymentID string) (*PaymentStatus, error) {
	m.statusCalls.Add(1)
	if m.statusFn == nil {
		return &PaymentStatus{Paid: false}, nil
	}
	return m.statusFn(paymentID)
}

type fakeAddressLookup struct {
	fn func(cep string) (*Address, error)
}

func (f *fakeAddressLookup) Lookup(_ context.Context, cep string) (*Address, error) {
	if f.fn == nil {
		return nil, domain.ErrAddressNotFound
	}
	return f.fn(cep)
}

// --- montagem ---

func newTestController(gw Gateway, addr AddressLookup) *Controller {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"crm": {ID: "crm", Name: "Upzy CRM", Active: true, BasePath: "/crm"},
	}}
	plans := &fakePlanRepo{plans: map[string]*entity.Plan{
		"crm/pro": {
			ID:           "plan_pro",
			ProductID:    "crm",
			Slug:         "pro",
			Name:         "Pro",
			PriceMonthly: decimal.NewFromInt(99),
			Active:       true,
		},
	}}
	if addr == nil {
		addr = &fakeAddressLookup{}
	}
	cfg := Config{
		PollInterval:    5 * time.Millisecond,
		PollMaxAttempts: 5,
		SubmitTimeout:   time.Second,
		ReturnURLBase:   "https://hub.upzy.app",
	}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return NewController(products, plans, gw, addr, cfg, log)
}

func startSession(t *testing.T, c *Controller) *dto.CheckoutSessionResponse {
	t.Helper()
	resp, err := c.Start(context.Background(), dto.StartCheckoutRequest{
		ProductID: "crm",
		PlanSlug:  "pro",
		Cycle:     entity.CycleMonthly,
		CompanyID: "co_1",
	})
	require.NoError(t, err)
	require.Equal(t, string(StateCollectingInput), resp.State)
	return resp
}

func validCardInput() dto.CheckoutFormInput {
	return dto.CheckoutFormInput{
		Name:          "Fulano da Silva",
		Email:         "fulano@example.com",
		Document:      "111.444.777-35",
		Phone:         "11987654321",
		PaymentMethod: MethodCard,
		CardNumber:    "4111 1111 1111 1111",
		CardHolder:    "FULANO DA SILVA",
		CardExpiry:    "12/30",
		CardCVV:       "123",
		CEP:           "01310-100",
		Street:        "Avenida Paulista",
		Neighborhood:  "Bela Vista",
		City:          "São Paulo",
		State:         "SP",
		AddressNumber: "1000",
	}
}

func validPixInput() dto.CheckoutFormInput {
	in := validCardInput()
	in.PaymentMethod = MethodPix
	in.CardNumber = ""
	in.CardHolder = ""
	in.CardExpiry = ""
	in.CardCVV = ""
	return in
}

// --- testes ---

func TestStartComPlanoValido(t *testing.T) {
	c := newTestController(&mockGateway{}, nil)
	resp := startSession(t, c)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Upzy CRM", resp.ProductName)
	assert.Equal(t, "Pro", resp.PlanName)
	assert.True(t, resp.DisplayPrice.Equal(decimal.NewFromInt(99)))
}

func TestStartPlanoInexistenteNaoChamaGateway(t *testing.T) {
	gw := &mockGateway{}
	c := newTestController(gw, nil)

	resp, err := c.Start(context.Background(), dto.StartCheckoutRequest{
		ProductID: "crm",
		PlanSlug:  "inexistente",
		Cycle:     entity.CycleMonthly,
		CompanyID: "co_1",
	})
	require.NoError(t, err)
	assert.Equal(t, string(StateNotFound), resp.State)

	// Estado terminal: submeter não dispara nada.
	again, err := c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StateNotFound), again.State)
	assert.Equal(t, int32(0), gw.createCalls.Load())
}

func TestSubmitCartaoConfirma(t *testing.T) {
	var captured *SubscriptionRequest
	gw := &mockGateway{createFn: func(req *SubscriptionRequest) (*SubscriptionResult, error) {
		captured = req
		return &SubscriptionResult{Success: true, PaymentID: "pay_42"}, nil
	}}
	c := newTestController(gw, nil)
	resp := startSession(t, c)

	_, err := c.UpdateForm(context.Background(), resp.ID, validCardInput())
	require.NoError(t, err)

	final, err := c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StateConfirmed), final.State)
	assert.Equal(t, "https://hub.upzy.app/assinaturas?status=sucesso", final.RedirectURL)
	assert.Equal(t, 2500, final.RedirectDelayMilli)

	require.NotNil(t, captured)
	assert.Equal(t, BillingCreditCard, captured.BillingType)
	assert.Equal(t, "11144477735", captured.Customer.TaxID)
	assert.Equal(t, "4111111111111111", captured.Card.Number)
	assert.Equal(t, "12", captured.Card.ExpiryMonth)
	assert.Equal(t, "2030", captured.Card.ExpiryYear)
	assert.Equal(t, "01310100", captured.Holder.PostalCode)
	assert.Equal(t, "co_1:crm:pro", captured.ExternalReference)

	// Dados do cartão são descartados da sessão após a confirmação.
	s := c.store.Get(resp.ID)
	require.NotNil(t, s)
	s.mu.Lock()
	assert.Empty(t, s.Form.CardNumber)
	assert.Empty(t, s.Form.CardCVV)
	assert.Empty(t, s.Form.CardExpiry)
	s.mu.Unlock()
}

func TestSubmitDuploCliqueChamaGatewayUmaVez(t *testing.T) {
	inFlight := make(chan struct{})
	release := make(chan struct{})
	gw := &mockGateway{createFn: func(_ *SubscriptionRequest) (*SubscriptionResult, error) {
		close(inFlight)
		<-release
		return &SubscriptionResult{Success: true, PaymentID: "pay_1"}, nil
	}}
	c := newTestController(gw, nil)
	resp := startSession(t, c)
	_, err := c.UpdateForm(context.Background(), resp.ID, validCardInput())
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = c.Submit(context.Background(), resp.ID)
	}()
	<-inFlight

	// Segundo clique com a primeira submissão em voo: no-op imediato.
	second, err := c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StateSubmitting), second.State)

	close(release)
	wg.Wait()
	assert.Equal(t, int32(1), gw.createCalls.Load())

	final, err := c.Status(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StateConfirmed), final.State)
}

func TestSubmitFalhaGatewayMantemFormulario(t *testing.T) {
	gw := &mockGateway{createFn: func(_ *SubscriptionRequest) (*SubscriptionResult, error) {
		return &SubscriptionResult{Success: false, ErrorMessage: "cartão recusado pela operadora"}, nil
	}}
	c := newTestController(gw, nil)
	resp := startSession(t, c)
	_, err := c.UpdateForm(context.Background(), resp.ID, validCardInput())
	require.NoError(t, err)

	final, err := c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StateCollectingInput), final.State)
	require.NotNil(t, final.FieldError)
	assert.Equal(t, "payment", final.FieldError.Field)
	assert.Equal(t, "cartão recusado pela operadora", final.FieldError.Message)

	// Formulário preservado: dá para corrigir e tentar de novo.
	s := c.store.Get(resp.ID)
	s.mu.Lock()
	assert.Equal(t, "111.444.777-35", s.Form.Document)
	assert.NotEmpty(t, s.Form.CardNumber)
	s.mu.Unlock()
}

func TestSubmitErroTransporteUsaMensagemGenerica(t *testing.T) {
	gw := &mockGateway{createFn: func(_ *SubscriptionRequest) (*SubscriptionResult, error) {
		return nil, errors.New("connection reset")
	}}
	c := newTestController(gw, nil)
	resp := startSession(t, c)
	_, err := c.UpdateForm(context.Background(), resp.ID, validCardInput())
	require.NoError(t, err)

	final, err := c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StateCollectingInput), final.State)
	require.NotNil(t, final.FieldError)
	assert.NotContains(t, final.FieldError.Message, "connection reset")
}

func TestSubmitDocumentoInvalidoNaoChamaGateway(t *testing.T) {
	gw := &mockGateway{}
	c := newTestController(gw, nil)
	resp := startSession(t, c)

	in := validCardInput()
	in.Document = "123.456.789-00"
	_, err := c.UpdateForm(context.Background(), resp.ID, in)
	require.NoError(t, err)

	final, err := c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StateCollectingInput), final.State)
	require.NotNil(t, final.FieldError)
	assert.Equal(t, "document", final.FieldError.Field)
	assert.Equal(t, int32(0), gw.createCalls.Load())
}

func TestPixPollingConfirma(t *testing.T) {
	var polls atomic.Int32
	gw := &mockGateway{
		createFn: func(req *SubscriptionRequest) (*SubscriptionResult, error) {
			return &SubscriptionResult{
				Success:          true,
				PaymentID:        "pay_pix",
				PixQRCodeBase64:  "aW1hZ2Vt",
				PixCopyPasteCode: "00020126580014br.gov.bcb.pix",
			}, nil
		},
		statusFn: func(_ string) (*PaymentStatus, error) {
			// Confirma na terceira consulta.
			return &PaymentStatus{Paid: polls.Add(1) >= 3}, nil
		},
	}
	c := newTestController(gw, nil)
	resp := startSession(t, c)
	_, err := c.UpdateForm(context.Background(), resp.ID, validPixInput())
	require.NoError(t, err)

	after, err := c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StateAwaitingPix), after.State)
	assert.Equal(t, "aW1hZ2Vt", after.PixQRCodeBase64)
	assert.NotEmpty(t, after.PixCopyPasteCode)

	assert.Eventually(t, func() bool {
		st, err := c.Status(resp.ID)
		return err == nil && st.State == string(StateConfirmed)
	}, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, gw.statusCalls.Load(), int32(3))
}

func TestPixPollingEsgotaTentativas(t *testing.T) {
	gw := &mockGateway{createFn: func(_ *SubscriptionRequest) (*SubscriptionResult, error) {
		return &SubscriptionResult{Success: true, PaymentID: "pay_pix", PixCopyPasteCode: "pix"}, nil
	}}
	c := newTestController(gw, nil)
	resp := startSession(t, c)
	_, err := c.UpdateForm(context.Background(), resp.ID, validPixInput())
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		st, err := c.Status(resp.ID)
		return err == nil && st.State == string(StatePixTimeout)
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(5), gw.statusCalls.Load())
}

func TestPixPollingErroTransporteContinua(t *testing.T) {
	var polls atomic.Int32
	gw := &mockGateway{
		createFn: func(_ *SubscriptionRequest) (*SubscriptionResult, error) {
			return &SubscriptionResult{Success: true, PaymentID: "pay_pix", PixCopyPasteCode: "pix"}, nil
		},
		statusFn: func(_ string) (*PaymentStatus, error) {
			if polls.Add(1) < 3 {
				return nil, errors.New("timeout de rede")
			}
			return &PaymentStatus{Paid: true}, nil
		},
	}
	c := newTestController(gw, nil)
	resp := startSession(t, c)
	_, err := c.UpdateForm(context.Background(), resp.ID, validPixInput())
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		st, err := c.Status(resp.ID)
		return err == nil && st.State == string(StateConfirmed)
	}, time.Second, 5*time.Millisecond)
}

func TestCloseCancelaPollingERemoveSessao(t *testing.T) {
	gw := &mockGateway{createFn: func(_ *SubscriptionRequest) (*SubscriptionResult, error) {
		return &SubscriptionResult{Success: true, PaymentID: "pay_pix", PixCopyPasteCode: "pix"}, nil
	}}
	c := newTestController(gw, nil)
	resp := startSession(t, c)
	_, err := c.UpdateForm(context.Background(), resp.ID, validPixInput())
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)

	c.Close(resp.ID)

	_, err = c.Status(resp.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// O loop de polling para: a contagem de consultas estabiliza.
	time.Sleep(20 * time.Millisecond)
	before := gw.statusCalls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, gw.statusCalls.Load())
}

func TestUpdateFormPreencheEnderecoPorCEP(t *testing.T) {
	addr := &fakeAddressLookup{fn: func(cep string) (*Address, error) {
		assert.Equal(t, "01310100", cep)
		return &Address{
			CEP:          "01310100",
			Street:       "Avenida Paulista",
			Neighborhood: "Bela Vista",
			City:         "São Paulo",
			State:        "SP",
		}, nil
	}}
	c := newTestController(&mockGateway{}, addr)
	resp := startSession(t, c)

	in := validCardInput()
	in.Street = ""
	in.Neighborhood = ""
	in.City = ""
	in.State = ""
	_, err := c.UpdateForm(context.Background(), resp.ID, in)
	require.NoError(t, err)

	s := c.store.Get(resp.ID)
	s.mu.Lock()
	assert.Equal(t, "Avenida Paulista", s.Form.Street)
	assert.Equal(t, "SP", s.Form.State)
	s.mu.Unlock()
}

func TestUpdateFormCEPNaoEncontradoNaoBloqueia(t *testing.T) {
	c := newTestController(&mockGateway{}, &fakeAddressLookup{})
	resp := startSession(t, c)

	in := validCardInput()
	in.Street = ""
	up, err := c.UpdateForm(context.Background(), resp.ID, in)
	require.NoError(t, err)
	require.NotNil(t, up.FieldError)
	assert.Equal(t, "cep", up.FieldError.Field)

	// Preenchimento manual segue valendo: submissão passa.
	in.Street = "Avenida Paulista"
	_, err = c.UpdateForm(context.Background(), resp.ID, in)
	require.NoError(t, err)
	final, err := c.Submit(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(StateConfirmed), final.State)
}

func TestLookupAddressCEPInvalido(t *testing.T) {
	c := newTestController(&mockGateway{}, nil)
	_, err := c.LookupAddress(context.Background(), "0131")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
