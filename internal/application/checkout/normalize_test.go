package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/pkg/card"
)

func sessionWith(in dto.CheckoutFormInput) *Session {
	s := &Session{State: StateCollectingInput, Cycle: "monthly"}
	applyInput(s, in)
	return s
}

func TestApplyInputNormalizaMascaras(t *testing.T) {
	s := sessionWith(dto.CheckoutFormInput{
		Document:   "11144477735",
		Phone:      "11987654321",
		CardNumber: "4111111111111111",
		CardExpiry: "1230",
		CEP:        "01310100",
	})

	assert.Equal(t, "111.444.777-35", s.Form.Document)
	assert.Equal(t, "(11) 98765-4321", s.Form.Phone)
	assert.Equal(t, "4111 1111 1111 1111", s.Form.CardNumber)
	assert.Equal(t, "12/30", s.Form.CardExpiry)
	assert.Equal(t, "01310-100", s.Form.CEP)
	assert.Equal(t, card.BrandVisa, s.CardBrand)
}

func TestApplyInputRedetectaBandeira(t *testing.T) {
	s := sessionWith(dto.CheckoutFormInput{CardNumber: "4111"})
	assert.Equal(t, card.BrandVisa, s.CardBrand)

	applyInput(s, dto.CheckoutFormInput{CardNumber: "5555"})
	assert.Equal(t, card.BrandMastercard, s.CardBrand)
}

func TestApplyInputIgnoraMetodoECicloDesconhecidos(t *testing.T) {
	s := sessionWith(dto.CheckoutFormInput{PaymentMethod: MethodPix, Cycle: "yearly"})
	assert.Equal(t, MethodPix, s.Form.PaymentMethod)
	assert.Equal(t, "yearly", s.Cycle)

	applyInput(s, dto.CheckoutFormInput{PaymentMethod: "boleto", Cycle: "weekly"})
	assert.Equal(t, MethodPix, s.Form.PaymentMethod)
	assert.Equal(t, "yearly", s.Cycle)
}

func TestValidateFormOrdemDosErros(t *testing.T) {
	base := dto.CheckoutFormInput{
		Document:      "111.444.777-35",
		Phone:         "11987654321",
		PaymentMethod: MethodCard,
		CardNumber:    "4111 1111 1111 1111",
		CardHolder:    "FULANO",
		CardExpiry:    "12/30",
		CardCVV:       "123",
		CEP:           "01310-100",
	}

	cases := []struct {
		name   string
		mutate func(in *dto.CheckoutFormInput)
		field  string
	}{
		{"documento antes de tudo", func(in *dto.CheckoutFormInput) {
			in.Document = "000"
			in.Phone = "12"
			in.CardNumber = "4111"
		}, "document"},
		{"telefone antes do cartao", func(in *dto.CheckoutFormInput) {
			in.Phone = "12"
			in.CardNumber = "4111"
		}, "phone"},
		{"numero do cartao", func(in *dto.CheckoutFormInput) { in.CardNumber = "4111" }, "card_number"},
		{"titular", func(in *dto.CheckoutFormInput) { in.CardHolder = "" }, "card_holder"},
		{"validade", func(in *dto.CheckoutFormInput) { in.CardExpiry = "13" }, "card_expiry"},
		{"cvv", func(in *dto.CheckoutFormInput) { in.CardCVV = "12" }, "card_cvv"},
		{"cep", func(in *dto.CheckoutFormInput) { in.CEP = "01310" }, "cep"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			s := sessionWith(in)
			assert.False(t, validateForm(s))
			require.NotNil(t, s.FieldErr)
			assert.Equal(t, tc.field, s.FieldErr.Field)
		})
	}
}

func TestValidateFormPixDispensaCartao(t *testing.T) {
	s := sessionWith(dto.CheckoutFormInput{
		Document:      "111.444.777-35",
		Phone:         "11987654321",
		PaymentMethod: MethodPix,
	})
	assert.True(t, validateForm(s))
	assert.Nil(t, s.FieldErr)
}

func TestValidateFormValidoLimpaErroAnterior(t *testing.T) {
	in := dto.CheckoutFormInput{
		Document:      "111.444.777-35",
		Phone:         "11987654321",
		PaymentMethod: MethodCard,
		CardNumber:    "4111 1111 1111 1111",
		CardHolder:    "FULANO",
		CardExpiry:    "12/30",
		CardCVV:       "123",
		CEP:           "01310-100",
	}
	s := sessionWith(in)
	s.FieldErr = &dto.FieldError{Field: "payment", Message: "falha anterior"}
	assert.True(t, validateForm(s))
	assert.Nil(t, s.FieldErr)
}
