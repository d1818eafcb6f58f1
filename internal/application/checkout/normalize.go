package checkout

import (
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/pkg/brdoc"
	"github.com/upzy-app/hub-api/pkg/card"
)

// applyInput normaliza a entrada do formulário sobre a sessão: máscaras de
// documento/telefone/CEP, agrupamento do cartão e redetecção da bandeira a
// cada atualização. Chamar com o lock da sessão.
func applyInput(s *Session, in dto.CheckoutFormInput) {
	s.Form.Name = in.Name
	s.Form.Email = in.Email
	s.Form.Document = brdoc.FormatDocument(in.Document)
	s.Form.Phone = brdoc.FormatPhone(in.Phone)

	if in.PaymentMethod == MethodCard || in.PaymentMethod == MethodPix {
		s.Form.PaymentMethod = in.PaymentMethod
	}
	if in.Cycle == entity.CycleMonthly || in.Cycle == entity.CycleYearly {
		s.Cycle = in.Cycle
	}

	s.Form.CardNumber = card.FormatNumber(in.CardNumber)
	s.Form.CardHolder = in.CardHolder
	s.Form.CardExpiry = card.FormatExpiry(in.CardExpiry)
	s.Form.CardCVV = in.CardCVV
	s.CardBrand = card.DetectBrand(in.CardNumber)

	s.Form.CEP = brdoc.FormatCEP(in.CEP)
	s.Form.Street = in.Street
	s.Form.Neighborhood = in.Neighborhood
	s.Form.City = in.City
	s.Form.State = in.State
	s.Form.AddressNumber = in.AddressNumber
}

// validateForm valida na ordem fixa: documento, telefone e, apenas no
// cartão, número, titular, validade, CVV e CEP completo. Define o primeiro
// erro encontrado e para (sem agregação). PIX pula as checagens de cartão.
// Chamar com o lock da sessão.
func validateForm(s *Session) bool {
	if err := brdoc.ValidateDocument(s.Form.Document); err != nil {
		s.FieldErr = &dto.FieldError{Field: "document", Message: "CPF/CNPJ inválido"}
		return false
	}
	if err := brdoc.ValidatePhone(s.Form.Phone); err != nil {
		s.FieldErr = &dto.FieldError{Field: "phone", Message: "telefone inválido: informe DDD + número"}
		return false
	}
	if s.Form.PaymentMethod != MethodCard {
		s.FieldErr = nil
		return true
	}
	if len(brdoc.DigitsOnly(s.Form.CardNumber)) < 13 {
		s.FieldErr = &dto.FieldError{Field: "card_number", Message: "número de cartão incompleto"}
		return false
	}
	if s.Form.CardHolder == "" {
		s.FieldErr = &dto.FieldError{Field: "card_holder", Message: "informe o nome impresso no cartão"}
		return false
	}
	if m, y := card.SplitExpiry(s.Form.CardExpiry); m == "" || y == "" {
		s.FieldErr = &dto.FieldError{Field: "card_expiry", Message: "validade deve estar no formato MM/AA"}
		return false
	}
	if !card.ValidCVV(s.Form.CardCVV) {
		s.FieldErr = &dto.FieldError{Field: "card_cvv", Message: "CVV deve ter 3 ou 4 dígitos"}
		return false
	}
	if !brdoc.IsCompleteCEP(s.Form.CEP) {
		s.FieldErr = &dto.FieldError{Field: "cep", Message: "CEP incompleto"}
		return false
	}
	s.FieldErr = nil
	return true
}
