package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/upzy-app/hub-api/internal/application/checkout"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
)

// CheckoutHandler expõe o ciclo de vida da sessão de checkout: abrir,
// atualizar formulário, submeter, consultar e encerrar.
type CheckoutHandler struct {
	ctrl *checkout.Controller
}

// NewCheckoutHandler constrói o handler de checkout.
func NewCheckoutHandler(ctrl *checkout.Controller) *CheckoutHandler {
	return &CheckoutHandler{ctrl: ctrl}
}

// Start godoc
// @Summary      Abrir sessão de checkout
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartCheckoutRequest  true  "produto, plano e ciclo"
// @Success      201   {object}  dto.CheckoutSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions [post]
func (h *CheckoutHandler) Start(c *fiber.Ctx) error {
	var in dto.StartCheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.CompanyID == "" {
		in.CompanyID = GetCompanyID(c)
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	out, err := h.ctrl.Start(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateForm godoc
// @Summary      Atualizar formulário do checkout
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID da sessão"
// @Param        body  body  dto.CheckoutFormInput  true  "campos do formulário"
// @Success      200   {object}  dto.CheckoutSessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{id}/form [put]
func (h *CheckoutHandler) UpdateForm(c *fiber.Ctx) error {
	var in dto.CheckoutFormInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.ctrl.UpdateForm(c.Context(), c.Params("id"), in)
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Submeter o pagamento
// @Description  Valida o formulário e cria a assinatura no gateway. Idempotente enquanto há submissão em voo.
// @Tags         checkout
// @Produce      json
// @Param        id  path  string  true  "ID da sessão"
// @Success      200  {object}  dto.CheckoutSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{id}/submit [post]
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	out, err := h.ctrl.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Consultar estado da sessão
// @Tags         checkout
// @Produce      json
// @Param        id  path  string  true  "ID da sessão"
// @Success      200  {object}  dto.CheckoutSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{id} [get]
func (h *CheckoutHandler) Status(c *fiber.Ctx) error {
	out, err := h.ctrl.Status(c.Params("id"))
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Encerrar a sessão
// @Description  Cancela o polling PIX pendente e descarta a sessão.
// @Tags         checkout
// @Param        id  path  string  true  "ID da sessão"
// @Success      204
// @Router       /api/checkout/sessions/{id} [delete]
func (h *CheckoutHandler) Close(c *fiber.Ctx) error {
	h.ctrl.Close(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// LookupAddress godoc
// @Summary      Consultar endereço por CEP
// @Tags         checkout
// @Produce      json
// @Param        cep  path  string  true  "CEP (8 dígitos)"
// @Success      200  {object}  dto.AddressResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/address/{cep} [get]
func (h *CheckoutHandler) LookupAddress(c *fiber.Ctx) error {
	out, err := h.ctrl.LookupAddress(c.Context(), c.Params("cep"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "CEP deve ter 8 dígitos"})
		}
		if errors.Is(err, domain.ErrAddressNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CEP_NOT_FOUND", Message: "CEP não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func (h *CheckoutHandler) sessionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "sessão de checkout não encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
