package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/upzy-app/hub-api/internal/application/crossauth"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/pkg/crosstoken"
)

// CrossAuthHandler emite tokens de acesso cruzado (hub → produto) e os
// valida para o produto receptor.
type CrossAuthHandler struct {
	uc *crossauth.CrossAuthUseCase
}

// NewCrossAuthHandler constrói o handler de acesso cruzado.
func NewCrossAuthHandler(uc *crossauth.CrossAuthUseCase) *CrossAuthHandler {
	return &CrossAuthHandler{uc: uc}
}

// Issue godoc
// @Summary      Emitir token de acesso cruzado
// @Description  Gera o token de vida curta e a URL de redirect para o produto satélite.
// @Tags         cross-auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrossTokenRequest  true  "produto e empresa de destino"
// @Success      200   {object}  dto.CrossTokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cross-auth/token [post]
func (h *CrossAuthHandler) Issue(c *fiber.Ctx) error {
	var in dto.CrossTokenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	out, err := h.uc.Issue(c.Context(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sessão inválida"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produto ou empresa não encontrados"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "o usuário não pertence à empresa"})
		case errors.Is(err, domain.ErrSigningFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SIGNING_FAILED", Message: "falha ao gerar o token de acesso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar token de acesso cruzado
// @Description  Consumido pelo produto receptor na aterrissagem: devolve os claims do token.
// @Tags         cross-auth
// @Produce      json
// @Param        key  query  string  true  "token de acesso cruzado"
// @Success      200  {object}  dto.CrossValidateResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cross-auth/validate [get]
func (h *CrossAuthHandler) Validate(c *fiber.Ctx) error {
	token := c.Query(crossauth.QueryParamToken)
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "parâmetro 'key' é obrigatório"})
	}
	out, err := h.uc.Validate(token)
	if err != nil {
		// Erros tipados viram mensagens distintas: expirado orienta a voltar
		// ao hub; o resto é rejeição seca.
		switch {
		case errors.Is(err, crosstoken.ErrExpired):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "token expirado, volte ao hub e tente de novo"})
		case errors.Is(err, crosstoken.ErrInvalidSignature):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "assinatura inválida"})
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MALFORMED_TOKEN", Message: "token malformado"})
		}
	}
	return c.JSON(out)
}
