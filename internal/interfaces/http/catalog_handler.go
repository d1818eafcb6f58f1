package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/upzy-app/hub-api/internal/application/billing"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/application/usecase"
	"github.com/upzy-app/hub-api/internal/domain"
)

// CatalogHandler expõe o catálogo de produtos/planos e as assinaturas da
// empresa da sessão.
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
	subUC     *billing.SubscriptionUseCase
}

// NewCatalogHandler constrói o handler do catálogo.
func NewCatalogHandler(catalogUC *usecase.CatalogUseCase, subUC *billing.SubscriptionUseCase) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC, subUC: subUC}
}

// ListProducts godoc
// @Summary      Listar produtos do catálogo
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.catalogUC.ListProducts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListPlans godoc
// @Summary      Listar planos de um produto
// @Tags         catalog
// @Produce      json
// @Param        productId  path  string  true  "ID do produto"
// @Success      200  {array}  dto.PlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/products/{productId}/plans [get]
func (h *CatalogHandler) ListPlans(c *fiber.Ctx) error {
	productID := c.Params("productId")
	out, err := h.catalogUC.ListPlans(c.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produto não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListSubscriptions godoc
// @Summary      Listar assinaturas da empresa da sessão
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.SubscriptionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/subscriptions [get]
func (h *CatalogHandler) ListSubscriptions(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sessão sem empresa ativa"})
	}
	out, err := h.subUC.ListByCompany(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
