package usecase

import (
	"context"

	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/internal/domain/repository"
)

// CatalogUseCase consultas do catálogo de produtos satélite e planos.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	planRepo    repository.PlanRepository
}

// NewCatalogUseCase constrói o caso de uso de catálogo.
func NewCatalogUseCase(productRepo repository.ProductRepository, planRepo repository.PlanRepository) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, planRepo: planRepo}
}

// ListProducts lista os produtos ativos do catálogo.
func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// ListPlans lista os planos de um produto.
func (uc *CatalogUseCase) ListPlans(ctx context.Context, productID string) ([]dto.PlanResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.planRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPlanResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		BasePath: p.BasePath,
		Active:   p.Active,
	}
}

func toPlanResponse(p *entity.Plan) dto.PlanResponse {
	return dto.PlanResponse{
		ID:                p.ID,
		ProductID:         p.ProductID,
		Slug:              p.Slug,
		Name:              p.Name,
		PriceMonthly:      p.PriceMonthly,
		PriceYearly:       p.PriceYearly,
		YearlyDiscountPct: p.YearlyDiscountPct,
		Features:          p.Features,
		Limits:            p.Limits,
	}
}
