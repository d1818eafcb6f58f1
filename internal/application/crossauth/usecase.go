// Package crossauth emite e valida a credencial de acesso cruzado entre o
// hub e os produtos satélite: token assinado, de vida curta e uso único,
// carregando identidade, empresa, papel e branding.
package crossauth

import (
	"context"
	"net/url"
	"strings"

	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/internal/domain/repository"
	"github.com/upzy-app/hub-api/pkg/crosstoken"
)

// LandingPath caminho fixo de aterrissagem no produto receptor, sob o
// base path do produto.
const LandingPath = "/smart-access"

// Parâmetros de query do redirect: o token (credencial bearer) e o slug da
// empresa (permite ao receptor resolver branding antes de validar o token).
const (
	QueryParamToken       = "key"
	QueryParamCompanySlug = "empresa"
)

// CrossAuthUseCase emite tokens de acesso cruzado e monta o redirect.
type CrossAuthUseCase struct {
	userRepo       repository.UserRepository
	companyRepo    repository.CompanyRepository
	membershipRepo repository.MembershipRepository
	productRepo    repository.ProductRepository
	signer         *crosstoken.Signer
	hubPublicURL   string
}

// NewCrossAuthUseCase constrói o caso de uso de acesso cruzado.
func NewCrossAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	membershipRepo repository.MembershipRepository,
	productRepo repository.ProductRepository,
	signer *crosstoken.Signer,
	hubPublicURL string,
) *CrossAuthUseCase {
	return &CrossAuthUseCase{
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		productRepo:    productRepo,
		signer:         signer,
		hubPublicURL:   strings.TrimSuffix(hubPublicURL, "/"),
	}
}

// Issue emite o token de acesso cruzado para o usuário autenticado e monta
// a URL de redirect. Operação de leitura + delegação: nenhuma mutação.
// Qualquer falha aborta antes do redirect; nunca se devolve URL sem token.
func (uc *CrossAuthUseCase) Issue(ctx context.Context, userID string, in dto.CrossTokenRequest) (*dto.CrossTokenResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}

	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	membership, err := uc.membershipRepo.Get(ctx, userID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, domain.ErrForbidden
	}

	token, err := uc.signer.Sign(crosstoken.Claims{
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		CompanyID:   company.ID,
		CompanySlug: company.Slug,
		CompanyName: company.Name,
		Role:        membership.Role,
		ProductID:   product.ID,
		Branding: crosstoken.Branding{
			LogoURL:        company.Branding.LogoURL,
			FaviconURL:     company.Branding.FaviconURL,
			PrimaryColor:   company.Branding.PrimaryColor,
			SecondaryColor: company.Branding.SecondaryColor,
		},
	})
	if err != nil {
		return nil, domain.ErrSigningFailed
	}

	return &dto.CrossTokenResponse{
		Token:       token,
		RedirectURL: uc.BuildRedirect(product, company, token),
	}, nil
}

// BuildRedirect constrói a URL de aterrissagem de forma determinística:
// origem do produto se o base path é URL absoluta, senão a origem pública
// do hub; caminho fixo LandingPath sob o base path; token e slug na query.
// O token é credencial bearer: o redirect deve acontecer sobre HTTPS; o
// TTL curto mitiga histórico de navegador e referrers.
func (uc *CrossAuthUseCase) BuildRedirect(product *entity.Product, company *entity.Company, token string) string {
	base := product.BasePath
	if !product.HasOwnOrigin() {
		base = uc.hubPublicURL + "/" + strings.TrimPrefix(base, "/")
	}
	base = strings.TrimSuffix(base, "/")

	q := url.Values{}
	q.Set(QueryParamToken, token)
	q.Set(QueryParamCompanySlug, company.Slug)
	return base + LandingPath + "?" + q.Encode()
}

// Validate é o contrato do endpoint companheiro consumido pelo produto
// receptor: checa assinatura e expiração e devolve os claims embutidos.
// Rejeições saem tipadas (crosstoken.ErrExpired, ErrMalformed,
// ErrInvalidSignature) para a mensagem certa ao usuário.
func (uc *CrossAuthUseCase) Validate(token string) (*dto.CrossValidateResponse, error) {
	claims, err := uc.signer.Verify(token)
	if err != nil {
		return nil, err
	}
	return &dto.CrossValidateResponse{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Name:        claims.Name,
		CompanyID:   claims.CompanyID,
		CompanySlug: claims.CompanySlug,
		CompanyName: claims.CompanyName,
		Role:        claims.Role,
		ProductID:   claims.ProductID,
		Branding: dto.BrandingDTO{
			LogoURL:        claims.Branding.LogoURL,
			FaviconURL:     claims.Branding.FaviconURL,
			PrimaryColor:   claims.Branding.PrimaryColor,
			SecondaryColor: claims.Branding.SecondaryColor,
		},
	}, nil
}
