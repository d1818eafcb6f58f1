package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/internal/domain/repository"
	"github.com/upzy-app/hub-api/pkg/brdoc"
)

// CompanyTxRunner executa a criação de empresa dentro de uma transação,
// entregando a fn repositórios atados à mesma tx.
type CompanyTxRunner interface {
	RunCompanyCreate(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		membershipRepo repository.MembershipRepository,
	) error) error
}

// CompanyUseCase regras de negócio de empresas e vínculos de equipe.
type CompanyUseCase struct {
	companyRepo    repository.CompanyRepository
	membershipRepo repository.MembershipRepository
	tx             CompanyTxRunner
}

// NewCompanyUseCase constrói o caso de uso com as portas de persistência.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, membershipRepo repository.MembershipRepository, tx CompanyTxRunner) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, membershipRepo: membershipRepo, tx: tx}
}

// Create cria a empresa com slug gerado do nome (ver CheckSlugAvailability)
// e registra o criador como owner. O slug nunca muda depois daqui.
func (uc *CompanyUseCase) Create(ctx context.Context, ownerUserID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := brdoc.ValidateDocument(in.TaxID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	slug, err := uc.availableSlug(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:    uuid.New().String(),
		Slug:  slug,
		Name:  in.Name,
		TaxID: brdoc.FormatDocument(in.TaxID),
		Branding: entity.Branding{
			LogoURL:        in.Branding.LogoURL,
			FaviconURL:     in.Branding.FaviconURL,
			PrimaryColor:   in.Branding.PrimaryColor,
			SecondaryColor: in.Branding.SecondaryColor,
		},
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &entity.Membership{
		ID:        uuid.New().String(),
		UserID:    ownerUserID,
		CompanyID: company.ID,
		Role:      entity.RoleOwner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Empresa e vínculo do dono gravam juntos: sem o owner a empresa fica órfã.
	err = uc.tx.RunCompanyCreate(ctx, func(companies repository.CompanyRepository, memberships repository.MembershipRepository) error {
		if err := companies.Create(ctx, company); err != nil {
			return err
		}
		return memberships.Create(ctx, owner)
	})
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// CheckSlugAvailability normaliza o nome e devolve o primeiro slug livre:
// o próprio, ou com sufixo -2, -3, … em caso de colisão.
func (uc *CompanyUseCase) CheckSlugAvailability(ctx context.Context, name string) (*dto.SlugAvailabilityResponse, error) {
	base := Slugify(name)
	if base == "" {
		return nil, domain.ErrInvalidInput
	}
	available, err := uc.availableSlugFromBase(ctx, base)
	if err != nil {
		return nil, err
	}
	return &dto.SlugAvailabilityResponse{Requested: base, Available: available}, nil
}

func (uc *CompanyUseCase) availableSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", domain.ErrInvalidInput
	}
	return uc.availableSlugFromBase(ctx, base)
}

func (uc *CompanyUseCase) availableSlugFromBase(ctx context.Context, base string) (string, error) {
	existing, err := uc.companyRepo.ListSlugsWithPrefix(ctx, base)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[s] = true
	}
	return nextAvailableSlug(base, taken), nil
}

// GetByID obtém uma empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// GetBySlug obtém uma empresa por slug (usado pelo produto receptor para
// resolver branding antes de validar o token).
func (uc *CompanyUseCase) GetBySlug(ctx context.Context, slug string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas com paginação.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.companyRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateBranding atualiza apenas a identidade visual. Nome, slug e tax id
// não mudam por aqui.
func (uc *CompanyUseCase) UpdateBranding(ctx context.Context, companyID string, in dto.BrandingDTO) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	company.Branding = entity.Branding{
		LogoURL:        in.LogoURL,
		FaviconURL:     in.FaviconURL,
		PrimaryColor:   in.PrimaryColor,
		SecondaryColor: in.SecondaryColor,
	}
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// ── Equipe ────────────────────────────────────────────────────────────────────

// GetMembership devolve o vínculo do usuário na empresa (nil se não houver).
func (uc *CompanyUseCase) GetMembership(ctx context.Context, userID, companyID string) (*entity.Membership, error) {
	return uc.membershipRepo.Get(ctx, userID, companyID)
}

// AddMember vincula um usuário à empresa. Um vínculo por par; papel owner
// não é atribuível por aqui (só na criação da empresa).
func (uc *CompanyUseCase) AddMember(ctx context.Context, companyID string, in dto.AddMemberRequest) (*dto.MemberResponse, error) {
	if !entity.ValidRole(in.Role) || in.Role == entity.RoleOwner {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.membershipRepo.Get(ctx, in.UserID, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	m := &entity.Membership{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		CompanyID: companyID,
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.membershipRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMemberResponse(m), nil
}

// UpdateMemberRole troca o papel de um membro. O owner é imutável.
func (uc *CompanyUseCase) UpdateMemberRole(ctx context.Context, companyID, userID string, in dto.UpdateMemberRoleRequest) error {
	m, err := uc.membershipRepo.Get(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if m.Role == entity.RoleOwner {
		return domain.ErrOwnerImmutable
	}
	if !entity.ValidRole(in.Role) || in.Role == entity.RoleOwner {
		return domain.ErrInvalidInput
	}
	return uc.membershipRepo.UpdateRole(ctx, userID, companyID, in.Role)
}

// RemoveMember desvincula um membro. O owner nunca é removível.
func (uc *CompanyUseCase) RemoveMember(ctx context.Context, companyID, userID string) error {
	m, err := uc.membershipRepo.Get(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if m.Role == entity.RoleOwner {
		return domain.ErrOwnerImmutable
	}
	return uc.membershipRepo.Delete(ctx, userID, companyID)
}

// ListMembers lista os vínculos da empresa.
func (uc *CompanyUseCase) ListMembers(ctx context.Context, companyID string) ([]dto.MemberResponse, error) {
	list, err := uc.membershipRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MemberResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMemberResponse(m))
	}
	return out, nil
}

func toMemberResponse(m *entity.Membership) *dto.MemberResponse {
	return &dto.MemberResponse{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:    c.ID,
		Slug:  c.Slug,
		Name:  c.Name,
		TaxID: c.TaxID,
		Branding: dto.BrandingDTO{
			LogoURL:        c.Branding.LogoURL,
			FaviconURL:     c.Branding.FaviconURL,
			PrimaryColor:   c.Branding.PrimaryColor,
			SecondaryColor: c.Branding.SecondaryColor,
		},
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
