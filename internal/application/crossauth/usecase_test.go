package crossauth_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upzy-app/hub-api/internal/application/crossauth"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/pkg/crosstoken"
)

// ── Fakes em memória das portas de persistência ───────────────────────────────

type fakeUserRepo struct{ users map[string]*entity.User }

func (f *fakeUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }
func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }

type fakeCompanyRepo struct{ companies map[string]*entity.Company }

func (f *fakeCompanyRepo) Create(_ context.Context, _ *entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.companies[id], nil
}
func (f *fakeCompanyRepo) GetBySlug(_ context.Context, _ string) (*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) Update(_ context.Context, _ *entity.Company) error { return nil }
func (f *fakeCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) ListSlugsWithPrefix(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type fakeMembershipRepo struct{ m *entity.Membership }

func (f *fakeMembershipRepo) Create(_ context.Context, _ *entity.Membership) error { return nil }
func (f *fakeMembershipRepo) Get(_ context.Context, userID, companyID string) (*entity.Membership, error) {
	if f.m != nil && f.m.UserID == userID && f.m.CompanyID == companyID {
		return f.m, nil
	}
	return nil, nil
}
func (f *fakeMembershipRepo) ListByUser(_ context.Context, _ string) ([]*entity.Membership, error) {
	return nil, nil
}
func (f *fakeMembershipRepo) ListByCompany(_ context.Context, _ string) ([]*entity.Membership, error) {
	return nil, nil
}
func (f *fakeMembershipRepo) UpdateRole(_ context.Context, _, _, _ string) error { return nil }
func (f *fakeMembershipRepo) Delete(_ context.Context, _, _ string) error        { return nil }

type fakeProductRepo struct{ products map[string]*entity.Product }

func (f *fakeProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) List(_ context.Context, _ bool) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }

// ── Montagem ──────────────────────────────────────────────────────────────────

const hubURL = "https://hub.upzy.app"

func buildUseCase(t *testing.T) (*crossauth.CrossAuthUseCase, *fakeProductRepo) {
	t.Helper()
	signer, err := crosstoken.NewSigner("secret-de-teste", "upzy-hub-test", 5)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*entity.User{
		"u-1": {ID: "u-1", Email: "ana@empresa.com.br", Name: "Ana Souza", Status: "active"},
	}}
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"c-1": {
			ID: "c-1", Slug: "empresa-exemplo", Name: "Empresa Exemplo",
			Branding: entity.Branding{PrimaryColor: "#3B82F6"},
		},
	}}
	memberships := &fakeMembershipRepo{m: &entity.Membership{
		UserID: "u-1", CompanyID: "c-1", Role: entity.RoleOwner,
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p-rel": {ID: "p-rel", Name: "Upzy CRM", BasePath: "/crm", Active: true},
		"p-abs": {ID: "p-abs", Name: "Upzy Agenda", BasePath: "https://agenda.upzy.app", Active: true},
		"p-off": {ID: "p-off", Name: "Produto Desativado", BasePath: "/off", Active: false},
	}}

	return crossauth.NewCrossAuthUseCase(users, companies, memberships, products, signer, hubURL), products
}

// ── Issue ─────────────────────────────────────────────────────────────────────

func TestIssue_CaminhoFeliz(t *testing.T) {
	uc, _ := buildUseCase(t)

	out, err := uc.Issue(context.Background(), "u-1", dto.CrossTokenRequest{
		ProductID: "p-rel", CompanyID: "c-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	require.NotEmpty(t, out.RedirectURL)

	// O token validado de volta carrega identidade, empresa, papel e branding.
	claims, err := uc.Validate(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "empresa-exemplo", claims.CompanySlug)
	assert.Equal(t, entity.RoleOwner, claims.Role)
	assert.Equal(t, "p-rel", claims.ProductID)
	assert.Equal(t, "#3B82F6", claims.Branding.PrimaryColor)
}

func TestIssue_SemSessao(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Issue(context.Background(), "", dto.CrossTokenRequest{ProductID: "p-rel", CompanyID: "c-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "sem usuário autenticado não se emite token")

	_, err = uc.Issue(context.Background(), "u-inexistente", dto.CrossTokenRequest{ProductID: "p-rel", CompanyID: "c-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestIssue_ProdutoInativoOuInexistente(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Issue(context.Background(), "u-1", dto.CrossTokenRequest{ProductID: "p-off", CompanyID: "c-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "produto desativado não recebe handoff")

	_, err = uc.Issue(context.Background(), "u-1", dto.CrossTokenRequest{ProductID: "p-zzz", CompanyID: "c-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssue_SemVinculoComEmpresa(t *testing.T) {
	uc, _ := buildUseCase(t)

	// c-1 existe mas u-1 só tem vínculo com c-1; simulamos outra empresa.
	_, err := uc.Issue(context.Background(), "u-1", dto.CrossTokenRequest{ProductID: "p-rel", CompanyID: "c-outra"})
	assert.Error(t, err, "empresa sem vínculo do usuário deve falhar")
}

// ── BuildRedirect ─────────────────────────────────────────────────────────────

func TestBuildRedirect_BasePathRelativoUsaOrigemDoHub(t *testing.T) {
	uc, products := buildUseCase(t)
	company := &entity.Company{Slug: "empresa-exemplo"}

	got := uc.BuildRedirect(products.products["p-rel"], company, "tok-123")
	u, err := url.Parse(got)
	require.NoError(t, err)

	assert.Equal(t, "hub.upzy.app", u.Host)
	assert.Equal(t, "/crm/smart-access", u.Path)
	assert.Equal(t, "tok-123", u.Query().Get("key"))
	assert.Equal(t, "empresa-exemplo", u.Query().Get("empresa"))
}

func TestBuildRedirect_BasePathAbsolutoUsaOrigemDoProduto(t *testing.T) {
	uc, products := buildUseCase(t)
	company := &entity.Company{Slug: "empresa-exemplo"}

	got := uc.BuildRedirect(products.products["p-abs"], company, "tok-123")
	u, err := url.Parse(got)
	require.NoError(t, err)

	assert.Equal(t, "agenda.upzy.app", u.Host)
	assert.Equal(t, "/smart-access", u.Path)
	assert.Equal(t, "tok-123", u.Query().Get("key"))
}

func TestBuildRedirect_Deterministico(t *testing.T) {
	uc, products := buildUseCase(t)
	company := &entity.Company{Slug: "empresa-exemplo"}

	a := uc.BuildRedirect(products.products["p-rel"], company, "tok")
	b := uc.BuildRedirect(products.products["p-rel"], company, "tok")
	assert.Equal(t, a, b)
	assert.False(t, strings.Contains(a, "key=&"), "URL nunca sai com token vazio no meio")
}

// ── Validate ──────────────────────────────────────────────────────────────────

func TestValidate_TokenAdulterado(t *testing.T) {
	uc, _ := buildUseCase(t)

	out, err := uc.Issue(context.Background(), "u-1", dto.CrossTokenRequest{ProductID: "p-rel", CompanyID: "c-1"})
	require.NoError(t, err)

	adulterado := out.Token[:len(out.Token)-4] + "xxxx"
	_, err = uc.Validate(adulterado)
	assert.Error(t, err)
}

func TestValidate_LixoEhMalformado(t *testing.T) {
	uc, _ := buildUseCase(t)
	_, err := uc.Validate("nao-e-um-jwt")
	assert.ErrorIs(t, err, crosstoken.ErrMalformed)
}
