package crosstoken_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upzy-app/hub-api/pkg/crosstoken"
)

const (
	testSecret = "cross-token-secret-for-tests"
	testIssuer = "upzy-hub-test"
)

func testClaims() crosstoken.Claims {
	return crosstoken.Claims{
		UserID:      "u-1",
		Email:       "ana@empresa.com.br",
		Name:        "Ana Souza",
		CompanyID:   "c-1",
		CompanySlug: "empresa-exemplo",
		CompanyName: "Empresa Exemplo",
		Role:        "owner",
		ProductID:   "p-1",
		Branding: crosstoken.Branding{
			LogoURL:      "https://cdn.upzy.app/logos/c-1.png",
			PrimaryColor: "#3B82F6",
		},
	}
}

func TestSignerRoundTrip(t *testing.T) {
	s, err := crosstoken.NewSigner(testSecret, testIssuer, 5)
	require.NoError(t, err)

	tok, err := s.Sign(testClaims())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "empresa-exemplo", got.CompanySlug)
	assert.Equal(t, "owner", got.Role)
	assert.Equal(t, "p-1", got.ProductID)
	assert.Equal(t, "#3B82F6", got.Branding.PrimaryColor)
	assert.Equal(t, testIssuer, got.Issuer)
}

// O signer define iat/exp; o exp deve ficar a minutos (não horas) do iat.
func TestSigner_TTLCurto(t *testing.T) {
	s, err := crosstoken.NewSigner(testSecret, testIssuer, 5)
	require.NoError(t, err)

	tok, err := s.Sign(testClaims())
	require.NoError(t, err)

	got, err := s.Verify(tok)
	require.NoError(t, err)
	ttl := got.ExpiresAt.Sub(got.IssuedAt.Time)
	assert.Equal(t, 5*time.Minute, ttl)
}

// Token com exp no passado deve falhar como ErrExpired, não ErrMalformed
// nem erro genérico. O produto receptor mostra "seu link expirou".
func TestVerify_TokenExpirado(t *testing.T) {
	claims := testClaims()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    testIssuer,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-10 * time.Minute)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-5 * time.Minute)),
	}
	expirado, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	s, err := crosstoken.NewSigner(testSecret, testIssuer, 5)
	require.NoError(t, err)

	_, err = s.Verify(expirado)
	assert.ErrorIs(t, err, crosstoken.ErrExpired)
	assert.NotErrorIs(t, err, crosstoken.ErrMalformed)
}

func TestVerify_AssinaturaInvalida(t *testing.T) {
	s1, err := crosstoken.NewSigner(testSecret, testIssuer, 5)
	require.NoError(t, err)
	s2, err := crosstoken.NewSigner("outro-segredo-totalmente-diferente", testIssuer, 5)
	require.NoError(t, err)

	tok, err := s1.Sign(testClaims())
	require.NoError(t, err)

	_, err = s2.Verify(tok)
	assert.ErrorIs(t, err, crosstoken.ErrInvalidSignature)
}

func TestVerify_TokenMalformado(t *testing.T) {
	s, err := crosstoken.NewSigner(testSecret, testIssuer, 5)
	require.NoError(t, err)

	for _, lixo := range []string{"", "abc", "a.b.c", "nao.e.jwt"} {
		_, err := s.Verify(lixo)
		assert.ErrorIs(t, err, crosstoken.ErrMalformed, "entrada %q deve ser malformada", lixo)
	}
}

func TestNewSigner_SecretVazio(t *testing.T) {
	_, err := crosstoken.NewSigner("", testIssuer, 5)
	assert.Error(t, err, "secret vazio deve ser rejeitado na construção")
}
