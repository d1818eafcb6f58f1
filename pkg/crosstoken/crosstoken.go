// Package crosstoken assina e verifica o token de acesso cruzado entre o hub
// e os produtos satélite. O token é um JWT HS256 de vida curta (minutos) que
// carrega identidade, empresa, papel e branding; o segredo nunca sai do
// servidor; o cliente só transporta o token opaco.
package crosstoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Erros tipados de verificação. O produto receptor distingue "seu link
// expirou" de "link inválido" na mensagem ao usuário.
var (
	ErrExpired          = errors.New("crosstoken: token expirado")
	ErrMalformed        = errors.New("crosstoken: token malformado")
	ErrInvalidSignature = errors.New("crosstoken: assinatura inválida")
)

// Branding snapshot público da identidade visual da empresa, embutido no
// token para o produto receptor renderizar antes de resolver a empresa.
type Branding struct {
	LogoURL        string `json:"logo_url,omitempty"`
	FaviconURL     string `json:"favicon_url,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}

// Claims payload do token de acesso cruzado. Efêmero: construído no
// handoff, consumido uma vez pelo endpoint de validação do produto e
// descartado.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	CompanyID   string   `json:"company_id"`
	CompanySlug string   `json:"company_slug"`
	CompanyName string   `json:"company_name"`
	Role        string   `json:"role"`
	ProductID   string   `json:"product_id"`
	Branding    Branding `json:"branding"`
}

// Signer assina e verifica tokens com um segredo compartilhado entre hub e
// produtos satélite.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner constrói o signer. ttlMinutes curto por contrato (o token viaja
// em query string; o TTL é a mitigação contra histórico/referrer).
func NewSigner(secret, issuer string, ttlMinutes int) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("crosstoken: secret vazio")
	}
	if ttlMinutes <= 0 {
		ttlMinutes = 5
	}
	return &Signer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

// Sign emite o token com iat/exp preenchidos pelo signer. Os campos de
// RegisteredClaims do chamador são sobrescritos.
func (s *Signer) Sign(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("crosstoken: assinar token: %w", err)
	}
	return signed, nil
}

// Verify valida assinatura e expiração e devolve os claims embutidos.
// Falhas saem como ErrExpired, ErrMalformed ou ErrInvalidSignature, nunca
// um erro genérico, para o consumidor mapear a mensagem correta.
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}
