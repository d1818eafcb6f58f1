package entity

import "time"

// Branding identidade visual pública da empresa. Viaja no token de acesso
// cruzado para o produto satélite renderizar antes de validar.
type Branding struct {
	LogoURL        string
	FaviconURL     string
	PrimaryColor   string
	SecondaryColor string
}

// Company representa uma organização/tenant do hub.
// Slug é globalmente único e imutável depois de atribuído: URLs de retorno
// de checkout e de acesso cruzado o embutem.
type Company struct {
	ID        string
	Slug      string
	Name      string
	TaxID     string // CPF ou CNPJ da empresa
	Branding  Branding
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
