package dto

import "time"

// BrandingDTO identidade visual pública da empresa.
type BrandingDTO struct {
	LogoURL        string `json:"logo_url,omitempty"`
	FaviconURL     string `json:"favicon_url,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondary_color,omitempty" validate:"omitempty,hexcolor"`
}

// CreateCompanyRequest entrada para criar uma empresa. O slug é gerado a
// partir do nome; não é aceito do cliente.
type CreateCompanyRequest struct {
	Name     string      `json:"name" validate:"required,min=2,max=200"`
	TaxID    string      `json:"tax_id" validate:"required"`
	Branding BrandingDTO `json:"branding"`
}

// CompanyResponse saída de uma empresa.
type CompanyResponse struct {
	ID        string      `json:"id"`
	Slug      string      `json:"slug"`
	Name      string      `json:"name"`
	TaxID     string      `json:"tax_id"`
	Branding  BrandingDTO `json:"branding"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CompanyListResponse listagem paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SlugAvailabilityResponse resultado da consulta de disponibilidade de slug.
type SlugAvailabilityResponse struct {
	Requested string `json:"requested"` // slug normalizado do nome consultado
	Available string `json:"available"` // slug livre (igual ao requested ou com sufixo -2, -3, …)
}

// AddMemberRequest entrada para vincular um usuário à empresa.
type AddMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Role   string `json:"role" validate:"required,oneof=admin manager member"`
}

// UpdateMemberRoleRequest entrada para trocar o papel de um membro.
type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager member"`
}

// MemberResponse saída de um vínculo usuário↔empresa.
type MemberResponse struct {
	UserID    string    `json:"user_id"`
	CompanyID string    `json:"company_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
