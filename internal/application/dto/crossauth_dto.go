package dto

// CrossTokenRequest entrada para emitir o token de acesso cruzado.
// O usuário vem da sessão; aqui só o destino.
type CrossTokenRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	CompanyID string `json:"company_id" validate:"required"`
}

// CrossTokenResponse token assinado + URL de redirect pronta.
type CrossTokenResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// CrossValidateResponse claims devolvidos ao produto receptor após validar.
type CrossValidateResponse struct {
	UserID      string      `json:"user_id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	CompanyID   string      `json:"company_id"`
	CompanySlug string      `json:"company_slug"`
	CompanyName string      `json:"company_name"`
	Role        string      `json:"role"`
	ProductID   string      `json:"product_id"`
	Branding    BrandingDTO `json:"branding"`
}
