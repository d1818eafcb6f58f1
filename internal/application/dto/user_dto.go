package dto

import "time"

// RegisterRequest entrada do registro de identidade no hub.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	TaxID    string `json:"tax_id" validate:"required"` // CPF/CNPJ; checksum validado no use case
}

// UserResponse saída de um usuário (sem password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	CompanyID string    `json:"company_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada do login (email + password).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse saída com o JWT de sessão do hub.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
