package entity

import "time"

// User representa uma identidade do hub. Um usuário pode pertencer a várias
// empresas via Membership; CompanyID aqui é apenas a empresa padrão da sessão.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca plano no domínio depois de persistir
	Name         string
	Phone        string
	TaxID        string // CPF ou CNPJ (validado por pkg/brdoc)
	CompanyID    string // empresa padrão (pode ser vazia até criar a primeira)
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
