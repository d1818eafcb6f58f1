package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrSlugTaken          = errors.New("slug já está em uso")

	// Acesso cruzado (SSO hub → produto).
	ErrSigningFailed = errors.New("falha ao gerar token de acesso")

	// Checkout.
	ErrSessionNotFound = errors.New("sessão de checkout não encontrada")
	ErrAddressNotFound = errors.New("CEP não encontrado")
	ErrGateway         = errors.New("falha no gateway de pagamento")
	ErrOwnerImmutable  = errors.New("o proprietário não pode ser removido ou rebaixado")
)
