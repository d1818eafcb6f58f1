package entity

import (
	"strings"
	"time"
)

// Product entrada de catálogo de um produto satélite alcançável via acesso
// cruzado. BasePath pode ser um caminho sob a origem do hub ("/crm") ou uma
// URL absoluta quando o produto tem domínio próprio.
type Product struct {
	ID        string
	Name      string
	BasePath  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasOwnOrigin informa se o BasePath é uma URL absoluta (origem própria).
func (p *Product) HasOwnOrigin() bool {
	return strings.HasPrefix(p.BasePath, "http://") || strings.HasPrefix(p.BasePath, "https://")
}
