package entity

import "time"

// Papéis válidos de um vínculo usuário↔empresa.
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Membership vincula um usuário a uma empresa com um papel. Exatamente um
// vínculo por par (usuário, empresa); o owner nunca é removível ou rebaixável
// pelos fluxos do hub.
type Membership struct {
	ID        string
	UserID    string
	CompanyID string
	Role      string // ver constantes Role*
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRole informa se o papel é um dos reconhecidos.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}
