// Package policy centraliza a autorização por papel. Regra única consumida
// por todos os handlers; nada de checagem de papel espalhada por tela.
package policy

import "github.com/upzy-app/hub-api/internal/domain/entity"

// Action operação sensível sujeita a autorização por papel.
type Action string

// Ações reconhecidas.
const (
	ActionManageBilling  Action = "manage_billing"  // checkout, assinaturas
	ActionManageTeam     Action = "manage_team"     // convidar/remover membros, trocar papéis
	ActionManageSettings Action = "manage_settings" // branding, dados da empresa
	ActionDeleteCompany  Action = "delete_company"
	ActionViewCompany    Action = "view_company"
)

// matriz papel → ações permitidas. Owner pode tudo; a ausência na matriz
// nega por padrão.
var allowed = map[string]map[Action]bool{
	entity.RoleOwner: {
		ActionManageBilling:  true,
		ActionManageTeam:     true,
		ActionManageSettings: true,
		ActionDeleteCompany:  true,
		ActionViewCompany:    true,
	},
	entity.RoleAdmin: {
		ActionManageBilling:  true,
		ActionManageTeam:     true,
		ActionManageSettings: true,
		ActionViewCompany:    true,
	},
	entity.RoleManager: {
		ActionManageTeam:  true,
		ActionViewCompany: true,
	},
	entity.RoleMember: {
		ActionViewCompany: true,
	},
}

// CanPerform informa se o papel do vínculo autoriza a ação. Papel
// desconhecido ou vínculo nil negam sempre.
func CanPerform(m *entity.Membership, action Action) bool {
	if m == nil {
		return false
	}
	return allowed[m.Role][action]
}
