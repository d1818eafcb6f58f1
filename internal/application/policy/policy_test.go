package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/upzy-app/hub-api/internal/application/policy"
	"github.com/upzy-app/hub-api/internal/domain/entity"
)

func membership(role string) *entity.Membership {
	return &entity.Membership{UserID: "u-1", CompanyID: "c-1", Role: role}
}

func TestCanPerform_MatrizDePapeis(t *testing.T) {
	cases := []struct {
		role   string
		action policy.Action
		want   bool
	}{
		{entity.RoleOwner, policy.ActionDeleteCompany, true},
		{entity.RoleOwner, policy.ActionManageBilling, true},
		{entity.RoleAdmin, policy.ActionManageBilling, true},
		{entity.RoleAdmin, policy.ActionDeleteCompany, false},
		{entity.RoleManager, policy.ActionManageTeam, true},
		{entity.RoleManager, policy.ActionManageBilling, false},
		{entity.RoleMember, policy.ActionViewCompany, true},
		{entity.RoleMember, policy.ActionManageTeam, false},
		{entity.RoleMember, policy.ActionManageSettings, false},
	}
	for _, tc := range cases {
		got := policy.CanPerform(membership(tc.role), tc.action)
		assert.Equal(t, tc.want, got, "papel %s, ação %s", tc.role, tc.action)
	}
}

func TestCanPerform_NegaPorPadrao(t *testing.T) {
	assert.False(t, policy.CanPerform(nil, policy.ActionViewCompany),
		"vínculo nil nega sempre")
	assert.False(t, policy.CanPerform(membership("papel-inexistente"), policy.ActionViewCompany),
		"papel desconhecido nega sempre")
}
