package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleSupervisor))
	assert.True(t, IsValidRole(RoleOperator))
	assert.True(t, IsValidRole(RoleViewer))
	assert.False(t, IsValidRole(Role("manager")))
	assert.False(t, IsValidRole(Role("")))
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		action  string
		allowed bool
	}{
		{"admin can manage users", RoleAdmin, ActionManageUsers, true},
		{"admin can export", RoleAdmin, ActionExportDataset, true},
		{"supervisor can export", RoleSupervisor, ActionExportDataset, true},
		{"supervisor cannot manage users", RoleSupervisor, ActionManageUsers, false},
		{"operator can predict", RoleOperator, ActionRunPrediction, true},
		{"operator can view records", RoleOperator, ActionViewRecords, true},
		{"operator cannot export", RoleOperator, ActionExportDataset, false},
		{"viewer can view records", RoleViewer, ActionViewRecords, true},
		{"viewer cannot predict", RoleViewer, ActionRunPrediction, false},
		{"unknown role has nothing", Role("ghost"), ActionViewRecords, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			assert.Equal(t, tt.allowed, u.HasPermission(tt.action))
		})
	}
}
