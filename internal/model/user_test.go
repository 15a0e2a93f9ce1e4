package model

import "testing"

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role  UserRole
		staff bool
		admin bool
	}{
		{RoleOwner, true, true},
		{RoleSchoolAdmin, true, true},
		{RoleTeacher, true, false},
		{RoleParent, false, false},
		{RoleStudent, false, false},
	}
	for _, tt := range tests {
		if got := tt.role.IsStaff(); got != tt.staff {
			t.Errorf("%s.IsStaff() = %v, want %v", tt.role, got, tt.staff)
		}
		if got := tt.role.IsAdmin(); got != tt.admin {
			t.Errorf("%s.IsAdmin() = %v, want %v", tt.role, got, tt.admin)
		}
	}
}
