package authorize

import (
	"testing"
)

func TestIsValidDomain(t *testing.T) {
	tests := []struct {
		name     string
		domain   Domain
		expected bool
	}{
		// Valid domains
		{"sys domain", DomainSys, true},
		{"org domain", DomainOrg, true},
		{"wildcard domain", WildcardDomain, true},
		{"valid user domain", Domain("user:550e8400-e29b-41d4-a716-446655440000"), true},

		// Invalid domains
		{"empty domain", Domain(""), false},
		{"random string", Domain("random"), false},
		{"user without uuid", Domain("user:"), false},
		{"user with invalid uuid", Domain("user:not-a-uuid"), false},
		{"unknown prefix", Domain("team:550e8400-e29b-41d4-a716-446655440000"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidDomain(tt.domain)
			if result != tt.expected {
				t.Errorf("IsValidDomain(%q) = %v, want %v", tt.domain, result, tt.expected)
			}
		})
	}
}

func TestUserDomain(t *testing.T) {
	userID := "550e8400-e29b-41d4-a716-446655440000"
	expected := Domain("user:550e8400-e29b-41d4-a716-446655440000")

	result := UserDomain(userID)
	if result != expected {
		t.Errorf("UserDomain(%q) = %q, want %q", userID, result, expected)
	}
}

func TestKnownActions(t *testing.T) {
	expectedActions := []Action{
		ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionList,
		ActionManage, ActionExecute, ActionAssign, ActionApprove, ActionExport,
		ActionGrant, ActionRevoke,
	}

	for _, action := range expectedActions {
		if _, ok := KnownActions[action]; !ok {
			t.Errorf("Expected action %q to be in KnownActions", action)
		}
	}
}

func TestKnownResources(t *testing.T) {
	expectedResources := []Resource{
		ResourceUser, ResourceAuthSession, ResourceRefreshToken,
		ResourceParticipant, ResourceParticipantFile, ResourceNDISPlan,
		ResourceEmployee, ResourceTimesheet,
		ResourceAppointment, ResourceServiceNote, ResourceServiceSchedule, ResourceRoster,
		ResourceNotification,
		ResourceSystem, ResourceAudit, ResourceRBAC,
	}

	for _, resource := range expectedResources {
		if _, ok := KnownResources[resource]; !ok {
			t.Errorf("Expected resource %q to be in KnownResources", resource)
		}
	}
}

func TestKnownRoles(t *testing.T) {
	expectedRoles := []Role{
		RoleSysSuperAdmin,
		RoleOrgAdmin, RoleOrgCoordinator, RoleOrgCareWorker, RoleOrgFinance,
		RoleUserSelf,
	}

	for _, role := range expectedRoles {
		if _, ok := KnownRoles[role]; !ok {
			t.Errorf("Expected role %q to be in KnownRoles", role)
		}
	}
}

func TestUserRoleToRBACRole(t *testing.T) {
	tests := []struct {
		dbRole string
		want   Role
	}{
		{UserRoleAdmin, RoleOrgAdmin},
		{UserRoleCoordinator, RoleOrgCoordinator},
		{UserRoleCareWorker, RoleOrgCareWorker},
		{UserRoleFinance, RoleOrgFinance},
	}

	for _, tt := range tests {
		t.Run(tt.dbRole, func(t *testing.T) {
			got, ok := UserRoleToRBACRole[tt.dbRole]
			if !ok {
				t.Fatalf("no RBAC mapping for db role %q", tt.dbRole)
			}
			if got != tt.want {
				t.Errorf("UserRoleToRBACRole[%q] = %q, want %q", tt.dbRole, got, tt.want)
			}
		})
	}
}
