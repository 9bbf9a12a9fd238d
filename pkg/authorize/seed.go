package authorize

import (
	"context"
	"log/slog"
)

// SeedDefaultPolicies sets up the baseline RBAC policies for the system.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	// System-level policies (domain: sys)
	sysPolicies := []PermissionPolicy{
		// SuperAdmin: god mode
		{RoleSysSuperAdmin, DomainSys, WildcardResource, WildcardAction, EffectAllow},
	}

	// Organisation-level policies (domain: org)
	orgPolicies := []PermissionPolicy{
		// Admin: full control of the provider organisation
		{RoleOrgAdmin, DomainOrg, ResourceUser, ActionManage, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceParticipant, ActionManage, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceParticipantFile, ActionManage, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceNDISPlan, ActionManage, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceEmployee, ActionManage, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceAppointment, ActionManage, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceAppointment, ActionAssign, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceServiceNote, ActionManage, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceServiceNote, ActionReadSensitive, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceServiceSchedule, ActionManage, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceServiceSchedule, ActionExecute, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceTimesheet, ActionManage, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceTimesheet, ActionApprove, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceRoster, ActionRead, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceRoster, ActionExport, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceNotification, ActionManage, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceRBAC, ActionGrant, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceRBAC, ActionRevoke, EffectAllow},
		{RoleOrgAdmin, DomainOrg, ResourceAudit, ActionRead, EffectAllow},

		// Coordinator: runs the roster day to day
		{RoleOrgCoordinator, DomainOrg, ResourceParticipant, ActionManage, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceParticipantFile, ActionManage, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceNDISPlan, ActionRead, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceEmployee, ActionRead, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceEmployee, ActionList, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceAppointment, ActionManage, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceAppointment, ActionAssign, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceServiceNote, ActionManage, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceServiceNote, ActionReadSensitive, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceServiceSchedule, ActionManage, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceServiceSchedule, ActionExecute, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceTimesheet, ActionRead, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceTimesheet, ActionList, EffectAllow},
		{RoleOrgCoordinator, DomainOrg, ResourceRoster, ActionRead, EffectAllow},

		// Care worker: sees their roster, writes notes and timesheets
		{RoleOrgCareWorker, DomainOrg, ResourceParticipant, ActionRead, EffectAllow},
		{RoleOrgCareWorker, DomainOrg, ResourceAppointment, ActionRead, EffectAllow},
		{RoleOrgCareWorker, DomainOrg, ResourceAppointment, ActionList, EffectAllow},
		{RoleOrgCareWorker, DomainOrg, ResourceServiceNote, ActionCreate, EffectAllow},
		{RoleOrgCareWorker, DomainOrg, ResourceServiceNote, ActionRead, EffectAllow},
		{RoleOrgCareWorker, DomainOrg, ResourceTimesheet, ActionCreate, EffectAllow},
		{RoleOrgCareWorker, DomainOrg, ResourceTimesheet, ActionRead, EffectAllow},
		{RoleOrgCareWorker, DomainOrg, ResourceTimesheet, ActionUpdate, EffectAllow},

		// Finance: decides timesheets and pulls billing numbers
		{RoleOrgFinance, DomainOrg, ResourceTimesheet, ActionRead, EffectAllow},
		{RoleOrgFinance, DomainOrg, ResourceTimesheet, ActionList, EffectAllow},
		{RoleOrgFinance, DomainOrg, ResourceTimesheet, ActionApprove, EffectAllow},
		{RoleOrgFinance, DomainOrg, ResourceNDISPlan, ActionRead, EffectAllow},
		{RoleOrgFinance, DomainOrg, ResourceAppointment, ActionRead, EffectAllow},
		{RoleOrgFinance, DomainOrg, ResourceAppointment, ActionList, EffectAllow},
		{RoleOrgFinance, DomainOrg, ResourceRoster, ActionRead, EffectAllow},
		{RoleOrgFinance, DomainOrg, ResourceRoster, ActionExport, EffectAllow},
	}

	// User-level policies (domain: user:*)
	userPolicies := []PermissionPolicy{
		// UserSelf: full control over own resources
		{RoleUserSelf, WildcardDomain, ResourceAuthSession, ActionManage, EffectAllow},
		{RoleUserSelf, WildcardDomain, ResourceRefreshToken, ActionManage, EffectAllow},
		{RoleUserSelf, WildcardDomain, ResourceUser, ActionRead, EffectAllow},
		{RoleUserSelf, WildcardDomain, ResourceUser, ActionUpdate, EffectAllow},
		{RoleUserSelf, WildcardDomain, ResourceNotification, ActionManage, EffectAllow},
	}

	allPolicies := append(append(sysPolicies, orgPolicies...), userPolicies...)

	for _, p := range allPolicies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Domain, p.Object, p.Action, p.Effect)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "domain", p.Domain, "resource", p.Object, "action", p.Action)
		}
	}

	logger.Info("seeded default RBAC policies", "count", len(allPolicies))
	return nil
}

// AssignUserSelfRole assigns the user:self role in the user's private domain.
// Call this when creating a new user.
func AssignUserSelfRole(ctx context.Context, auth IAuthorization, userID string) error {
	domain := UserDomain(userID)
	subject := GroupSubject(userID)

	_, err := auth.AddRoleForUserInDomain(ctx, subject, RoleUserSelf, domain)
	return err
}

// AssignOrgRole assigns a provider-organisation role to a user.
// Valid roles: RoleOrgAdmin, RoleOrgCoordinator, RoleOrgCareWorker, RoleOrgFinance
func AssignOrgRole(ctx context.Context, auth IAuthorization, userID string, role Role) error {
	switch role {
	case RoleOrgAdmin, RoleOrgCoordinator, RoleOrgCareWorker, RoleOrgFinance:
		// valid org roles
	default:
		return ErrInvalidArgs
	}

	subject := GroupSubject(userID)
	_, err := auth.AddRoleForUserInDomain(ctx, subject, role, DomainOrg)
	return err
}

// RemoveOrgRole removes a provider-organisation role from a user.
func RemoveOrgRole(ctx context.Context, auth IAuthorization, userID string, role Role) error {
	subject := GroupSubject(userID)
	_, err := auth.RemoveRoleForUserInDomain(ctx, subject, role, DomainOrg)
	return err
}

// GetOrgRoles returns all organisation roles a user holds.
func GetOrgRoles(ctx context.Context, auth IAuthorization, userID string) ([]Role, error) {
	subject := GroupSubject(userID)
	return auth.GetRolesForUserInDomain(ctx, subject, DomainOrg)
}

// AssignSystemRole assigns a system-level role to a user.
// Note: RoleSysSuperAdmin should be assigned manually/carefully.
func AssignSystemRole(ctx context.Context, auth IAuthorization, userID string, role Role) error {
	if role != RoleSysSuperAdmin {
		return ErrInvalidArgs
	}

	subject := GroupSubject(userID)
	_, err := auth.AddRoleForUserInDomain(ctx, subject, role, DomainSys)
	return err
}
