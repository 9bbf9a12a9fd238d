package authorize

import (
	"fmt"
	"regexp"
)

type Action string
type Resource string
type Role string
type Domain string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"

	// Power actions
	ActionManage  Action = "manage"  // CRUD + list
	ActionExecute Action = "execute" // run, trigger, start, stop, etc.

	// Rostering actions
	ActionAssign  Action = "assign"  // put a staff member on an appointment
	ActionApprove Action = "approve" // decide submitted timesheets
	ActionExport  Action = "export"  // billing/metrics exports

	// ActionReadSensitive gates service notes flagged sensitive.
	ActionReadSensitive Action = "read_sensitive"

	// RBAC-specific actions
	ActionGrant  Action = "grant"
	ActionRevoke Action = "revoke"
)

const (
	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionDelete: {}, ActionList: {},
	ActionManage: {}, ActionExecute: {},
	ActionAssign: {}, ActionApprove: {}, ActionExport: {}, ActionReadSensitive: {},
	ActionGrant: {}, ActionRevoke: {},
}

// ----------------------------
// Resources
// ----------------------------

const (
	WildcardResource Resource = "*"

	// Identity / auth
	ResourceUser         Resource = "user"
	ResourceAuthSession  Resource = "auth_session"
	ResourceRefreshToken Resource = "refresh_token"

	// Participant records
	ResourceParticipant     Resource = "participant"
	ResourceParticipantFile Resource = "participant_file"
	ResourceNDISPlan        Resource = "ndis_plan"

	// Workforce
	ResourceEmployee  Resource = "employee"
	ResourceTimesheet Resource = "timesheet"

	// Rostering
	ResourceAppointment     Resource = "appointment"
	ResourceServiceNote     Resource = "service_note"
	ResourceServiceSchedule Resource = "service_schedule"
	ResourceRoster          Resource = "roster" // aggregated views and metrics

	// Communication
	ResourceNotification Resource = "notification"

	// System / platform admin
	ResourceSystem Resource = "system"
	ResourceAudit  Resource = "audit"
	ResourceRBAC   Resource = "rbac"
)

var KnownResources = map[Resource]struct{}{
	ResourceUser: {}, ResourceAuthSession: {}, ResourceRefreshToken: {},
	ResourceParticipant: {}, ResourceParticipantFile: {}, ResourceNDISPlan: {},
	ResourceEmployee: {}, ResourceTimesheet: {},
	ResourceAppointment: {}, ResourceServiceNote: {}, ResourceServiceSchedule: {}, ResourceRoster: {},
	ResourceNotification: {},
	ResourceSystem:       {}, ResourceAudit: {}, ResourceRBAC: {},
}

// ----------------------------
// Roles
// ----------------------------
//
// These are the "policy subjects" we assign to users via grouping policies.

const (
	WildcardRole Role = "*"

	// Platform role (domain = sys)
	RoleSysSuperAdmin Role = "role:sys:superadmin"

	// Provider organisation roles (domain = org)
	RoleOrgAdmin       Role = "role:org:admin"
	RoleOrgCoordinator Role = "role:org:coordinator"
	RoleOrgCareWorker  Role = "role:org:care_worker"
	RoleOrgFinance     Role = "role:org:finance"

	// Private user scope (domain = user:<uuid>)
	RoleUserSelf Role = "role:user:self"
)

var KnownRoles = map[Role]struct{}{
	RoleSysSuperAdmin:  {},
	RoleOrgAdmin:       {},
	RoleOrgCoordinator: {},
	RoleOrgCareWorker:  {},
	RoleOrgFinance:     {},
	RoleUserSelf:       {},
}

// User role strings (stored in the users.role column)
const (
	UserRoleAdmin       = "admin"
	UserRoleCoordinator = "coordinator"
	UserRoleCareWorker  = "care_worker"
	UserRoleFinance     = "finance"
)

// UserRoleToRBACRole maps DB role values to Casbin roles
var UserRoleToRBACRole = map[string]Role{
	UserRoleAdmin:       RoleOrgAdmin,
	UserRoleCoordinator: RoleOrgCoordinator,
	UserRoleCareWorker:  RoleOrgCareWorker,
	UserRoleFinance:     RoleOrgFinance,
}

// ----------------------------
// Domains
// ----------------------------

const (
	DomainSys Domain = "sys"

	// DomainOrg is the single provider organisation domain.
	DomainOrg Domain = "org"
)

// Domain prefixes (for exact domains we generate per entity)
const (
	DomainPrefixUser Domain = "user:"
)

const (
	WildcardDomain Domain = "*"
)

var (
	reUUID = regexp.MustCompile(`^[0-9a-fA-F-]{36}$`)
)

// UserDomain builds the private domain for a user's self-owned resources.
func UserDomain(userID string) Domain {
	return Domain(fmt.Sprintf("%s%s", DomainPrefixUser, userID))
}

// IsValidDomain checks whether d is a recognised domain string.
func IsValidDomain(d Domain) bool {
	if d == DomainSys || d == DomainOrg || d == WildcardDomain {
		return true
	}

	s := string(d)
	if len(s) > len(DomainPrefixUser) && s[:len(DomainPrefixUser)] == string(DomainPrefixUser) {
		return reUUID.MatchString(s[len(DomainPrefixUser):])
	}
	return false
}

// ----------------------------
// Casbin tuple helpers
// ----------------------------

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// PolicySubject is the p.sub in Casbin: either a role (preferred) or a user/service id.
type PolicySubject string

// GroupSubject is the g.sub in Casbin: a concrete principal id (user_id or service_id).
type GroupSubject string

// Grouping rows: g, user_id, role, domain
type GroupingPolicy struct {
	Subject GroupSubject
	Role    Role
	Domain  Domain
}

// Permission rows: p, role, domain, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Domain  Domain
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
