package constants

import "fmt"

// Church roles carried in the session token "role" claim.
const (
	RoleMaster         = "master"
	RoleLeaderMinistry = "leader_ministry"
	RoleLeaderDept     = "leader_dept"
	RoleMember         = "member"
)

// Role error message templates
const (
	ErrOnlyLeadersCanAccess = "❌ Only master or leaders can access %s."
)

func RoleErrorLeader(feature string) string {
	return fmt.Sprintf(ErrOnlyLeadersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleMaster,
		RoleLeaderMinistry,
		RoleLeaderDept,
		RoleMember,
	}

	LeaderAndAbove = []string{
		RoleMaster,
		RoleLeaderMinistry,
		RoleLeaderDept,
	}
)

func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
