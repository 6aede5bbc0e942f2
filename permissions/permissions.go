// Package permissions is the point-of-sale permission map. It predates the
// wildcard RBAC table in the auth package and uses a different role
// vocabulary with fixed per-role lists and no wildcard; POS screens still
// resolve against it, so both systems are kept.
package permissions

// POS permission names.
const (
	UsePOS         = "use_pos"
	ApplyDiscounts = "apply_discounts"
	ProcessRefunds = "process_refunds"
	OpenRegister   = "open_register"
	ViewTillReport = "view_till_report"
)

var rolePermissions = map[string][]string{
	"manager": {UsePOS, ApplyDiscounts, ProcessRefunds, OpenRegister, ViewTillReport},
	"cashier": {UsePOS, OpenRegister},
	"staff":   {UsePOS},
}

// HasPermission reports whether the single POS role grants perm. Unknown
// roles grant nothing.
func HasPermission(role, perm string) bool {
	for _, granted := range rolePermissions[role] {
		if granted == perm {
			return true
		}
	}
	return false
}

// PermissionsFor returns the fixed permission list for a POS role.
func PermissionsFor(role string) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
