package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyfront/storefront-gateway/permissions"
)

func TestHasPermission_FixedPerRoleLists(t *testing.T) {
	assert.True(t, permissions.HasPermission("cashier", permissions.UsePOS))
	assert.True(t, permissions.HasPermission("cashier", permissions.OpenRegister))
	assert.False(t, permissions.HasPermission("cashier", permissions.ApplyDiscounts))
	assert.False(t, permissions.HasPermission("cashier", permissions.ProcessRefunds))

	assert.True(t, permissions.HasPermission("manager", permissions.ProcessRefunds))
	assert.True(t, permissions.HasPermission("staff", permissions.UsePOS))
	assert.False(t, permissions.HasPermission("staff", permissions.OpenRegister))
}

func TestHasPermission_NoWildcard(t *testing.T) {
	// Unlike the storefront RBAC table, the POS map has no wildcard role:
	// even managers hold only their listed permissions.
	assert.False(t, permissions.HasPermission("manager", "delete_products"))
	assert.False(t, permissions.HasPermission("administrator", permissions.UsePOS))
}

func TestPermissionsFor_ReturnsCopy(t *testing.T) {
	perms := permissions.PermissionsFor("cashier")
	assert.ElementsMatch(t, []string{permissions.UsePOS, permissions.OpenRegister}, perms)

	perms[0] = "mutated"
	assert.True(t, permissions.HasPermission("cashier", permissions.UsePOS))
}
