package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyfront/storefront-gateway/auth"
	"github.com/toyfront/storefront-gateway/models"
)

func userWithRoles(roles ...string) *models.User {
	return &models.User{ID: 1, Username: "tester", Roles: roles}
}

func TestHasRole(t *testing.T) {
	user := userWithRoles("cashier", "staff")

	assert.True(t, auth.HasRole(user, "cashier"))
	assert.False(t, auth.HasRole(user, "administrator"))
}

func TestHasPermission_AdministratorWildcard(t *testing.T) {
	user := userWithRoles("administrator")

	// The wildcard grants every permission, including ones never named in
	// the table.
	for _, perm := range []string{"use_pos", "delete_products", "view_reports", "anything_at_all"} {
		assert.True(t, auth.HasPermission(user, perm), perm)
	}
}

func TestHasPermission_CashierFixedGrants(t *testing.T) {
	user := userWithRoles("cashier")

	assert.True(t, auth.HasPermission(user, "use_pos"))
	assert.False(t, auth.HasPermission(user, "delete_products"))
}

func TestHasPermission_UnknownRoleGrantsNothing(t *testing.T) {
	user := userWithRoles("subscriber")

	assert.False(t, auth.HasPermission(user, "view_products"))
}

func TestHasPermission_AnyRoleSuffices(t *testing.T) {
	user := userWithRoles("customer", "order_manager")

	assert.True(t, auth.HasPermission(user, "edit_orders"))
	assert.True(t, auth.HasPermission(user, "view_products"))
}
