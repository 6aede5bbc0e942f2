// Package auth holds the gateway's role-based access control: the static
// role-to-permission table and the session token claims.
package auth

import "github.com/toyfront/storefront-gateway/models"

// Wildcard grants every permission to a role that carries it.
const Wildcard = "*"

// RolePermissions maps store roles to the permissions they grant. Roles
// absent from the table grant nothing.
var RolePermissions = map[string][]string{
	"administrator": {Wildcard},
	"shop_manager":  {Wildcard},
	"inventory_manager": {
		"view_products", "edit_products", "manage_inventory", "view_reports",
	},
	"order_manager": {
		"view_orders", "edit_orders", "manage_shipping", "view_customers", "edit_customers", "view_reports",
	},
	"cashier": {
		"use_pos", "view_products", "view_orders",
	},
	"staff": {
		"view_products", "view_orders",
	},
	"customer": {
		"view_products",
	},
}

// HasRole reports whether the user's role list contains role.
func HasRole(user *models.User, role string) bool {
	for _, r := range user.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission reports whether any of the user's roles grants perm, either
// directly or through the wildcard.
func HasPermission(user *models.User, perm string) bool {
	for _, role := range user.Roles {
		for _, granted := range RolePermissions[role] {
			if granted == Wildcard || granted == perm {
				return true
			}
		}
	}
	return false
}
