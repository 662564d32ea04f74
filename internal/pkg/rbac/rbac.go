// Package rbac maps account roles to the capabilities they hold.
package rbac

import (
	"fmt"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
)

// Capability names a group of operations guarded at the HTTP boundary.
type Capability string

const (
	ManageStaff        Capability = "manage_staff"
	ManageCatalog      Capability = "manage_catalog"
	ManageTables       Capability = "manage_tables"
	ViewStats          Capability = "view_stats"
	AdministerOrders   Capability = "administer_orders"
	ViewTables         Capability = "view_tables"
	HandleOrders       Capability = "handle_orders"
	CookOrders         Capability = "cook_orders"
	ManageReservations Capability = "manage_reservations"
	PlaceOrders        Capability = "place_orders"
	Reserve            Capability = "reserve"
	Pay                Capability = "pay"
	Review             Capability = "review"
)

var (
	managerOnly  = []model.Role{model.RoleManager}
	floorStaff   = []model.Role{model.RoleManager, model.RoleWaiter}
	kitchenStaff = []model.Role{model.RoleManager, model.RoleCook}
	everyone     = []model.Role{model.RoleManager, model.RoleWaiter, model.RoleCook, model.RoleClient}
)

var grants = map[Capability][]model.Role{
	ManageStaff:        managerOnly,
	ManageCatalog:      managerOnly,
	ManageTables:       managerOnly,
	ViewStats:          managerOnly,
	AdministerOrders:   managerOnly,
	ViewTables:         floorStaff,
	HandleOrders:       floorStaff,
	ManageReservations: floorStaff,
	CookOrders:         kitchenStaff,
	PlaceOrders:        everyone,
	Reserve:            everyone,
	Pay:                everyone,
	Review:             everyone,
}

// Allowed reports whether role holds capability.
func Allowed(role model.Role, capability Capability) bool {
	for _, r := range grants[capability] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize returns ErrForbidden when role lacks capability.
func Authorize(role model.Role, capability Capability) error {
	if Allowed(role, capability) {
		return nil
	}
	return fmt.Errorf("role %q lacks %s: %w", role, capability, domainErrors.ErrForbidden)
}
