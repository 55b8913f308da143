package db_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleStaff, CapCreateOrder, true},
		{RoleStaff, CapVerifyOrder, true},
		{RoleStaff, CapConfirmOrder, false},
		{RoleStaff, CapManageShipments, false},
		{RoleVendor, CapConfirmOrder, true},
		{RoleVendor, CapCreateOrder, false},
		{RoleVendor, CapManageVehicles, true},
		{RoleCompany, CapConfirmOrder, true},
		{RoleCompany, CapManageShipments, true},
		{RoleVendor, CapOverrideOrder, false},
		{RoleAdmin, CapOverrideOrder, true},
		{RoleAdmin, CapCreateOrder, true},
		{RoleAdmin, CapManageAccounts, true},
		{RoleStaff, CapManageAccounts, false},
		{Role("GUEST"), CapCreateOrder, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.role.Can(tc.cap), "%s %s", tc.role, tc.cap)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleCompany.Valid())
	assert.False(t, Role("staff").Valid())
	assert.True(t, RoleCompany.IsSupplier())
	assert.False(t, RoleAdmin.IsSupplier())
}
