package db_models

type Role string

const (
	RoleStaff   Role = "STAFF"
	RoleVendor  Role = "VENDOR"
	RoleCompany Role = "COMPANY"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleVendor, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// IsSupplier reports whether the role acts for an external supplier.
func (r Role) IsSupplier() bool {
	return r == RoleVendor || r == RoleCompany
}

type Capability string

const (
	CapCreateOrder        Capability = "order:create"
	CapVerifyOrder        Capability = "order:verify"
	CapCancelOrder        Capability = "order:cancel"
	CapConfirmOrder       Capability = "order:confirm"
	CapOverrideOrder      Capability = "order:override"
	CapManageShipments    Capability = "shipment:manage"
	CapManageVehicles     Capability = "vehicle:manage"
	CapManageProducts     Capability = "product:manage"
	CapManageInvoices     Capability = "invoice:manage"
	CapManageCertificates Capability = "certificate:manage"
	CapViewDashboard      Capability = "dashboard:view"
	CapManageAccounts     Capability = "account:manage"
	CapRequestInsights    Capability = "insight:request"
	CapManageSettings     Capability = "settings:manage"
)

var (
	hospitalSide = []Role{RoleStaff, RoleAdmin}
	supplierSide = []Role{RoleVendor, RoleCompany, RoleAdmin}
	adminOnly    = []Role{RoleAdmin}
)

var policy = map[Capability][]Role{
	CapCreateOrder:        hospitalSide,
	CapVerifyOrder:        hospitalSide,
	CapCancelOrder:        hospitalSide,
	CapRequestInsights:    hospitalSide,
	CapConfirmOrder:       supplierSide,
	CapManageShipments:    supplierSide,
	CapManageVehicles:     supplierSide,
	CapManageProducts:     supplierSide,
	CapManageInvoices:     supplierSide,
	CapManageCertificates: supplierSide,
	CapViewDashboard:      supplierSide,
	CapOverrideOrder:      adminOnly,
	CapManageAccounts:     adminOnly,
	CapManageSettings:     adminOnly,
}

// Can is the single authorization policy for every role-gated operation.
func (r Role) Can(c Capability) bool {
	for _, allowed := range policy[c] {
		if allowed == r {
			return true
		}
	}
	return false
}
