package constants

// Capability is a named permission, decoupled from literal role-name strings
// so that permission rules live in one table and are testable in isolation.
type Capability string

const (
	CapReceiptsCreate  Capability = "receipts:create"
	CapReceiptsReadAll Capability = "receipts:read-all"
	CapReceiptsStats   Capability = "receipts:stats"
	CapDonorsManage    Capability = "donors:manage"
	CapLookupManage    Capability = "lookup:manage"
)

// roleCapabilities maps each role to the capabilities it grants.
// A receipt_creator may create and see stats, but only over its own rows;
// the read-all capability is what widens visibility in list/stats and
// unlocks the created_by filter.
var roleCapabilities = map[string][]Capability{
	RoleAdmin: {
		CapReceiptsCreate,
		CapReceiptsReadAll,
		CapReceiptsStats,
		CapDonorsManage,
		CapLookupManage,
	},
	RoleReceiptCreator: {
		CapReceiptsCreate,
		CapReceiptsStats,
	},
	RoleReceiptReportViewer: {
		CapReceiptsReadAll,
		CapReceiptsStats,
	},
	RoleUser: {},
}

// HasCapability reports whether any of the given roles grants cap.
func HasCapability(roles []string, cap Capability) bool {
	for _, role := range roles {
		for _, granted := range roleCapabilities[role] {
			if granted == cap {
				return true
			}
		}
	}
	return false
}
