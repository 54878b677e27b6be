package constants

import "fmt"

// Role names as stored on the users table and carried in the JWT.
const (
	RoleAdmin               = "admin"
	RoleReceiptCreator      = "receipt_creator"
	RoleReceiptReportViewer = "receipt_report_viewer"
	RoleUser                = "user"
)

// Error message templates for role guards
const (
	ErrOnlyAdminsCanAccess       = "Only admin may access %s."
	ErrOnlyReceiptStaffCanAccess = "Only admin, receipt creators or report viewers may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorReceiptStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyReceiptStaffCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleAdmin,
		RoleReceiptCreator,
		RoleReceiptReportViewer,
	}

	ReceiptStaff = []string{
		RoleAdmin,
		RoleReceiptCreator,
		RoleReceiptReportViewer,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
