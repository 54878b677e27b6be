package constants

import "testing"

func TestHasCapability(t *testing.T) {
	cases := []struct {
		name  string
		roles []string
		cap   Capability
		want  bool
	}{
		{"admin reads all", []string{RoleAdmin}, CapReceiptsReadAll, true},
		{"admin manages donors", []string{RoleAdmin}, CapDonorsManage, true},
		{"creator creates", []string{RoleReceiptCreator}, CapReceiptsCreate, true},
		{"creator cannot read all", []string{RoleReceiptCreator}, CapReceiptsReadAll, false},
		{"creator sees stats", []string{RoleReceiptCreator}, CapReceiptsStats, true},
		{"viewer reads all", []string{RoleReceiptReportViewer}, CapReceiptsReadAll, true},
		{"viewer cannot create", []string{RoleReceiptReportViewer}, CapReceiptsCreate, false},
		{"plain user has nothing", []string{RoleUser}, CapReceiptsStats, false},
		{"unknown role has nothing", []string{"ghost"}, CapReceiptsCreate, false},
		{"empty role set", nil, CapReceiptsCreate, false},
		{"any grant in multi-role set", []string{RoleUser, RoleReceiptReportViewer}, CapReceiptsReadAll, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasCapability(tc.roles, tc.cap); got != tc.want {
				t.Errorf("HasCapability(%v, %q) = %v, want %v", tc.roles, tc.cap, got, tc.want)
			}
		})
	}
}
