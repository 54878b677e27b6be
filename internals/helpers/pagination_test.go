package helper

import "testing"

func TestPagingLimitOffset(t *testing.T) {
	p := Paging{Page: 3, PerPage: 25}
	if p.Limit() != 25 {
		t.Errorf("Limit = %d, want 25", p.Limit())
	}
	if p.Offset() != 50 {
		t.Errorf("Offset = %d, want 50", p.Offset())
	}
}

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"date":   "receipt_date",
		"amount": "total_amount",
	}

	cases := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"known key desc default", "date", "", `"receipt_date" DESC`},
		{"asc honoured", "amount", "asc", `"total_amount" ASC`},
		{"ASC case-insensitive", "amount", "ASC", `"total_amount" ASC`},
		{"unknown key falls back", "evil; DROP TABLE", "", `"receipt_date" DESC`},
		{"empty key falls back", "", "desc", `"receipt_date" DESC`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SafeOrderClause(tc.sortBy, tc.sortOrder, allowed, "date")
			if err != nil {
				t.Fatalf("order clause: %v", err)
			}
			if got != tc.want {
				t.Errorf("clause = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSafeOrderClauseNoDefault(t *testing.T) {
	if _, err := SafeOrderClause("x", "asc", map[string]string{}, "missing"); err == nil {
		t.Fatal("expected error when default key is not in the whitelist")
	}
}

func TestBuildPagination(t *testing.T) {
	pg := BuildPagination(45, Paging{Page: 2, PerPage: 10}, 10)
	if pg.TotalPages != 5 {
		t.Errorf("total_pages = %d, want 5", pg.TotalPages)
	}
	if pg.Total != 45 || pg.Page != 2 || pg.PerPage != 10 || pg.Count != 10 {
		t.Errorf("pagination = %+v", pg)
	}
}
