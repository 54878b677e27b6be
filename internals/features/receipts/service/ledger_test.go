package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sevasangh_backend/internals/constants"
	"sevasangh_backend/internals/features/receipts/model"
)

type fakeDirectory struct {
	code     string
	codeErr  error
	users    map[uint]string
	usersErr error
}

func (f *fakeDirectory) ResolveCreatorCode(ctx context.Context, creatorID uint) (string, error) {
	if f.codeErr != nil {
		return "", f.codeErr
	}
	if f.code != "" {
		return f.code, nil
	}
	return fmt.Sprintf("RC%d", creatorID), nil
}

func (f *fakeDirectory) ActiveUsernames(ctx context.Context, ids []uint) (map[uint]string, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return f.users, nil
}

func setupLedger(t *testing.T, dir Directory) *Ledger {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Receipt{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewLedger(db, dir)
}

var (
	adminCaller   = Caller{ID: 1, Roles: []string{constants.RoleAdmin}}
	creatorCaller = Caller{ID: 2, Roles: []string{constants.RoleReceiptCreator}}
	viewerCaller  = Caller{ID: 3, Roles: []string{constants.RoleReceiptReportViewer}}
)

func sampleInput(date time.Time, amount float64) CreateInput {
	return CreateInput{
		ReceiptDate:     date,
		DonorName:       "A Patel",
		Village:         "X",
		PaymentMode:     "cash",
		Donation1Amount: amount,
		TotalAmount:     amount,
	}
}

func mustCreate(t *testing.T, l *Ledger, in CreateInput, creatorID uint) *model.Receipt {
	t.Helper()
	rec, err := l.Create(context.Background(), in, creatorID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return rec
}

/* ========================= Create ========================= */

func TestCreateAssignsFormattedNumber(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{code: "RC3"})

	rec := mustCreate(t, l, sampleInput(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 500), 7)

	want := fmt.Sprintf("RC3/%d/0001", time.Now().Year())
	if rec.ReceiptNo != want {
		t.Errorf("receipt_no = %q, want %q", rec.ReceiptNo, want)
	}
	if rec.Status != model.StatusCompleted {
		t.Errorf("status = %q, want completed", rec.Status)
	}
	if rec.CreatedBy != 7 {
		t.Errorf("created_by = %d, want 7", rec.CreatedBy)
	}
}

func TestCreateNumberMatchesPattern(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{code: "RCA"})
	pattern := regexp.MustCompile(`^[A-Z]+[0-9]*/\d{4}/\d{4}$`)

	for i := 0; i < 3; i++ {
		rec := mustCreate(t, l, sampleInput(time.Now(), 100), 1)
		if !pattern.MatchString(rec.ReceiptNo) {
			t.Errorf("receipt_no %q does not match pattern", rec.ReceiptNo)
		}
	}
}

func TestCreateSequenceStrictlyIncreases(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{code: "RC1"})

	first := mustCreate(t, l, sampleInput(time.Now(), 100), 2)
	second := mustCreate(t, l, sampleInput(time.Now(), 200), 2)

	if first.ReceiptNo >= second.ReceiptNo {
		t.Errorf("sequence not increasing: %q then %q", first.ReceiptNo, second.ReceiptNo)
	}
	if first.ReceiptNo == second.ReceiptNo {
		t.Errorf("numbers must be unique")
	}
}

func TestCreateDefaultsAmountWords(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{code: "RC1"})

	rec := mustCreate(t, l, sampleInput(time.Now(), 500), 2)
	if rec.TotalAmountWords != "Five Hundred Rupees Only" {
		t.Errorf("total_amount_words = %q", rec.TotalAmountWords)
	}
}

func TestCreateRollsBackWhenCodeResolutionFails(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{codeErr: errors.New("directory down")})

	if _, err := l.Create(context.Background(), sampleInput(time.Now(), 100), 2); err == nil {
		t.Fatal("expected error")
	}

	var count int64
	if err := l.db.Model(&model.Receipt{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no visible record after rollback, found %d", count)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	cases := []CreateInput{
		{DonorName: "X"},                      // missing date
		{ReceiptDate: time.Now()},             // missing donor
		{ReceiptDate: time.Now(), DonorName: "X", TotalAmount: -1},
	}
	for i, in := range cases {
		if _, err := l.Create(context.Background(), in, 1); !errors.Is(err, ErrInvalid) {
			t.Errorf("case %d: expected ErrInvalid, got %v", i, err)
		}
	}
}

/* ========================= Get / List ========================= */

func TestGetNotFound(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})
	if _, err := l.Get(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListVisibilityScoping(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	mustCreate(t, l, sampleInput(time.Now(), 100), creatorCaller.ID)
	mustCreate(t, l, sampleInput(time.Now(), 200), 5) // foreign creator
	mustCreate(t, l, sampleInput(time.Now(), 300), 5)

	_, total, err := l.List(context.Background(), Filter{}, 1, 10, creatorCaller)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Errorf("restricted caller sees %d rows, want 1", total)
	}

	_, total, err = l.List(context.Background(), Filter{}, 1, 10, adminCaller)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Errorf("admin sees %d rows, want 3", total)
	}
}

func TestListDateRangeDayBounds(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	mustCreate(t, l, sampleInput(day.Add(1*time.Minute), 100), 1)         // 00:01
	mustCreate(t, l, sampleInput(day.Add(23*time.Hour+59*time.Minute), 100), 1)
	mustCreate(t, l, sampleInput(day.AddDate(0, 0, 1), 100), 1)           // next day
	mustCreate(t, l, sampleInput(day.AddDate(0, 0, -1), 100), 1)          // prev day

	f := Filter{DateFrom: &day, DateTo: &day}
	_, total, err := l.List(context.Background(), f, 1, 10, adminCaller)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Errorf("date filter matched %d rows, want 2", total)
	}
}

func TestListFilters(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	in := sampleInput(time.Now(), 100)
	in.DonorName = "Bhavna Shah"
	in.Village = "Anand"
	in.Donation1Purpose = "Temple Fund"
	mustCreate(t, l, in, 1)

	other := sampleInput(time.Now(), 50)
	other.DonorName = "Kiran Mehta"
	other.PaymentMode = "cheque"
	mustCreate(t, l, other, 1)

	_, total, _ := l.List(context.Background(), Filter{Search: "bhavna"}, 1, 10, adminCaller)
	if total != 1 {
		t.Errorf("search filter matched %d, want 1", total)
	}
	_, total, _ = l.List(context.Background(), Filter{Place: "ANAND"}, 1, 10, adminCaller)
	if total != 1 {
		t.Errorf("place filter matched %d, want 1", total)
	}
	_, total, _ = l.List(context.Background(), Filter{PaymentMode: "cheque"}, 1, 10, adminCaller)
	if total != 1 {
		t.Errorf("payment_mode filter matched %d, want 1", total)
	}
	_, total, _ = l.List(context.Background(), Filter{Purpose: "temple"}, 1, 10, adminCaller)
	if total != 1 {
		t.Errorf("purpose filter matched %d, want 1", total)
	}
}

func TestListCreatedByFilterNeedsCapability(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	mustCreate(t, l, sampleInput(time.Now(), 100), creatorCaller.ID)
	mustCreate(t, l, sampleInput(time.Now(), 100), 5)

	target := uint(5)

	// admin: filter honoured
	_, total, _ := l.List(context.Background(), Filter{CreatedBy: &target}, 1, 10, adminCaller)
	if total != 1 {
		t.Errorf("admin created_by filter matched %d, want 1", total)
	}

	// restricted creator: filter silently ignored, base visibility applies
	_, total, _ = l.List(context.Background(), Filter{CreatedBy: &target}, 1, 10, creatorCaller)
	if total != 1 {
		t.Errorf("restricted caller got %d rows, want 1 (own only)", total)
	}
	items, _, _ := l.List(context.Background(), Filter{CreatedBy: &target}, 1, 10, creatorCaller)
	for _, it := range items {
		if it.CreatedBy != creatorCaller.ID {
			t.Errorf("restricted caller saw foreign row created_by=%d", it.CreatedBy)
		}
	}
}

func TestListOrderAndPagination(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		mustCreate(t, l, sampleInput(base.AddDate(0, 0, i), 100), 1)
	}

	items, total, err := l.List(context.Background(), Filter{}, 2, 2, adminCaller)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(items) != 2 {
		t.Fatalf("page size = %d, want 2", len(items))
	}
	if !items[0].ReceiptDate.After(items[1].ReceiptDate) {
		t.Errorf("expected receipt_date DESC ordering")
	}
}

/* ========================= Update / Cancel ========================= */

func TestUpdateForbiddenLeavesRecordUnchanged(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	rec := mustCreate(t, l, sampleInput(time.Now(), 100), 5) // owned by user 5

	name := "Hacked"
	_, err := l.Update(context.Background(), rec.ID, Patch{DonorName: &name}, creatorCaller)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	got, err := l.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DonorName != "A Patel" {
		t.Errorf("record changed despite Forbidden: donor_name=%q", got.DonorName)
	}
}

func TestUpdateAppliesPartialPatch(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	rec := mustCreate(t, l, sampleInput(time.Now(), 100), creatorCaller.ID)

	name := "B Patel"
	amount := 750.0
	got, err := l.Update(context.Background(), rec.ID, Patch{DonorName: &name, TotalAmount: &amount}, creatorCaller)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.DonorName != "B Patel" || got.TotalAmount != 750 {
		t.Errorf("patch not applied: %+v", got)
	}
	if got.Village != "X" {
		t.Errorf("untouched field changed: village=%q", got.Village)
	}
	if got.ReceiptNo != rec.ReceiptNo {
		t.Errorf("receipt_no mutated by update")
	}
	if got.CreatedBy != rec.CreatedBy {
		t.Errorf("created_by mutated by update")
	}
}

func TestUpdateClearsFieldWithZeroPointer(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	rec := mustCreate(t, l, sampleInput(time.Now(), 100), creatorCaller.ID)

	got, err := l.Update(context.Background(), rec.ID, Patch{Village: new(string)}, creatorCaller)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Village != "" {
		t.Errorf("village = %q, want cleared", got.Village)
	}
	if got.DonorName != "A Patel" {
		t.Errorf("untouched field changed: donor_name=%q", got.DonorName)
	}
}

func TestUpdateNotFound(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})
	name := "X"
	if _, err := l.Update(context.Background(), 42, Patch{DonorName: &name}, adminCaller); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	rec := mustCreate(t, l, sampleInput(time.Now(), 100), creatorCaller.ID)

	if err := l.Cancel(context.Background(), rec.ID, creatorCaller); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := l.Cancel(context.Background(), rec.ID, creatorCaller); err != nil {
		t.Fatalf("second cancel should succeed silently: %v", err)
	}

	got, _ := l.Get(context.Background(), rec.ID)
	if got.Status != model.StatusCancelled {
		t.Errorf("status = %q, want cancelled", got.Status)
	}
}

func TestCancelForbiddenForForeignRecord(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	rec := mustCreate(t, l, sampleInput(time.Now(), 100), 5)
	if err := l.Cancel(context.Background(), rec.ID, creatorCaller); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	got, _ := l.Get(context.Background(), rec.ID)
	if got.Status != model.StatusCompleted {
		t.Errorf("status changed despite Forbidden")
	}
}

/* ========================= Stats ========================= */

func TestStatsScopedAndSummed(t *testing.T) {
	l := setupLedger(t, &fakeDirectory{})

	mustCreate(t, l, sampleInput(time.Now(), 100), creatorCaller.ID)
	mustCreate(t, l, sampleInput(time.Now(), 250), 5)
	rec := mustCreate(t, l, sampleInput(time.Now(), 50), 5)
	if err := l.Cancel(context.Background(), rec.ID, adminCaller); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	st, err := l.Stats(context.Background(), adminCaller)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalReceipts != 3 || st.CompletedReceipts != 2 || st.CancelledReceipts != 1 {
		t.Errorf("admin counts wrong: %+v", st)
	}
	if st.TotalDonationAmount != 400 {
		t.Errorf("admin sum = %v, want 400", st.TotalDonationAmount)
	}
	if st.CurrentYear != time.Now().Year() {
		t.Errorf("current_year = %d", st.CurrentYear)
	}

	st, err = l.Stats(context.Background(), creatorCaller)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalReceipts != 1 || st.TotalDonationAmount != 100 {
		t.Errorf("restricted stats wrong: %+v", st)
	}
}

/* ========================= Creators ========================= */

func TestCreatorsSortedByUsername(t *testing.T) {
	dir := &fakeDirectory{users: map[uint]string{2: "receipt_creator2", 5: "anita"}}
	l := setupLedger(t, dir)

	mustCreate(t, l, sampleInput(time.Now(), 100), 2)
	mustCreate(t, l, sampleInput(time.Now(), 100), 5)

	got := l.Creators(context.Background(), adminCaller)
	if len(got) != 2 {
		t.Fatalf("creators = %d, want 2", len(got))
	}
	if got[0].Username != "anita" || got[1].Username != "receipt_creator2" {
		t.Errorf("not sorted by username: %+v", got)
	}
}

func TestCreatorsDegradesToEmpty(t *testing.T) {
	// role without any receipt capability
	l := setupLedger(t, &fakeDirectory{})
	mustCreate(t, l, sampleInput(time.Now(), 100), 2)

	if got := l.Creators(context.Background(), Caller{ID: 9, Roles: []string{constants.RoleUser}}); len(got) != 0 {
		t.Errorf("expected empty list for plain user, got %+v", got)
	}

	// directory failure degrades silently
	l2 := setupLedger(t, &fakeDirectory{usersErr: errors.New("directory down")})
	mustCreate(t, l2, sampleInput(time.Now(), 100), 2)
	if got := l2.Creators(context.Background(), adminCaller); len(got) != 0 {
		t.Errorf("expected empty list on directory failure, got %+v", got)
	}

	// no receipts at all
	l3 := setupLedger(t, &fakeDirectory{users: map[uint]string{}})
	if got := l3.Creators(context.Background(), viewerCaller); len(got) != 0 {
		t.Errorf("expected empty list with no receipts, got %+v", got)
	}
}
