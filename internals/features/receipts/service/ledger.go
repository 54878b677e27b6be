package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sevasangh_backend/internals/constants"
	"sevasangh_backend/internals/features/receipts/model"
	helper "sevasangh_backend/internals/helpers"
)

/* =========================
   Error taxonomy
   ========================= */

var (
	ErrNotFound  = errors.New("receipt not found")
	ErrForbidden = errors.New("not allowed to modify this receipt")
	ErrConflict  = errors.New("duplicate receipt number")
	ErrInvalid   = errors.New("invalid receipt data")
)

// translateStoreErr maps store-level failures onto the taxonomy. Unique
// violations become ErrConflict; everything else is surfaced with its cause.
func translateStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	var pgErr interface {
		SQLState() string
		Error() string
	}
	if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

/* =========================
   Collaborators & caller
   ========================= */

// Directory resolves creator display codes and usernames. Implemented by
// the users feature; the ledger only depends on this interface.
type Directory interface {
	ResolveCreatorCode(ctx context.Context, creatorID uint) (string, error)
	ActiveUsernames(ctx context.Context, ids []uint) (map[uint]string, error)
}

// Caller identifies the authenticated operator performing an operation.
type Caller struct {
	ID    uint
	Roles []string
}

// restricted reports whether the caller only sees its own receipts.
func (c Caller) restricted() bool {
	return !constants.HasCapability(c.Roles, constants.CapReceiptsReadAll)
}

func (c Caller) hasAnyRole(roles ...string) bool {
	for _, r := range c.Roles {
		for _, want := range roles {
			if r == want {
				return true
			}
		}
	}
	return false
}

/* =========================
   Ledger
   ========================= */

type Ledger struct {
	db  *gorm.DB
	dir Directory
}

func NewLedger(db *gorm.DB, dir Directory) *Ledger {
	return &Ledger{db: db, dir: dir}
}

/* =========================
   Create
   ========================= */

type CreateInput struct {
	ReceiptDate      time.Time
	DonorName        string
	Village          string
	Residence        string
	Mobile           string
	RelationAddress  string
	PaymentMode      string
	PaymentDetails   string
	Donation1Purpose string
	Donation1Amount  float64
	Donation2Amount  float64
	TotalAmount      float64
	TotalAmountWords string
}

func (in CreateInput) validate() error {
	if in.ReceiptDate.IsZero() {
		return fmt.Errorf("%w: receipt_date is required", ErrInvalid)
	}
	if strings.TrimSpace(in.DonorName) == "" {
		return fmt.Errorf("%w: donor_name is required", ErrInvalid)
	}
	if in.Donation1Amount < 0 || in.Donation2Amount < 0 || in.TotalAmount < 0 {
		return fmt.Errorf("%w: amounts must be non-negative", ErrInvalid)
	}
	return nil
}

// Create inserts the receipt with a collision-proof placeholder number,
// uses the generated key to compose the permanent number, and finalizes
// it inside the same transaction. On any failure nothing remains visible.
func (l *Ledger) Create(ctx context.Context, in CreateInput, creatorID uint) (*model.Receipt, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.TotalAmountWords) == "" {
		in.TotalAmountWords = helper.AmountInWords(in.TotalAmount)
	}
	if strings.TrimSpace(in.PaymentMode) == "" {
		in.PaymentMode = "cash"
	}

	rec := model.Receipt{
		ReceiptNo:        placeholderNo(creatorID),
		ReceiptDate:      in.ReceiptDate,
		DonorName:        in.DonorName,
		Village:          in.Village,
		Residence:        in.Residence,
		Mobile:           in.Mobile,
		RelationAddress:  in.RelationAddress,
		PaymentMode:      in.PaymentMode,
		PaymentDetails:   in.PaymentDetails,
		Donation1Purpose: in.Donation1Purpose,
		Donation1Amount:  in.Donation1Amount,
		Donation2Amount:  in.Donation2Amount,
		TotalAmount:      in.TotalAmount,
		TotalAmountWords: in.TotalAmountWords,
		Status:           model.StatusCompleted,
		CreatedBy:        creatorID,
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return translateStoreErr(err)
		}

		code, err := l.dir.ResolveCreatorCode(ctx, creatorID)
		if err != nil {
			return fmt.Errorf("resolve creator code: %w", err)
		}

		finalNo := fmt.Sprintf("%s/%d/%04d", code, time.Now().Year(), rec.ID)
		if err := tx.Model(&model.Receipt{}).
			Where("receipt_id = ?", rec.ID).
			Update("receipt_no", finalNo).Error; err != nil {
			return translateStoreErr(err)
		}
		rec.ReceiptNo = finalNo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// placeholderNo builds a throwaway unique number for the insert phase.
// It never survives a successful creation.
func placeholderNo(creatorID uint) string {
	return fmt.Sprintf("TMP/%d/%d/%s", time.Now().UnixNano(), creatorID, uuid.NewString()[:8])
}

/* =========================
   Get / List
   ========================= */

func (l *Ledger) Get(ctx context.Context, id uint) (*model.Receipt, error) {
	var rec model.Receipt
	if err := l.db.WithContext(ctx).First(&rec, "receipt_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Filter holds the optional list filters; zero values mean "not set".
type Filter struct {
	Search      string // donor_name OR receipt_no, substring
	Place       string // village OR residence, substring
	PaymentMode string
	Purpose     string // donation1_purpose, substring
	Status      string
	DateFrom    *time.Time
	DateTo      *time.Time
	CreatedBy   *uint // honoured only with the read-all capability
}

func (l *Ledger) List(ctx context.Context, f Filter, page, perPage int, caller Caller) ([]model.Receipt, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	q := l.visible(ctx, caller)
	q = applyFilter(q, f, caller)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []model.Receipt{}
	if err := q.
		Order("receipt_date DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// visible scopes a receipts query by the caller's capability: without the
// read-all capability only the caller's own rows are in view.
func (l *Ledger) visible(ctx context.Context, caller Caller) *gorm.DB {
	q := l.db.WithContext(ctx).Model(&model.Receipt{})
	if caller.restricted() {
		q = q.Where("created_by = ?", caller.ID)
	}
	return q
}

func applyFilter(q *gorm.DB, f Filter, caller Caller) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(donor_name) LIKE ? OR LOWER(receipt_no) LIKE ?", like, like)
	}
	if p := strings.TrimSpace(f.Place); p != "" {
		like := "%" + strings.ToLower(p) + "%"
		q = q.Where("LOWER(village) LIKE ? OR LOWER(residence) LIKE ?", like, like)
	}
	if f.PaymentMode != "" {
		q = q.Where("payment_mode = ?", f.PaymentMode)
	}
	if pu := strings.TrimSpace(f.Purpose); pu != "" {
		q = q.Where("LOWER(donation1_purpose) LIKE ?", "%"+strings.ToLower(pu)+"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DateFrom != nil {
		q = q.Where("receipt_date >= ?", startOfDay(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where("receipt_date <= ?", endOfDay(*f.DateTo))
	}
	// created_by is a privileged filter; silently ignored without the
	// read-all capability (the base visibility rule already applies).
	if f.CreatedBy != nil && constants.HasCapability(caller.Roles, constants.CapReceiptsReadAll) {
		q = q.Where("created_by = ?", *f.CreatedBy)
	}
	return q
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

/* =========================
   Update / Cancel
   ========================= */

// Patch carries partial-update fields; nil means "leave untouched".
// receipt_no, created_by and status are not part of the patch surface.
type Patch struct {
	ReceiptDate      *time.Time
	DonorName        *string
	Village          *string
	Residence        *string
	Mobile           *string
	RelationAddress  *string
	PaymentMode      *string
	PaymentDetails   *string
	Donation1Purpose *string
	Donation1Amount  *float64
	Donation2Amount  *float64
	TotalAmount      *float64
	TotalAmountWords *string
}

func (p Patch) changes() (map[string]interface{}, error) {
	ch := map[string]interface{}{}
	if p.ReceiptDate != nil {
		if p.ReceiptDate.IsZero() {
			return nil, fmt.Errorf("%w: receipt_date cannot be empty", ErrInvalid)
		}
		ch["receipt_date"] = *p.ReceiptDate
	}
	if p.DonorName != nil {
		ch["donor_name"] = *p.DonorName
	}
	if p.Village != nil {
		ch["village"] = *p.Village
	}
	if p.Residence != nil {
		ch["residence"] = *p.Residence
	}
	if p.Mobile != nil {
		ch["mobile"] = *p.Mobile
	}
	if p.RelationAddress != nil {
		ch["relation_address"] = *p.RelationAddress
	}
	if p.PaymentMode != nil {
		ch["payment_mode"] = *p.PaymentMode
	}
	if p.PaymentDetails != nil {
		ch["payment_details"] = *p.PaymentDetails
	}
	if p.Donation1Purpose != nil {
		ch["donation1_purpose"] = *p.Donation1Purpose
	}
	for col, v := range map[string]*float64{
		"donation1_amount": p.Donation1Amount,
		"donation2_amount": p.Donation2Amount,
		"total_amount":     p.TotalAmount,
	} {
		if v != nil {
			if *v < 0 {
				return nil, fmt.Errorf("%w: %s must be non-negative", ErrInvalid, col)
			}
			ch[col] = *v
		}
	}
	if p.TotalAmountWords != nil {
		ch["total_amount_words"] = *p.TotalAmountWords
	}
	return ch, nil
}

// guardMutate enforces the ownership rule for update/cancel.
func guardMutate(rec *model.Receipt, caller Caller) error {
	if caller.restricted() && rec.CreatedBy != caller.ID {
		return ErrForbidden
	}
	return nil
}

func (l *Ledger) Update(ctx context.Context, id uint, p Patch, caller Caller) (*model.Receipt, error) {
	ch, err := p.changes()
	if err != nil {
		return nil, err
	}

	var rec model.Receipt
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "receipt_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := guardMutate(&rec, caller); err != nil {
			return err
		}
		if len(ch) == 0 {
			return nil
		}
		ch["updated_at"] = time.Now()
		if err := tx.Model(&model.Receipt{}).
			Where("receipt_id = ?", id).
			Updates(ch).Error; err != nil {
			return translateStoreErr(err)
		}
		return tx.First(&rec, "receipt_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Cancel flips the status to cancelled. The record stays in the store and
// cancelling an already-cancelled receipt succeeds silently.
func (l *Ledger) Cancel(ctx context.Context, id uint, caller Caller) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec model.Receipt
		if err := tx.First(&rec, "receipt_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := guardMutate(&rec, caller); err != nil {
			return err
		}
		if rec.Status == model.StatusCancelled {
			return nil
		}
		return tx.Model(&model.Receipt{}).
			Where("receipt_id = ?", id).
			Updates(map[string]interface{}{
				"status":     model.StatusCancelled,
				"updated_at": time.Now(),
			}).Error
	})
}

/* =========================
   Stats / Creators
   ========================= */

type Stats struct {
	TotalReceipts       int64   `json:"total_receipts"`
	TotalDonationAmount float64 `json:"total_donation_amount"`
	CompletedReceipts   int64   `json:"completed_receipts"`
	CancelledReceipts   int64   `json:"cancelled_receipts"`
	CurrentYear         int     `json:"current_year"`
}

func (l *Ledger) Stats(ctx context.Context, caller Caller) (*Stats, error) {
	st := Stats{CurrentYear: time.Now().Year()}

	if err := l.visible(ctx, caller).Count(&st.TotalReceipts).Error; err != nil {
		return nil, err
	}
	if err := l.visible(ctx, caller).
		Select("COALESCE(SUM(COALESCE(total_amount, 0)), 0)").
		Scan(&st.TotalDonationAmount).Error; err != nil {
		return nil, err
	}
	if err := l.visible(ctx, caller).
		Where("status = ?", model.StatusCompleted).
		Count(&st.CompletedReceipts).Error; err != nil {
		return nil, err
	}
	if err := l.visible(ctx, caller).
		Where("status = ?", model.StatusCancelled).
		Count(&st.CancelledReceipts).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

type Creator struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Creators lists distinct active identities that issued at least one
// receipt, sorted by username. It degrades to an empty list instead of
// erroring: the result feeds an optional UI dropdown.
func (l *Ledger) Creators(ctx context.Context, caller Caller) []Creator {
	if !caller.hasAnyRole(constants.ReceiptStaff...) {
		return []Creator{}
	}

	var ids []uint
	if err := l.db.WithContext(ctx).
		Model(&model.Receipt{}).
		Distinct("created_by").
		Pluck("created_by", &ids).Error; err != nil {
		return []Creator{}
	}
	if len(ids) == 0 {
		return []Creator{}
	}

	names, err := l.dir.ActiveUsernames(ctx, ids)
	if err != nil {
		return []Creator{}
	}

	out := make([]Creator, 0, len(names))
	for id, name := range names {
		out = append(out, Creator{ID: id, Username: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
