package controller

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sevasangh_backend/internals/constants"
	"sevasangh_backend/internals/features/receipts/dto"
	"sevasangh_backend/internals/features/receipts/service"
	helper "sevasangh_backend/internals/helpers"
	authMw "sevasangh_backend/internals/middlewares/auth"
)

type ReceiptController struct {
	Ledger   *service.Ledger
	Validate *validator.Validate
}

func New(ledger *service.Ledger, v *validator.Validate) *ReceiptController {
	return &ReceiptController{Ledger: ledger, Validate: v}
}

func callerFrom(c *fiber.Ctx) (service.Caller, error) {
	id, err := authMw.UserID(c)
	if err != nil {
		return service.Caller{}, err
	}
	return service.Caller{ID: id, Roles: authMw.Roles(c)}, nil
}

// writeLedgerError maps the ledger error taxonomy onto HTTP statuses.
func writeLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Receipt not found")
	case errors.Is(err, service.ErrForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, "You may only modify your own receipts")
	case errors.Is(err, service.ErrConflict):
		return helper.JsonError(c, fiber.StatusConflict, "Receipt number already exists")
	default:
		log.Println("[ERROR] receipts:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}

/* ========================= Create ========================= */

func (ctl *ReceiptController) Create(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	if !constants.HasCapability(caller.Roles, constants.CapReceiptsCreate) {
		return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorReceiptStaff("receipt creation"))
	}

	var req dto.CreateReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	rec, err := ctl.Ledger.Create(c.UserContext(), req.ToInput(), caller.ID)
	if err != nil {
		return writeLedgerError(c, err)
	}
	return helper.JsonCreated(c, "Receipt created", rec)
}

/* ========================= Get / List ========================= */

func (ctl *ReceiptController) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid receipt id")
	}
	rec, err := ctl.Ledger.Get(c.UserContext(), uint(id))
	if err != nil {
		return writeLedgerError(c, err)
	}
	return helper.JsonOK(c, "Receipt fetched", rec)
}

func parseFilter(c *fiber.Ctx) (service.Filter, error) {
	f := service.Filter{
		Search:      c.Query("search"),
		Place:       c.Query("place"),
		PaymentMode: c.Query("payment_mode"),
		Purpose:     c.Query("purpose"),
		Status:      c.Query("status"),
	}
	if from := strings.TrimSpace(c.Query("date_from")); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return f, fmt.Errorf("date_from must be YYYY-MM-DD")
		}
		f.DateFrom = &t
	}
	if to := strings.TrimSpace(c.Query("date_to")); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return f, fmt.Errorf("date_to must be YYYY-MM-DD")
		}
		f.DateTo = &t
	}
	if cb := strings.TrimSpace(c.Query("created_by")); cb != "" {
		n, err := strconv.ParseUint(cb, 10, 64)
		if err != nil {
			return f, fmt.Errorf("created_by must be numeric")
		}
		id := uint(n)
		f.CreatedBy = &id
	}
	return f, nil
}

func (ctl *ReceiptController) List(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	f, err := parseFilter(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	paging := helper.ResolvePaging(c, helper.DefaultOpts)

	items, total, err := ctl.Ledger.List(c.UserContext(), f, paging.Page, paging.PerPage, caller)
	if err != nil {
		return writeLedgerError(c, err)
	}
	return helper.JsonList(c, "Receipts fetched", items, helper.BuildPagination(total, paging, len(items)))
}

/* ========================= Update / Cancel ========================= */

func (ctl *ReceiptController) Update(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid receipt id")
	}

	req, err := dto.DecodeUpdateRequest(c.Body())
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	rec, err := ctl.Ledger.Update(c.UserContext(), uint(id), req.ToPatch(), caller)
	if err != nil {
		return writeLedgerError(c, err)
	}
	return helper.JsonUpdated(c, "Receipt updated", rec)
}

// Cancel is the DELETE surrogate: the receipt stays, status flips.
func (ctl *ReceiptController) Cancel(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid receipt id")
	}
	if err := ctl.Ledger.Cancel(c.UserContext(), uint(id), caller); err != nil {
		return writeLedgerError(c, err)
	}
	return helper.JsonDeleted(c, "Receipt cancelled", nil)
}

/* ========================= Stats / Creators ========================= */

func (ctl *ReceiptController) Stats(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	st, err := ctl.Ledger.Stats(c.UserContext(), caller)
	if err != nil {
		return writeLedgerError(c, err)
	}
	return helper.JsonOK(c, "Stats fetched", st)
}

func (ctl *ReceiptController) Creators(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	return helper.JsonOK(c, "Creators fetched", ctl.Ledger.Creators(c.UserContext(), caller))
}

/* ========================= CSV export ========================= */

func (ctl *ReceiptController) ExportCSV(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	f, err := parseFilter(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	paging := helper.ResolvePaging(c, helper.ExportOpts)

	items, _, err := ctl.Ledger.List(c.UserContext(), f, paging.Page, paging.PerPage, caller)
	if err != nil {
		return writeLedgerError(c, err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{
		"receipt_no", "receipt_date", "donor_name", "village", "residence",
		"payment_mode", "donation1_purpose", "total_amount", "status",
	})
	for _, r := range items {
		_ = w.Write([]string{
			r.ReceiptNo,
			r.ReceiptDate.Format("2006-01-02"),
			r.DonorName,
			r.Village,
			r.Residence,
			r.PaymentMode,
			r.Donation1Purpose,
			strconv.FormatFloat(r.TotalAmount, 'f', 2, 64),
			r.Status,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build CSV")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipts.csv"`)
	return c.SendString(sb.String())
}
