package dto

import (
	"encoding/json"
	"time"

	"github.com/bytedance/sonic"

	"sevasangh_backend/internals/features/receipts/service"
)

type CreateReceiptRequest struct {
	ReceiptDate      time.Time `json:"receipt_date" validate:"required"`
	DonorName        string    `json:"donor_name" validate:"required,max=100"`
	Village          string    `json:"village" validate:"omitempty,max=100"`
	Residence        string    `json:"residence" validate:"omitempty,max=100"`
	Mobile           string    `json:"mobile" validate:"omitempty,max=15"`
	RelationAddress  string    `json:"relation_address"`
	PaymentMode      string    `json:"payment_mode" validate:"omitempty,oneof=cash cheque upi bank_transfer online"`
	PaymentDetails   string    `json:"payment_details"`
	Donation1Purpose string    `json:"donation1_purpose" validate:"omitempty,max=100"`
	Donation1Amount  float64   `json:"donation1_amount" validate:"gte=0"`
	Donation2Amount  float64   `json:"donation2_amount" validate:"gte=0"`
	TotalAmount      float64   `json:"total_amount" validate:"gte=0"`
	TotalAmountWords string    `json:"total_amount_words" validate:"omitempty,max=255"`
}

func (r CreateReceiptRequest) ToInput() service.CreateInput {
	return service.CreateInput{
		ReceiptDate:      r.ReceiptDate,
		DonorName:        r.DonorName,
		Village:          r.Village,
		Residence:        r.Residence,
		Mobile:           r.Mobile,
		RelationAddress:  r.RelationAddress,
		PaymentMode:      r.PaymentMode,
		PaymentDetails:   r.PaymentDetails,
		Donation1Purpose: r.Donation1Purpose,
		Donation1Amount:  r.Donation1Amount,
		Donation2Amount:  r.Donation2Amount,
		TotalAmount:      r.TotalAmount,
		TotalAmountWords: r.TotalAmountWords,
	}
}

// UpdateReceiptRequest mirrors the patch surface: nil fields stay
// untouched. receipt_no, created_by and status are deliberately absent.
type UpdateReceiptRequest struct {
	ReceiptDate      *time.Time `json:"receipt_date"`
	DonorName        *string    `json:"donor_name" validate:"omitempty,max=100"`
	Village          *string    `json:"village" validate:"omitempty,max=100"`
	Residence        *string    `json:"residence" validate:"omitempty,max=100"`
	Mobile           *string    `json:"mobile" validate:"omitempty,max=15"`
	RelationAddress  *string    `json:"relation_address"`
	PaymentMode      *string    `json:"payment_mode" validate:"omitempty,oneof=cash cheque upi bank_transfer online"`
	PaymentDetails   *string    `json:"payment_details"`
	Donation1Purpose *string    `json:"donation1_purpose" validate:"omitempty,max=100"`
	Donation1Amount  *float64   `json:"donation1_amount" validate:"omitempty,gte=0"`
	Donation2Amount  *float64   `json:"donation2_amount" validate:"omitempty,gte=0"`
	TotalAmount      *float64   `json:"total_amount" validate:"omitempty,gte=0"`
	TotalAmountWords *string    `json:"total_amount_words" validate:"omitempty,max=255"`
}

// DecodeUpdateRequest unmarshals a PATCH body with three-way semantics:
// an absent key leaves the field untouched, a value replaces it, and an
// explicit JSON null clears it (empty string, zero amount). A null
// receipt_date is surfaced as a zero time and rejected by the ledger.
func DecodeUpdateRequest(body []byte) (UpdateReceiptRequest, error) {
	var req UpdateReceiptRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		return req, err
	}
	var raw map[string]json.RawMessage
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return req, err
	}
	for key, val := range raw {
		if string(val) != "null" {
			continue
		}
		switch key {
		case "receipt_date":
			req.ReceiptDate = new(time.Time)
		case "donor_name":
			req.DonorName = new(string)
		case "village":
			req.Village = new(string)
		case "residence":
			req.Residence = new(string)
		case "mobile":
			req.Mobile = new(string)
		case "relation_address":
			req.RelationAddress = new(string)
		case "payment_mode":
			req.PaymentMode = new(string)
		case "payment_details":
			req.PaymentDetails = new(string)
		case "donation1_purpose":
			req.Donation1Purpose = new(string)
		case "donation1_amount":
			req.Donation1Amount = new(float64)
		case "donation2_amount":
			req.Donation2Amount = new(float64)
		case "total_amount":
			req.TotalAmount = new(float64)
		case "total_amount_words":
			req.TotalAmountWords = new(string)
		}
	}
	return req, nil
}

func (r UpdateReceiptRequest) ToPatch() service.Patch {
	return service.Patch{
		ReceiptDate:      r.ReceiptDate,
		DonorName:        r.DonorName,
		Village:          r.Village,
		Residence:        r.Residence,
		Mobile:           r.Mobile,
		RelationAddress:  r.RelationAddress,
		PaymentMode:      r.PaymentMode,
		PaymentDetails:   r.PaymentDetails,
		Donation1Purpose: r.Donation1Purpose,
		Donation1Amount:  r.Donation1Amount,
		Donation2Amount:  r.Donation2Amount,
		TotalAmount:      r.TotalAmount,
		TotalAmountWords: r.TotalAmountWords,
	}
}
