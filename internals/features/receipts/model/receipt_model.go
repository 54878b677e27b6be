package model

import (
	"time"
)

// Receipt statuses. A receipt is never deleted; cancellation is the
// deletion surrogate and is terminal.
const (
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Receipt struct {
	ID        uint   `gorm:"column:receipt_id;primaryKey" json:"receipt_id"`
	ReceiptNo string `gorm:"column:receipt_no;size:50;not null;uniqueIndex" json:"receipt_no"`

	ReceiptDate time.Time `gorm:"column:receipt_date;not null;index" json:"receipt_date"`

	DonorName       string `gorm:"size:100;not null" json:"donor_name"`
	Village         string `gorm:"size:100" json:"village"`
	Residence       string `gorm:"size:100" json:"residence"`
	Mobile          string `gorm:"size:15" json:"mobile"`
	RelationAddress string `gorm:"type:text" json:"relation_address"`

	PaymentMode    string `gorm:"size:30;not null;default:'cash'" json:"payment_mode"`
	PaymentDetails string `gorm:"type:text" json:"payment_details"`

	Donation1Purpose string  `gorm:"size:100" json:"donation1_purpose"`
	Donation1Amount  float64 `gorm:"type:numeric(12,2);not null;default:0" json:"donation1_amount"`
	Donation2Amount  float64 `gorm:"type:numeric(12,2);not null;default:0" json:"donation2_amount"`
	TotalAmount      float64 `gorm:"type:numeric(12,2);not null;default:0" json:"total_amount"`
	TotalAmountWords string  `gorm:"size:255" json:"total_amount_words"`

	Status string `gorm:"size:20;not null;default:'completed';index" json:"status"`

	CreatedBy uint      `gorm:"column:created_by;not null;index" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Receipt) TableName() string {
	return "receipts"
}
