// file: internals/features/finance/invoices/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — metode & status pembayaran
// =========================================================

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodWallet   PaymentMethod = "wallet"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodWallet:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// =========================================================
// MODEL
// =========================================================

// PaymentModel: settlement tercatat terhadap satu invoice.
// Lewat operasi pay-invoice, payment langsung success (mock settlement,
// tanpa gateway); paid_at di-set saat status jadi success.
type PaymentModel struct {
	// PK
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	// FK → invoices(invoice_id)
	PaymentInvoiceID uuid.UUID `gorm:"column:payment_invoice_id;type:uuid;not null;index" json:"payment_invoice_id"`

	// FK → users(user_id) (pembayar; wali atau staff)
	PaymentPayerUserID *uuid.UUID `gorm:"column:payment_payer_user_id;type:uuid;index" json:"payment_payer_user_id,omitempty"`

	PaymentAmountCents int64         `gorm:"column:payment_amount_cents;not null;check:payment_amount_cents>0" json:"payment_amount_cents"`
	PaymentMethod      PaymentMethod `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	PaymentStatus      PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	PaymentPaidAt      *time.Time    `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;not null;default:CURRENT_TIMESTAMP" json:"payment_created_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	if m.PaymentStatus == "" {
		m.PaymentStatus = PaymentStatusPending
	}
	if m.PaymentCreatedAt.IsZero() {
		m.PaymentCreatedAt = time.Now()
	}
	return nil
}
