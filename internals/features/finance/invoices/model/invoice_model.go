// file: internals/features/finance/invoices/model/invoice_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status invoice
// =========================================================

type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusIssued        InvoiceStatus = "issued"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusVoid          InvoiceStatus = "void"
)

// ValidInvoiceStatus untuk validasi PATCH status manual.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPartiallyPaid,
		InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// =========================================================
// MODEL
// =========================================================

// InvoiceModel: satu tagihan per (siswa, periode billing).
// invoice_total_cents adalah kolom TURUNAN — hanya ditulis ulang oleh
// Item Ledger (recompute penuh dari item), tidak pernah di-set caller.
type InvoiceModel struct {
	// PK
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;primaryKey" json:"invoice_id"`

	// FK → users(user_id) (siswa)
	InvoiceStudentID uuid.UUID `gorm:"column:invoice_student_id;type:uuid;not null;index;uniqueIndex:uniq_invoice_student_period,priority:1" json:"invoice_student_id"`

	// Periode billing (inklusif, immutable setelah create)
	InvoicePeriodStart time.Time `gorm:"column:invoice_period_start;type:date;not null;uniqueIndex:uniq_invoice_student_period,priority:2" json:"invoice_period_start"`
	InvoicePeriodEnd   time.Time `gorm:"column:invoice_period_end;type:date;not null;uniqueIndex:uniq_invoice_student_period,priority:3" json:"invoice_period_end"`

	InvoiceStatus InvoiceStatus `gorm:"column:invoice_status;type:varchar(20);not null;default:'draft';index" json:"invoice_status"`

	// Derived: Σ invoice_items.invoice_item_total_cents
	InvoiceTotalCents int64 `gorm:"column:invoice_total_cents;not null;default:0;check:invoice_total_cents>=0" json:"invoice_total_cents"`

	InvoiceCreatedAt time.Time      `gorm:"column:invoice_created_at;not null;default:CURRENT_TIMESTAMP" json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time      `gorm:"column:invoice_updated_at;not null;default:CURRENT_TIMESTAMP" json:"invoice_updated_at"`
	InvoiceDeletedAt gorm.DeletedAt `gorm:"column:invoice_deleted_at;index" json:"-"`
}

func (InvoiceModel) TableName() string {
	return "invoices"
}

// =========================================================
// HOOKS
// =========================================================

func (m *InvoiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceID == uuid.Nil {
		m.InvoiceID = uuid.New()
	}
	if m.InvoiceStatus == "" {
		m.InvoiceStatus = InvoiceStatusDraft
	}
	now := time.Now()
	if m.InvoiceCreatedAt.IsZero() {
		m.InvoiceCreatedAt = now
	}
	m.InvoiceUpdatedAt = now
	return nil
}

func (m *InvoiceModel) BeforeUpdate(tx *gorm.DB) error {
	m.InvoiceUpdatedAt = time.Now()
	return nil
}
