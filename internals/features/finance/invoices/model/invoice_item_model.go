// file: internals/features/finance/invoices/model/invoice_item_model.go
package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — jenis item
// =========================================================

type InvoiceItemType string

const (
	ItemTypeTuition  InvoiceItemType = "tuition"
	ItemTypeMeal     InvoiceItemType = "meal"
	ItemTypeFee      InvoiceItemType = "fee"
	ItemTypeDiscount InvoiceItemType = "discount"
	ItemTypeOther    InvoiceItemType = "other"
)

func ValidInvoiceItemType(t InvoiceItemType) bool {
	switch t {
	case ItemTypeTuition, ItemTypeMeal, ItemTypeFee, ItemTypeDiscount, ItemTypeOther:
		return true
	}
	return false
}

// =========================================================
// MODEL
// =========================================================

// InvoiceItemModel: satu baris tagihan. total_cents dihitung saat insert
// dan immutable — koreksi item = hapus lalu tambah lagi. Item di-hard
// delete saat invoice dihapus atau saat batch replace.
type InvoiceItemModel struct {
	// PK
	InvoiceItemID uuid.UUID `gorm:"column:invoice_item_id;type:uuid;primaryKey" json:"invoice_item_id"`

	// FK → invoices(invoice_id)
	InvoiceItemInvoiceID uuid.UUID `gorm:"column:invoice_item_invoice_id;type:uuid;not null;index" json:"invoice_item_invoice_id"`

	InvoiceItemType        InvoiceItemType `gorm:"column:invoice_item_type;type:varchar(20);not null" json:"invoice_item_type"`
	InvoiceItemDescription string          `gorm:"column:invoice_item_description;type:text" json:"invoice_item_description"`

	// quantity > 0; unit price boleh negatif (baris diskon)
	InvoiceItemQuantity       float64 `gorm:"column:invoice_item_quantity;not null;default:1;check:invoice_item_quantity>0" json:"invoice_item_quantity"`
	InvoiceItemUnitPriceCents int64   `gorm:"column:invoice_item_unit_price_cents;not null" json:"invoice_item_unit_price_cents"`

	// round(quantity × unit_price_cents), dihitung di insert
	InvoiceItemTotalCents int64 `gorm:"column:invoice_item_total_cents;not null" json:"invoice_item_total_cents"`

	InvoiceItemCreatedAt time.Time `gorm:"column:invoice_item_created_at;not null;default:CURRENT_TIMESTAMP" json:"invoice_item_created_at"`
}

func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// LineTotalCents: round half away from zero, sama dengan perilaku
// pembulatan numeric di sisi DB.
func LineTotalCents(quantity float64, unitPriceCents int64) int64 {
	return int64(math.Round(quantity * float64(unitPriceCents)))
}

func (m *InvoiceItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceItemID == uuid.Nil {
		m.InvoiceItemID = uuid.New()
	}
	if m.InvoiceItemQuantity == 0 {
		m.InvoiceItemQuantity = 1
	}
	if m.InvoiceItemTotalCents == 0 {
		m.InvoiceItemTotalCents = LineTotalCents(m.InvoiceItemQuantity, m.InvoiceItemUnitPriceCents)
	}
	if m.InvoiceItemCreatedAt.IsZero() {
		m.InvoiceItemCreatedAt = time.Now()
	}
	return nil
}
