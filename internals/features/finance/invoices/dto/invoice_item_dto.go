// file: internals/features/finance/invoices/dto/invoice_item_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/finance/invoices/model"
)

/* ================== REQUESTS ================== */

type AddInvoiceItemRequest struct {
	ItemType       m.InvoiceItemType `json:"item_type"        validate:"required,oneof=tuition meal fee discount other"`
	Description    string            `json:"description"      validate:"omitempty,max=255"`
	Quantity       float64           `json:"quantity"         validate:"required,gt=0"`
	UnitPriceCents int64             `json:"unit_price_cents"` // boleh negatif (discount)
}

/* ================== RESPONSES ================== */

type InvoiceItemResponse struct {
	InvoiceItemID             uuid.UUID         `json:"invoice_item_id"`
	InvoiceItemInvoiceID      uuid.UUID         `json:"invoice_item_invoice_id"`
	InvoiceItemType           m.InvoiceItemType `json:"invoice_item_type"`
	InvoiceItemDescription    string            `json:"invoice_item_description"`
	InvoiceItemQuantity       float64           `json:"invoice_item_quantity"`
	InvoiceItemUnitPriceCents int64             `json:"invoice_item_unit_price_cents"`
	InvoiceItemTotalCents     int64             `json:"invoice_item_total_cents"`
	InvoiceItemCreatedAt      time.Time         `json:"invoice_item_created_at"`
}

func ToInvoiceItemResponse(mo m.InvoiceItemModel) InvoiceItemResponse {
	return InvoiceItemResponse{
		InvoiceItemID:             mo.InvoiceItemID,
		InvoiceItemInvoiceID:      mo.InvoiceItemInvoiceID,
		InvoiceItemType:           mo.InvoiceItemType,
		InvoiceItemDescription:    mo.InvoiceItemDescription,
		InvoiceItemQuantity:       mo.InvoiceItemQuantity,
		InvoiceItemUnitPriceCents: mo.InvoiceItemUnitPriceCents,
		InvoiceItemTotalCents:     mo.InvoiceItemTotalCents,
		InvoiceItemCreatedAt:      mo.InvoiceItemCreatedAt,
	}
}

func FromInvoiceItemModels(rows []m.InvoiceItemModel) []InvoiceItemResponse {
	out := make([]InvoiceItemResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToInvoiceItemResponse(r))
	}
	return out
}
