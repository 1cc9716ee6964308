// file: internals/features/finance/invoices/dto/invoice_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/finance/invoices/model"
)

/* ================== REQUESTS ================== */

// Batch generate per grade
type GenerateByGradeRequest struct {
	GradeID            uuid.UUID             `json:"grade_id"              validate:"required"`
	BillingPeriodStart string                `json:"billing_period_start"  validate:"required,datetime=2006-01-02"`
	BillingPeriodEnd   string                `json:"billing_period_end"    validate:"required,datetime=2006-01-02"`
	Items              []ItemTemplateRequest `json:"items"                 validate:"required,min=1,dive"`
	Replace            bool                  `json:"replace"`
}

// ParsePeriod: tanggal sudah lolos validasi format, tinggal parse.
func (r GenerateByGradeRequest) ParsePeriod() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", r.BillingPeriodStart)
	end, _ := time.Parse("2006-01-02", r.BillingPeriodEnd)
	return start, end
}

type ItemTemplateRequest struct {
	ItemType       m.InvoiceItemType `json:"item_type"        validate:"required,oneof=tuition meal fee discount other"`
	Description    string            `json:"description"      validate:"omitempty,max=255"`
	Quantity       float64           `json:"quantity"         validate:"required,gt=0"`
	UnitPriceCents int64             `json:"unit_price_cents"` // boleh negatif (discount)
}

// Patch status (escape hatch staff)
type PatchInvoiceRequest struct {
	Status m.InvoiceStatus `json:"status" validate:"required,oneof=draft issued partially_paid paid void"`
}

// List query (staff)
type ListInvoicesQuery struct {
	StudentUserID *uuid.UUID       `query:"student_user_id" validate:"omitempty"`
	Status        *m.InvoiceStatus `query:"status"          validate:"omitempty,oneof=draft issued partially_paid paid void"`
}

/* ================== RESPONSES ================== */

type InvoiceResponse struct {
	InvoiceID          uuid.UUID       `json:"invoice_id"`
	InvoiceStudentID   uuid.UUID       `json:"invoice_student_id"`
	InvoicePeriodStart string          `json:"invoice_period_start"`
	InvoicePeriodEnd   string          `json:"invoice_period_end"`
	InvoiceStatus      m.InvoiceStatus `json:"invoice_status"`
	InvoiceTotalCents  int64           `json:"invoice_total_cents"`
	InvoiceCreatedAt   time.Time       `json:"invoice_created_at"`
	InvoiceUpdatedAt   time.Time       `json:"invoice_updated_at"`
}

func ToInvoiceResponse(mo m.InvoiceModel) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:          mo.InvoiceID,
		InvoiceStudentID:   mo.InvoiceStudentID,
		InvoicePeriodStart: mo.InvoicePeriodStart.Format("2006-01-02"),
		InvoicePeriodEnd:   mo.InvoicePeriodEnd.Format("2006-01-02"),
		InvoiceStatus:      mo.InvoiceStatus,
		InvoiceTotalCents:  mo.InvoiceTotalCents,
		InvoiceCreatedAt:   mo.InvoiceCreatedAt,
		InvoiceUpdatedAt:   mo.InvoiceUpdatedAt,
	}
}

func FromInvoiceModels(rows []m.InvoiceModel) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToInvoiceResponse(r))
	}
	return out
}

// Detail: invoice + items + payments
type InvoiceDetailResponse struct {
	Invoice  InvoiceResponse       `json:"invoice"`
	Items    []InvoiceItemResponse `json:"items"`
	Payments []PaymentResponse     `json:"payments"`
}

type GenerateByGradeResponse struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Students int `json:"students"`
}
